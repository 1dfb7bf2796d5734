package content

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{" #ab12 ", "#AB12"},
		{"#AB12", "#AB12"},
		{"\t#z9\n", "#Z9"},
		{"#04y8", "#04Y8"},
	}
	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestResolveCaseInsensitive(t *testing.T) {
	table := NewTable(map[string]CodeEntry{"#ab12": {Text: "found it"}})

	lower, ok1 := table.Resolve(" #ab12 ")
	upper, ok2 := table.Resolve("#AB12")
	if !ok1 || !ok2 {
		t.Fatal("both lookups should resolve")
	}
	if lower.Text != upper.Text {
		t.Errorf("normalized lookups disagree: %q vs %q", lower.Text, upper.Text)
	}
}

func TestResolveUnknown(t *testing.T) {
	table := NewTable(nil)
	if _, ok := table.Resolve("#Z9"); ok {
		t.Error("expected unknown code to miss")
	}
}

func TestLoadTableFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "codes.json")
	data := `{"#ab12": {"text": "hello", "image": "http://example.com/x.png"}}`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	table, err := LoadTable(path)
	if err != nil {
		t.Fatalf("LoadTable: %v", err)
	}
	entry, ok := table.Resolve("#AB12")
	if !ok {
		t.Fatal("expected loaded code to resolve")
	}
	if entry.Text != "hello" || entry.Image == "" {
		t.Errorf("unexpected entry: %+v", entry)
	}
}

func TestLoadTableDefault(t *testing.T) {
	table, err := LoadTable("")
	if err != nil {
		t.Fatalf("LoadTable: %v", err)
	}
	if table.Size() == 0 {
		t.Error("expected built-in default codes")
	}
}

func TestLoadQuestionsDefault(t *testing.T) {
	questions, err := LoadQuestions("")
	if err != nil {
		t.Fatalf("LoadQuestions: %v", err)
	}
	if len(questions) != 10 {
		t.Errorf("expected 10 default questions, got %d", len(questions))
	}

	answer, ok := AnswerFor(questions, "A")
	if !ok || answer == "" {
		t.Errorf("expected an answer for key A, got (%q, %v)", answer, ok)
	}
	if _, ok := AnswerFor(questions, "ZZ"); ok {
		t.Error("expected miss for unknown key")
	}
}

func TestRenderQuestionPage(t *testing.T) {
	questions, _ := LoadQuestions("")

	text, controls := RenderQuestionPage(questions, 0, 3)
	if !strings.Contains(text, "page 1/4") {
		t.Errorf("expected page header, got %q", text)
	}
	if len(controls) != 2 {
		t.Fatalf("expected answer row + nav row, got %d rows", len(controls))
	}
	if len(controls[0]) != 3 {
		t.Errorf("expected 3 answer buttons, got %d", len(controls[0]))
	}
	// First page has only a Next control.
	if len(controls[1]) != 1 || !strings.Contains(controls[1][0].Label, "Next") {
		t.Errorf("unexpected nav row: %+v", controls[1])
	}
}

func TestRenderQuestionPageMiddleAndLast(t *testing.T) {
	questions, _ := LoadQuestions("")

	_, controls := RenderQuestionPage(questions, 1, 3)
	if len(controls[1]) != 2 {
		t.Errorf("middle page should have prev and next, got %+v", controls[1])
	}

	text, controls := RenderQuestionPage(questions, 3, 3)
	if !strings.Contains(text, "page 4/4") {
		t.Errorf("expected last page, got %q", text)
	}
	if len(controls[1]) != 1 || !strings.Contains(controls[1][0].Label, "Prev") {
		t.Errorf("last page should have only prev, got %+v", controls[1])
	}
}

func TestRenderQuestionPageClampsIndex(t *testing.T) {
	questions, _ := LoadQuestions("")

	high, _ := RenderQuestionPage(questions, 99, 3)
	last, _ := RenderQuestionPage(questions, 3, 3)
	if high != last {
		t.Error("out-of-range page should clamp to the last page")
	}

	low, _ := RenderQuestionPage(questions, -5, 3)
	first, _ := RenderQuestionPage(questions, 0, 3)
	if low != first {
		t.Error("negative page should clamp to the first page")
	}
}

func TestRenderQuestionPageEmpty(t *testing.T) {
	text, controls := RenderQuestionPage(nil, 0, 3)
	if text == "" || controls != nil {
		t.Errorf("expected placeholder text and no controls, got %q %+v", text, controls)
	}
}
