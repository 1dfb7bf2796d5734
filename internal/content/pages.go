package content

import (
	"fmt"
	"strings"

	"github.com/huntdesk/huntdesk/internal/bus"
)

// DefaultPageSize is the number of questions shown per page.
const DefaultPageSize = 3

// RenderQuestionPage renders one page of the question browser: the page text
// plus the inline controls (one answer button per question, and prev/next
// navigation where pages exist on that side). Pure function of its inputs;
// the page index is clamped into range.
func RenderQuestionPage(questions []QA, page, pageSize int) (string, [][]bus.Control) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if len(questions) == 0 {
		return "No questions available.", nil
	}

	lastPage := (len(questions) - 1) / pageSize
	if page < 0 {
		page = 0
	}
	if page > lastPage {
		page = lastPage
	}

	start := page * pageSize
	end := start + pageSize
	if end > len(questions) {
		end = len(questions)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "❓ Questions (page %d/%d)\n", page+1, lastPage+1)
	var answers []bus.Control
	for _, q := range questions[start:end] {
		fmt.Fprintf(&b, "\n%s. %s", q.Key, q.Question)
		answers = append(answers, bus.Control{
			Label: q.Key,
			Data:  bus.AnswerSelection(q.Key),
		})
	}

	controls := [][]bus.Control{answers}
	var nav []bus.Control
	if page > 0 {
		nav = append(nav, bus.Control{Label: "⬅️ Prev", Data: bus.PageSelection(page - 1)})
	}
	if page < lastPage {
		nav = append(nav, bus.Control{Label: "Next ➡️", Data: bus.PageSelection(page + 1)})
	}
	if len(nav) > 0 {
		controls = append(controls, nav)
	}
	return b.String(), controls
}
