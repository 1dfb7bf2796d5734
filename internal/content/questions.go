package content

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// QA is one browsable question/answer pair.
type QA struct {
	Key      string `json:"key"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// LoadQuestions reads an ordered question list from a JSON file. An empty
// path yields the built-in default list.
func LoadQuestions(path string) ([]QA, error) {
	if strings.TrimSpace(path) == "" {
		return defaultQuestions, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question list: %w", err)
	}
	var questions []QA
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, fmt.Errorf("parse question list: %w", err)
	}
	return questions, nil
}

// AnswerFor returns the answer for a question key.
func AnswerFor(questions []QA, key string) (string, bool) {
	for _, q := range questions {
		if q.Key == key {
			return q.Answer, true
		}
	}
	return "", false
}

var defaultQuestions = []QA{
	{Key: "A", Question: "Question A full text...", Answer: "Answer A..."},
	{Key: "B", Question: "Question B full text...", Answer: "Answer B..."},
	{Key: "C", Question: "Question C full text...", Answer: "Answer C..."},
	{Key: "D", Question: "Question D full text...", Answer: "Answer D..."},
	{Key: "E", Question: "Question E full text...", Answer: "Answer E..."},
	{Key: "F", Question: "Question F full text...", Answer: "Answer F..."},
	{Key: "G", Question: "Question G full text...", Answer: "Answer G..."},
	{Key: "H", Question: "Question H full text...", Answer: "Answer H..."},
	{Key: "I", Question: "Question I full text...", Answer: "Answer I..."},
	{Key: "J", Question: "Question J full text...", Answer: "Answer J..."},
}
