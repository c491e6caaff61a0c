package generator

import (
	"errors"
	"strings"
	"testing"

	"github.com/quizmania/quiz-service/internal/models"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "json fenced block",
			raw:  "```json\n[{\"a\":1}]\n```",
			want: `[{"a":1}]`,
		},
		{
			name: "bare fenced block",
			raw:  "```\n[1,2]\n```",
			want: `[1,2]`,
		},
		{
			name: "fenced block with surrounding prose",
			raw:  "Here is your quiz:\n```json\n[]\n```\nEnjoy!",
			want: `[]`,
		},
		{
			name: "no fence",
			raw:  "  [1,2,3]  ",
			want: `[1,2,3]`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractJSON(tt.raw); got != tt.want {
				t.Errorf("ExtractJSON() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseQuizItems(t *testing.T) {
	valid := `[
		{"type": "Multiple Choice", "question": "Capital of France?", "options": ["Paris", "Lyon"], "answer": "Paris"},
		{"type": "True or False", "question": "The sky is green.", "answer": "False"}
	]`

	t.Run("valid bare array", func(t *testing.T) {
		items, err := ParseQuizItems(valid)
		if err != nil {
			t.Fatalf("ParseQuizItems failed: %v", err)
		}
		if len(items) != 2 {
			t.Fatalf("expected 2 items, got %d", len(items))
		}
		if items[0].Type != models.ItemTypeMultipleChoice || items[1].Type != models.ItemTypeTrueFalse {
			t.Errorf("unexpected item types: %q, %q", items[0].Type, items[1].Type)
		}
	})

	t.Run("valid fenced array", func(t *testing.T) {
		if _, err := ParseQuizItems("```json\n" + valid + "\n```"); err != nil {
			t.Fatalf("ParseQuizItems failed: %v", err)
		}
	})

	invalid := []struct {
		name string
		raw  string
	}{
		{"not json", "I cannot generate that quiz."},
		{"json object instead of array", `{"question": "q"}`},
		{"empty array", `[]`},
		{"missing type", `[{"question": "q", "answer": "a"}]`},
		{"missing question", `[{"type": "True or False", "answer": "True"}]`},
		{"missing answer", `[{"type": "True or False", "question": "q"}]`},
		{"multiple choice without options", `[{"type": "Multiple Choice", "question": "q", "answer": "a"}]`},
		{"answer not among options", `[{"type": "Multiple Choice", "question": "q", "options": ["a", "b"], "answer": "c"}]`},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseQuizItems(tt.raw)
			if !errors.Is(err, ErrInvalidFormat) {
				t.Fatalf("expected ErrInvalidFormat, got %v", err)
			}
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(Criteria{
		Topic:      "Roman history",
		Difficulty: "hard",
		QuizType:   "Multiple Choice",
		Quantity:   7,
	})

	for _, fragment := range []string{`"Roman history"`, "hard level", "Number of Questions: 7", "Multiple Choice"} {
		if !strings.Contains(prompt, fragment) {
			t.Errorf("prompt missing %q", fragment)
		}
	}
}
