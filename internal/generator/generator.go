package generator

import (
	"context"
	"fmt"
)

// Criteria is the caller-supplied generation request. The fields are passed
// to the prompt verbatim and echoed onto the stored quiz; they are not
// re-validated against what the generator actually returns.
type Criteria struct {
	Topic      string
	Difficulty string
	QuizType   string
	Quantity   int
}

// QuizGenerator invokes the external generative-language service and returns
// its raw text output. Output validation is the caller's job, via ParseQuizItems.
type QuizGenerator interface {
	Generate(ctx context.Context, criteria Criteria) (string, error)
}

// BuildPrompt renders the generation prompt for the given criteria. The
// generator is asked for a bare JSON array, but historically wraps it in a
// fenced code block anyway; ParseQuizItems handles both.
func BuildPrompt(c Criteria) string {
	return fmt.Sprintf(`Generate a %s level quiz on "%s" with %s questions.
- Number of Questions: %d
- Return ONLY a valid JSON array. No extra text.
- Each question should have:
    - "type": (Multiple Choice / True or False)
    - "question": (Text of the question)
    - "options": (Array of choices, only for multiple-choice)
    - "answer": (Correct answer)

Example Output:
[
    {
        "type": "Multiple Choice",
        "question": "What is the capital of France?",
        "options": ["Berlin", "Paris", "Madrid", "Rome"],
        "answer": "Paris"
    }
]
Do not include explanations, code blocks, or markdown. Just return raw JSON data.`,
		c.Difficulty, c.Topic, c.QuizType, c.Quantity)
}
