package generator

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/quizmania/quiz-service/internal/models"
)

// ErrInvalidFormat reports that the generator output could not be turned into
// a valid quiz item list.
var ErrInvalidFormat = errors.New("invalid quiz format received from generator")

var fencedJSONRe = regexp.MustCompile("(?s)```(?:json)?(.*?)```")

// ExtractJSON strips a fenced code block from the generator output if one is
// present; otherwise the whole text is treated as the JSON payload.
func ExtractJSON(raw string) string {
	if m := fencedJSONRe.FindStringSubmatch(raw); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(raw)
}

// ParseQuizItems validates and normalizes raw generator output into quiz
// items. The output must parse to a non-empty JSON array of objects, each
// with type, question and answer; options are required for choice-based
// items, and the answer must be one of the options when options are present.
func ParseQuizItems(raw string) ([]models.QuizItem, error) {
	payload := ExtractJSON(raw)

	var items []models.QuizItem
	if err := json.Unmarshal([]byte(payload), &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: empty item list", ErrInvalidFormat)
	}

	for i, item := range items {
		if item.Type == "" {
			return nil, fmt.Errorf("%w: item %d missing type", ErrInvalidFormat, i)
		}
		if item.Question == "" {
			return nil, fmt.Errorf("%w: item %d missing question", ErrInvalidFormat, i)
		}
		if item.Answer == "" {
			return nil, fmt.Errorf("%w: item %d missing answer", ErrInvalidFormat, i)
		}
		if item.ChoiceBased() && len(item.Options) == 0 {
			return nil, fmt.Errorf("%w: item %d is %q but has no options", ErrInvalidFormat, i, item.Type)
		}
		if len(item.Options) > 0 && !slices.Contains(item.Options, item.Answer) {
			return nil, fmt.Errorf("%w: item %d answer is not among its options", ErrInvalidFormat, i)
		}
	}

	return items, nil
}
