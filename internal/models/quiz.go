package models

import (
	"time"

	"gorm.io/datatypes"
)

type QuizStatus string

const (
	QuizUnsolved QuizStatus = "unsolved"
	QuizSolved   QuizStatus = "solved"
)

// ItemOutcome labels a graded quiz item.
type ItemOutcome string

const (
	OutcomeCorrect ItemOutcome = "correct"
	OutcomeWrong   ItemOutcome = "wrong"
)

// Item types are an open vocabulary controlled by the generator prompt, not a
// closed enum; these are the types the current prompt asks for.
const (
	ItemTypeMultipleChoice = "Multiple Choice"
	ItemTypeTrueFalse      = "True or False"
)

// QuizItem is one generated question. UserAnswer and Outcome stay nil until
// the quiz is graded.
type QuizItem struct {
	Type     string   `json:"type"`
	Question string   `json:"question"`
	Options  []string `json:"options,omitempty"`
	Answer   string   `json:"answer"`

	UserAnswer *string      `json:"userAnswer,omitempty"`
	Outcome    *ItemOutcome `json:"outcome,omitempty"`
}

// ChoiceBased reports whether the item type carries an options list.
func (qi QuizItem) ChoiceBased() bool {
	return qi.Type == ItemTypeMultipleChoice
}

type Quiz struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	UserEmail string `json:"user_email" gorm:"not null;index;size:255"`

	// Generation criteria as supplied by the caller.
	Topic      string `json:"topic" gorm:"not null;size:255"`
	Difficulty string `json:"difficulty" gorm:"size:50"`
	QuizType   string `json:"quiz_type" gorm:"size:50"`
	Quantity   int    `json:"quantity"`

	// Item order is fixed at creation and is the positional contract used
	// for grading.
	Items datatypes.JSONSlice[QuizItem] `json:"items" gorm:"type:jsonb"`

	Status QuizStatus `json:"status" gorm:"default:unsolved;index"`

	// Present only once solved.
	CorrectCount   *int `json:"correctCount,omitempty"`
	IncorrectCount *int `json:"incorrectCount,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Quiz) TableName() string {
	return "quizzes"
}
