package events

// Event types published by the service.
const (
	TypeUserSignedUp  = "user.signed_up"
	TypeUserBlocked   = "user.blocked"
	TypeQuizGenerated = "quiz.generated"
	TypeQuizGraded    = "quiz.graded"
)

type UserSignedUpEvent struct {
	UserID      uint   `json:"user_id"`
	Email       string `json:"email"`
	SocialLogin bool   `json:"social_login"`
}

type UserBlockedEvent struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
}

type QuizGeneratedEvent struct {
	QuizID    uint   `json:"quiz_id"`
	UserEmail string `json:"user_email"`
	Topic     string `json:"topic"`
	ItemCount int    `json:"item_count"`
}

type QuizGradedEvent struct {
	QuizID         uint   `json:"quiz_id"`
	UserEmail      string `json:"user_email"`
	CorrectCount   int    `json:"correct_count"`
	IncorrectCount int    `json:"incorrect_count"`
}
