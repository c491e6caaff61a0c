package validator

// SignUpRequest represents the request structure for account creation.
// Password is required only for local signups; social signups carry the
// provider profile instead of a credential.
type SignUpRequest struct {
	Email       string `json:"email" validate:"required,email,max=255"`
	Username    string `json:"username" validate:"required,min=2,max=100"`
	Password    string `json:"password" validate:"required_if=SocialLogin false,omitempty,min=6,max=72"`
	SocialLogin bool   `json:"social_login"`
}

type SignInRequest struct {
	Password string `json:"password" validate:"required"`
}

type GenerateQuizRequest struct {
	Topic      string `json:"topic" validate:"required,max=255"`
	Difficulty string `json:"difficulty" validate:"required,oneof=easy medium hard"`
	QuizType   string `json:"quizType" validate:"required,max=50"`
	Quantity   int    `json:"quantity" validate:"required,min=1,max=30"`
	UserEmail  string `json:"user" validate:"required,email"`
}

// SubmittedAnswer is one positional answer in a grading submission. The
// question text is echoed back as a consistency check against the stored item.
type SubmittedAnswer struct {
	Question   string `json:"question" validate:"required"`
	UserAnswer string `json:"userAnswer"`
}

type GradeSubmissionRequest struct {
	QuizID  uint              `json:"quizId" validate:"required"`
	Answers []SubmittedAnswer `json:"answers" validate:"required,min=1,dive"`
}

type ConfirmResetRequest struct {
	NewPassword string `json:"newPassword" validate:"required,min=6,max=72"`
}
