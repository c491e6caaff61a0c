package services

import (
	"context"

	"github.com/xuri/excelize/v2"

	"github.com/quizmania/quiz-service/internal/models"
	"github.com/quizmania/quiz-service/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

// Use request types from the validator package
type SignUpRequest = validator.SignUpRequest
type GenerateQuizRequest = validator.GenerateQuizRequest
type GradeSubmissionRequest = validator.GradeSubmissionRequest
type SubmittedAnswer = validator.SubmittedAnswer

type SignUpResponse struct {
	UserID uint `json:"user_id"`
}

type QuizResponse struct {
	*models.Quiz
}

type GradingResult struct {
	Quiz           *models.Quiz `json:"quiz"`
	CorrectCount   int          `json:"correctCount"`
	IncorrectCount int          `json:"incorrectCount"`
}

type UserStatsResponse struct {
	Email          string `json:"email"`
	TotalQuizzes   int    `json:"total_quizzes"`
	SolvedQuizzes  int    `json:"solved_quizzes"`
	TotalCorrect   int    `json:"total_correct"`
	TotalPossible  int    `json:"total_possible"`
	AveragePercent string `json:"average_percent"`
}

// AdminStatsResponse sequences are always present, possibly empty, never null.
type AdminStatsResponse struct {
	Users         []*models.User `json:"users"`
	Quizzes       []*models.Quiz `json:"quizzes"`
	SolvedQuizzes []*models.Quiz `json:"solvedQuizzes"`
}

// ===== SERVICE INTERFACES =====

// AccountService owns signup, sign-in with lockout, and the password-reset
// token lifecycle.
type AccountService interface {
	SignUp(ctx context.Context, req *SignUpRequest) (*SignUpResponse, error)
	SignIn(ctx context.Context, email, password string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ConfirmPasswordReset(ctx context.Context, userID uint, newPassword string) error
}

// QuizService owns quiz generation and retrieval.
type QuizService interface {
	Generate(ctx context.Context, req *GenerateQuizRequest) (*QuizResponse, error)
	GetByID(ctx context.Context, id uint) (*QuizResponse, error)
}

// GradingService scores submitted answer sets against stored quizzes.
type GradingService interface {
	GradeSubmission(ctx context.Context, req *GradeSubmissionRequest) (*GradingResult, error)
}

// StatsService derives per-user and system-wide summaries.
type StatsService interface {
	UserStats(ctx context.Context, email string) (*UserStatsResponse, error)
	AdminStats(ctx context.Context) (*AdminStatsResponse, error)
	ExportAdminStats(ctx context.Context) (*excelize.File, error)
}

// ===== SERVICE MANAGER =====

type ServiceManager interface {
	Account() AccountService
	Quiz() QuizService
	Grading() GradingService
	Stats() StatsService

	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
