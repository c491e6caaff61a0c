package services

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/quizmania/quiz-service/internal/events"
	"github.com/quizmania/quiz-service/internal/models"
	"github.com/quizmania/quiz-service/internal/repositories"
	"github.com/quizmania/quiz-service/internal/validator"
)

type gradingService struct {
	db        *gorm.DB
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

func NewGradingService(
	db *gorm.DB,
	repo repositories.Repository,
	logger *slog.Logger,
	validator *validator.Validator,
	publisher events.EventPublisher,
) GradingService {
	return &gradingService{
		db:        db,
		repo:      repo,
		logger:    logger,
		validator: validator,
		publisher: publisher,
	}
}

// GradeSubmission scores a submitted answer set against the stored quiz.
// Items are paired strictly by position; the echoed question text must match
// the stored item as a consistency check. An item counts as correct only when
// both the question text and the answer match exactly.
//
// Re-submitting a quiz is allowed and overwrites the prior grading with no
// history retained; identical answers reproduce the same stored outcome.
func (s *gradingService) GradeSubmission(ctx context.Context, req *GradeSubmissionRequest) (*GradingResult, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	quiz, err := s.repo.Quiz().GetByID(ctx, nil, req.QuizID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}

	if len(req.Answers) != len(quiz.Items) {
		return nil, validator.ValidationErrors{{
			Field:   "answers",
			Message: fmt.Sprintf("expected %d answers, got %d", len(quiz.Items), len(req.Answers)),
		}}
	}

	correct := 0
	items := make([]models.QuizItem, len(quiz.Items))
	copy(items, quiz.Items)

	for i := range items {
		answer := req.Answers[i]
		userAnswer := answer.UserAnswer

		outcome := models.OutcomeWrong
		if items[i].Question == answer.Question && items[i].Answer == userAnswer {
			outcome = models.OutcomeCorrect
			correct++
		}

		items[i].UserAnswer = &userAnswer
		items[i].Outcome = &outcome
	}

	incorrect := len(items) - correct

	quiz.Items = datatypes.NewJSONSlice(items)
	quiz.Status = models.QuizSolved
	quiz.CorrectCount = &correct
	quiz.IncorrectCount = &incorrect

	if err := s.repo.Quiz().UpdateGrading(ctx, nil, quiz); err != nil {
		return nil, fmt.Errorf("failed to persist grading: %w", err)
	}

	s.logger.Info("quiz graded",
		"quiz_id", quiz.ID,
		"correct", correct,
		"incorrect", incorrect)

	if s.publisher != nil {
		event := events.NewEvent(events.TypeQuizGraded, events.QuizGradedEvent{
			QuizID:         quiz.ID,
			UserEmail:      quiz.UserEmail,
			CorrectCount:   correct,
			IncorrectCount: incorrect,
		})
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish event", "event_type", event.Type, "error", err)
		}
	}

	return &GradingResult{
		Quiz:           quiz,
		CorrectCount:   correct,
		IncorrectCount: incorrect,
	}, nil
}
