package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/quizmania/quiz-service/internal/events"
	"github.com/quizmania/quiz-service/internal/generator"
	"github.com/quizmania/quiz-service/internal/models"
	"github.com/quizmania/quiz-service/internal/repositories"
	"github.com/quizmania/quiz-service/internal/validator"
)

type quizService struct {
	db        *gorm.DB
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	generator generator.QuizGenerator
	publisher events.EventPublisher
}

func NewQuizService(
	db *gorm.DB,
	repo repositories.Repository,
	logger *slog.Logger,
	validator *validator.Validator,
	gen generator.QuizGenerator,
	publisher events.EventPublisher,
) QuizService {
	return &quizService{
		db:        db,
		repo:      repo,
		logger:    logger,
		validator: validator,
		generator: gen,
		publisher: publisher,
	}
}

// Generate invokes the external generator for the given criteria, validates
// its output deterministically and stores the resulting quiz. Generator
// output that cannot be parsed into a valid item list fails the operation;
// nothing is stored in that case.
func (s *quizService) Generate(ctx context.Context, req *GenerateQuizRequest) (*QuizResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	raw, err := s.generator.Generate(ctx, generator.Criteria{
		Topic:      req.Topic,
		Difficulty: req.Difficulty,
		QuizType:   req.QuizType,
		Quantity:   req.Quantity,
	})
	if err != nil {
		return nil, fmt.Errorf("generator invocation failed: %w", err)
	}

	items, err := generator.ParseQuizItems(raw)
	if err != nil {
		if errors.Is(err, generator.ErrInvalidFormat) {
			s.logger.Warn("discarding malformed generator output", "topic", req.Topic, "error", err)
			return nil, fmt.Errorf("%w: %v", ErrGenerationFormat, err)
		}
		return nil, err
	}

	quiz := &models.Quiz{
		UserEmail:  req.UserEmail,
		Topic:      req.Topic,
		Difficulty: req.Difficulty,
		QuizType:   req.QuizType,
		Quantity:   req.Quantity,
		Items:      datatypes.NewJSONSlice(items),
		Status:     models.QuizUnsolved,
	}
	if err := s.repo.Quiz().Create(ctx, nil, quiz); err != nil {
		return nil, fmt.Errorf("failed to store quiz: %w", err)
	}

	s.logger.Info("quiz generated",
		"quiz_id", quiz.ID,
		"topic", req.Topic,
		"item_count", len(items))

	if s.publisher != nil {
		event := events.NewEvent(events.TypeQuizGenerated, events.QuizGeneratedEvent{
			QuizID:    quiz.ID,
			UserEmail: quiz.UserEmail,
			Topic:     quiz.Topic,
			ItemCount: len(items),
		})
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish event", "event_type", event.Type, "error", err)
		}
	}

	return &QuizResponse{Quiz: quiz}, nil
}

func (s *quizService) GetByID(ctx context.Context, id uint) (*QuizResponse, error) {
	quiz, err := s.repo.Quiz().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}
	return &QuizResponse{Quiz: quiz}, nil
}
