package services

import (
	"context"
	"errors"
	"testing"

	"github.com/quizmania/quiz-service/internal/events"
	"github.com/quizmania/quiz-service/internal/generator"
	"github.com/quizmania/quiz-service/internal/models"
	"github.com/quizmania/quiz-service/internal/validator"
)

// stubGenerator returns canned output for quiz service tests.
type stubGenerator struct {
	output string
	err    error
}

func (g *stubGenerator) Generate(ctx context.Context, criteria generator.Criteria) (string, error) {
	return g.output, g.err
}

const validGeneratorOutput = "```json\n" + `[
  {"type": "Multiple Choice", "question": "Capital of France?", "options": ["Paris", "Lyon", "Nice", "Lille"], "answer": "Paris"},
  {"type": "True or False", "question": "The sky is green.", "answer": "False"}
]` + "\n```"

func validGenerateRequest() *GenerateQuizRequest {
	return &GenerateQuizRequest{
		Topic:      "Geography",
		Difficulty: "easy",
		QuizType:   "mixed",
		Quantity:   2,
		UserEmail:  "quizzer@example.com",
	}
}

func TestQuizService_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("stores validated output", func(t *testing.T) {
		repo := newMockRepository()
		pub := events.NewMockEventPublisher(testLogger())
		svc := NewQuizService(nil, repo, testLogger(), validator.New(), &stubGenerator{output: validGeneratorOutput}, pub)

		resp, err := svc.Generate(ctx, validGenerateRequest())
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}

		if resp.Status != models.QuizUnsolved {
			t.Errorf("status = %q, want %q", resp.Status, models.QuizUnsolved)
		}
		if len(resp.Items) != 2 {
			t.Fatalf("expected 2 items, got %d", len(resp.Items))
		}
		if resp.Items[0].UserAnswer != nil || resp.Items[0].Outcome != nil {
			t.Error("fresh quiz items must not carry grading fields")
		}
		if resp.CorrectCount != nil || resp.IncorrectCount != nil {
			t.Error("fresh quiz must not carry counts")
		}

		stored, ok := repo.quiz.byID[resp.ID]
		if !ok {
			t.Fatal("quiz was not stored")
		}
		if stored.UserEmail != "quizzer@example.com" {
			t.Errorf("stored owner = %q", stored.UserEmail)
		}

		published := pub.GetPublishedEvents()
		if len(published) != 1 || published[0].Type != events.TypeQuizGenerated {
			t.Fatalf("expected one %s event, got %+v", events.TypeQuizGenerated, published)
		}
	})

	t.Run("malformed output stores nothing", func(t *testing.T) {
		repo := newMockRepository()
		svc := NewQuizService(nil, repo, testLogger(), validator.New(), &stubGenerator{output: "I'm sorry, I can't do that."}, nil)

		_, err := svc.Generate(ctx, validGenerateRequest())
		if !errors.Is(err, ErrGenerationFormat) {
			t.Fatalf("expected ErrGenerationFormat, got %v", err)
		}
		if len(repo.quiz.byID) != 0 {
			t.Error("nothing should be stored on malformed output")
		}
	})

	t.Run("generator failure surfaces", func(t *testing.T) {
		svc := NewQuizService(nil, newMockRepository(), testLogger(), validator.New(), &stubGenerator{err: errors.New("deadline exceeded")}, nil)

		if _, err := svc.Generate(ctx, validGenerateRequest()); err == nil {
			t.Fatal("expected an error")
		}
	})

	t.Run("criteria are validated", func(t *testing.T) {
		svc := NewQuizService(nil, newMockRepository(), testLogger(), validator.New(), &stubGenerator{output: validGeneratorOutput}, nil)

		req := validGenerateRequest()
		req.Quantity = 50

		_, err := svc.Generate(ctx, req)
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			t.Fatalf("expected ValidationErrors, got %v", err)
		}
	})
}

func TestQuizService_GetByID(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepository()
	svc := NewQuizService(nil, repo, testLogger(), validator.New(), &stubGenerator{output: validGeneratorOutput}, nil)

	created, err := svc.Generate(ctx, validGenerateRequest())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	got, err := svc.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.ID != created.ID || len(got.Items) != 2 {
		t.Errorf("unexpected quiz: %+v", got)
	}

	if _, err := svc.GetByID(ctx, 9999); !errors.Is(err, ErrQuizNotFound) {
		t.Fatalf("expected ErrQuizNotFound, got %v", err)
	}
}
