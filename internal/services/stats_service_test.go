package services

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/datatypes"

	"github.com/quizmania/quiz-service/internal/cache"
	"github.com/quizmania/quiz-service/internal/models"
)

func seedUser(repo *mockRepository, email string) *models.User {
	user := &models.User{Email: email, Username: "tester", Role: models.RoleUser, PasswordHash: "x"}
	repo.users.Create(context.Background(), nil, user)
	return user
}

func seedSolvedQuiz(repo *mockRepository, email string, correct, total int) {
	items := make([]models.QuizItem, total)
	for i := range items {
		items[i] = models.QuizItem{Type: models.ItemTypeTrueFalse, Question: "q", Answer: "True"}
	}
	incorrect := total - correct
	quiz := &models.Quiz{
		UserEmail:      email,
		Items:          datatypes.NewJSONSlice(items),
		Status:         models.QuizSolved,
		CorrectCount:   &correct,
		IncorrectCount: &incorrect,
	}
	repo.quiz.Create(context.Background(), nil, quiz)
}

func TestStatsService_UserStats(t *testing.T) {
	ctx := context.Background()

	t.Run("aggregates solved quizzes", func(t *testing.T) {
		repo := newMockRepository()
		svc := NewStatsService(nil, repo, testLogger(), cache.NewCacheManager(nil))

		seedUser(repo, "player@example.com")
		seedSolvedQuiz(repo, "player@example.com", 3, 4)
		seedSolvedQuiz(repo, "player@example.com", 2, 4)
		seedQuiz(repo, []models.QuizItem{{Type: models.ItemTypeTrueFalse, Question: "open", Answer: "True"}})

		// The unsolved quiz belongs to another user; add one unsolved for
		// this user too.
		repo.quiz.Create(ctx, nil, &models.Quiz{UserEmail: "player@example.com", Status: models.QuizUnsolved})

		stats, err := svc.UserStats(ctx, "player@example.com")
		if err != nil {
			t.Fatalf("UserStats failed: %v", err)
		}

		if stats.TotalQuizzes != 3 {
			t.Errorf("total = %d, want 3", stats.TotalQuizzes)
		}
		if stats.SolvedQuizzes != 2 {
			t.Errorf("solved = %d, want 2", stats.SolvedQuizzes)
		}
		if stats.TotalCorrect != 5 || stats.TotalPossible != 8 {
			t.Errorf("correct/possible = %d/%d, want 5/8", stats.TotalCorrect, stats.TotalPossible)
		}
		// 5/8 floors to 62.
		if stats.AveragePercent != "62%" {
			t.Errorf("average = %q, want 62%%", stats.AveragePercent)
		}
	})

	t.Run("no solved quizzes yields zero percent", func(t *testing.T) {
		repo := newMockRepository()
		svc := NewStatsService(nil, repo, testLogger(), cache.NewCacheManager(nil))

		seedUser(repo, "fresh@example.com")
		repo.quiz.Create(ctx, nil, &models.Quiz{UserEmail: "fresh@example.com", Status: models.QuizUnsolved})

		stats, err := svc.UserStats(ctx, "fresh@example.com")
		if err != nil {
			t.Fatalf("UserStats failed: %v", err)
		}
		if stats.AveragePercent != "0%" {
			t.Errorf("average = %q, want 0%%", stats.AveragePercent)
		}
		if stats.TotalQuizzes != 1 || stats.SolvedQuizzes != 0 {
			t.Errorf("counts = %d/%d, want 1/0", stats.TotalQuizzes, stats.SolvedQuizzes)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		svc := NewStatsService(nil, newMockRepository(), testLogger(), cache.NewCacheManager(nil))

		_, err := svc.UserStats(ctx, "ghost@example.com")
		if !errors.Is(err, ErrUserNotFound) {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("second read is served from cache", func(t *testing.T) {
		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		defer client.Close()

		repo := newMockRepository()
		svc := NewStatsService(nil, repo, testLogger(), cache.NewCacheManager(client))

		seedUser(repo, "cached@example.com")
		seedSolvedQuiz(repo, "cached@example.com", 1, 2)

		first, err := svc.UserStats(ctx, "cached@example.com")
		if err != nil {
			t.Fatalf("UserStats failed: %v", err)
		}

		// New data after caching is not visible until the TTL lapses.
		seedSolvedQuiz(repo, "cached@example.com", 2, 2)

		second, err := svc.UserStats(ctx, "cached@example.com")
		if err != nil {
			t.Fatalf("UserStats failed: %v", err)
		}
		if second.SolvedQuizzes != first.SolvedQuizzes {
			t.Errorf("expected cached value %d, got %d", first.SolvedQuizzes, second.SolvedQuizzes)
		}

		mr.FastForward(cache.StatsCacheConfig.TTL + 1)

		third, err := svc.UserStats(ctx, "cached@example.com")
		if err != nil {
			t.Fatalf("UserStats failed: %v", err)
		}
		if third.SolvedQuizzes != 2 {
			t.Errorf("expected fresh value 2 after expiry, got %d", third.SolvedQuizzes)
		}
	})
}

func TestStatsService_AdminStats(t *testing.T) {
	ctx := context.Background()

	t.Run("empty store yields empty non-nil slices", func(t *testing.T) {
		svc := NewStatsService(nil, newMockRepository(), testLogger(), cache.NewCacheManager(nil))

		stats, err := svc.AdminStats(ctx)
		if err != nil {
			t.Fatalf("AdminStats failed: %v", err)
		}
		if stats.Users == nil || stats.Quizzes == nil || stats.SolvedQuizzes == nil {
			t.Fatal("slices must never be nil")
		}
		if len(stats.Users) != 0 || len(stats.Quizzes) != 0 || len(stats.SolvedQuizzes) != 0 {
			t.Errorf("expected empty slices, got %+v", stats)
		}
	})

	t.Run("partitions solved quizzes and strips hashes", func(t *testing.T) {
		repo := newMockRepository()
		svc := NewStatsService(nil, repo, testLogger(), cache.NewCacheManager(nil))

		seedUser(repo, "a@example.com")
		seedUser(repo, "b@example.com")
		seedSolvedQuiz(repo, "a@example.com", 1, 1)
		repo.quiz.Create(ctx, nil, &models.Quiz{UserEmail: "b@example.com", Status: models.QuizUnsolved})

		stats, err := svc.AdminStats(ctx)
		if err != nil {
			t.Fatalf("AdminStats failed: %v", err)
		}

		if len(stats.Users) != 2 || len(stats.Quizzes) != 2 || len(stats.SolvedQuizzes) != 1 {
			t.Errorf("counts = %d/%d/%d, want 2/2/1", len(stats.Users), len(stats.Quizzes), len(stats.SolvedQuizzes))
		}
		for _, u := range stats.Users {
			if u.PasswordHash != "" {
				t.Error("credential hashes must be stripped")
			}
		}
	})
}

func TestStatsService_ExportAdminStats(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepository()
	svc := NewStatsService(nil, repo, testLogger(), cache.NewCacheManager(nil))

	seedUser(repo, "a@example.com")
	seedSolvedQuiz(repo, "a@example.com", 2, 3)

	f, err := svc.ExportAdminStats(ctx)
	if err != nil {
		t.Fatalf("ExportAdminStats failed: %v", err)
	}
	defer f.Close()

	email, err := f.GetCellValue("Users", "B2")
	if err != nil {
		t.Fatalf("GetCellValue failed: %v", err)
	}
	if email != "a@example.com" {
		t.Errorf("Users B2 = %q, want the seeded email", email)
	}

	owner, err := f.GetCellValue("Quizzes", "B2")
	if err != nil {
		t.Fatalf("GetCellValue failed: %v", err)
	}
	if owner != "a@example.com" {
		t.Errorf("Quizzes B2 = %q, want the seeded owner", owner)
	}
}
