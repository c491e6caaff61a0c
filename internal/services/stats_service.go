package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/quizmania/quiz-service/internal/cache"
	"github.com/quizmania/quiz-service/internal/models"
	"github.com/quizmania/quiz-service/internal/repositories"
)

type statsService struct {
	db           *gorm.DB
	repo         repositories.Repository
	logger       *slog.Logger
	cacheManager *cache.CacheManager
}

func NewStatsService(
	db *gorm.DB,
	repo repositories.Repository,
	logger *slog.Logger,
	cacheManager *cache.CacheManager,
) StatsService {
	return &statsService{
		db:           db,
		repo:         repo,
		logger:       logger,
		cacheManager: cacheManager,
	}
}

// UserStats aggregates a user's quiz history. Correct answers and possible
// answers are summed over solved quizzes only; the average is the floored
// integer percentage of that ratio, "0%" when the user has solved nothing.
func (s *statsService) UserStats(ctx context.Context, email string) (*UserStatsResponse, error) {
	if _, err := s.repo.User().GetByEmail(ctx, nil, email); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	var stats UserStatsResponse
	cacheKey := fmt.Sprintf("user:%s", email)

	err := s.cacheManager.Stats.CacheOrExecute(ctx, cacheKey, &stats, cache.StatsCacheConfig.TTL, func() (interface{}, error) {
		computed, err := s.computeUserStats(ctx, email)
		if err != nil {
			return nil, err
		}
		return computed, nil
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *statsService) computeUserStats(ctx context.Context, email string) (*UserStatsResponse, error) {
	quizzes, err := s.repo.Quiz().GetByOwner(ctx, nil, email, repositories.QuizFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}

	stats := &UserStatsResponse{Email: email, TotalQuizzes: len(quizzes)}
	for _, quiz := range quizzes {
		if quiz.Status != models.QuizSolved {
			continue
		}
		stats.SolvedQuizzes++
		stats.TotalPossible += len(quiz.Items)
		if quiz.CorrectCount != nil {
			stats.TotalCorrect += *quiz.CorrectCount
		}
	}

	if stats.TotalPossible == 0 {
		stats.AveragePercent = "0%"
	} else {
		stats.AveragePercent = fmt.Sprintf("%d%%", stats.TotalCorrect*100/stats.TotalPossible)
	}
	return stats, nil
}

// AdminStats returns the full user list, all quizzes and the solved subset.
// Credential hashes are stripped from the user records. Every slice is
// non-nil even when the store is empty.
func (s *statsService) AdminStats(ctx context.Context) (*AdminStatsResponse, error) {
	users, err := s.repo.User().List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	quizzes, err := s.repo.Quiz().List(ctx, nil, repositories.QuizFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}

	stats := &AdminStatsResponse{
		Users:         make([]*models.User, 0, len(users)),
		Quizzes:       make([]*models.Quiz, 0, len(quizzes)),
		SolvedQuizzes: make([]*models.Quiz, 0),
	}

	for _, user := range users {
		stats.Users = append(stats.Users, user.Sanitized())
	}
	for _, quiz := range quizzes {
		stats.Quizzes = append(stats.Quizzes, quiz)
		if quiz.Status == models.QuizSolved {
			stats.SolvedQuizzes = append(stats.SolvedQuizzes, quiz)
		}
	}
	return stats, nil
}

// ExportAdminStats renders the admin summary as a spreadsheet with a sheet
// of users and a sheet of quizzes.
func (s *statsService) ExportAdminStats(ctx context.Context) (*excelize.File, error) {
	stats, err := s.AdminStats(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()

	const usersSheet = "Users"
	f.SetSheetName("Sheet1", usersSheet)
	userHeaders := []string{"ID", "Email", "Username", "Role", "Social Login", "Failed Attempts", "Blocked", "Last Login"}
	for i, h := range userHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(usersSheet, cell, h)
	}
	for row, user := range stats.Users {
		lastLogin := ""
		if user.LastLoginAt != nil {
			lastLogin = user.LastLoginAt.Format("2006-01-02 15:04:05")
		}
		values := []interface{}{user.ID, user.Email, user.Username, string(user.Role), user.SocialLogin, user.FailedAttempts, user.Blocked, lastLogin}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(usersSheet, cell, v)
		}
	}

	const quizSheet = "Quizzes"
	if _, err := f.NewSheet(quizSheet); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	quizHeaders := []string{"ID", "Owner", "Topic", "Difficulty", "Type", "Questions", "Status", "Correct", "Incorrect", "Created"}
	for i, h := range quizHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(quizSheet, cell, h)
	}
	for row, quiz := range stats.Quizzes {
		correct, incorrect := "", ""
		if quiz.CorrectCount != nil {
			correct = fmt.Sprintf("%d", *quiz.CorrectCount)
		}
		if quiz.IncorrectCount != nil {
			incorrect = fmt.Sprintf("%d", *quiz.IncorrectCount)
		}
		values := []interface{}{quiz.ID, quiz.UserEmail, quiz.Topic, quiz.Difficulty, quiz.QuizType, len(quiz.Items), string(quiz.Status), correct, incorrect, quiz.CreatedAt.Format("2006-01-02 15:04:05")}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(quizSheet, cell, v)
		}
	}

	s.logger.Info("admin stats exported", "users", len(stats.Users), "quizzes", len(stats.Quizzes))
	return f, nil
}
