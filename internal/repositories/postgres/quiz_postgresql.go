package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/quizmania/quiz-service/internal/cache"
	"github.com/quizmania/quiz-service/internal/models"
	"github.com/quizmania/quiz-service/internal/repositories"
)

type QuizPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewQuizPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.QuizRepository {
	return &QuizPostgreSQL{
		db:           db,
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

func (r *QuizPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *QuizPostgreSQL) Create(ctx context.Context, tx *gorm.DB, quiz *models.Quiz) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Create(quiz).Error; err != nil {
		return fmt.Errorf("failed to create quiz: %w", err)
	}

	cache.SafeInvalidatePattern(ctx, r.cacheManager.Stats, fmt.Sprintf("user:%s*", quiz.UserEmail))
	cache.SafeInvalidatePattern(ctx, r.cacheManager.Stats, "admin*")

	return nil
}

// GetByID retrieves a quiz by ID with caching
func (r *QuizPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Quiz, error) {
	db := r.getDB(tx)
	cacheKey := fmt.Sprintf("id:%d", id)
	var quiz models.Quiz

	err := r.cacheManager.Quiz.CacheOrExecute(ctx, cacheKey, &quiz, cache.QuizCacheConfig.TTL, func() (interface{}, error) {
		var dbQuiz models.Quiz
		if err := db.WithContext(ctx).First(&dbQuiz, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("quiz %d: %w", id, repositories.ErrNotFound)
			}
			return nil, fmt.Errorf("failed to get quiz: %w", err)
		}
		return &dbQuiz, nil
	})
	if err != nil {
		return nil, err
	}

	return &quiz, nil
}

func (r *QuizPostgreSQL) GetByOwner(ctx context.Context, tx *gorm.DB, email string, filters repositories.QuizFilters) ([]*models.Quiz, error) {
	db := r.getDB(tx)
	query := db.WithContext(ctx).Where("user_email = ?", email)
	query = applyQuizFilters(query, filters)

	quizzes := make([]*models.Quiz, 0)
	if err := query.Order("id").Find(&quizzes).Error; err != nil {
		return nil, fmt.Errorf("failed to get quizzes by owner: %w", err)
	}
	return quizzes, nil
}

func (r *QuizPostgreSQL) List(ctx context.Context, tx *gorm.DB, filters repositories.QuizFilters) ([]*models.Quiz, error) {
	db := r.getDB(tx)
	query := applyQuizFilters(db.WithContext(ctx).Model(&models.Quiz{}), filters)

	quizzes := make([]*models.Quiz, 0)
	if err := query.Order("id").Find(&quizzes).Error; err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}
	return quizzes, nil
}

// UpdateGrading persists graded items, counts and status, then drops stale
// cache entries for the quiz and its owner's stats.
func (r *QuizPostgreSQL) UpdateGrading(ctx context.Context, tx *gorm.DB, quiz *models.Quiz) error {
	db := r.getDB(tx)
	result := db.WithContext(ctx).
		Model(&models.Quiz{}).
		Where("id = ?", quiz.ID).
		UpdateColumns(map[string]interface{}{
			"items":           quiz.Items,
			"status":          quiz.Status,
			"correct_count":   quiz.CorrectCount,
			"incorrect_count": quiz.IncorrectCount,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update quiz grading: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("quiz %d: %w", quiz.ID, repositories.ErrNotFound)
	}

	cache.InvalidateQuizCache(ctx, r.cacheManager, quiz.ID, quiz.UserEmail)

	return nil
}

func applyQuizFilters(query *gorm.DB, filters repositories.QuizFilters) *gorm.DB {
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.UserEmail != nil {
		query = query.Where("user_email = ?", *filters.UserEmail)
	}
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}
	return query
}
