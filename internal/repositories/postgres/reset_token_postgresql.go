package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/quizmania/quiz-service/internal/models"
	"github.com/quizmania/quiz-service/internal/repositories"
)

type ResetTokenPostgreSQL struct {
	db *gorm.DB
}

func NewResetTokenPostgreSQL(db *gorm.DB) repositories.ResetTokenRepository {
	return &ResetTokenPostgreSQL{db: db}
}

func (r *ResetTokenPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// Upsert keeps at most one live token per email: a second request for the
// same email refreshes expires_at instead of inserting a duplicate row.
func (r *ResetTokenPostgreSQL) Upsert(ctx context.Context, tx *gorm.DB, email string, expiresAt time.Time) error {
	db := r.getDB(tx)
	token := models.PasswordResetToken{
		Email:     email,
		ExpiresAt: expiresAt,
	}
	err := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoUpdates: clause.AssignmentColumns([]string{"expires_at", "updated_at"}),
		}).
		Create(&token).Error
	if err != nil {
		return fmt.Errorf("failed to upsert reset token: %w", err)
	}
	return nil
}

func (r *ResetTokenPostgreSQL) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.PasswordResetToken, error) {
	db := r.getDB(tx)
	var token models.PasswordResetToken
	if err := db.WithContext(ctx).Where("email = ?", email).First(&token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("reset token for %s: %w", email, repositories.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get reset token: %w", err)
	}
	return &token, nil
}
