package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/quizmania/quiz-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type QuizFilters struct {
	Status    *models.QuizStatus `json:"status"`
	UserEmail *string            `json:"user_email"`
	Limit     int                `json:"limit"`
	Offset    int                `json:"offset"`
}

// ===== REPOSITORY INTERFACES =====

// UserRepository owns the user records. All mutations of the sign-in
// security state (failed_attempts, blocked) go through the dedicated
// atomic methods rather than read-modify-write.
type UserRepository interface {
	Create(ctx context.Context, tx *gorm.DB, user *models.User) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, tx *gorm.DB, email string) (bool, error)
	List(ctx context.Context, tx *gorm.DB) ([]*models.User, error)

	// IncrementFailedAttempts atomically bumps failed_attempts by one and
	// returns the post-increment count.
	IncrementFailedAttempts(ctx context.Context, tx *gorm.DB, id uint) (int, error)

	// Block sets blocked=true for the user.
	Block(ctx context.Context, tx *gorm.DB, id uint) error

	// RecordLogin resets failed_attempts to zero and stamps last_login_at.
	RecordLogin(ctx context.Context, tx *gorm.DB, id uint, at time.Time) error

	// UpdatePassword overwrites the stored credential hash.
	UpdatePassword(ctx context.Context, tx *gorm.DB, id uint, passwordHash string) error
}

type QuizRepository interface {
	Create(ctx context.Context, tx *gorm.DB, quiz *models.Quiz) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Quiz, error)
	GetByOwner(ctx context.Context, tx *gorm.DB, email string, filters QuizFilters) ([]*models.Quiz, error)
	List(ctx context.Context, tx *gorm.DB, filters QuizFilters) ([]*models.Quiz, error)

	// UpdateGrading persists the graded item list, counts and status.
	UpdateGrading(ctx context.Context, tx *gorm.DB, quiz *models.Quiz) error
}

type ResetTokenRepository interface {
	// Upsert creates the token for the email or refreshes its expiry if one
	// already exists. At most one token per email is live at any time.
	Upsert(ctx context.Context, tx *gorm.DB, email string, expiresAt time.Time) error

	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.PasswordResetToken, error)
}
