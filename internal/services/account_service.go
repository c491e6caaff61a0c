package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/quizmania/quiz-service/internal/events"
	"github.com/quizmania/quiz-service/internal/hash"
	"github.com/quizmania/quiz-service/internal/mailer"
	"github.com/quizmania/quiz-service/internal/models"
	"github.com/quizmania/quiz-service/internal/repositories"
	"github.com/quizmania/quiz-service/internal/validator"
)

// AccountServiceConfig carries the account-flow settings.
type AccountServiceConfig struct {
	// ResetLinkBase is the frontend URL prefix the reset link is built from;
	// the user ID is appended as the final path segment.
	ResetLinkBase string

	// BcryptCost is the hashing work factor; zero selects the default.
	BcryptCost int
}

type accountService struct {
	db        *gorm.DB
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	mailer    mailer.Mailer
	publisher events.EventPublisher
	config    AccountServiceConfig
}

func NewAccountService(
	db *gorm.DB,
	repo repositories.Repository,
	logger *slog.Logger,
	validator *validator.Validator,
	mailer mailer.Mailer,
	publisher events.EventPublisher,
	config AccountServiceConfig,
) AccountService {
	return &accountService{
		db:        db,
		repo:      repo,
		logger:    logger,
		validator: validator,
		mailer:    mailer,
		publisher: publisher,
		config:    config,
	}
}

// SignUp creates a local or social account. Email is the unique key; a
// duplicate signup fails without touching the existing record.
func (s *accountService) SignUp(ctx context.Context, req *SignUpRequest) (*SignUpResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	exists, err := s.repo.User().ExistsByEmail(ctx, nil, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, ErrEmailExists
	}

	user := &models.User{
		Email:       req.Email,
		Username:    req.Username,
		Role:        models.RoleUser,
		SocialLogin: req.SocialLogin,
	}
	if !req.SocialLogin {
		hashed, err := hash.Password(req.Password, s.config.BcryptCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = hashed
	}

	if err := s.repo.User().Create(ctx, nil, user); err != nil {
		if repositories.IsDuplicateKeyError(err) {
			// Lost a race with a concurrent signup for the same email.
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user signed up",
		"user_id", user.ID,
		"social_login", req.SocialLogin)

	s.publish(ctx, events.NewEvent(events.TypeUserSignedUp, events.UserSignedUpEvent{
		UserID:      user.ID,
		Email:       user.Email,
		SocialLogin: user.SocialLogin,
	}))

	return &SignUpResponse{UserID: user.ID}, nil
}

// SignIn authenticates a user and applies the lockout rules. The blocked
// check precedes credential comparison; the failed-attempt counter is reset
// only on success, so exactly five consecutive wrong attempts block the
// account permanently.
func (s *accountService) SignIn(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.repo.User().GetByEmail(ctx, nil, email)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if user.Blocked {
		return nil, ErrAccountBlocked
	}

	if !hash.Verify(password, user.PasswordHash) {
		count, err := s.repo.User().IncrementFailedAttempts(ctx, nil, user.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count sign-in attempt: %w", err)
		}

		if count >= models.MaxFailedAttempts {
			if err := s.repo.User().Block(ctx, nil, user.ID); err != nil {
				return nil, fmt.Errorf("failed to block user: %w", err)
			}

			s.logger.Warn("account blocked after repeated sign-in failures",
				"user_id", user.ID,
				"failed_attempts", count)

			s.publish(ctx, events.NewEvent(events.TypeUserBlocked, events.UserBlockedEvent{
				UserID: user.ID,
				Email:  user.Email,
			}))

			return nil, ErrAccountBlocked
		}

		return nil, &CredentialError{RemainingAttempts: models.MaxFailedAttempts - count}
	}

	now := time.Now()
	if err := s.repo.User().RecordLogin(ctx, nil, user.ID, now); err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}

	user.FailedAttempts = 0
	user.LastLoginAt = &now

	return user.Sanitized(), nil
}

func (s *accountService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.repo.User().GetByEmail(ctx, nil, email)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user.Sanitized(), nil
}

// RequestPasswordReset issues a reset token and emails a reset link. A second
// request for the same email refreshes the existing token; querying tokens by
// email never yields more than one record. Success is reported only after the
// dispatch attempt.
func (s *accountService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.repo.User().GetByEmail(ctx, nil, email)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	expiresAt := time.Now().Add(models.ResetTokenTTL)
	if err := s.repo.ResetToken().Upsert(ctx, nil, user.Email, expiresAt); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	resetLink := fmt.Sprintf("%s/%d", s.config.ResetLinkBase, user.ID)
	if err := s.mailer.SendPasswordReset(ctx, user.Email, user.Username, resetLink); err != nil {
		s.logger.Error("reset email dispatch failed", "user_id", user.ID, "error", err)
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	s.logger.Info("password reset requested", "user_id", user.ID)
	return nil
}

// ConfirmPasswordReset verifies the live token for the user's email and
// overwrites the credential. It does not clear failedAttempts or blocked; a
// blocked account stays blocked even with a fresh password.
func (s *accountService) ConfirmPasswordReset(ctx context.Context, userID uint, newPassword string) error {
	if err := s.validator.Validate(&validator.ConfirmResetRequest{NewPassword: newPassword}); err != nil {
		return err
	}

	user, err := s.repo.User().GetByID(ctx, nil, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	token, err := s.repo.ResetToken().GetByEmail(ctx, nil, user.Email)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrTokenExpired
		}
		return fmt.Errorf("failed to get reset token: %w", err)
	}
	if token.Expired(time.Now()) {
		return ErrTokenExpired
	}

	hashed, err := hash.Password(newPassword, s.config.BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.repo.User().UpdatePassword(ctx, nil, user.ID, hashed); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.logger.Info("password reset confirmed", "user_id", user.ID)
	return nil
}

func (s *accountService) publish(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish event", "event_type", event.Type, "error", err)
	}
}
