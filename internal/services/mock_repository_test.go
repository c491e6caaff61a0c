package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/quizmania/quiz-service/internal/models"
	"github.com/quizmania/quiz-service/internal/repositories"
)

// mockRepository is an in-memory Repository for service tests.
type mockRepository struct {
	users  *mockUserRepository
	quiz   *mockQuizRepository
	tokens *mockResetTokenRepository
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		users:  &mockUserRepository{byID: make(map[uint]*models.User)},
		quiz:   &mockQuizRepository{byID: make(map[uint]*models.Quiz)},
		tokens: &mockResetTokenRepository{byEmail: make(map[string]*models.PasswordResetToken)},
	}
}

func (m *mockRepository) User() repositories.UserRepository             { return m.users }
func (m *mockRepository) Quiz() repositories.QuizRepository             { return m.quiz }
func (m *mockRepository) ResetToken() repositories.ResetTokenRepository { return m.tokens }
func (m *mockRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(m)
}
func (m *mockRepository) Ping(ctx context.Context) error { return nil }
func (m *mockRepository) Close() error                   { return nil }

// ===== users =====

type mockUserRepository struct {
	byID   map[uint]*models.User
	nextID uint
}

func (m *mockUserRepository) Create(ctx context.Context, tx *gorm.DB, user *models.User) error {
	for _, u := range m.byID {
		if u.Email == user.Email {
			return repositories.ErrDuplicateKey
		}
	}
	m.nextID++
	user.ID = m.nextID
	cp := *user
	m.byID[user.ID] = &cp
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, error) {
	for _, u := range m.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	for _, u := range m.byID {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserRepository) List(ctx context.Context, tx *gorm.DB) ([]*models.User, error) {
	out := make([]*models.User, 0, len(m.byID))
	for id := uint(1); id <= m.nextID; id++ {
		if u, ok := m.byID[id]; ok {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *mockUserRepository) IncrementFailedAttempts(ctx context.Context, tx *gorm.DB, id uint) (int, error) {
	u, ok := m.byID[id]
	if !ok {
		return 0, repositories.ErrNotFound
	}
	u.FailedAttempts++
	return u.FailedAttempts, nil
}

func (m *mockUserRepository) Block(ctx context.Context, tx *gorm.DB, id uint) error {
	u, ok := m.byID[id]
	if !ok {
		return repositories.ErrNotFound
	}
	u.Blocked = true
	return nil
}

func (m *mockUserRepository) RecordLogin(ctx context.Context, tx *gorm.DB, id uint, at time.Time) error {
	u, ok := m.byID[id]
	if !ok {
		return repositories.ErrNotFound
	}
	u.FailedAttempts = 0
	u.LastLoginAt = &at
	return nil
}

func (m *mockUserRepository) UpdatePassword(ctx context.Context, tx *gorm.DB, id uint, passwordHash string) error {
	u, ok := m.byID[id]
	if !ok {
		return repositories.ErrNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

// ===== quizzes =====

type mockQuizRepository struct {
	byID      map[uint]*models.Quiz
	nextID    uint
	createErr error
}

func (m *mockQuizRepository) Create(ctx context.Context, tx *gorm.DB, quiz *models.Quiz) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	quiz.ID = m.nextID
	cp := *quiz
	m.byID[quiz.ID] = &cp
	return nil
}

func (m *mockQuizRepository) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Quiz, error) {
	q, ok := m.byID[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *q
	return &cp, nil
}

func (m *mockQuizRepository) GetByOwner(ctx context.Context, tx *gorm.DB, email string, filters repositories.QuizFilters) ([]*models.Quiz, error) {
	var out []*models.Quiz
	for id := uint(1); id <= m.nextID; id++ {
		if q, ok := m.byID[id]; ok && q.UserEmail == email {
			cp := *q
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *mockQuizRepository) List(ctx context.Context, tx *gorm.DB, filters repositories.QuizFilters) ([]*models.Quiz, error) {
	var out []*models.Quiz
	for id := uint(1); id <= m.nextID; id++ {
		if q, ok := m.byID[id]; ok {
			if filters.Status != nil && q.Status != *filters.Status {
				continue
			}
			cp := *q
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *mockQuizRepository) UpdateGrading(ctx context.Context, tx *gorm.DB, quiz *models.Quiz) error {
	stored, ok := m.byID[quiz.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	stored.Items = quiz.Items
	stored.Status = quiz.Status
	stored.CorrectCount = quiz.CorrectCount
	stored.IncorrectCount = quiz.IncorrectCount
	return nil
}

// ===== reset tokens =====

type mockResetTokenRepository struct {
	byEmail map[string]*models.PasswordResetToken
}

func (m *mockResetTokenRepository) Upsert(ctx context.Context, tx *gorm.DB, email string, expiresAt time.Time) error {
	m.byEmail[email] = &models.PasswordResetToken{Email: email, ExpiresAt: expiresAt}
	return nil
}

func (m *mockResetTokenRepository) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.PasswordResetToken, error) {
	t, ok := m.byEmail[email]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

// ===== mailer =====

// mockMailer records reset mails and optionally fails delivery.
type mockMailer struct {
	sent     []string
	failSend bool
}

func (m *mockMailer) SendPasswordReset(ctx context.Context, recipient, username, resetLink string) error {
	if m.failSend {
		return fmt.Errorf("smtp connection refused")
	}
	m.sent = append(m.sent, recipient)
	return nil
}
