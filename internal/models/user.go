package models

import (
	"time"
)

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// MaxFailedAttempts is the number of consecutive failed sign-ins that
// permanently blocks an account. Only an administrator can clear the flag.
const MaxFailedAttempts = 5

type User struct {
	ID       uint     `json:"id" gorm:"primaryKey"`
	Email    string   `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Username string   `json:"username" gorm:"not null;size:100"`
	Role     UserRole `json:"role" gorm:"default:user;size:20"`

	// Credential. Empty for social-login accounts.
	PasswordHash string `json:"-" gorm:"size:100"`
	SocialLogin  bool   `json:"social_login" gorm:"default:false"`

	// Sign-in security state. FailedAttempts is mutated only by the sign-in
	// flow, via an atomic SQL increment.
	FailedAttempts int        `json:"failed_attempts" gorm:"not null;default:0"`
	Blocked        bool       `json:"blocked" gorm:"not null;default:false;index"`
	LastLoginAt    *time.Time `json:"last_login_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// Sanitized returns a copy safe to return to callers.
func (u *User) Sanitized() *User {
	out := *u
	out.PasswordHash = ""
	return &out
}
