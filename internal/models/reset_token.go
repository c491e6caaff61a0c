package models

import "time"

// ResetTokenTTL is the validity window of a password-reset token.
const ResetTokenTTL = 5 * time.Minute

// PasswordResetToken authorizes one password change for an email. The email
// is the primary key, so a fresh request refreshes the existing token instead
// of duplicating it. Stale tokens are rejected by timestamp comparison at
// confirmation time rather than deleted.
type PasswordResetToken struct {
	Email     string    `json:"email" gorm:"primaryKey;size:255"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (PasswordResetToken) TableName() string {
	return "password_reset_tokens"
}

// Expired reports whether the token is past its validity window at now.
func (t *PasswordResetToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
