package repositories

import "context"

// Repository aggregates the per-entity repositories. The persistence layer
// exclusively owns durable state; records returned by any method are
// snapshots valid only for the duration of the calling operation.
type Repository interface {
	User() UserRepository
	Quiz() QuizRepository
	ResetToken() ResetTokenRepository

	// Transaction support
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}

// RepositoryManager manages repository lifecycle.
type RepositoryManager interface {
	Initialize() error
	GetRepository() Repository
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
