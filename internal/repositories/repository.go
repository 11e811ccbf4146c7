package repositories

import "context"

// Repository aggregates every entity repository used by the services.
type Repository interface {
	User() UserRepository
	Course() CourseRepository
	Note() NoteRepository
	Quiz() QuizRepository
	Score() ScoreRepository

	// WithTransaction runs fn against a Repository bound to one database
	// transaction; returning an error rolls the transaction back.
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
