package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/courseloop/learning-service/internal/cache"
	"github.com/courseloop/learning-service/internal/repositories"
)

// PostgreSQLRepository implements the main Repository interface.
type PostgreSQLRepository struct {
	db           *gorm.DB
	redisClient  *redis.Client
	cacheManager *cache.CacheManager

	user   repositories.UserRepository
	course repositories.CourseRepository
	note   repositories.NoteRepository
	quiz   repositories.QuizRepository
	score  repositories.ScoreRepository
}

// RepositoryConfig holds configuration for repository initialization.
type RepositoryConfig struct {
	DB          *gorm.DB
	RedisClient *redis.Client
}

// NewPostgreSQLRepository creates a repository aggregate with all
// sub-repositories bound to the given database handle.
func NewPostgreSQLRepository(config RepositoryConfig) repositories.Repository {
	return newPostgreSQLRepository(config.DB, config.RedisClient)
}

func newPostgreSQLRepository(db *gorm.DB, redisClient *redis.Client) *PostgreSQLRepository {
	cacheManager := cache.NewCacheManager(redisClient)

	return &PostgreSQLRepository{
		db:           db,
		redisClient:  redisClient,
		cacheManager: cacheManager,
		user:         NewUserPostgreSQL(db),
		course:       NewCoursePostgreSQL(db, cacheManager),
		note:         NewNotePostgreSQL(db),
		quiz:         NewQuizPostgreSQL(db, cacheManager),
		score:        NewScorePostgreSQL(db, cacheManager),
	}
}

func (r *PostgreSQLRepository) User() repositories.UserRepository     { return r.user }
func (r *PostgreSQLRepository) Course() repositories.CourseRepository { return r.course }
func (r *PostgreSQLRepository) Note() repositories.NoteRepository     { return r.note }
func (r *PostgreSQLRepository) Quiz() repositories.QuizRepository     { return r.quiz }
func (r *PostgreSQLRepository) Score() repositories.ScoreRepository   { return r.score }

// WithTransaction executes fn against a Repository rebound to one transaction.
func (r *PostgreSQLRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(newPostgreSQLRepository(tx, r.redisClient))
	})
}

// Ping checks database connectivity.
func (r *PostgreSQLRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the underlying connections.
func (r *PostgreSQLRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

// repositoryManager implements repositories.RepositoryManager.
type repositoryManager struct {
	config RepositoryConfig
	repo   repositories.Repository
}

func NewRepositoryManager(config RepositoryConfig) repositories.RepositoryManager {
	return &repositoryManager{config: config}
}

func (m *repositoryManager) Initialize() error {
	if m.config.DB == nil {
		return fmt.Errorf("database handle is required")
	}
	m.repo = NewPostgreSQLRepository(m.config)
	return nil
}

func (m *repositoryManager) GetRepository() repositories.Repository {
	return m.repo
}

func (m *repositoryManager) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return m.repo.Ping(ctx)
}

func (m *repositoryManager) Shutdown(_ context.Context) error {
	if m.repo == nil {
		return nil
	}
	return m.repo.Close()
}
