package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/courseloop/learning-service/internal/config"
	"github.com/courseloop/learning-service/internal/events"
	"github.com/courseloop/learning-service/internal/repositories"
	"github.com/courseloop/learning-service/internal/validator"
)

// serviceManager implements ServiceManager.
type serviceManager struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	cfg       *config.Config
	publisher events.EventPublisher

	authService   AuthService
	noteService   NoteService
	quizService   QuizService
	scoreService  ScoreService
	courseService CourseService

	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

// NewServiceManager creates a service manager with all dependencies. The
// event publisher is picked at Initialize time: Kafka when brokers are
// configured, an in-memory recorder otherwise.
func NewServiceManager(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, cfg *config.Config) ServiceManager {
	return &serviceManager{
		repo:      repo,
		logger:    logger,
		validator: validator,
		cfg:       cfg,
	}
}

func (m *serviceManager) Initialize(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return fmt.Errorf("service manager already initialized")
	}

	if len(m.cfg.Kafka.Brokers) > 0 {
		publisher, err := events.NewKafkaEventPublisher(m.cfg.Kafka.Brokers, m.cfg.Kafka.Topic, m.logger)
		if err != nil {
			return fmt.Errorf("failed to initialize event publisher: %w", err)
		}
		m.publisher = publisher
	} else {
		m.logger.Warn("no Kafka brokers configured, events stay in-process")
		m.publisher = events.NewMockEventPublisher(m.logger)
	}

	m.authService = NewAuthService(m.repo, m.logger, m.validator, m.cfg.Auth)
	m.noteService = NewNoteService(m.repo, m.logger, m.validator, m.publisher, m.cfg.ShareBaseURL)
	m.quizService = NewQuizService(m.repo, m.logger, m.validator, m.publisher)
	m.scoreService = NewScoreService(m.repo, m.logger)
	m.courseService = NewCourseService(m.repo, m.logger)

	m.initialized = true
	m.logger.Info("services initialized")
	return nil
}

func (m *serviceManager) Shutdown(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.shutdown {
		return nil
	}
	m.shutdown = true

	if m.publisher != nil {
		if err := m.publisher.Close(); err != nil {
			return fmt.Errorf("failed to close event publisher: %w", err)
		}
	}

	m.logger.Info("services shut down")
	return nil
}

func (m *serviceManager) Auth() AuthService {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.authService
}

func (m *serviceManager) Note() NoteService {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.noteService
}

func (m *serviceManager) Quiz() QuizService {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.quizService
}

func (m *serviceManager) Score() ScoreService {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.scoreService
}

func (m *serviceManager) Course() CourseService {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.courseService
}
