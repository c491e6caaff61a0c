package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/quizmania/quiz-service/internal/cache"
	"github.com/quizmania/quiz-service/internal/events"
	"github.com/quizmania/quiz-service/internal/generator"
	"github.com/quizmania/quiz-service/internal/mailer"
	"github.com/quizmania/quiz-service/internal/repositories"
	"github.com/quizmania/quiz-service/internal/validator"
)

// ServiceManagerConfig holds configuration for the service manager
type ServiceManagerConfig struct {
	Account AccountServiceConfig

	// Global settings
	DefaultTimeout time.Duration
}

// serviceManager implements ServiceManager interface
type serviceManager struct {
	// Dependencies
	db           *gorm.DB
	repo         repositories.Repository
	logger       *slog.Logger
	validator    *validator.Validator
	mailer       mailer.Mailer
	generator    generator.QuizGenerator
	publisher    events.EventPublisher
	cacheManager *cache.CacheManager
	config       ServiceManagerConfig

	// Service instances
	accountService AccountService
	quizService    QuizService
	gradingService GradingService
	statsService   StatsService

	// Lifecycle management
	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

// NewServiceManager creates a new service manager with all dependencies
func NewServiceManager(
	db *gorm.DB,
	repo repositories.Repository,
	logger *slog.Logger,
	validator *validator.Validator,
	mailer mailer.Mailer,
	generator generator.QuizGenerator,
	publisher events.EventPublisher,
	cacheManager *cache.CacheManager,
	config ServiceManagerConfig,
) ServiceManager {
	return &serviceManager{
		db:           db,
		repo:         repo,
		logger:       logger,
		validator:    validator,
		mailer:       mailer,
		generator:    generator,
		publisher:    publisher,
		cacheManager: cacheManager,
		config:       config,
	}
}

// Initialize sets up all services and their dependencies
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	sm.logger.Info("Initializing service manager")

	sm.accountService = NewAccountService(sm.db, sm.repo, sm.logger, sm.validator, sm.mailer, sm.publisher, sm.config.Account)
	sm.logger.Info("Account service initialized")

	sm.quizService = NewQuizService(sm.db, sm.repo, sm.logger, sm.validator, sm.generator, sm.publisher)
	sm.logger.Info("Quiz service initialized")

	sm.gradingService = NewGradingService(sm.db, sm.repo, sm.logger, sm.validator, sm.publisher)
	sm.logger.Info("Grading service initialized")

	sm.statsService = NewStatsService(sm.db, sm.repo, sm.logger, sm.cacheManager)
	sm.logger.Info("Stats service initialized")

	sm.initialized = true
	sm.logger.Info("Service manager initialized successfully")

	return nil
}

// Service getters
func (sm *serviceManager) Account() AccountService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized || sm.accountService == nil {
		panic("account service not initialized")
	}
	return sm.accountService
}

func (sm *serviceManager) Quiz() QuizService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized || sm.quizService == nil {
		panic("quiz service not initialized")
	}
	return sm.quizService
}

func (sm *serviceManager) Grading() GradingService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized || sm.gradingService == nil {
		panic("grading service not initialized")
	}
	return sm.gradingService
}

func (sm *serviceManager) Stats() StatsService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized || sm.statsService == nil {
		panic("stats service not initialized")
	}
	return sm.statsService
}

// Health and lifecycle
func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("service manager not initialized")
	}

	if sm.shutdown {
		return fmt.Errorf("service manager is shut down")
	}

	if err := sm.repo.Ping(ctx); err != nil {
		return fmt.Errorf("repository health check failed: %w", err)
	}

	return nil
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.logger.Info("Shutting down service manager")

	if sm.publisher != nil {
		if err := sm.publisher.Close(); err != nil {
			sm.logger.Error("failed to close event publisher", "error", err)
		}
	}

	sm.shutdown = true
	sm.logger.Info("Service manager shut down")

	return nil
}
