package task

import (
	"github.com/blues/chainstats/internal/config"
	"github.com/blues/chainstats/internal/logger"
	"github.com/blues/chainstats/internal/repository"
	"github.com/blues/chainstats/internal/upstream"
	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// Job is a scheduled unit of work.
type Job interface {
	GetName() string
	GetSchedule() gocron.JobDefinition
	Execute()
}

// Manager owns the gocron scheduler and the registered jobs.
type Manager struct {
	scheduler gocron.Scheduler
	db        *gorm.DB
	config    *config.Config
}

// NewManager creates the task manager.
func NewManager(db *gorm.DB, cfg *config.Config) *Manager {
	s, err := gocron.NewScheduler()
	if err != nil {
		logger.Fatal("Failed to create scheduler: %v", err)
	}

	return &Manager{
		scheduler: s,
		db:        db,
		config:    cfg,
	}
}

// Start creates a manager, registers all jobs and starts the scheduler.
func Start(db *gorm.DB, cfg *config.Config) *Manager {
	manager := NewManager(db, cfg)
	manager.RegisterJobs()
	manager.scheduler.Start()

	logger.Info("Task manager started")
	return manager
}

// RegisterJobs registers every recurring job.
func (m *Manager) RegisterJobs() {
	statsClient := upstream.NewClient(m.config.Upstream.URL, m.config.Upstream.TimeoutDuration())
	blockRepo := repository.NewBlockRepository(m.db)

	m.register(NewBlockFetchJob(blockRepo, statsClient, m.config))
}

// register adds one job. Singleton mode keeps a slow run from overlapping
// the next tick; the pending tick is rescheduled, not queued.
func (m *Manager) register(job Job) {
	_, err := m.scheduler.NewJob(
		job.GetSchedule(),
		gocron.NewTask(job.Execute),
		gocron.WithName(job.GetName()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		logger.Error("Failed to register job %s: %v", job.GetName(), err)
	}
}

// Stop shuts the scheduler down.
func (m *Manager) Stop() {
	if err := m.scheduler.Shutdown(); err != nil {
		logger.Error("Failed to shutdown scheduler: %v", err)
	}
	logger.Info("Task manager stopped")
}
