package jobs

import (
	"context"
	"fmt"
	"time"

	"carrental-backend/internal/config"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/metrics"
	"carrental-backend/internal/repository"
	"carrental-backend/internal/service"
)

const (
	JobAuditRateCards     = "audit-rate-cards"
	JobMigrateClientTypes = "migrate-client-types"
	JobSeedClientTypes    = "seed-client-types"

	jobTimeout = 10 * time.Minute
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	cars     repository.CarRepository
	services *Services
	config   *config.Config
	metrics  *metrics.Metrics
}

// Services holds all service dependencies needed by jobs
type Services struct {
	Email      service.EmailService
	ClientType service.ClientTypeService
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(cars repository.CarRepository, services *Services, cfg *config.Config, m *metrics.Metrics) *JobRunner {
	return &JobRunner{
		cars:     cars,
		services: services,
		config:   cfg,
		metrics:  m,
	}
}

func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// JobNames lists the jobs RunOnce accepts.
func JobNames() []string {
	return []string{JobAuditRateCards, JobMigrateClientTypes, JobSeedClientTypes}
}

// RunOnce runs the named job synchronously and returns its error.
func (jr *JobRunner) RunOnce(jobName string) error {
	switch jobName {
	case JobAuditRateCards:
		return jr.runWithRecovery(jobName, jr.auditRateCards)
	case JobMigrateClientTypes:
		return jr.runWithRecovery(jobName, jr.migrateClientTypes)
	case JobSeedClientTypes:
		return jr.runWithRecovery(jobName, jr.seedClientTypes)
	default:
		return fmt.Errorf("unknown job %q", jobName)
	}
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func(ctx context.Context) error) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	l := logger.WithJob(jobName)
	ctx = logger.WithContext(ctx, l)

	defer func() {
		if r := recover(); r != nil {
			l.Error("Job panicked", "panic", r)
			err = fmt.Errorf("job %s panicked: %v", jobName, r)
		}
		if err != nil {
			jr.metrics.JobRun(jobName, metrics.JobFailure)
			return
		}
		jr.metrics.JobRun(jobName, metrics.JobSuccess)
	}()

	start := time.Now()
	l.Info("Starting job")
	if err = jobFunc(ctx); err != nil {
		l.Error("Job failed", "error", err, "duration_ms", time.Since(start).Milliseconds())
		return err
	}
	l.Info("Job completed", "duration_ms", time.Since(start).Milliseconds())
	return nil
}
