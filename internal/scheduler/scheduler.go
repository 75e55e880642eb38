package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/karangnongko/goatherd/internal/config"
	"github.com/karangnongko/goatherd/internal/service/reporting"
)

// Scheduler runs the monthly feeding-report export on the configured cron
// schedule.
type Scheduler struct {
	cron         *cron.Cron
	reportingSvc *reporting.Service
	cfg          config.ReportingConfig
	logger       *zap.Logger
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(cfg config.ReportingConfig, reportingSvc *reporting.Service, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		cron:         cron.New(),
		reportingSvc: reportingSvc,
		cfg:          cfg,
		logger:       logger,
	}
}

// Start registers the report job and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.CronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.CronSchedule, s.exportMonthlyReport); err != nil {
		s.logger.Error("failed to schedule monthly report", zap.Error(err))
		return
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) exportMonthlyReport() {
	s.logger.Info("exporting monthly feeding report")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	report, err := s.reportingSvc.ExportPrevious(ctx, time.Now())
	if err != nil {
		s.logger.Error("failed to export monthly report", zap.Error(err))
		return
	}

	s.logger.Info("monthly feeding report stored",
		zap.String("month", report.Month),
		zap.Int("logs", report.LogCount))
}
