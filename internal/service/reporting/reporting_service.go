// Package reporting exports the monthly feeding report to the farm
// spreadsheet and snapshots the aggregates into MongoDB.
package reporting

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/karangnongko/goatherd/internal/config"
	"github.com/karangnongko/goatherd/internal/domain/models"
	"github.com/karangnongko/goatherd/internal/repository/sheets"
	"github.com/karangnongko/goatherd/pkg/clients/farmapi"
)

const (
	monthLayout   = "2006-01"
	feedLogsRange = "FeedingLogs!A:F"
)

// SnapshotRepository stores the aggregated report after each export.
type SnapshotRepository interface {
	SaveMonthlyReport(ctx context.Context, report models.MonthlyFeedingReport) error
}

// Service builds the monthly feeding report. It authenticates with its own
// service account on the livestock API, independent of any dashboard session.
type Service struct {
	client    farmapi.Client
	sheets    sheets.Repository
	snapshots SnapshotRepository
	cfg       config.ReportingConfig
	logger    *zap.Logger
}

// NewService wires a new reporting service instance.
func NewService(client farmapi.Client, sheetsRepo sheets.Repository, snapshots SnapshotRepository, cfg config.ReportingConfig, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		client:    client,
		sheets:    sheetsRepo,
		snapshots: snapshots,
		cfg:       cfg,
		logger:    logger,
	}
}

// ExportMonth appends every feeding log of the given month to the
// spreadsheet and stores an aggregate snapshot. Returns the snapshot for
// logging and tests.
func (s *Service) ExportMonth(ctx context.Context, year int, month time.Month) (*models.MonthlyFeedingReport, error) {
	login, err := s.client.Login(ctx, s.cfg.ServiceUsername, s.cfg.ServicePassword)
	if err != nil {
		return nil, fmt.Errorf("report service login: %w", err)
	}
	token := login.Token

	logs, err := s.client.ListFeedingLogs(ctx, token, farmapi.LogFilter{Year: year, Month: month})
	if err != nil {
		return nil, fmt.Errorf("load feeding logs for report: %w", err)
	}

	stats, err := s.client.GoatStats(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("load herd stats for report: %w", err)
	}

	report := models.MonthlyFeedingReport{
		Month:       time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format(monthLayout),
		LogCount:    len(logs),
		HerdTotal:   stats.Total,
		HerdWest:    stats.West,
		HerdEast:    stats.East,
		GeneratedAt: time.Now().UTC(),
	}

	rows := make([][]interface{}, 0, len(logs))
	for _, log := range logs {
		switch log.Barn {
		case models.BarnWest:
			report.WestLogs++
		case models.BarnEast:
			report.EastLogs++
		}
		rows = append(rows, []interface{}{report.Month, log.Date, log.FeedTime, string(log.Barn), log.Note, log.UserID})
	}

	if err := s.sheets.AppendRows(ctx, feedLogsRange, rows); err != nil {
		return nil, fmt.Errorf("export feeding logs to sheet: %w", err)
	}

	if err := s.snapshots.SaveMonthlyReport(ctx, report); err != nil {
		return nil, fmt.Errorf("store report snapshot: %w", err)
	}

	s.logger.Info("monthly feeding report exported",
		zap.String("month", report.Month),
		zap.Int("logs", report.LogCount))

	return &report, nil
}

// ExportPrevious exports the month before the given reference time, which is
// what the scheduled job wants on the first day of a new month.
func (s *Service) ExportPrevious(ctx context.Context, now time.Time) (*models.MonthlyFeedingReport, error) {
	// Day 0 of the current month is the last day of the previous one; going
	// through it avoids the end-of-month normalization of AddDate.
	prev := time.Date(now.UTC().Year(), now.UTC().Month(), 0, 0, 0, 0, 0, time.UTC)
	return s.ExportMonth(ctx, prev.Year(), prev.Month())
}
