package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/config"
)

const snapshotTimeout = 2 * time.Minute

// SnapshotExporter writes the current ledger somewhere durable.
type SnapshotExporter interface {
	ExportInventory(ctx context.Context) (int, error)
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron     *cron.Cron
	exporter SnapshotExporter
	logger   *zap.Logger
}

// NewScheduler registers the inventory snapshot job. The cron expression uses
// the standard five fields and is evaluated in cfg.Timezone.
func NewScheduler(cfg config.SnapshotConfig, exporter SnapshotExporter, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}

	s := &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		exporter: exporter,
		logger:   logger,
	}

	if _, err := s.cron.AddFunc(cfg.CronSchedule, s.runSnapshot); err != nil {
		return nil, fmt.Errorf("schedule inventory snapshot %q: %w", cfg.CronSchedule, err)
	}

	return s, nil
}

// Start starts the scheduler.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler")
	s.cron.Start()
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runSnapshot() {
	ctx, cancel := context.WithTimeout(context.Background(), snapshotTimeout)
	defer cancel()

	n, err := s.exporter.ExportInventory(ctx)
	if err != nil {
		s.logger.Error("scheduled inventory snapshot failed", zap.Error(err))
		return
	}
	s.logger.Info("scheduled inventory snapshot written", zap.Int("items", n))
}
