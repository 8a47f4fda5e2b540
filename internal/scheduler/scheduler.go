// Package scheduler refreshes the watchlist on a cron schedule and keeps
// derived state (screen cache, search index, rating gauges) in sync with it.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/equity-screener/internal/logger"
	"github.com/yourusername/equity-screener/internal/metrics"
	"github.com/yourusername/equity-screener/internal/screener"
	"github.com/yourusername/equity-screener/internal/search"
	"github.com/yourusername/equity-screener/internal/store"
)

// Refresher runs the full reload pipeline: re-ingest the watchlist, flush
// the screen cache, rebuild the search index and republish the rating
// distribution. Both the cron job and the manual reload endpoint go through
// the same path.
type Refresher struct {
	watchlist *store.Watchlist
	screener  *screener.Service
	search    *search.Engine
	audit     *logger.AuditLogger
	timeout   time.Duration
}

// NewRefresher creates a refresher. The search engine may be nil when no
// index is wanted (the CLI runs without one).
func NewRefresher(watchlist *store.Watchlist, svc *screener.Service, searchEngine *search.Engine, audit *logger.AuditLogger, timeout time.Duration) *Refresher {
	return &Refresher{
		watchlist: watchlist,
		screener:  svc,
		search:    searchEngine,
		audit:     audit,
		timeout:   timeout,
	}
}

// Refresh reloads the watchlist and rebuilds everything derived from it.
// On reload failure the previous snapshot and derived state stay in place.
func (r *Refresher) Refresh(ctx context.Context, trigger string) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	if err := r.watchlist.Reload(ctx); err != nil {
		metrics.RecordWatchlistLoad(false, r.watchlist.Len())
		r.audit.LogWatchlistReload(r.watchlist.Source(), r.watchlist.Len(), time.Since(start), trigger, false)
		return fmt.Errorf("watchlist reload failed: %w", err)
	}

	r.screener.InvalidateCache()
	if r.search != nil {
		if err := r.search.Rebuild(r.watchlist.Snapshot()); err != nil {
			return fmt.Errorf("search index rebuild failed: %w", err)
		}
	}
	r.screener.PublishRatingDistribution()

	metrics.RecordWatchlistLoad(true, r.watchlist.Len())
	r.audit.LogWatchlistReload(r.watchlist.Source(), r.watchlist.Len(), time.Since(start), trigger, true)
	return nil
}

// Scheduler manages the periodic watchlist refresh job.
type Scheduler struct {
	cron      *cron.Cron
	refresher *Refresher
	logger    *logrus.Logger

	mu        sync.RWMutex
	isRunning bool
	jobIDs    []cron.EntryID
}

// NewScheduler creates a new scheduler.
func NewScheduler(refresher *Refresher, log *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:      cron.New(cron.WithLocation(time.UTC)),
		refresher: refresher,
		logger:    log,
		jobIDs:    make([]cron.EntryID, 0),
	}
}

// ScheduleReload registers the watchlist refresh job with the given cron
// expression (standard 5-field syntax or @every/@hourly descriptors).
func (s *Scheduler) ScheduleReload(cronExpression string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	jobFunc := func() {
		if err := s.refresher.Refresh(context.Background(), "cron"); err != nil {
			s.logger.WithError(err).Error("Scheduled watchlist refresh failed")
		}
	}

	entryID, err := s.cron.AddFunc(cronExpression, jobFunc)
	if err != nil {
		return fmt.Errorf("failed to add job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.WithField("cron", cronExpression).Info("Scheduled watchlist refresh")

	return nil
}

// Start starts the scheduler.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}
	if len(s.jobIDs) == 0 {
		return fmt.Errorf("no jobs scheduled")
	}

	s.cron.Start()
	s.isRunning = true
	s.logger.WithField("jobs", len(s.jobIDs)).Info("Scheduler started")

	return nil
}

// Stop gracefully stops the scheduler, waiting for a running refresh to
// finish.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}

	<-s.cron.Stop().Done()
	s.isRunning = false
	s.logger.Info("Scheduler stopped")

	return nil
}

// IsRunning returns whether the scheduler is currently running.
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRun returns the time of the next scheduled refresh. Zero when the
// scheduler is not running.
func (s *Scheduler) NextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning || len(s.jobIDs) == 0 {
		return time.Time{}
	}

	nextRun := time.Time{}
	for _, jobID := range s.jobIDs {
		entry := s.cron.Entry(jobID)
		if entry.Valid() {
			if nextRun.IsZero() || entry.Next.Before(nextRun) {
				nextRun = entry.Next
			}
		}
	}
	return nextRun
}
