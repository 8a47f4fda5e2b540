// Package store holds the in-memory watchlist snapshot and the short-lived
// screen-result cache. There is no persistence: the loaded CSV is the only
// server-side state.
package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/equity-screener/internal/loader"
	"github.com/yourusername/equity-screener/internal/models"
)

// Fetcher downloads a remote watchlist. Satisfied by loader.HTTPClient.
type Fetcher interface {
	FetchWatchlist(ctx context.Context, url string) ([]models.Stock, error)
}

// Watchlist guards the current stock snapshot. Records are immutable;
// reload replaces the whole slice under the write lock while request
// handlers read the previous snapshot. Callers must not mutate the slice
// returned by Snapshot.
type Watchlist struct {
	source  string
	fetcher Fetcher
	logger  *logrus.Logger

	mu       sync.RWMutex
	stocks   []models.Stock
	loadedAt time.Time
}

// NewWatchlist creates a watchlist for the given source, which is either a
// local file path or an HTTP(S) URL.
func NewWatchlist(source string, fetcher Fetcher, logger *logrus.Logger) *Watchlist {
	return &Watchlist{
		source:  source,
		fetcher: fetcher,
		logger:  logger,
	}
}

// Reload re-ingests the watchlist from its source. On failure the previous
// snapshot is kept so the dashboard keeps serving stale-but-valid data.
func (w *Watchlist) Reload(ctx context.Context) error {
	var (
		stocks []models.Stock
		err    error
	)

	if isRemote(w.source) {
		stocks, err = w.fetcher.FetchWatchlist(ctx, w.source)
	} else {
		stocks, err = loader.LoadFile(w.source)
	}
	if err != nil {
		w.logger.WithError(err).WithField("source", w.source).Warn("Watchlist reload failed, keeping previous snapshot")
		return err
	}

	w.mu.Lock()
	w.stocks = stocks
	w.loadedAt = time.Now()
	w.mu.Unlock()

	w.logger.WithFields(logrus.Fields{
		"source": w.source,
		"stocks": len(stocks),
	}).Info("Watchlist loaded")

	return nil
}

// Source returns the configured watchlist source.
func (w *Watchlist) Source() string {
	return w.source
}

// Snapshot returns the current stock records. The slice is read-only.
func (w *Watchlist) Snapshot() []models.Stock {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.stocks
}

// Len returns the number of loaded stocks.
func (w *Watchlist) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.stocks)
}

// LoadedAt returns when the current snapshot was ingested. Zero when no
// load has succeeded yet.
func (w *Watchlist) LoadedAt() time.Time {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.loadedAt
}

// Ready reports whether a snapshot has been loaded.
func (w *Watchlist) Ready() bool {
	return !w.LoadedAt().IsZero()
}

// Get returns the stock with the given NSE code, case-insensitively.
func (w *Watchlist) Get(code string) (*models.Stock, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	for i := range w.stocks {
		if strings.EqualFold(w.stocks[i].NSECode, code) {
			s := w.stocks[i]
			return &s, nil
		}
	}
	return nil, models.ErrNotFound
}

// Industries returns the distinct industries in the snapshot, sorted.
func (w *Watchlist) Industries() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()

	seen := make(map[string]struct{})
	for i := range w.stocks {
		if ind := w.stocks[i].Industry; ind != "" {
			seen[ind] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for ind := range seen {
		out = append(out, ind)
	}
	sort.Strings(out)
	return out
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}
