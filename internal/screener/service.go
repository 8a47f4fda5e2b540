package screener

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/equity-screener/internal/metrics"
	"github.com/yourusername/equity-screener/internal/models"
	"github.com/yourusername/equity-screener/internal/rating"
	"github.com/yourusername/equity-screener/internal/store"
)

// Service runs screen passes over the loaded watchlist: filter, rate, sort.
// Every interaction recomputes the full pass; recently computed passes are
// served from the screen cache until the watchlist reloads.
type Service struct {
	watchlist *store.Watchlist
	engine    *rating.Engine
	cache     *store.ScreenCache
	logger    *logrus.Logger
}

// NewService creates a screener service. The cache may be nil to disable
// result caching (the CLI does this).
func NewService(watchlist *store.Watchlist, engine *rating.Engine, cache *store.ScreenCache, logger *logrus.Logger) *Service {
	return &Service{
		watchlist: watchlist,
		engine:    engine,
		cache:     cache,
		logger:    logger,
	}
}

// Screen applies the filter pipeline to the watchlist snapshot, rates the
// surviving rows and sorts them by the requested field. The returned slice
// is owned by the cache; callers must not mutate it.
func (s *Service) Screen(filter Filter, sortField string, ascending bool) ([]models.RatedStock, error) {
	if sortField != "" && !ValidSortField(sortField) {
		return nil, fmt.Errorf("%w: %s", models.ErrUnknownField, sortField)
	}

	key := fmt.Sprintf("%s|sort=%s|asc=%t", filter.Key(), sortField, ascending)
	if s.cache != nil {
		if cached := s.cache.Get(key); cached != nil {
			metrics.RecordScreenCacheHit()
			return cached, nil
		}
	}

	start := time.Now()
	snapshot := s.watchlist.Snapshot()

	filtered := filter.Apply(snapshot)
	rated := s.engine.RateAll(filtered)
	if sortField != "" {
		Sort(rated, sortField, ascending)
	}

	metrics.RecordScreen(time.Since(start).Seconds())
	s.logger.WithFields(logrus.Fields{
		"input":    len(snapshot),
		"filtered": len(filtered),
		"sort":     sortField,
		"duration": time.Since(start).String(),
	}).Debug("Screen pass completed")

	if s.cache != nil {
		s.cache.Set(key, rated)
	}
	return rated, nil
}

// GrowthRanking returns the filtered view ranked by the composite growth
// score, best first, truncated to limit when limit > 0.
func (s *Service) GrowthRanking(filter Filter, limit int) ([]models.RatedStock, error) {
	rated, err := s.Screen(filter, SortByGrowth, false)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(rated) > limit {
		rated = rated[:limit]
	}
	return rated, nil
}

// ValuePicksFor ranks the filtered view by the ROE/PE value score.
func (s *Service) ValuePicksFor(filter Filter) ([]ValuePick, error) {
	rated, err := s.Screen(filter, "", false)
	if err != nil {
		return nil, err
	}
	return ValuePicks(rated, func(st *models.Stock) (float64, bool) {
		return s.engine.ValueScore(st)
	}), nil
}

// PublishRatingDistribution rates the whole snapshot and pushes the label
// counts to the metrics registry. Called after every successful reload.
func (s *Service) PublishRatingDistribution() {
	rated := s.engine.RateAll(s.watchlist.Snapshot())
	counts := make(map[string]int, len(models.AllRatings))
	for _, r := range models.AllRatings {
		counts[string(r)] = 0
	}
	for i := range rated {
		counts[string(rated[i].Rating)]++
	}
	metrics.UpdateRatingDistribution(counts)
}

// Engine exposes the rating engine for detail views.
func (s *Service) Engine() *rating.Engine {
	return s.engine
}

// Watchlist exposes the underlying watchlist store.
func (s *Service) Watchlist() *store.Watchlist {
	return s.watchlist
}

// InvalidateCache flushes cached screen results. Called on reload.
func (s *Service) InvalidateCache() {
	if s.cache != nil {
		s.cache.Clear()
	}
}
