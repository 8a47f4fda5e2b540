package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/equity-screener/internal/config"
	"github.com/yourusername/equity-screener/internal/logger"
	"github.com/yourusername/equity-screener/internal/models"
	"github.com/yourusername/equity-screener/internal/scheduler"
	"github.com/yourusername/equity-screener/internal/screener"
	"github.com/yourusername/equity-screener/internal/search"
)

// Leaderboard and ranking display limits.
const (
	defaultLeaderCount  = 15
	defaultRankingCount = 20
	topIndustries       = 10
)

// APIHandler serves the JSON API consumed by the dashboard front-end.
type APIHandler struct {
	Service   *screener.Service
	Search    *search.Engine
	Refresher *scheduler.Refresher
	Audit     *logger.AuditLogger
	Logger    *logrus.Logger
	Defaults  config.ScreenerConfig
}

// Register mounts the API routes.
func (h *APIHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1")
	group.GET("/stocks", h.listStocks)
	group.GET("/stocks/:code", h.getStock)
	group.GET("/summary", h.getSummary)
	group.GET("/rankings/growth", h.getGrowthRanking)
	group.GET("/leaders/:metric", h.getLeaders)
	group.GET("/picks", h.getPicks)
	group.GET("/industries", h.listIndustries)
	group.GET("/search", h.searchStocks)
	group.POST("/reload", h.reload)
}

func (h *APIHandler) listStocks(c *gin.Context) {
	filter := parseFilter(c)
	sortField, ascending := parseSortParams(c, h.Defaults)

	rated, err := h.Service.Screen(filter, sortField, ascending)
	if err != nil {
		if errors.Is(err, models.ErrUnknownField) {
			Error(c, http.StatusBadRequest, err.Error(), nil)
			return
		}
		h.Logger.WithError(err).Warn("Screen failed")
		Error(c, http.StatusInternalServerError, "screen failed", nil)
		return
	}

	h.Audit.LogScreenRequest(requestID(c), filter.Key(), sortField, ascending, len(rated))
	Ok(c, rated, map[string]any{
		"total":    h.Service.Watchlist().Len(),
		"filtered": len(rated),
		"sort":     sortField,
		"order":    orderName(ascending),
	})
}

// stockDetail is the single-stock view: the rated record plus the qualitative
// strength/risk callouts.
type stockDetail struct {
	models.RatedStock
	Strengths []string `json:"strengths"`
	Risks     []string `json:"risks"`
}

func (h *APIHandler) getStock(c *gin.Context) {
	code := strings.TrimSpace(c.Param("code"))
	stock, err := h.Service.Watchlist().Get(code)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			Error(c, http.StatusNotFound, "stock not found", nil)
			return
		}
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}

	Ok(c, h.detail(stock), nil)
}

func (h *APIHandler) detail(stock *models.Stock) stockDetail {
	engine := h.Service.Engine()
	ratingLabel, score := engine.Rate(stock)
	return stockDetail{
		RatedStock: models.RatedStock{
			Stock:       *stock,
			Rating:      ratingLabel,
			Color:       ratingLabel.Color(),
			Score:       score,
			GrowthScore: engine.GrowthScore(stock),
		},
		Strengths: engine.Strengths(stock),
		Risks:     engine.Risks(stock),
	}
}

// summaryResponse is the aggregate view rendered above the dashboard tabs.
type summaryResponse struct {
	Summary    screener.Summary             `json:"summary"`
	Ratings    []screener.DistributionEntry `json:"rating_distribution"`
	Industries []screener.DistributionEntry `json:"industry_distribution"`
	ROEStats   *screener.Stats              `json:"roe_stats,omitempty"`
	PEStats    *screener.Stats              `json:"pe_stats,omitempty"`
}

func (h *APIHandler) getSummary(c *gin.Context) {
	filter := parseFilter(c)
	rated, err := h.Service.Screen(filter, "", false)
	if err != nil {
		Error(c, http.StatusInternalServerError, "screen failed", nil)
		return
	}

	Ok(c, summaryResponse{
		Summary:    screener.Summarize(h.Service.Watchlist().Len(), rated),
		Ratings:    screener.RatingDistribution(rated),
		Industries: screener.IndustryDistribution(rated, topIndustries),
		ROEStats:   screener.Describe(rated, "roe"),
		PEStats:    screener.Describe(rated, "pe"),
	}, nil)
}

func (h *APIHandler) getGrowthRanking(c *gin.Context) {
	filter := parseFilter(c)
	limit := intQuery(c, "limit", defaultRankingCount)

	rated, err := h.Service.GrowthRanking(filter, limit)
	if err != nil {
		Error(c, http.StatusInternalServerError, "ranking failed", nil)
		return
	}
	Ok(c, rated, map[string]any{"limit": limit})
}

func (h *APIHandler) getLeaders(c *gin.Context) {
	filter := parseFilter(c)
	metric := strings.ToLower(strings.TrimSpace(c.Param("metric")))
	limit := intQuery(c, "limit", defaultLeaderCount)

	rated, err := h.Service.Screen(filter, "", false)
	if err != nil {
		Error(c, http.StatusInternalServerError, "screen failed", nil)
		return
	}

	leaders, err := screener.Leaders(rated, metric, limit)
	if err != nil {
		if errors.Is(err, models.ErrUnknownMetric) {
			Error(c, http.StatusBadRequest, "unknown metric: "+metric, map[string]any{
				"metrics": screener.LeaderMetrics(),
			})
			return
		}
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	Ok(c, leaders, map[string]any{"metric": metric, "limit": limit})
}

// picksResponse groups every curated pick list into one payload.
type picksResponse struct {
	Top      screener.Picks          `json:"top"`
	Value    []screener.ValuePick    `json:"value"`
	SmallCap []screener.SmallCapPick `json:"small_cap"`
}

func (h *APIHandler) getPicks(c *gin.Context) {
	filter := parseFilter(c)
	rated, err := h.Service.Screen(filter, "", false)
	if err != nil {
		Error(c, http.StatusInternalServerError, "screen failed", nil)
		return
	}

	engine := h.Service.Engine()
	Ok(c, picksResponse{
		Top:      screener.TopPicks(rated),
		Value:    screener.ValuePicks(rated, engine.ValueScore),
		SmallCap: screener.SmallCapGrowth(rated),
	}, nil)
}

func (h *APIHandler) listIndustries(c *gin.Context) {
	Ok(c, h.Service.Watchlist().Industries(), nil)
}

func (h *APIHandler) searchStocks(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		Error(c, http.StatusBadRequest, "q required", nil)
		return
	}
	limit := intQuery(c, "limit", h.Defaults.SearchLimit)

	codes, err := h.Search.Search(query, limit)
	if err != nil {
		if errors.Is(err, models.ErrNoData) {
			Error(c, http.StatusServiceUnavailable, "search index not ready", nil)
			return
		}
		h.Logger.WithError(err).Warn("Search failed")
		Error(c, http.StatusInternalServerError, "search failed", nil)
		return
	}

	results := make([]stockDetail, 0, len(codes))
	for _, code := range codes {
		stock, err := h.Service.Watchlist().Get(code)
		if err != nil {
			continue // index lagging behind a reload
		}
		results = append(results, h.detail(stock))
	}

	h.Audit.LogSearchQuery(requestID(c), query, len(results))
	Ok(c, results, map[string]any{"query": query, "limit": limit})
}

func (h *APIHandler) reload(c *gin.Context) {
	if err := h.Refresher.Refresh(c.Request.Context(), "manual"); err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	watchlist := h.Service.Watchlist()
	Ok(c, map[string]any{
		"stocks":    watchlist.Len(),
		"loaded_at": watchlist.LoadedAt(),
	}, nil)
}

// parseFilter builds the screen filter from query parameters. Absent
// parameters leave the corresponding predicate at its neutral value.
func parseFilter(c *gin.Context) screener.Filter {
	return screener.Filter{
		Search:       strings.TrimSpace(c.Query("q")),
		Industry:     strings.TrimSpace(c.Query("industry")),
		QualityOnly:  boolQuery(c, "quality"),
		HighGrowth:   boolQuery(c, "growth"),
		ValueOnly:    boolQuery(c, "value"),
		DividendOnly: boolQuery(c, "dividend"),
		PEMin:        floatQueryPtr(c, "pe_min"),
		PEMax:        floatQueryPtr(c, "pe_max"),
		ROEMin:       floatQuery(c, "roe_min", 0),
		DEMax:        floatQueryPtr(c, "de_max"),
		MCapMin:      floatQuery(c, "mcap_min", 0),
	}
}

// parseSortParams resolves the sort field and direction, falling back to the
// configured defaults.
func parseSortParams(c *gin.Context, defaults config.ScreenerConfig) (string, bool) {
	sortField := strings.TrimSpace(c.Query("sort"))
	if sortField == "" {
		sortField = defaults.DefaultSort
	}
	order := strings.ToLower(strings.TrimSpace(c.Query("order")))
	if order == "" {
		order = defaults.DefaultOrder
	}
	return sortField, order == "asc"
}

func orderName(ascending bool) string {
	if ascending {
		return "asc"
	}
	return "desc"
}

func intQuery(c *gin.Context, key string, def int) int {
	if val := c.Query(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil && i > 0 {
			return i
		}
	}
	return def
}

func boolQuery(c *gin.Context, key string) bool {
	if val := c.Query(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return false
}

func floatQuery(c *gin.Context, key string, def float64) float64 {
	if val := c.Query(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return def
}

func floatQueryPtr(c *gin.Context, key string) *float64 {
	if val := c.Query(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return &f
		}
	}
	return nil
}
