package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/equity-screener/internal/config"
	"github.com/yourusername/equity-screener/internal/models"
	"github.com/yourusername/equity-screener/internal/screener"
)

// PageHandler renders the server-side HTML views of the dashboard.
type PageHandler struct {
	Service  *screener.Service
	Defaults config.ScreenerConfig
	Logger   *logrus.Logger
}

// Register mounts the HTML routes.
func (h *PageHandler) Register(r *gin.Engine) {
	r.GET("/", h.dashboard)
	r.GET("/stocks/:code", h.stockPage)
}

// filterForm echoes the submitted filter values back into the form controls.
type filterForm struct {
	Query    string
	Industry string
	Quality  bool
	Growth   bool
	Value    bool
	Dividend bool
	Sort     string
	Order    string
}

func (h *PageHandler) dashboard(c *gin.Context) {
	filter := parseFilter(c)
	sortField, ascending := parseSortParams(c, h.Defaults)

	rated, err := h.Service.Screen(filter, sortField, ascending)
	if err != nil {
		if errors.Is(err, models.ErrUnknownField) {
			rated, err = h.Service.Screen(filter, h.Defaults.DefaultSort, ascending)
		}
		if err != nil {
			h.Logger.WithError(err).Error("Dashboard screen failed")
			c.String(http.StatusInternalServerError, "screen failed")
			return
		}
	}

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"Summary":    screener.Summarize(h.Service.Watchlist().Len(), rated),
		"Ratings":    screener.RatingDistribution(rated),
		"TopIndustries": screener.IndustryDistribution(rated, topIndustries),
		"Stocks":     rated,
		"Industries": h.Service.Watchlist().Industries(),
		"Picks":      screener.TopPicks(rated),
		"LoadedAt":   h.Service.Watchlist().LoadedAt(),
		"Form": filterForm{
			Query:    filter.Search,
			Industry: filter.Industry,
			Quality:  filter.QualityOnly,
			Growth:   filter.HighGrowth,
			Value:    filter.ValueOnly,
			Dividend: filter.DividendOnly,
			Sort:     sortField,
			Order:    orderName(ascending),
		},
	})
}

func (h *PageHandler) stockPage(c *gin.Context) {
	code := strings.TrimSpace(c.Param("code"))
	stock, err := h.Service.Watchlist().Get(code)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.HTML(http.StatusNotFound, "notfound.html", gin.H{"Code": code})
			return
		}
		c.String(http.StatusInternalServerError, "lookup failed")
		return
	}

	engine := h.Service.Engine()
	ratingLabel, score := engine.Rate(stock)

	c.HTML(http.StatusOK, "stock.html", gin.H{
		"Stock":       stock,
		"Rating":      ratingLabel,
		"Color":       ratingLabel.Color(),
		"Score":       score,
		"GrowthScore": engine.GrowthScore(stock),
		"Strengths":   engine.Strengths(stock),
		"Risks":       engine.Risks(stock),
	})
}
