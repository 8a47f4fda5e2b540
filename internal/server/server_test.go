package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/equity-screener/internal/config"
	"github.com/yourusername/equity-screener/internal/logger"
	"github.com/yourusername/equity-screener/internal/rating"
	"github.com/yourusername/equity-screener/internal/scheduler"
	"github.com/yourusername/equity-screener/internal/screener"
	"github.com/yourusername/equity-screener/internal/search"
	"github.com/yourusername/equity-screener/internal/store"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

const fixtureCSV = "Name,NSE Code,Current Price,Market Capitalization,Return on equity,Price to Earning,Debt to equity,Sales growth 5Years,Free cash flow last year,Industry\n" +
	"Alpha Industries,ALPHA,120.5,5000,22,10,0.2,18,350,Chemicals\n" +
	"Beta Bank,BETA,88,90000,9,30,1.4,4,,Banks\n" +
	"Gamma Pharma,GAMMA,410,15000,17,18,0.4,12,120,Pharmaceuticals\n"

type testApp struct {
	server    *Server
	refresher *scheduler.Refresher
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	path := filepath.Join(t.TempDir(), "watchlist.csv")
	require.NoError(t, os.WriteFile(path, []byte(fixtureCSV), 0o644))

	log := logrus.New()
	log.SetOutput(io.Discard)

	cfg, err := config.LoadWithDefaults(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	cfg.Watchlist.Source = path
	cfg.Server.TemplatesGlob = filepath.Join("..", "..", "web", "templates", "*.html")

	watchlist := store.NewWatchlist(path, nil, log)
	cache := store.NewScreenCache(cfg.CacheTTL())
	svc := screener.NewService(watchlist, rating.NewEngine(), cache, log)
	engine := search.NewEngine(log)
	t.Cleanup(func() { _ = engine.Close() })

	audit := logger.NewAuditLogger(log)
	refresher := scheduler.NewRefresher(watchlist, svc, engine, audit, 5*time.Second)

	return &testApp{
		server:    New(cfg, svc, engine, refresher, audit, log),
		refresher: refresher,
	}
}

func (a *testApp) load(t *testing.T) {
	t.Helper()
	require.NoError(t, a.refresher.Refresh(context.Background(), "test"))
}

func (a *testApp) request(method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	a.server.Engine().ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) apiResponse {
	t.Helper()
	var resp apiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestReadyzBeforeAndAfterLoad(t *testing.T) {
	app := newTestApp(t)

	w := app.request(http.MethodGet, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	app.load(t)
	w = app.request(http.MethodGet, "/readyz")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealthz(t *testing.T) {
	app := newTestApp(t)
	w := app.request(http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListStocks(t *testing.T) {
	app := newTestApp(t)
	app.load(t)

	w := app.request(http.MethodGet, "/api/v1/stocks")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeEnvelope(t, w)
	assert.Equal(t, "ok", resp.Message)
	assert.Equal(t, float64(3), resp.Meta["total"])
	assert.Equal(t, float64(3), resp.Meta["filtered"])
	assert.Equal(t, "market_cap", resp.Meta["sort"])
	assert.Equal(t, "desc", resp.Meta["order"])
}

func TestListStocksWithFilters(t *testing.T) {
	app := newTestApp(t)
	app.load(t)

	tests := []struct {
		name     string
		target   string
		filtered float64
	}{
		{"industry", "/api/v1/stocks?industry=Banks", 1},
		{"industry all neutral", "/api/v1/stocks?industry=All", 3},
		{"quality", "/api/v1/stocks?quality=true", 2},
		{"search", "/api/v1/stocks?q=alpha", 1},
		{"pe range", "/api/v1/stocks?pe_min=15&pe_max=25", 1},
		{"roe min excludes missing", "/api/v1/stocks?roe_min=10", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := app.request(http.MethodGet, tt.target)
			require.Equal(t, http.StatusOK, w.Code)
			resp := decodeEnvelope(t, w)
			assert.Equal(t, tt.filtered, resp.Meta["filtered"])
		})
	}
}

func TestListStocksUnknownSortField(t *testing.T) {
	app := newTestApp(t)
	app.load(t)

	w := app.request(http.MethodGet, "/api/v1/stocks?sort=nonsense")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetStock(t *testing.T) {
	app := newTestApp(t)
	app.load(t)

	w := app.request(http.MethodGet, "/api/v1/stocks/alpha")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeEnvelope(t, w)
	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var detail stockDetail
	require.NoError(t, json.Unmarshal(data, &detail))
	assert.Equal(t, "ALPHA", detail.Stock.NSECode)
	assert.Equal(t, "Excellent", string(detail.Rating))
	assert.NotEmpty(t, detail.Strengths)
}

func TestGetStockNotFound(t *testing.T) {
	app := newTestApp(t)
	app.load(t)

	w := app.request(http.MethodGet, "/api/v1/stocks/MISSING")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetSummary(t *testing.T) {
	app := newTestApp(t)
	app.load(t)

	w := app.request(http.MethodGet, "/api/v1/summary")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeEnvelope(t, w)
	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var summary summaryResponse
	require.NoError(t, json.Unmarshal(data, &summary))
	assert.Equal(t, 3, summary.Summary.TotalStocks)
	assert.Equal(t, 3, summary.Summary.FilteredCount)
	assert.NotEmpty(t, summary.Ratings)
	require.NotNil(t, summary.ROEStats)
	assert.Equal(t, 3, summary.ROEStats.Count)
}

func TestGetLeaders(t *testing.T) {
	app := newTestApp(t)
	app.load(t)

	w := app.request(http.MethodGet, "/api/v1/leaders/roe?limit=2")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeEnvelope(t, w)
	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var leaders []screener.LeaderEntry
	require.NoError(t, json.Unmarshal(data, &leaders))
	require.Len(t, leaders, 2)
	assert.Equal(t, "ALPHA", leaders[0].NSECode)
}

func TestGetLeadersUnknownMetric(t *testing.T) {
	app := newTestApp(t)
	app.load(t)

	w := app.request(http.MethodGet, "/api/v1/leaders/volume")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	resp := decodeEnvelope(t, w)
	assert.NotEmpty(t, resp.Meta["metrics"])
}

func TestGetPicks(t *testing.T) {
	app := newTestApp(t)
	app.load(t)

	w := app.request(http.MethodGet, "/api/v1/picks")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeEnvelope(t, w)
	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var picks picksResponse
	require.NoError(t, json.Unmarshal(data, &picks))
	assert.NotEmpty(t, picks.Top.Excellent)
}

func TestListIndustries(t *testing.T) {
	app := newTestApp(t)
	app.load(t)

	w := app.request(http.MethodGet, "/api/v1/industries")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeEnvelope(t, w)
	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var industries []string
	require.NoError(t, json.Unmarshal(data, &industries))
	assert.Equal(t, []string{"Banks", "Chemicals", "Pharmaceuticals"}, industries)
}

func TestSearchRequiresQuery(t *testing.T) {
	app := newTestApp(t)
	app.load(t)

	w := app.request(http.MethodGet, "/api/v1/search")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchReturnsMatches(t *testing.T) {
	app := newTestApp(t)
	app.load(t)

	w := app.request(http.MethodGet, "/api/v1/search?q=alpha")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeEnvelope(t, w)
	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var results []stockDetail
	require.NoError(t, json.Unmarshal(data, &results))
	require.NotEmpty(t, results)
	assert.Equal(t, "ALPHA", results[0].Stock.NSECode)
}

func TestSearchBeforeLoadReturnsUnavailable(t *testing.T) {
	app := newTestApp(t)

	w := app.request(http.MethodGet, "/api/v1/search?q=alpha")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestManualReload(t *testing.T) {
	app := newTestApp(t)

	w := app.request(http.MethodPost, "/api/v1/reload")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeEnvelope(t, w)
	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, float64(3), body["stocks"])
}

func TestDashboardPageRenders(t *testing.T) {
	app := newTestApp(t)
	app.load(t)

	w := app.request(http.MethodGet, "/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Alpha Industries")
	assert.Contains(t, w.Body.String(), "Equity Screener")
}

func TestStockPageNotFound(t *testing.T) {
	app := newTestApp(t)
	app.load(t)

	w := app.request(http.MethodGet, "/stocks/MISSING")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRequestIDHeader(t *testing.T) {
	app := newTestApp(t)
	app.load(t)

	w := app.request(http.MethodGet, "/healthz")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "upstream-id")
	w = httptest.NewRecorder()
	app.server.Engine().ServeHTTP(w, req)
	assert.Equal(t, "upstream-id", w.Header().Get("X-Request-ID"))
}
