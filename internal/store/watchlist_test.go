package store

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/equity-screener/internal/models"
)

const watchlistCSV = `Name,NSE Code,Current Price,Return on equity,Price to Earning,Industry
Alpha Industries,ALPHA,120.5,22,10,Chemicals
Beta Bank,BETA,88,9,30,Banks
Gamma Pharma,GAMMA,410,17,18,Pharmaceuticals
`

func discardLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func writeCSV(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "watchlist.csv")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

type stubFetcher struct {
	stocks []models.Stock
	err    error
	calls  int
}

func (f *stubFetcher) FetchWatchlist(ctx context.Context, url string) ([]models.Stock, error) {
	f.calls++
	return f.stocks, f.err
}

func TestWatchlistReloadFromFile(t *testing.T) {
	w := NewWatchlist(writeCSV(t, watchlistCSV), nil, discardLogger())

	assert.False(t, w.Ready())
	require.NoError(t, w.Reload(context.Background()))

	assert.True(t, w.Ready())
	assert.Equal(t, 3, w.Len())
	assert.False(t, w.LoadedAt().IsZero())
}

func TestWatchlistReloadFromRemote(t *testing.T) {
	fetcher := &stubFetcher{stocks: []models.Stock{{Name: "Alpha", NSECode: "ALPHA"}}}
	w := NewWatchlist("https://example.com/watchlist.csv", fetcher, discardLogger())

	require.NoError(t, w.Reload(context.Background()))
	assert.Equal(t, 1, w.Len())
	assert.Equal(t, 1, fetcher.calls)
}

func TestWatchlistReloadFailureKeepsSnapshot(t *testing.T) {
	fetcher := &stubFetcher{stocks: []models.Stock{{Name: "Alpha", NSECode: "ALPHA"}}}
	w := NewWatchlist("https://example.com/watchlist.csv", fetcher, discardLogger())
	require.NoError(t, w.Reload(context.Background()))
	loadedAt := w.LoadedAt()

	fetcher.err = errors.New("boom")
	err := w.Reload(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 1, w.Len(), "previous snapshot must survive a failed reload")
	assert.Equal(t, loadedAt, w.LoadedAt())
}

func TestWatchlistGetCaseInsensitive(t *testing.T) {
	w := NewWatchlist(writeCSV(t, watchlistCSV), nil, discardLogger())
	require.NoError(t, w.Reload(context.Background()))

	for _, code := range []string{"ALPHA", "alpha", "Alpha"} {
		s, err := w.Get(code)
		require.NoError(t, err, code)
		assert.Equal(t, "ALPHA", s.NSECode)
	}

	_, err := w.Get("MISSING")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestWatchlistGetReturnsCopy(t *testing.T) {
	w := NewWatchlist(writeCSV(t, watchlistCSV), nil, discardLogger())
	require.NoError(t, w.Reload(context.Background()))

	s, err := w.Get("ALPHA")
	require.NoError(t, err)
	s.Name = "Mutated"

	again, err := w.Get("ALPHA")
	require.NoError(t, err)
	assert.Equal(t, "Alpha Industries", again.Name)
}

func TestWatchlistIndustriesSortedDistinct(t *testing.T) {
	w := NewWatchlist(writeCSV(t, watchlistCSV), nil, discardLogger())
	require.NoError(t, w.Reload(context.Background()))

	assert.Equal(t, []string{"Banks", "Chemicals", "Pharmaceuticals"}, w.Industries())
}

func TestWatchlistSource(t *testing.T) {
	w := NewWatchlist("scwatchlist.csv", nil, discardLogger())
	assert.Equal(t, "scwatchlist.csv", w.Source())
}
