// Package helpers provides shared fixtures for integration tests.
package helpers

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yourusername/equity-screener/internal/models"
)

// WatchlistHeader is the canonical exported-watchlist header used by the
// fixture builders.
var WatchlistHeader = []string{
	"Name",
	"NSE Code",
	"Current Price",
	"Market Capitalization",
	"Return on equity",
	"Return on invested capital",
	"Price to Earning",
	"Debt to equity",
	"Sales growth 5Years",
	"Profit growth 5Years",
	"Free cash flow last year",
	"Dividend yield",
	"Return over 1year",
	"Return over 3years",
	"Return over 5years",
	"Industry",
}

// StockRow is one fixture row. Empty strings become missing fields.
type StockRow struct {
	Name          string
	NSECode       string
	Price         string
	MarketCap     string
	ROE           string
	ROIC          string
	PE            string
	DebtToEquity  string
	SalesGrowth   string
	ProfitGrowth  string
	FreeCashFlow  string
	DividendYield string
	Return1Y      string
	Return3Y      string
	Return5Y      string
	Industry      string
}

func (r StockRow) fields() []string {
	return []string{
		r.Name, r.NSECode, r.Price, r.MarketCap, r.ROE, r.ROIC, r.PE,
		r.DebtToEquity, r.SalesGrowth, r.ProfitGrowth, r.FreeCashFlow,
		r.DividendYield, r.Return1Y, r.Return3Y, r.Return5Y, r.Industry,
	}
}

// WriteWatchlistCSV writes a watchlist CSV fixture into a temp directory and
// returns its path.
func WriteWatchlistCSV(t *testing.T, rows []StockRow) string {
	t.Helper()

	var b strings.Builder
	b.WriteString(strings.Join(WatchlistHeader, ","))
	b.WriteByte('\n')
	for _, row := range rows {
		b.WriteString(strings.Join(row.fields(), ","))
		b.WriteByte('\n')
	}

	path := filepath.Join(t.TempDir(), "watchlist.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}

// DefaultRows returns a small universe covering every rating bucket and a
// sparse row with only required fields.
func DefaultRows() []StockRow {
	return []StockRow{
		{
			Name: "Alpha Industries", NSECode: "ALPHA", Price: "120.5",
			MarketCap: "5000", ROE: "22", ROIC: "19", PE: "10", DebtToEquity: "0.2",
			SalesGrowth: "18", ProfitGrowth: "16", FreeCashFlow: "350",
			DividendYield: "1.2", Return1Y: "35", Return3Y: "28", Return5Y: "22",
			Industry: "Chemicals",
		},
		{
			Name: "Beta Bank", NSECode: "BETA", Price: "88",
			MarketCap: "90000", ROE: "9", PE: "30", DebtToEquity: "1.4",
			SalesGrowth: "4", Return1Y: "5",
			Industry: "Banks",
		},
		{
			Name: "Gamma Pharma", NSECode: "GAMMA", Price: "410",
			MarketCap: "15000", ROE: "17", PE: "18", DebtToEquity: "0.4",
			SalesGrowth: "12", FreeCashFlow: "120", Return1Y: "20",
			Industry: "Pharmaceuticals",
		},
		{
			Name: "Delta Ventures", NSECode: "DELTA", Price: "55",
		},
		{
			Name: "Epsilon Motors", NSECode: "EPSILON", Price: "230",
			MarketCap: "2500", ROE: "16", PE: "14", DebtToEquity: "0.6",
			SalesGrowth: "22", FreeCashFlow: "40", Return1Y: "60",
			Industry: "Automobiles",
		},
	}
}

// Stock builds an in-memory record without going through the CSV loader.
func Stock(name, code string, mutate func(*models.Stock)) models.Stock {
	s := models.Stock{Name: name, NSECode: code, CurrentPrice: 100}
	if mutate != nil {
		mutate(&s)
	}
	return s
}

// Floats formats a float for a fixture cell.
func Floats(v float64) string {
	return fmt.Sprintf("%g", v)
}
