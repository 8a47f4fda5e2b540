// Package loader ingests the watchlist CSV into stock records.
package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/yourusername/equity-screener/internal/models"
)

// RequiredColumns must all be present in the CSV header. Every other known
// column is optional; absent columns simply leave their fields nil.
var RequiredColumns = []string{
	"Name",
	"NSE Code",
	"Current Price",
	"Return on equity",
	"Price to Earning",
}

// MissingColumnsError reports which required columns the CSV header lacks.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Columns, ", "))
}

// optionalColumns maps CSV headers onto stock field setters.
var optionalColumns = map[string]func(*models.Stock, *float64){
	"Market Capitalization":      func(s *models.Stock, v *float64) { s.MarketCap = v },
	"Return on invested capital": func(s *models.Stock, v *float64) { s.ROIC = v },
	"Debt to equity":             func(s *models.Stock, v *float64) { s.DebtToEquity = v },
	"Sales growth 5Years":        func(s *models.Stock, v *float64) { s.SalesGrowth5Y = v },
	"Profit growth 5Years":       func(s *models.Stock, v *float64) { s.ProfitGrowth5Y = v },
	"Free cash flow last year":   func(s *models.Stock, v *float64) { s.FreeCashFlow = v },
	"Dividend yield":             func(s *models.Stock, v *float64) { s.DividendYield = v },
	"Return over 1year":          func(s *models.Stock, v *float64) { s.Return1Y = v },
	"Return over 3years":         func(s *models.Stock, v *float64) { s.Return3Y = v },
	"Return over 5years":         func(s *models.Stock, v *float64) { s.Return5Y = v },
	"NPM last year":              func(s *models.Stock, v *float64) { s.NetProfitMargin = v },
	"Operating profit":           func(s *models.Stock, v *float64) { s.OperatingProfit = v },
	"Sales":                      func(s *models.Stock, v *float64) { s.Sales = v },
}

// Parse reads a watchlist CSV and returns the stock records. The column
// order is taken from the header row, so reordered or extra columns are
// fine. Rows without a name or NSE code are skipped; blank or non-numeric
// cells become nil fields.
func Parse(r io.Reader) ([]models.Stock, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // ragged rows happen in exported watchlists

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &MissingColumnsError{Columns: RequiredColumns}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.TrimSpace(col)] = i
	}

	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}

	var stocks []models.Stock
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}

		cell := func(col string) string {
			i, ok := index[col]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		name := cell("Name")
		code := cell("NSE Code")
		if name == "" || code == "" {
			continue
		}

		stock := models.Stock{
			Name:     name,
			NSECode:  code,
			Industry: cell("Industry"),
		}
		if price := parseNumber(cell("Current Price")); price != nil {
			stock.CurrentPrice = *price
		}
		stock.ROE = parseNumber(cell("Return on equity"))
		stock.PE = parseNumber(cell("Price to Earning"))
		for col, set := range optionalColumns {
			set(&stock, parseNumber(cell(col)))
		}

		stocks = append(stocks, stock)
	}

	return stocks, nil
}

// LoadFile parses the watchlist CSV at path.
func LoadFile(path string) ([]models.Stock, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open watchlist: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// parseNumber converts a CSV cell to a float, returning nil for blank or
// non-numeric cells. Exported watchlists use thousands separators.
func parseNumber(cell string) *float64 {
	if cell == "" || strings.EqualFold(cell, "n/a") || strings.EqualFold(cell, "na") {
		return nil
	}
	cell = strings.ReplaceAll(cell, ",", "")
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return nil
	}
	return &v
}
