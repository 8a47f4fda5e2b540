// Package screener implements the filter pipeline, ranking and aggregation
// passes that turn the loaded watchlist into dashboard views.
package screener

import (
	"fmt"
	"strings"

	"github.com/yourusername/equity-screener/internal/models"
)

// Filter describes one screen request. Predicates are applied conjunctively
// over the full record set; a predicate whose controlling input is at its
// neutral/default value is skipped entirely. Filters never mutate the
// underlying record set.
type Filter struct {
	// Search matches a case-insensitive substring of Name or NSE Code.
	Search string
	// Industry matches the industry exactly. "" and "All" are neutral.
	Industry string

	// Quick filters.
	QualityOnly  bool // ROE >= 15 and D/E <= 0.5
	HighGrowth   bool // sales growth 5y >= 15
	ValueOnly    bool // P/E <= 20
	DividendOnly bool // dividend yield > 0

	// Threshold filters. Nil pointers and zero minimums are neutral.
	PEMin   *float64
	PEMax   *float64
	ROEMin  float64
	DEMax   *float64
	MCapMin float64
}

// IsZero reports whether every predicate is at its neutral value.
func (f Filter) IsZero() bool {
	return f.Search == "" && f.isNeutralIndustry() &&
		!f.QualityOnly && !f.HighGrowth && !f.ValueOnly && !f.DividendOnly &&
		f.PEMin == nil && f.PEMax == nil && f.ROEMin == 0 && f.DEMax == nil && f.MCapMin == 0
}

func (f Filter) isNeutralIndustry() bool {
	return f.Industry == "" || f.Industry == "All"
}

// Key returns a deterministic cache key for the filter.
func (f Filter) Key() string {
	fmtPtr := func(v *float64) string {
		if v == nil {
			return "-"
		}
		return fmt.Sprintf("%g", *v)
	}
	return fmt.Sprintf("q=%s|ind=%s|qual=%t|grow=%t|val=%t|div=%t|pe=%s:%s|roe=%g|de=%s|mcap=%g",
		strings.ToLower(f.Search), f.Industry,
		f.QualityOnly, f.HighGrowth, f.ValueOnly, f.DividendOnly,
		fmtPtr(f.PEMin), fmtPtr(f.PEMax), f.ROEMin, fmtPtr(f.DEMax), f.MCapMin)
}

// Apply returns the subset of stocks matching every active predicate, in
// input order. When an active predicate references a field that is missing
// on a row, the row is excluded.
func (f Filter) Apply(stocks []models.Stock) []models.Stock {
	out := make([]models.Stock, 0, len(stocks))
	for i := range stocks {
		if f.matches(&stocks[i]) {
			out = append(out, stocks[i])
		}
	}
	return out
}

func (f Filter) matches(s *models.Stock) bool {
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(s.Name), term) &&
			!strings.Contains(strings.ToLower(s.NSECode), term) {
			return false
		}
	}

	if !f.isNeutralIndustry() && s.Industry != f.Industry {
		return false
	}

	if f.QualityOnly {
		if !atLeast(s.ROE, 15) || !atMost(s.DebtToEquity, 0.5) {
			return false
		}
	}
	if f.HighGrowth && !atLeast(s.SalesGrowth5Y, 15) {
		return false
	}
	if f.ValueOnly && !atMost(s.PE, 20) {
		return false
	}
	if f.DividendOnly && !greaterThan(s.DividendYield, 0) {
		return false
	}

	if f.PEMin != nil && !atLeast(s.PE, *f.PEMin) {
		return false
	}
	if f.PEMax != nil && !atMost(s.PE, *f.PEMax) {
		return false
	}
	if f.ROEMin > 0 && !atLeast(s.ROE, f.ROEMin) {
		return false
	}
	if f.DEMax != nil && !atMost(s.DebtToEquity, *f.DEMax) {
		return false
	}
	if f.MCapMin > 0 && !atLeast(s.MarketCap, f.MCapMin) {
		return false
	}

	return true
}

func atLeast(v *float64, min float64) bool {
	return v != nil && *v >= min
}

func atMost(v *float64, max float64) bool {
	return v != nil && *v <= max
}

func greaterThan(v *float64, min float64) bool {
	return v != nil && *v > min
}
