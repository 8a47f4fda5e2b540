package screener

import (
	"sort"
	"strings"

	"github.com/yourusername/equity-screener/internal/models"
)

// Sortable text fields; every other field name is resolved through
// Stock.Field as a numeric field.
const (
	SortByName     = "name"
	SortByNSECode  = "nse_code"
	SortByIndustry = "industry"
	SortByRating   = "rating"
	SortByGrowth   = "growth_score"
)

// Sort orders rated stocks by the named field in place. The sort is stable,
// so rows that compare equal keep their input order and sorting twice
// yields the same order. Rows missing the sort field always order after
// rows that have it, regardless of direction.
func Sort(rated []models.RatedStock, field string, ascending bool) {
	switch field {
	case SortByName:
		sortByText(rated, ascending, func(r *models.RatedStock) string { return r.Stock.Name })
	case SortByNSECode:
		sortByText(rated, ascending, func(r *models.RatedStock) string { return r.Stock.NSECode })
	case SortByIndustry:
		sortByText(rated, ascending, func(r *models.RatedStock) string { return r.Stock.Industry })
	case SortByRating:
		sortByNumeric(rated, ascending, func(r *models.RatedStock) (float64, bool) {
			return float64(r.Rating.Ordinal()), true
		})
	case SortByGrowth:
		sortByNumeric(rated, ascending, func(r *models.RatedStock) (float64, bool) {
			return r.GrowthScore, true
		})
	default:
		sortByNumeric(rated, ascending, func(r *models.RatedStock) (float64, bool) {
			return r.Stock.Field(field)
		})
	}
}

// ValidSortField reports whether field names a sortable column.
func ValidSortField(field string) bool {
	switch field {
	case SortByName, SortByNSECode, SortByIndustry, SortByRating, SortByGrowth:
		return true
	default:
		var s models.Stock
		_, ok := s.Field(field)
		if ok {
			return true
		}
		// Optional fields report !ok on the zero Stock even when the name
		// is valid, so probe with a populated record.
		probe := populatedProbe
		_, ok = probe.Field(field)
		return ok
	}
}

var populatedProbe = models.Stock{
	CurrentPrice:    1,
	MarketCap:       models.Float(1),
	ROE:             models.Float(1),
	ROIC:            models.Float(1),
	PE:              models.Float(1),
	DebtToEquity:    models.Float(1),
	SalesGrowth5Y:   models.Float(1),
	ProfitGrowth5Y:  models.Float(1),
	FreeCashFlow:    models.Float(1),
	DividendYield:   models.Float(1),
	Return1Y:        models.Float(1),
	Return3Y:        models.Float(1),
	Return5Y:        models.Float(1),
	NetProfitMargin: models.Float(1),
	OperatingProfit: models.Float(1),
	Sales:           models.Float(1),
}

func sortByText(rated []models.RatedStock, ascending bool, key func(*models.RatedStock) string) {
	sort.SliceStable(rated, func(i, j int) bool {
		a, b := strings.ToLower(key(&rated[i])), strings.ToLower(key(&rated[j]))
		if ascending {
			return a < b
		}
		return a > b
	})
}

func sortByNumeric(rated []models.RatedStock, ascending bool, key func(*models.RatedStock) (float64, bool)) {
	sort.SliceStable(rated, func(i, j int) bool {
		a, aok := key(&rated[i])
		b, bok := key(&rated[j])
		if aok != bok {
			return aok // present values always sort before missing ones
		}
		if !aok {
			return false
		}
		if ascending {
			return a < b
		}
		return a > b
	})
}
