package screener

import (
	"sort"

	"github.com/yourusername/equity-screener/internal/models"
)

// Display limits for the picks views.
const (
	maxExcellentPicks = 10
	maxGoodPicks      = 8
	maxFallbackPicks  = 5
	maxValuePicks     = 10
	maxSmallCapPicks  = 8
	smallCapCeiling   = 10000 // Crores
	smallCapMinGrowth = 15    // percent, sales growth 5y
)

// Picks groups the investment-pick views derived from a filtered set.
type Picks struct {
	Excellent []models.RatedStock `json:"excellent"`
	Good      []models.RatedStock `json:"good"`
	// Fallback holds the best available stocks by ROE, only populated when
	// no Excellent or Good rated stocks match the filters.
	Fallback []models.RatedStock `json:"fallback,omitempty"`
}

// ValuePick is a stock ranked by the ROE/PE value score.
type ValuePick struct {
	Name    string  `json:"name"`
	NSECode string  `json:"nse_code"`
	PE      float64 `json:"pe"`
	ROE     float64 `json:"roe"`
	Score   float64 `json:"score"`
}

// SmallCapPick is a small-cap stock with high sales growth.
type SmallCapPick struct {
	Name        string  `json:"name"`
	NSECode     string  `json:"nse_code"`
	MarketCap   float64 `json:"market_cap"`
	SalesGrowth float64 `json:"sales_growth"`
}

// TopPicks selects the Excellent and Good rated stocks from the filtered
// view, preserving order. When neither bucket has entries it falls back to
// the top stocks by ROE so the view is never empty while data exists.
func TopPicks(rated []models.RatedStock) Picks {
	var p Picks
	for i := range rated {
		switch rated[i].Rating {
		case models.RatingExcellent:
			if len(p.Excellent) < maxExcellentPicks {
				p.Excellent = append(p.Excellent, rated[i])
			}
		case models.RatingGood:
			if len(p.Good) < maxGoodPicks {
				p.Good = append(p.Good, rated[i])
			}
		}
	}

	if len(p.Excellent) == 0 && len(p.Good) == 0 && len(rated) > 0 {
		fallback := append([]models.RatedStock(nil), rated...)
		sortByNumeric(fallback, false, func(r *models.RatedStock) (float64, bool) {
			return r.Stock.Field("roe")
		})
		if len(fallback) > maxFallbackPicks {
			fallback = fallback[:maxFallbackPicks]
		}
		p.Fallback = fallback
	}

	return p
}

// ValuePicks ranks stocks by ROE/PE descending. Rows where the value score
// is undefined (missing fields or P/E outside (0, 100)) are dropped.
func ValuePicks(rated []models.RatedStock, score func(*models.Stock) (float64, bool)) []ValuePick {
	var out []ValuePick
	for i := range rated {
		s := &rated[i].Stock
		v, ok := score(s)
		if !ok {
			continue
		}
		out = append(out, ValuePick{
			Name:    s.Name,
			NSECode: s.NSECode,
			PE:      *s.PE,
			ROE:     *s.ROE,
			Score:   v,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > maxValuePicks {
		out = out[:maxValuePicks]
	}
	return out
}

// SmallCapGrowth selects stocks with market cap under the small-cap ceiling
// and five-year sales growth above the growth floor, sorted by growth.
func SmallCapGrowth(rated []models.RatedStock) []SmallCapPick {
	var out []SmallCapPick
	for i := range rated {
		s := &rated[i].Stock
		if s.MarketCap == nil || s.SalesGrowth5Y == nil {
			continue
		}
		if *s.MarketCap >= smallCapCeiling || *s.SalesGrowth5Y <= smallCapMinGrowth {
			continue
		}
		out = append(out, SmallCapPick{
			Name:        s.Name,
			NSECode:     s.NSECode,
			MarketCap:   *s.MarketCap,
			SalesGrowth: *s.SalesGrowth5Y,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SalesGrowth > out[j].SalesGrowth })
	if len(out) > maxSmallCapPicks {
		out = out[:maxSmallCapPicks]
	}
	return out
}
