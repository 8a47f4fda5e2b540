package screener

import (
	"math"
	"sort"

	"github.com/yourusername/equity-screener/internal/models"
)

// Summary holds the headline metrics shown above the dashboard tabs.
// Averages are nil when no filtered row carries the field.
type Summary struct {
	TotalStocks    int      `json:"total_stocks"`
	FilteredCount  int      `json:"filtered_count"`
	AvgROE         *float64 `json:"avg_roe,omitempty"`
	AvgPE          *float64 `json:"avg_pe,omitempty"`
	ExcellentCount int      `json:"excellent_count"`
}

// DistributionEntry is one bucket of a categorical distribution.
type DistributionEntry struct {
	Label string `json:"label"`
	Count int    `json:"count"`
	Color string `json:"color,omitempty"`
}

// Stats mirrors a describe() pass over one numeric column: rows missing the
// column are excluded from every statistic.
type Stats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	P25    float64 `json:"p25"`
	Median float64 `json:"median"`
	P75    float64 `json:"p75"`
	Max    float64 `json:"max"`
}

// LeaderEntry is one row of a metric leaderboard.
type LeaderEntry struct {
	Name    string  `json:"name"`
	NSECode string  `json:"nse_code"`
	Value   float64 `json:"value"`
}

// Summarize computes the headline metrics for a filtered view against the
// total universe size.
func Summarize(total int, rated []models.RatedStock) Summary {
	s := Summary{TotalStocks: total, FilteredCount: len(rated)}
	s.AvgROE = mean(rated, func(r *models.RatedStock) *float64 { return r.Stock.ROE })
	s.AvgPE = mean(rated, func(r *models.RatedStock) *float64 { return r.Stock.PE })
	for i := range rated {
		if rated[i].Rating == models.RatingExcellent {
			s.ExcellentCount++
		}
	}
	return s
}

// RatingDistribution counts filtered stocks per rating label, best first.
// Empty buckets are omitted.
func RatingDistribution(rated []models.RatedStock) []DistributionEntry {
	counts := make(map[models.Rating]int)
	for i := range rated {
		counts[rated[i].Rating]++
	}
	var out []DistributionEntry
	for _, r := range models.AllRatings {
		if counts[r] > 0 {
			out = append(out, DistributionEntry{Label: string(r), Count: counts[r], Color: r.Color()})
		}
	}
	return out
}

// IndustryDistribution counts filtered stocks per industry and returns the
// top n industries by count. Stocks without an industry are skipped.
func IndustryDistribution(rated []models.RatedStock, n int) []DistributionEntry {
	counts := make(map[string]int)
	for i := range rated {
		if ind := rated[i].Stock.Industry; ind != "" {
			counts[ind]++
		}
	}
	out := make([]DistributionEntry, 0, len(counts))
	for ind, c := range counts {
		out = append(out, DistributionEntry{Label: ind, Count: c})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// Describe computes distribution statistics for the named numeric field
// over the filtered view. Returns nil when no row carries the field.
func Describe(rated []models.RatedStock, field string) *Stats {
	var values []float64
	for i := range rated {
		if v, ok := rated[i].Stock.Field(field); ok {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return nil
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	sum := 0.0
	for _, v := range values {
		sum += v
	}
	m := sum / float64(len(values))

	variance := 0.0
	for _, v := range values {
		variance += (v - m) * (v - m)
	}
	std := 0.0
	if len(values) > 1 {
		// Sample standard deviation.
		std = math.Sqrt(variance / float64(len(values)-1))
	}

	return &Stats{
		Count:  len(values),
		Mean:   m,
		Std:    std,
		Min:    sorted[0],
		P25:    percentile(sorted, 0.25),
		Median: percentile(sorted, 0.50),
		P75:    percentile(sorted, 0.75),
		Max:    sorted[len(sorted)-1],
	}
}

// leaderMetrics maps leaderboard names onto stock fields.
var leaderMetrics = map[string]string{
	"return_1y":     "return_1y",
	"return_3y":     "return_3y",
	"roe":           "roe",
	"roic":          "roic",
	"npm":           "npm",
	"opm":           "opm",
	"sales_growth":  "sales_growth_5y",
	"profit_growth": "profit_growth_5y",
}

// Leaders returns the top n stocks by the named metric, descending. Rows
// missing the metric are dropped. Unknown metrics return ErrUnknownMetric.
func Leaders(rated []models.RatedStock, metric string, n int) ([]LeaderEntry, error) {
	field, ok := leaderMetrics[metric]
	if !ok {
		return nil, models.ErrUnknownMetric
	}

	var out []LeaderEntry
	for i := range rated {
		if v, present := rated[i].Stock.Field(field); present {
			out = append(out, LeaderEntry{
				Name:    rated[i].Stock.Name,
				NSECode: rated[i].Stock.NSECode,
				Value:   v,
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value > out[j].Value })
	if len(out) > n {
		out = out[:n]
	}
	return out, nil
}

// LeaderMetrics lists the supported leaderboard metric names.
func LeaderMetrics() []string {
	out := make([]string, 0, len(leaderMetrics))
	for m := range leaderMetrics {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

func mean(rated []models.RatedStock, get func(*models.RatedStock) *float64) *float64 {
	sum := 0.0
	count := 0
	for i := range rated {
		if v := get(&rated[i]); v != nil {
			sum += *v
			count++
		}
	}
	if count == 0 {
		return nil
	}
	return models.Float(sum / float64(count))
}

// percentile computes the p-quantile of a sorted slice using linear
// interpolation between closest ranks.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	rank := p * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
