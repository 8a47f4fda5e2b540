package rating

import "github.com/yourusername/equity-screener/internal/models"

// Growth score weights. They sum to 1.0 across the five fields; when a
// field is missing its weight drops out and the score is renormalized over
// the weights that remain.
const (
	weightReturn1Y     = 0.30
	weightReturn3Y     = 0.25
	weightSalesGrowth  = 0.20
	weightProfitGrowth = 0.15
	weightROE          = 0.10
)

// GrowthScore computes the weighted growth-and-returns composite for the
// alternate ranking view. A record with none of the five inputs present
// scores 0.
func (e *Engine) GrowthScore(s *models.Stock) float64 {
	score := 0.0
	weights := 0.0

	add := func(v *float64, w float64) {
		if v == nil {
			return
		}
		score += *v * w
		weights += w
	}

	add(s.Return1Y, weightReturn1Y)
	add(s.Return3Y, weightReturn3Y)
	add(s.SalesGrowth5Y, weightSalesGrowth)
	add(s.ProfitGrowth5Y, weightProfitGrowth)
	add(s.ROE, weightROE)

	if weights == 0 {
		return 0
	}
	return score / weights
}

// ValueScore is ROE divided by P/E, the cheap-earnings heuristic behind the
// "best value picks" view. It is only defined for 0 < P/E < 100 with ROE
// present; the second return value reports definedness.
func (e *Engine) ValueScore(s *models.Stock) (float64, bool) {
	if s.ROE == nil || s.PE == nil {
		return 0, false
	}
	if *s.PE <= 0 || *s.PE >= 100 {
		return 0, false
	}
	return *s.ROE / *s.PE, true
}
