// Package rating implements the weighted-heuristic quality rating for a
// stock and the composite growth score used by the alternate ranking view.
package rating

import (
	"github.com/yourusername/equity-screener/internal/models"
)

// Point weights per factor. The maximum for a factor counts toward the
// denominator only when the underlying field is present on the record, so
// the effective weighting shifts per record when fields are missing. That
// is intended behavior, not something to normalize away.
const (
	maxROEPoints    = 3
	maxDebtPoints   = 2
	maxPEPoints     = 2
	maxGrowthPoints = 1 // per growth field
	maxFCFPoints    = 1
)

// Bucket thresholds on the normalized 0-5 score.
const (
	excellentThreshold    = 4
	goodThreshold         = 3
	averageThreshold      = 2
	belowAverageThreshold = 1
)

// Engine computes quality ratings and composite scores for stocks.
// The zero value is not usable; create one with NewEngine.
type Engine struct{}

// NewEngine creates a rating engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Rate assigns the qualitative rating to a stock. It accumulates weighted
// points across independent factors, normalizes by the points actually
// evaluable for this record, and buckets the resulting 0-5 score. A record
// with no evaluable factors scores 0 and rates Poor; there is no division
// by zero.
func (e *Engine) Rate(s *models.Stock) (models.Rating, float64) {
	score := 0
	factors := 0

	// ROE carries the most weight.
	if roe := s.ROE; roe != nil {
		switch {
		case *roe >= 20:
			score += 3
		case *roe >= 15:
			score += 2
		case *roe >= 10:
			score++
		}
		factors += maxROEPoints
	}

	if de := s.DebtToEquity; de != nil {
		switch {
		case *de <= 0.3:
			score += 2
		case *de <= 0.7:
			score++
		}
		factors += maxDebtPoints
	}

	// Negative P/E means negative earnings; the factor is not evaluable.
	if pe := s.PE; pe != nil && *pe > 0 {
		switch {
		case *pe <= 12:
			score += 2
		case *pe <= 20:
			score++
		}
		factors += maxPEPoints
	}

	if sg := s.SalesGrowth5Y; sg != nil {
		if *sg >= 15 {
			score++
		}
		factors += maxGrowthPoints
	}
	if pg := s.ProfitGrowth5Y; pg != nil {
		if *pg >= 15 {
			score++
		}
		factors += maxGrowthPoints
	}

	if fcf := s.FreeCashFlow; fcf != nil {
		if *fcf > 0 {
			score++
		}
		factors += maxFCFPoints
	}

	normalized := 0.0
	if factors > 0 {
		normalized = float64(score) / float64(factors) * 5
	}

	return bucket(normalized), normalized
}

// RateAll rates every stock in the slice, preserving order.
func (e *Engine) RateAll(stocks []models.Stock) []models.RatedStock {
	rated := make([]models.RatedStock, 0, len(stocks))
	for i := range stocks {
		label, score := e.Rate(&stocks[i])
		rated = append(rated, models.RatedStock{
			Stock:       stocks[i],
			Rating:      label,
			Color:       label.Color(),
			Score:       score,
			GrowthScore: e.GrowthScore(&stocks[i]),
		})
	}
	return rated
}

func bucket(score float64) models.Rating {
	switch {
	case score >= excellentThreshold:
		return models.RatingExcellent
	case score >= goodThreshold:
		return models.RatingGood
	case score >= averageThreshold:
		return models.RatingAverage
	case score >= belowAverageThreshold:
		return models.RatingBelowAverage
	default:
		return models.RatingPoor
	}
}
