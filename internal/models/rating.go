package models

// Rating is the qualitative quality label assigned to a stock.
type Rating string

// Rating labels, ordered from best to worst.
const (
	RatingExcellent    Rating = "Excellent"
	RatingGood         Rating = "Good"
	RatingAverage      Rating = "Average"
	RatingBelowAverage Rating = "Below Average"
	RatingPoor         Rating = "Poor"
)

// AllRatings lists every rating label from best to worst. Used when
// rendering distributions so empty buckets keep a stable order.
var AllRatings = []Rating{
	RatingExcellent,
	RatingGood,
	RatingAverage,
	RatingBelowAverage,
	RatingPoor,
}

// Color returns the display color associated with the rating.
func (r Rating) Color() string {
	switch r {
	case RatingExcellent:
		return "#2e7d32"
	case RatingGood:
		return "#1976d2"
	case RatingAverage:
		return "#f57c00"
	case RatingBelowAverage:
		return "#ff6f00"
	default:
		return "#d32f2f"
	}
}

// Ordinal returns the rank of the rating, 4 for Excellent down to 0 for
// Poor. Higher is better.
func (r Rating) Ordinal() int {
	switch r {
	case RatingExcellent:
		return 4
	case RatingGood:
		return 3
	case RatingAverage:
		return 2
	case RatingBelowAverage:
		return 1
	default:
		return 0
	}
}

// RatedStock pairs a stock with its derived rating fields for one screen
// pass. Derived fields are recomputed per pass and never persisted.
type RatedStock struct {
	Stock       Stock   `json:"stock"`
	Rating      Rating  `json:"rating"`
	Color       string  `json:"color"`
	Score       float64 `json:"score"`        // normalized 0-5
	GrowthScore float64 `json:"growth_score"` // weighted growth/returns composite
}
