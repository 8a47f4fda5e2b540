package rating

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yourusername/equity-screener/internal/models"
)

func TestGrowthScoreAllFieldsPresent(t *testing.T) {
	engine := NewEngine()

	stock := &models.Stock{
		Return1Y:       models.Float(40),
		Return3Y:       models.Float(30),
		SalesGrowth5Y:  models.Float(20),
		ProfitGrowth5Y: models.Float(10),
		ROE:            models.Float(18),
	}

	// Weights sum to 1.0, so the score is the plain weighted sum.
	want := 40*0.30 + 30*0.25 + 20*0.20 + 10*0.15 + 18*0.10
	assert.InDelta(t, want, engine.GrowthScore(stock), 1e-9)
}

func TestGrowthScoreRenormalizesOverPresentFields(t *testing.T) {
	engine := NewEngine()

	// Only 1Y return and ROE present: weights 0.30 and 0.10.
	stock := &models.Stock{
		Return1Y: models.Float(50),
		ROE:      models.Float(20),
	}
	want := (50*0.30 + 20*0.10) / (0.30 + 0.10)
	assert.InDelta(t, want, engine.GrowthScore(stock), 1e-9)
}

func TestGrowthScoreSingleField(t *testing.T) {
	engine := NewEngine()

	stock := &models.Stock{Return3Y: models.Float(24)}
	assert.InDelta(t, 24, engine.GrowthScore(stock), 1e-9)
}

func TestGrowthScoreNoFields(t *testing.T) {
	engine := NewEngine()
	assert.Zero(t, engine.GrowthScore(&models.Stock{}))
}

func TestGrowthScoreNegativeReturns(t *testing.T) {
	engine := NewEngine()

	stock := &models.Stock{Return1Y: models.Float(-30)}
	assert.InDelta(t, -30, engine.GrowthScore(stock), 1e-9)
}

func TestValueScore(t *testing.T) {
	engine := NewEngine()

	tests := []struct {
		name  string
		stock models.Stock
		want  float64
		ok    bool
	}{
		{"defined", models.Stock{ROE: models.Float(20), PE: models.Float(10)}, 2.0, true},
		{"missing roe", models.Stock{PE: models.Float(10)}, 0, false},
		{"missing pe", models.Stock{ROE: models.Float(20)}, 0, false},
		{"negative pe", models.Stock{ROE: models.Float(20), PE: models.Float(-5)}, 0, false},
		{"zero pe", models.Stock{ROE: models.Float(20), PE: models.Float(0)}, 0, false},
		{"pe at upper bound", models.Stock{ROE: models.Float(20), PE: models.Float(100)}, 0, false},
		{"pe just under bound", models.Stock{ROE: models.Float(20), PE: models.Float(99)}, 20.0 / 99, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := engine.ValueScore(&tt.stock)
			assert.Equal(t, tt.ok, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}
