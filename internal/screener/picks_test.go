package screener

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/equity-screener/internal/models"
	"github.com/yourusername/equity-screener/internal/rating"
)

func TestTopPicksBuckets(t *testing.T) {
	rated := ratedUniverse(t)
	picks := TopPicks(rated)

	require.Len(t, picks.Excellent, 1)
	assert.Equal(t, "ALPHA", picks.Excellent[0].Stock.NSECode)
	assert.Empty(t, picks.Good)
	assert.Empty(t, picks.Fallback, "fallback only fires when both buckets are empty")
}

func TestTopPicksCapsBuckets(t *testing.T) {
	var stocks []models.Stock
	for i := 0; i < 15; i++ {
		stocks = append(stocks, models.Stock{
			Name:    fmt.Sprintf("Stock %02d", i),
			NSECode: fmt.Sprintf("S%02d", i),
			ROE:     models.Float(25),
		})
	}
	rated := rating.NewEngine().RateAll(stocks)

	picks := TopPicks(rated)
	assert.Len(t, picks.Excellent, maxExcellentPicks)
}

func TestTopPicksFallbackByROE(t *testing.T) {
	stocks := []models.Stock{
		{Name: "Low A", NSECode: "LA", ROE: models.Float(4)},
		{Name: "Low B", NSECode: "LB", ROE: models.Float(8)},
		{Name: "Low C", NSECode: "LC"},
	}
	rated := rating.NewEngine().RateAll(stocks)

	picks := TopPicks(rated)
	assert.Empty(t, picks.Excellent)
	assert.Empty(t, picks.Good)
	require.Len(t, picks.Fallback, 3)
	assert.Equal(t, "LB", picks.Fallback[0].Stock.NSECode)
	assert.Equal(t, "LA", picks.Fallback[1].Stock.NSECode)
	// Missing ROE trails.
	assert.Equal(t, "LC", picks.Fallback[2].Stock.NSECode)
}

func TestTopPicksEmptyInput(t *testing.T) {
	picks := TopPicks(nil)
	assert.Empty(t, picks.Excellent)
	assert.Empty(t, picks.Good)
	assert.Empty(t, picks.Fallback)
}

func TestValuePicksRankedByScore(t *testing.T) {
	engine := rating.NewEngine()
	rated := ratedUniverse(t)

	picks := ValuePicks(rated, engine.ValueScore)
	// ALPHA 22/10 = 2.2, GAMMA 17/18 ≈ 0.94, BETA 9/30 = 0.3; DELTA dropped.
	require.Len(t, picks, 3)
	assert.Equal(t, "ALPHA", picks[0].NSECode)
	assert.Equal(t, "GAMMA", picks[1].NSECode)
	assert.Equal(t, "BETA", picks[2].NSECode)
	assert.InDelta(t, 2.2, picks[0].Score, 1e-9)
}

func TestValuePicksDropsUndefined(t *testing.T) {
	engine := rating.NewEngine()
	rated := rating.NewEngine().RateAll([]models.Stock{
		{Name: "Pricey", NSECode: "PRICEY", ROE: models.Float(20), PE: models.Float(150)},
		{Name: "Lossy", NSECode: "LOSSY", ROE: models.Float(20), PE: models.Float(-4)},
	})

	assert.Empty(t, ValuePicks(rated, engine.ValueScore))
}

func TestSmallCapGrowth(t *testing.T) {
	rated := rating.NewEngine().RateAll([]models.Stock{
		{Name: "Tiny Grower", NSECode: "TINY", MarketCap: models.Float(800), SalesGrowth5Y: models.Float(25)},
		{Name: "Big Grower", NSECode: "BIG", MarketCap: models.Float(50000), SalesGrowth5Y: models.Float(30)},
		{Name: "Tiny Slow", NSECode: "SLOW", MarketCap: models.Float(900), SalesGrowth5Y: models.Float(10)},
		{Name: "Tiny Faster", NSECode: "FAST", MarketCap: models.Float(2000), SalesGrowth5Y: models.Float(40)},
		{Name: "No Data", NSECode: "NONE"},
	})

	picks := SmallCapGrowth(rated)
	require.Len(t, picks, 2)
	assert.Equal(t, "FAST", picks[0].NSECode)
	assert.Equal(t, "TINY", picks[1].NSECode)
}

func TestSmallCapGrowthBoundariesExcluded(t *testing.T) {
	rated := rating.NewEngine().RateAll([]models.Stock{
		{Name: "At Ceiling", NSECode: "CEIL", MarketCap: models.Float(10000), SalesGrowth5Y: models.Float(25)},
		{Name: "At Floor", NSECode: "FLOOR", MarketCap: models.Float(500), SalesGrowth5Y: models.Float(15)},
	})

	assert.Empty(t, SmallCapGrowth(rated))
}
