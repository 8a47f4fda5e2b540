package rating

import (
	"fmt"

	"github.com/yourusername/equity-screener/internal/models"
)

// Strengths lists the qualitative strengths of a stock for the detail view.
// Missing fields contribute nothing.
func (e *Engine) Strengths(s *models.Stock) []string {
	var strengths []string

	if s.ROE != nil && *s.ROE >= 15 {
		strengths = append(strengths, fmt.Sprintf("Strong profitability (ROE: %.1f%%)", *s.ROE))
	}
	if s.DebtToEquity != nil && *s.DebtToEquity <= 0.5 {
		strengths = append(strengths, fmt.Sprintf("Conservative debt levels (D/E: %.2f)", *s.DebtToEquity))
	}
	if s.PE != nil && *s.PE <= 20 {
		strengths = append(strengths, fmt.Sprintf("Reasonable valuation (P/E: %.1f)", *s.PE))
	}
	if s.SalesGrowth5Y != nil && *s.SalesGrowth5Y >= 15 {
		strengths = append(strengths, fmt.Sprintf("Strong growth trajectory (%.1f%% sales growth)", *s.SalesGrowth5Y))
	}
	if s.FreeCashFlow != nil && *s.FreeCashFlow > 0 {
		strengths = append(strengths, "Positive cash generation")
	}

	return strengths
}

// Risks lists the qualitative risk factors of a stock for the detail view.
func (e *Engine) Risks(s *models.Stock) []string {
	var risks []string

	if s.PE != nil && *s.PE > 25 {
		risks = append(risks, fmt.Sprintf("High valuation (P/E: %.1f)", *s.PE))
	}
	if s.DebtToEquity != nil && *s.DebtToEquity > 1 {
		risks = append(risks, fmt.Sprintf("High debt burden (D/E: %.2f)", *s.DebtToEquity))
	}
	if s.ROE != nil && *s.ROE < 10 {
		risks = append(risks, fmt.Sprintf("Below-average profitability (ROE: %.1f%%)", *s.ROE))
	}
	if s.SalesGrowth5Y != nil && *s.SalesGrowth5Y < 5 {
		risks = append(risks, "Slow growth trajectory")
	}
	if s.FreeCashFlow != nil && *s.FreeCashFlow < 0 {
		risks = append(risks, "Negative cash flow")
	}

	return risks
}
