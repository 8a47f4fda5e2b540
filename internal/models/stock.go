// Package models defines the core data types for the equity screener.
package models

// Stock represents a single row of equity fundamentals from the watchlist CSV.
// A stock is keyed by its NSE code. Required fields are always populated;
// every other field is optional and nil means "not applicable" for the row.
// Records are immutable once loaded.
type Stock struct {
	Name         string `json:"name" validate:"required"`
	NSECode      string `json:"nse_code" validate:"required"`
	Industry     string `json:"industry,omitempty"`
	CurrentPrice float64 `json:"current_price"`

	MarketCap       *float64 `json:"market_cap,omitempty"` // in Crores
	ROE             *float64 `json:"roe,omitempty"`
	ROIC            *float64 `json:"roic,omitempty"`
	PE              *float64 `json:"pe,omitempty"`
	DebtToEquity    *float64 `json:"debt_to_equity,omitempty"`
	SalesGrowth5Y   *float64 `json:"sales_growth_5y,omitempty"`
	ProfitGrowth5Y  *float64 `json:"profit_growth_5y,omitempty"`
	FreeCashFlow    *float64 `json:"free_cash_flow,omitempty"` // last year, in Crores
	DividendYield   *float64 `json:"dividend_yield,omitempty"`
	Return1Y        *float64 `json:"return_1y,omitempty"`
	Return3Y        *float64 `json:"return_3y,omitempty"`
	Return5Y        *float64 `json:"return_5y,omitempty"`
	NetProfitMargin *float64 `json:"npm,omitempty"`
	OperatingProfit *float64 `json:"operating_profit,omitempty"` // in Crores
	Sales           *float64 `json:"sales,omitempty"`            // in Crores
}

// OPM returns the operating profit margin in percent, derived from
// operating profit and sales. The second return value is false when either
// input is missing or sales is not positive.
func (s *Stock) OPM() (float64, bool) {
	if s.OperatingProfit == nil || s.Sales == nil || *s.Sales <= 0 {
		return 0, false
	}
	return (*s.OperatingProfit / *s.Sales) * 100, true
}

// Field returns the named numeric field and whether it is present.
// Field names match the JSON tags used by the API and the CLI sort flags.
func (s *Stock) Field(name string) (float64, bool) {
	switch name {
	case "current_price":
		return s.CurrentPrice, true
	case "market_cap":
		return deref(s.MarketCap)
	case "roe":
		return deref(s.ROE)
	case "roic":
		return deref(s.ROIC)
	case "pe":
		return deref(s.PE)
	case "debt_to_equity":
		return deref(s.DebtToEquity)
	case "sales_growth_5y":
		return deref(s.SalesGrowth5Y)
	case "profit_growth_5y":
		return deref(s.ProfitGrowth5Y)
	case "free_cash_flow":
		return deref(s.FreeCashFlow)
	case "dividend_yield":
		return deref(s.DividendYield)
	case "return_1y":
		return deref(s.Return1Y)
	case "return_3y":
		return deref(s.Return3Y)
	case "return_5y":
		return deref(s.Return5Y)
	case "npm":
		return deref(s.NetProfitMargin)
	case "opm":
		return s.OPM()
	default:
		return 0, false
	}
}

func deref(v *float64) (float64, bool) {
	if v == nil {
		return 0, false
	}
	return *v, true
}

// Float returns a pointer to v. Convenience for building records in tests
// and loaders.
func Float(v float64) *float64 {
	return &v
}
