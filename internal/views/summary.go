package views

import (
	"github.com/epeers/fundsight/internal/models"
	"github.com/shopspring/decimal"
)

// Summary is the dashboard roll-up over every loaded investment
type Summary struct {
	TotalValue       decimal.Decimal `json:"total_value"`
	TotalInitial     decimal.Decimal `json:"total_initial"`
	TotalGrowth      decimal.Decimal `json:"total_growth"`
	GrowthPercentage string          `json:"growth_percentage"`
	PositiveGrowth   bool            `json:"positive_growth"`
	TopScheme        string          `json:"top_scheme"`
	TopSchemeChange  string          `json:"top_scheme_change"`
	Investors        int             `json:"investors"`
}

// TotalValue is the sum of current values, zero for an empty list
func TotalValue(investments []models.Investment) decimal.Decimal {
	total := decimal.Zero
	for _, inv := range investments {
		total = total.Add(inv.CurrentValue)
	}
	return total
}

// TotalInitial is the sum of initial values
func TotalInitial(investments []models.Investment) decimal.Decimal {
	total := decimal.Zero
	for _, inv := range investments {
		total = total.Add(inv.InitialValue)
	}
	return total
}

// TotalGrowth is the sum of current minus initial values
func TotalGrowth(investments []models.Investment) decimal.Decimal {
	return TotalValue(investments).Sub(TotalInitial(investments))
}

// GrowthPercentage is growth over initial as a percentage with one decimal
// and no sign or % suffix. It is "0" when the total value is not positive
// or nothing was invested.
func GrowthPercentage(investments []models.Investment) string {
	value := TotalValue(investments)
	initial := TotalInitial(investments)
	if !value.IsPositive() || initial.IsZero() {
		return "0"
	}
	return value.Sub(initial).Div(initial).Mul(hundred).StringFixed(1)
}

// Summarize builds the dashboard roll-up. The top scheme is taken from the
// first investment, matching what the dashboard highlights.
func Summarize(investments []models.Investment) Summary {
	growth := TotalGrowth(investments)
	s := Summary{
		TotalValue:       TotalValue(investments),
		TotalInitial:     TotalInitial(investments),
		TotalGrowth:      growth,
		GrowthPercentage: GrowthPercentage(investments),
		PositiveGrowth:   !growth.IsNegative(),
		TopScheme:        noData,
		TopSchemeChange:  zeroPercent,
		Investors:        len(investments),
	}
	if len(investments) > 0 {
		if name := investments[0].BestPerformingScheme; name != "" {
			s.TopScheme = name
		}
		if change := investments[0].BestPerformanceChange; change != "" {
			s.TopSchemeChange = change
		}
	}
	return s
}
