package views

import (
	"strings"

	"github.com/epeers/fundsight/internal/models"
)

const (
	noData      = "No data"
	zeroPercent = "0%"
)

// MetricCard is one headline figure on the performance page
type MetricCard struct {
	Title       string `json:"title"`
	Value       string `json:"value"`
	Change      string `json:"change"`
	ChangeLabel string `json:"change_label,omitempty"`
	Positive    bool   `json:"positive"`
}

// MetricCards returns the current value, initial value, best scheme and
// worst scheme cards for one investment.
func MetricCards(inv models.Investment, f Formatter) []MetricCard {
	oneDay, oneDayUp := zeroPercent, true
	if n := len(inv.PerformanceHistory); n >= 2 {
		oneDay, oneDayUp = percentChange(inv.PerformanceHistory[n-2].Value, inv.PerformanceHistory[n-1].Value)
	}
	overall, overallUp := percentChange(inv.InitialValue, inv.CurrentValue)

	best := orDefault(inv.BestPerformanceChange, zeroPercent)
	worst := orDefault(inv.WorstPerformanceChange, zeroPercent)

	return []MetricCard{
		{
			Title:       "Current Investment Value",
			Value:       f.Whole(inv.CurrentValue),
			Change:      oneDay,
			ChangeLabel: "1D Return",
			Positive:    oneDayUp,
		},
		{
			Title:    "Initial Investment Value",
			Value:    f.Whole(inv.InitialValue),
			Change:   overall,
			Positive: overallUp,
		},
		{
			Title:    "Best Performing Scheme",
			Value:    orDefault(inv.BestPerformingScheme, noData),
			Change:   best,
			Positive: strings.HasPrefix(best, "+"),
		},
		{
			Title:    "Worst Performing Scheme",
			Value:    orDefault(inv.WorstPerformingScheme, noData),
			Change:   worst,
			Positive: !strings.HasPrefix(worst, "-"),
		},
	}
}

// SectorCard is a sector allocation ready for display
type SectorCard struct {
	Name       string `json:"name"`
	Amount     string `json:"amount"`
	Percentage string `json:"percentage"`
	Color      string `json:"color"`
}

func SectorCards(inv models.Investment, f Formatter) []SectorCard {
	out := make([]SectorCard, len(inv.SectorAllocations))
	for i, s := range inv.SectorAllocations {
		out[i] = SectorCard{
			Name:       s.Name,
			Amount:     f.Whole(s.Amount),
			Percentage: s.Percentage,
			Color:      s.BgColor,
		}
	}
	return out
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
