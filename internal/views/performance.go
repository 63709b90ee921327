package views

import (
	"time"

	"github.com/epeers/fundsight/internal/models"
)

// Performance is everything the performance page shows for one investor
type Performance struct {
	User        string       `json:"user"`
	Period      Bucket       `json:"period"`
	Value       string       `json:"value"`
	Gain        string       `json:"gain"`
	GainPercent string       `json:"gain_percent"`
	Positive    bool         `json:"positive"`
	Cards       []MetricCard `json:"cards"`
	Chart       []ChartPoint `json:"chart"`
	Sectors     []SectorCard `json:"sectors"`
}

// BuildPerformance derives the performance page for one investment
func BuildPerformance(inv models.Investment, b Bucket, now time.Time, f Formatter) Performance {
	gainPercent, positive := percentChange(inv.InitialValue, inv.CurrentValue)
	return Performance{
		User:        inv.UserName,
		Period:      b,
		Value:       f.Whole(inv.CurrentValue),
		Gain:        f.Whole(inv.CurrentValue.Sub(inv.InitialValue)),
		GainPercent: gainPercent,
		Positive:    positive,
		Cards:       MetricCards(inv, f),
		Chart:       Chart(inv.PerformanceHistory, b, now, f),
		Sectors:     SectorCards(inv, f),
	}
}
