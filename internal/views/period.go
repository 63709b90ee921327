package views

import (
	"time"

	"github.com/epeers/fundsight/internal/models"
	"github.com/shopspring/decimal"
)

// Bucket is a relative look-back window for the performance chart
type Bucket string

const (
	Bucket1M  Bucket = "1M"
	Bucket3M  Bucket = "3M"
	Bucket6M  Bucket = "6M"
	Bucket1Y  Bucket = "1Y"
	Bucket3Y  Bucket = "3Y"
	BucketMax Bucket = "MAX"

	DefaultBucket = Bucket1M
)

// Buckets lists the windows in display order
var Buckets = []Bucket{Bucket1M, Bucket3M, Bucket6M, Bucket1Y, Bucket3Y, BucketMax}

// ParseBucket maps a query value to a bucket. Empty selects the default;
// anything unrecognised shows the whole series.
func ParseBucket(s string) Bucket {
	if s == "" {
		return DefaultBucket
	}
	for _, b := range Buckets {
		if string(b) == s {
			return b
		}
	}
	return BucketMax
}

// Cutoff returns the earliest date kept by the bucket, and false when the
// whole series is kept.
func (b Bucket) Cutoff(now time.Time) (time.Time, bool) {
	switch b {
	case Bucket1M:
		return now.AddDate(0, -1, 0), true
	case Bucket3M:
		return now.AddDate(0, -3, 0), true
	case Bucket6M:
		return now.AddDate(0, -6, 0), true
	case Bucket1Y:
		return now.AddDate(-1, 0, 0), true
	case Bucket3Y:
		return now.AddDate(-3, 0, 0), true
	default:
		return time.Time{}, false
	}
}

// ChartPoint is a performance sample formatted for the chart
type ChartPoint struct {
	Date  time.Time       `json:"date"`
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value"`
	Axis  string          `json:"axis"`
}

const chartDateLayout = "2 Jan"

// FilterHistory keeps the points dated on or after the bucket's cutoff,
// in input order.
func FilterHistory(history []models.PerformancePoint, b Bucket, now time.Time) []models.PerformancePoint {
	cutoff, bounded := b.Cutoff(now)
	out := make([]models.PerformancePoint, 0, len(history))
	for _, p := range history {
		if bounded && p.Date.Before(cutoff) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Chart filters the history and formats every remaining point
func Chart(history []models.PerformancePoint, b Bucket, now time.Time, f Formatter) []ChartPoint {
	filtered := FilterHistory(history, b, now)
	out := make([]ChartPoint, len(filtered))
	for i, p := range filtered {
		out[i] = ChartPoint{
			Date:  p.Date.Time,
			Label: p.Date.Format(chartDateLayout),
			Value: p.Value,
			Axis:  f.Thousands(p.Value),
		}
	}
	return out
}
