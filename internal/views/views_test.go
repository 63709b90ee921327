package views

import (
	"testing"
	"time"

	"github.com/epeers/fundsight/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func inv(current, initial string) models.Investment {
	return models.Investment{CurrentValue: dec(current), InitialValue: dec(initial)}
}

func TestTotalValue(t *testing.T) {
	assert.True(t, TotalValue(nil).IsZero())
	assert.True(t, TotalValue([]models.Investment{}).IsZero())

	got := TotalValue([]models.Investment{inv("575000.50", "500000"), inv("300000", "320000")})
	assert.Equal(t, "875000.5", got.String())
}

func TestGrowthPercentage(t *testing.T) {
	cases := []struct {
		name        string
		investments []models.Investment
		want        string
	}{
		// growth 200 over an initial 800
		{"single gain", []models.Investment{inv("1000", "800")}, "25.0"},
		{"loss", []models.Investment{inv("600", "800")}, "-25.0"},
		{"mixed", []models.Investment{inv("575000", "500000"), inv("300000", "320000")}, "6.7"},
		{"empty", nil, "0"},
		{"zero value", []models.Investment{inv("0", "800")}, "0"},
		{"zero initial", []models.Investment{inv("100", "0")}, "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, GrowthPercentage(tc.investments))
		})
	}
}

func TestSummarize(t *testing.T) {
	first := inv("1000", "800")
	first.BestPerformingScheme = "ICICI Prudential Midcap Fund"
	first.BestPerformanceChange = "+19%"

	s := Summarize([]models.Investment{first, inv("500", "600")})
	assert.Equal(t, "1500", s.TotalValue.String())
	assert.Equal(t, "1400", s.TotalInitial.String())
	assert.Equal(t, "100", s.TotalGrowth.String())
	assert.True(t, s.PositiveGrowth)
	assert.Equal(t, "ICICI Prudential Midcap Fund", s.TopScheme)
	assert.Equal(t, "+19%", s.TopSchemeChange)
	assert.Equal(t, 2, s.Investors)

	empty := Summarize(nil)
	assert.Equal(t, "No data", empty.TopScheme)
	assert.Equal(t, "0%", empty.TopSchemeChange)
	assert.Equal(t, "0", empty.GrowthPercentage)
}

func history(now time.Time, daysAgo ...int) []models.PerformancePoint {
	out := make([]models.PerformancePoint, len(daysAgo))
	for i, d := range daysAgo {
		day := now.AddDate(0, 0, -d)
		out[i] = models.PerformancePoint{
			Date:  models.NewDate(day.Year(), day.Month(), day.Day()),
			Value: decimal.NewFromInt(int64(100000 + i*1000)),
		}
	}
	return out
}

func TestParseBucket(t *testing.T) {
	assert.Equal(t, Bucket1M, ParseBucket(""))
	assert.Equal(t, Bucket3Y, ParseBucket("3Y"))
	assert.Equal(t, BucketMax, ParseBucket("MAX"))
	assert.Equal(t, BucketMax, ParseBucket("5Y"))
}

func TestFilterHistory_MaxKeepsEverything(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	series := history(now, 4000, 900, 200, 40, 10, 0)

	got := FilterHistory(series, BucketMax, now)
	assert.Equal(t, series, got)
}

func TestFilterHistory_OneMonthDropsOlderPoints(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	series := history(now, 60, 32, 30, 10, 0)
	cutoff := now.AddDate(0, -1, 0)

	got := FilterHistory(series, Bucket1M, now)
	require.Len(t, got, 3)
	for _, p := range got {
		assert.False(t, p.Date.Before(cutoff), "kept %s before cutoff %s", p.Date, cutoff)
	}
}

func TestFilterHistory_Windows(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	series := history(now, 1200, 400, 200, 100, 50, 5)

	cases := map[Bucket]int{
		Bucket1M:  1,
		Bucket3M:  2,
		Bucket6M:  3,
		Bucket1Y:  4,
		Bucket3Y:  5,
		BucketMax: 6,
	}
	for b, want := range cases {
		assert.Len(t, FilterHistory(series, b, now), want, "bucket %s", b)
	}
}

func TestChart_Labels(t *testing.T) {
	now := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
	series := []models.PerformancePoint{
		{Date: models.NewDate(2024, 1, 2), Value: dec("575000")},
	}
	points := Chart(series, Bucket1M, now, NewFormatter("INR"))
	require.Len(t, points, 1)
	assert.Equal(t, "2 Jan", points[0].Label)
	assert.Equal(t, "₹575K", points[0].Axis)
}

func TestFormatter(t *testing.T) {
	f := NewFormatter("INR")
	assert.Equal(t, "₹", f.Symbol())
	assert.Equal(t, "₹575,000", f.Whole(dec("575000.4")))
	assert.Equal(t, "₹1,235", f.Whole(dec("1234.5")))
	assert.Equal(t, "-₹20,000", f.Whole(dec("-20000")))

	usd := NewFormatter("usd")
	assert.Equal(t, "$12,000", usd.Whole(dec("12000")))
}

func TestMetricCards(t *testing.T) {
	f := NewFormatter("INR")
	i := models.Investment{
		CurrentValue:           dec("575000"),
		InitialValue:           dec("500000"),
		BestPerformingScheme:   "ICICI Prudential Midcap Fund",
		BestPerformanceChange:  "+19%",
		WorstPerformanceChange: "-5%",
		PerformanceHistory: []models.PerformancePoint{
			{Date: models.NewDate(2024, 1, 1), Value: dec("200000")},
			{Date: models.NewDate(2024, 1, 2), Value: dec("190000")},
		},
	}

	cards := MetricCards(i, f)
	require.Len(t, cards, 4)

	assert.Equal(t, "₹575,000", cards[0].Value)
	assert.Equal(t, "-5.0%", cards[0].Change)
	assert.Equal(t, "1D Return", cards[0].ChangeLabel)
	assert.False(t, cards[0].Positive)

	assert.Equal(t, "₹500,000", cards[1].Value)
	assert.Equal(t, "+15.0%", cards[1].Change)
	assert.True(t, cards[1].Positive)

	assert.Equal(t, "ICICI Prudential Midcap Fund", cards[2].Value)
	assert.True(t, cards[2].Positive)

	assert.Equal(t, "No data", cards[3].Value)
	assert.Equal(t, "-5%", cards[3].Change)
	assert.False(t, cards[3].Positive)
}

func TestMetricCards_DivisionByZero(t *testing.T) {
	i := models.Investment{
		CurrentValue: dec("100"),
		InitialValue: decimal.Zero,
		PerformanceHistory: []models.PerformancePoint{
			{Date: models.NewDate(2024, 1, 1), Value: decimal.Zero},
			{Date: models.NewDate(2024, 1, 2), Value: dec("100")},
		},
	}
	cards := MetricCards(i, NewFormatter("INR"))
	assert.Equal(t, "0%", cards[0].Change)
	assert.True(t, cards[0].Positive)
	assert.Equal(t, "0%", cards[1].Change)
	assert.Equal(t, "0%", cards[2].Change)
	assert.False(t, cards[2].Positive, "best change without a + sign is not positive")
	assert.True(t, cards[3].Positive, "worst change without a - sign is not negative")
}

func TestMetricCards_ShortHistory(t *testing.T) {
	i := inv("110", "100")
	i.PerformanceHistory = []models.PerformancePoint{{Date: models.NewDate(2024, 1, 1), Value: dec("110")}}
	cards := MetricCards(i, NewFormatter("INR"))
	assert.Equal(t, "0%", cards[0].Change)
	assert.Equal(t, "+10.0%", cards[1].Change)
}

func TestSectorCards(t *testing.T) {
	i := models.Investment{SectorAllocations: []models.SectorAllocation{
		{Name: "Financial", Amount: dec("195500.6"), Percentage: "34%", BgColor: "#0070df"},
	}}
	cards := SectorCards(i, NewFormatter("INR"))
	require.Len(t, cards, 1)
	assert.Equal(t, SectorCard{Name: "Financial", Amount: "₹195,501", Percentage: "34%", Color: "#0070df"}, cards[0])
}

func sampleFunds() []models.Fund {
	return []models.Fund{
		{Name: "Nippon Large Cap", Color: "1f77b4", Holdings: []models.FundHolding{
			{Stock: "HDFC Bank", Weight: 9.5},
			{Stock: "Infosys", Weight: 6},
			{Stock: "Reliance", Weight: 4},
		}},
		{Name: "Axis Bluechip", Color: "#ff7f0e", Holdings: []models.FundHolding{
			{Stock: "Infosys", Weight: 8},
			{Stock: "HDFC Bank", Weight: 3},
		}},
		{Name: "Parag Parikh Flexi", Color: "#2ca02c", Holdings: []models.FundHolding{
			{Stock: "HDFC Bank", Weight: 7},
			{Stock: "ITC", Weight: 5},
		}},
	}
}

func TestFundFlows(t *testing.T) {
	flows := FundFlows(sampleFunds())
	assert.Equal(t, []string{"#1f77b4", "#ff7f0e", "#2ca02c"}, flows.FundColors)
	require.Len(t, flows.Edges, 7)
	assert.Equal(t, FlowEdge{From: "Nippon Large Cap", To: "HDFC Bank", Weight: 9.5}, flows.Edges[0])
	assert.Equal(t, FlowEdge{From: "Parag Parikh Flexi", To: "ITC", Weight: 5}, flows.Edges[6])

	empty := FundFlows(nil)
	assert.NotNil(t, empty.Edges)
	assert.Empty(t, empty.Edges)
}

func TestFundOverlap(t *testing.T) {
	overlap := FundOverlap(sampleFunds())
	require.Len(t, overlap, 2)

	assert.Equal(t, "HDFC Bank", overlap[0].Stock)
	assert.Equal(t, []string{"Nippon Large Cap", "Axis Bluechip", "Parag Parikh Flexi"}, overlap[0].Funds)
	assert.InDelta(t, 19.5, overlap[0].TotalWeight, 1e-9)

	assert.Equal(t, "Infosys", overlap[1].Stock)
	assert.Len(t, overlap[1].Funds, 2)

	assert.Empty(t, FundOverlap(nil))
}

func TestBuildPerformance(t *testing.T) {
	now := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	i := models.Investment{
		UserName:     "Yashna",
		CurrentValue: dec("575000"),
		InitialValue: dec("500000"),
		PerformanceHistory: []models.PerformancePoint{
			{Date: models.NewDate(2023, 12, 1), Value: dec("520000")},
			{Date: models.NewDate(2024, 3, 1), Value: dec("570000")},
			{Date: models.NewDate(2024, 3, 2), Value: dec("575000")},
		},
		SectorAllocations: []models.SectorAllocation{{Name: "IT", Amount: dec("100"), Percentage: "20%"}},
	}

	p := BuildPerformance(i, Bucket1M, now, NewFormatter("INR"))
	assert.Equal(t, "Yashna", p.User)
	assert.Equal(t, Bucket1M, p.Period)
	assert.Equal(t, "₹575,000", p.Value)
	assert.Equal(t, "₹75,000", p.Gain)
	assert.Equal(t, "+15.0%", p.GainPercent)
	assert.True(t, p.Positive)
	assert.Len(t, p.Cards, 4)
	assert.Len(t, p.Chart, 2)
	assert.Len(t, p.Sectors, 1)

	all := BuildPerformance(i, BucketMax, now, NewFormatter("INR"))
	assert.Len(t, all.Chart, 3)
}
