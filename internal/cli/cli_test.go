package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/epeers/fundsight/internal/models"
	"github.com/epeers/fundsight/internal/state"
	"github.com/epeers/fundsight/internal/views"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func investments() []models.Investment {
	return []models.Investment{
		{
			UserName:               "Yashna",
			CurrentValue:           decimal.NewFromInt(575000),
			InitialValue:           decimal.NewFromInt(500000),
			BestPerformingScheme:   "Nippon | Small Cap",
			BestPerformanceChange:  "+12.5%",
			WorstPerformingScheme:  "Axis Bluechip",
			WorstPerformanceChange: "-2.1%",
			SectorAllocations: []models.SectorAllocation{
				{Name: "Financial", Amount: decimal.NewFromInt(195000), Percentage: "34%", BgColor: "#ff0000"},
			},
		},
		{
			UserName:     "Ravi",
			CurrentValue: decimal.NewFromInt(300000),
			InitialValue: decimal.NewFromInt(320000),
		},
	}
}

func TestWriteSummary(t *testing.T) {
	var b strings.Builder
	writeSummary(&b, investments(), views.NewFormatter("INR"))
	md := b.String()

	assert.Contains(t, md, "# Portfolio summary")
	assert.Contains(t, md, "| Yashna |")
	assert.Contains(t, md, "| Ravi |")
	// 875000 current against 820000 invested
	assert.Contains(t, md, "6.7%")
	assert.Contains(t, md, `Nippon \| Small Cap (+12.5%)`)
}

func TestWriteSummary_Empty(t *testing.T) {
	var b strings.Builder
	writeSummary(&b, nil, views.NewFormatter("INR"))

	assert.Contains(t, b.String(), "No data (0%)")
	assert.Contains(t, b.String(), "_No investments found._")
	assert.NotContains(t, b.String(), "## Investors")
}

func TestWritePerformance(t *testing.T) {
	inv := investments()[0]
	perf := views.BuildPerformance(inv, views.Bucket3M, time.Now(), views.NewFormatter("INR"))

	var b strings.Builder
	writePerformance(&b, perf)
	md := b.String()

	assert.Contains(t, md, "## Yashna, 3M")
	assert.Contains(t, md, "| Best Performing Scheme |")
	assert.Contains(t, md, "### Sector allocation")
	assert.Contains(t, md, "| Financial |")
}

func TestWriteFunds(t *testing.T) {
	funds := []models.Fund{
		{Name: "Nippon", Holdings: []models.FundHolding{{Stock: "HDFC", Weight: 4}, {Stock: "Infosys", Weight: 2}}},
		{Name: "Axis", Holdings: []models.FundHolding{{Stock: "HDFC", Weight: 3.5}}},
	}

	var b strings.Builder
	writeFunds(&b, funds)
	md := b.String()

	assert.Contains(t, md, "## Nippon")
	assert.Contains(t, md, "| Infosys | 2 |")
	assert.Contains(t, md, "| HDFC | Nippon, Axis | 7.5 |")
	assert.NotContains(t, md, "| Infosys | Nippon")
}

func TestWriteFunds_NoOverlap(t *testing.T) {
	var b strings.Builder
	writeFunds(&b, []models.Fund{{Name: "Solo", Holdings: []models.FundHolding{{Stock: "TCS", Weight: 1}}}})
	assert.Contains(t, b.String(), "No stock is held by more than one fund")

	b.Reset()
	writeFunds(&b, nil)
	assert.Contains(t, b.String(), "_No funds found._")
}

func TestFindInvestment(t *testing.T) {
	inv, ok := findInvestment(investments(), "ravi")
	require.True(t, ok)
	assert.Equal(t, "Ravi", inv.UserName)

	_, ok = findInvestment(investments(), "nobody")
	assert.False(t, ok)
}

func TestReadPassword(t *testing.T) {
	pw, err := readPassword(strings.NewReader("SecurePass123!\r\nignored\n"))
	require.NoError(t, err)
	assert.Equal(t, "SecurePass123!", pw)

	pw, err = readPassword(strings.NewReader("no-newline"))
	require.NoError(t, err)
	assert.Equal(t, "no-newline", pw)
}

func TestCommandsHaveUniqueNames(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range Commands {
		assert.False(t, seen[c.Name()], c.Name())
		seen[c.Name()] = true
		assert.NotEmpty(t, c.Synopsis())
		assert.True(t, strings.HasPrefix(c.Usage(), "fundsight "+c.Name()))
	}
}

func TestSessionLogger_LogsTransitionsOnly(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()
	level := log.GetLevel()
	log.SetLevel(log.DebugLevel)
	defer log.SetLevel(level)

	listener := sessionLogger()
	signedIn := state.State{Session: state.SessionState{
		Token:         "tok-1",
		Authenticated: true,
		User:          &models.User{FirstName: "Demo"},
	}}

	listener(signedIn)
	listener(signedIn)
	listener(state.State{})

	entries := hook.AllEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, "Session started", entries[0].Message)
	assert.Equal(t, "Demo", entries[0].Data["user"])
	assert.Equal(t, "Session ended", entries[1].Message)
}
