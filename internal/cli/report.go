package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/epeers/fundsight/internal/models"
	"github.com/epeers/fundsight/internal/views"
	"github.com/google/subcommands"
)

const wordWrap = 100

type summaryCmd struct {
	user   string
	period string
	raw    bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "print the portfolio summary" }
func (*summaryCmd) Usage() string {
	return `fundsight summary [-user <name>] [-period 1M|3M|6M|1Y|3Y|MAX] [-raw]

  Prints the portfolio totals and one row per investor. With -user the
  performance metrics of that investor are printed as well.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.user, "user", "", "Investor to show performance metrics for.")
	f.StringVar(&c.period, "period", string(views.DefaultBucket), "Performance period.")
	f.BoolVar(&c.raw, "raw", false, "Print markdown instead of rendering it.")
}

func (c *summaryCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, func(a *app) error {
		if err := requireSession(ctx, a); err != nil {
			return err
		}
		if err := a.store.FetchInvestments(ctx); err != nil {
			return err
		}
		investments := a.store.Snapshot().Portfolio.Investments

		var b strings.Builder
		writeSummary(&b, investments, a.format)
		if c.user != "" {
			inv, ok := findInvestment(investments, c.user)
			if !ok {
				return fmt.Errorf("no investments for user %q", c.user)
			}
			perf := views.BuildPerformance(inv, views.ParseBucket(c.period), time.Now(), a.format)
			writePerformance(&b, perf)
		}
		return printMarkdown(b.String(), c.raw)
	})
}

type fundsCmd struct {
	raw bool
}

func (*fundsCmd) Name() string     { return "funds" }
func (*fundsCmd) Synopsis() string { return "print fund holdings and overlapping stocks" }
func (*fundsCmd) Usage() string {
	return `fundsight funds [-raw]
`
}

func (c *fundsCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.raw, "raw", false, "Print markdown instead of rendering it.")
}

func (c *fundsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, func(a *app) error {
		if err := requireSession(ctx, a); err != nil {
			return err
		}
		if err := a.store.FetchFunds(ctx); err != nil {
			return err
		}
		var b strings.Builder
		writeFunds(&b, a.store.Snapshot().Portfolio.Funds)
		return printMarkdown(b.String(), c.raw)
	})
}

func findInvestment(investments []models.Investment, user string) (models.Investment, bool) {
	for _, inv := range investments {
		if strings.EqualFold(inv.UserName, user) {
			return inv, true
		}
	}
	return models.Investment{}, false
}

func printMarkdown(md string, raw bool) error {
	if raw {
		fmt.Print(md)
		return nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wordWrap),
	)
	if err != nil {
		return err
	}
	out, err := r.Render(md)
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

// writeSummary renders the dashboard figures as markdown
func writeSummary(b *strings.Builder, investments []models.Investment, f views.Formatter) {
	s := views.Summarize(investments)

	b.WriteString("# Portfolio summary\n\n")
	b.WriteString("| Total value | Invested | Growth | Growth % | Top scheme |\n")
	b.WriteString("|---|---|---|---|---|\n")
	fmt.Fprintf(b, "| %s | %s | %s | %s%% | %s (%s) |\n\n",
		f.Whole(s.TotalValue), f.Whole(s.TotalInitial), f.Whole(s.TotalGrowth),
		s.GrowthPercentage, cell(s.TopScheme), cell(s.TopSchemeChange))

	if len(investments) == 0 {
		b.WriteString("_No investments found._\n\n")
		return
	}

	b.WriteString("## Investors\n\n")
	b.WriteString("| Investor | Current value | Invested |\n")
	b.WriteString("|---|---|---|\n")
	for _, inv := range investments {
		fmt.Fprintf(b, "| %s | %s | %s |\n", cell(inv.UserName), f.Whole(inv.CurrentValue), f.Whole(inv.InitialValue))
	}
	b.WriteString("\n")
}

// writePerformance renders one investor's metric and sector cards
func writePerformance(b *strings.Builder, p views.Performance) {
	fmt.Fprintf(b, "## %s, %s\n\n", cell(p.User), p.Period)
	fmt.Fprintf(b, "Value **%s**, gain %s (%s)\n\n", p.Value, p.Gain, p.GainPercent)

	b.WriteString("| Metric | Value | Change |\n")
	b.WriteString("|---|---|---|\n")
	for _, c := range p.Cards {
		fmt.Fprintf(b, "| %s | %s | %s %s |\n", c.Title, cell(c.Value), cell(c.Change), c.ChangeLabel)
	}
	b.WriteString("\n")

	if len(p.Sectors) == 0 {
		return
	}
	b.WriteString("### Sector allocation\n\n")
	b.WriteString("| Sector | Amount | Share |\n")
	b.WriteString("|---|---|---|\n")
	for _, s := range p.Sectors {
		fmt.Fprintf(b, "| %s | %s | %s |\n", cell(s.Name), s.Amount, s.Percentage)
	}
	b.WriteString("\n")
}

// writeFunds renders every fund's holdings followed by the stocks that
// more than one fund holds.
func writeFunds(b *strings.Builder, funds []models.Fund) {
	b.WriteString("# Funds\n\n")
	if len(funds) == 0 {
		b.WriteString("_No funds found._\n")
		return
	}
	for _, fund := range funds {
		fmt.Fprintf(b, "## %s\n\n", cell(fund.Name))
		b.WriteString("| Stock | Weight |\n")
		b.WriteString("|---|---|\n")
		for _, h := range fund.Holdings {
			fmt.Fprintf(b, "| %s | %g |\n", cell(h.Stock), h.Weight)
		}
		b.WriteString("\n")
	}

	overlap := views.FundOverlap(funds)
	b.WriteString("## Overlapping stocks\n\n")
	if len(overlap) == 0 {
		b.WriteString("_No stock is held by more than one fund._\n")
		return
	}
	b.WriteString("| Stock | Funds | Total weight |\n")
	b.WriteString("|---|---|---|\n")
	for _, o := range overlap {
		fmt.Fprintf(b, "| %s | %s | %g |\n", cell(o.Stock), cell(strings.Join(o.Funds, ", ")), o.TotalWeight)
	}
}

// cell escapes pipes so free text cannot break a table row
func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
