package views

import (
	"sort"
	"strings"

	"github.com/epeers/fundsight/internal/models"
)

// FlowEdge is one fund-to-stock link of the composition diagram
type FlowEdge struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Weight float64 `json:"weight"`
}

// Flows is the fund composition diagram: every holding as an edge plus
// one color per fund, in fund order.
type Flows struct {
	Edges      []FlowEdge `json:"edges"`
	FundColors []string   `json:"fund_colors"`
}

// FundFlows builds the composition diagram from the fund list
func FundFlows(funds []models.Fund) Flows {
	flows := Flows{
		Edges:      []FlowEdge{},
		FundColors: make([]string, 0, len(funds)),
	}
	for _, fund := range funds {
		flows.FundColors = append(flows.FundColors, NormalizeColor(fund.Color))
		for _, h := range fund.Holdings {
			flows.Edges = append(flows.Edges, FlowEdge{From: fund.Name, To: h.Stock, Weight: h.Weight})
		}
	}
	return flows
}

// NormalizeColor prefixes a hex color with "#" when it lacks one
func NormalizeColor(c string) string {
	if c == "" || strings.HasPrefix(c, "#") {
		return c
	}
	return "#" + c
}

// Overlap is a stock held by more than one fund
type Overlap struct {
	Stock       string   `json:"stock"`
	Funds       []string `json:"funds"`
	TotalWeight float64  `json:"total_weight"`
}

// FundOverlap lists stocks held by two or more funds, most shared first
// and then by combined weight. A fund listing a stock twice counts once.
func FundOverlap(funds []models.Fund) []Overlap {
	byStock := make(map[string]*Overlap)
	var order []string
	for _, fund := range funds {
		seen := make(map[string]bool)
		for _, h := range fund.Holdings {
			o, ok := byStock[h.Stock]
			if !ok {
				o = &Overlap{Stock: h.Stock}
				byStock[h.Stock] = o
				order = append(order, h.Stock)
			}
			o.TotalWeight += h.Weight
			if !seen[h.Stock] {
				seen[h.Stock] = true
				o.Funds = append(o.Funds, fund.Name)
			}
		}
	}

	out := []Overlap{}
	for _, stock := range order {
		if o := byStock[stock]; len(o.Funds) >= 2 {
			out = append(out, *o)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if len(out[i].Funds) != len(out[j].Funds) {
			return len(out[i].Funds) > len(out[j].Funds)
		}
		return out[i].TotalWeight > out[j].TotalWeight
	})
	return out
}
