package renderer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/etnz/equity"
	md "github.com/nao1215/markdown"
)

// ScenarioMarkdown renders the ranked strategies for one exit scenario.
func ScenarioMarkdown(r *equity.ScenarioResult) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Exit Scenario: %s", strings.ToUpper(r.ExitType.String())))
	doc.PlainTextf("Exit on %s at %s per share.", r.Params.ExitDate, r.Params.ExitPrice)
	if r.Params.LockupMonths > 0 {
		doc.PlainTextf("Sales are locked up for %d months after the exit.", r.Params.LockupMonths)
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Strategy", "Exercise Cost", "Total Tax", "Net Proceeds"},
	}
	for _, s := range r.Strategies {
		name := s.Strategy
		if name == r.Best {
			name = md.Bold(name)
		}
		table.Rows = append(table.Rows, []string{
			name,
			s.ExerciseCost.String(),
			s.TotalTax.String(),
			s.NetProceeds.String(),
		})
	}
	doc.Table(table)

	doc.PlainTextf("Best strategy: %s, worth %s over the runner-up.", r.Best, r.Savings)

	for _, s := range r.Strategies {
		if s.Strategy != r.Best || len(s.PerGrant) < 2 {
			continue
		}
		doc.H2("Per Grant (best strategy)")
		var lines []string
		for _, pg := range s.PerGrant {
			lines = append(lines, taxLine(pg))
		}
		doc.BulletList(lines...)
	}

	return doc.String()
}

// ComparisonMarkdown renders the cross-exit comparison.
func ComparisonMarkdown(c *equity.ExitComparison) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Exit Comparison")

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
		},
		Header: []string{"Exit", "Best Strategy", "Net Proceeds"},
	}
	for _, r := range c.Results {
		name := r.ExitType.String()
		if r.ExitType == c.BestExit {
			name = md.Bold(name)
		}
		table.Rows = append(table.Rows, []string{
			name,
			r.Best,
			r.Strategies[0].NetProceeds.String(),
		})
	}
	doc.Table(table)

	doc.PlainTextf("Best outcome: %s via %s, netting %s.",
		c.BestExit, c.BestStrategy, c.NetProceeds)

	return doc.String()
}
