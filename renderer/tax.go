package renderer

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/etnz/equity"
	md "github.com/nao1215/markdown"
)

// TaxMarkdown renders the full breakdown of one tax computation.
func TaxMarkdown(r *equity.TaxResult) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Tax Breakdown")
	if r.Approximate {
		doc.PlainTextf("Figures use the nearest available tables for %d and are approximate.", r.Year)
	} else {
		doc.PlainTextf("Tax year %d.", r.Year)
	}

	doc.H2("Income")
	income := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
		},
		Header: []string{
			md.Bold("Total Income"),
			md.Bold(r.TotalIncome.String()),
		},
	}
	if !r.OrdinaryIncome.IsZero() {
		income.Rows = append(income.Rows, []string{"Ordinary (compensation)", r.OrdinaryIncome.String()})
	}
	if !r.ShortTermGains.IsZero() {
		income.Rows = append(income.Rows, []string{"Short-term gains", r.ShortTermGains.String()})
	}
	if !r.LongTermGains.IsZero() {
		income.Rows = append(income.Rows, []string{"Long-term gains", r.LongTermGains.String()})
	}
	doc.Table(income)

	doc.H2("Tax Due")
	tax := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
		},
		Header: []string{
			md.Bold("Total Tax"),
			md.Bold(r.TotalTax.String()),
		},
	}
	if !r.OrdinaryTax.IsZero() {
		tax.Rows = append(tax.Rows, []string{"Federal ordinary", r.OrdinaryTax.String()})
	}
	if !r.ShortTermTax.IsZero() {
		tax.Rows = append(tax.Rows, []string{"Short-term gains", r.ShortTermTax.String()})
	}
	if !r.LongTermTax.IsZero() {
		tax.Rows = append(tax.Rows, []string{"Long-term gains", r.LongTermTax.String()})
	}
	if !r.AMT.NetDue.IsZero() {
		tax.Rows = append(tax.Rows, []string{"AMT", r.AMT.NetDue.String()})
	}
	if !r.Medicare.IsZero() {
		tax.Rows = append(tax.Rows, []string{"Medicare", r.Medicare.String()})
	}
	if !r.NIIT.IsZero() {
		tax.Rows = append(tax.Rows, []string{"Net investment income", r.NIIT.String()})
	}
	if !r.State.Total.IsZero() {
		tax.Rows = append(tax.Rows, []string{"State", r.State.Total.String()})
	}
	if !r.AMT.CreditUsed.IsZero() {
		tax.Rows = append(tax.Rows, []string{"AMT credit applied", r.AMT.CreditUsed.Neg().SignedString()})
	}
	doc.Table(tax)
	doc.PlainTextf("Effective rate: %s.", r.EffectiveRate)

	if !r.AMT.Tax.IsZero() {
		doc.H2("Alternative Minimum Tax")
		doc.Table(md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft,
				md.AlignRight,
			},
			Header: []string{
				md.Bold("Tentative Minimum"),
				md.Bold(r.AMT.Tax.String()),
			},
			Rows: [][]string{
				{"Preference income", r.AMT.Income.String()},
				{"Exemption", r.AMT.Exemption.String()},
				{"Regular tax", r.AMT.RegularTax.String()},
				{"Net AMT due", r.AMT.NetDue.String()},
				{"Credit generated", r.AMT.CreditGenerated.String()},
			},
		})
	}

	if len(r.State.ByState) > 1 {
		doc.H2("State Allocation")
		table := md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft,
				md.AlignRight,
			},
			Header: []string{"State", "Tax"},
		}
		states := make([]string, 0, len(r.State.ByState))
		for state := range r.State.ByState {
			states = append(states, state)
		}
		sort.Strings(states)
		for _, state := range states {
			table.Rows = append(table.Rows, []string{state, r.State.ByState[state].String()})
		}
		doc.Table(table)
	}

	doc.H2("Proceeds")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
		},
		Header: []string{
			md.Bold("Net Proceeds"),
			md.Bold(r.NetProceeds.String()),
		},
		Rows: [][]string{
			{"Gross proceeds", r.GrossProceeds.String()},
			{"Exercise cost", r.ExerciseCost.String()},
			{"Total tax", r.TotalTax.String()},
		},
	})

	return doc.String()
}

// taxLine is the one-line summary used inside scenario reports.
func taxLine(o equity.GrantOutcome) string {
	return fmt.Sprintf("%s: %s shares, tax %s, net %s",
		o.GrantID, shares(o.Shares), o.TotalTax, o.NetProceeds)
}
