package renderer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/etnz/equity"
	md "github.com/nao1215/markdown"
)

// DecisionMarkdown renders the four factor scores and the recommendation.
func DecisionMarkdown(f equity.DecisionFactors) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Exercise Decision")

	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
		},
		Header: []string{
			md.Bold("Overall"),
			md.Bold(score(f.Overall)),
		},
		Rows: [][]string{
			{"Financial capacity", score(f.FinancialCapacity)},
			{"Company outlook", score(f.CompanyOutlook)},
			{"Tax efficiency", score(f.TaxEfficiency)},
			{"Timing", score(f.Timing)},
		},
	})

	rec := f.Recommendation
	doc.H2(fmt.Sprintf("Recommendation: %s", strings.ToUpper(rec.Action[:1])+rec.Action[1:]))
	doc.Blockquote(rec.Reasoning)
	doc.PlainTextf("Risk level: %s.", rec.Risk)

	return doc.String()
}

// score formats a [0, 1] factor score as a percentage.
func score(s float64) string {
	return equity.Percent(s * 100).String()
}
