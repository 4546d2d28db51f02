package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/equity"
	"github.com/etnz/equity/date"
	md "github.com/nao1215/markdown"
)

// VestingMarkdown renders the vesting status of one grant as of a date.
func VestingMarkdown(g equity.Grant, s equity.VestingStatus, on date.Date) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	title := "Vesting"
	if g.ID != "" {
		title = fmt.Sprintf("Vesting of %s", g.ID)
	}
	doc.H1(title)
	doc.PlainTextf("As of %s.", on)

	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
		},
		Header: []string{
			md.Bold("Vested"),
			md.Bold(fmt.Sprintf("%s (%s)", shares(s.Vested), s.VestedPercent)),
		},
		Rows: [][]string{
			{"Unvested", shares(s.Unvested)},
			{"Total granted", shares(g.Shares)},
		},
	})

	if !s.NextVestingDate.IsZero() {
		doc.PlainTextf("Next vesting: %s shares on %s.",
			shares(s.NextVestingShares), s.NextVestingDate)
	}
	if g.LiquidityEventOnly {
		doc.PlainText("Double trigger: shares vest only at a liquidity event.")
	}

	return doc.String()
}
