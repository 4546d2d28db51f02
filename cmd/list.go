package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/equity"
	"github.com/etnz/equity/date"
	"github.com/google/subcommands"
	md "github.com/nao1215/markdown"
)

// listCmd holds the flags for the 'list' subcommand.
type listCmd struct {
	on string
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list the grants with their vesting progress" }
func (*listCmd) Usage() string {
	return `eqc list [-on <date>]

  Lists every grant in the grants file with its vested share count
  and current value as of the given date.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.on, "on", "", "Report date (defaults to today)")
}

func (c *listCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := parseDay(c.on, date.Today())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	grants, err := LoadGrants()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if len(grants) == 0 {
		fmt.Println("No grants.")
		return subcommands.ExitSuccess
	}

	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Grants")
	doc.PlainTextf("As of %s.", on)

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Grant", "Type", "Shares", "Vested", "Value"},
	}
	for _, g := range grants {
		status, err := equity.VestedShares(g, on)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		table.Rows = append(table.Rows, []string{
			g.ID,
			g.Type.String(),
			fmt.Sprintf("%d", g.Shares),
			fmt.Sprintf("%d (%s)", status.Vested, status.VestedPercent),
			g.CurrentValue(g.Shares).String(),
		})
	}
	doc.Table(table)

	printMarkdown(doc.String())
	return subcommands.ExitSuccess
}
