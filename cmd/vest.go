package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/equity"
	"github.com/etnz/equity/date"
	"github.com/etnz/equity/renderer"
	"github.com/google/subcommands"
)

// vestCmd holds the flags for the 'vest' subcommand.
type vestCmd struct {
	grant string
	on    string
}

func (*vestCmd) Name() string     { return "vest" }
func (*vestCmd) Synopsis() string { return "display the vesting status of a grant" }
func (*vestCmd) Usage() string {
	return `eqc vest [-grant <id>] [-on <date>]

  Displays the vested and unvested share counts of a grant as of a
  date, with the next vesting event.
`
}

func (c *vestCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.grant, "grant", "", "Grant to report on. Defaults to the only grant if one exists.")
	f.StringVar(&c.on, "on", "", "Report date (defaults to today)")
}

func (c *vestCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	g, err := FindGrant(grants, c.grant)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	status, err := equity.VestedShares(g, on)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.VestingMarkdown(g, status, on))
	return subcommands.ExitSuccess
}
