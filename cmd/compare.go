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

// compareCmd holds the flags for the 'compare' subcommand.
type compareCmd struct {
	settings settingsFlags

	exitDate  string
	exitPrice float64
	on        string
	ipoLockup int
}

func (*compareCmd) Name() string     { return "compare" }
func (*compareCmd) Synopsis() string { return "compare every exit type for one modeled exit" }
func (*compareCmd) Usage() string {
	return `eqc compare -exit-date <date> -exit-price <p> [options]

  Runs the scenario analysis for an IPO, an acquisition, and a
  secondary sale at the same date and price, and reports the best
  (exit, strategy) pair. The IPO carries a lockup; the others sell
  immediately.
`
}

func (c *compareCmd) SetFlags(f *flag.FlagSet) {
	c.settings.SetFlags(f)
	f.StringVar(&c.exitDate, "exit-date", "", "Date of the modeled exit")
	f.Float64Var(&c.exitPrice, "exit-price", 0, "Per-share price at exit")
	f.StringVar(&c.on, "on", "", "Anchor date for the exercise-now strategies (defaults to today)")
	f.IntVar(&c.ipoLockup, "ipo-lockup", 6, "Months the IPO locks up sales")
}

func (c *compareCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	grants, err := LoadGrants()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	settings, err := c.settings.settings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	base := equity.ScenarioParams{ExitPrice: equity.M(c.exitPrice)}
	if base.ExitDate, err = parseDay(c.exitDate, date.Date{}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if base.AsOf, err = parseDay(c.on, date.Today()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	ipo := base
	ipo.LockupMonths = c.ipoLockup
	scenarios := map[equity.ExitType]equity.ScenarioParams{
		equity.IPO:         ipo,
		equity.Acquisition: base,
		equity.Secondary:   base,
	}

	comparison, err := equity.CompareExits(grants, scenarios, settings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.ComparisonMarkdown(comparison))
	return subcommands.ExitSuccess
}
