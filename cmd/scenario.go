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

// scenarioCmd holds the flags for the 'scenario' subcommand.
type scenarioCmd struct {
	settings settingsFlags

	exit      string
	exitDate  string
	exitPrice float64
	on        string
	lockup    int
}

func (*scenarioCmd) Name() string     { return "scenario" }
func (*scenarioCmd) Synopsis() string { return "compare exercise strategies for one exit scenario" }
func (*scenarioCmd) Usage() string {
	return `eqc scenario -exit <ipo|acquisition|secondary> -exit-date <date> -exit-price <p> [options]

  Evaluates the fixed strategy set (early exercise and hold, cashless
  at exit, staggered) against one modeled exit, over every grant in
  the grants file, and ranks the strategies by net proceeds.

Usage Examples:
$ eqc scenario -exit ipo -exit-date 2027-06-01 -exit-price 25 \
    -lockup 6 -income 150000 -state CA -amt

`
}

func (c *scenarioCmd) SetFlags(f *flag.FlagSet) {
	c.settings.SetFlags(f)
	f.StringVar(&c.exit, "exit", "ipo", "Exit type (ipo, acquisition, secondary)")
	f.StringVar(&c.exitDate, "exit-date", "", "Date of the modeled exit")
	f.Float64Var(&c.exitPrice, "exit-price", 0, "Per-share price at exit")
	f.StringVar(&c.on, "on", "", "Anchor date for the exercise-now strategies (defaults to today)")
	f.IntVar(&c.lockup, "lockup", 0, "Months every sale is locked up past the exit")
}

func (c *scenarioCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	grants, err := LoadGrants()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	exit, err := equity.ParseExitType(c.exit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	settings, err := c.settings.settings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	params, err := c.params()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	result, err := equity.AnalyzeExit(grants, exit, params, settings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.ScenarioMarkdown(result))
	return subcommands.ExitSuccess
}

func (c *scenarioCmd) params() (equity.ScenarioParams, error) {
	params := equity.ScenarioParams{
		ExitPrice:    equity.M(c.exitPrice),
		LockupMonths: c.lockup,
	}
	var err error
	if params.ExitDate, err = parseDay(c.exitDate, date.Date{}); err != nil {
		return equity.ScenarioParams{}, err
	}
	if params.AsOf, err = parseDay(c.on, date.Today()); err != nil {
		return equity.ScenarioParams{}, err
	}
	return params, params.Validate()
}
