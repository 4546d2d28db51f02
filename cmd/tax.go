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

// taxCmd holds the flags for the 'tax' subcommand.
type taxCmd struct {
	settings settingsFlags

	grant         string
	exercisePrice float64
	exitPrice     float64
	shares        int64
	exercised     string
	sold          string
}

func (*taxCmd) Name() string     { return "tax" }
func (*taxCmd) Synopsis() string { return "compute the tax consequence of an exercise and sale" }
func (*taxCmd) Usage() string {
	return `eqc tax [-grant <id>] -exercise-price <p> -exit-price <p> -shares <n> -exercised <date> -sold <date> [options]

  Computes the full tax breakdown of exercising (or vesting) shares of
  a grant and selling them: federal, capital gains, AMT, Medicare,
  NIIT, and state.

Usage Examples:
# A qualifying ISO sale with AMT, stacked on a California salary.
$ eqc tax -grant acme-iso -exercise-price 6 -exit-price 25 -shares 1000 \
    -exercised 2025-01-15 -sold 2027-06-01 -income 150000 -state CA -amt

`
}

func (c *taxCmd) SetFlags(f *flag.FlagSet) {
	c.settings.SetFlags(f)
	f.StringVar(&c.grant, "grant", "", "Grant to report on. Defaults to the only grant if one exists.")
	f.Float64Var(&c.exercisePrice, "exercise-price", 0, "Per-share fair market value at exercise (or vesting)")
	f.Float64Var(&c.exitPrice, "exit-price", 0, "Per-share sale price")
	f.Int64Var(&c.shares, "shares", 0, "Shares exercised and sold (defaults to the whole grant)")
	f.StringVar(&c.exercised, "exercised", "", "Exercise (or vesting) date")
	f.StringVar(&c.sold, "sold", "", "Sale date")
}

func (c *taxCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	settings, err := c.settings.settings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if settings.ExerciseDate, err = parseDay(c.exercised, date.Date{}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if settings.SaleDate, err = parseDay(c.sold, date.Date{}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	shares := c.shares
	if shares == 0 {
		shares = g.Shares
	}

	result, err := equity.ComputeTax(g, equity.M(c.exercisePrice), equity.M(c.exitPrice), shares, settings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.TaxMarkdown(result))
	return subcommands.ExitSuccess
}
