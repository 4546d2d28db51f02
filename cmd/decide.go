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

// decideCmd holds the flags for the 'decide' subcommand.
type decideCmd struct {
	settings settingsFlags

	grant   string
	on      string
	liquid  float64
	debt    float64
	risk    string
	stage   string
	growth  float64
	round   string
	expires string
	exit    string
	weights string
}

func (*decideCmd) Name() string     { return "decide" }
func (*decideCmd) Synopsis() string { return "score whether exercising a grant now is sensible" }
func (*decideCmd) Usage() string {
	return `eqc decide [-grant <id>] -liquid <assets> [options]

  Scores an exercise decision along four axes (financial capacity,
  company outlook, tax efficiency, timing) and prints a tiered
  recommendation.

Usage Examples:
$ eqc decide -grant acme-iso -liquid 50000 -risk moderate \
    -stage growth -growth 0.5 -income 150000 -state CA

`
}

func (c *decideCmd) SetFlags(f *flag.FlagSet) {
	c.settings.SetFlags(f)
	f.StringVar(&c.grant, "grant", "", "Grant to score. Defaults to the only grant if one exists.")
	f.StringVar(&c.on, "on", "", "Decision date (defaults to today)")
	f.Float64Var(&c.liquid, "liquid", 0, "Liquid assets available for exercising")
	f.Float64Var(&c.debt, "debt", 0, "Debt-to-income ratio, e.g. 0.3")
	f.StringVar(&c.risk, "risk", "moderate", "Risk tolerance (conservative, moderate, aggressive)")
	f.StringVar(&c.stage, "stage", "seed", "Company stage (seed, early, growth, late, public)")
	f.Float64Var(&c.growth, "growth", 0, "Annual revenue growth, e.g. 0.5 for +50%")
	f.StringVar(&c.round, "round", "", "Close date of the last financing round")
	f.StringVar(&c.expires, "expires", "", "Option expiration date")
	f.StringVar(&c.exit, "exit", "", "Expected liquidity event date")
	f.StringVar(&c.weights, "weights", "", "Weight preset (decision, calculator)")
}

func (c *decideCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	in, err := c.input()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	factors, err := equity.ComputeDecisionFactors(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.DecisionMarkdown(factors))
	return subcommands.ExitSuccess
}

func (c *decideCmd) input() (equity.DecisionInput, error) {
	grants, err := LoadGrants()
	if err != nil {
		return equity.DecisionInput{}, err
	}
	g, err := FindGrant(grants, c.grant)
	if err != nil {
		return equity.DecisionInput{}, err
	}

	risk, err := equity.ParseRiskTolerance(c.risk)
	if err != nil {
		return equity.DecisionInput{}, err
	}
	stage, err := equity.ParseCompanyStage(c.stage)
	if err != nil {
		return equity.DecisionInput{}, err
	}
	weights, err := equity.ParseWeights(c.weights)
	if err != nil {
		return equity.DecisionInput{}, err
	}
	settings, err := c.settings.settings()
	if err != nil {
		return equity.DecisionInput{}, err
	}

	in := equity.DecisionInput{
		Grant:         g,
		LiquidAssets:  equity.M(c.liquid),
		DebtToIncome:  c.debt,
		RiskTolerance: risk,
		Stage:         stage,
		RevenueGrowth: c.growth,
		Settings:      settings,
		Weights:       weights,
	}
	if in.AsOf, err = parseDay(c.on, date.Today()); err != nil {
		return equity.DecisionInput{}, err
	}
	if in.LastFinancing, err = parseDay(c.round, date.Date{}); err != nil {
		return equity.DecisionInput{}, err
	}
	if in.Expiration, err = parseDay(c.expires, date.Date{}); err != nil {
		return equity.DecisionInput{}, err
	}
	if in.ExpectedExit, err = parseDay(c.exit, date.Date{}); err != nil {
		return equity.DecisionInput{}, err
	}
	return in, nil
}
