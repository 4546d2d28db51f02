package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/equity"
	"github.com/etnz/equity/date"
	"github.com/google/subcommands"
)

// addCmd holds the flags for the 'add' subcommand.
type addCmd struct {
	id, company, grantType string
	shares                 int64
	strike, fmv            float64
	granted, start, end    string
	cliff, cadence         string
	doubleTrigger          bool
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "append a new grant to the grants file" }
func (*addCmd) Usage() string {
	return `eqc add -type <iso|nso|rsu> -shares <n> -start <date> -end <date> [options]

  Validates the grant and appends it to the grants file.

Usage Examples:
# A four-year monthly ISO with a one-year cliff.
$ eqc add -id acme-iso -type iso -shares 4800 -strike 1 -fmv 6 \
    -start 2024-01-01 -end 2028-01-01 -cliff 2025-01-01

`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Grant identifier")
	f.StringVar(&c.company, "company", "", "Issuing company")
	f.StringVar(&c.grantType, "type", "iso", "Grant type (iso, nso, rsu)")
	f.Int64Var(&c.shares, "shares", 0, "Total shares granted")
	f.Float64Var(&c.strike, "strike", 0, "Per-share strike price")
	f.Float64Var(&c.fmv, "fmv", 0, "Current per-share fair market value")
	f.StringVar(&c.granted, "granted", "", "Grant date (defaults to the vesting start)")
	f.StringVar(&c.start, "start", "", "Vesting start date")
	f.StringVar(&c.end, "end", "", "Vesting end date")
	f.StringVar(&c.cliff, "cliff", "", "Cliff date, empty for no cliff")
	f.StringVar(&c.cadence, "cadence", "monthly", "Vesting cadence (monthly, quarterly, yearly)")
	f.BoolVar(&c.doubleTrigger, "double-trigger", false, "RSU vests only at a liquidity event")
}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	g, err := c.grant()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	return AppendGrant(g)
}

func (c *addCmd) grant() (equity.Grant, error) {
	grantType, err := equity.ParseGrantType(c.grantType)
	if err != nil {
		return equity.Grant{}, err
	}
	cadence, err := date.ParsePeriod(c.cadence)
	if err != nil {
		return equity.Grant{}, err
	}

	g := equity.Grant{
		ID:                 c.id,
		Company:            c.company,
		Type:               grantType,
		Shares:             c.shares,
		Strike:             equity.M(c.strike),
		FMV:                equity.M(c.fmv),
		Cadence:            cadence,
		LiquidityEventOnly: c.doubleTrigger,
	}
	if g.GrantDate, err = parseDay(c.granted, date.Date{}); err != nil {
		return equity.Grant{}, err
	}
	if g.VestingStart, err = parseDay(c.start, date.Date{}); err != nil {
		return equity.Grant{}, err
	}
	if g.VestingEnd, err = parseDay(c.end, date.Date{}); err != nil {
		return equity.Grant{}, err
	}
	if g.Cliff, err = parseDay(c.cliff, date.Date{}); err != nil {
		return equity.Grant{}, err
	}
	return g, g.Validate()
}
