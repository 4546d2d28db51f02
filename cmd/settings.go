package cmd

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/etnz/equity"
	"github.com/etnz/equity/date"
)

// settingsFlags holds the tax-settings flags shared by the tax, decide,
// scenario, and compare subcommands.
type settingsFlags struct {
	income     float64
	filing     string
	year       int
	state      string
	allocation string
	amt        bool
	niit       bool
	amtCredit  float64
}

func (s *settingsFlags) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&s.income, "income", 0, "Annual income the equity income stacks on top of")
	f.StringVar(&s.filing, "filing", "single", "Filing status (single, mfj, mfs, hoh)")
	f.IntVar(&s.year, "year", 0, "Tax year (defaults to the sale year)")
	f.StringVar(&s.state, "state", "", "Residence state, e.g. CA")
	f.StringVar(&s.allocation, "allocation", "", "Multi-state allocation, e.g. CA:0.6,NY:0.4")
	f.BoolVar(&s.amt, "amt", false, "Include the alternative minimum tax on ISO spreads")
	f.BoolVar(&s.niit, "niit", false, "Include the net investment income tax on gains")
	f.Float64Var(&s.amtCredit, "amt-credit", 0, "AMT credit carried over from prior years")
}

// settings turns the flags into validated TaxSettings.
func (s *settingsFlags) settings() (equity.TaxSettings, error) {
	filing, err := equity.ParseFilingStatus(s.filing)
	if err != nil {
		return equity.TaxSettings{}, err
	}

	settings := equity.TaxSettings{
		FilingStatus:       filing,
		Year:               s.year,
		State:              s.state,
		OtherIncome:        equity.M(s.income),
		IncludeAMT:         s.amt,
		IncludeNIIT:        s.niit,
		AMTCreditCarryover: equity.M(s.amtCredit),
	}
	if s.allocation != "" {
		settings.StateAllocation, err = parseAllocation(s.allocation)
		if err != nil {
			return equity.TaxSettings{}, err
		}
	}
	return settings, settings.Validate()
}

// parseAllocation parses "CA:0.6,NY:0.4" into a state allocation map.
func parseAllocation(s string) (map[string]float64, error) {
	allocation := make(map[string]float64)
	for _, part := range strings.Split(s, ",") {
		state, fraction, ok := strings.Cut(strings.TrimSpace(part), ":")
		if !ok {
			return nil, fmt.Errorf("allocation %q: want state:fraction", part)
		}
		value, err := strconv.ParseFloat(fraction, 64)
		if err != nil {
			return nil, fmt.Errorf("allocation %q: %w", part, err)
		}
		allocation[strings.ToUpper(strings.TrimSpace(state))] = value
	}
	return allocation, nil
}

// parseDay parses a -flag date, returning the fallback when empty.
func parseDay(s string, fallback date.Date) (date.Date, error) {
	if s == "" {
		return fallback, nil
	}
	return date.Parse(s)
}
