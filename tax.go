package equity

import (
	"fmt"
	"math"

	"github.com/etnz/equity/date"
)

// TaxSettings is the configuration value for a tax computation. It is plain
// data; the zero value means a single filer with no other income, using the
// embedded tables for the latest known year.
type TaxSettings struct {
	FilingStatus FilingStatus
	Year         int // tax year selecting the bracket tables, 0 means latest known

	// State is the residence state key. StateAllocation, when non-empty,
	// replaces it with a state → fraction mapping; the fractions must sum
	// to 1.
	State           string
	StateAllocation map[string]float64

	OtherIncome Money // annual income the equity income stacks on top of

	IncludeAMT  bool
	IncludeNIIT bool

	// AMTCreditCarryover is unused AMT credit from prior years, available
	// to offset regular tax in a year without AMT due.
	AMTCreditCarryover Money

	ExerciseDate date.Date // for RSU, the vesting date
	SaleDate     date.Date

	// Tables overrides the embedded tax tables, mostly for tests.
	Tables *Tables
}

// allocationTolerance bounds how far state allocation fractions may drift
// from summing to exactly 1 before the settings are rejected.
const allocationTolerance = 1e-6

// Validate checks the settings invariants.
func (s TaxSettings) Validate() error {
	if s.OtherIncome.IsNegative() {
		return fmt.Errorf("other income must be non-negative, got %s", s.OtherIncome)
	}
	if s.AMTCreditCarryover.IsNegative() {
		return fmt.Errorf("amt credit carryover must be non-negative, got %s", s.AMTCreditCarryover)
	}
	if len(s.StateAllocation) > 0 {
		sum := 0.0
		for state, fraction := range s.StateAllocation {
			if fraction < 0 {
				return fmt.Errorf("state allocation for %s is negative: %v", state, fraction)
			}
			sum += fraction
		}
		if math.Abs(sum-1) > allocationTolerance {
			return fmt.Errorf("state allocation fractions sum to %v, want 1", sum)
		}
	}
	if !s.ExerciseDate.IsZero() && !s.SaleDate.IsZero() && s.SaleDate.Before(s.ExerciseDate) {
		return fmt.Errorf("sale date %s is before exercise date %s", s.SaleDate, s.ExerciseDate)
	}
	return nil
}

func (s TaxSettings) tables() *Tables {
	if s.Tables != nil {
		return s.Tables
	}
	return DefaultTables()
}

// year resolves the bracket table for the settings' tax year, preferring the
// sale year when no explicit year is set.
func (s TaxSettings) year() int {
	if s.Year != 0 {
		return s.Year
	}
	if !s.SaleDate.IsZero() {
		return s.SaleDate.Year()
	}
	years := s.tables().Years()
	return years[len(years)-1]
}

// AMTResult is the alternative-minimum-tax sub-record of a TaxResult.
type AMTResult struct {
	Income          Money `json:"income"`          // AMT preference income (the ISO spread)
	Exemption       Money `json:"exemption"`       // exemption after phase-out
	Tax             Money `json:"tax"`             // tentative minimum tax
	RegularTax      Money `json:"regularTax"`      // regular tax on ordinary income alone
	NetDue          Money `json:"netDue"`          // max(0, tentative - regular)
	CreditUsed      Money `json:"creditUsed"`      // prior-year credit applied this call
	CreditGenerated Money `json:"creditGenerated"` // credit carried to future years
}

// StateResult is the state-tax sub-record of a TaxResult.
type StateResult struct {
	Total   Money            `json:"total"`
	ByState map[string]Money `json:"byState,omitempty"`
}

// TaxResult is the full breakdown of one tax computation. It is a pure value,
// recomputed on every call.
type TaxResult struct {
	Year int `json:"year"` // bracket table year actually used

	OrdinaryIncome Money `json:"ordinaryIncome"`
	OrdinaryTax    Money `json:"ordinaryTax"`

	ShortTermGains Money `json:"shortTermGains"`
	LongTermGains  Money `json:"longTermGains"`
	ShortTermTax   Money `json:"shortTermTax"`
	LongTermTax    Money `json:"longTermTax"`

	AMT      AMTResult   `json:"amt"`
	State    StateResult `json:"state"`
	Medicare Money       `json:"medicare"`
	NIIT     Money       `json:"niit"`

	TotalIncome   Money   `json:"totalIncome"` // equity income plus other income
	TotalTax      Money   `json:"totalTax"`
	EffectiveRate Percent `json:"effectiveRate"`

	GrossProceeds Money `json:"grossProceeds"`
	ExerciseCost  Money `json:"exerciseCost"`
	NetProceeds   Money `json:"netProceeds"`

	// Approximate is set when a missing year, state, or filing status fell
	// back to the nearest known table.
	Approximate bool `json:"approximate,omitempty"`
}

// federalTax sums the purely federal components, AMT excluded.
func (r *TaxResult) federalTax() Money {
	return r.OrdinaryTax.Add(r.ShortTermTax).Add(r.LongTermTax)
}

// ComputeTax computes the full tax consequence of exercising (or vesting)
// 'shares' of the grant at 'exercisePrice' per share and selling at
// 'exitPrice' per share, under the given settings.
//
// The three grant types route differently: an ISO spread is AMT income at
// exercise and converts to long-term gain on a qualifying sale; an NSO spread
// is ordinary income at exercise; an RSU's full value is ordinary income at
// vesting. Appreciation past the exercise (or vesting) price is capital gain
// classified by holding period.
func ComputeTax(g Grant, exercisePrice, exitPrice Money, shares int64, settings TaxSettings) (*TaxResult, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if shares < 0 {
		return nil, fmt.Errorf("shares must be non-negative, got %d", shares)
	}
	if exercisePrice.IsNegative() || exitPrice.IsNegative() {
		return nil, fmt.Errorf("prices must be non-negative, got exercise %s exit %s", exercisePrice, exitPrice)
	}

	tables := settings.tables()
	yt, approx := tables.Year(settings.year())

	r := &TaxResult{
		Year:          yt.Year,
		Approximate:   approx,
		GrossProceeds: exitPrice.Mul(Q(shares)),
	}

	switch g.Type {
	case ISO:
		computeISO(r, g, exercisePrice, exitPrice, shares, settings, yt)
	case NSO:
		computeNSO(r, g, exercisePrice, exitPrice, shares, settings, yt)
	case RSU:
		computeRSU(r, g, exercisePrice, exitPrice, shares, settings, yt)
	default:
		return nil, fmt.Errorf("unknown grant type: %v", g.Type)
	}

	finishTotals(r, settings, tables, yt)
	return r, nil
}

// computeISO handles incentive stock options. The exercise spread is an AMT
// preference, not ordinary income. A qualifying disposition (held one year
// past exercise and two past grant) turns everything over strike into
// long-term gain; a disqualifying one turns the spread into ordinary income
// at sale and charges no AMT.
func computeISO(r *TaxResult, g Grant, exercisePrice, exitPrice Money, shares int64, settings TaxSettings, yt *YearTable) {
	spread := g.Spread(exercisePrice, shares)
	r.ExerciseCost = g.ExerciseCost(shares)

	if isQualifyingDisposition(g, settings) {
		r.LongTermGains = exitPrice.Sub(g.Strike).Mul(Q(shares)).Floor()
		r.LongTermTax = capitalGainsOn(r.LongTermGains, settings.OtherIncome, settings.FilingStatus, yt)
		if settings.IncludeAMT {
			r.AMT = computeAMT(spread, settings.OtherIncome, settings.FilingStatus, yt, settings.AMTCreditCarryover)
		}
		return
	}

	// Disqualifying: the bargain element becomes ordinary income at sale,
	// the rest is capital gain by exercise-to-sale holding period.
	r.OrdinaryIncome = spread
	r.OrdinaryTax = yt.FederalSchedule(settings.FilingStatus).MarginalOn(spread, settings.OtherIncome)
	classifyAppreciation(r, exercisePrice, exitPrice, shares, settings, yt, spread)
}

// computeNSO handles non-qualified options: the spread is ordinary income
// (and Medicare wages) at exercise, appreciation past exercise is capital
// gain.
func computeNSO(r *TaxResult, g Grant, exercisePrice, exitPrice Money, shares int64, settings TaxSettings, yt *YearTable) {
	spread := g.Spread(exercisePrice, shares)
	r.ExerciseCost = g.ExerciseCost(shares)

	r.OrdinaryIncome = spread
	r.OrdinaryTax = yt.FederalSchedule(settings.FilingStatus).MarginalOn(spread, settings.OtherIncome)
	r.Medicare = medicareOn(spread, settings.OtherIncome, settings.FilingStatus, yt)
	classifyAppreciation(r, exercisePrice, exitPrice, shares, settings, yt, spread)
}

// computeRSU handles restricted stock units: the full value at vesting is
// ordinary income (and Medicare wages), appreciation past vesting is capital
// gain. The exercise date and price stand for the vesting date and price.
func computeRSU(r *TaxResult, g Grant, vestPrice, exitPrice Money, shares int64, settings TaxSettings, yt *YearTable) {
	value := vestPrice.Mul(Q(shares))
	r.OrdinaryIncome = value
	r.OrdinaryTax = yt.FederalSchedule(settings.FilingStatus).MarginalOn(value, settings.OtherIncome)
	r.Medicare = medicareOn(value, settings.OtherIncome, settings.FilingStatus, yt)
	classifyAppreciation(r, vestPrice, exitPrice, shares, settings, yt, value)
}

// classifyAppreciation books the gain between the exercise (or vesting)
// price and the exit price as short- or long-term by holding period, stacked
// on top of other income plus the ordinary part already booked.
func classifyAppreciation(r *TaxResult, basis, exitPrice Money, shares int64, settings TaxSettings, yt *YearTable, ordinary Money) {
	gain := exitPrice.Sub(basis).Mul(Q(shares)).Floor()
	if gain.IsZero() {
		return
	}
	base := settings.OtherIncome.Add(ordinary)
	if isLongTermHolding(settings.ExerciseDate, settings.SaleDate) {
		r.LongTermGains = gain
		r.LongTermTax = capitalGainsOn(gain, base, settings.FilingStatus, yt)
	} else {
		r.ShortTermGains = gain
		r.ShortTermTax = yt.FederalSchedule(settings.FilingStatus).MarginalOn(gain, base)
	}
}

// capitalGainsOn taxes a long-term gain stacked on top of base income using
// the year's capital-gains schedule.
func capitalGainsOn(gain, base Money, status FilingStatus, yt *YearTable) Money {
	return yt.CapitalGainsSchedule(status).MarginalOn(gain, base)
}

// isQualifyingDisposition reports whether an ISO sale meets both holding
// thresholds: one year past exercise and two years past grant.
func isQualifyingDisposition(g Grant, settings TaxSettings) bool {
	if settings.ExerciseDate.IsZero() || settings.SaleDate.IsZero() {
		return false
	}
	return settings.SaleDate.Months(settings.ExerciseDate) >= 12 &&
		settings.SaleDate.Months(g.Granted()) >= 24
}

// isLongTermHolding reports whether the exercise-to-sale period crosses one
// year. Missing dates classify as short-term, the conservative default.
func isLongTermHolding(from, to date.Date) bool {
	if from.IsZero() || to.IsZero() {
		return false
	}
	return to.Months(from) >= 12
}

// finishTotals computes the surtaxes that depend on the full picture, then
// the totals fields.
func finishTotals(r *TaxResult, settings TaxSettings, tables *Tables, yt *YearTable) {
	equityIncome := r.OrdinaryIncome.Add(r.ShortTermGains).Add(r.LongTermGains)
	r.TotalIncome = settings.OtherIncome.Add(equityIncome)

	if settings.IncludeNIIT {
		investment := r.ShortTermGains.Add(r.LongTermGains)
		r.NIIT = niitOn(investment, r.TotalIncome, settings.FilingStatus, yt)
	}

	state, approx := stateTaxOn(equityIncome, settings, tables)
	r.State = state
	r.Approximate = r.Approximate || approx

	r.TotalTax = r.federalTax().Add(r.AMT.NetDue).Add(r.Medicare).Add(r.NIIT).Add(r.State.Total).
		Sub(r.AMT.CreditUsed).Floor()
	r.NetProceeds = r.GrossProceeds.Sub(r.ExerciseCost).Sub(r.TotalTax)
	r.EffectiveRate = Percent(r.TotalTax.Div(r.TotalIncome) * 100)
}
