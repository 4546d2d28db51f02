package equity

// Exported entry points for the tax sub-calculations, usable on their own
// when a caller needs one number rather than the full ComputeTax breakdown.
// Each resolves the year table first and reports approximate=true when it
// fell back to the nearest known year.

// FederalIncomeTax returns the marginal federal tax on 'amount' stacked on
// top of 'base' income, as tax(base+amount) - tax(base) over the year's
// progressive brackets.
func (t *Tables) FederalIncomeTax(amount, base Money, status FilingStatus, year int) (Money, bool) {
	yt, approx := t.Year(year)
	return yt.FederalSchedule(status).MarginalOn(amount, base), approx
}

// CapitalGainsTax returns the tax on a capital gain stacked on top of 'base'
// income. A short-term gain routes to the ordinary brackets; a long-term
// gain uses the capital-gains schedule, where the brackets that 'base'
// already fills only tax the portion above it.
func (t *Tables) CapitalGainsTax(amount, base Money, longTerm bool, status FilingStatus, year int) (Money, bool) {
	yt, approx := t.Year(year)
	if !longTerm {
		return yt.FederalSchedule(status).MarginalOn(amount, base), approx
	}
	return yt.CapitalGainsSchedule(status).MarginalOn(amount, base), approx
}

// AMT runs the alternative-minimum-tax calculation for preference income
// 'amtIncome' on top of 'regularIncome', with no prior-year credit.
func (t *Tables) AMT(amtIncome, regularIncome Money, status FilingStatus, year int) (AMTResult, bool) {
	yt, approx := t.Year(year)
	return computeAMT(amtIncome, regularIncome, status, yt, M(0)), approx
}

// MedicareAndNIIT returns the Medicare tax on 'amount' as compensation and
// the NIIT on 'amount' as investment income, both stacked on 'base'.
func (t *Tables) MedicareAndNIIT(amount, base Money, status FilingStatus, year int) (medicare, niit Money, approximate bool) {
	yt, approx := t.Year(year)
	return medicareOn(amount, base, status, yt),
		niitOn(amount, base.Floor().Add(amount), status, yt),
		approx
}

// StateTax returns the flat-rate state tax on 'amount' for a residence
// state, and ok=false when the state is unknown (the tax is then zero).
func (t *Tables) StateTax(amount Money, state string) (Money, bool) {
	rate, ok := t.StateRate(state)
	if !amount.IsPositive() || !ok {
		return M(0), ok
	}
	return amount.MulRate(rate), true
}
