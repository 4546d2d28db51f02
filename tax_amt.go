package equity

import "github.com/shopspring/decimal"

// amtPhaseoutRate is the statutory rate at which the AMT exemption erodes:
// 25 cents per dollar of income over the phase-out threshold.
var amtPhaseoutRate = decimal.NewFromFloat(0.25)

// computeAMT runs the alternative-minimum-tax calculation for one year.
//
// The AMT base is regular income plus the preference income (the ISO
// spread). The exemption shrinks by 25% of the base over the phase-out
// threshold, floored at zero; the remaining base is taxed on the two-tier
// AMT schedule; only the excess over the regular tax on regular income alone
// is due. AMT paid becomes a credit for future years; conversely, a year
// without AMT due can consume prior-year credit up to the headroom between
// regular and tentative tax.
func computeAMT(amtIncome, regularIncome Money, status FilingStatus, yt *YearTable, carryover Money) AMTResult {
	r := AMTResult{Income: amtIncome}

	total := regularIncome.Floor().Add(amtIncome.Floor())

	exemption := yt.AMT.Exemption[status]
	phaseout := yt.AMT.Phaseout[status]
	erosion := total.Sub(phaseout).Floor().MulRate(amtPhaseoutRate)
	r.Exemption = exemption.Sub(erosion).Floor()

	taxable := total.Sub(r.Exemption).Floor()
	r.Tax = yt.AMT.Schedule(status).TaxOn(taxable)
	r.RegularTax = yt.FederalSchedule(status).TaxOn(regularIncome.Floor())
	r.NetDue = r.Tax.Sub(r.RegularTax).Floor()

	if r.NetDue.IsPositive() {
		// AMT paid this year carries forward as credit.
		r.CreditGenerated = r.NetDue
	} else if carryover.IsPositive() {
		// No AMT due: prior credit offsets regular tax down to the
		// tentative minimum.
		r.CreditUsed = MinMoney(carryover, r.RegularTax.Sub(r.Tax).Floor())
	}
	return r
}
