package equity

// medicareOn returns the Medicare tax on compensation income: the flat rate
// on the full amount, plus the additional surtax on the portion of total
// income above the filing-status threshold.
func medicareOn(amount, base Money, status FilingStatus, yt *YearTable) Money {
	if !amount.IsPositive() {
		return M(0)
	}
	tax := amount.MulRate(yt.Medicare.Rate)

	threshold := yt.Medicare.AdditionalThreshold[status]
	total := base.Floor().Add(amount)
	over := MinMoney(amount, total.Sub(threshold).Floor())
	return tax.Add(over.MulRate(yt.Medicare.AdditionalRate))
}

// niitOn returns the net-investment-income tax: the NIIT rate applied to the
// lesser of the investment income and the income above the filing-status
// threshold.
func niitOn(investment, totalIncome Money, status FilingStatus, yt *YearTable) Money {
	if !investment.IsPositive() {
		return M(0)
	}
	threshold := yt.NIIT.Threshold[status]
	over := totalIncome.Sub(threshold).Floor()
	return MinMoney(investment, over).MulRate(yt.NIIT.Rate)
}
