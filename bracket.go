package equity

import "github.com/shopspring/decimal"

// Bracket is one progressive tax range. A zero Max means the bracket is
// unbounded above.
type Bracket struct {
	Min  Money
	Max  Money
	Rate decimal.Decimal
}

// Schedule is an ordered list of brackets, from the lowest range up. The same
// clip-and-sum arithmetic serves the federal, capital-gains, and AMT tables.
type Schedule []Bracket

// TaxOn returns the tax on 'income' by clipping it into each bracket range
// and summing the clipped portions times their rates.
func (s Schedule) TaxOn(income Money) Money {
	tax := M(0)
	if !income.IsPositive() {
		return tax
	}
	for _, b := range s {
		if income.LessThanOrEqual(b.Min) {
			break
		}
		top := income
		if !b.Max.IsZero() {
			top = MinMoney(income, b.Max)
		}
		tax = tax.Add(top.Sub(b.Min).MulRate(b.Rate))
	}
	return tax
}

// MarginalOn returns the tax on 'amount' stacked on top of 'base': the
// brackets that 'base' already fills only apply to the portion above it.
func (s Schedule) MarginalOn(amount, base Money) Money {
	if !amount.IsPositive() {
		return M(0)
	}
	base = base.Floor()
	return s.TaxOn(base.Add(amount)).Sub(s.TaxOn(base))
}

// TopRate returns the rate of the highest bracket, zero for an empty schedule.
func (s Schedule) TopRate() decimal.Decimal {
	if len(s) == 0 {
		return decimal.Zero
	}
	return s[len(s)-1].Rate
}
