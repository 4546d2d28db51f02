package equity

import (
	"github.com/shopspring/decimal"
)

// stateTaxOn computes state tax on the given income, either at the flat rate
// of the residence state or as the weighted sum over a multi-state
// allocation. A state missing from the rate table contributes zero and marks
// the result approximate.
func stateTaxOn(amount Money, settings TaxSettings, tables *Tables) (StateResult, bool) {
	r := StateResult{Total: M(0)}
	if !amount.IsPositive() {
		return r, false
	}

	allocation := settings.StateAllocation
	if len(allocation) == 0 {
		if settings.State == "" {
			return r, false
		}
		// A single residence state is a 100% allocation to it.
		allocation = map[string]float64{settings.State: 1}
	}

	approximate := false
	r.ByState = make(map[string]Money, len(allocation))
	for state, fraction := range allocation {
		rate, ok := tables.StateRate(state)
		if !ok {
			approximate = true
			rate = decimal.Zero
		}
		tax := amount.MulRate(decimal.NewFromFloat(fraction)).MulRate(rate)
		r.ByState[state] = tax
		r.Total = r.Total.Add(tax)
	}
	return r, approximate
}
