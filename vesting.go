package equity

import (
	"math"

	"github.com/etnz/equity/date"
)

// VestingStatus reports the vesting position of a grant as of a given day.
type VestingStatus struct {
	Vested            int64     `json:"vested"`
	Unvested          int64     `json:"unvested"`
	VestedPercent     Percent   `json:"vestedPercent"`
	NextVestingDate   date.Date `json:"nextVestingDate,omitzero"` // zero when fully vested
	NextVestingShares int64     `json:"nextVestingShares,omitempty"`
}

// VestedShares computes how many of the grant's shares are vested as of 'on'.
//
// The schedule is cliff-discrete then cadence-stepped: nothing vests before
// the cliff, the cliff amount vests in one lump on the cliff day, and the
// remainder vests in whole cadence periods until the vesting end, where the
// grant is fully vested regardless of schedule. A liquidity-event-only grant
// reports zero vested for every date: its vesting trigger is an external
// event, not time.
func VestedShares(g Grant, on date.Date) (VestingStatus, error) {
	if err := g.Validate(); err != nil {
		return VestingStatus{}, err
	}

	status := VestingStatus{}
	if g.LiquidityEventOnly {
		status.Unvested = g.Shares
		return status, nil
	}

	vested := vestedCount(g, on)
	status.Vested = vested
	status.Unvested = g.Shares - vested
	status.VestedPercent = Percent(vestedFraction(g, on) * 100)

	if next, ok := nextVesting(g, on); ok {
		status.NextVestingDate = next
		status.NextVestingShares = vestedCount(g, next) - vested
	}
	return status, nil
}

// vestedCount floors the vested fraction into whole shares. It never exceeds
// the grant total and never goes negative.
func vestedCount(g Grant, on date.Date) int64 {
	n := int64(math.Floor(float64(g.Shares) * vestedFraction(g, on)))
	if n < 0 {
		return 0
	}
	if n > g.Shares {
		return g.Shares
	}
	return n
}

// vestedFraction returns the vested portion of the grant in [0, 1].
func vestedFraction(g Grant, on date.Date) float64 {
	if !on.Before(g.VestingEnd) {
		return 1
	}
	if on.Before(g.VestingStart) {
		return 0
	}
	if !g.Cliff.IsZero() && on.Before(g.Cliff) {
		return 0
	}

	switch g.Cadence {
	case date.Monthly:
		// Cliff shares vest in one lump at the cliff, then the remainder
		// accrues one whole month at a time. Counting whole months from
		// the vesting start makes the cliff lump exactly the months it
		// covers.
		totalMonths := g.VestingEnd.Months(g.VestingStart)
		if totalMonths == 0 {
			return 1
		}
		elapsed := on.Months(g.VestingStart)
		return clampFraction(float64(elapsed) / float64(totalMonths))

	case date.Quarterly, date.Yearly:
		// Step-function vesting: only completed periods count.
		span, _ := g.Cadence.MonthSpan()
		totalMonths := g.VestingEnd.Months(g.VestingStart)
		if totalMonths == 0 {
			return 1
		}
		totalPeriods := float64(totalMonths) / float64(span)
		completed := math.Floor(float64(on.Months(g.VestingStart)) / float64(span))
		return clampFraction(completed / totalPeriods)

	default:
		// Unknown cadence: pure linear interpolation over the window.
		totalDays := g.VestingEnd.Days(g.VestingStart)
		if totalDays == 0 {
			return 1
		}
		return clampFraction(float64(on.Days(g.VestingStart)) / float64(totalDays))
	}
}

func clampFraction(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// nextVesting projects the first schedule boundary strictly after 'on',
// clipped to the vesting end. ok is false once the grant is fully vested.
func nextVesting(g Grant, on date.Date) (date.Date, bool) {
	if !on.Before(g.VestingEnd) {
		return date.Date{}, false
	}
	if !g.Cliff.IsZero() && on.Before(g.Cliff) {
		return g.Cliff, true
	}

	var next date.Date
	if span, ok := g.Cadence.MonthSpan(); ok {
		elapsed := on.Months(g.VestingStart)
		periods := elapsed/span + 1
		next = g.VestingStart.AddMonth(periods * span)
	} else {
		// Linear vesting accrues daily.
		next = on.Add(1)
	}
	if next.After(g.VestingEnd) {
		next = g.VestingEnd
	}
	if !next.After(on) {
		// A normalized month addition can land on or before 'on' near
		// month ends; fall forward to the vesting end.
		next = g.VestingEnd
	}
	return next, true
}
