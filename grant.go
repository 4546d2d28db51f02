package equity

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/etnz/equity/date"
)

// GrantType identifies the tax treatment of an equity award.
type GrantType int

const (
	// ISO is an incentive stock option: the exercise spread is AMT income,
	// not ordinary income, and a qualifying sale converts it all to
	// long-term capital gain.
	ISO GrantType = iota
	// NSO is a non-qualified stock option: the exercise spread is ordinary
	// income at exercise.
	NSO
	// RSU is a restricted stock unit: the full share value is ordinary
	// income at vesting.
	RSU
)

func (t GrantType) String() string {
	switch t {
	case ISO:
		return "iso"
	case NSO:
		return "nso"
	case RSU:
		return "rsu"
	default:
		return "unknown"
	}
}

// ParseGrantType parses a string into a GrantType.
func ParseGrantType(s string) (GrantType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "iso":
		return ISO, nil
	case "nso", "nq", "nqso":
		return NSO, nil
	case "rsu":
		return RSU, nil
	default:
		return 0, fmt.Errorf("unknown grant type: %q", s)
	}
}

// MarshalJSON encodes the grant type as its string name.
func (t GrantType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes a grant type from its string name.
func (t *GrantType) UnmarshalJSON(bytes []byte) error {
	var s string
	if err := json.Unmarshal(bytes, &s); err != nil {
		return err
	}
	parsed, err := ParseGrantType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Grant represents a single equity award. It is an immutable input to every
// calculation in this package; no engine ever mutates one.
type Grant struct {
	ID      string    `json:"id,omitempty"`
	Company string    `json:"company,omitempty"`
	Type    GrantType `json:"type"`

	Shares int64 `json:"shares"` // total shares granted
	Strike Money `json:"strike"` // per-share exercise price, zero for RSU
	FMV    Money `json:"fmv"`    // current fair market value per share

	GrantDate    date.Date   `json:"grantDate,omitzero"`
	VestingStart date.Date   `json:"vestingStart"`
	VestingEnd   date.Date   `json:"vestingEnd"`
	Cliff        date.Date   `json:"cliff,omitzero"` // zero value means no cliff
	Cadence      date.Period `json:"cadence"`

	// LiquidityEventOnly marks a double-trigger RSU: no vesting credit
	// accrues until a liquidity event, whatever the elapsed time.
	LiquidityEventOnly bool `json:"liquidityEventOnly,omitempty"`
}

// Validate checks the grant invariants. A grant that fails validation is a
// contract violation by the caller, and every engine rejects it up front.
func (g Grant) Validate() error {
	if g.Shares < 0 {
		return fmt.Errorf("grant %q: shares must be non-negative, got %d", g.ID, g.Shares)
	}
	if g.Strike.IsNegative() {
		return fmt.Errorf("grant %q: strike price must be non-negative, got %s", g.ID, g.Strike)
	}
	if g.FMV.IsNegative() {
		return fmt.Errorf("grant %q: fair market value must be non-negative, got %s", g.ID, g.FMV)
	}
	if g.VestingStart.IsZero() || g.VestingEnd.IsZero() {
		return fmt.Errorf("grant %q: vesting start and end dates are required", g.ID)
	}
	if g.VestingEnd.Before(g.VestingStart) {
		return fmt.Errorf("grant %q: vesting end %s is before vesting start %s", g.ID, g.VestingEnd, g.VestingStart)
	}
	if !g.Cliff.IsZero() {
		if g.Cliff.Before(g.VestingStart) || g.Cliff.After(g.VestingEnd) {
			return fmt.Errorf("grant %q: cliff %s lies outside the vesting window [%s, %s]",
				g.ID, g.Cliff, g.VestingStart, g.VestingEnd)
		}
	}
	return nil
}

// Granted returns the grant date, defaulting to the vesting start when the
// grant date was not recorded.
func (g Grant) Granted() date.Date {
	if g.GrantDate.IsZero() {
		return g.VestingStart
	}
	return g.GrantDate
}

// ExerciseCost returns the cost of exercising n shares at the strike price.
func (g Grant) ExerciseCost(n int64) Money {
	return g.Strike.Mul(Q(n))
}

// Spread returns the per-share gain over strike at the given price, times n,
// floored at zero for underwater options.
func (g Grant) Spread(price Money, n int64) Money {
	return price.Sub(g.Strike).Mul(Q(n)).Floor()
}

// CurrentValue returns the value of n shares at the current fair market value.
func (g Grant) CurrentValue(n int64) Money {
	return g.FMV.Mul(Q(n))
}

// ROI returns the gain over exercise cost as a ratio, and 0 when the grant
// has no exercise cost (an RSU, or a zero-strike option).
func (g Grant) ROI() float64 {
	cost := g.ExerciseCost(g.Shares)
	if cost.IsZero() {
		return 0
	}
	return g.CurrentValue(g.Shares).Sub(cost).Div(cost)
}

// MarshalJSON encodes the grant with a stable field order.
func (g Grant) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Optional("id", g.ID)
	w.Optional("company", g.Company)
	w.Append("type", g.Type)
	w.Append("shares", g.Shares)
	w.Append("strike", g.Strike)
	w.Append("fmv", g.FMV)
	if !g.GrantDate.IsZero() {
		w.Append("grantDate", g.GrantDate)
	}
	w.Append("vestingStart", g.VestingStart)
	w.Append("vestingEnd", g.VestingEnd)
	if !g.Cliff.IsZero() {
		w.Append("cliff", g.Cliff)
	}
	w.Append("cadence", g.Cadence)
	if g.LiquidityEventOnly {
		w.Append("liquidityEventOnly", true)
	}
	return w.MarshalJSON()
}
