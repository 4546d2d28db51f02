package equity

import (
	"encoding/json"
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// USD is the currency every tax table in this package is expressed in.
const USD = "USD"

// Money represents a monetary value.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

func M[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Money {
	return Money{value: newDecimal(value), cur: USD}
}

// currency returns the money's currency
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, m.normalize().cur).Currency()
}

// String returns the string representation of the money value.
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.Round(0).IntPart())
}

func (m Money) Currency() string                { return m.normalize().cur }
func (m Money) Equal(n Money) bool              { return m.value.Equal(n.value) }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsPositive() bool                { return m.value.IsPositive() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool           { return m.value.LessThan(n.value) }
func (m Money) LessThanOrEqual(n Money) bool    { return m.value.LessThanOrEqual(n.value) }
func (m Money) GreaterThan(n Money) bool        { return m.value.GreaterThan(n.value) }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.value.GreaterThanOrEqual(n.value) }
func (m Money) Neg() Money                      { return Money{value: m.value.Neg(), cur: m.cur} }
func (m Money) Mul(n Quantity) Money            { return Money{value: m.value.Mul(n.value), cur: m.cur} }

// binary operators.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

// MulRate returns the given fraction of m (e.g. a tax rate applied to a base).
func (m Money) MulRate(r decimal.Decimal) Money {
	return Money{value: m.value.Mul(r), cur: m.cur}
}

// Div returns the ratio m/n as a plain float, and 0 when n is zero.
func (m Money) Div(n Money) float64 {
	if n.value.IsZero() {
		return 0
	}
	return m.value.Div(n.value).InexactFloat64()
}

// Floor returns m clamped to be non-negative.
func (m Money) Floor() Money {
	if m.IsNegative() {
		return Money{cur: m.cur}
	}
	return m
}

// MinMoney returns the smaller of m and n.
func MinMoney(m, n Money) Money {
	if n.LessThan(m) {
		return n
	}
	return m
}

// MaxMoney returns the larger of m and n.
func MaxMoney(m, n Money) Money {
	if n.GreaterThan(m) {
		return n
	}
	return m
}

// normalize makes the zero value of Money a valid USD amount.
func (m Money) normalize() Money {
	if m.cur == "" {
		m.cur = USD
	}
	return m
}

// makes the "" currency totally weak.
func cur(A, B Money) string {
	if A.cur == "" {
		return B.cur
	}
	if B.cur == "" {
		return A.cur
	}
	if A.cur != B.cur {
		panic("currency mismatch" + A.cur + "!=" + B.cur)
	}
	return A.cur
}

// AsFloat returns the amount as a float64, for ratio and score computations.
func (m Money) AsFloat() float64 { return m.value.InexactFloat64() }

// SignedString returns the string representation of the money value with a sign.
// 0 is represented as a "-"
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

func (m Money) MarshalJSON() ([]byte, error) {
	m = m.normalize()
	var w jsonObjectWriter
	w.Optional("currency", m.cur)
	w.Append("amount", m.value)
	return w.MarshalJSON()
}

// UnmarshalJSON accepts either a bare number or a {"currency", "amount"}
// object as written by MarshalJSON.
func (m *Money) UnmarshalJSON(bytes []byte) error {
	var amount struct {
		Currency string          `json:"currency"`
		Amount   decimal.Decimal `json:"amount"`
	}
	if err := json.Unmarshal(bytes, &amount); err == nil {
		m.value, m.cur = amount.Amount, amount.Currency
		return m.normalizeInPlace()
	}
	var v decimal.Decimal
	if err := json.Unmarshal(bytes, &v); err != nil {
		return fmt.Errorf("invalid money value %s: %w", string(bytes), err)
	}
	m.value, m.cur = v, USD
	return nil
}

func (m *Money) normalizeInPlace() error {
	if m.cur == "" {
		m.cur = USD
	}
	return nil
}
