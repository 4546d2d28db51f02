package date

import (
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestNewNormalizes(t *testing.T) {
	// Day overflow rolls into the next month.
	got := New(2025, time.January, 32)
	want := New(2025, time.February, 1)
	if got != want {
		t.Errorf("New(2025, 1, 32) = %v, want %v", got, want)
	}
}

func TestMonths(t *testing.T) {
	testCases := []struct {
		name string
		from Date
		to   Date
		want int
	}{
		{"same day", New(2025, time.March, 15), New(2025, time.March, 15), 0},
		{"one day short of a month", New(2025, time.March, 15), New(2025, time.April, 14), 0},
		{"exactly one month", New(2025, time.March, 15), New(2025, time.April, 15), 1},
		{"one year", New(2024, time.June, 1), New(2025, time.June, 1), 12},
		{"to before from clamps to zero", New(2025, time.June, 1), New(2025, time.May, 1), 0},
		{"year boundary", New(2024, time.November, 10), New(2025, time.February, 10), 3},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.to.Months(tc.from); got != tc.want {
				t.Errorf("Months(%v -> %v) = %d, want %d", tc.from, tc.to, got, tc.want)
			}
		})
	}
}

func TestDays(t *testing.T) {
	from := New(2025, time.January, 1)
	to := New(2025, time.January, 31)
	if got := to.Days(from); got != 30 {
		t.Errorf("Days() = %d, want 30", got)
	}
	if got := from.Days(to); got != -30 {
		t.Errorf("Days() reversed = %d, want -30", got)
	}
}

func TestParse(t *testing.T) {
	d, err := Parse("2025-7-1")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if d != New(2025, time.July, 1) {
		t.Errorf("Parse() = %v, want 2025-07-01", d)
	}
	if _, err := Parse("not-a-date"); err == nil {
		t.Error("Parse() expected error for garbage input")
	}
}

func TestPeriodMonthSpan(t *testing.T) {
	if m, ok := Quarterly.MonthSpan(); !ok || m != 3 {
		t.Errorf("Quarterly.MonthSpan() = %d, %v", m, ok)
	}
	if _, ok := Weekly.MonthSpan(); ok {
		t.Error("Weekly.MonthSpan() should not be expressible in months")
	}
}
