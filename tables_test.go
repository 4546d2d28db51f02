package equity

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestDefaultTablesParse(t *testing.T) {
	tables := DefaultTables()

	years := tables.Years()
	if len(years) < 2 {
		t.Fatalf("expected at least two known years, got %v", years)
	}

	for _, year := range years {
		yt, approx := tables.Year(year)
		if approx {
			t.Errorf("year %d reported approximate", year)
		}
		for _, status := range FilingStatuses() {
			if len(yt.FederalSchedule(status)) == 0 {
				t.Errorf("year %d: no federal schedule for %s", year, status)
			}
			if len(yt.CapitalGainsSchedule(status)) == 0 {
				t.Errorf("year %d: no capital gains schedule for %s", year, status)
			}
			if yt.AMT.Exemption[status].IsZero() {
				t.Errorf("year %d: no AMT exemption for %s", year, status)
			}
		}
	}
}

func TestYearFallback(t *testing.T) {
	tables := DefaultTables()

	// A future year falls back to the latest known one.
	yt, approx := tables.Year(2100)
	if !approx {
		t.Error("unknown year should report approximate")
	}
	years := tables.Years()
	if yt.Year != years[len(years)-1] {
		t.Errorf("fallback year = %d, want latest known %d", yt.Year, years[len(years)-1])
	}

	// A past year falls back to the earliest.
	yt, approx = tables.Year(1990)
	if !approx || yt.Year != years[0] {
		t.Errorf("fallback for 1990 = %d approx=%v, want earliest %d", yt.Year, approx, years[0])
	}
}

func TestStateRateLookup(t *testing.T) {
	tables := DefaultTables()

	rate, ok := tables.StateRate("ca")
	if !ok {
		t.Fatal("CA should be a known state, case-insensitively")
	}
	if !rate.Equal(decimal.NewFromFloat(0.093)) {
		t.Errorf("CA rate = %s, want 0.093", rate)
	}

	if rate, ok := tables.StateRate("TX"); !ok || !rate.IsZero() {
		t.Errorf("TX = %s ok=%v, want known zero rate", rate, ok)
	}

	if _, ok := tables.StateRate("ZZ"); ok {
		t.Error("ZZ should be unknown")
	}
}

func TestParseTablesRejectsBadBrackets(t *testing.T) {
	// A gap between brackets must be rejected.
	bad := []byte(`
years:
  2025:
    federal:
      single:
        - { max: 1000, rate: 0.10 }
        - { min: 2000, rate: 0.20 }
    capital_gains:
      single:
        - { rate: 0.0 }
`)
	if _, err := ParseTables(bad); err == nil {
		t.Error("ParseTables() expected error for discontinuous brackets")
	}

	// A bounded last bracket must be rejected.
	bad = []byte(`
years:
  2025:
    federal:
      single:
        - { max: 1000, rate: 0.10 }
        - { min: 1000, max: 5000, rate: 0.20 }
    capital_gains:
      single:
        - { rate: 0.0 }
`)
	if _, err := ParseTables(bad); err == nil {
		t.Error("ParseTables() expected error for bounded top bracket")
	}

	if _, err := ParseTables([]byte("years: {}")); err == nil {
		t.Error("ParseTables() expected error for empty years")
	}
}
