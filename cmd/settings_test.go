package cmd

import (
	"testing"
	"time"

	"github.com/etnz/equity"
	"github.com/etnz/equity/date"
)

func TestParseAllocation(t *testing.T) {
	got, err := parseAllocation("ca:0.6, NY:0.4")
	if err != nil {
		t.Fatalf("parseAllocation() error = %v", err)
	}
	if got["CA"] != 0.6 || got["NY"] != 0.4 {
		t.Errorf("parseAllocation() = %v", got)
	}

	if _, err := parseAllocation("CA=0.6"); err == nil {
		t.Error("expected error for a missing colon")
	}
	if _, err := parseAllocation("CA:lots"); err == nil {
		t.Error("expected error for a non-numeric fraction")
	}
}

func TestSettingsFlags(t *testing.T) {
	s := settingsFlags{
		income:     150000,
		filing:     "mfj",
		year:       2025,
		allocation: "CA:0.7,TX:0.3",
		amt:        true,
	}
	settings, err := s.settings()
	if err != nil {
		t.Fatalf("settings() error = %v", err)
	}
	if settings.FilingStatus != equity.MarriedJoint {
		t.Errorf("FilingStatus = %v, want married joint", settings.FilingStatus)
	}
	if !settings.OtherIncome.Equal(equity.M(150000)) {
		t.Errorf("OtherIncome = %s", settings.OtherIncome)
	}
	if !settings.IncludeAMT || settings.IncludeNIIT {
		t.Errorf("toggles = %v/%v, want AMT only", settings.IncludeAMT, settings.IncludeNIIT)
	}

	s.allocation = "CA:0.7,TX:0.7"
	if _, err := s.settings(); err == nil {
		t.Error("expected error for an allocation summing past 1")
	}

	s.allocation = ""
	s.filing = "compagnie"
	if _, err := s.settings(); err == nil {
		t.Error("expected error for an unknown filing status")
	}
}

func TestParseDay(t *testing.T) {
	fallback := date.New(2025, time.June, 1)

	got, err := parseDay("", fallback)
	if err != nil || got != fallback {
		t.Errorf("parseDay(empty) = %v, %v", got, err)
	}
	got, err = parseDay("2026-02-03", fallback)
	if err != nil || got != date.New(2026, time.February, 3) {
		t.Errorf("parseDay() = %v, %v", got, err)
	}
	if _, err := parseDay("not-a-date", fallback); err == nil {
		t.Error("expected error for garbage input")
	}
}

func TestFindGrant(t *testing.T) {
	grants := []equity.Grant{
		{ID: "a"},
		{ID: "b"},
	}

	g, err := FindGrant(grants, "b")
	if err != nil || g.ID != "b" {
		t.Errorf("FindGrant(b) = %v, %v", g.ID, err)
	}
	if _, err := FindGrant(grants, ""); err == nil {
		t.Error("expected error for an ambiguous empty id")
	}
	if _, err := FindGrant(grants, "z"); err == nil {
		t.Error("expected error for an unknown id")
	}
	if g, err := FindGrant(grants[:1], ""); err != nil || g.ID != "a" {
		t.Errorf("FindGrant on single grant = %v, %v", g.ID, err)
	}
}
