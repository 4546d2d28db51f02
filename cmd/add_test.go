package cmd

import (
	"testing"
	"time"

	"github.com/etnz/equity"
	"github.com/etnz/equity/date"
)

func TestAddCmdGrant(t *testing.T) {
	c := addCmd{
		id:        "acme-iso",
		company:   "Acme",
		grantType: "iso",
		shares:    4800,
		strike:    1,
		fmv:       6,
		start:     "2024-01-01",
		end:       "2028-01-01",
		cliff:     "2025-01-01",
		cadence:   "monthly",
	}

	g, err := c.grant()
	if err != nil {
		t.Fatalf("grant() error = %v", err)
	}
	if g.Type != equity.ISO || g.Shares != 4800 {
		t.Errorf("grant = %+v", g)
	}
	if g.VestingStart != date.New(2024, time.January, 1) {
		t.Errorf("VestingStart = %s", g.VestingStart)
	}
	if g.Cliff != date.New(2025, time.January, 1) {
		t.Errorf("Cliff = %s", g.Cliff)
	}
	// No explicit grant date: it defaults to the vesting start.
	if g.Granted() != g.VestingStart {
		t.Errorf("Granted() = %s, want the vesting start", g.Granted())
	}
}

func TestAddCmdGrantRejects(t *testing.T) {
	base := addCmd{
		grantType: "nso",
		shares:    100,
		start:     "2024-01-01",
		end:       "2028-01-01",
		cadence:   "monthly",
	}

	c := base
	c.grantType = "warrant"
	if _, err := c.grant(); err == nil {
		t.Error("expected error for an unknown grant type")
	}

	c = base
	c.cadence = "hourly"
	if _, err := c.grant(); err == nil {
		t.Error("expected error for an unknown cadence")
	}

	c = base
	c.end = "2023-01-01"
	if _, err := c.grant(); err == nil {
		t.Error("expected error for an end before the start")
	}

	c = base
	c.cliff = "2030-01-01"
	if _, err := c.grant(); err == nil {
		t.Error("expected error for a cliff outside the vesting window")
	}
}
