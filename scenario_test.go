package equity

import (
	"testing"
	"time"

	"github.com/etnz/equity/date"
)

func scenarioGrants() []Grant {
	return []Grant{
		{
			ID:           "g-iso-1",
			Company:      "Acme",
			Type:         ISO,
			Shares:       10000,
			Strike:       M(1),
			FMV:          M(6),
			GrantDate:    date.New(2022, time.March, 1),
			VestingStart: date.New(2022, time.March, 1),
			VestingEnd:   date.New(2026, time.March, 1),
			Cadence:      date.Monthly,
		},
		{
			ID:           "g-nso-1",
			Company:      "Acme",
			Type:         NSO,
			Shares:       4000,
			Strike:       M(2),
			FMV:          M(6),
			GrantDate:    date.New(2023, time.March, 1),
			VestingStart: date.New(2023, time.March, 1),
			VestingEnd:   date.New(2027, time.March, 1),
			Cadence:      date.Monthly,
		},
	}
}

func scenarioParams() ScenarioParams {
	return ScenarioParams{
		AsOf:      date.New(2025, time.January, 15),
		ExitDate:  date.New(2027, time.June, 1),
		ExitPrice: M(25),
	}
}

func scenarioSettings() TaxSettings {
	return TaxSettings{
		FilingStatus: Single,
		OtherIncome:  M(180000),
		IncludeAMT:   true,
		State:        "CA",
	}
}

func TestAnalyzeExit_RanksStrategies(t *testing.T) {
	r, err := AnalyzeExit(scenarioGrants(), IPO, scenarioParams(), scenarioSettings())
	if err != nil {
		t.Fatalf("AnalyzeExit() error = %v", err)
	}

	if len(r.Strategies) != len(Strategies()) {
		t.Fatalf("got %d strategies, want %d", len(r.Strategies), len(Strategies()))
	}
	for i := 1; i < len(r.Strategies); i++ {
		if r.Strategies[i].NetProceeds.GreaterThan(r.Strategies[i-1].NetProceeds) {
			t.Errorf("strategies out of order at %d: %s (%s) after %s (%s)",
				i, r.Strategies[i].Strategy, r.Strategies[i].NetProceeds,
				r.Strategies[i-1].Strategy, r.Strategies[i-1].NetProceeds)
		}
	}
	if r.Best != r.Strategies[0].Strategy {
		t.Errorf("Best = %q, want the top-ranked %q", r.Best, r.Strategies[0].Strategy)
	}
	if want := r.Strategies[0].NetProceeds.Sub(r.Strategies[1].NetProceeds); !r.Savings.Equal(want) {
		t.Errorf("Savings = %s, want best minus runner-up %s", r.Savings, want)
	}
	if r.Savings.IsNegative() {
		t.Errorf("Savings = %s, must never be negative", r.Savings)
	}
}

func TestAnalyzeExit_EarlyExerciseBeatsCashlessHere(t *testing.T) {
	// Long runway to the exit: early exercise converts the appreciation to
	// long-term gain while the cashless exit pays ordinary rates on it.
	r, err := AnalyzeExit(scenarioGrants(), IPO, scenarioParams(), scenarioSettings())
	if err != nil {
		t.Fatalf("AnalyzeExit() error = %v", err)
	}

	byName := make(map[string]StrategyOutcome, len(r.Strategies))
	for _, s := range r.Strategies {
		byName[s.Strategy] = s
	}
	early, cashless := byName["early-exercise-hold"], byName["exercise-at-exit"]
	if !early.NetProceeds.GreaterThan(cashless.NetProceeds) {
		t.Errorf("early exercise nets %s, cashless %s; expected early to win with this runway",
			early.NetProceeds, cashless.NetProceeds)
	}
	if !cashless.TotalTax.GreaterThan(early.TotalTax) {
		t.Errorf("cashless tax %s should exceed early-exercise tax %s",
			cashless.TotalTax, early.TotalTax)
	}
}

func TestAnalyzeExit_SharesConserved(t *testing.T) {
	grants := scenarioGrants()
	r, err := AnalyzeExit(grants, Acquisition, scenarioParams(), scenarioSettings())
	if err != nil {
		t.Fatalf("AnalyzeExit() error = %v", err)
	}

	var total int64
	for _, g := range grants {
		total += g.Shares
	}
	for _, s := range r.Strategies {
		var sold int64
		for _, pg := range s.PerGrant {
			sold += pg.Shares
		}
		// Staggered fractions must not drop shares to rounding.
		if sold != total {
			t.Errorf("%s sells %d shares, want all %d", s.Strategy, sold, total)
		}
	}
}

func TestAnalyzeExit_LockupDelaysSale(t *testing.T) {
	params := scenarioParams()
	settings := scenarioSettings()
	settings.IncludeAMT = false

	noLockup, err := AnalyzeExit(scenarioGrants(), IPO, params, settings)
	if err != nil {
		t.Fatalf("AnalyzeExit() error = %v", err)
	}

	params.LockupMonths = 12
	locked, err := AnalyzeExit(scenarioGrants(), IPO, params, settings)
	if err != nil {
		t.Fatalf("AnalyzeExit() error = %v", err)
	}

	// A 12-month lockup pushes the cashless sale past the long-term
	// threshold, so its tax cannot get worse.
	get := func(r *ScenarioResult) StrategyOutcome {
		for _, s := range r.Strategies {
			if s.Strategy == "exercise-at-exit" {
				return s
			}
		}
		t.Fatal("exercise-at-exit missing from results")
		return StrategyOutcome{}
	}
	if get(locked).TotalTax.GreaterThan(get(noLockup).TotalTax) {
		t.Errorf("lockup raised cashless tax from %s to %s",
			get(noLockup).TotalTax, get(locked).TotalTax)
	}
}

func TestAnalyzeExit_RejectsBadInput(t *testing.T) {
	params := scenarioParams()
	settings := scenarioSettings()

	if _, err := AnalyzeExit(nil, IPO, params, settings); err == nil {
		t.Error("expected error with no grants")
	}

	bad := params
	bad.ExitDate = date.Date{}
	if _, err := AnalyzeExit(scenarioGrants(), IPO, bad, settings); err == nil {
		t.Error("expected error with no exit date")
	}

	bad = params
	bad.ExitPrice = M(-1)
	if _, err := AnalyzeExit(scenarioGrants(), IPO, bad, settings); err == nil {
		t.Error("expected error with a negative exit price")
	}

	bad = params
	bad.LockupMonths = -6
	if _, err := AnalyzeExit(scenarioGrants(), IPO, bad, settings); err == nil {
		t.Error("expected error with a negative lockup")
	}
}

func TestCompareExits(t *testing.T) {
	base := scenarioParams()
	ipo := base
	ipo.LockupMonths = 6
	acquisition := base
	acquisition.ExitPrice = M(30) // a richer offer
	secondary := base
	secondary.ExitPrice = M(18)

	c, err := CompareExits(scenarioGrants(), map[ExitType]ScenarioParams{
		IPO:         ipo,
		Acquisition: acquisition,
		Secondary:   secondary,
	}, scenarioSettings())
	if err != nil {
		t.Fatalf("CompareExits() error = %v", err)
	}

	if len(c.Results) != 3 {
		t.Fatalf("got %d results, want 3", len(c.Results))
	}
	if c.BestExit != Acquisition {
		t.Errorf("BestExit = %s, want the richer acquisition", c.BestExit)
	}
	for _, r := range c.Results {
		if r.Strategies[0].NetProceeds.GreaterThan(c.NetProceeds) {
			t.Errorf("%s best %s exceeds reported global best %s",
				r.ExitType, r.Strategies[0].NetProceeds, c.NetProceeds)
		}
	}
	if c.BestStrategy == "" {
		t.Error("BestStrategy should name a strategy")
	}
}

func TestCompareExits_RejectsEmpty(t *testing.T) {
	if _, err := CompareExits(scenarioGrants(), nil, scenarioSettings()); err == nil {
		t.Error("expected error with no scenarios")
	}
}

func TestParseExitType(t *testing.T) {
	tests := []struct {
		in   string
		want ExitType
	}{
		{"IPO", IPO},
		{"m&a", Acquisition},
		{"tender", Secondary},
	}
	for _, tc := range tests {
		got, err := ParseExitType(tc.in)
		if err != nil || got != tc.want {
			t.Errorf("ParseExitType(%q) = %v, %v, want %v", tc.in, got, err, tc.want)
		}
	}
	if _, err := ParseExitType("spac"); err == nil {
		t.Error("expected error for unknown exit type")
	}
}
