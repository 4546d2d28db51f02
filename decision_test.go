package equity

import (
	"testing"
	"time"

	"github.com/etnz/equity/date"
)

func decisionGrant() Grant {
	return Grant{
		ID:           "g-dec",
		Company:      "Acme",
		Type:         ISO,
		Shares:       10000,
		Strike:       M(2),
		FMV:          M(8),
		GrantDate:    date.New(2023, time.January, 1),
		VestingStart: date.New(2023, time.January, 1),
		VestingEnd:   date.New(2027, time.January, 1),
		Cliff:        date.New(2024, time.January, 1),
		Cadence:      date.Monthly,
	}
}

func TestComputeDecisionFactors_ScoresStayInRange(t *testing.T) {
	asOf := date.New(2025, time.June, 1)
	inputs := []DecisionInput{
		{
			// Everything favorable, pushed to the extreme.
			Grant:         decisionGrant(),
			AsOf:          asOf,
			LiquidAssets:  M(100000000),
			RiskTolerance: Aggressive,
			Stage:         Public,
			RevenueGrowth: 50,
			LastFinancing: date.New(2025, time.May, 1),
			Expiration:    date.New(2025, time.September, 1),
			ExpectedExit:  date.New(2025, time.August, 1),
			Settings:      TaxSettings{OtherIncome: M(10000000), State: "TX"},
		},
		{
			// Everything unfavorable.
			Grant:         decisionGrant(),
			AsOf:          asOf,
			LiquidAssets:  M(0),
			DebtToIncome:  5,
			RiskTolerance: Conservative,
			Stage:         Seed,
			RevenueGrowth: -0.9,
			Settings:      TaxSettings{State: "CA"},
		},
		{
			// Sparse input: only the grant.
			Grant: decisionGrant(),
			AsOf:  asOf,
		},
	}

	for i, in := range inputs {
		f, err := ComputeDecisionFactors(in)
		if err != nil {
			t.Fatalf("input %d: ComputeDecisionFactors() error = %v", i, err)
		}
		for name, score := range map[string]float64{
			"FinancialCapacity": f.FinancialCapacity,
			"CompanyOutlook":    f.CompanyOutlook,
			"TaxEfficiency":     f.TaxEfficiency,
			"Timing":            f.Timing,
			"Overall":           f.Overall,
		} {
			if score < 0 || score > 1 {
				t.Errorf("input %d: %s = %v, want within [0, 1]", i, name, score)
			}
		}
		if f.Recommendation.Tier < 1 || f.Recommendation.Tier > 5 {
			t.Errorf("input %d: Tier = %d, want 1..5", i, f.Recommendation.Tier)
		}
	}
}

func TestComputeDecisionFactors_CapacityBands(t *testing.T) {
	asOf := date.New(2025, time.June, 1)
	g := decisionGrant() // exercise cost 20000

	tests := []struct {
		liquid Money
		want   float64
	}{
		{M(60000), 1},    // 3x cost
		{M(40000), 0.85}, // 2x
		{M(30000), 0.7},  // 1.5x
		{M(20000), 0.55}, // 1x
		{M(10000), 0.35}, // 0.5x
		{M(1000), 0.15},  // nearly nothing
	}
	for _, tc := range tests {
		f, err := ComputeDecisionFactors(DecisionInput{
			Grant:         g,
			AsOf:          asOf,
			LiquidAssets:  tc.liquid,
			RiskTolerance: Moderate,
		})
		if err != nil {
			t.Fatalf("ComputeDecisionFactors() error = %v", err)
		}
		if f.FinancialCapacity != tc.want {
			t.Errorf("capacity with %s liquid = %v, want %v", tc.liquid, f.FinancialCapacity, tc.want)
		}
	}
}

func TestComputeDecisionFactors_RiskToleranceShiftsCapacity(t *testing.T) {
	asOf := date.New(2025, time.June, 1)
	in := DecisionInput{
		Grant:        decisionGrant(),
		AsOf:         asOf,
		LiquidAssets: M(40000),
	}

	in.RiskTolerance = Conservative
	lo, err := ComputeDecisionFactors(in)
	if err != nil {
		t.Fatalf("ComputeDecisionFactors() error = %v", err)
	}
	in.RiskTolerance = Aggressive
	hi, err := ComputeDecisionFactors(in)
	if err != nil {
		t.Fatalf("ComputeDecisionFactors() error = %v", err)
	}

	if lo.FinancialCapacity >= hi.FinancialCapacity {
		t.Errorf("conservative capacity %v should be below aggressive %v",
			lo.FinancialCapacity, hi.FinancialCapacity)
	}
}

func TestComputeDecisionFactors_ZeroCostScoresFullCapacity(t *testing.T) {
	g := decisionGrant()
	g.Type = RSU
	g.Strike = M(0)

	f, err := ComputeDecisionFactors(DecisionInput{
		Grant: g,
		AsOf:  date.New(2025, time.June, 1),
	})
	if err != nil {
		t.Fatalf("ComputeDecisionFactors() error = %v", err)
	}
	if f.FinancialCapacity != 1 {
		t.Errorf("capacity = %v, want 1 when exercising costs nothing", f.FinancialCapacity)
	}
	if f.TaxEfficiency != 0.5 {
		t.Errorf("tax efficiency = %v, want the neutral 0.5 for an RSU", f.TaxEfficiency)
	}
}

func TestComputeDecisionFactors_WeightPresets(t *testing.T) {
	in := DecisionInput{
		Grant:         decisionGrant(),
		AsOf:          date.New(2025, time.June, 1),
		LiquidAssets:  M(60000),
		Stage:         LateStage,
		RevenueGrowth: 0.6,
		Settings:      TaxSettings{OtherIncome: M(700000), State: "TX"},
	}

	in.Weights = DecisionToolWeights
	a, err := ComputeDecisionFactors(in)
	if err != nil {
		t.Fatalf("ComputeDecisionFactors() error = %v", err)
	}
	in.Weights = CalculatorWeights
	b, err := ComputeDecisionFactors(in)
	if err != nil {
		t.Fatalf("ComputeDecisionFactors() error = %v", err)
	}

	// Same factor scores, different blend.
	if a.FinancialCapacity != b.FinancialCapacity || a.Timing != b.Timing {
		t.Error("factor scores should not depend on the weight preset")
	}
	wantA := 0.35*a.FinancialCapacity + 0.30*a.CompanyOutlook + 0.25*a.TaxEfficiency + 0.10*a.Timing
	if !Percent(a.Overall).Equal(Percent(wantA)) {
		t.Errorf("decision-tool overall = %v, want %v", a.Overall, wantA)
	}
	wantB := 0.30*b.FinancialCapacity + 0.30*b.CompanyOutlook + 0.20*b.TaxEfficiency + 0.20*b.Timing
	if !Percent(b.Overall).Equal(Percent(wantB)) {
		t.Errorf("calculator overall = %v, want %v", b.Overall, wantB)
	}
}

func TestComputeDecisionFactors_ExpirationRaisesTiming(t *testing.T) {
	asOf := date.New(2025, time.June, 1)
	in := DecisionInput{Grant: decisionGrant(), AsOf: asOf}

	in.Expiration = date.New(2032, time.June, 1)
	far, err := ComputeDecisionFactors(in)
	if err != nil {
		t.Fatalf("ComputeDecisionFactors() error = %v", err)
	}
	in.Expiration = date.New(2025, time.December, 1)
	near, err := ComputeDecisionFactors(in)
	if err != nil {
		t.Fatalf("ComputeDecisionFactors() error = %v", err)
	}

	if near.Timing <= far.Timing {
		t.Errorf("timing near expiration %v should exceed far expiration %v",
			near.Timing, far.Timing)
	}
}

func TestRecommendationTiers(t *testing.T) {
	tests := []struct {
		overall float64
		tier    int
	}{
		{0.95, 1},
		{0.8, 1},
		{0.7, 2},
		{0.55, 3},
		{0.4, 4},
		{0.2, 5},
		{0, 5},
	}
	for _, tc := range tests {
		if got := recommend(tc.overall); got.Tier != tc.tier {
			t.Errorf("recommend(%v).Tier = %d, want %d", tc.overall, got.Tier, tc.tier)
		}
	}
}

func TestParseWeights(t *testing.T) {
	if w, err := ParseWeights("calculator"); err != nil || w != CalculatorWeights {
		t.Errorf("ParseWeights(calculator) = %v, %v", w, err)
	}
	if w, err := ParseWeights(""); err != nil || w != DecisionToolWeights {
		t.Errorf("ParseWeights(empty) = %v, %v", w, err)
	}
	if _, err := ParseWeights("bogus"); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestParseRiskToleranceAndStage(t *testing.T) {
	if r, err := ParseRiskTolerance(" Aggressive "); err != nil || r != Aggressive {
		t.Errorf("ParseRiskTolerance = %v, %v", r, err)
	}
	if _, err := ParseRiskTolerance("reckless"); err == nil {
		t.Error("expected error for unknown tolerance")
	}
	if c, err := ParseCompanyStage("pre-ipo"); err != nil || c != LateStage {
		t.Errorf("ParseCompanyStage = %v, %v", c, err)
	}
	if _, err := ParseCompanyStage("unicorn"); err == nil {
		t.Error("expected error for unknown stage")
	}
}

func TestComputeDecisionFactors_RejectsInvalidGrant(t *testing.T) {
	g := decisionGrant()
	g.Shares = -4
	if _, err := ComputeDecisionFactors(DecisionInput{Grant: g}); err == nil {
		t.Error("expected error for an invalid grant")
	}
}
