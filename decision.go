package equity

import (
	"fmt"
	"strings"

	"github.com/etnz/equity/date"
)

// RiskTolerance bands an investor's appetite for concentration risk.
type RiskTolerance int

const (
	Conservative RiskTolerance = iota
	Moderate
	Aggressive
)

func (r RiskTolerance) String() string {
	switch r {
	case Conservative:
		return "conservative"
	case Moderate:
		return "moderate"
	case Aggressive:
		return "aggressive"
	default:
		return "unknown"
	}
}

// ParseRiskTolerance parses a string into a RiskTolerance.
func ParseRiskTolerance(s string) (RiskTolerance, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "conservative", "low":
		return Conservative, nil
	case "moderate", "medium":
		return Moderate, nil
	case "aggressive", "high":
		return Aggressive, nil
	default:
		return 0, fmt.Errorf("unknown risk tolerance: %q", s)
	}
}

// CompanyStage bands the issuing company's maturity.
type CompanyStage int

const (
	Seed CompanyStage = iota
	EarlyStage
	GrowthStage
	LateStage
	Public
)

func (c CompanyStage) String() string {
	switch c {
	case Seed:
		return "seed"
	case EarlyStage:
		return "early"
	case GrowthStage:
		return "growth"
	case LateStage:
		return "late"
	case Public:
		return "public"
	default:
		return "unknown"
	}
}

// ParseCompanyStage parses a string into a CompanyStage.
func ParseCompanyStage(s string) (CompanyStage, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "seed":
		return Seed, nil
	case "early", "early-stage", "series-a", "series-b":
		return EarlyStage, nil
	case "growth":
		return GrowthStage, nil
	case "late", "late-stage", "pre-ipo":
		return LateStage, nil
	case "public":
		return Public, nil
	default:
		return 0, fmt.Errorf("unknown company stage: %q", s)
	}
}

// Weights blends the four decision factors into the overall score.
type Weights struct {
	Capacity float64
	Outlook  float64
	Tax      float64
	Timing   float64
}

// The two supported weighting presets.
var (
	// DecisionToolWeights favors financial capacity, the decision-tool
	// preset.
	DecisionToolWeights = Weights{Capacity: 0.35, Outlook: 0.30, Tax: 0.25, Timing: 0.10}
	// CalculatorWeights spreads weight more evenly, the calculator preset.
	CalculatorWeights = Weights{Capacity: 0.30, Outlook: 0.30, Tax: 0.20, Timing: 0.20}
)

// ParseWeights resolves a named weighting preset.
func ParseWeights(name string) (Weights, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "decision", "decision-tool":
		return DecisionToolWeights, nil
	case "calculator":
		return CalculatorWeights, nil
	default:
		return Weights{}, fmt.Errorf("unknown weight preset: %q", name)
	}
}

// DecisionInput gathers everything the scoring engine looks at: the grant,
// the holder's finances, the company's trajectory, and the relevant dates.
type DecisionInput struct {
	Grant Grant
	AsOf  date.Date // defaults to today

	// Financial capacity.
	LiquidAssets  Money
	DebtToIncome  float64
	RiskTolerance RiskTolerance

	// Company outlook.
	Stage         CompanyStage
	RevenueGrowth float64   // annual fraction, e.g. 0.5 for +50%
	LastFinancing date.Date // close of the most recent round, zero if unknown

	// Timing.
	Expiration   date.Date // option expiration, zero for RSUs
	ExpectedExit date.Date // anticipated liquidity event, zero if unknown

	// Tax efficiency (income and state are read from here).
	Settings TaxSettings

	// Weights selects the preset blend; the zero value means the
	// decision-tool preset.
	Weights Weights
}

func (in DecisionInput) weights() Weights {
	if in.Weights == (Weights{}) {
		return DecisionToolWeights
	}
	return in.Weights
}

func (in DecisionInput) asOf() date.Date {
	if in.AsOf.IsZero() {
		return date.Today()
	}
	return in.AsOf
}

// Recommendation is one of five discrete tiers, from exercising everything
// down to waiting, with its fixed reasoning and risk label.
type Recommendation struct {
	Tier      int    `json:"tier"` // 1 (exercise all) .. 5 (wait)
	Action    string `json:"action"`
	Reasoning string `json:"reasoning"`
	Risk      string `json:"risk"`
}

// DecisionFactors are the four normalized scores and their weighted outcome.
// Every score is clamped to [0, 1].
type DecisionFactors struct {
	FinancialCapacity float64 `json:"financialCapacity"`
	CompanyOutlook    float64 `json:"companyOutlook"`
	TaxEfficiency     float64 `json:"taxEfficiency"`
	Timing            float64 `json:"timing"`

	Overall        float64        `json:"overall"`
	Recommendation Recommendation `json:"recommendation"`
}

// ComputeDecisionFactors scores an exercise decision along four independent
// axes and blends them into a tiered recommendation. The scoring functions
// are deterministic step-or-linear bands; extreme inputs clamp rather than
// overflow the [0, 1] range.
func ComputeDecisionFactors(in DecisionInput) (DecisionFactors, error) {
	if err := in.Grant.Validate(); err != nil {
		return DecisionFactors{}, err
	}

	f := DecisionFactors{
		FinancialCapacity: capacityScore(in),
		CompanyOutlook:    outlookScore(in),
		TaxEfficiency:     taxEfficiencyScore(in),
		Timing:            timingScore(in),
	}
	w := in.weights()
	f.Overall = clampFraction(w.Capacity*f.FinancialCapacity +
		w.Outlook*f.CompanyOutlook +
		w.Tax*f.TaxEfficiency +
		w.Timing*f.Timing)
	f.Recommendation = recommend(f.Overall)
	return f, nil
}

// capacityScore bands the liquid-assets-to-exercise-cost ratio, nudged by
// risk tolerance and dragged down by a high debt ratio.
func capacityScore(in DecisionInput) float64 {
	cost := in.Grant.ExerciseCost(in.Grant.Shares)
	var score float64
	switch ratio := in.LiquidAssets.Div(cost); {
	case cost.IsZero():
		// RSUs and zero-strike options cost nothing to exercise.
		score = 1
	case ratio >= 3:
		score = 1
	case ratio >= 2:
		score = 0.85
	case ratio >= 1.5:
		score = 0.7
	case ratio >= 1:
		score = 0.55
	case ratio >= 0.5:
		score = 0.35
	default:
		score = 0.15
	}

	switch in.RiskTolerance {
	case Aggressive:
		score *= 1.15
	case Conservative:
		score *= 0.85
	}

	switch {
	case in.DebtToIncome > 0.4:
		score -= 0.1
	case in.DebtToIncome > 0.2:
		score -= 0.05
	}
	return clampFraction(score)
}

// outlookScore blends the company-stage, revenue-growth, and
// financing-recency tiers.
func outlookScore(in DecisionInput) float64 {
	var stage float64
	switch in.Stage {
	case Public:
		stage = 0.9
	case LateStage:
		stage = 0.8
	case GrowthStage:
		stage = 0.65
	case EarlyStage:
		stage = 0.45
	default:
		stage = 0.3
	}

	var growth float64
	switch g := in.RevenueGrowth; {
	case g >= 1:
		growth = 1
	case g >= 0.5:
		growth = 0.8
	case g >= 0.25:
		growth = 0.6
	case g >= 0.1:
		growth = 0.45
	case g >= 0:
		growth = 0.3
	default:
		growth = 0.15
	}

	financing := 0.3
	if !in.LastFinancing.IsZero() {
		switch months := in.asOf().Months(in.LastFinancing); {
		case months <= 12:
			financing = 0.8
		case months <= 24:
			financing = 0.6
		case months <= 36:
			financing = 0.4
		}
	}

	return clampFraction(0.40*stage + 0.35*growth + 0.25*financing)
}

// taxEfficiencyScore depends on the grant type: AMT exposure blended with
// state-tax impact for ISOs, the spread-to-income ratio for NSOs, and a
// neutral constant for RSUs (their tax is fixed at vesting either way).
func taxEfficiencyScore(in DecisionInput) float64 {
	g := in.Grant
	switch g.Type {
	case ISO:
		spread := g.Spread(g.FMV, g.Shares)
		amt := ratioTier(spread.Div(in.Settings.OtherIncome), spread)

		state := 0.3
		rate, ok := in.Settings.tables().StateRate(in.Settings.State)
		switch r, _ := rate.Float64(); {
		case !ok || r == 0:
			state = 1
		case r < 0.05:
			state = 0.7
		case r < 0.08:
			state = 0.5
		}
		return clampFraction(0.6*amt + 0.4*state)

	case NSO:
		spread := g.Spread(g.FMV, g.Shares)
		switch ratio := spread.Div(in.Settings.OtherIncome); {
		case spread.IsZero():
			return 0.8
		case in.Settings.OtherIncome.IsZero():
			return 0.3
		case ratio < 0.1:
			return 0.8
		case ratio < 0.5:
			return 0.6
		case ratio < 1:
			return 0.45
		default:
			return 0.3
		}

	default: // RSU
		return 0.5
	}
}

// ratioTier bands an AMT-exposure ratio: the lower the spread relative to
// income, the less likely an ISO exercise trips the AMT.
func ratioTier(ratio float64, spread Money) float64 {
	if spread.IsZero() {
		return 0.9
	}
	if ratio == 0 {
		// Non-zero spread with no income to compare against: the whole
		// spread is AMT-exposed.
		return 0.25
	}
	switch {
	case ratio < 0.1:
		return 0.9
	case ratio < 0.25:
		return 0.75
	case ratio < 0.5:
		return 0.55
	case ratio < 1:
		return 0.4
	default:
		return 0.25
	}
}

// timingScore blends expiration urgency with exit proximity, leaning on the
// expiration side when the option is close to expiring.
func timingScore(in DecisionInput) float64 {
	on := in.asOf()

	urgency := 0.4
	expWeight := 0.5
	if !in.Expiration.IsZero() {
		switch months := in.Expiration.Months(on); {
		case !in.Expiration.After(on):
			urgency, expWeight = 1, 0.7
		case months <= 12:
			urgency, expWeight = 0.9, 0.7
		case months <= 24:
			urgency, expWeight = 0.7, 0.7
		case months <= 60:
			urgency = 0.5
		default:
			urgency = 0.35
		}
	}

	proximity := 0.4
	if !in.ExpectedExit.IsZero() {
		switch months := in.ExpectedExit.Months(on); {
		case months <= 6:
			proximity = 0.9
		case months <= 12:
			proximity = 0.75
		case months <= 24:
			proximity = 0.55
		case months <= 48:
			proximity = 0.4
		default:
			proximity = 0.3
		}
	}

	return clampFraction(expWeight*urgency + (1-expWeight)*proximity)
}

// recommend maps the overall score onto one of five fixed tiers.
func recommend(overall float64) Recommendation {
	switch {
	case overall >= 0.8:
		return Recommendation{
			Tier:      1,
			Action:    "exercise all vested shares now",
			Reasoning: "Strong capacity, outlook, and tax position: exercising the full vested position captures the longest holding period at the lowest tax cost.",
			Risk:      "low",
		}
	case overall >= 0.65:
		return Recommendation{
			Tier:      2,
			Action:    "exercise a majority tranche",
			Reasoning: "Conditions favor exercising most of the vested position while holding back a reserve against a downturn or an AMT surprise.",
			Risk:      "moderate",
		}
	case overall >= 0.5:
		return Recommendation{
			Tier:      3,
			Action:    "exercise a partial tranche",
			Reasoning: "The picture is mixed: exercising a measured portion starts the holding clock without concentrating too much capital in one position.",
			Risk:      "moderate",
		}
	case overall >= 0.35:
		return Recommendation{
			Tier:      4,
			Action:    "exercise a minimal batch",
			Reasoning: "Weak capacity or outlook argues for exercising only a token amount, keeping optionality while limiting capital at risk.",
			Risk:      "elevated",
		}
	default:
		return Recommendation{
			Tier:      5,
			Action:    "wait",
			Reasoning: "The current capacity, outlook, or tax exposure does not justify committing capital; revisit after the next vesting event or financing round.",
			Risk:      "high",
		}
	}
}
