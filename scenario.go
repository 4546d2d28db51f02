package equity

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/etnz/equity/date"
)

// ExitType identifies the kind of liquidity event being modeled.
type ExitType int

const (
	IPO ExitType = iota
	Acquisition
	Secondary
)

func (e ExitType) String() string {
	switch e {
	case IPO:
		return "ipo"
	case Acquisition:
		return "acquisition"
	case Secondary:
		return "secondary"
	default:
		return "unknown"
	}
}

// ParseExitType parses a string into an ExitType.
func ParseExitType(s string) (ExitType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ipo":
		return IPO, nil
	case "acquisition", "m&a", "ma":
		return Acquisition, nil
	case "secondary", "secondary-sale", "tender":
		return Secondary, nil
	default:
		return 0, fmt.Errorf("unknown exit type: %q", s)
	}
}

// ExitTypes lists every supported exit type, in evaluation order.
func ExitTypes() []ExitType { return []ExitType{IPO, Acquisition, Secondary} }

// MarshalJSON encodes the exit type as its string name.
func (e ExitType) MarshalJSON() ([]byte, error) { return json.Marshal(e.String()) }

// UnmarshalJSON decodes an exit type from its string name.
func (e *ExitType) UnmarshalJSON(bytes []byte) error {
	var s string
	if err := json.Unmarshal(bytes, &s); err != nil {
		return err
	}
	parsed, err := ParseExitType(s)
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

// ScenarioParams describes one modeled exit.
type ScenarioParams struct {
	ExitDate  date.Date `json:"exitDate"`
	ExitPrice Money     `json:"exitPrice"` // per share at exit

	// AsOf anchors the "exercise now" strategies; defaults to today.
	AsOf date.Date `json:"asOf,omitzero"`

	// LockupMonths delays every sale past the exit date. IPOs typically
	// carry 6; acquisitions and secondaries 0.
	LockupMonths int `json:"lockupMonths,omitempty"`
}

// Validate checks the scenario invariants.
func (p ScenarioParams) Validate() error {
	if p.ExitDate.IsZero() {
		return fmt.Errorf("exit date is required")
	}
	if p.ExitPrice.IsNegative() {
		return fmt.Errorf("exit price must be non-negative, got %s", p.ExitPrice)
	}
	if p.LockupMonths < 0 {
		return fmt.Errorf("lockup months must be non-negative, got %d", p.LockupMonths)
	}
	return nil
}

func (p ScenarioParams) asOf() date.Date {
	if p.AsOf.IsZero() {
		return date.Today()
	}
	return p.AsOf
}

// batchPlan is one tranche of a strategy: a fraction of the position with
// its exercise timing. Shares exercised early are priced at the grant's
// current fair market value; shares exercised at exit are priced at the exit
// price.
type batchPlan struct {
	Fraction    float64
	AtExit      bool // exercise on the exit date
	DelayMonths int  // months after AsOf when not at exit
}

// StrategyDescriptor is one row of the fixed strategy table. Adding a
// strategy means adding a row, not new control flow.
type StrategyDescriptor struct {
	Name        string
	Description string
	Batches     []batchPlan
}

// strategyTable is the fixed set of exercise strategies evaluated for every
// exit type. The enumeration is deliberately small: this is a comparison of
// a handful of plans, not an optimizer.
var strategyTable = []StrategyDescriptor{
	{
		Name:        "early-exercise-hold",
		Description: "exercise everything now, hold through the exit and any lockup",
		Batches: []batchPlan{
			{Fraction: 1},
		},
	},
	{
		Name:        "exercise-at-exit",
		Description: "exercise and sell on the exit date (cashless)",
		Batches: []batchPlan{
			{Fraction: 1, AtExit: true},
		},
	},
	{
		Name:        "staggered",
		Description: "exercise half now and a quarter at six-month intervals",
		Batches: []batchPlan{
			{Fraction: 0.50},
			{Fraction: 0.25, DelayMonths: 6},
			{Fraction: 0.25, DelayMonths: 12},
		},
	},
}

// Strategies returns the names of the fixed strategy set, in table order.
func Strategies() []string {
	names := make([]string, len(strategyTable))
	for i, s := range strategyTable {
		names[i] = s.Name
	}
	return names
}

// GrantOutcome is the per-grant detail of one evaluated strategy.
type GrantOutcome struct {
	GrantID      string `json:"grantId,omitempty"`
	Company      string `json:"company,omitempty"`
	Shares       int64  `json:"shares"`
	TotalTax     Money  `json:"totalTax"`
	ExerciseCost Money  `json:"exerciseCost"`
	NetProceeds  Money  `json:"netProceeds"`
}

// StrategyOutcome sums one strategy over every grant.
type StrategyOutcome struct {
	Strategy    string `json:"strategy"`
	Description string `json:"description"`

	GrossProceeds Money `json:"grossProceeds"`
	ExerciseCost  Money `json:"exerciseCost"`
	TotalTax      Money `json:"totalTax"`
	NetProceeds   Money `json:"netProceeds"`

	PerGrant []GrantOutcome `json:"perGrant,omitempty"`
}

// ScenarioResult ranks every strategy for one exit type.
type ScenarioResult struct {
	ExitType ExitType       `json:"exitType"`
	Params   ScenarioParams `json:"params"`

	// Strategies are sorted by net proceeds, best first.
	Strategies []StrategyOutcome `json:"strategies"`

	Best string `json:"best"`
	// Savings is the net-proceeds delta of the best strategy over the
	// runner-up: what choosing optimally is worth.
	Savings Money `json:"savings"`
}

// AnalyzeExit evaluates the fixed strategy set against one exit scenario,
// running every (grant, strategy) pair through the tax engine, and reports
// the strategy with the greatest summed net proceeds.
func AnalyzeExit(grants []Grant, exit ExitType, params ScenarioParams, settings TaxSettings) (*ScenarioResult, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if len(grants) == 0 {
		return nil, fmt.Errorf("no grants to analyze")
	}
	for _, g := range grants {
		if err := g.Validate(); err != nil {
			return nil, err
		}
	}

	result := &ScenarioResult{ExitType: exit, Params: params}
	for _, descriptor := range strategyTable {
		outcome, err := evaluateStrategy(grants, descriptor, params, settings)
		if err != nil {
			return nil, fmt.Errorf("strategy %s: %w", descriptor.Name, err)
		}
		result.Strategies = append(result.Strategies, outcome)
	}

	// Rank by net proceeds, best first.
	sort.SliceStable(result.Strategies, func(i, j int) bool {
		return result.Strategies[i].NetProceeds.GreaterThan(result.Strategies[j].NetProceeds)
	})
	result.Best = result.Strategies[0].Strategy
	if len(result.Strategies) > 1 {
		result.Savings = result.Strategies[0].NetProceeds.Sub(result.Strategies[1].NetProceeds)
	}
	return result, nil
}

// evaluateStrategy sums one strategy's batches over every grant.
func evaluateStrategy(grants []Grant, descriptor StrategyDescriptor, params ScenarioParams, settings TaxSettings) (StrategyOutcome, error) {
	outcome := StrategyOutcome{
		Strategy:     descriptor.Name,
		Description:  descriptor.Description,
		TotalTax:     M(0),
		NetProceeds:  M(0),
		ExerciseCost: M(0),
	}

	saleDate := params.ExitDate.AddMonth(params.LockupMonths)

	for _, g := range grants {
		detail := GrantOutcome{
			GrantID:      g.ID,
			Company:      g.Company,
			TotalTax:     M(0),
			ExerciseCost: M(0),
			NetProceeds:  M(0),
		}

		remaining := g.Shares
		for i, batch := range descriptor.Batches {
			shares := int64(float64(g.Shares) * batch.Fraction)
			if i == len(descriptor.Batches)-1 {
				shares = remaining // last batch absorbs the rounding
			}
			if shares <= 0 {
				continue
			}
			remaining -= shares

			exerciseDate := params.asOf().AddMonth(batch.DelayMonths)
			exercisePrice := g.FMV
			if batch.AtExit || exerciseDate.After(params.ExitDate) {
				exerciseDate = params.ExitDate
				exercisePrice = params.ExitPrice
			}

			s := settings
			s.ExerciseDate = exerciseDate
			s.SaleDate = saleDate

			tax, err := ComputeTax(g, exercisePrice, params.ExitPrice, shares, s)
			if err != nil {
				return outcome, err
			}

			detail.Shares += shares
			detail.TotalTax = detail.TotalTax.Add(tax.TotalTax)
			detail.ExerciseCost = detail.ExerciseCost.Add(tax.ExerciseCost)
			detail.NetProceeds = detail.NetProceeds.Add(tax.NetProceeds)
			outcome.GrossProceeds = outcome.GrossProceeds.Add(tax.GrossProceeds)
		}

		outcome.TotalTax = outcome.TotalTax.Add(detail.TotalTax)
		outcome.ExerciseCost = outcome.ExerciseCost.Add(detail.ExerciseCost)
		outcome.NetProceeds = outcome.NetProceeds.Add(detail.NetProceeds)
		outcome.PerGrant = append(outcome.PerGrant, detail)
	}
	return outcome, nil
}

// ExitComparison reports the best (exit type, strategy) pair across several
// modeled exits.
type ExitComparison struct {
	Results []*ScenarioResult `json:"results"`

	BestExit     ExitType `json:"bestExit"`
	BestStrategy string   `json:"bestStrategy"`
	NetProceeds  Money    `json:"netProceeds"`
}

// CompareExits analyzes every provided scenario and picks the global best.
func CompareExits(grants []Grant, scenarios map[ExitType]ScenarioParams, settings TaxSettings) (*ExitComparison, error) {
	if len(scenarios) == 0 {
		return nil, fmt.Errorf("no scenarios to compare")
	}

	comparison := &ExitComparison{NetProceeds: M(0)}
	for _, exit := range ExitTypes() {
		params, ok := scenarios[exit]
		if !ok {
			continue
		}
		result, err := AnalyzeExit(grants, exit, params, settings)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", exit, err)
		}
		comparison.Results = append(comparison.Results, result)

		best := result.Strategies[0]
		if len(comparison.Results) == 1 || best.NetProceeds.GreaterThan(comparison.NetProceeds) {
			comparison.BestExit = exit
			comparison.BestStrategy = best.Strategy
			comparison.NetProceeds = best.NetProceeds
		}
	}
	return comparison, nil
}
