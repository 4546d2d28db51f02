package equity

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Tax tables are static, versioned lookup data. The defaults ship embedded in
// the binary; they are read-only after parsing and safe to share across
// concurrent calls.

//go:embed tables.yaml
var tablesYAML []byte

// AMTTable holds the alternative-minimum-tax parameters for one year.
type AMTTable struct {
	LowRate    decimal.Decimal
	HighRate   decimal.Decimal
	Breakpoint map[FilingStatus]Money // low-to-high rate boundary
	Exemption  map[FilingStatus]Money // base exemption, before phase-out
	Phaseout   map[FilingStatus]Money // income where the exemption starts eroding
}

// Schedule returns the two-tier AMT rate schedule for a filing status.
func (a AMTTable) Schedule(status FilingStatus) Schedule {
	bp := a.Breakpoint[status]
	return Schedule{
		{Min: M(0), Max: bp, Rate: a.LowRate},
		{Min: bp, Rate: a.HighRate},
	}
}

// MedicareTable holds the Medicare rates and the additional-surtax threshold.
type MedicareTable struct {
	Rate                decimal.Decimal
	AdditionalRate      decimal.Decimal
	AdditionalThreshold map[FilingStatus]Money
}

// NIITTable holds the net-investment-income-tax rate and thresholds.
type NIITTable struct {
	Rate      decimal.Decimal
	Threshold map[FilingStatus]Money
}

// YearTable groups every table for a single tax year.
type YearTable struct {
	Year         int
	Federal      map[FilingStatus]Schedule
	CapitalGains map[FilingStatus]Schedule
	AMT          AMTTable
	Medicare     MedicareTable
	NIIT         NIITTable
}

// FederalSchedule returns the progressive federal bracket table for a status,
// falling back to the single table when the status has no entry.
func (y *YearTable) FederalSchedule(status FilingStatus) Schedule {
	if s, ok := y.Federal[status]; ok {
		return s
	}
	return y.Federal[Single]
}

// CapitalGainsSchedule returns the long-term capital-gains bracket table for
// a status, falling back to the single table.
func (y *YearTable) CapitalGainsSchedule(status FilingStatus) Schedule {
	if s, ok := y.CapitalGains[status]; ok {
		return s
	}
	return y.CapitalGains[Single]
}

// Tables is the full set of versioned tax data: per-year federal tables plus
// the flat state rates.
type Tables struct {
	years  map[int]*YearTable
	sorted []int // known years, ascending
	states map[string]decimal.Decimal
}

// Year returns the table for the given tax year. When the year is unknown it
// falls back to the nearest known year (preferring the later on a tie) and
// reports approximate=true.
func (t *Tables) Year(year int) (table *YearTable, approximate bool) {
	if y, ok := t.years[year]; ok {
		return y, false
	}
	nearest := t.sorted[0]
	for _, y := range t.sorted {
		dy, dn := year-y, year-nearest
		if dy < 0 {
			dy = -dy
		}
		if dn < 0 {
			dn = -dn
		}
		if dy < dn || (dy == dn && y > nearest) {
			nearest = y
		}
	}
	return t.years[nearest], true
}

// Years lists the known tax years in ascending order.
func (t *Tables) Years() []int { return append([]int(nil), t.sorted...) }

// StateRate returns the flat rate for a state key (case-insensitive). An
// unknown state yields a zero rate and ok=false; callers treat that as the
// missing-data fallback rather than an error.
func (t *Tables) StateRate(state string) (rate decimal.Decimal, ok bool) {
	rate, ok = t.states[strings.ToUpper(strings.TrimSpace(state))]
	return rate, ok
}

// States lists the known state keys in ascending order.
func (t *Tables) States() []string {
	keys := make([]string, 0, len(t.states))
	for k := range t.states {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var defaultTables = sync.OnceValue(func() *Tables {
	t, err := ParseTables(tablesYAML)
	if err != nil {
		// The embedded tables are part of the build; failing to parse
		// them is a programming error.
		panic(fmt.Sprintf("embedded tables.yaml: %v", err))
	}
	return t
})

// DefaultTables returns the embedded tax tables, parsed once per process.
func DefaultTables() *Tables { return defaultTables() }

// raw yaml shapes, converted into the typed tables after decoding.

type rawBracket struct {
	Min  decimal.Decimal `yaml:"min"`
	Max  decimal.Decimal `yaml:"max"`
	Rate decimal.Decimal `yaml:"rate"`
}

type rawAMT struct {
	LowRate    decimal.Decimal            `yaml:"low_rate"`
	HighRate   decimal.Decimal            `yaml:"high_rate"`
	Breakpoint map[string]decimal.Decimal `yaml:"breakpoint"`
	Exemption  map[string]decimal.Decimal `yaml:"exemption"`
	Phaseout   map[string]decimal.Decimal `yaml:"phaseout"`
}

type rawMedicare struct {
	Rate                decimal.Decimal            `yaml:"rate"`
	AdditionalRate      decimal.Decimal            `yaml:"additional_rate"`
	AdditionalThreshold map[string]decimal.Decimal `yaml:"additional_threshold"`
}

type rawNIIT struct {
	Rate      decimal.Decimal            `yaml:"rate"`
	Threshold map[string]decimal.Decimal `yaml:"threshold"`
}

type rawYear struct {
	Federal      map[string][]rawBracket `yaml:"federal"`
	CapitalGains map[string][]rawBracket `yaml:"capital_gains"`
	AMT          rawAMT                  `yaml:"amt"`
	Medicare     rawMedicare             `yaml:"medicare"`
	NIIT         rawNIIT                 `yaml:"niit"`
}

type rawTables struct {
	States map[string]decimal.Decimal `yaml:"states"`
	Years  map[int]rawYear            `yaml:"years"`
}

// ParseTables decodes a YAML table set and validates its shape.
func ParseTables(data []byte) (*Tables, error) {
	var raw rawTables
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("could not decode tables: %w", err)
	}
	if len(raw.Years) == 0 {
		return nil, fmt.Errorf("tables define no tax years")
	}

	t := &Tables{
		years:  make(map[int]*YearTable, len(raw.Years)),
		states: make(map[string]decimal.Decimal, len(raw.States)),
	}
	for state, rate := range raw.States {
		t.states[strings.ToUpper(state)] = rate
	}
	for year, ry := range raw.Years {
		yt, err := buildYear(year, ry)
		if err != nil {
			return nil, fmt.Errorf("year %d: %w", year, err)
		}
		t.years[year] = yt
		t.sorted = append(t.sorted, year)
	}
	sort.Ints(t.sorted)
	return t, nil
}

func buildYear(year int, raw rawYear) (*YearTable, error) {
	yt := &YearTable{
		Year:         year,
		Federal:      make(map[FilingStatus]Schedule, len(raw.Federal)),
		CapitalGains: make(map[FilingStatus]Schedule, len(raw.CapitalGains)),
	}
	var err error
	if yt.Federal, err = buildSchedules(raw.Federal); err != nil {
		return nil, fmt.Errorf("federal: %w", err)
	}
	if yt.CapitalGains, err = buildSchedules(raw.CapitalGains); err != nil {
		return nil, fmt.Errorf("capital_gains: %w", err)
	}
	if _, ok := yt.Federal[Single]; !ok {
		return nil, fmt.Errorf("federal table must at least define the single status")
	}
	if _, ok := yt.CapitalGains[Single]; !ok {
		return nil, fmt.Errorf("capital_gains table must at least define the single status")
	}

	yt.AMT = AMTTable{
		LowRate:  raw.AMT.LowRate,
		HighRate: raw.AMT.HighRate,
	}
	if yt.AMT.Breakpoint, err = buildAmounts(raw.AMT.Breakpoint); err != nil {
		return nil, fmt.Errorf("amt breakpoint: %w", err)
	}
	if yt.AMT.Exemption, err = buildAmounts(raw.AMT.Exemption); err != nil {
		return nil, fmt.Errorf("amt exemption: %w", err)
	}
	if yt.AMT.Phaseout, err = buildAmounts(raw.AMT.Phaseout); err != nil {
		return nil, fmt.Errorf("amt phaseout: %w", err)
	}

	yt.Medicare = MedicareTable{
		Rate:           raw.Medicare.Rate,
		AdditionalRate: raw.Medicare.AdditionalRate,
	}
	if yt.Medicare.AdditionalThreshold, err = buildAmounts(raw.Medicare.AdditionalThreshold); err != nil {
		return nil, fmt.Errorf("medicare threshold: %w", err)
	}

	yt.NIIT = NIITTable{Rate: raw.NIIT.Rate}
	if yt.NIIT.Threshold, err = buildAmounts(raw.NIIT.Threshold); err != nil {
		return nil, fmt.Errorf("niit threshold: %w", err)
	}
	return yt, nil
}

func buildSchedules(raw map[string][]rawBracket) (map[FilingStatus]Schedule, error) {
	schedules := make(map[FilingStatus]Schedule, len(raw))
	for name, brackets := range raw {
		status, err := ParseFilingStatus(name)
		if err != nil {
			return nil, err
		}
		s := make(Schedule, 0, len(brackets))
		prevMax := decimal.Zero
		for i, b := range brackets {
			if !b.Min.Equal(prevMax) {
				return nil, fmt.Errorf("%s bracket %d: min %s does not continue previous max %s",
					name, i, b.Min, prevMax)
			}
			if !b.Max.IsZero() && b.Max.LessThanOrEqual(b.Min) {
				return nil, fmt.Errorf("%s bracket %d: max %s not above min %s", name, i, b.Max, b.Min)
			}
			s = append(s, Bracket{Min: M(b.Min), Max: M(b.Max), Rate: b.Rate})
			prevMax = b.Max
		}
		if len(s) == 0 || !s[len(s)-1].Max.IsZero() {
			return nil, fmt.Errorf("%s: last bracket must be unbounded", name)
		}
		schedules[status] = s
	}
	return schedules, nil
}

func buildAmounts(raw map[string]decimal.Decimal) (map[FilingStatus]Money, error) {
	amounts := make(map[FilingStatus]Money, len(raw))
	for name, amount := range raw {
		status, err := ParseFilingStatus(name)
		if err != nil {
			return nil, err
		}
		amounts[status] = M(amount)
	}
	return amounts, nil
}
