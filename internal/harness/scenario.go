package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/roach88/leapscale/internal/leapsec"
)

// Scenario defines a conformance test scenario: a sequence of operations on
// UTC and TAI instants with their expected outcomes.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Rules selects the leap-second rules. Empty means the system table.
	Rules RulesSpec `yaml:"rules,omitempty"`

	// Steps are executed in order.
	Steps []Step `yaml:"steps"`
}

// RulesSpec selects the leap-second rules for a scenario. At most one of
// Table or the day lists may be set.
type RulesSpec struct {
	// Table is a table file, relative to the scenario file.
	Table string `yaml:"table,omitempty"`

	// LeapDays end with an inserted leap second.
	LeapDays []int64 `yaml:"leap_days,omitempty"`

	// RemovedDays end one second early.
	RemovedDays []int64 `yaml:"removed_days,omitempty"`
}

// Step is one operation. Which inputs are read depends on Op.
type Step struct {
	Op string `yaml:"op"`

	// UTC inputs (utc, with_day, with_nano).
	MJD       *int64 `yaml:"mjd,omitempty"`
	NanoOfDay *int64 `yaml:"nano_of_day,omitempty"`
	At        string `yaml:"at,omitempty"`

	// TAI inputs (tai).
	Seconds *int64 `yaml:"seconds,omitempty"`
	Nanos   int64  `yaml:"nanos,omitempty"`

	// Duration for plus and minus, in ParseDuration syntax.
	Duration string `yaml:"duration,omitempty"`

	// Time for from_time, RFC 3339.
	Time string `yaml:"time,omitempty"`

	// To is the target of until, in ParseUTC syntax.
	To string `yaml:"to,omitempty"`

	// Expect is optional; a step without it must succeed but may produce
	// any value.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect is the expected outcome of a step: a formatted value or an error
// code such as INVALID_ARGUMENT.
type Expect struct {
	Value string `yaml:"value,omitempty"`
	Error string `yaml:"error,omitempty"`
}

// Operation names.
const (
	OpUTC      = "utc"
	OpTAI      = "tai"
	OpToTAI    = "to_tai"
	OpFromTAI  = "from_tai"
	OpToTime   = "to_time"
	OpFromTime = "from_time"
	OpPlus     = "plus"
	OpMinus    = "minus"
	OpUntil    = "until"
	OpWithDay  = "with_day"
	OpWithNano = "with_nano"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
// A rules table path is resolved against the scenario's directory.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}

	if t := scenario.Rules.Table; t != "" && !filepath.IsAbs(t) {
		scenario.Rules.Table = filepath.Join(filepath.Dir(path), t)
	}
	return scenario, nil
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict decoding catches typos like "step:" vs "steps:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	if s.Rules.Table != "" && (len(s.Rules.LeapDays) > 0 || len(s.Rules.RemovedDays) > 0) {
		return fmt.Errorf("rules: table cannot be combined with leap_days or removed_days")
	}

	for i, step := range s.Steps {
		if err := validateStep(step); err != nil {
			return fmt.Errorf("steps[%d]: %w", i, err)
		}
	}

	return nil
}

func validateStep(step Step) error {
	switch step.Op {
	case OpUTC:
		if step.At == "" && (step.MJD == nil || step.NanoOfDay == nil) {
			return fmt.Errorf("utc requires at, or mjd and nano_of_day")
		}
	case OpTAI:
		if step.Seconds == nil {
			return fmt.Errorf("tai requires seconds")
		}
	case OpPlus, OpMinus:
		if step.Duration == "" {
			return fmt.Errorf("%s requires duration", step.Op)
		}
	case OpFromTime:
		if step.Time == "" {
			return fmt.Errorf("from_time requires time")
		}
	case OpUntil:
		if step.To == "" {
			return fmt.Errorf("until requires to")
		}
	case OpWithDay:
		if step.MJD == nil {
			return fmt.Errorf("with_day requires mjd")
		}
	case OpWithNano:
		if step.NanoOfDay == nil {
			return fmt.Errorf("with_nano requires nano_of_day")
		}
	case OpToTAI, OpFromTAI, OpToTime:
	case "":
		return fmt.Errorf("op is required")
	default:
		return fmt.Errorf("unknown op %q", step.Op)
	}

	if step.Expect != nil && step.Expect.Value != "" && step.Expect.Error != "" {
		return fmt.Errorf("expect: value and error are mutually exclusive")
	}
	return nil
}

// BuildRules returns the leap-second rules the scenario selects.
func (r RulesSpec) BuildRules(name string) (leapsec.Rules, error) {
	if r.Table != "" {
		t, err := leapsec.LoadFile(r.Table)
		if err != nil {
			return nil, err
		}
		return t, nil
	}
	if len(r.LeapDays) == 0 && len(r.RemovedDays) == 0 {
		return leapsec.System(), nil
	}

	type change struct {
		day   int64
		delta int64
	}
	changes := make([]change, 0, len(r.LeapDays)+len(r.RemovedDays))
	for _, d := range r.LeapDays {
		changes = append(changes, change{d, 1})
	}
	for _, d := range r.RemovedDays {
		changes = append(changes, change{d, -1})
	}
	slices.SortFunc(changes, func(a, b change) int {
		switch {
		case a.day < b.day:
			return -1
		case a.day > b.day:
			return 1
		}
		return 0
	})

	const base = 10
	offset := int64(base)
	transitions := make([]leapsec.Transition, len(changes))
	for i, c := range changes {
		offset += c.delta
		transitions[i] = leapsec.Transition{Day: c.day, Offset: offset}
	}
	t, err := leapsec.NewTable(name, base, transitions)
	if err != nil {
		return nil, err
	}
	return t, nil
}
