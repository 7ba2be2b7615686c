package harness

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/roach88/leapscale/internal/leapsec"
	"github.com/roach88/leapscale/internal/scale"
)

// ErrorCodeOther is recorded for failures that carry no scale error code,
// such as malformed step input.
const ErrorCodeOther = "ERROR"

// Harness is the step executor. It holds the current UTC and TAI instants
// of a running scenario.
type Harness struct {
	rules  leapsec.Rules
	logger *slog.Logger

	utc    scale.UTCInstant
	hasUTC bool
	tai    scale.TAIInstant
	hasTAI bool
}

// Run executes a test scenario and returns the result.
//
// A step failing with an unexpected error, or producing a value other than
// the expected one, marks the result as failed but execution continues.
// Run itself only fails when the scenario cannot be executed at all: its
// rules cannot be built, or a step needs state no earlier step produced.
func Run(scenario *Scenario) (*Result, error) {
	return RunWithLogger(scenario, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// RunWithLogger is Run with step logging sent to logger.
func RunWithLogger(scenario *Scenario, logger *slog.Logger) (*Result, error) {
	rules, err := scenario.Rules.BuildRules("scenario:" + scenario.Name)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: rules: %w", scenario.Name, err)
	}

	h := &Harness{rules: rules, logger: logger}
	result := NewResult()
	result.Rules = rules.Name()

	for i, step := range scenario.Steps {
		value, stepErr, err := h.execute(step)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: steps[%d] (%s): %w", scenario.Name, i, step.Op, err)
		}

		sr := StepResult{Step: i, Op: step.Op, Value: value}
		if stepErr != nil {
			sr.Error = errorCode(stepErr)
		}
		result.AddStep(sr)
		h.logger.Debug("step", "scenario", scenario.Name, "index", i, "op", step.Op, "value", value, "error", stepErr)

		checkExpect(result, i, step, sr, stepErr)
	}

	return result, nil
}

func checkExpect(result *Result, i int, step Step, sr StepResult, stepErr error) {
	want := step.Expect
	switch {
	case want == nil:
		if stepErr != nil {
			result.AddError(fmt.Sprintf("steps[%d] (%s): unexpected error: %v", i, step.Op, stepErr))
		}
	case want.Error != "":
		if sr.Error != want.Error {
			got := sr.Error
			if got == "" {
				got = fmt.Sprintf("value %q", sr.Value)
			}
			result.AddError(fmt.Sprintf("steps[%d] (%s): expected error %s, got %s", i, step.Op, want.Error, got))
		}
	case stepErr != nil:
		result.AddError(fmt.Sprintf("steps[%d] (%s): unexpected error: %v", i, step.Op, stepErr))
	case want.Value != "" && want.Value != sr.Value:
		result.AddError(fmt.Sprintf("steps[%d] (%s): expected %q, got %q", i, step.Op, want.Value, sr.Value))
	}
}

// execute runs one step. stepErr is the operation's own failure, which the
// scenario may expect; err means the step could not run.
func (h *Harness) execute(step Step) (value string, stepErr error, err error) {
	switch step.Op {
	case OpUTC:
		var u scale.UTCInstant
		if step.At != "" {
			u, stepErr = scale.ParseUTCWithRules(step.At, h.rules)
		} else {
			u, stepErr = scale.NewUTCInstantWithRules(*step.MJD, *step.NanoOfDay, h.rules)
		}
		return h.setUTC(u, stepErr)

	case OpTAI:
		return h.setTAI(scale.NewTAIInstant(*step.Seconds, step.Nanos))

	case OpFromTAI:
		if !h.hasTAI {
			return "", nil, errors.New("no current TAI instant")
		}
		return h.setUTC(scale.UTCFromTAIWithRules(h.tai, h.rules))

	case OpFromTime:
		t, perr := time.Parse(time.RFC3339Nano, step.Time)
		if perr != nil {
			return "", perr, nil
		}
		return h.setUTC(scale.UTCFromTimeWithRules(t, h.rules))
	}

	if !h.hasUTC {
		return "", nil, errors.New("no current UTC instant")
	}

	switch step.Op {
	case OpToTAI:
		return h.setTAI(h.utc.ToTAI())

	case OpToTime:
		t, terr := h.utc.ToTime()
		if terr != nil {
			return "", terr, nil
		}
		return t.Format(time.RFC3339Nano), nil, nil

	case OpPlus, OpMinus:
		d, perr := scale.ParseDuration(step.Duration)
		if perr != nil {
			return "", perr, nil
		}
		if step.Op == OpPlus {
			return h.setUTC(h.utc.Plus(d))
		}
		return h.setUTC(h.utc.Minus(d))

	case OpUntil:
		to, perr := scale.ParseUTCWithRules(step.To, h.rules)
		if perr != nil {
			return "", perr, nil
		}
		d, derr := h.utc.DurationUntil(to)
		if derr != nil {
			return "", derr, nil
		}
		return d.String(), nil, nil

	case OpWithDay:
		return h.setUTC(h.utc.WithModifiedJulianDay(*step.MJD))

	case OpWithNano:
		return h.setUTC(h.utc.WithNanoOfDay(*step.NanoOfDay))
	}

	return "", nil, fmt.Errorf("unknown op %q", step.Op)
}

func (h *Harness) setUTC(u scale.UTCInstant, stepErr error) (string, error, error) {
	if stepErr != nil {
		return "", stepErr, nil
	}
	h.utc, h.hasUTC = u, true
	return u.String(), nil, nil
}

func (h *Harness) setTAI(t scale.TAIInstant, stepErr error) (string, error, error) {
	if stepErr != nil {
		return "", stepErr, nil
	}
	h.tai, h.hasTAI = t, true
	return t.String(), nil, nil
}

// errorCode maps an error to the code scenarios expect.
func errorCode(err error) string {
	var se *scale.Error
	if errors.As(err, &se) {
		return string(se.Code)
	}
	return ErrorCodeOther
}
