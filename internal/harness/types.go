package harness

// StepResult is the recorded outcome of one step.
type StepResult struct {
	Step  int    `json:"step"`
	Op    string `json:"op"`
	Value string `json:"value,omitempty"`
	Error string `json:"error,omitempty"`
}

// Result is the outcome of a test scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if all expect clauses match.
	Pass bool `json:"pass"`

	// Rules names the leap-second rules the scenario ran under.
	Rules string `json:"rules"`

	// Trace contains one entry per executed step, in order.
	Trace []StepResult `json:"trace"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []StepResult{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddStep appends a step outcome to the trace.
func (r *Result) AddStep(step StepResult) {
	r.Trace = append(r.Trace, step)
}
