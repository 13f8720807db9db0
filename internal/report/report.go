package report

// StepResult captures the outcome of a single harness step.
type StepResult struct {
	Name    string         `json:"name"`
	Success bool           `json:"success"`
	Status  *int           `json:"status,omitempty"`
	Message string         `json:"message,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
}

// Summary aggregates a full run of the harness.
type Summary struct {
	Total   int          `json:"total"`
	Passed  int          `json:"passed"`
	Failed  int          `json:"failed"`
	Details []StepResult `json:"details"`
}

// OK reports whether the whole run passed.
func (s Summary) OK() bool {
	return s.Failed == 0
}

// Log is the ordered, append-only record of step results for one run.
// Entries are never mutated after they are appended; insertion order is
// execution order.
type Log struct {
	entries []StepResult
}

// Append records a result. Prior entries are left untouched.
func (l *Log) Append(r StepResult) {
	l.entries = append(l.entries, r)
}

// Len returns the number of recorded results.
func (l *Log) Len() int {
	return len(l.entries)
}

// Results returns a copy of the recorded results in execution order.
func (l *Log) Results() []StepResult {
	out := make([]StepResult, len(l.entries))
	copy(out, l.entries)
	return out
}

// Summary derives the run summary from the current log contents.
func (l *Log) Summary() Summary {
	passed := 0
	for _, r := range l.entries {
		if r.Success {
			passed++
		}
	}
	return Summary{
		Total:   len(l.entries),
		Passed:  passed,
		Failed:  len(l.entries) - passed,
		Details: l.Results(),
	}
}

// StatusOf is a convenience for building the optional status pointer.
func StatusOf(code int) *int {
	return &code
}
