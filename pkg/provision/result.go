package provision

import "github.com/lumenworks/installkit/pkg/types"

// Status classifies the outcome of one location's operation.
type Status int

const (
	// StatusDone means the shortcut was created or updated.
	StatusDone Status = iota
	// StatusSkipped means policy decided not to touch the location: an
	// opt-out, a present system sibling, or ReplaceExisting finding
	// nothing to replace. Skips never count as failures.
	StatusSkipped
	// StatusFailed means the operation was attempted and failed.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusDone:
		return "done"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the result of one location's operation.
type Outcome struct {
	Location types.ShortcutLocation
	Level    types.InstallLevel
	Path     string
	Status   Status
	Reason   string
	Err      error
}

// Result aggregates a provisioning call. The overall result is the
// logical AND of all attempted required operations; skipped-by-policy
// locations do not count against it.
type Result struct {
	Operation types.ShortcutOperation
	Level     types.InstallLevel
	Outcomes  []Outcome
}

// OK reports whether every attempted operation succeeded.
func (r *Result) OK() bool {
	for _, o := range r.Outcomes {
		if o.Status == StatusFailed {
			return false
		}
	}
	return true
}

// Failed returns the outcomes that failed.
func (r *Result) Failed() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Status == StatusFailed {
			out = append(out, o)
		}
	}
	return out
}

func (r *Result) record(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
}
