// Package canon classifies formatting results and aggregates them over a
// batch of files.
//
// [Classify] is a pure equality predicate: it knows nothing about why two
// texts differ. [Summary] folds per-file [Outcome]s into the process result,
// where any failure outranks any rewrite, which outranks all-unchanged.
package canon

import (
	"fmt"
	"time"
)

// Status is the outcome of formatting one document.
type Status int

const (
	// Unchanged means the source already is in canonical form.
	Unchanged Status = iota
	// Rewritten means the canonical form differs from the source.
	Rewritten
	// Failed means the document could not be read, parsed or written.
	Failed
)

// String returns the lowercase status name.
func (s Status) String() string {
	switch s {
	case Unchanged:
		return "unchanged"
	case Rewritten:
		return "rewritten"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Process exit codes derived from a batch.
const (
	ExitUnchanged = 0
	ExitFailed    = 1
	ExitRewritten = 2
)

// Classify compares the original source bytes with the rendered text.
// Any difference, including whitespace, line endings or the declaration,
// yields Rewritten.
func Classify(original []byte, rendered string) Status {
	if string(original) == rendered {
		return Unchanged
	}
	return Rewritten
}

// Outcome is the result for a single document.
type Outcome struct {
	Path     string
	Status   Status
	Err      error // set when Status is Failed
	Cached   bool  // canonical form confirmed from cache without parsing
	Duration time.Duration
}

// Summary aggregates outcomes after every document has been attempted.
type Summary struct {
	Outcomes []Outcome
}

// Add records an outcome.
func (s *Summary) Add(o Outcome) {
	s.Outcomes = append(s.Outcomes, o)
}

// Count returns how many outcomes have the given status.
func (s *Summary) Count(status Status) int {
	n := 0
	for _, o := range s.Outcomes {
		if o.Status == status {
			n++
		}
	}
	return n
}

// Failures returns the failed outcomes in input order.
func (s *Summary) Failures() []Outcome {
	var out []Outcome
	for _, o := range s.Outcomes {
		if o.Status == Failed {
			out = append(out, o)
		}
	}
	return out
}

// Status returns the batch status: Failed if any document failed, else
// Rewritten if any was rewritten, else Unchanged.
func (s *Summary) Status() Status {
	result := Unchanged
	for _, o := range s.Outcomes {
		if o.Status > result {
			result = o.Status
		}
	}
	return result
}

// ExitCode maps the batch status to a process exit code.
func (s *Summary) ExitCode() int {
	switch s.Status() {
	case Failed:
		return ExitFailed
	case Rewritten:
		return ExitRewritten
	default:
		return ExitUnchanged
	}
}
