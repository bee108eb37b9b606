package intake

import (
	"errors"
	"fmt"
)

// MaxFiles is the default cap on the number of files sent in one review.
const MaxFiles = 100

// ErrTooManyFiles is returned by callers that refuse an over-limit batch.
var ErrTooManyFiles = errors.New("too many files selected")

// Batch is the result of filtering one selection. It is replaced wholesale on
// every new selection.
type Batch struct {
	// Total is the number of candidates offered, before filtering.
	Total int
	// Accepted holds the reviewable files in input order. It is empty when
	// LimitExceeded is set.
	Accepted []Candidate
	// Limit is the cap the batch was checked against.
	Limit int
	// LimitExceeded is true when more than Limit files passed the filter.
	LimitExceeded bool
}

// NewBatch filters candidates with rules and applies the file cap. A limit of
// zero or less uses [MaxFiles].
func NewBatch(candidates []Candidate, rules Rules, limit int) Batch {
	if limit <= 0 {
		limit = MaxFiles
	}
	b := Batch{
		Total:    len(candidates),
		Accepted: Filter(rules, candidates),
		Limit:    limit,
	}
	if len(b.Accepted) > limit {
		b.Accepted = []Candidate{}
		b.LimitExceeded = true
	}
	return b
}

// Paths returns the accepted file paths in order.
func (b Batch) Paths() []string {
	paths := make([]string, len(b.Accepted))
	for i, c := range b.Accepted {
		paths[i] = c.Path
	}
	return paths
}

// Err returns ErrTooManyFiles (wrapped with the limit) if the batch was
// downgraded, and nil otherwise.
func (b Batch) Err() error {
	if !b.LimitExceeded {
		return nil
	}
	return fmt.Errorf("%w: more than %d reviewable files; select a smaller folder", ErrTooManyFiles, b.Limit)
}

// Summary describes the batch for display.
func (b Batch) Summary() string {
	if b.LimitExceeded {
		return fmt.Sprintf("%d files found, more than %d are reviewable; nothing will be sent", b.Total, b.Limit)
	}
	return fmt.Sprintf("%d files found, %d will be sent", b.Total, len(b.Accepted))
}
