package decision

import (
	"errors"
	"fmt"
	"strings"
)

// Field names a required input of the refund form.
type Field string

const (
	FieldShortlistsRequested Field = "shortlists_requested"
	FieldTotalSumRequested   Field = "total_sum_requested"
	FieldShortlistCount      Field = "shortlist_count"
	FieldFirstActivityDate   Field = "first_activity_date"
)

// ErrUndefinedRatio is returned when prior approvals exist but the
// requester has no shortlists to divide by.
var ErrUndefinedRatio = errors.New("refund ratio undefined: shortlist count is zero")

// ValidationResult lists every required field that failed, in form order.
type ValidationResult struct {
	Missing []Field
}

func (r ValidationResult) Valid() bool {
	return len(r.Missing) == 0
}

// Err returns a *ValidationError, or nil when the result is valid.
func (r ValidationResult) Err() error {
	if r.Valid() {
		return nil
	}
	return &ValidationError{Fields: r.Missing}
}

// ValidationError reports required fields that are missing or zero.
type ValidationError struct {
	Fields []Field
}

func (e *ValidationError) Error() string {
	names := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		names[i] = string(f)
	}
	return fmt.Sprintf("required fields missing or zero: %s", strings.Join(names, ", "))
}

// Has reports whether f is among the failing fields.
func (e *ValidationError) Has(f Field) bool {
	for _, field := range e.Fields {
		if field == f {
			return true
		}
	}
	return false
}

// Validate checks each required field independently.
func Validate(in Input) ValidationResult {
	var missing []Field
	if in.ShortlistsRequested <= 0 {
		missing = append(missing, FieldShortlistsRequested)
	}
	if !in.TotalSumRequested.IsPositive() {
		missing = append(missing, FieldTotalSumRequested)
	}
	if in.ShortlistCount <= 0 {
		missing = append(missing, FieldShortlistCount)
	}
	if in.FirstActivityDate == nil || in.FirstActivityDate.IsZero() {
		missing = append(missing, FieldFirstActivityDate)
	}
	return ValidationResult{Missing: missing}
}
