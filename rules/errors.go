package rules

import (
	"errors"
	"strings"
)

// ErrDataFetch marks a failure at the record-supply boundary. Callers treat
// it as an empty result set rather than a rule failure.
var ErrDataFetch = errors.New("data fetch failed")

// ValidationError is a hard business-constraint violation; the operation is
// aborted.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Issues, "; ")
}

// PermissionError is a failed role or ownership check.
type PermissionError struct {
	Reason string
}

func (e *PermissionError) Error() string { return "permission denied: " + e.Reason }

// AdvisoryError carries soft warnings. The operation may proceed once the
// caller confirms.
type AdvisoryError struct {
	Warnings []string
}

func (e *AdvisoryError) Error() string {
	return "confirmation required: " + strings.Join(e.Warnings, "; ")
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func IsPermission(err error) bool {
	var p *PermissionError
	return errors.As(err, &p)
}

func IsAdvisory(err error) bool {
	var a *AdvisoryError
	return errors.As(err, &a)
}
