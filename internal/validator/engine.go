package validator

import (
	"errors"
	"strings"

	"fynix/internal/domain"
)

// Report is the full set of results for one invoice.
type Report struct {
	Results  []Result `json:"results"`
	Errors   int      `json:"errors"`
	Warnings int      `json:"warnings"`
}

// Failures returns failed results of the given severity.
func (r *Report) Failures(sev domain.ValidationSeverity) []Result {
	var out []Result
	for _, res := range r.Results {
		if !res.Passed && res.Severity == sev {
			out = append(out, res)
		}
	}
	return out
}

// ValidationError is returned when an invoice fails error-severity rules.
// It matches domain.ErrValidation and the sentinel of each failed rule.
type ValidationError struct {
	Failures []Result
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		msgs = append(msgs, f.Message)
	}
	return domain.ErrValidation.Error() + ": " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() []error {
	errs := []error{domain.ErrValidation}
	seen := map[error]bool{domain.ErrValidation: true}
	for _, f := range e.Failures {
		if f.Cause != nil && !seen[f.Cause] {
			seen[f.Cause] = true
			errs = append(errs, f.Cause)
		}
	}
	return errs
}

// AsValidationError extracts a *ValidationError from err.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}

// Engine runs registered rules against invoices.
type Engine struct {
	registry *Registry
}

// NewEngine creates a validation engine. A nil registry uses the built-ins.
func NewEngine(registry *Registry) *Engine {
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &Engine{registry: registry}
}

// Check runs every rule and tallies failures.
func (e *Engine) Check(inv *domain.Invoice) *Report {
	rep := &Report{}
	for _, v := range e.registry.All() {
		for _, res := range v.Validate(inv) {
			rep.Results = append(rep.Results, res)
			if res.Passed {
				continue
			}
			if res.Severity == domain.ValidationSeverityError {
				rep.Errors++
			} else {
				rep.Warnings++
			}
		}
	}
	return rep
}

// ValidateForSend returns a *ValidationError when inv may not leave draft.
// Warnings do not block.
func (e *Engine) ValidateForSend(inv *domain.Invoice) error {
	rep := e.Check(inv)
	if rep.Errors == 0 {
		return nil
	}
	return &ValidationError{Failures: rep.Failures(domain.ValidationSeverityError)}
}
