// Package validator checks whether an invoice is ready to leave draft.
package validator

import (
	"fynix/internal/domain"
)

// Validator is the interface for a single built-in validation rule.
type Validator interface {
	Validate(inv *domain.Invoice) []Result
	RuleKey() string
	RuleName() string
	Severity() domain.ValidationSeverity
}

// Result is the outcome of one check against one field.
type Result struct {
	RuleKey       string                    `json:"rule_key"`
	Passed        bool                      `json:"passed"`
	Severity      domain.ValidationSeverity `json:"severity"`
	FieldPath     string                    `json:"field_path"`
	ExpectedValue string                    `json:"expected_value"`
	ActualValue   string                    `json:"actual_value"`
	Message       string                    `json:"message"`

	// Cause is the domain sentinel a failed error-severity result maps to.
	Cause error `json:"-"`
}
