package validator

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"fynix/internal/billing"
	"fynix/internal/domain"
)

// rule is a Validator backed by a check function.
type rule struct {
	key      string
	name     string
	severity domain.ValidationSeverity
	cause    error
	check    func(*domain.Invoice) []Result
}

func (r *rule) RuleKey() string                     { return r.key }
func (r *rule) RuleName() string                    { return r.name }
func (r *rule) Severity() domain.ValidationSeverity { return r.severity }

func (r *rule) Validate(inv *domain.Invoice) []Result {
	results := r.check(inv)
	for i := range results {
		results[i].RuleKey = r.key
		results[i].Severity = r.severity
		if !results[i].Passed {
			results[i].Cause = r.cause
		}
	}
	return results
}

func result(passed bool, field, expected, actual, name string) Result {
	msg := fmt.Sprintf("%s: %s ok", name, field)
	if !passed {
		msg = fmt.Sprintf("%s: %s expected %s, got %q", name, field, expected, actual)
	}
	return Result{Passed: passed, FieldPath: field, ExpectedValue: expected, ActualValue: actual, Message: msg}
}

func nonNegative(name, field string, v decimal.Decimal) Result {
	return result(!v.IsNegative(), field, ">= 0", v.String(), name)
}

// BuiltinValidators returns the rules applied before an invoice is sent.
func BuiltinValidators() []Validator {
	return []Validator{
		&rule{
			key: "required.client", name: "Client profile", severity: domain.ValidationSeverityError,
			cause: domain.ErrMissingClient,
			check: func(inv *domain.Invoice) []Result {
				name := strings.TrimSpace(inv.Client.Name)
				return []Result{result(name != "", "client.name", "non-empty value", name, "Client profile")}
			},
		},
		&rule{
			key: "required.line_items", name: "Line items", severity: domain.ValidationSeverityError,
			cause: domain.ErrEmptyLineItems,
			check: func(inv *domain.Invoice) []Result {
				filled := 0
				for i := range inv.LineItems {
					if !inv.LineItems[i].Incomplete() {
						filled++
					}
				}
				return []Result{result(filled > 0, "line_items", "at least one described line", fmt.Sprint(filled), "Line items")}
			},
		},
		&rule{
			key: "line_item.description", name: "Line description", severity: domain.ValidationSeverityWarning,
			check: func(inv *domain.Invoice) []Result {
				out := make([]Result, 0, len(inv.LineItems))
				for i := range inv.LineItems {
					l := &inv.LineItems[i]
					out = append(out, result(!l.Incomplete(), fmt.Sprintf("line_items[%d].description", i), "non-empty value", l.Description, "Line description"))
				}
				return out
			},
		},
		&rule{
			key: "amount.non_negative", name: "Non-negative amounts", severity: domain.ValidationSeverityError,
			cause: domain.ErrNegativeAmount,
			check: func(inv *domain.Invoice) []Result {
				out := make([]Result, 0, 2*len(inv.LineItems)+1)
				for i := range inv.LineItems {
					l := &inv.LineItems[i]
					out = append(out,
						nonNegative("Non-negative amounts", fmt.Sprintf("line_items[%d].quantity", i), l.Quantity),
						nonNegative("Non-negative amounts", fmt.Sprintf("line_items[%d].unit_price", i), l.UnitPrice),
					)
				}
				return append(out, nonNegative("Non-negative amounts", "discount", inv.Discount))
			},
		},
		&rule{
			key: "tax.config", name: "Tax configuration", severity: domain.ValidationSeverityError,
			cause: domain.ErrInvalidTaxConfig,
			check: func(inv *domain.Invoice) []Result {
				err := inv.TaxConfig.Validate()
				actual := fmt.Sprintf("%s %s%%", inv.TaxConfig.Mode, inv.TaxConfig.Rate)
				return []Result{result(err == nil, "tax_config", "known mode with rate >= 0", actual, "Tax configuration")}
			},
		},
		&rule{
			key: "math.total", name: "Totals", severity: domain.ValidationSeverityError,
			cause: domain.ErrValidation,
			check: func(inv *domain.Invoice) []Result {
				want := billing.ComputeTotals(inv.LineItems, inv.Discount, inv.TaxConfig)
				return []Result{result(want.Total.Equal(inv.Totals.Total), "totals.total", want.Total.String(), inv.Totals.Total.String(), "Totals")}
			},
		},
	}
}
