package validator_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fynix/internal/billing"
	"fynix/internal/domain"
	"fynix/internal/validator"
)

func readyInvoice() *domain.Invoice {
	inv := &domain.Invoice{
		Status: domain.InvoiceStatusDraft,
		Client: domain.Party{Name: "Acme Corp"},
		LineItems: []domain.LineItem{
			{Description: "Design", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(25000)},
		},
		TaxConfig: domain.TaxConfiguration{Mode: domain.TaxModeSingle, Name: "IGST", Rate: decimal.NewFromInt(18)},
	}
	billing.Recompute(inv)
	return inv
}

func TestValidateForSend_Passes(t *testing.T) {
	e := validator.NewEngine(nil)
	assert.NoError(t, e.ValidateForSend(readyInvoice()))
}

func TestValidateForSend_MissingClient(t *testing.T) {
	inv := readyInvoice()
	inv.Client.Name = "  "

	err := validator.NewEngine(nil).ValidateForSend(inv)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.True(t, errors.Is(err, domain.ErrMissingClient))
	assert.False(t, errors.Is(err, domain.ErrEmptyLineItems))

	ve, ok := validator.AsValidationError(err)
	require.True(t, ok)
	require.Len(t, ve.Failures, 1)
	assert.Equal(t, "client.name", ve.Failures[0].FieldPath)
}

func TestValidateForSend_EmptyLines(t *testing.T) {
	inv := readyInvoice()
	inv.LineItems = []domain.LineItem{{Description: " ", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(1)}}
	billing.Recompute(inv)

	err := validator.NewEngine(nil).ValidateForSend(inv)
	assert.ErrorIs(t, err, domain.ErrEmptyLineItems)

	inv.LineItems = nil
	billing.Recompute(inv)
	assert.ErrorIs(t, validator.NewEngine(nil).ValidateForSend(inv), domain.ErrEmptyLineItems)
}

func TestValidateForSend_NegativeAmounts(t *testing.T) {
	inv := readyInvoice()
	inv.LineItems[0].Quantity = decimal.NewFromInt(-1)
	billing.Recompute(inv)

	err := validator.NewEngine(nil).ValidateForSend(inv)
	assert.ErrorIs(t, err, domain.ErrNegativeAmount)
}

func TestValidateForSend_StaleTotals(t *testing.T) {
	inv := readyInvoice()
	inv.Totals.Total = decimal.NewFromInt(1)

	ve, ok := validator.AsValidationError(validator.NewEngine(nil).ValidateForSend(inv))
	require.True(t, ok)
	assert.Equal(t, "totals.total", ve.Failures[0].FieldPath)
}

func TestCheck_IncompleteLineIsWarning(t *testing.T) {
	inv := readyInvoice()
	inv.LineItems = append(inv.LineItems, domain.LineItem{Quantity: decimal.NewFromInt(1), UnitPrice: decimal.Zero})
	billing.Recompute(inv)

	e := validator.NewEngine(nil)
	rep := e.Check(inv)
	assert.Equal(t, 0, rep.Errors)
	assert.Equal(t, 1, rep.Warnings)
	assert.NoError(t, e.ValidateForSend(inv))
}

func TestRegistry(t *testing.T) {
	r := validator.DefaultRegistry()
	assert.NotNil(t, r.Get("required.client"))
	assert.Nil(t, r.Get("nope"))

	all := r.All()
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].RuleKey(), all[i].RuleKey())
	}
}
