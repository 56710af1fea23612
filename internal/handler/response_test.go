package handler_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"fynix/internal/domain"
	"fynix/internal/handler"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrInvoiceNotFound, http.StatusNotFound, "INVOICE_NOT_FOUND"},
		{fmt.Errorf("workItemRepo.GetByIDs: %w", domain.ErrWorkItemNotFound), http.StatusNotFound, "WORK_ITEM_NOT_FOUND"},
		{domain.ErrPresetNotFound, http.StatusNotFound, "PRESET_NOT_FOUND"},
		{domain.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{domain.ErrNoWorkItemsSelected, http.StatusBadRequest, "NO_WORK_ITEMS"},
		{domain.ErrInvalidTaxConfig, http.StatusBadRequest, "INVALID_TAX_CONFIG"},
		{domain.ErrInvalidTransition, http.StatusConflict, "INVALID_TRANSITION"},
		{domain.ErrWorkItemNotBillable, http.StatusConflict, "WORK_ITEM_NOT_BILLABLE"},
		{domain.ErrDuplicateInvoiceNumber, http.StatusConflict, "DUPLICATE_INVOICE_NUMBER"},
		{domain.ErrExportFailed, http.StatusBadGateway, "EXPORT_FAILED"},
		{errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			status, code, _ := handler.MapDomainError(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, code)
		})
	}
}
