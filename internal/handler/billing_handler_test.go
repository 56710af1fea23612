package handler_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"fynix/internal/domain"
	"fynix/internal/handler"
	"fynix/internal/service"
	"fynix/mocks"
)

func TestBillingHandler_ListUnbilled_PassesFilter(t *testing.T) {
	svc := new(mocks.MockBillingService)
	h := handler.NewBillingHandler(svc)
	tenantID := uuid.New()

	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.On("ListUnbilled", mock.Anything, tenantID, mock.MatchedBy(func(f domain.WorkItemFilter) bool {
		return f.ClientID == "acme" && f.Search == "logo" && f.DueFrom != nil && f.DueFrom.Equal(from) && f.DueTo == nil
	})).Return(&domain.UnbilledSummary{Total: decimal.NewFromInt(500)}, nil)

	c, w := newContext(http.MethodGet, "/api/v1/billing/unbilled?client=acme&q=logo&from=2025-01-01", nil, tenantID)
	h.ListUnbilled(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode(t, w).Success)
	svc.AssertExpectations(t)
}

func TestBillingHandler_ListUnbilled_InvalidDate(t *testing.T) {
	svc := new(mocks.MockBillingService)
	h := handler.NewBillingHandler(svc)

	c, w := newContext(http.MethodGet, "/api/v1/billing/unbilled?to=15-01-2025", nil, uuid.New())
	h.ListUnbilled(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_REQUEST", decode(t, w).Error.Code)
	svc.AssertNotCalled(t, "ListUnbilled", mock.Anything, mock.Anything, mock.Anything)
}

func TestBillingHandler_ListUnbilled_MissingTenant(t *testing.T) {
	h := handler.NewBillingHandler(new(mocks.MockBillingService))

	c, w := newContext(http.MethodGet, "/api/v1/billing/unbilled", nil, uuid.Nil)
	h.ListUnbilled(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBillingHandler_CreateDraft_Success(t *testing.T) {
	svc := new(mocks.MockBillingService)
	h := handler.NewBillingHandler(svc)
	tenantID := uuid.New()
	itemID := uuid.New()

	svc.On("CreateDraft", mock.Anything, mock.MatchedBy(func(in *service.CreateDraftInput) bool {
		return in.TenantID == tenantID && in.ClientID == "acme" &&
			len(in.WorkItemIDs) == 1 && in.WorkItemIDs[0] == itemID &&
			in.IssueDate != nil && in.IssueDate.Day() == 15
	})).Return(&domain.Invoice{ID: uuid.New(), InvoiceNumber: "INV-202501-1234", Status: domain.InvoiceStatusDraft}, nil)

	c, w := newContext(http.MethodPost, "/api/v1/billing/drafts", gin.H{
		"client_id":     "acme",
		"work_item_ids": []string{itemID.String()},
		"issue_date":    "2025-01-15",
	}, tenantID)
	h.CreateDraft(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}

func TestBillingHandler_CreateDraft_MissingClient(t *testing.T) {
	h := handler.NewBillingHandler(new(mocks.MockBillingService))

	c, w := newContext(http.MethodPost, "/api/v1/billing/drafts", gin.H{"work_item_ids": []string{uuid.NewString()}}, uuid.New())
	h.CreateDraft(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBillingHandler_CreateDraft_ClientMismatch(t *testing.T) {
	svc := new(mocks.MockBillingService)
	h := handler.NewBillingHandler(svc)

	svc.On("CreateDraft", mock.Anything, mock.Anything).Return(nil, domain.ErrClientMismatch)

	c, w := newContext(http.MethodPost, "/api/v1/billing/drafts", gin.H{
		"client_id":     "acme",
		"work_item_ids": []string{uuid.NewString()},
	}, uuid.New())
	h.CreateDraft(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "CLIENT_MISMATCH", decode(t, w).Error.Code)
}
