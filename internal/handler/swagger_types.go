package handler

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fynix/internal/domain"
)

// Request bodies and swag documentation types.

// CreateDraftRequest selects unbilled work items for one client.
type CreateDraftRequest struct {
	ClientID    string      `json:"client_id" binding:"required" example:"acme"`
	WorkItemIDs []uuid.UUID `json:"work_item_ids" binding:"required"`
	IssueDate   *string     `json:"issue_date" example:"2025-01-15"`
	Finalize    bool        `json:"finalize" example:"false"`
}

// LineItemRequest is one line on a create or update request.
type LineItemRequest struct {
	ID          string          `json:"id"`
	Description string          `json:"description" example:"Website redesign"`
	Quantity    decimal.Decimal `json:"quantity" swaggertype:"string" example:"1"`
	UnitPrice   decimal.Decimal `json:"unit_price" swaggertype:"string" example:"25000"`
	WorkItemID  *uuid.UUID      `json:"work_item_id"`
}

// CreateInvoiceRequest creates a manual draft invoice.
type CreateInvoiceRequest struct {
	ClientID   string            `json:"client_id" binding:"required" example:"acme"`
	ClientName string            `json:"client_name" example:"Acme Ltd"`
	IssueDate  *string           `json:"issue_date" example:"2025-01-15"`
	LineItems  []LineItemRequest `json:"line_items"`
	Discount   *decimal.Decimal  `json:"discount" swaggertype:"string" example:"0"`
}

// UpdateInvoiceRequest edits a draft invoice. Omitted fields are unchanged.
type UpdateInvoiceRequest struct {
	ClientName          *string                  `json:"client_name"`
	Sender              *domain.Party            `json:"sender"`
	Client              *domain.Party            `json:"client"`
	IssueDate           *string                  `json:"issue_date" example:"2025-01-20"`
	DueDate             *string                  `json:"due_date" example:"2025-02-19"`
	CurrencyCode        *string                  `json:"currency_code" example:"INR"`
	LineItems           []LineItemRequest        `json:"line_items"`
	Discount            *decimal.Decimal         `json:"discount" swaggertype:"string"`
	TaxConfig           *domain.TaxConfiguration `json:"tax_config"`
	Memo                *string                  `json:"memo"`
	PaymentInstructions *string                  `json:"payment_instructions"`
	Footer              *string                  `json:"footer"`
}

// BulkPayRequest marks several invoices paid.
type BulkPayRequest struct {
	InvoiceIDs []uuid.UUID `json:"invoice_ids" binding:"required"`
}

// AddPresetRequest creates a payment preset.
type AddPresetRequest struct {
	ID      *uuid.UUID `json:"id"`
	Name    string     `json:"name" binding:"required" example:"Bank Transfer"`
	Content string     `json:"content" example:"Bank: HDFC Bank\nIFSC: HDFC0001234"`
}

// ClientsResponse lists the distinct client ids seen on invoices.
type ClientsResponse struct {
	Clients []string `json:"clients"`
}

func toLineItems(reqs []LineItemRequest) []domain.LineItem {
	if reqs == nil {
		return nil
	}
	items := make([]domain.LineItem, 0, len(reqs))
	for _, r := range reqs {
		items = append(items, domain.LineItem{
			ID:          r.ID,
			Description: r.Description,
			Quantity:    r.Quantity,
			UnitPrice:   r.UnitPrice,
			WorkItemID:  r.WorkItemID,
		})
	}
	return items
}
