package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WorkItem is a unit of billable work produced by the task/requirement workflow.
type WorkItem struct {
	ID               uuid.UUID        `db:"id" json:"id"`
	TenantID         uuid.UUID        `db:"tenant_id" json:"tenant_id"`
	Title            string           `db:"title" json:"title"`
	ClientID         string           `db:"client_id" json:"client_id"`
	ClientName       string           `db:"client_name" json:"client_name"`
	Type             string           `db:"type" json:"type"`
	EstimatedCost    decimal.Decimal  `db:"estimated_cost" json:"estimated_cost"`
	CompletionStatus CompletionStatus `db:"completion_status" json:"completion_status"`
	ApprovalStatus   ApprovalStatus   `db:"approval_status" json:"approval_status"`
	BillingStatus    BillingStatus    `db:"billing_status" json:"billing_status"`
	InvoiceID        *uuid.UUID       `db:"invoice_id" json:"invoice_id,omitempty"`
	DueDate          time.Time        `db:"due_date" json:"due_date"`
	CreatedAt        time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time        `db:"updated_at" json:"updated_at"`
}

// LineItem is one priced row on an invoice.
type LineItem struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	WorkItemID  *uuid.UUID      `json:"work_item_id,omitempty"`
}

// Amount returns quantity x unit price.
func (l LineItem) Amount() decimal.Decimal {
	return l.Quantity.Mul(l.UnitPrice)
}

// Incomplete reports whether the line is missing its description.
func (l LineItem) Incomplete() bool {
	return strings.TrimSpace(l.Description) == ""
}

// TaxConfiguration is a named tax variant applied invoice-wide.
type TaxConfiguration struct {
	Mode TaxMode         `json:"mode"`
	Name string          `json:"name"`
	Rate decimal.Decimal `json:"rate"`
}

// TaxComponent is one displayed tax (e.g. CGST at 9%).
type TaxComponent struct {
	Name string          `json:"name"`
	Rate decimal.Decimal `json:"rate"`
}

// Validate checks the mode is known and the rate is not negative.
func (t TaxConfiguration) Validate() error {
	switch t.Mode {
	case TaxModeSingle, TaxModeSplit, TaxModeNone:
	default:
		return ErrInvalidTaxConfig
	}
	if t.Rate.IsNegative() {
		return ErrInvalidTaxConfig
	}
	return nil
}

// Components returns the taxes to display. A split configuration always yields
// exactly two halves whose rates sum to the nominal rate.
func (t TaxConfiguration) Components() []TaxComponent {
	if t.Mode == TaxModeNone || !t.Rate.IsPositive() {
		return nil
	}
	if t.Mode == TaxModeSplit {
		first, second := "CGST", "SGST"
		if parts := strings.Split(t.Name, "+"); len(parts) == 2 {
			if a, b := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]); a != "" && b != "" {
				first, second = a, b
			}
		}
		half := t.Rate.Div(decimal.NewFromInt(2))
		return []TaxComponent{{Name: first, Rate: half}, {Name: second, Rate: half}}
	}
	name := t.Name
	if name == "" {
		name = "Tax"
	}
	return []TaxComponent{{Name: name, Rate: t.Rate}}
}

// TaxLine is a computed tax row on the totals block.
type TaxLine struct {
	Name   string          `json:"name"`
	Rate   decimal.Decimal `json:"rate"`
	Amount decimal.Decimal `json:"amount"`
}

// Totals is always derived from line items, discount and tax configuration.
type Totals struct {
	Subtotal      decimal.Decimal `json:"subtotal"`
	Discount      decimal.Decimal `json:"discount"`
	TaxableAmount decimal.Decimal `json:"taxable_amount"`
	TotalTax      decimal.Decimal `json:"total_tax"`
	Total         decimal.Decimal `json:"total"`
	Taxes         []TaxLine       `json:"taxes"`
}

// Party is a sender or client profile printed on an invoice.
type Party struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	TaxID   string `json:"tax_id"`
}

// IsEmpty reports whether the profile has no usable name.
func (p Party) IsEmpty() bool {
	return strings.TrimSpace(p.Name) == ""
}

// Invoice is a billing document.
type Invoice struct {
	ID                  uuid.UUID        `json:"id"`
	TenantID            uuid.UUID        `json:"tenant_id"`
	InvoiceNumber       string           `json:"invoice_number"`
	SessionToken        string           `json:"session_token"`
	ClientID            string           `json:"client_id"`
	ClientName          string           `json:"client_name"`
	Sender              Party            `json:"sender"`
	Client              Party            `json:"client"`
	IssueDate           time.Time        `json:"issue_date"`
	DueDate             time.Time        `json:"due_date"`
	CurrencyCode        string           `json:"currency_code"`
	LineItems           []LineItem       `json:"line_items"`
	Discount            decimal.Decimal  `json:"discount"`
	TaxConfig           TaxConfiguration `json:"tax_config"`
	Totals              Totals           `json:"totals"`
	Status              InvoiceStatus    `json:"status"`
	Memo                string           `json:"memo"`
	PaymentInstructions string           `json:"payment_instructions"`
	Footer              string           `json:"footer"`
	FinalizedAt         *time.Time       `json:"finalized_at,omitempty"`
	SentAt              *time.Time       `json:"sent_at,omitempty"`
	PaidAt              *time.Time       `json:"paid_at,omitempty"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
}

// Frozen reports whether line items and tax configuration may no longer change.
func (inv *Invoice) Frozen() bool {
	return inv.Status == InvoiceStatusPaid
}

// Editable reports whether the invoice content may still be changed.
func (inv *Invoice) Editable() bool {
	return inv.Status == InvoiceStatusDraft
}

// Finalized reports whether linked work items have been marked billed.
func (inv *Invoice) Finalized() bool {
	return inv.FinalizedAt != nil
}

// WorkItemIDs returns the ids of work items linked through line items.
func (inv *Invoice) WorkItemIDs() []uuid.UUID {
	var ids []uuid.UUID
	for i := range inv.LineItems {
		if inv.LineItems[i].WorkItemID != nil {
			ids = append(ids, *inv.LineItems[i].WorkItemID)
		}
	}
	return ids
}

// PaymentPreset is a reusable named block of payment instructions.
type PaymentPreset struct {
	ID        uuid.UUID `db:"id" json:"id"`
	TenantID  uuid.UUID `db:"tenant_id" json:"tenant_id"`
	Name      string    `db:"name" json:"name"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// WorkItemFilter narrows work item listings.
type WorkItemFilter struct {
	ClientID  string
	InvoiceID *uuid.UUID
	IDs       []uuid.UUID
	Search    string
	DueFrom   *time.Time
	DueTo     *time.Time
}

// InvoiceFilter narrows invoice listings.
type InvoiceFilter struct {
	ClientID string
	Status   InvoiceStatus
	Search   string
	From     *time.Time
	To       *time.Time
	Offset   int
	Limit    int
}

// KPIFilter is the active window (client, status, date range) over which
// portfolio metrics are computed.
type KPIFilter struct {
	ClientID string        `json:"client_id,omitempty"`
	Status   InvoiceStatus `json:"status,omitempty"`
	From     *time.Time    `json:"from,omitempty"`
	To       *time.Time    `json:"to,omitempty"`
}

// KPISummary holds portfolio-level financial metrics.
type KPISummary struct {
	Invoiced     decimal.Decimal `json:"invoiced"`
	Received     decimal.Decimal `json:"received"`
	Due          decimal.Decimal `json:"due"`
	ToBeInvoiced decimal.Decimal `json:"to_be_invoiced"`
	Expenses     decimal.Decimal `json:"expenses"`
	Profit       decimal.Decimal `json:"profit"`
}

// ClientGroup is the set of unbilled work items for one client.
type ClientGroup struct {
	ClientID   string          `json:"client_id"`
	ClientName string          `json:"client_name"`
	WorkItems  []WorkItem      `json:"work_items"`
	Total      decimal.Decimal `json:"total"`
}

// UnbilledSummary lists client groups plus the portfolio total.
type UnbilledSummary struct {
	Groups []ClientGroup   `json:"groups"`
	Total  decimal.Decimal `json:"total"`
}

// PeriodSummary is revenue for one reporting period.
type PeriodSummary struct {
	Period       string          `json:"period"`
	PeriodStart  time.Time       `json:"period_start"`
	PeriodEnd    time.Time       `json:"period_end"`
	InvoiceCount int             `json:"invoice_count"`
	Invoiced     decimal.Decimal `json:"invoiced"`
	Received     decimal.Decimal `json:"received"`
	TotalTax     decimal.Decimal `json:"total_tax"`
}
