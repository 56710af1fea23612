package billing

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fynix/internal/domain"
)

// IsBillable reports whether a work item can be put on a new invoice.
func IsBillable(w *domain.WorkItem) bool {
	return w.CompletionStatus == domain.CompletionCompleted &&
		w.ApprovalStatus == domain.ApprovalApproved &&
		w.BillingStatus.Effective() == domain.BillingUnbilled
}

// GroupUnbilled keys billable work items by client id. Input order is kept
// within each group.
func GroupUnbilled(items []domain.WorkItem) map[string][]domain.WorkItem {
	groups := make(map[string][]domain.WorkItem)
	for i := range items {
		if !IsBillable(&items[i]) {
			continue
		}
		groups[items[i].ClientID] = append(groups[items[i].ClientID], items[i])
	}
	return groups
}

// ClientGroups returns the unbilled groups sorted by client name with
// per-client and portfolio totals.
func ClientGroups(items []domain.WorkItem) domain.UnbilledSummary {
	summary := domain.UnbilledSummary{Groups: []domain.ClientGroup{}, Total: decimal.Zero}
	for clientID, ws := range GroupUnbilled(items) {
		g := domain.ClientGroup{ClientID: clientID, ClientName: ws[0].ClientName, WorkItems: ws, Total: decimal.Zero}
		for i := range ws {
			g.Total = g.Total.Add(ws[i].EstimatedCost)
		}
		summary.Total = summary.Total.Add(g.Total)
		summary.Groups = append(summary.Groups, g)
	}
	sort.Slice(summary.Groups, func(i, j int) bool {
		a, b := summary.Groups[i], summary.Groups[j]
		if a.ClientName != b.ClientName {
			return a.ClientName < b.ClientName
		}
		return a.ClientID < b.ClientID
	})
	return summary
}

// DraftOptions carries the defaults applied to a newly generated draft.
type DraftOptions struct {
	TenantID            uuid.UUID
	IssueDate           time.Time
	DueDays             int
	SessionToken        string
	CurrencyCode        string
	TaxConfig           domain.TaxConfiguration
	Sender              domain.Party
	Client              domain.Party
	Memo                string
	PaymentInstructions string
	Footer              string
}

// GenerateInvoiceDraft builds a draft invoice for one client with one line per
// work item (quantity 1, unit price = estimated cost). Every item must belong
// to the client and still be billable.
func GenerateInvoiceDraft(clientID string, items []domain.WorkItem, opts DraftOptions) (*domain.Invoice, error) {
	if len(items) == 0 {
		return nil, domain.ErrNoWorkItemsSelected
	}
	if err := opts.TaxConfig.Validate(); err != nil {
		return nil, err
	}

	lines := make([]domain.LineItem, 0, len(items))
	for i := range items {
		w := items[i]
		if w.ClientID != clientID {
			return nil, domain.ErrClientMismatch
		}
		if !IsBillable(&w) {
			return nil, domain.ErrWorkItemNotBillable
		}
		wid := w.ID
		lines = append(lines, domain.LineItem{
			ID:          w.ID.String(),
			Description: w.Title,
			Quantity:    decimal.NewFromInt(1),
			UnitPrice:   clamp(w.EstimatedCost),
			TaxRate:     opts.TaxConfig.Rate,
			WorkItemID:  &wid,
		})
	}

	inv, err := newDraft(opts)
	if err != nil {
		return nil, err
	}
	inv.ClientID = clientID
	inv.ClientName = items[0].ClientName
	if inv.Client.IsEmpty() {
		inv.Client.Name = items[0].ClientName
	}
	inv.LineItems = lines
	Recompute(inv)
	return inv, nil
}

// DefaultLineDescription is used for manual drafts created without items.
const DefaultLineDescription = "Consulting Services"

// NewManualDraft builds a draft not linked to any work item. Without lines it
// starts with a single placeholder row.
func NewManualDraft(clientID, clientName string, lines []domain.LineItem, opts DraftOptions) (*domain.Invoice, error) {
	if err := opts.TaxConfig.Validate(); err != nil {
		return nil, err
	}
	inv, err := newDraft(opts)
	if err != nil {
		return nil, err
	}
	inv.ClientID = clientID
	inv.ClientName = clientName
	if inv.Client.IsEmpty() {
		inv.Client.Name = clientName
	}
	if len(lines) == 0 {
		lines = []domain.LineItem{{
			Description: DefaultLineDescription,
			Quantity:    decimal.NewFromInt(1),
			UnitPrice:   decimal.Zero,
		}}
	}
	inv.LineItems = make([]domain.LineItem, len(lines))
	for i, l := range lines {
		if l.ID == "" {
			l.ID = uuid.NewString()
		}
		l.WorkItemID = nil
		l.TaxRate = opts.TaxConfig.Rate
		inv.LineItems[i] = l
	}
	Recompute(inv)
	return inv, nil
}

func newDraft(opts DraftOptions) (*domain.Invoice, error) {
	issue := opts.IssueDate
	if issue.IsZero() {
		issue = time.Now().UTC()
	}
	number, err := AssignNumber(issue, opts.SessionToken)
	if err != nil {
		return nil, err
	}
	return &domain.Invoice{
		ID:                  uuid.New(),
		TenantID:            opts.TenantID,
		InvoiceNumber:       number,
		SessionToken:        opts.SessionToken,
		Sender:              opts.Sender,
		Client:              opts.Client,
		IssueDate:           issue,
		DueDate:             issue.AddDate(0, 0, opts.DueDays),
		CurrencyCode:        opts.CurrencyCode,
		Discount:            decimal.Zero,
		TaxConfig:           opts.TaxConfig,
		Status:              domain.InvoiceStatusDraft,
		Memo:                opts.Memo,
		PaymentInstructions: opts.PaymentInstructions,
		Footer:              opts.Footer,
	}, nil
}

// ClientOptions returns the sorted union of client names across invoices and
// work items.
func ClientOptions(invoices []domain.Invoice, items []domain.WorkItem) []string {
	seen := make(map[string]struct{})
	for i := range invoices {
		if invoices[i].ClientName != "" {
			seen[invoices[i].ClientName] = struct{}{}
		}
	}
	for i := range items {
		if items[i].ClientName != "" {
			seen[items[i].ClientName] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
