package domain

// UserRole defines the role carried in the bearer token.
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleManager UserRole = "manager"
	RoleMember  UserRole = "member"
	RoleViewer  UserRole = "viewer"
)

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleMember, RoleViewer:
		return true
	}
	return false
}

// CompletionStatus tracks the delivery state of a work item.
type CompletionStatus string

const (
	CompletionPending    CompletionStatus = "pending"
	CompletionInProgress CompletionStatus = "in_progress"
	CompletionCompleted  CompletionStatus = "completed"
)

// ApprovalStatus tracks client sign-off on a work item.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// BillingStatus is a work item's position in the billing lifecycle.
// It only moves forward: unbilled -> billed -> paid.
type BillingStatus string

const (
	BillingUnbilled BillingStatus = "unbilled"
	BillingBilled   BillingStatus = "billed"
	BillingPaid     BillingStatus = "paid"
)

// billingRank orders billing statuses for monotonicity checks.
var billingRank = map[BillingStatus]int{
	BillingUnbilled: 0,
	BillingBilled:   1,
	BillingPaid:     2,
}

// CanAdvanceTo reports whether moving from s to next keeps the lifecycle monotonic.
func (s BillingStatus) CanAdvanceTo(next BillingStatus) bool {
	cur, ok := billingRank[s.Effective()]
	if !ok {
		return false
	}
	nxt, ok := billingRank[next]
	if !ok {
		return false
	}
	return nxt == cur+1
}

// Effective treats a missing billing status as unbilled.
func (s BillingStatus) Effective() BillingStatus {
	if s == "" {
		return BillingUnbilled
	}
	return s
}

// InvoiceStatus is an invoice's lifecycle state.
type InvoiceStatus string

const (
	InvoiceStatusDraft   InvoiceStatus = "draft"
	InvoiceStatusSent    InvoiceStatus = "sent"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusOverdue InvoiceStatus = "overdue"
)

// ValidInvoiceStatuses lists accepted invoice statuses for filters.
var ValidInvoiceStatuses = map[InvoiceStatus]bool{
	InvoiceStatusDraft:   true,
	InvoiceStatusSent:    true,
	InvoiceStatusPaid:    true,
	InvoiceStatusOverdue: true,
}

// TaxMode selects how tax is computed and displayed.
type TaxMode string

const (
	// TaxModeSingle applies one named tax (e.g. IGST) at the full rate.
	TaxModeSingle TaxMode = "single"
	// TaxModeSplit shows two co-equal taxes (e.g. CGST+SGST) at half the rate each.
	TaxModeSplit TaxMode = "split"
	// TaxModeNone applies no tax.
	TaxModeNone TaxMode = "none"
)

// ValidationSeverity defines how serious a failed validation is.
type ValidationSeverity string

const (
	ValidationSeverityError   ValidationSeverity = "error"
	ValidationSeverityWarning ValidationSeverity = "warning"
)
