package service_test

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fynix/internal/config"
	"fynix/internal/domain"
)

func testBillingConfig() config.BillingConfig {
	return config.BillingConfig{
		DefaultTaxMode:  domain.TaxModeSingle,
		DefaultTaxName:  "IGST",
		DefaultTaxRate:  decimal.NewFromInt(18),
		CurrencyCode:    "INR",
		DueDays:         30,
		ManualDueDays:   7,
		ExpenseRatio:    decimal.RequireFromString("0.65"),
		DefaultMemo:     "Thanks for your business!",
		BrandName:       "Fynix Digital",
		ExportKeyPrefix: "invoices",
	}
}

func testS3Config() config.S3Config {
	return config.S3Config{Bucket: "fynix-docs", PresignExpiry: 3600}
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func billableItem(tenantID uuid.UUID, clientID, name, cost string) domain.WorkItem {
	return domain.WorkItem{
		ID:               uuid.New(),
		TenantID:         tenantID,
		Title:            name,
		ClientID:         clientID,
		ClientName:       clientID + " Ltd",
		EstimatedCost:    decimal.RequireFromString(cost),
		CompletionStatus: domain.CompletionCompleted,
		ApprovalStatus:   domain.ApprovalApproved,
		DueDate:          day("2025-01-15"),
	}
}

// draftInvoice is a valid, unfinalized draft ready to send.
func draftInvoice(tenantID uuid.UUID) *domain.Invoice {
	return &domain.Invoice{
		ID:            uuid.New(),
		TenantID:      tenantID,
		InvoiceNumber: "INV-202501-4321",
		SessionToken:  "4321",
		ClientID:      "acme",
		ClientName:    "Acme",
		Client:        domain.Party{Name: "Acme", Email: "ap@acme.test"},
		Sender:        domain.Party{Name: "Fynix Digital"},
		IssueDate:     day("2025-01-20"),
		DueDate:       day("2025-02-19"),
		CurrencyCode:  "INR",
		LineItems: []domain.LineItem{{
			ID:          "l1",
			Description: "Design",
			Quantity:    decimal.NewFromInt(1),
			UnitPrice:   decimal.NewFromInt(10000),
			TaxRate:     decimal.NewFromInt(18),
		}},
		TaxConfig: domain.TaxConfiguration{Mode: domain.TaxModeSingle, Name: "IGST", Rate: decimal.NewFromInt(18)},
		Status:    domain.InvoiceStatusDraft,
	}
}
