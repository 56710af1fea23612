package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"fynix/internal/billing"
	"fynix/internal/config"
	"fynix/internal/domain"
	"fynix/internal/port"
)

// maxNumberAttempts bounds session token regeneration when an invoice number
// collides with an existing one.
const maxNumberAttempts = 5

// draftDefaults assembles DraftOptions from configuration and profiles.
type draftDefaults struct {
	profiles port.ProfileRepository
	cfg      config.BillingConfig
}

func (d draftDefaults) options(ctx context.Context, tenantID uuid.UUID, clientID string, issue time.Time, dueDays int) (billing.DraftOptions, error) {
	token, err := billing.NewSessionToken(nil)
	if err != nil {
		return billing.DraftOptions{}, err
	}

	var sender, client domain.Party
	if p, err := d.profiles.GetCompanyProfile(ctx, tenantID); err == nil {
		sender = *p
	} else if !errors.Is(err, domain.ErrProfileNotFound) {
		return billing.DraftOptions{}, fmt.Errorf("loading company profile: %w", err)
	}
	if p, err := d.profiles.GetPartnerProfile(ctx, tenantID, clientID); err == nil {
		client = *p
	} else if !errors.Is(err, domain.ErrProfileNotFound) {
		return billing.DraftOptions{}, fmt.Errorf("loading partner profile: %w", err)
	}

	return billing.DraftOptions{
		TenantID:     tenantID,
		IssueDate:    issue,
		DueDays:      dueDays,
		SessionToken: token,
		CurrencyCode: d.cfg.CurrencyCode,
		TaxConfig:    d.cfg.TaxConfig(),
		Sender:       sender,
		Client:       client,
		Memo:         d.cfg.DefaultMemo,
		Footer:       d.cfg.DefaultFooter,
	}, nil
}

// createDraft persists inv, drawing a fresh session token whenever the
// number is already taken.
func createDraft(ctx context.Context, repo port.InvoiceRepository, inv *domain.Invoice) error {
	for attempt := 1; ; attempt++ {
		err := repo.Create(ctx, inv)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrDuplicateInvoiceNumber) || attempt == maxNumberAttempts {
			return err
		}
		token, err := billing.NewSessionToken(nil)
		if err != nil {
			return err
		}
		number, err := billing.AssignNumber(inv.IssueDate, token)
		if err != nil {
			return err
		}
		inv.SessionToken, inv.InvoiceNumber = token, number
	}
}

// finalize marks inv's work items billed against it in one repository
// command. Invoices already finalized are left alone.
func finalize(ctx context.Context, repo port.InvoiceRepository, inv *domain.Invoice, now time.Time) error {
	if inv.Finalized() {
		return nil
	}
	billing.Recompute(inv)
	inv.FinalizedAt = &now
	if err := repo.FinalizeWithWorkItems(ctx, inv, inv.WorkItemIDs()); err != nil {
		inv.FinalizedAt = nil
		return err
	}
	return nil
}
