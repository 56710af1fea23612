package domain

import "errors"

var (
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// Validation errors block the operation without mutating state.
	ErrValidation          = errors.New("invoice failed validation")
	ErrEmptyLineItems      = errors.New("invoice has no billable line items")
	ErrMissingClient       = errors.New("invoice has no client profile")
	ErrNegativeAmount      = errors.New("quantity, price and discount must not be negative")
	ErrInvalidTaxConfig    = errors.New("invalid tax configuration")
	ErrInvalidTransition   = errors.New("invalid invoice status transition")
	ErrInvoiceFrozen       = errors.New("invoice can no longer be edited")
	ErrWorkItemNotBillable = errors.New("work item is not eligible for billing")
	ErrNoWorkItemsSelected = errors.New("select at least one work item to invoice")
	ErrClientMismatch      = errors.New("work items belong to a different client")
	ErrInvalidSessionToken = errors.New("invoice session token must be 4 digits")

	// Integrity errors abort the whole operation; nothing is left half-applied.
	ErrPartialBilling = errors.New("work items changed concurrently; billing rolled back")

	// Boundary errors are recoverable; the caller may retry.
	ErrInvoiceNotFound        = errors.New("invoice not found")
	ErrWorkItemNotFound       = errors.New("work item not found")
	ErrPresetNotFound         = errors.New("payment preset not found")
	ErrProfileNotFound        = errors.New("profile not found")
	ErrDuplicateInvoiceNumber = errors.New("invoice number already exists")
	ErrExportFailed           = errors.New("invoice export failed")
)
