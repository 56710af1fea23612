package port

import "context"

// InvoiceEmail is the message sent to a client when an invoice goes out.
type InvoiceEmail struct {
	ToEmail       string
	ToName        string
	FromName      string
	ReplyTo       string
	InvoiceID     string
	InvoiceNumber string
	AmountDue     string
	DueDate       string
}

// InvoiceMailer defines the contract for delivering invoices to clients.
type InvoiceMailer interface {
	SendInvoice(ctx context.Context, msg InvoiceEmail) error
}
