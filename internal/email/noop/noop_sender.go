package noop

import (
	"context"

	"go.uber.org/zap"

	"fynix/internal/port"
)

type noopSender struct {
	frontendURL string
	log         *zap.Logger
}

// NewNoopSender creates an InvoiceMailer that only logs what would be sent.
func NewNoopSender(frontendURL string, log *zap.Logger) port.InvoiceMailer {
	if log == nil {
		log = zap.NewNop()
	}
	return &noopSender{frontendURL: frontendURL, log: log.Named("mail")}
}

func (s *noopSender) SendInvoice(_ context.Context, msg port.InvoiceEmail) error {
	s.log.Info("invoice email skipped",
		zap.String("to", msg.ToEmail),
		zap.String("invoice_number", msg.InvoiceNumber),
		zap.String("amount_due", msg.AmountDue),
		zap.String("link", s.frontendURL+"/invoices/"+msg.InvoiceID),
	)
	return nil
}
