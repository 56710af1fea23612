package ses

import (
	"context"
	"fmt"
	"html"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"fynix/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
	frontendURL string
}

// NewSESSender creates a new SES-backed InvoiceMailer.
func NewSESSender(region, fromAddress, fromName, frontendURL string) (port.InvoiceMailer, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	return &sesSender{
		client:      sesv2.NewFromConfig(cfg),
		fromAddress: fromAddress,
		fromName:    fromName,
		frontendURL: frontendURL,
	}, nil
}

func (s *sesSender) SendInvoice(ctx context.Context, msg port.InvoiceEmail) error {
	if _, err := s.client.SendEmail(ctx, s.sendInput(msg)); err != nil {
		return fmt.Errorf("ses.SendInvoice %s: %w", msg.InvoiceNumber, err)
	}
	return nil
}

// sendInput builds the SES request. Replies go to the invoicing company and
// the message is tagged with the invoice number for delivery tracking.
func (s *sesSender) sendInput(msg port.InvoiceEmail) *sesv2.SendEmailInput {
	subject, htmlBody, textBody := buildInvoiceMessage(msg, s.frontendURL)

	fromName := msg.FromName
	if fromName == "" {
		fromName = s.fromName
	}
	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fmt.Sprintf("%s <%s>", fromName, s.fromAddress)),
		Destination:      &types.Destination{ToAddresses: []string{msg.ToEmail}},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject), Charset: aws.String("UTF-8")},
				Body: &types.Body{
					Html: &types.Content{Data: aws.String(htmlBody), Charset: aws.String("UTF-8")},
					Text: &types.Content{Data: aws.String(textBody), Charset: aws.String("UTF-8")},
				},
			},
		},
		EmailTags: []types.MessageTag{
			{Name: aws.String("message_type"), Value: aws.String("invoice")},
			{Name: aws.String("invoice_number"), Value: aws.String(tagValue(msg.InvoiceNumber))},
		},
	}
	if msg.ReplyTo != "" {
		input.ReplyToAddresses = []string{msg.ReplyTo}
	}
	return input
}

// tagValue keeps only the characters SES accepts in tag values.
func tagValue(v string) string {
	v = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, v)
	if v == "" {
		return "none"
	}
	return v
}

// invoiceURL links to the invoice in the web app.
func invoiceURL(frontendURL, invoiceID string) string {
	return strings.TrimRight(frontendURL, "/") + "/invoices/" + url.PathEscape(invoiceID)
}

func buildInvoiceMessage(msg port.InvoiceEmail, frontendURL string) (subject, htmlBody, textBody string) {
	link := invoiceURL(frontendURL, msg.InvoiceID)
	name := msg.ToName
	if name == "" {
		name = "there"
	}
	sender := msg.FromName
	if sender == "" {
		sender = "Fynix"
	}

	subject = fmt.Sprintf("Invoice %s from %s", msg.InvoiceNumber, sender)
	textBody = fmt.Sprintf("Hi %s,\n\nInvoice %s for %s is due on %s.\nView it online:\n%s\n\n%s",
		name, msg.InvoiceNumber, msg.AmountDue, msg.DueDate, link, sender)
	htmlBody = fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Invoice %s</h2>
  <p>Hi %s,</p>
  <p>Please find your invoice below. The amount due is <strong>%s</strong>, payable by %s.</p>
  <p style="text-align: center; margin: 30px 0;">
    <a href="%s" style="background-color: #4F46E5; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">View Invoice</a>
  </p>
  <p>Or copy and paste this link into your browser:</p>
  <p style="word-break: break-all; color: #666;">%s</p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">%s</p>
</body>
</html>`,
		html.EscapeString(msg.InvoiceNumber),
		html.EscapeString(name),
		html.EscapeString(msg.AmountDue),
		html.EscapeString(msg.DueDate),
		html.EscapeString(link),
		html.EscapeString(link),
		html.EscapeString(sender),
	)
	return subject, htmlBody, textBody
}
