package ses

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fynix/internal/port"
)

func TestInvoiceURL(t *testing.T) {
	assert.Equal(t, "https://app.fynix.test/invoices/abc", invoiceURL("https://app.fynix.test/", "abc"))
	assert.Equal(t, "http://localhost:3000/invoices/abc", invoiceURL("http://localhost:3000", "abc"))
}

func TestBuildInvoiceMessage(t *testing.T) {
	subject, htmlBody, textBody := buildInvoiceMessage(port.InvoiceEmail{
		ToEmail:       "ap@acme.test",
		ToName:        "Acme <Ltd>",
		FromName:      "Fynix Digital",
		InvoiceID:     "7f1c",
		InvoiceNumber: "INV-202501-4321",
		AmountDue:     "₹11,800.00",
		DueDate:       "14 Feb 2025",
	}, "https://app.fynix.test")

	assert.Equal(t, "Invoice INV-202501-4321 from Fynix Digital", subject)
	assert.Contains(t, textBody, "https://app.fynix.test/invoices/7f1c")
	assert.Contains(t, textBody, "₹11,800.00")
	assert.Contains(t, htmlBody, "Acme &lt;Ltd&gt;")
	assert.NotContains(t, htmlBody, "<Ltd>")
}

func TestBuildInvoiceMessage_Defaults(t *testing.T) {
	subject, _, textBody := buildInvoiceMessage(port.InvoiceEmail{InvoiceNumber: "INV-1"}, "http://x")
	assert.Equal(t, "Invoice INV-1 from Fynix", subject)
	assert.Contains(t, textBody, "Hi there,")
}

func TestSendInput(t *testing.T) {
	s := &sesSender{fromAddress: "billing@fynix.digital", fromName: "Fynix Billing", frontendURL: "https://app.fynix.test"}

	in := s.sendInput(port.InvoiceEmail{
		ToEmail:       "ap@acme.test",
		ReplyTo:       "accounts@fynix.digital",
		InvoiceID:     "7f1c",
		InvoiceNumber: "INV-202501-4321",
	})
	assert.Equal(t, "Fynix Billing <billing@fynix.digital>", aws.ToString(in.FromEmailAddress))
	assert.Equal(t, []string{"ap@acme.test"}, in.Destination.ToAddresses)
	assert.Equal(t, []string{"accounts@fynix.digital"}, in.ReplyToAddresses)
	require.Len(t, in.EmailTags, 2)
	assert.Equal(t, "INV-202501-4321", aws.ToString(in.EmailTags[1].Value))

	in = s.sendInput(port.InvoiceEmail{ToEmail: "ap@acme.test", FromName: "Acme Works"})
	assert.Equal(t, "Acme Works <billing@fynix.digital>", aws.ToString(in.FromEmailAddress))
	assert.Empty(t, in.ReplyToAddresses)
	assert.Equal(t, "none", aws.ToString(in.EmailTags[1].Value))
}

func TestTagValue(t *testing.T) {
	assert.Equal(t, "INV-202501-4321", tagValue("INV-202501-4321"))
	assert.Equal(t, "INV_2025_01", tagValue("INV/2025 01"))
}
