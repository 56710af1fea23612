package csvexport

import (
	"encoding/csv"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"fynix/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// Columns is the CSV header row.
var Columns = []string{
	"Invoice Number",
	"Status",
	"Client ID",
	"Client Name",
	"Issue Date",
	"Due Date",
	"Currency",
	"Subtotal",
	"Discount",
	"Taxable Amount",
	"Tax",
	"Total",
	"Tax Mode",
	"Line Item Count",
	"Work Item Count",
	"Sent At",
	"Paid At",
	"Created At",
}

// Writer wraps csv.Writer for exporting invoices as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(Columns)
}

// WriteInvoices converts a batch of invoices to CSV rows and writes them.
func (w *Writer) WriteInvoices(invoices []domain.Invoice) error {
	for i := range invoices {
		if err := w.csv.Write(InvoiceRow(&invoices[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// InvoiceRow flattens one invoice into a row aligned with Columns. Amounts are
// plain decimals with two places so spreadsheets can sum them.
func InvoiceRow(inv *domain.Invoice) []string {
	return []string{
		inv.InvoiceNumber,
		string(inv.Status),
		inv.ClientID,
		inv.ClientName,
		formatDate(inv.IssueDate),
		formatDate(inv.DueDate),
		inv.CurrencyCode,
		inv.Totals.Subtotal.StringFixed(2),
		inv.Totals.Discount.StringFixed(2),
		inv.Totals.TaxableAmount.StringFixed(2),
		inv.Totals.TotalTax.StringFixed(2),
		inv.Totals.Total.StringFixed(2),
		string(inv.TaxConfig.Mode),
		strconv.Itoa(len(inv.LineItems)),
		strconv.Itoa(len(inv.WorkItemIDs())),
		formatTime(inv.SentAt),
		formatTime(inv.PaidAt),
		inv.CreatedAt.Format(time.RFC3339),
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

var unsafeRun = regexp.MustCompile(`[^a-zA-Z0-9-]+`)

const maxFilenameLen = 100

// SanitizeFilename reduces name to letters, digits, hyphens and single
// underscores so it is safe inside a Content-Disposition header.
func SanitizeFilename(name string) string {
	s := strings.Trim(unsafeRun.ReplaceAllString(name, "_"), "_")
	if len(s) > maxFilenameLen {
		s = s[:maxFilenameLen]
	}
	return s
}

// BuildFilename returns {name}_{YYYY-MM-DD}.{ext}, falling back to "export"
// when nothing of name survives sanitizing.
func BuildFilename(name, ext string, now time.Time) string {
	base := SanitizeFilename(name)
	if base == "" {
		base = "export"
	}
	return base + "_" + now.Format("2006-01-02") + "." + ext
}
