// Package xlsxexport writes invoice history and KPI figures as an Excel
// workbook.
package xlsxexport

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"fynix/internal/domain"
	"fynix/internal/export/csvexport"
)

// Sheet names, in workbook order.
const (
	SheetInvoices = "Invoices"
	SheetKPIs     = "KPIs"
	SheetPeriods  = "By Period"
)

// firstMoneyColumn is the 0-based index of "Subtotal" in csvexport.Columns;
// the four columns after it are also amounts.
const firstMoneyColumn = 7

// Data is everything one workbook carries.
type Data struct {
	Invoices []domain.Invoice
	Summary  domain.KPISummary
	Periods  []domain.PeriodSummary
}

// Write builds the workbook and writes it to w.
func Write(w io.Writer, data *Data) error {
	f, err := Build(data)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("xlsxexport: write: %w", err)
	}
	return nil
}

// Build assembles the workbook in memory. Callers must Close the result.
func Build(data *Data) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetInvoices); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("xlsxexport: %w", err)
	}
	for _, name := range []string{SheetKPIs, SheetPeriods} {
		if _, err := f.NewSheet(name); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("xlsxexport: new sheet %s: %w", name, err)
		}
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"E8EEF7"}},
	})
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("xlsxexport: style: %w", err)
	}

	steps := []func(*excelize.File, int, *Data) error{writeInvoices, writeKPIs, writePeriods}
	for _, step := range steps {
		if err := step(f, header, data); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("xlsxexport: %w", err)
		}
	}
	return f, nil
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func writeHeader(f *excelize.File, sheet string, style int, headers []string) error {
	values := make([]interface{}, len(headers))
	for i, h := range headers {
		values[i] = h
	}
	if err := writeRow(f, sheet, 1, values); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return err
	}
	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", lastCol, 18)
}

func money(v decimal.Decimal) float64 {
	return v.Round(2).InexactFloat64()
}

func writeInvoices(f *excelize.File, style int, data *Data) error {
	if err := writeHeader(f, SheetInvoices, style, csvexport.Columns); err != nil {
		return err
	}
	for i := range data.Invoices {
		inv := &data.Invoices[i]
		cells := csvexport.InvoiceRow(inv)
		values := make([]interface{}, len(cells))
		for c, v := range cells {
			values[c] = v
		}
		t := inv.Totals
		for c, v := range []decimal.Decimal{t.Subtotal, t.Discount, t.TaxableAmount, t.TotalTax, t.Total} {
			values[firstMoneyColumn+c] = money(v)
		}
		if err := writeRow(f, SheetInvoices, i+2, values); err != nil {
			return err
		}
	}
	return nil
}

func writeKPIs(f *excelize.File, style int, data *Data) error {
	if err := writeHeader(f, SheetKPIs, style, []string{"Metric", "Value"}); err != nil {
		return err
	}
	s := data.Summary
	rows := []struct {
		label string
		value decimal.Decimal
	}{
		{"Invoiced", s.Invoiced},
		{"Received", s.Received},
		{"Due", s.Due},
		{"To Be Invoiced", s.ToBeInvoiced},
		{"Expenses", s.Expenses},
		{"Profit", s.Profit},
	}
	for i, r := range rows {
		if err := writeRow(f, SheetKPIs, i+2, []interface{}{r.label, money(r.value)}); err != nil {
			return err
		}
	}
	return nil
}

func writePeriods(f *excelize.File, style int, data *Data) error {
	headers := []string{"Period", "Start", "End", "Invoices", "Invoiced", "Received", "Tax"}
	if err := writeHeader(f, SheetPeriods, style, headers); err != nil {
		return err
	}
	for i := range data.Periods {
		p := &data.Periods[i]
		values := []interface{}{
			p.Period,
			p.PeriodStart.Format("2006-01-02"),
			p.PeriodEnd.Format("2006-01-02"),
			p.InvoiceCount,
			money(p.Invoiced),
			money(p.Received),
			money(p.TotalTax),
		}
		if err := writeRow(f, SheetPeriods, i+2, values); err != nil {
			return err
		}
	}
	return nil
}
