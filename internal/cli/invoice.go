package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"fynix/internal/billing"
	"fynix/internal/domain"
	"fynix/internal/render"
	"fynix/internal/render/pdf"
)

func newTotalsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "totals [invoice.json]",
		Short: "Recompute an invoice's totals from its line items",
		Example: `  fynixctl totals invoice.json
  cat invoice.json | fynixctl totals -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var inv domain.Invoice
			if err := readJSON(args[0], &inv); err != nil {
				return err
			}
			if err := inv.TaxConfig.Validate(); err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), billing.ComputeTotals(inv.LineItems, inv.Discount, inv.TaxConfig))
		},
	}
}

func newNumberCmd() *cobra.Command {
	var date, token string
	cmd := &cobra.Command{
		Use:   "number",
		Short: "Assign an invoice number for an issue date",
		Example: `  fynixctl number --date 2025-01-15
  fynixctl number --date 2025-02-01 --token 4321`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			issue := time.Now().UTC()
			if date != "" {
				t, err := time.Parse("2006-01-02", date)
				if err != nil {
					return fmt.Errorf("invalid --date: must be YYYY-MM-DD")
				}
				issue = t
			}
			if token == "" {
				t, err := billing.NewSessionToken(nil)
				if err != nil {
					return err
				}
				token = t
			}
			number, err := billing.AssignNumber(issue, token)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), number)
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "issue date (YYYY-MM-DD), defaults to today")
	cmd.Flags().StringVar(&token, "token", "", "4-digit session token to reuse")
	return cmd
}

func newRenderCmd() *cobra.Command {
	var output, brand string
	cmd := &cobra.Command{
		Use:   "render [invoice.json]",
		Short: "Render an invoice to PDF",
		Example: `  fynixctl render invoice.json
  fynixctl render invoice.json -o out.pdf --brand "Fynix Digital"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var inv domain.Invoice
			if err := readJSON(args[0], &inv); err != nil {
				return err
			}
			billing.Recompute(&inv)

			doc, err := render.RenderInvoice(&inv, render.Options{BrandName: brand})
			if err != nil {
				return err
			}
			data, err := pdf.NewRasterizer(brand).Rasterize(context.Background(), doc)
			if err != nil {
				return err
			}
			if output == "" {
				output = doc.FileName
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d pages)\n", output, doc.PageCount())
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path, defaults to the invoice number")
	cmd.Flags().StringVar(&brand, "brand", "Fynix Digital", "brand name printed in the header")
	return cmd
}
