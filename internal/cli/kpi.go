package cli

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"fynix/internal/billing"
	"fynix/internal/domain"
)

// portfolio is the input file for the kpi command.
type portfolio struct {
	Invoices  []domain.Invoice  `json:"invoices"`
	WorkItems []domain.WorkItem `json:"work_items"`
}

type kpiOutput struct {
	Summary domain.KPISummary      `json:"summary"`
	Periods []domain.PeriodSummary `json:"periods,omitempty"`
}

func newKPICmd() *cobra.Command {
	var client, status, from, to, groupBy string
	var ratio float64
	cmd := &cobra.Command{
		Use:   "kpi [portfolio.json]",
		Short: "Compute portfolio KPIs from invoices and work items",
		Long: `Reads {"invoices": [...], "work_items": [...]} and prints the KPI summary
for the filter window. With --group-by, revenue per period is included.`,
		Example: `  fynixctl kpi portfolio.json --client acme --from 2025-01-01 --to 2025-03-31
  fynixctl kpi portfolio.json --group-by quarterly`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var p portfolio
			if err := readJSON(args[0], &p); err != nil {
				return err
			}

			filter := domain.KPIFilter{ClientID: client, Status: domain.InvoiceStatus(status)}
			if status != "" && !domain.ValidInvoiceStatuses[filter.Status] {
				return fmt.Errorf("invalid --status %q", status)
			}
			var err error
			if filter.From, err = parseFlagDate("from", from); err != nil {
				return err
			}
			if filter.To, err = parseFlagDate("to", to); err != nil {
				return err
			}
			if groupBy != "" && !billing.ValidGranularity(groupBy) {
				return fmt.Errorf("invalid --group-by %q", groupBy)
			}

			estimate := billing.FixedRatioEstimator(decimal.NewFromFloat(ratio))
			out := kpiOutput{Summary: billing.Aggregate(p.Invoices, p.WorkItems, filter, estimate)}
			if groupBy != "" {
				out.Periods = billing.Periods(p.Invoices, filter, groupBy)
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().StringVar(&client, "client", "", "client id")
	cmd.Flags().StringVar(&status, "status", "", "invoice status: draft, sent, paid or overdue")
	cmd.Flags().StringVar(&from, "from", "", "window start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "window end (YYYY-MM-DD)")
	cmd.Flags().StringVar(&groupBy, "group-by", "", "daily, weekly, monthly, quarterly or yearly")
	cmd.Flags().Float64Var(&ratio, "expense-ratio", 0.65, "share of received revenue counted as expenses")
	return cmd
}

func parseFlagDate(name, raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s: must be YYYY-MM-DD", name)
	}
	return &t, nil
}
