package billing

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"fynix/internal/domain"
)

// Granularities accepted by Periods.
const (
	GranularityDaily     = "daily"
	GranularityWeekly    = "weekly"
	GranularityMonthly   = "monthly"
	GranularityQuarterly = "quarterly"
	GranularityYearly    = "yearly"
)

// ValidGranularity reports whether g is a known period granularity.
func ValidGranularity(g string) bool {
	switch g {
	case GranularityDaily, GranularityWeekly, GranularityMonthly, GranularityQuarterly, GranularityYearly:
		return true
	}
	return false
}

// periodStart truncates t (UTC) to the start of its period. Weeks start on Monday.
func periodStart(t time.Time, granularity string) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	switch granularity {
	case GranularityDaily:
		return day
	case GranularityWeekly:
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	case GranularityQuarterly:
		q := (int(t.Month()) - 1) / 3
		return time.Date(t.Year(), time.Month(q*3+1), 1, 0, 0, 0, 0, time.UTC)
	case GranularityYearly:
		return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
}

// formatPeriod formats a period start into a human-readable label.
func formatPeriod(t time.Time, granularity string) string {
	switch granularity {
	case GranularityDaily:
		return t.Format("2006-01-02")
	case GranularityWeekly:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case GranularityQuarterly:
		quarter := (int(t.Month())-1)/3 + 1
		return fmt.Sprintf("%s-Q%d", t.Format("2006"), quarter)
	case GranularityYearly:
		return t.Format("2006")
	default:
		return t.Format("2006-01")
	}
}

// periodEnd computes the last instant of a period given its start.
func periodEnd(start time.Time, granularity string) time.Time {
	switch granularity {
	case GranularityDaily:
		return start.AddDate(0, 0, 1).Add(-time.Second)
	case GranularityWeekly:
		return start.AddDate(0, 0, 7).Add(-time.Second)
	case GranularityQuarterly:
		return start.AddDate(0, 3, 0).Add(-time.Second)
	case GranularityYearly:
		return start.AddDate(1, 0, 0).Add(-time.Second)
	default:
		return start.AddDate(0, 1, 0).Add(-time.Second)
	}
}

// Periods buckets invoices matching the filter by issue date. Drafts are
// skipped unless the filter asks for them, as in Aggregate. Unknown
// granularities fall back to monthly. Results are ordered by period start.
func Periods(invoices []domain.Invoice, filter domain.KPIFilter, granularity string) []domain.PeriodSummary {
	if !ValidGranularity(granularity) {
		granularity = GranularityMonthly
	}
	buckets := make(map[time.Time]*domain.PeriodSummary)
	for i := range invoices {
		inv := &invoices[i]
		if filter.ClientID != "" && inv.ClientID != filter.ClientID {
			continue
		}
		if !countsAsInvoiced(inv, filter) || !InWindow(inv.IssueDate, filter.From, filter.To) {
			continue
		}
		start := periodStart(inv.IssueDate, granularity)
		b, ok := buckets[start]
		if !ok {
			b = &domain.PeriodSummary{
				Period:      formatPeriod(start, granularity),
				PeriodStart: start,
				PeriodEnd:   periodEnd(start, granularity),
				Invoiced:    decimal.Zero,
				Received:    decimal.Zero,
				TotalTax:    decimal.Zero,
			}
			buckets[start] = b
		}
		b.InvoiceCount++
		b.Invoiced = b.Invoiced.Add(inv.Totals.Total)
		b.TotalTax = b.TotalTax.Add(inv.Totals.TotalTax)
		if inv.Status == domain.InvoiceStatusPaid {
			b.Received = b.Received.Add(inv.Totals.Total)
		}
	}

	out := make([]domain.PeriodSummary, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PeriodStart.Before(out[j].PeriodStart) })
	return out
}
