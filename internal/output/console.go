// Package output renders engine reports for the CLI: a styled console
// form and a JSON form with fixed two-decimal monetary strings.
package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/premialab/premia/internal/domain"
)

const lineWidth = 78

// styles groups the lipgloss styles used by the console renderer.
type styles struct {
	Header lipgloss.Style
	Label  lipgloss.Style
	Total  lipgloss.Style
	Warn   lipgloss.Style
}

func newStyles() styles {
	return styles{
		Header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Label:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Total:  lipgloss.NewStyle().Bold(true),
		Warn:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	}
}

// ConsoleFormatter renders reports as plain-text tables with styled
// headers.
type ConsoleFormatter struct {
	styles styles
}

// NewConsoleFormatter creates a console formatter.
func NewConsoleFormatter() *ConsoleFormatter {
	return &ConsoleFormatter{styles: newStyles()}
}

// formatCurrency renders a monetary value with thousands separators and
// two decimals.
func formatCurrency(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	dot := strings.Index(s, ".")
	intPart, fracPart := s[:dot], s[dot:]

	var sb strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(r)
	}
	out := sb.String() + fracPart
	if neg {
		return "-" + out
	}
	return out
}

func (cf *ConsoleFormatter) header(sb *strings.Builder, title string) {
	sb.WriteString(cf.styles.Header.Render(title) + "\n")
	sb.WriteString(strings.Repeat("=", lineWidth) + "\n")
}

func (cf *ConsoleFormatter) row(sb *strings.Builder, label, value string) {
	sb.WriteString(fmt.Sprintf("%-28s %s\n", label+":", value))
}

// FormatPricingResult renders a PHI pricing breakdown.
func (cf *ConsoleFormatter) FormatPricingResult(r domain.PHIPricingResult) string {
	var sb strings.Builder
	cf.header(&sb, "PHI PERMANENT DISABILITY PRICING")
	cf.row(&sb, "Jurisdiction", string(r.Jurisdiction))
	cf.row(&sb, "Age", fmt.Sprintf("%d", r.Age))
	cf.row(&sb, "Coverage Amount", "$"+formatCurrency(r.CoverageAmount))
	cf.row(&sb, "Risk Rate", r.RiskRate.Mul(decimal.NewFromInt(100)).StringFixed(2)+"%")
	cf.row(&sb, "Reinsurance Load", r.ReinsuranceLoad.Mul(decimal.NewFromInt(100)).StringFixed(2)+"%")
	cf.row(&sb, "Savings Split", r.SavingsPercentage.Mul(decimal.NewFromInt(100)).StringFixed(2)+"%")
	if !r.HealthLoadingFactor.IsZero() {
		cf.row(&sb, "Health Loading", cf.styles.Warn.Render(r.HealthLoadingFactor.Mul(decimal.NewFromInt(100)).StringFixed(0)+"%"))
	}
	sb.WriteString(strings.Repeat("-", lineWidth) + "\n")
	cf.row(&sb, "Annual Risk Allocation", "$"+formatCurrency(r.AnnualRiskAllocation))
	cf.row(&sb, "Annual Savings Allocation", "$"+formatCurrency(r.AnnualSavingsAllocation))
	cf.row(&sb, "Annual Total Premium", cf.styles.Total.Render("$"+formatCurrency(r.AnnualTotalPremium)))
	cf.row(&sb, "Monthly Total Premium", "$"+formatCurrency(r.MonthlyTotalPremium))
	cf.row(&sb, "Quarterly Total Premium", "$"+formatCurrency(r.QuarterlyTotalPremium))
	return sb.String()
}

// FormatQuote renders a generic policy quote.
func (cf *ConsoleFormatter) FormatQuote(q domain.PolicyQuote) string {
	if q.PHI != nil {
		return cf.FormatPricingResult(*q.PHI)
	}
	var sb strings.Builder
	cf.header(&sb, "POLICY QUOTE")
	cf.row(&sb, "Policy Type", string(q.PolicyType))
	cf.row(&sb, "Age", fmt.Sprintf("%d", q.Age))
	cf.row(&sb, "Coverage Amount", "$"+formatCurrency(q.CoverageAmount))
	cf.row(&sb, "Annual Premium", cf.styles.Total.Render("$"+formatCurrency(q.AnnualPremium)))
	cf.row(&sb, "Monthly Premium", "$"+formatCurrency(q.MonthlyPremium))
	return sb.String()
}

// FormatAccumulativeReport renders a policy's lifetime aggregates.
func (cf *ConsoleFormatter) FormatAccumulativeReport(r domain.AccumulativeReport) string {
	var sb strings.Builder
	cf.header(&sb, "ACCUMULATIVE PREMIUM REPORT - POLICY "+r.PolicyID)
	cf.row(&sb, "Posted Allocations", fmt.Sprintf("%d", r.AllocationCount))
	cf.row(&sb, "Cumulative Premium", "$"+formatCurrency(r.CumulativePremium))
	cf.row(&sb, "Cumulative Risk", "$"+formatCurrency(r.CumulativeRisk))
	cf.row(&sb, "Cumulative Savings", "$"+formatCurrency(r.CumulativeSavings))
	cf.row(&sb, "Overall Risk Share", r.OverallRiskPercentage.StringFixed(2)+"%")
	cf.row(&sb, "Overall Savings Share", r.OverallSavingsPercentage.StringFixed(2)+"%")
	return sb.String()
}

// FormatCustomerStatement renders a customer's statement lines and
// aggregates.
func (cf *ConsoleFormatter) FormatCustomerStatement(s domain.CustomerStatement) string {
	var sb strings.Builder
	cf.header(&sb, "CUSTOMER STATEMENT - "+s.CustomerID)

	period := "all time"
	if !s.PeriodStart.IsZero() || !s.PeriodEnd.IsZero() {
		from, to := "beginning", "present"
		if !s.PeriodStart.IsZero() {
			from = s.PeriodStart.Format("2006-01-02")
		}
		if !s.PeriodEnd.IsZero() {
			to = s.PeriodEnd.Format("2006-01-02")
		}
		period = from + " to " + to
	}
	cf.row(&sb, "Period", period)
	sb.WriteString("\n")

	if len(s.Allocations) == 0 {
		sb.WriteString(cf.styles.Label.Render("No posted allocations in period.") + "\n")
	} else {
		sb.WriteString(fmt.Sprintf("%-12s %-12s %-12s %12s %12s %12s\n",
			"POSTED", "BILL", "POLICY", "PREMIUM", "RISK", "SAVINGS"))
		sb.WriteString(strings.Repeat("-", lineWidth) + "\n")
		for _, a := range s.Allocations {
			sb.WriteString(fmt.Sprintf("%-12s %-12s %-12s %12s %12s %12s\n",
				a.PostedDate.Format("2006-01-02"), a.BillID, a.PolicyID,
				formatCurrency(a.TotalPremium), formatCurrency(a.RiskPremium),
				formatCurrency(a.SavingsPremium)))
		}
	}
	sb.WriteString(strings.Repeat("-", lineWidth) + "\n")
	cf.row(&sb, "Total Premium", cf.styles.Total.Render("$"+formatCurrency(s.CumulativePremium)))
	cf.row(&sb, "Total Risk", "$"+formatCurrency(s.CumulativeRisk))
	cf.row(&sb, "Total Savings", "$"+formatCurrency(s.CumulativeSavings))
	cf.row(&sb, "Overall Risk Share", s.OverallRiskPercentage.StringFixed(2)+"%")
	return sb.String()
}

// FormatCustomerSummary renders a customer's aggregates, ratio, and a
// savings growth projection when one is supplied.
func (cf *ConsoleFormatter) FormatCustomerSummary(s domain.CustomerSummary, projection []decimal.Decimal) string {
	var sb strings.Builder
	cf.header(&sb, "CUSTOMER SUMMARY - "+s.CustomerID)
	cf.row(&sb, "Posted Allocations", fmt.Sprintf("%d", s.AllocationCount))
	cf.row(&sb, "Total Premium", "$"+formatCurrency(s.TotalPremium))
	cf.row(&sb, "Total Risk", "$"+formatCurrency(s.TotalRisk))
	cf.row(&sb, "Total Savings", "$"+formatCurrency(s.TotalSavings))
	cf.row(&sb, "Average Risk Share", s.AverageRiskPercentage.StringFixed(2)+"%")
	cf.row(&sb, "Average Savings Share", s.AverageSavingsPercentage.StringFixed(2)+"%")
	if s.RatioDefined {
		cf.row(&sb, "Risk/Investment Ratio", s.OverallInvestmentRatio.StringFixed(4))
	} else {
		cf.row(&sb, "Risk/Investment Ratio", cf.styles.Label.Render("undefined (no savings)"))
	}
	if len(projection) > 0 {
		sb.WriteString("\n" + cf.styles.Header.Render("SAVINGS PROJECTION") + "\n")
		for year, value := range projection {
			cf.row(&sb, fmt.Sprintf("Year %d", year+1), "$"+formatCurrency(value))
		}
	}
	return sb.String()
}

// FormatAccountingBook renders the double-entry ledger for a period.
func (cf *ConsoleFormatter) FormatAccountingBook(b domain.AccountingBook) string {
	var sb strings.Builder
	cf.header(&sb, "ACCOUNTING BOOK")

	if len(b.Lines) == 0 {
		sb.WriteString(cf.styles.Label.Render("No posted allocations in period.") + "\n")
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("%-12s %-14s %-18s %-18s %12s\n",
		"POSTED", "ALLOCATION", "DEBIT", "CREDIT", "AMOUNT"))
	sb.WriteString(strings.Repeat("-", lineWidth) + "\n")
	for _, line := range b.Lines {
		sb.WriteString(fmt.Sprintf("%-12s %-14s %-18s %-18s %12s\n",
			line.PostedDate.Format("2006-01-02"),
			shortID(line.AllocationID),
			line.DebitAccount, line.CreditAccount,
			formatCurrency(line.Amount)))
	}
	sb.WriteString(strings.Repeat("-", lineWidth) + "\n")
	cf.row(&sb, "Total Risk", "$"+formatCurrency(b.TotalRisk))
	cf.row(&sb, "Total Savings", "$"+formatCurrency(b.TotalSavings))
	cf.row(&sb, "Total Premium", cf.styles.Total.Render("$"+formatCurrency(b.TotalPremium)))
	return sb.String()
}

// shortID truncates UUID-length ids for column layout.
func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
