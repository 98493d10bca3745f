package output

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/premialab/premia/internal/domain"
)

// JSONFormatter serializes reports for machine consumers. Every monetary
// and percentage value is emitted as a fixed two-decimal string so no
// boundary ever sees floating-point display artifacts.
type JSONFormatter struct{}

// NewJSONFormatter creates a JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

func money(d decimal.Decimal) string { return d.StringFixed(2) }

func jsonTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

func allocationView(a *domain.PremiumAllocation) map[string]any {
	v := map[string]any{
		"allocation_id":      a.AllocationID,
		"bill_id":            a.BillID,
		"policy_id":          a.PolicyID,
		"customer_id":        a.CustomerID,
		"total_premium":      money(a.TotalPremium),
		"risk_percentage":    money(a.RiskPercentage),
		"savings_percentage": money(a.SavingsPercentage),
		"risk_premium":       money(a.RiskPremium),
		"savings_premium":    money(a.SavingsPremium),
		"status":             string(a.Status),
		"investment_route":   string(a.InvestmentRoute),
		"created_date":       jsonTime(a.CreatedDate),
	}
	if a.PostedDate != nil {
		v["posted_date"] = jsonTime(*a.PostedDate)
		v["posted_by"] = a.PostedBy
	}
	if ratio, defined := a.InvestmentRatio(); defined {
		v["investment_ratio"] = ratio.StringFixed(4)
	}
	if acked := a.AcknowledgedTypes(); len(acked) > 0 {
		v["disclaimers_acknowledged"] = acked
	}
	return v
}

// FormatAccumulativeReport serializes a policy report.
func (jf *JSONFormatter) FormatAccumulativeReport(r domain.AccumulativeReport) ([]byte, error) {
	return json.MarshalIndent(map[string]any{
		"policy_id":                  r.PolicyID,
		"allocation_count":           r.AllocationCount,
		"cumulative_premium":         money(r.CumulativePremium),
		"cumulative_risk":            money(r.CumulativeRisk),
		"cumulative_savings":         money(r.CumulativeSavings),
		"overall_risk_percentage":    money(r.OverallRiskPercentage),
		"overall_savings_percentage": money(r.OverallSavingsPercentage),
	}, "", "  ")
}

// FormatCustomerStatement serializes a customer statement.
func (jf *JSONFormatter) FormatCustomerStatement(s domain.CustomerStatement) ([]byte, error) {
	allocs := make([]map[string]any, len(s.Allocations))
	for i, a := range s.Allocations {
		allocs[i] = allocationView(a)
	}
	return json.MarshalIndent(map[string]any{
		"customer_id":             s.CustomerID,
		"period_start":            jsonTime(s.PeriodStart),
		"period_end":              jsonTime(s.PeriodEnd),
		"allocation_count":        s.AllocationCount,
		"cumulative_premium":      money(s.CumulativePremium),
		"cumulative_risk":         money(s.CumulativeRisk),
		"cumulative_savings":      money(s.CumulativeSavings),
		"overall_risk_percentage": money(s.OverallRiskPercentage),
		"allocations":             allocs,
	}, "", "  ")
}

// FormatCustomerSummary serializes a customer summary.
func (jf *JSONFormatter) FormatCustomerSummary(s domain.CustomerSummary) ([]byte, error) {
	allocs := make([]map[string]any, len(s.Allocations))
	for i, a := range s.Allocations {
		allocs[i] = allocationView(a)
	}
	v := map[string]any{
		"customer_id":                s.CustomerID,
		"allocation_count":           s.AllocationCount,
		"total_premium":              money(s.TotalPremium),
		"total_risk":                 money(s.TotalRisk),
		"total_savings":              money(s.TotalSavings),
		"average_risk_percentage":    money(s.AverageRiskPercentage),
		"average_savings_percentage": money(s.AverageSavingsPercentage),
		"allocations":                allocs,
	}
	if s.RatioDefined {
		v["overall_investment_ratio"] = s.OverallInvestmentRatio.StringFixed(4)
	}
	return json.MarshalIndent(v, "", "  ")
}

// FormatAccountingBook serializes the ledger for a period.
func (jf *JSONFormatter) FormatAccountingBook(b domain.AccountingBook) ([]byte, error) {
	lines := make([]map[string]any, len(b.Lines))
	for i, line := range b.Lines {
		lines[i] = map[string]any{
			"allocation_id":  line.AllocationID,
			"policy_id":      line.PolicyID,
			"customer_id":    line.CustomerID,
			"posted_date":    jsonTime(line.PostedDate),
			"debit_account":  line.DebitAccount,
			"credit_account": line.CreditAccount,
			"amount":         money(line.Amount),
			"memo":           line.Memo,
		}
	}
	return json.MarshalIndent(map[string]any{
		"period_start":  jsonTime(b.PeriodStart),
		"period_end":    jsonTime(b.PeriodEnd),
		"lines":         lines,
		"total_risk":    money(b.TotalRisk),
		"total_savings": money(b.TotalSavings),
		"total_premium": money(b.TotalPremium),
	}, "", "  ")
}

// FormatPricingResult serializes a PHI pricing breakdown.
func (jf *JSONFormatter) FormatPricingResult(r domain.PHIPricingResult) ([]byte, error) {
	return json.MarshalIndent(map[string]any{
		"jurisdiction":               string(r.Jurisdiction),
		"age":                        r.Age,
		"coverage_amount":            money(r.CoverageAmount),
		"risk_rate":                  r.RiskRate.String(),
		"reinsurance_load":           r.ReinsuranceLoad.String(),
		"savings_percentage":         r.SavingsPercentage.String(),
		"annual_risk_allocation":     money(r.AnnualRiskAllocation),
		"annual_savings_allocation":  money(r.AnnualSavingsAllocation),
		"monthly_risk_allocation":    money(r.MonthlyRiskAllocation),
		"monthly_savings_allocation": money(r.MonthlySavingsAllocation),
		"annual_total_premium":       money(r.AnnualTotalPremium),
		"monthly_total_premium":      money(r.MonthlyTotalPremium),
		"quarterly_total_premium":    money(r.QuarterlyTotalPremium),
		"health_loading_factor":      r.HealthLoadingFactor.String(),
	}, "", "  ")
}
