package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccumulativeReport summarises all posted allocations for one policy.
// Draft allocations are intent, not settled fact, and never contribute.
type AccumulativeReport struct {
	PolicyID                 string          `yaml:"policy_id" json:"policy_id"`
	AllocationCount          int             `yaml:"allocation_count" json:"allocation_count"`
	CumulativePremium        decimal.Decimal `yaml:"cumulative_premium" json:"cumulative_premium"`
	CumulativeRisk           decimal.Decimal `yaml:"cumulative_risk" json:"cumulative_risk"`
	CumulativeSavings        decimal.Decimal `yaml:"cumulative_savings" json:"cumulative_savings"`
	OverallRiskPercentage    decimal.Decimal `yaml:"overall_risk_percentage" json:"overall_risk_percentage"`
	OverallSavingsPercentage decimal.Decimal `yaml:"overall_savings_percentage" json:"overall_savings_percentage"`
}

// CustomerStatement lists a customer's posted allocations inside an
// inclusive date range, with the same aggregates scoped to the customer.
type CustomerStatement struct {
	CustomerID               string               `yaml:"customer_id" json:"customer_id"`
	PeriodStart              time.Time            `yaml:"period_start" json:"period_start"`
	PeriodEnd                time.Time            `yaml:"period_end" json:"period_end"`
	Allocations              []*PremiumAllocation `yaml:"allocations" json:"allocations"`
	AllocationCount          int                  `yaml:"allocation_count" json:"allocation_count"`
	CumulativePremium        decimal.Decimal      `yaml:"cumulative_premium" json:"cumulative_premium"`
	CumulativeRisk           decimal.Decimal      `yaml:"cumulative_risk" json:"cumulative_risk"`
	CumulativeSavings        decimal.Decimal      `yaml:"cumulative_savings" json:"cumulative_savings"`
	OverallRiskPercentage    decimal.Decimal      `yaml:"overall_risk_percentage" json:"overall_risk_percentage"`
	OverallSavingsPercentage decimal.Decimal      `yaml:"overall_savings_percentage" json:"overall_savings_percentage"`
}

// RiskInvestmentRatio reports how much insurance cover a customer funds
// per unit of savings, over all posted allocations.
type RiskInvestmentRatio struct {
	CustomerID   string          `yaml:"customer_id" json:"customer_id"`
	TotalRisk    decimal.Decimal `yaml:"total_risk" json:"total_risk"`
	TotalSavings decimal.Decimal `yaml:"total_savings" json:"total_savings"`
	// Ratio is undefined when TotalSavings is zero; Defined is false and
	// Ratio holds zero in that case.
	Ratio   decimal.Decimal `yaml:"risk_investment_ratio" json:"risk_investment_ratio"`
	Defined bool            `yaml:"ratio_defined" json:"ratio_defined"`
}

// CustomerSummary aggregates a customer's posted allocations. The average
// percentages are simple per-allocation means, not premium-weighted;
// callers needing weighted figures can recompute from Allocations.
type CustomerSummary struct {
	CustomerID               string               `yaml:"customer_id" json:"customer_id"`
	AllocationCount          int                  `yaml:"allocation_count" json:"allocation_count"`
	TotalPremium             decimal.Decimal      `yaml:"total_premium" json:"total_premium"`
	TotalRisk                decimal.Decimal      `yaml:"total_risk" json:"total_risk"`
	TotalSavings             decimal.Decimal      `yaml:"total_savings" json:"total_savings"`
	AverageRiskPercentage    decimal.Decimal      `yaml:"average_risk_percentage" json:"average_risk_percentage"`
	AverageSavingsPercentage decimal.Decimal      `yaml:"average_savings_percentage" json:"average_savings_percentage"`
	OverallInvestmentRatio   decimal.Decimal      `yaml:"overall_investment_ratio" json:"overall_investment_ratio"`
	RatioDefined             bool                 `yaml:"ratio_defined" json:"ratio_defined"`
	Allocations              []*PremiumAllocation `yaml:"allocations" json:"allocations"`
}

// EntryType distinguishes the two sides of a ledger line.
type EntryType string

const (
	EntryDebit  EntryType = "debit"
	EntryCredit EntryType = "credit"
)

// LedgerLine is one logical double-entry line in the accounting book.
type LedgerLine struct {
	AllocationID  string          `yaml:"allocation_id" json:"allocation_id"`
	PolicyID      string          `yaml:"policy_id" json:"policy_id"`
	CustomerID    string          `yaml:"customer_id" json:"customer_id"`
	PostedDate    time.Time       `yaml:"posted_date" json:"posted_date"`
	DebitAccount  string          `yaml:"debit_account" json:"debit_account"`
	CreditAccount string          `yaml:"credit_account" json:"credit_account"`
	Amount        decimal.Decimal `yaml:"amount" json:"amount"`
	Memo          string          `yaml:"memo" json:"memo"`
}

// AccountingBook is the system-wide ledger of posted allocations in a date
// range: two lines per allocation, one for the risk component and one for
// the savings component.
type AccountingBook struct {
	PeriodStart  time.Time       `yaml:"period_start" json:"period_start"`
	PeriodEnd    time.Time       `yaml:"period_end" json:"period_end"`
	Lines        []LedgerLine    `yaml:"lines" json:"lines"`
	TotalRisk    decimal.Decimal `yaml:"total_risk" json:"total_risk"`
	TotalSavings decimal.Decimal `yaml:"total_savings" json:"total_savings"`
	TotalPremium decimal.Decimal `yaml:"total_premium" json:"total_premium"`
}
