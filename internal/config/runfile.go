package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/premialab/premia/internal/domain"
)

// AllocationEntry is one allocation in a batch run file: create, and
// optionally post and acknowledge in the same pass.
type AllocationEntry struct {
	BillID     string `yaml:"bill_id" json:"bill_id"`
	PolicyID   string `yaml:"policy_id" json:"policy_id"`
	CustomerID string `yaml:"customer_id" json:"customer_id"`

	TotalPremium   decimal.Decimal `yaml:"total_premium" json:"total_premium"`
	RiskPercentage decimal.Decimal `yaml:"risk_percentage" json:"risk_percentage"`

	InvestmentRoute            domain.InvestmentRoute  `yaml:"investment_route,omitempty" json:"investment_route,omitempty"`
	AnnualInterestRate         *decimal.Decimal        `yaml:"annual_interest_rate,omitempty" json:"annual_interest_rate,omitempty"`
	Notes                      string                  `yaml:"notes,omitempty" json:"notes,omitempty"`
	CapitalRevenueJurisdiction string                  `yaml:"capital_revenue_jurisdiction,omitempty" json:"capital_revenue_jurisdiction,omitempty"`
	Post                       bool                    `yaml:"post" json:"post"`
	PostedBy                   string                  `yaml:"posted_by,omitempty" json:"posted_by,omitempty"`
	Acknowledge                []domain.DisclaimerType `yaml:"acknowledge,omitempty" json:"acknowledge,omitempty"`
}

// RunReports selects the reports a batch run prints afterwards.
type RunReports struct {
	Policies       []string `yaml:"policies,omitempty" json:"policies,omitempty"`
	Customers      []string `yaml:"customers,omitempty" json:"customers,omitempty"`
	AccountingBook bool     `yaml:"accounting_book" json:"accounting_book"`
}

// RunFile is the input to `premia run`: allocations to book plus the
// reports to generate from the result.
type RunFile struct {
	Allocations []AllocationEntry `yaml:"allocations" json:"allocations"`
	Reports     RunReports        `yaml:"reports" json:"reports"`
}

// LoadRunFile loads and validates a batch run file.
func (p *Parser) LoadRunFile(filename string) (*RunFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var run RunFile
	if err := yaml.Unmarshal(data, &run); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := p.ValidateRunFile(&run); err != nil {
		return nil, fmt.Errorf("run file validation failed: %w", err)
	}
	return &run, nil
}

// ValidateRunFile checks the batch entries before any of them is booked,
// so a bad entry fails the run up front instead of half way through.
func (p *Parser) ValidateRunFile(run *RunFile) error {
	if len(run.Allocations) == 0 {
		return fmt.Errorf("no allocations provided")
	}
	for i, entry := range run.Allocations {
		if entry.BillID == "" {
			return fmt.Errorf("allocation %d: bill_id is required", i)
		}
		if entry.PolicyID == "" {
			return fmt.Errorf("allocation %d (%s): policy_id is required", i, entry.BillID)
		}
		if entry.CustomerID == "" {
			return fmt.Errorf("allocation %d (%s): customer_id is required", i, entry.BillID)
		}
		if entry.TotalPremium.LessThan(decimal.Zero) {
			return fmt.Errorf("allocation %d (%s): total_premium must not be negative", i, entry.BillID)
		}
		if entry.RiskPercentage.LessThan(decimal.Zero) || entry.RiskPercentage.GreaterThan(decimal.NewFromInt(100)) {
			return fmt.Errorf("allocation %d (%s): risk_percentage must be within [0, 100]", i, entry.BillID)
		}
		if entry.InvestmentRoute != "" && !domain.ValidInvestmentRoute(entry.InvestmentRoute) {
			return fmt.Errorf("allocation %d (%s): unknown investment route %q", i, entry.BillID, entry.InvestmentRoute)
		}
		if entry.Post && entry.PostedBy == "" {
			return fmt.Errorf("allocation %d (%s): posted_by is required when post is true", i, entry.BillID)
		}
	}
	return nil
}
