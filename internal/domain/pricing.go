package domain

import "github.com/shopspring/decimal"

// Jurisdiction selects the actuarial table used for PHI pricing.
type Jurisdiction string

const (
	JurisdictionUS Jurisdiction = "US"
	JurisdictionUK Jurisdiction = "UK"
)

// PolicyType identifies a product line for the generic pricing dispatcher.
type PolicyType string

const (
	PolicyDisability PolicyType = "disability"
	PolicyPHI        PolicyType = "phi"
	PolicyLife       PolicyType = "life"
	PolicyHealth     PolicyType = "health"
	PolicyAuto       PolicyType = "auto"
	PolicyProperty   PolicyType = "property"
	PolicyBusiness   PolicyType = "business"
)

// PHIPricingResult is the outcome of pricing a permanent-disability
// product. It is recomputed on every request and never persisted.
type PHIPricingResult struct {
	Jurisdiction   Jurisdiction    `yaml:"jurisdiction" json:"jurisdiction"`
	Age            int             `yaml:"age" json:"age"`
	CoverageAmount decimal.Decimal `yaml:"coverage_amount" json:"coverage_amount"`
	RiskRate       decimal.Decimal `yaml:"risk_rate" json:"risk_rate"`
	// ReinsuranceLoad is the operational reinsurance load applied on top
	// of the raw actuarial risk cost, as a fraction (0.10 = 10%).
	ReinsuranceLoad   decimal.Decimal `yaml:"reinsurance_load" json:"reinsurance_load"`
	SavingsPercentage decimal.Decimal `yaml:"savings_percentage" json:"savings_percentage"`

	AnnualRiskAllocation     decimal.Decimal `yaml:"annual_risk_allocation" json:"annual_risk_allocation"`
	AnnualSavingsAllocation  decimal.Decimal `yaml:"annual_savings_allocation" json:"annual_savings_allocation"`
	MonthlyRiskAllocation    decimal.Decimal `yaml:"monthly_risk_allocation" json:"monthly_risk_allocation"`
	MonthlySavingsAllocation decimal.Decimal `yaml:"monthly_savings_allocation" json:"monthly_savings_allocation"`
	AnnualTotalPremium       decimal.Decimal `yaml:"annual_total_premium" json:"annual_total_premium"`
	MonthlyTotalPremium      decimal.Decimal `yaml:"monthly_total_premium" json:"monthly_total_premium"`
	QuarterlyTotalPremium    decimal.Decimal `yaml:"quarterly_total_premium" json:"quarterly_total_premium"`

	// HealthLoadingFactor is zero until ApplyHealthRiskLoading adjusts the
	// result for a health condition score.
	HealthLoadingFactor decimal.Decimal `yaml:"health_loading_factor" json:"health_loading_factor"`
}

// RiskPercentage returns the share of the annual premium funding insurance
// cover, as a 0-100 percentage. Useful for booking a priced quote as an
// allocation.
func (r *PHIPricingResult) RiskPercentage() decimal.Decimal {
	if r.AnnualTotalPremium.IsZero() {
		return decimal.Zero
	}
	return r.AnnualRiskAllocation.Div(r.AnnualTotalPremium).Mul(decimal.NewFromInt(100))
}

// PolicyQuote is the result of the generic pricing dispatcher.
type PolicyQuote struct {
	PolicyType     PolicyType      `yaml:"policy_type" json:"policy_type"`
	CoverageAmount decimal.Decimal `yaml:"coverage_amount" json:"coverage_amount"`
	Age            int             `yaml:"age" json:"age"`
	AnnualPremium  decimal.Decimal `yaml:"annual_premium" json:"annual_premium"`
	MonthlyPremium decimal.Decimal `yaml:"monthly_premium" json:"monthly_premium"`
	// PHI carries the full actuarial breakdown when the quote came
	// through the permanent-disability path; nil for table-rated lines.
	PHI *PHIPricingResult `yaml:"phi,omitempty" json:"phi,omitempty"`
}

// PolicyInput carries the fields the generic dispatcher routes on.
type PolicyInput struct {
	PolicyType     PolicyType      `yaml:"policy_type" json:"policy_type"`
	CoverageAmount decimal.Decimal `yaml:"coverage_amount" json:"coverage_amount"`
	Age            int             `yaml:"age" json:"age"`
	Jurisdiction   Jurisdiction    `yaml:"jurisdiction" json:"jurisdiction"`
	// SavingsPercentage and ReinsuranceLoad only apply to the PHI path.
	SavingsPercentage decimal.Decimal `yaml:"savings_percentage" json:"savings_percentage"`
	ReinsuranceLoad   decimal.Decimal `yaml:"reinsurance_load" json:"reinsurance_load"`
}
