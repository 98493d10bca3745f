package domain

import "time"

// DisclaimerType identifies a legal disclaimer in the compliance catalog.
type DisclaimerType string

const (
	DisclaimerBuyContract    DisclaimerType = "buy_contract"
	DisclaimerClaimInsurance DisclaimerType = "claim_insurance"
	DisclaimerInvestSavings  DisclaimerType = "invest_savings"
	DisclaimerCapitalRevenue DisclaimerType = "capital_revenue_tax"
	DisclaimerCancelContract DisclaimerType = "cancel_contract"
)

// Disclaimer is a static catalog entry. Entries are immutable once defined
// and are looked up by type, never created at runtime.
type Disclaimer struct {
	Type          DisclaimerType `yaml:"type" json:"type"`
	Title         string         `yaml:"title" json:"title"`
	Version       string         `yaml:"version" json:"version"`
	EffectiveDate time.Time      `yaml:"effective_date" json:"effective_date"`
	Content       string         `yaml:"content" json:"content"`
}
