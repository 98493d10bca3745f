package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// AllocationStatus is the lifecycle state of a premium allocation.
type AllocationStatus string

const (
	// StatusDraft marks an allocation that has been created but not yet
	// confirmed. Drafts are visible to point lookups but excluded from
	// every reporting aggregate.
	StatusDraft AllocationStatus = "draft"
	// StatusPosted marks an allocation confirmed as settled fact. Numeric
	// fields are immutable once posted.
	StatusPosted AllocationStatus = "posted"
	// StatusReversed is reserved for a future ledger-correction path.
	// No engine operation currently produces it.
	StatusReversed AllocationStatus = "reversed"
)

// InvestmentRoute identifies where the savings component of a premium is
// directed.
type InvestmentRoute string

const (
	RouteBasicSavings   InvestmentRoute = "basic_savings"
	RouteBonds          InvestmentRoute = "bonds"
	RouteEquities       InvestmentRoute = "equities"
	RouteMixedPortfolio InvestmentRoute = "mixed_portfolio"
)

// ValidInvestmentRoute reports whether r is one of the known routes.
func ValidInvestmentRoute(r InvestmentRoute) bool {
	switch r {
	case RouteBasicSavings, RouteBonds, RouteEquities, RouteMixedPortfolio:
		return true
	}
	return false
}

// PremiumAllocation records the split of one billed premium into a risk
// (insurance cover) component and a savings/investment component.
type PremiumAllocation struct {
	AllocationID string `yaml:"allocation_id" json:"allocation_id"`
	BillID       string `yaml:"bill_id" json:"bill_id"`
	PolicyID     string `yaml:"policy_id" json:"policy_id"`
	CustomerID   string `yaml:"customer_id" json:"customer_id"`

	TotalPremium      decimal.Decimal `yaml:"total_premium" json:"total_premium"`
	RiskPercentage    decimal.Decimal `yaml:"risk_percentage" json:"risk_percentage"`
	SavingsPercentage decimal.Decimal `yaml:"savings_percentage" json:"savings_percentage"`
	RiskPremium       decimal.Decimal `yaml:"risk_premium" json:"risk_premium"`
	// SavingsPremium is always TotalPremium minus RiskPremium, never
	// rounded independently, so the two components reconcile exactly.
	SavingsPremium decimal.Decimal `yaml:"savings_premium" json:"savings_premium"`

	Status AllocationStatus `yaml:"status" json:"status"`

	InvestmentRoute            InvestmentRoute `yaml:"investment_route" json:"investment_route"`
	AnnualInterestRate         decimal.Decimal `yaml:"annual_interest_rate" json:"annual_interest_rate"`
	AllocationNotes            string          `yaml:"allocation_notes,omitempty" json:"allocation_notes,omitempty"`
	CapitalRevenueJurisdiction string          `yaml:"capital_revenue_jurisdiction,omitempty" json:"capital_revenue_jurisdiction,omitempty"`

	CreatedDate time.Time  `yaml:"created_date" json:"created_date"`
	PostedDate  *time.Time `yaml:"posted_date,omitempty" json:"posted_date,omitempty"`
	PostedBy    string     `yaml:"posted_by,omitempty" json:"posted_by,omitempty"`

	DisclaimersAcknowledged map[DisclaimerType]bool `yaml:"disclaimers_acknowledged,omitempty" json:"disclaimers_acknowledged,omitempty"`
}

// SplitPremium divides a total premium by a risk percentage. The risk
// component is rounded to cents; the savings component is the remainder,
// so risk + savings always equals total exactly.
func SplitPremium(total, riskPercentage decimal.Decimal) (risk, savings decimal.Decimal) {
	risk = total.Mul(riskPercentage).Div(decimal.NewFromInt(100)).Round(2)
	savings = total.Sub(risk)
	return risk, savings
}

// InvestmentRatio returns risk premium divided by savings premium. The
// second return is false when the savings premium is zero and the ratio
// is undefined.
func (a *PremiumAllocation) InvestmentRatio() (decimal.Decimal, bool) {
	if a.SavingsPremium.IsZero() {
		return decimal.Zero, false
	}
	return a.RiskPremium.Div(a.SavingsPremium), true
}

// IsPosted reports whether the allocation has been confirmed.
func (a *PremiumAllocation) IsPosted() bool {
	return a.Status == StatusPosted
}

// Acknowledge records a disclaimer acknowledgement. Acknowledging the same
// type twice has no additional effect.
func (a *PremiumAllocation) Acknowledge(t DisclaimerType) {
	if a.DisclaimersAcknowledged == nil {
		a.DisclaimersAcknowledged = make(map[DisclaimerType]bool)
	}
	a.DisclaimersAcknowledged[t] = true
}

// AcknowledgedTypes returns the acknowledged disclaimer types in a stable
// order.
func (a *PremiumAllocation) AcknowledgedTypes() []DisclaimerType {
	types := make([]DisclaimerType, 0, len(a.DisclaimersAcknowledged))
	for t := range a.DisclaimersAcknowledged {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// Clone returns a deep copy so callers can hand allocations across the
// engine boundary without aliasing the registry's record.
func (a *PremiumAllocation) Clone() *PremiumAllocation {
	cp := *a
	if a.PostedDate != nil {
		d := *a.PostedDate
		cp.PostedDate = &d
	}
	if a.DisclaimersAcknowledged != nil {
		cp.DisclaimersAcknowledged = make(map[DisclaimerType]bool, len(a.DisclaimersAcknowledged))
		for t := range a.DisclaimersAcknowledged {
			cp.DisclaimersAcknowledged[t] = true
		}
	}
	return &cp
}
