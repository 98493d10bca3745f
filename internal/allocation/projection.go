package allocation

import (
	"github.com/shopspring/decimal"

	"github.com/premialab/premia/internal/domain"
)

// ProjectSavingsGrowth projects an allocation's savings premium forward
// at its annual interest rate with monthly compounding, returning the
// value after each of the given number of years, rounded to cents.
// A draft projects the same as a posted allocation; projection is a
// what-if view, not a reporting aggregate.
func ProjectSavingsGrowth(a *domain.PremiumAllocation, years int) []decimal.Decimal {
	if years <= 0 {
		return nil
	}

	monthlyRate := a.AnnualInterestRate.Div(decimal.NewFromInt(12))
	growthPerMonth := decimal.NewFromInt(1).Add(monthlyRate)

	values := make([]decimal.Decimal, years)
	balance := a.SavingsPremium
	for year := 0; year < years; year++ {
		for month := 0; month < 12; month++ {
			balance = balance.Mul(growthPerMonth)
		}
		values[year] = balance.Round(2)
	}
	return values
}

// AllocationInputFromPricing converts a priced PHI quote into a create
// request booking its annual premium, with the risk percentage implied by
// the quote's risk/total split.
func AllocationInputFromPricing(billID, policyID, customerID string, r domain.PHIPricingResult) CreateAllocationInput {
	return CreateAllocationInput{
		BillID:                     billID,
		PolicyID:                   policyID,
		CustomerID:                 customerID,
		TotalPremium:               r.AnnualTotalPremium,
		RiskPercentage:             r.RiskPercentage().Round(4),
		CapitalRevenueJurisdiction: string(r.Jurisdiction),
	}
}
