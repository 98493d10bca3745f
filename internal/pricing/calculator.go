// Package pricing computes premiums for the platform's product lines.
//
// PRICING ASSUMPTIONS:
//
//  1. PHI (permanent disability) is priced from the ADL actuarial tables
//     with an operational reinsurance load and a configurable savings
//     split. At least 5% of every PHI premium must fund risk cover; the
//     savings share is clamped to 0.95 regardless of input.
//  2. All other lines (life, health, auto, property, business) use a flat
//     base-rate table with a simple age factor. These rates are
//     commercial placeholders, not actuarially derived.
//  3. Every monetary output is rounded to cents; within a result the
//     savings side is derived as a remainder so components reconcile.
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/premialab/premia/internal/actuarial"
	"github.com/premialab/premia/internal/domain"
)

var (
	one    = decimal.NewFromInt(1)
	four   = decimal.NewFromInt(4)
	twelve = decimal.NewFromInt(12)

	maxSavingsShare = decimal.RequireFromString("0.95")
)

// DefaultBaseRates is the compiled-in annual base-rate table for non-PHI
// lines, expressed as a fraction of coverage.
func DefaultBaseRates() map[domain.PolicyType]decimal.Decimal {
	return map[domain.PolicyType]decimal.Decimal{
		domain.PolicyLife:     decimal.RequireFromString("0.012"),
		domain.PolicyHealth:   decimal.RequireFromString("0.020"),
		domain.PolicyAuto:     decimal.RequireFromString("0.035"),
		domain.PolicyProperty: decimal.RequireFromString("0.008"),
		domain.PolicyBusiness: decimal.RequireFromString("0.025"),
	}
}

// Calculator prices policies across all product lines.
type Calculator struct {
	baseRates map[domain.PolicyType]decimal.Decimal
}

// NewCalculator creates a calculator with the compiled-in base rates.
func NewCalculator() *Calculator {
	return &Calculator{baseRates: DefaultBaseRates()}
}

// NewCalculatorWithRates creates a calculator with a configured base-rate
// table. Missing lines fall back to the compiled-in defaults.
func NewCalculatorWithRates(rates map[domain.PolicyType]decimal.Decimal) *Calculator {
	merged := DefaultBaseRates()
	for pt, r := range rates {
		merged[pt] = r
	}
	return &Calculator{baseRates: merged}
}

// PricePHIPermanentDisability prices a PHI product from the actuarial
// tables.
//
// savingsPercentage is a fraction in [0, 0.95]; values above the cap
// clamp to it so risk cover never drops below 5% of the premium.
// reinsuranceLoad is a fraction clamped to >= 0.
func (c *Calculator) PricePHIPermanentDisability(coverageAmount decimal.Decimal, age int, jurisdiction domain.Jurisdiction, reinsuranceLoad, savingsPercentage decimal.Decimal) domain.PHIPricingResult {
	if savingsPercentage.LessThan(decimal.Zero) {
		savingsPercentage = decimal.Zero
	}
	if savingsPercentage.GreaterThan(maxSavingsShare) {
		savingsPercentage = maxSavingsShare
	}
	if reinsuranceLoad.LessThan(decimal.Zero) {
		reinsuranceLoad = decimal.Zero
	}

	rate := actuarial.ADLDisabilityRate(jurisdiction, age)

	annualRiskCost := coverageAmount.Mul(rate)
	loadedRiskCost := annualRiskCost.Mul(one.Add(reinsuranceLoad))
	riskFraction := one.Sub(savingsPercentage)

	annualRisk := loadedRiskCost.Round(2)
	annualTotal := loadedRiskCost.Div(riskFraction).Round(2)
	annualSavings := annualTotal.Sub(annualRisk)

	monthlyRisk := annualRisk.Div(twelve).Round(2)
	monthlySavings := annualSavings.Div(twelve).Round(2)

	return domain.PHIPricingResult{
		Jurisdiction:             jurisdiction,
		Age:                      age,
		CoverageAmount:           coverageAmount,
		RiskRate:                 rate,
		ReinsuranceLoad:          reinsuranceLoad,
		SavingsPercentage:        savingsPercentage,
		AnnualRiskAllocation:     annualRisk,
		AnnualSavingsAllocation:  annualSavings,
		MonthlyRiskAllocation:    monthlyRisk,
		MonthlySavingsAllocation: monthlySavings,
		AnnualTotalPremium:       annualTotal,
		MonthlyTotalPremium:      monthlyRisk.Add(monthlySavings),
		QuarterlyTotalPremium:    annualTotal.Div(four).Round(2),
	}
}

// HealthLoadingFactor maps a 1-10 health condition score to a loading
// factor on the risk allocation. Out-of-range scores are treated as a
// score of 3, i.e. no loading; underwriting rejects rather than loads
// when it cannot score a condition.
func HealthLoadingFactor(score int) decimal.Decimal {
	switch {
	case score >= 4 && score <= 6:
		return decimal.RequireFromString("0.15")
	case score >= 7 && score <= 8:
		return decimal.RequireFromString("0.50")
	case score >= 9 && score <= 10:
		return decimal.NewFromInt(1)
	default:
		return decimal.Zero
	}
}

// ApplyHealthRiskLoading adjusts a priced PHI result for a health
// condition score. The loading applies to the risk allocation only; the
// savings allocation is untouched and the totals are re-derived from the
// adjusted components.
func ApplyHealthRiskLoading(result domain.PHIPricingResult, score int) domain.PHIPricingResult {
	factor := HealthLoadingFactor(score)
	if factor.IsZero() {
		result.HealthLoadingFactor = decimal.Zero
		return result
	}

	result.AnnualRiskAllocation = result.AnnualRiskAllocation.Add(result.AnnualRiskAllocation.Mul(factor)).Round(2)
	result.MonthlyRiskAllocation = result.MonthlyRiskAllocation.Add(result.MonthlyRiskAllocation.Mul(factor)).Round(2)
	result.AnnualTotalPremium = result.AnnualRiskAllocation.Add(result.AnnualSavingsAllocation)
	result.MonthlyTotalPremium = result.MonthlyRiskAllocation.Add(result.MonthlySavingsAllocation)
	result.QuarterlyTotalPremium = result.AnnualTotalPremium.Div(four).Round(2)
	result.HealthLoadingFactor = factor
	return result
}

// PricePolicy routes a pricing request by product line: disability and
// phi go through the actuarial path, everything else through the
// base-rate table.
func (c *Calculator) PricePolicy(in domain.PolicyInput) (domain.PolicyQuote, error) {
	switch in.PolicyType {
	case domain.PolicyDisability, domain.PolicyPHI:
		phi := c.PricePHIPermanentDisability(in.CoverageAmount, in.Age, in.Jurisdiction, in.ReinsuranceLoad, in.SavingsPercentage)
		return domain.PolicyQuote{
			PolicyType:     in.PolicyType,
			CoverageAmount: in.CoverageAmount,
			Age:            in.Age,
			AnnualPremium:  phi.AnnualTotalPremium,
			MonthlyPremium: phi.MonthlyTotalPremium,
			PHI:            &phi,
		}, nil
	}

	baseRate, ok := c.baseRates[in.PolicyType]
	if !ok {
		return domain.PolicyQuote{}, fmt.Errorf("no base rate configured for policy type %q", in.PolicyType)
	}

	annual := in.CoverageAmount.Mul(baseRate).Mul(ageFactor(in.Age)).Round(2)
	return domain.PolicyQuote{
		PolicyType:     in.PolicyType,
		CoverageAmount: in.CoverageAmount,
		Age:            in.Age,
		AnnualPremium:  annual,
		MonthlyPremium: annual.Div(twelve).Round(2),
	}, nil
}

// ageFactor scales table-rated premiums: flat through age 30, then 2% per
// year of age above 30.
func ageFactor(age int) decimal.Decimal {
	if age <= 30 {
		return one
	}
	over := decimal.NewFromInt(int64(age - 30))
	return one.Add(over.Mul(decimal.RequireFromString("0.02")))
}
