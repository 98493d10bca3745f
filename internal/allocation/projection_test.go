package allocation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/premialab/premia/internal/domain"
)

func TestProjectSavingsGrowth(t *testing.T) {
	a := &domain.PremiumAllocation{
		SavingsPremium:     d("1000.00"),
		AnnualInterestRate: d("0.12"), // 1% monthly for round numbers
	}

	values := ProjectSavingsGrowth(a, 3)
	require.Len(t, values, 3)

	// 1000 * 1.01^12 = 1126.83 to the cent.
	assertDecimalEqual(t, d("1126.83"), values[0])

	// Compounding is strictly increasing at a positive rate.
	assert.True(t, values[1].GreaterThan(values[0]))
	assert.True(t, values[2].GreaterThan(values[1]))
}

func TestProjectSavingsGrowthZeroRate(t *testing.T) {
	a := &domain.PremiumAllocation{
		SavingsPremium:     d("250.00"),
		AnnualInterestRate: decimal.Zero,
	}
	values := ProjectSavingsGrowth(a, 2)
	require.Len(t, values, 2)
	assertDecimalEqual(t, d("250.00"), values[0])
	assertDecimalEqual(t, d("250.00"), values[1])
}

func TestProjectSavingsGrowthNoYears(t *testing.T) {
	a := &domain.PremiumAllocation{SavingsPremium: d("100.00"), AnnualInterestRate: d("0.02")}
	assert.Nil(t, ProjectSavingsGrowth(a, 0))
	assert.Nil(t, ProjectSavingsGrowth(a, -3))
}

func TestAllocationInputFromPricing(t *testing.T) {
	result := domain.PHIPricingResult{
		Jurisdiction:            domain.JurisdictionUK,
		AnnualTotalPremium:      d("8250.00"),
		AnnualRiskAllocation:    d("3300.00"),
		AnnualSavingsAllocation: d("4950.00"),
	}

	in := AllocationInputFromPricing("B9", "P9", "C9", result)
	assertDecimalEqual(t, d("8250.00"), in.TotalPremium)
	assertDecimalEqual(t, d("40"), in.RiskPercentage) // 3300 / 8250
	assert.Equal(t, "UK", in.CapitalRevenueJurisdiction)

	// A priced quote books cleanly as an allocation.
	e := newTestEngine(t)
	a, err := e.CreateAllocation(in)
	require.NoError(t, err)
	assertDecimalEqual(t, d("3300.00"), a.RiskPremium)
	assertDecimalEqual(t, d("4950.00"), a.SavingsPremium)
}
