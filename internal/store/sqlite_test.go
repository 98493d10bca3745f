package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/premialab/premia/internal/allocation"
	"github.com/premialab/premia/internal/domain"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "allocations.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sampleAllocation() *domain.PremiumAllocation {
	posted := time.Date(2026, 2, 1, 9, 30, 0, 0, time.UTC)
	a := &domain.PremiumAllocation{
		AllocationID:               "alloc-1",
		BillID:                     "B1",
		PolicyID:                   "P1",
		CustomerID:                 "C1",
		TotalPremium:               d("1000.00"),
		RiskPercentage:             d("75"),
		SavingsPercentage:          d("25"),
		RiskPremium:                d("750.00"),
		SavingsPremium:             d("250.00"),
		Status:                     domain.StatusPosted,
		InvestmentRoute:            domain.RouteBonds,
		AnnualInterestRate:         d("0.035"),
		AllocationNotes:            "first annual premium",
		CapitalRevenueJurisdiction: "UK",
		CreatedDate:                time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC),
		PostedDate:                 &posted,
		PostedBy:                   "accounting-ops",
	}
	a.Acknowledge(domain.DisclaimerBuyContract)
	a.Acknowledge(domain.DisclaimerInvestSavings)
	return a
}

func TestSaveAndLoadRoundtrip(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.SaveAllocation(sampleAllocation()))

	loaded, err := s.LoadAllocations()
	require.NoError(t, err)
	require.Len(t, loaded, 1)

	got := loaded[0]
	assert.Equal(t, "alloc-1", got.AllocationID)
	assert.Equal(t, domain.StatusPosted, got.Status)
	assert.Equal(t, domain.RouteBonds, got.InvestmentRoute)
	assert.True(t, got.TotalPremium.Equal(d("1000.00")), "total = %s", got.TotalPremium)
	assert.True(t, got.RiskPremium.Equal(d("750.00")))
	assert.True(t, got.SavingsPremium.Equal(d("250.00")))
	assert.True(t, got.AnnualInterestRate.Equal(d("0.035")))
	assert.Equal(t, "first annual premium", got.AllocationNotes)
	assert.Equal(t, "UK", got.CapitalRevenueJurisdiction)
	assert.Equal(t, "accounting-ops", got.PostedBy)
	require.NotNil(t, got.PostedDate)
	assert.True(t, got.PostedDate.Equal(time.Date(2026, 2, 1, 9, 30, 0, 0, time.UTC)))
	assert.Equal(t,
		[]domain.DisclaimerType{domain.DisclaimerBuyContract, domain.DisclaimerInvestSavings},
		got.AcknowledgedTypes())
}

func TestSaveUpdatesLifecycleFields(t *testing.T) {
	s := newTestStore(t)

	a := sampleAllocation()
	a.Status = domain.StatusDraft
	a.PostedDate = nil
	a.PostedBy = ""
	a.DisclaimersAcknowledged = nil
	require.NoError(t, s.SaveAllocation(a))

	posted := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	a.Status = domain.StatusPosted
	a.PostedDate = &posted
	a.PostedBy = "ops"
	a.Acknowledge(domain.DisclaimerCapitalRevenue)
	require.NoError(t, s.SaveAllocation(a))

	loaded, err := s.LoadAllocations()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, domain.StatusPosted, loaded[0].Status)
	assert.Equal(t, "ops", loaded[0].PostedBy)
	assert.Equal(t, []domain.DisclaimerType{domain.DisclaimerCapitalRevenue}, loaded[0].AcknowledgedTypes())
}

func TestEngineReplaysStore(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "allocations.db")

	s, err := Open(dbPath)
	require.NoError(t, err)

	engine, err := allocation.NewEngine(allocation.WithStore(s))
	require.NoError(t, err)

	a, err := engine.CreateAllocation(allocation.CreateAllocationInput{
		BillID:         "B1",
		PolicyID:       "P1",
		CustomerID:     "C1",
		TotalPremium:   d("1000.00"),
		RiskPercentage: d("75"),
	})
	require.NoError(t, err)
	_, err = engine.PostAllocation(a.AllocationID, "ops")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	// A fresh engine over the same database sees the posted allocation.
	s2, err := Open(dbPath)
	require.NoError(t, err)
	defer s2.Close()

	engine2, err := allocation.NewEngine(allocation.WithStore(s2))
	require.NoError(t, err)

	report := engine2.AccumulativeReport("P1")
	assert.Equal(t, 1, report.AllocationCount)
	assert.True(t, report.CumulativePremium.Equal(d("1000.00")))
	assert.True(t, report.CumulativeRisk.Equal(d("750.00")))

	got, err := engine2.GetAllocation(a.AllocationID)
	require.NoError(t, err)
	assert.Equal(t, "ops", got.PostedBy)
}
