package compliance

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/premialab/premia/internal/allocation"
	"github.com/premialab/premia/internal/domain"
)

func newFixture(t *testing.T) (*Tracker, *allocation.Engine, string) {
	t.Helper()
	engine, err := allocation.NewEngine()
	require.NoError(t, err)

	a, err := engine.CreateAllocation(allocation.CreateAllocationInput{
		BillID:         "B1",
		PolicyID:       "P1",
		CustomerID:     "C1",
		TotalPremium:   decimal.RequireFromString("500.00"),
		RiskPercentage: decimal.RequireFromString("60"),
	})
	require.NoError(t, err)

	return NewTracker(engine), engine, a.AllocationID
}

func TestDisclaimerLookup(t *testing.T) {
	tracker, _, _ := newFixture(t)

	d, err := tracker.Disclaimer(domain.DisclaimerBuyContract)
	require.NoError(t, err)
	assert.Equal(t, "Insurance Contract Terms", d.Title)
	assert.NotEmpty(t, d.Version)
	assert.NotEmpty(t, d.Content)

	_, err = tracker.Disclaimer(domain.DisclaimerType("gdpr"))
	assert.True(t, errors.Is(err, ErrUnknownDisclaimer), "got %v", err)
}

func TestAllDisclaimersOrdered(t *testing.T) {
	tracker, _, _ := newFixture(t)

	all := tracker.AllDisclaimers()
	require.Len(t, all, 5)
	for i := 1; i < len(all); i++ {
		assert.True(t, all[i-1].Type < all[i].Type, "catalog not ordered by type")
	}
}

func TestDisclaimersForAction(t *testing.T) {
	tracker, _, _ := newFixture(t)

	invest := tracker.DisclaimersForAction("invest_savings")
	require.Len(t, invest, 2)
	assert.Equal(t, domain.DisclaimerInvestSavings, invest[0].Type)
	assert.Equal(t, domain.DisclaimerCapitalRevenue, invest[1].Type)

	assert.Empty(t, tracker.DisclaimersForAction("file_complaint"))
}

func TestAcknowledgeIdempotent(t *testing.T) {
	tracker, engine, allocID := newFixture(t)

	require.NoError(t, tracker.Acknowledge(allocID, domain.DisclaimerBuyContract))
	require.NoError(t, tracker.Acknowledge(allocID, domain.DisclaimerBuyContract))

	acked, err := engine.AcknowledgedDisclaimers(allocID)
	require.NoError(t, err)
	assert.Equal(t, []domain.DisclaimerType{domain.DisclaimerBuyContract}, acked)
}

func TestAcknowledgeValidation(t *testing.T) {
	tracker, _, allocID := newFixture(t)

	err := tracker.Acknowledge(allocID, domain.DisclaimerType("gdpr"))
	assert.True(t, errors.Is(err, ErrUnknownDisclaimer), "got %v", err)

	err = tracker.Acknowledge("no-such-allocation", domain.DisclaimerBuyContract)
	assert.True(t, errors.Is(err, allocation.ErrNotFound), "got %v", err)
}

func TestPendingDisclaimers(t *testing.T) {
	tracker, _, allocID := newFixture(t)

	// An allocation embodies buying cover and investing savings, so it
	// starts with three pending disclaimers.
	pending, err := tracker.PendingDisclaimers(allocID)
	require.NoError(t, err)
	require.Len(t, pending, 3)

	require.NoError(t, tracker.Acknowledge(allocID, domain.DisclaimerInvestSavings))
	pending, err = tracker.PendingDisclaimers(allocID)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	for _, d := range pending {
		assert.NotEqual(t, domain.DisclaimerInvestSavings, d.Type)
	}

	require.NoError(t, tracker.Acknowledge(allocID, domain.DisclaimerBuyContract))
	require.NoError(t, tracker.Acknowledge(allocID, domain.DisclaimerCapitalRevenue))
	pending, err = tracker.PendingDisclaimers(allocID)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestPendingDisclaimersUnknownAllocation(t *testing.T) {
	tracker, _, _ := newFixture(t)
	_, err := tracker.PendingDisclaimers("ghost")
	assert.True(t, errors.Is(err, allocation.ErrNotFound), "got %v", err)
}

func TestCustomCatalogOverride(t *testing.T) {
	_, engine, _ := newFixture(t)

	custom := NewTrackerWithCatalog(engine, []domain.Disclaimer{
		{
			Type:          domain.DisclaimerBuyContract,
			Title:         "Contract Terms (2026 revision)",
			Version:       "3.0",
			EffectiveDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			Content:       "Updated terms.",
		},
	}, nil)

	d, err := custom.Disclaimer(domain.DisclaimerBuyContract)
	require.NoError(t, err)
	assert.Equal(t, "3.0", d.Version)

	// Untouched entries keep their defaults.
	d, err = custom.Disclaimer(domain.DisclaimerInvestSavings)
	require.NoError(t, err)
	assert.Equal(t, "Investment Risk Warning", d.Title)
}
