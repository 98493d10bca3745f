// Package compliance holds the legal disclaimer catalog and tracks which
// disclaimers have been acknowledged against premium allocations.
package compliance

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/premialab/premia/internal/domain"
)

// ErrUnknownDisclaimer indicates a disclaimer type absent from the
// catalog.
var ErrUnknownDisclaimer = errors.New("unknown disclaimer type")

// AllocationRegistry is the slice of the allocation engine the tracker
// needs: it stores acknowledgements on the allocation, so the tracker
// only ever references allocations by id.
type AllocationRegistry interface {
	AcknowledgeDisclaimer(allocationID string, t domain.DisclaimerType) error
	AcknowledgedDisclaimers(allocationID string) ([]domain.DisclaimerType, error)
}

// allocationActions are the customer actions an allocation embodies:
// buying cover and investing the savings component. Pending-disclaimer
// queries resolve against these.
var allocationActions = []string{"buy_contract", "invest_savings"}

func defaultCatalog() map[domain.DisclaimerType]domain.Disclaimer {
	effective := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	entries := []domain.Disclaimer{
		{
			Type:          domain.DisclaimerBuyContract,
			Title:         "Insurance Contract Terms",
			Version:       "2.1",
			EffectiveDate: effective,
			Content:       "By purchasing this contract you accept the policy terms, exclusions and the cooling-off period described in the policy document.",
		},
		{
			Type:          domain.DisclaimerClaimInsurance,
			Title:         "Claims Handling Notice",
			Version:       "1.4",
			EffectiveDate: effective,
			Content:       "Claims are assessed against the policy terms in force at the date of loss. Fraudulent claims void all cover.",
		},
		{
			Type:          domain.DisclaimerInvestSavings,
			Title:         "Investment Risk Warning",
			Version:       "3.0",
			EffectiveDate: effective,
			Content:       "The savings component is invested and its value can fall as well as rise. Past performance is not a guide to future returns.",
		},
		{
			Type:          domain.DisclaimerCapitalRevenue,
			Title:         "Capital Revenue Tax Notice",
			Version:       "1.2",
			EffectiveDate: effective,
			Content:       "Investment returns may be subject to capital revenue tax in your jurisdiction. Tax treatment depends on individual circumstances.",
		},
		{
			Type:          domain.DisclaimerCancelContract,
			Title:         "Cancellation Terms",
			Version:       "1.1",
			EffectiveDate: effective,
			Content:       "Cancelling after the cooling-off period may incur surrender charges on the savings component.",
		},
	}

	catalog := make(map[domain.DisclaimerType]domain.Disclaimer, len(entries))
	for _, e := range entries {
		catalog[e.Type] = e
	}
	return catalog
}

func defaultActionMap() map[string][]domain.DisclaimerType {
	return map[string][]domain.DisclaimerType{
		"buy_contract":    {domain.DisclaimerBuyContract},
		"claim_insurance": {domain.DisclaimerClaimInsurance},
		"invest_savings":  {domain.DisclaimerInvestSavings, domain.DisclaimerCapitalRevenue},
		"cancel_contract": {domain.DisclaimerCancelContract},
	}
}

// Tracker looks up disclaimers and records acknowledgements against
// allocations. The catalog and the action map are static configuration;
// end users never create disclaimers at runtime.
type Tracker struct {
	catalog  map[domain.DisclaimerType]domain.Disclaimer
	actions  map[string][]domain.DisclaimerType
	registry AllocationRegistry
}

// NewTracker creates a tracker with the compiled-in catalog and action
// map.
func NewTracker(registry AllocationRegistry) *Tracker {
	return &Tracker{
		catalog:  defaultCatalog(),
		actions:  defaultActionMap(),
		registry: registry,
	}
}

// NewTrackerWithCatalog creates a tracker with a configured catalog.
// Configured entries replace same-typed defaults; a nil action map keeps
// the defaults.
func NewTrackerWithCatalog(registry AllocationRegistry, entries []domain.Disclaimer, actions map[string][]domain.DisclaimerType) *Tracker {
	t := NewTracker(registry)
	for _, e := range entries {
		t.catalog[e.Type] = e
	}
	if actions != nil {
		t.actions = actions
	}
	return t
}

// Disclaimer returns the catalog entry for a type.
func (t *Tracker) Disclaimer(dt domain.DisclaimerType) (domain.Disclaimer, error) {
	d, ok := t.catalog[dt]
	if !ok {
		return domain.Disclaimer{}, fmt.Errorf("%w: %s", ErrUnknownDisclaimer, dt)
	}
	return d, nil
}

// AllDisclaimers returns every catalog entry ordered by type.
func (t *Tracker) AllDisclaimers() []domain.Disclaimer {
	out := make([]domain.Disclaimer, 0, len(t.catalog))
	for _, d := range t.catalog {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}

// DisclaimersForAction returns the disclaimers required before the named
// action. Unknown actions require nothing.
func (t *Tracker) DisclaimersForAction(action string) []domain.Disclaimer {
	var out []domain.Disclaimer
	for _, dt := range t.actions[action] {
		if d, ok := t.catalog[dt]; ok {
			out = append(out, d)
		}
	}
	return out
}

// Acknowledge records that a disclaimer was accepted for an allocation.
// The type must exist in the catalog; the underlying registry makes the
// operation idempotent.
func (t *Tracker) Acknowledge(allocationID string, dt domain.DisclaimerType) error {
	if _, ok := t.catalog[dt]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownDisclaimer, dt)
	}
	return t.registry.AcknowledgeDisclaimer(allocationID, dt)
}

// PendingDisclaimers returns the disclaimers still required for an
// allocation: everything its associated actions demand, minus what has
// already been acknowledged. Ordered by type.
func (t *Tracker) PendingDisclaimers(allocationID string) ([]domain.Disclaimer, error) {
	acked, err := t.registry.AcknowledgedDisclaimers(allocationID)
	if err != nil {
		return nil, err
	}
	ackedSet := make(map[domain.DisclaimerType]bool, len(acked))
	for _, dt := range acked {
		ackedSet[dt] = true
	}

	seen := make(map[domain.DisclaimerType]bool)
	var pending []domain.Disclaimer
	for _, action := range allocationActions {
		for _, dt := range t.actions[action] {
			if ackedSet[dt] || seen[dt] {
				continue
			}
			if d, ok := t.catalog[dt]; ok {
				seen[dt] = true
				pending = append(pending, d)
			}
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].Type < pending[j].Type })
	return pending, nil
}
