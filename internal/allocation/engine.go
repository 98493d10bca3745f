// Package allocation implements the premium allocation engine: the ledger
// of risk/savings splits recorded for every billed premium, and the
// read-side reports computed from it.
package allocation

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/premialab/premia/internal/domain"
)

// Logger is the minimal logging surface the engine accepts for debug
// tracing. The engine never logs unless one is injected.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Store is the optional durable backing for the registry. The engine
// writes through on every mutation and replays the store's contents at
// construction. A nil store keeps the registry purely in memory.
type Store interface {
	SaveAllocation(a *domain.PremiumAllocation) error
	LoadAllocations() ([]*domain.PremiumAllocation, error)
}

// Defaults supplies the metadata applied when a create request leaves the
// optional fields unset.
type Defaults struct {
	InvestmentRoute    domain.InvestmentRoute
	AnnualInterestRate decimal.Decimal
}

// DefaultDefaults returns the stock defaults: basic savings at 2% annual
// interest.
func DefaultDefaults() Defaults {
	return Defaults{
		InvestmentRoute:    domain.RouteBasicSavings,
		AnnualInterestRate: decimal.RequireFromString("0.02"),
	}
}

// Engine owns the allocation registry. All mutation goes through its
// methods; records handed out are clones, so callers cannot bypass the
// lifecycle rules by mutating a returned allocation.
type Engine struct {
	mu          sync.RWMutex
	allocations map[string]*domain.PremiumAllocation
	byCustomer  map[string]map[string]struct{}
	byPolicy    map[string]map[string]struct{}

	store    Store
	logger   Logger
	defaults Defaults
	now      func() time.Time
	newID    func() string
}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithStore attaches a durable store; existing allocations are replayed
// into the registry by NewEngine.
func WithStore(s Store) Option { return func(e *Engine) { e.store = s } }

// WithDefaults overrides the stock create-time defaults.
func WithDefaults(d Defaults) Option { return func(e *Engine) { e.defaults = d } }

// WithClock overrides the engine's time source. Used by tests.
func WithClock(now func() time.Time) Option { return func(e *Engine) { e.now = now } }

// WithIDGenerator overrides allocation id generation. Used by tests.
func WithIDGenerator(gen func() string) Option { return func(e *Engine) { e.newID = gen } }

// NewEngine constructs an engine. The only error source is replaying a
// configured store.
func NewEngine(opts ...Option) (*Engine, error) {
	e := &Engine{
		allocations: make(map[string]*domain.PremiumAllocation),
		byCustomer:  make(map[string]map[string]struct{}),
		byPolicy:    make(map[string]map[string]struct{}),
		defaults:    DefaultDefaults(),
		now:         time.Now,
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.store != nil {
		persisted, err := e.store.LoadAllocations()
		if err != nil {
			return nil, fmt.Errorf("replaying allocation store: %w", err)
		}
		for _, a := range persisted {
			e.index(a)
		}
	}
	return e, nil
}

// SetLogger attaches a logger for debug tracing.
func (e *Engine) SetLogger(l Logger) { e.logger = l }

func (e *Engine) debugf(format string, args ...any) {
	if e.logger != nil {
		e.logger.Debugf(format, args...)
	}
}

// index inserts a fully constructed allocation into the registry and both
// secondary indexes. Callers hold the write lock (or, during NewEngine,
// have exclusive access).
func (e *Engine) index(a *domain.PremiumAllocation) {
	e.allocations[a.AllocationID] = a
	if e.byCustomer[a.CustomerID] == nil {
		e.byCustomer[a.CustomerID] = make(map[string]struct{})
	}
	e.byCustomer[a.CustomerID][a.AllocationID] = struct{}{}
	if e.byPolicy[a.PolicyID] == nil {
		e.byPolicy[a.PolicyID] = make(map[string]struct{})
	}
	e.byPolicy[a.PolicyID][a.AllocationID] = struct{}{}
}

// CreateAllocationInput carries the fields for a new draft allocation.
// InvestmentRoute and AnnualInterestRate fall back to the engine defaults
// when left zero.
type CreateAllocationInput struct {
	BillID     string
	PolicyID   string
	CustomerID string

	TotalPremium   decimal.Decimal
	RiskPercentage decimal.Decimal

	InvestmentRoute            domain.InvestmentRoute
	AnnualInterestRate         *decimal.Decimal
	AllocationNotes            string
	CapitalRevenueJurisdiction string
}

// CreateAllocation validates the request, splits the premium, and records
// the allocation as a draft. Drafts are immediately queryable by id,
// customer, and policy, but excluded from every reporting aggregate until
// posted. Validation happens in full before any registry write.
func (e *Engine) CreateAllocation(in CreateAllocationInput) (*domain.PremiumAllocation, error) {
	if in.TotalPremium.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: total premium %s is negative", ErrInvalidAmount, in.TotalPremium.StringFixed(2))
	}
	if in.RiskPercentage.LessThan(decimal.Zero) || in.RiskPercentage.GreaterThan(decimal.NewFromInt(100)) {
		return nil, fmt.Errorf("%w: %s is not within [0, 100]", ErrInvalidPercentage, in.RiskPercentage)
	}

	route := in.InvestmentRoute
	if route == "" {
		route = e.defaults.InvestmentRoute
	}
	if !domain.ValidInvestmentRoute(route) {
		return nil, fmt.Errorf("unknown investment route %q", route)
	}
	interestRate := e.defaults.AnnualInterestRate
	if in.AnnualInterestRate != nil {
		interestRate = *in.AnnualInterestRate
	}

	risk, savings := domain.SplitPremium(in.TotalPremium, in.RiskPercentage)

	a := &domain.PremiumAllocation{
		AllocationID:               e.newID(),
		BillID:                     in.BillID,
		PolicyID:                   in.PolicyID,
		CustomerID:                 in.CustomerID,
		TotalPremium:               in.TotalPremium,
		RiskPercentage:             in.RiskPercentage,
		SavingsPercentage:          decimal.NewFromInt(100).Sub(in.RiskPercentage),
		RiskPremium:                risk,
		SavingsPremium:             savings,
		Status:                     domain.StatusDraft,
		InvestmentRoute:            route,
		AnnualInterestRate:         interestRate,
		AllocationNotes:            in.AllocationNotes,
		CapitalRevenueJurisdiction: in.CapitalRevenueJurisdiction,
		CreatedDate:                e.now(),
	}

	e.mu.Lock()
	e.index(a)
	snapshot := a.Clone()
	e.mu.Unlock()

	if err := e.persist(snapshot); err != nil {
		return nil, err
	}

	e.debugf("created allocation %s: policy=%s customer=%s premium=%s risk=%s%%",
		snapshot.AllocationID, snapshot.PolicyID, snapshot.CustomerID,
		snapshot.TotalPremium.StringFixed(2), snapshot.RiskPercentage)
	return snapshot, nil
}

// PostAllocation confirms a draft as settled fact. Numeric fields become
// immutable; the allocation now contributes to every reporting aggregate.
// Re-posting fails with ErrAlreadyPosted.
func (e *Engine) PostAllocation(allocationID, postedBy string) (*domain.PremiumAllocation, error) {
	e.mu.Lock()
	a, ok := e.allocations[allocationID]
	if !ok {
		e.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrNotFound, allocationID)
	}
	if a.Status == domain.StatusPosted {
		e.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrAlreadyPosted, allocationID)
	}
	posted := e.now()
	a.Status = domain.StatusPosted
	a.PostedDate = &posted
	a.PostedBy = postedBy
	snapshot := a.Clone()
	e.mu.Unlock()

	if err := e.persist(snapshot); err != nil {
		return nil, err
	}

	e.debugf("posted allocation %s by %s", allocationID, postedBy)
	return snapshot, nil
}

// GetAllocation returns a copy of the allocation with the given id,
// whatever its status.
func (e *Engine) GetAllocation(allocationID string) (*domain.PremiumAllocation, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	a, ok := e.allocations[allocationID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, allocationID)
	}
	return a.Clone(), nil
}

// AcknowledgeDisclaimer records that a disclaimer was accepted for an
// allocation. Acknowledging the same type twice has no additional effect.
// Acknowledgements are the one field that stays mutable after posting.
func (e *Engine) AcknowledgeDisclaimer(allocationID string, t domain.DisclaimerType) error {
	e.mu.Lock()
	a, ok := e.allocations[allocationID]
	if !ok {
		e.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotFound, allocationID)
	}
	a.Acknowledge(t)
	snapshot := a.Clone()
	e.mu.Unlock()

	return e.persist(snapshot)
}

// AcknowledgedDisclaimers returns the disclaimer types acknowledged for
// an allocation, in stable order.
func (e *Engine) AcknowledgedDisclaimers(allocationID string) ([]domain.DisclaimerType, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	a, ok := e.allocations[allocationID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, allocationID)
	}
	return a.AcknowledgedTypes(), nil
}

// persist writes a registry snapshot through to the durable store, if one
// is configured. Callers pass a clone, never the registry's record.
func (e *Engine) persist(snapshot *domain.PremiumAllocation) error {
	if e.store == nil {
		return nil
	}
	if err := e.store.SaveAllocation(snapshot); err != nil {
		return fmt.Errorf("persisting allocation %s: %w", snapshot.AllocationID, err)
	}
	return nil
}
