// Package store provides durable persistence for the allocation registry.
// Monetary values are stored as exact decimal strings; SQLite numeric
// affinity would silently convert them to floats.
package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/premialab/premia/internal/domain"
)

// migrations holds the schema statements. Each string is a single SQL
// statement (SQLite executes one at a time).
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS premium_allocations (
		allocation_id                TEXT PRIMARY KEY,
		bill_id                      TEXT NOT NULL,
		policy_id                    TEXT NOT NULL,
		customer_id                  TEXT NOT NULL,
		total_premium                TEXT NOT NULL,
		risk_percentage              TEXT NOT NULL,
		savings_percentage           TEXT NOT NULL,
		risk_premium                 TEXT NOT NULL,
		savings_premium              TEXT NOT NULL,
		status                       TEXT NOT NULL,
		investment_route             TEXT NOT NULL,
		annual_interest_rate         TEXT NOT NULL,
		allocation_notes             TEXT NOT NULL DEFAULT '',
		capital_revenue_jurisdiction TEXT NOT NULL DEFAULT '',
		created_date                 TEXT NOT NULL,
		posted_date                  TEXT,
		posted_by                    TEXT NOT NULL DEFAULT '',
		disclaimers_acknowledged     TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_allocations_customer ON premium_allocations(customer_id)`,
	`CREATE INDEX IF NOT EXISTS idx_allocations_policy ON premium_allocations(policy_id)`,
}

// SQLiteStore persists premium allocations one row per allocation, keyed
// by allocation id, with the customer and policy indexes mirrored as
// queryable columns.
type SQLiteStore struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite database at path and applies the
// schema. Use ":memory:" for an ephemeral store.
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening allocation store %s: %w", path, err)
	}
	for _, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrating allocation store: %w", err)
		}
	}
	return &SQLiteStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveAllocation inserts or replaces the allocation's row.
func (s *SQLiteStore) SaveAllocation(a *domain.PremiumAllocation) error {
	var postedDate any
	if a.PostedDate != nil {
		postedDate = a.PostedDate.UTC().Format(time.RFC3339Nano)
	}

	_, err := s.db.Exec(`
		INSERT INTO premium_allocations (
			allocation_id, bill_id, policy_id, customer_id,
			total_premium, risk_percentage, savings_percentage,
			risk_premium, savings_premium, status,
			investment_route, annual_interest_rate,
			allocation_notes, capital_revenue_jurisdiction,
			created_date, posted_date, posted_by, disclaimers_acknowledged
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(allocation_id) DO UPDATE SET
			status                   = excluded.status,
			posted_date              = excluded.posted_date,
			posted_by                = excluded.posted_by,
			disclaimers_acknowledged = excluded.disclaimers_acknowledged
	`,
		a.AllocationID, a.BillID, a.PolicyID, a.CustomerID,
		a.TotalPremium.String(), a.RiskPercentage.String(), a.SavingsPercentage.String(),
		a.RiskPremium.String(), a.SavingsPremium.String(), string(a.Status),
		string(a.InvestmentRoute), a.AnnualInterestRate.String(),
		a.AllocationNotes, a.CapitalRevenueJurisdiction,
		a.CreatedDate.UTC().Format(time.RFC3339Nano), postedDate, a.PostedBy,
		encodeAcknowledged(a),
	)
	return err
}

// LoadAllocations reads every persisted allocation.
func (s *SQLiteStore) LoadAllocations() ([]*domain.PremiumAllocation, error) {
	rows, err := s.db.Query(`
		SELECT allocation_id, bill_id, policy_id, customer_id,
			total_premium, risk_percentage, savings_percentage,
			risk_premium, savings_premium, status,
			investment_route, annual_interest_rate,
			allocation_notes, capital_revenue_jurisdiction,
			created_date, posted_date, posted_by, disclaimers_acknowledged
		FROM premium_allocations
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.PremiumAllocation
	for rows.Next() {
		a, err := scanAllocation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanAllocation(rows *sql.Rows) (*domain.PremiumAllocation, error) {
	var (
		a                     domain.PremiumAllocation
		totalPremium          string
		riskPct, savingsPct   string
		riskPrem, savingsPrem string
		status, route, rate   string
		created               string
		posted                sql.NullString
		acked                 string
	)
	if err := rows.Scan(
		&a.AllocationID, &a.BillID, &a.PolicyID, &a.CustomerID,
		&totalPremium, &riskPct, &savingsPct,
		&riskPrem, &savingsPrem, &status,
		&route, &rate,
		&a.AllocationNotes, &a.CapitalRevenueJurisdiction,
		&created, &posted, &a.PostedBy, &acked,
	); err != nil {
		return nil, err
	}

	var err error
	if a.TotalPremium, err = decimal.NewFromString(totalPremium); err != nil {
		return nil, fmt.Errorf("allocation %s: bad total_premium %q: %w", a.AllocationID, totalPremium, err)
	}
	if a.RiskPercentage, err = decimal.NewFromString(riskPct); err != nil {
		return nil, fmt.Errorf("allocation %s: bad risk_percentage %q: %w", a.AllocationID, riskPct, err)
	}
	if a.SavingsPercentage, err = decimal.NewFromString(savingsPct); err != nil {
		return nil, fmt.Errorf("allocation %s: bad savings_percentage %q: %w", a.AllocationID, savingsPct, err)
	}
	if a.RiskPremium, err = decimal.NewFromString(riskPrem); err != nil {
		return nil, fmt.Errorf("allocation %s: bad risk_premium %q: %w", a.AllocationID, riskPrem, err)
	}
	if a.SavingsPremium, err = decimal.NewFromString(savingsPrem); err != nil {
		return nil, fmt.Errorf("allocation %s: bad savings_premium %q: %w", a.AllocationID, savingsPrem, err)
	}
	if a.AnnualInterestRate, err = decimal.NewFromString(rate); err != nil {
		return nil, fmt.Errorf("allocation %s: bad annual_interest_rate %q: %w", a.AllocationID, rate, err)
	}

	a.Status = domain.AllocationStatus(status)
	a.InvestmentRoute = domain.InvestmentRoute(route)

	if a.CreatedDate, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return nil, fmt.Errorf("allocation %s: bad created_date %q: %w", a.AllocationID, created, err)
	}
	if posted.Valid && posted.String != "" {
		pd, err := time.Parse(time.RFC3339Nano, posted.String)
		if err != nil {
			return nil, fmt.Errorf("allocation %s: bad posted_date %q: %w", a.AllocationID, posted.String, err)
		}
		a.PostedDate = &pd
	}

	for _, dt := range strings.Split(acked, ",") {
		if dt != "" {
			a.Acknowledge(domain.DisclaimerType(dt))
		}
	}
	return &a, nil
}

// encodeAcknowledged flattens the acknowledgement set to a stable
// comma-joined list.
func encodeAcknowledged(a *domain.PremiumAllocation) string {
	types := a.AcknowledgedTypes()
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = string(t)
	}
	return strings.Join(parts, ",")
}
