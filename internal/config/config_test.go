package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/premialab/premia/internal/domain"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeFile(t, "config.yaml", `
engine:
  default_investment_route: bonds
  default_annual_interest_rate: "0.035"
pricing:
  reinsurance_load: "0.15"
  base_rates:
    life: "0.015"
disclaimers:
  - type: buy_contract
    title: Contract Terms (2026)
    version: "3.0"
    effective_date: 2026-01-01T00:00:00Z
    content: Updated contract terms.
`)

	cfg, err := NewParser().LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, domain.RouteBonds, cfg.Engine.DefaultInvestmentRoute)
	assert.True(t, cfg.Engine.DefaultAnnualInterestRate.Equal(decimal.RequireFromString("0.035")))
	assert.True(t, cfg.Pricing.ReinsuranceLoad.Equal(decimal.RequireFromString("0.15")))
	assert.True(t, cfg.Pricing.BaseRates[domain.PolicyLife].Equal(decimal.RequireFromString("0.015")))
	require.Len(t, cfg.Disclaimers, 1)
	assert.Equal(t, domain.DisclaimerBuyContract, cfg.Disclaimers[0].Type)
}

func TestLoadFromFilePartialFallsBackToDefaults(t *testing.T) {
	path := writeFile(t, "config.yaml", `
pricing:
  reinsurance_load: "0.25"
`)

	cfg, err := NewParser().LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, domain.RouteBasicSavings, cfg.Engine.DefaultInvestmentRoute)
	assert.True(t, cfg.Engine.DefaultAnnualInterestRate.Equal(decimal.RequireFromString("0.02")))
	assert.True(t, cfg.Pricing.ReinsuranceLoad.Equal(decimal.RequireFromString("0.25")))
}

func TestLoadFromFileValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown route", "engine:\n  default_investment_route: crypto\n"},
		{"negative interest", "engine:\n  default_annual_interest_rate: \"-0.01\"\n"},
		{"negative load", "pricing:\n  reinsurance_load: \"-0.5\"\n"},
		{"zero base rate", "pricing:\n  base_rates:\n    life: \"0\"\n"},
		{"disclaimer missing title", "disclaimers:\n  - type: buy_contract\n    content: x\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "config.yaml", tt.content)
			_, err := NewParser().LoadFromFile(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadRunFile(t *testing.T) {
	path := writeFile(t, "run.yaml", `
allocations:
  - bill_id: B1
    policy_id: P1
    customer_id: C1
    total_premium: "1000.00"
    risk_percentage: "75"
    post: true
    posted_by: importer
    acknowledge: [buy_contract, invest_savings]
  - bill_id: B2
    policy_id: P1
    customer_id: C1
    total_premium: "500.00"
    risk_percentage: "40"
    investment_route: equities
reports:
  policies: [P1]
  customers: [C1]
  accounting_book: true
`)

	run, err := NewParser().LoadRunFile(path)
	require.NoError(t, err)
	require.Len(t, run.Allocations, 2)
	assert.True(t, run.Allocations[0].Post)
	assert.Equal(t, "importer", run.Allocations[0].PostedBy)
	assert.Len(t, run.Allocations[0].Acknowledge, 2)
	assert.False(t, run.Allocations[1].Post)
	assert.Equal(t, domain.RouteEquities, run.Allocations[1].InvestmentRoute)
	assert.True(t, run.Reports.AccountingBook)
}

func TestLoadRunFileValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty", "allocations: []\n"},
		{"missing bill id", "allocations:\n  - policy_id: P1\n    customer_id: C1\n    total_premium: \"1\"\n    risk_percentage: \"50\"\n"},
		{"percentage out of range", "allocations:\n  - bill_id: B1\n    policy_id: P1\n    customer_id: C1\n    total_premium: \"1\"\n    risk_percentage: \"120\"\n"},
		{"post without poster", "allocations:\n  - bill_id: B1\n    policy_id: P1\n    customer_id: C1\n    total_premium: \"1\"\n    risk_percentage: \"50\"\n    post: true\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "run.yaml", tt.content)
			_, err := NewParser().LoadRunFile(path)
			assert.Error(t, err)
		})
	}
}
