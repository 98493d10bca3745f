// Package config loads and validates the platform's YAML configuration:
// engine defaults, pricing tables, and disclaimer catalog overrides.
package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/premialab/premia/internal/domain"
)

// EngineConfig sets the create-time defaults for new allocations.
type EngineConfig struct {
	DefaultInvestmentRoute    domain.InvestmentRoute `yaml:"default_investment_route" json:"default_investment_route"`
	DefaultAnnualInterestRate decimal.Decimal        `yaml:"default_annual_interest_rate" json:"default_annual_interest_rate"`
}

// PricingConfig sets the pricing calculator's configurable tables.
type PricingConfig struct {
	// ReinsuranceLoad is the operational reinsurance load applied to PHI
	// quotes when the caller does not supply one.
	ReinsuranceLoad decimal.Decimal `yaml:"reinsurance_load" json:"reinsurance_load"`
	// BaseRates overrides the compiled-in annual base rates for
	// table-rated lines, keyed by policy type.
	BaseRates map[domain.PolicyType]decimal.Decimal `yaml:"base_rates" json:"base_rates"`
}

// Config is the complete platform configuration.
type Config struct {
	Engine      EngineConfig        `yaml:"engine" json:"engine"`
	Pricing     PricingConfig       `yaml:"pricing" json:"pricing"`
	Disclaimers []domain.Disclaimer `yaml:"disclaimers" json:"disclaimers"`
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			DefaultInvestmentRoute:    domain.RouteBasicSavings,
			DefaultAnnualInterestRate: decimal.RequireFromString("0.02"),
		},
		Pricing: PricingConfig{
			ReinsuranceLoad: decimal.RequireFromString("0.10"),
		},
	}
}

// Parser handles loading and validating configuration files.
type Parser struct{}

// NewParser creates a new configuration parser.
func NewParser() *Parser {
	return &Parser{}
}

// LoadFromFile loads configuration from a YAML file. Omitted sections
// fall back to the defaults.
func (p *Parser) LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := p.Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration for values the engine would reject at
// runtime.
func (p *Parser) Validate(cfg *Config) error {
	if !domain.ValidInvestmentRoute(cfg.Engine.DefaultInvestmentRoute) {
		return fmt.Errorf("unknown default investment route %q", cfg.Engine.DefaultInvestmentRoute)
	}
	if cfg.Engine.DefaultAnnualInterestRate.LessThan(decimal.Zero) {
		return fmt.Errorf("default annual interest rate must not be negative, got %s", cfg.Engine.DefaultAnnualInterestRate)
	}
	if cfg.Pricing.ReinsuranceLoad.LessThan(decimal.Zero) {
		return fmt.Errorf("reinsurance load must not be negative, got %s", cfg.Pricing.ReinsuranceLoad)
	}
	for pt, rate := range cfg.Pricing.BaseRates {
		if rate.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("base rate for %s must be positive, got %s", pt, rate)
		}
	}
	for i, d := range cfg.Disclaimers {
		if d.Type == "" {
			return fmt.Errorf("disclaimer %d: type is required", i)
		}
		if d.Title == "" {
			return fmt.Errorf("disclaimer %s: title is required", d.Type)
		}
		if d.Content == "" {
			return fmt.Errorf("disclaimer %s: content is required", d.Type)
		}
	}
	return nil
}
