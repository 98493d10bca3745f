package main

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/premialab/premia/internal/allocation"
	"github.com/premialab/premia/internal/compliance"
	"github.com/premialab/premia/internal/config"
	"github.com/premialab/premia/internal/domain"
	"github.com/premialab/premia/internal/output"
	"github.com/premialab/premia/internal/pricing"
	"github.com/premialab/premia/internal/store"
)

// simpleCLILogger implements allocation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "premia %s (commit %s, built %s)\n", version, commit, date)
			if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
				fmt.Fprintln(os.Stdout, bi.Main.Path)
			}
		},
	}
}

// loadConfig loads the file named by --config, or the defaults when the
// flag is unset.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		return config.Default(), nil
	}
	return config.NewParser().LoadFromFile(path)
}

func mustDecimalFlag(cmd *cobra.Command, name string) decimal.Decimal {
	raw, _ := cmd.Flags().GetString(name)
	d, err := decimal.NewFromString(raw)
	if err != nil {
		log.Fatalf("invalid --%s value %q: %v", name, raw, err)
	}
	return d
}

var rootCmd = &cobra.Command{
	Use:   "premia",
	Short: "Premium allocation and PHI pricing engine CLI",
	Long:  "Back-office tool for pricing PHI products and booking premium allocations",
}

var priceCmd = &cobra.Command{
	Use:   "price",
	Short: "Price a policy",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			log.Fatal(err)
		}

		policyType, _ := cmd.Flags().GetString("type")
		jurisdiction, _ := cmd.Flags().GetString("jurisdiction")
		age, _ := cmd.Flags().GetInt("age")
		healthScore, _ := cmd.Flags().GetInt("health-score")

		load := cfg.Pricing.ReinsuranceLoad
		if cmd.Flags().Changed("load") {
			load = mustDecimalFlag(cmd, "load")
		}

		calc := pricing.NewCalculatorWithRates(cfg.Pricing.BaseRates)
		quote, err := calc.PricePolicy(domain.PolicyInput{
			PolicyType:        domain.PolicyType(policyType),
			CoverageAmount:    mustDecimalFlag(cmd, "coverage"),
			Age:               age,
			Jurisdiction:      domain.Jurisdiction(jurisdiction),
			SavingsPercentage: mustDecimalFlag(cmd, "savings"),
			ReinsuranceLoad:   load,
		})
		if err != nil {
			log.Fatal(err)
		}

		if quote.PHI != nil && cmd.Flags().Changed("health-score") {
			adjusted := pricing.ApplyHealthRiskLoading(*quote.PHI, healthScore)
			quote.PHI = &adjusted
			quote.AnnualPremium = adjusted.AnnualTotalPremium
			quote.MonthlyPremium = adjusted.MonthlyTotalPremium
		}

		format, _ := cmd.Flags().GetString("format")
		if format == "json" && quote.PHI != nil {
			data, err := output.NewJSONFormatter().FormatPricingResult(*quote.PHI)
			if err != nil {
				log.Fatal(err)
			}
			fmt.Println(string(data))
			return
		}
		fmt.Print(output.NewConsoleFormatter().FormatQuote(quote))
	},
}

var runCmd = &cobra.Command{
	Use:   "run [run-file]",
	Short: "Book a batch of allocations and print the requested reports",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			log.Fatal(err)
		}

		parser := config.NewParser()
		run, err := parser.LoadRunFile(args[0])
		if err != nil {
			log.Fatal(err)
		}

		opts := []allocation.Option{
			allocation.WithDefaults(allocation.Defaults{
				InvestmentRoute:    cfg.Engine.DefaultInvestmentRoute,
				AnnualInterestRate: cfg.Engine.DefaultAnnualInterestRate,
			}),
		}
		if dbPath, _ := cmd.Flags().GetString("store"); dbPath != "" {
			s, err := store.Open(dbPath)
			if err != nil {
				log.Fatal(err)
			}
			defer s.Close()
			opts = append(opts, allocation.WithStore(s))
		}

		engine, err := allocation.NewEngine(opts...)
		if err != nil {
			log.Fatal(err)
		}
		if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
			engine.SetLogger(simpleCLILogger{})
		}
		tracker := compliance.NewTrackerWithCatalog(engine, cfg.Disclaimers, nil)

		for _, entry := range run.Allocations {
			a, err := engine.CreateAllocation(allocation.CreateAllocationInput{
				BillID:                     entry.BillID,
				PolicyID:                   entry.PolicyID,
				CustomerID:                 entry.CustomerID,
				TotalPremium:               entry.TotalPremium,
				RiskPercentage:             entry.RiskPercentage,
				InvestmentRoute:            entry.InvestmentRoute,
				AnnualInterestRate:         entry.AnnualInterestRate,
				AllocationNotes:            entry.Notes,
				CapitalRevenueJurisdiction: entry.CapitalRevenueJurisdiction,
			})
			if err != nil {
				log.Fatalf("booking bill %s: %v", entry.BillID, err)
			}
			for _, dt := range entry.Acknowledge {
				if err := tracker.Acknowledge(a.AllocationID, dt); err != nil {
					log.Fatalf("acknowledging %s on bill %s: %v", dt, entry.BillID, err)
				}
			}
			if entry.Post {
				if _, err := engine.PostAllocation(a.AllocationID, entry.PostedBy); err != nil {
					log.Fatalf("posting bill %s: %v", entry.BillID, err)
				}
			}
		}

		printReports(cmd, engine, run.Reports)
	},
}

func printReports(cmd *cobra.Command, engine *allocation.Engine, reports config.RunReports) {
	format, _ := cmd.Flags().GetString("format")
	console := output.NewConsoleFormatter()
	jsonOut := output.NewJSONFormatter()

	emit := func(consoleText string, jsonData []byte, jsonErr error) {
		if format == "json" {
			if jsonErr != nil {
				log.Fatal(jsonErr)
			}
			fmt.Println(string(jsonData))
			return
		}
		fmt.Print(consoleText)
		fmt.Println()
	}

	for _, policyID := range reports.Policies {
		report := engine.AccumulativeReport(policyID)
		data, err := jsonOut.FormatAccumulativeReport(report)
		emit(console.FormatAccumulativeReport(report), data, err)
	}
	for _, customerID := range reports.Customers {
		stmt := engine.CustomerStatement(customerID, time.Time{}, time.Time{})
		data, err := jsonOut.FormatCustomerStatement(stmt)
		emit(console.FormatCustomerStatement(stmt), data, err)

		summary := engine.CustomerSummary(customerID)
		data, err = jsonOut.FormatCustomerSummary(summary)
		emit(console.FormatCustomerSummary(summary, nil), data, err)
	}
	if reports.AccountingBook {
		book := engine.AccountingBook(time.Time{}, time.Time{})
		data, err := jsonOut.FormatAccountingBook(book)
		emit(console.FormatAccountingBook(book), data, err)
	}
}

var validateCmd = &cobra.Command{
	Use:   "validate [input-file]",
	Short: "Validate a configuration or run file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		parser := config.NewParser()
		kind, _ := cmd.Flags().GetString("kind")

		var err error
		switch kind {
		case "config":
			_, err = parser.LoadFromFile(args[0])
		case "run":
			_, err = parser.LoadRunFile(args[0])
		default:
			log.Fatalf("unknown --kind %q (want config or run)", kind)
		}
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("%s file %s is valid\n", kind, args[0])
	},
}

var disclaimersCmd = &cobra.Command{
	Use:   "disclaimers",
	Short: "List the disclaimer catalog",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			log.Fatal(err)
		}
		engine, err := allocation.NewEngine()
		if err != nil {
			log.Fatal(err)
		}
		tracker := compliance.NewTrackerWithCatalog(engine, cfg.Disclaimers, nil)

		var entries []domain.Disclaimer
		if action, _ := cmd.Flags().GetString("action"); action != "" {
			entries = tracker.DisclaimersForAction(action)
		} else {
			entries = tracker.AllDisclaimers()
		}
		for _, d := range entries {
			fmt.Printf("%-22s v%-6s effective %s  %s\n",
				d.Type, d.Version, d.EffectiveDate.Format("2006-01-02"), d.Title)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to configuration file")
	rootCmd.PersistentFlags().String("format", "console", "Output format (console, json)")

	priceCmd.Flags().String("type", "phi", "Policy type (phi, disability, life, health, auto, property, business)")
	priceCmd.Flags().String("coverage", "100000", "Coverage amount")
	priceCmd.Flags().Int("age", 40, "Insured age")
	priceCmd.Flags().String("jurisdiction", "US", "Jurisdiction (US, UK)")
	priceCmd.Flags().String("load", "", "Operational reinsurance load override")
	priceCmd.Flags().String("savings", "0.60", "Savings split fraction (0 to 0.95)")
	priceCmd.Flags().Int("health-score", 3, "Health condition score (1-10)")

	runCmd.Flags().String("store", "", "SQLite database path for durable allocations")
	runCmd.Flags().Bool("debug", false, "Enable debug logging")

	validateCmd.Flags().String("kind", "config", "File kind to validate (config, run)")

	disclaimersCmd.Flags().String("action", "", "Only list disclaimers required for this action")

	rootCmd.AddCommand(priceCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(disclaimersCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
