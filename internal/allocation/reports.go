package allocation

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/premialab/premia/internal/domain"
)

// Date-range queries treat a zero start as "from the beginning" and a
// zero end as "until forever"; bounds are inclusive. Statements and the
// accounting book filter on the posted date, since only posted
// allocations appear in reports at all.
func inRange(t time.Time, start, end time.Time) bool {
	if !start.IsZero() && t.Before(start) {
		return false
	}
	if !end.IsZero() && t.After(end) {
		return false
	}
	return true
}

// postedForPolicy returns clones of the posted allocations for a policy.
// Callers hold no lock.
func (e *Engine) postedForPolicy(policyID string) []*domain.PremiumAllocation {
	e.mu.RLock()
	defer e.mu.RUnlock()
	var out []*domain.PremiumAllocation
	for id := range e.byPolicy[policyID] {
		if a := e.allocations[id]; a.IsPosted() {
			out = append(out, a.Clone())
		}
	}
	return out
}

func (e *Engine) postedForCustomer(customerID string) []*domain.PremiumAllocation {
	e.mu.RLock()
	defer e.mu.RUnlock()
	var out []*domain.PremiumAllocation
	for id := range e.byCustomer[customerID] {
		if a := e.allocations[id]; a.IsPosted() {
			out = append(out, a.Clone())
		}
	}
	return out
}

// sortByPostedDate orders allocations by posted date, then id for a
// stable tiebreak.
func sortByPostedDate(allocs []*domain.PremiumAllocation) {
	sort.Slice(allocs, func(i, j int) bool {
		if allocs[i].PostedDate.Equal(*allocs[j].PostedDate) {
			return allocs[i].AllocationID < allocs[j].AllocationID
		}
		return allocs[i].PostedDate.Before(*allocs[j].PostedDate)
	})
}

func overallPercentages(premium, risk decimal.Decimal) (riskPct, savingsPct decimal.Decimal) {
	if premium.IsZero() {
		return decimal.Zero, decimal.Zero
	}
	riskPct = risk.Div(premium).Mul(decimal.NewFromInt(100))
	return riskPct, decimal.NewFromInt(100).Sub(riskPct)
}

// AccumulativeReport sums all posted allocations for a policy across its
// lifetime. An unknown policy id yields an empty report, not an error.
func (e *Engine) AccumulativeReport(policyID string) domain.AccumulativeReport {
	report := domain.AccumulativeReport{
		PolicyID:          policyID,
		CumulativePremium: decimal.Zero,
		CumulativeRisk:    decimal.Zero,
		CumulativeSavings: decimal.Zero,
	}
	for _, a := range e.postedForPolicy(policyID) {
		report.AllocationCount++
		report.CumulativePremium = report.CumulativePremium.Add(a.TotalPremium)
		report.CumulativeRisk = report.CumulativeRisk.Add(a.RiskPremium)
		report.CumulativeSavings = report.CumulativeSavings.Add(a.SavingsPremium)
	}
	report.OverallRiskPercentage, report.OverallSavingsPercentage =
		overallPercentages(report.CumulativePremium, report.CumulativeRisk)
	return report
}

// CustomerStatement lists a customer's posted allocations whose posted
// date falls inside [start, end] (inclusive; zero bounds are open), with
// the policy-style aggregates scoped to the customer.
func (e *Engine) CustomerStatement(customerID string, start, end time.Time) domain.CustomerStatement {
	stmt := domain.CustomerStatement{
		CustomerID:        customerID,
		PeriodStart:       start,
		PeriodEnd:         end,
		CumulativePremium: decimal.Zero,
		CumulativeRisk:    decimal.Zero,
		CumulativeSavings: decimal.Zero,
	}
	for _, a := range e.postedForCustomer(customerID) {
		if !inRange(*a.PostedDate, start, end) {
			continue
		}
		stmt.Allocations = append(stmt.Allocations, a)
		stmt.AllocationCount++
		stmt.CumulativePremium = stmt.CumulativePremium.Add(a.TotalPremium)
		stmt.CumulativeRisk = stmt.CumulativeRisk.Add(a.RiskPremium)
		stmt.CumulativeSavings = stmt.CumulativeSavings.Add(a.SavingsPremium)
	}
	sortByPostedDate(stmt.Allocations)
	stmt.OverallRiskPercentage, stmt.OverallSavingsPercentage =
		overallPercentages(stmt.CumulativePremium, stmt.CumulativeRisk)
	return stmt
}

// RiskInvestmentRatio reports the customer's posted risk total divided by
// the posted savings total. The ratio is undefined (Defined=false) when
// no savings have accrued.
func (e *Engine) RiskInvestmentRatio(customerID string) domain.RiskInvestmentRatio {
	ratio := domain.RiskInvestmentRatio{
		CustomerID:   customerID,
		TotalRisk:    decimal.Zero,
		TotalSavings: decimal.Zero,
		Ratio:        decimal.Zero,
	}
	for _, a := range e.postedForCustomer(customerID) {
		ratio.TotalRisk = ratio.TotalRisk.Add(a.RiskPremium)
		ratio.TotalSavings = ratio.TotalSavings.Add(a.SavingsPremium)
	}
	if !ratio.TotalSavings.IsZero() {
		ratio.Ratio = ratio.TotalRisk.Div(ratio.TotalSavings)
		ratio.Defined = true
	}
	return ratio
}

// CustomerSummary aggregates a customer's posted allocations. The average
// percentages are simple per-allocation means (not premium-weighted);
// the allocation list is included so callers can recompute weighted
// figures if they need them.
func (e *Engine) CustomerSummary(customerID string) domain.CustomerSummary {
	summary := domain.CustomerSummary{
		CustomerID:               customerID,
		TotalPremium:             decimal.Zero,
		TotalRisk:                decimal.Zero,
		TotalSavings:             decimal.Zero,
		AverageRiskPercentage:    decimal.Zero,
		AverageSavingsPercentage: decimal.Zero,
		OverallInvestmentRatio:   decimal.Zero,
	}

	allocs := e.postedForCustomer(customerID)
	sortByPostedDate(allocs)
	summary.Allocations = allocs
	summary.AllocationCount = len(allocs)

	riskPctSum := decimal.Zero
	for _, a := range allocs {
		summary.TotalPremium = summary.TotalPremium.Add(a.TotalPremium)
		summary.TotalRisk = summary.TotalRisk.Add(a.RiskPremium)
		summary.TotalSavings = summary.TotalSavings.Add(a.SavingsPremium)
		riskPctSum = riskPctSum.Add(a.RiskPercentage)
	}

	if summary.AllocationCount > 0 {
		n := decimal.NewFromInt(int64(summary.AllocationCount))
		summary.AverageRiskPercentage = riskPctSum.Div(n)
		summary.AverageSavingsPercentage = decimal.NewFromInt(100).Sub(summary.AverageRiskPercentage)
	}
	if !summary.TotalSavings.IsZero() {
		summary.OverallInvestmentRatio = summary.TotalRisk.Div(summary.TotalSavings)
		summary.RatioDefined = true
	}
	return summary
}

// Ledger account names used by the accounting book. Presentation detail,
// kept stable so downstream exports do not churn.
const (
	AccountPremiumClearing = "premium_clearing"
	AccountRiskPool        = "risk_pool"
	AccountCustomerSavings = "customer_savings"
)

// AccountingBook builds the system-wide ledger of posted allocations in
// [start, end]: two lines per allocation, risk then savings, each moving
// value out of the premium clearing account.
func (e *Engine) AccountingBook(start, end time.Time) domain.AccountingBook {
	book := domain.AccountingBook{
		PeriodStart:  start,
		PeriodEnd:    end,
		TotalRisk:    decimal.Zero,
		TotalSavings: decimal.Zero,
		TotalPremium: decimal.Zero,
	}

	e.mu.RLock()
	var posted []*domain.PremiumAllocation
	for _, a := range e.allocations {
		if a.IsPosted() && inRange(*a.PostedDate, start, end) {
			posted = append(posted, a.Clone())
		}
	}
	e.mu.RUnlock()

	sortByPostedDate(posted)
	for _, a := range posted {
		book.Lines = append(book.Lines,
			domain.LedgerLine{
				AllocationID:  a.AllocationID,
				PolicyID:      a.PolicyID,
				CustomerID:    a.CustomerID,
				PostedDate:    *a.PostedDate,
				DebitAccount:  AccountPremiumClearing,
				CreditAccount: AccountRiskPool,
				Amount:        a.RiskPremium,
				Memo:          "risk premium for bill " + a.BillID,
			},
			domain.LedgerLine{
				AllocationID:  a.AllocationID,
				PolicyID:      a.PolicyID,
				CustomerID:    a.CustomerID,
				PostedDate:    *a.PostedDate,
				DebitAccount:  AccountPremiumClearing,
				CreditAccount: AccountCustomerSavings,
				Amount:        a.SavingsPremium,
				Memo:          "savings premium for bill " + a.BillID,
			},
		)
		book.TotalRisk = book.TotalRisk.Add(a.RiskPremium)
		book.TotalSavings = book.TotalSavings.Add(a.SavingsPremium)
		book.TotalPremium = book.TotalPremium.Add(a.TotalPremium)
	}
	return book
}
