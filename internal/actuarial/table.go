// Package actuarial provides the ADL permanent-disability claim
// probability tables used by PHI pricing.
//
// TABLE ASSUMPTIONS:
//
//  1. Rates are annual claim probabilities derived from ADL (Activities of
//     Daily Living) disability incidence data, anchored at fixed ages and
//     linearly interpolated between anchors.
//  2. Age 50 is the calibration anchor: both jurisdictions yield exactly
//     0.03 (3.0%) at age 50. Reinsurance treaties are quoted against this
//     point, so it must never drift.
//  3. Ages below the lowest anchor or above the highest saturate to the
//     nearest anchor's rate. Inputs outside [0, 100] clamp to that range
//     first; saturation is intentional, not an error.
package actuarial

import (
	"github.com/shopspring/decimal"

	"github.com/premialab/premia/internal/domain"
)

// RatePoint is one anchor in a piecewise-linear rate table.
type RatePoint struct {
	Age  int
	Rate decimal.Decimal
}

func pt(age int, rate string) RatePoint {
	return RatePoint{Age: age, Rate: decimal.RequireFromString(rate)}
}

// adlTables holds the per-jurisdiction anchor points, ordered by age.
var adlTables = map[domain.Jurisdiction][]RatePoint{
	domain.JurisdictionUS: {
		pt(18, "0.0040"),
		pt(25, "0.0055"),
		pt(30, "0.0075"),
		pt(35, "0.0105"),
		pt(40, "0.0150"),
		pt(45, "0.0215"),
		pt(50, "0.0300"),
		pt(55, "0.0420"),
		pt(60, "0.0580"),
		pt(65, "0.0790"),
		pt(70, "0.1050"),
		pt(75, "0.1400"),
		pt(80, "0.1850"),
		pt(85, "0.2400"),
		pt(90, "0.3100"),
		pt(95, "0.3900"),
		pt(100, "0.4800"),
	},
	domain.JurisdictionUK: {
		pt(18, "0.0035"),
		pt(25, "0.0050"),
		pt(30, "0.0070"),
		pt(35, "0.0100"),
		pt(40, "0.0145"),
		pt(45, "0.0210"),
		pt(50, "0.0300"),
		pt(55, "0.0430"),
		pt(60, "0.0600"),
		pt(65, "0.0820"),
		pt(70, "0.1100"),
		pt(75, "0.1450"),
		pt(80, "0.1900"),
		pt(85, "0.2500"),
		pt(90, "0.3200"),
		pt(95, "0.4000"),
		pt(100, "0.5000"),
	},
}

// ADLDisabilityRate returns the annual permanent-disability claim
// probability for the given jurisdiction and age. Age is clamped to
// [0, 100] before lookup; an unknown jurisdiction uses the US table.
// The result is always a finite fraction in [0, 1].
func ADLDisabilityRate(jurisdiction domain.Jurisdiction, age int) decimal.Decimal {
	table, ok := adlTables[jurisdiction]
	if !ok {
		table = adlTables[domain.JurisdictionUS]
	}

	if age < 0 {
		age = 0
	}
	if age > 100 {
		age = 100
	}

	if age <= table[0].Age {
		return table[0].Rate
	}
	last := table[len(table)-1]
	if age >= last.Age {
		return last.Rate
	}

	for i := 1; i < len(table); i++ {
		lo, hi := table[i-1], table[i]
		if age > hi.Age {
			continue
		}
		if age == hi.Age {
			return hi.Rate
		}
		// rate = y0 + (age - x0) / (x1 - x0) * (y1 - y0)
		span := decimal.NewFromInt(int64(hi.Age - lo.Age))
		offset := decimal.NewFromInt(int64(age - lo.Age))
		return lo.Rate.Add(offset.Div(span).Mul(hi.Rate.Sub(lo.Rate)))
	}
	return last.Rate
}

// AnchorAges returns the anchor ages of a jurisdiction's table, for
// diagnostics and tests.
func AnchorAges(jurisdiction domain.Jurisdiction) []int {
	table, ok := adlTables[jurisdiction]
	if !ok {
		table = adlTables[domain.JurisdictionUS]
	}
	ages := make([]int, len(table))
	for i, p := range table {
		ages[i] = p.Age
	}
	return ages
}
