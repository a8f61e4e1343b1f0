// Package feasibility decides, before any model is built, whether a
// production plan can exist for a planning dataset, and by how much it
// falls short when it cannot.
//
// The checks run in increasing diagnostic detail and are all reported
// together so the caller sees every violated condition at once:
//
//  1. aggregate supply vs demand over the whole horizon
//  2. per-period supply vs demand
//  3. cumulative (banked) supply vs demand along the period order
//  4. compatibility existence per product (a data-integrity concern,
//     enforced by core.Validate)
//  5. compatibility-constrained supply per (product, period)
//
// Infeasibility is a result, never an error: Check only fails with a
// core.DataIntegrityError. The package never logs and never mutates its
// input; rendering the report is a collaborator concern.
package feasibility

import (
	"math"
	"strconv"

	"github.com/bakeops/production-plan-optimizer/pkg/core"
)

// TightBufferPct is the supply-buffer ratio below which a technically
// sufficient supply is still flagged as a warning, matching the 10% margin
// the original planning tool warned about.
const TightBufferPct = 110.0

// PeriodCheck carries the per-period and cumulative balance for one period,
// in period order.
type PeriodCheck struct {
	Period string

	Demand  int
	Supply  int
	Surplus int
	OK      bool

	CumulativeDemand int
	CumulativeSupply int
	CumulativeOK     bool
}

// Shortage describes a compatibility-constrained deficit for one
// (product, period) pair. Required and CompatibleSupply are denominated in
// resource units; demand is converted through the product's yield.
type Shortage struct {
	Product string
	Period  string

	Required         float64
	CompatibleSupply int
	Deficit          float64
	DeficitPct       float64
}

// Report is the full feasibility verdict with diagnostics. It is a plain
// data structure safe to serialize or render by a presentation layer.
type Report struct {
	// Feasible is false when the aggregate, cumulative or
	// compatibility-constrained check fails. The per-period check is
	// diagnostic only: banked surplus from earlier periods can repair a
	// per-period deficit.
	Feasible bool

	// SupplyBufferPct is total supply as a percentage of total demand.
	// Positive infinity when there is no demand at all.
	SupplyBufferPct float64

	// AggregateShortfall is demandTotal - supplyTotal clamped at zero.
	AggregateShortfall int

	AggregateOK  bool
	CumulativeOK bool

	Periods   []PeriodCheck
	Shortages []Shortage

	// Warnings are advisory findings that do not affect the verdict,
	// such as a tight supply buffer or resources no product can use.
	Warnings []string
}

// Check analyzes the dataset and produces a feasibility report. The input
// is never mutated. Ordinary infeasibility is reported in the result; only
// violations of the core invariants return an error.
func Check(data *core.PlanningData) (*Report, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}

	report := &Report{AggregateOK: true, CumulativeOK: true}

	demandTotal := data.TotalDemand()
	supplyTotal := data.TotalSupply()

	if supplyTotal < demandTotal {
		report.AggregateOK = false
		report.AggregateShortfall = demandTotal - supplyTotal
	}
	if demandTotal > 0 {
		report.SupplyBufferPct = float64(supplyTotal) / float64(demandTotal) * 100
	} else {
		report.SupplyBufferPct = math.Inf(1)
	}
	if report.AggregateOK && report.SupplyBufferPct < TightBufferPct {
		report.Warnings = append(report.Warnings,
			"supply buffer below "+formatPct(TightBufferPct)+" of demand")
	}

	checkPeriods(data, report)
	checkCompatibleSupply(data, report)
	checkIdleResources(data, report)

	report.Feasible = report.AggregateOK && report.CumulativeOK && len(report.Shortages) == 0
	return report, nil
}

// checkPeriods fills in the per-period and cumulative balances with a
// single accumulator pass over the sorted periods.
func checkPeriods(data *core.PlanningData, report *Report) {
	cumDemand, cumSupply := 0, 0
	for _, w := range data.SortedPeriods() {
		demand := data.PeriodDemand(w.ID)
		supply := data.PeriodSupply(w.ID)
		cumDemand += demand
		cumSupply += supply

		pc := PeriodCheck{
			Period:           w.ID,
			Demand:           demand,
			Supply:           supply,
			Surplus:          supply - demand,
			OK:               supply >= demand,
			CumulativeDemand: cumDemand,
			CumulativeSupply: cumSupply,
			CumulativeOK:     cumSupply >= cumDemand,
		}
		if !pc.CumulativeOK {
			report.CumulativeOK = false
		}
		report.Periods = append(report.Periods, pc)
	}
}

// checkCompatibleSupply is the tightest check: for every (product, period)
// with demand, the supply of compatible resources alone must cover the
// demand converted to resource units through the product's yield.
func checkCompatibleSupply(data *core.PlanningData, report *Report) {
	for _, p := range data.Products {
		compatible := data.CompatibleResources(p.ID)
		for _, w := range data.SortedPeriods() {
			demand := data.DemandAt(p.ID, w.ID)
			if demand <= 0 {
				continue
			}
			required := float64(demand) / p.Yield
			supply := 0
			for _, r := range compatible {
				supply += data.SupplyAt(r, w.ID)
			}
			deficit := required - float64(supply)
			if deficit <= 0 {
				continue
			}
			report.Shortages = append(report.Shortages, Shortage{
				Product:          p.ID,
				Period:           w.ID,
				Required:         required,
				CompatibleSupply: supply,
				Deficit:          deficit,
				DeficitPct:       deficit / required * 100,
			})
		}
	}
}

// checkIdleResources flags resource types that no product can use. This is
// a warning, not an infeasibility: unused capacity is waste, not shortage.
func checkIdleResources(data *core.PlanningData, report *Report) {
	for _, r := range data.Resources {
		used := false
		for _, p := range data.Products {
			if data.IsAllowed(p.ID, r.ID) {
				used = true
				break
			}
		}
		if !used {
			report.Warnings = append(report.Warnings,
				"resource type "+r.ID+" is not usable by any product")
		}
	}
}

func formatPct(v float64) string {
	return strconv.FormatFloat(v, 'f', 0, 64) + "%"
}
