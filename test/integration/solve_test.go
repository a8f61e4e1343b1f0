//go:build integration

package integration

import (
	"context"

	"github.com/go-logr/logr"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/bakeops/production-plan-optimizer/internal/dataset"
	"github.com/bakeops/production-plan-optimizer/internal/metrics"
	"github.com/bakeops/production-plan-optimizer/internal/optimizer"
	"github.com/bakeops/production-plan-optimizer/pkg/core"
	"github.com/bakeops/production-plan-optimizer/pkg/formulation"
	"github.com/bakeops/production-plan-optimizer/pkg/solver"
)

const twoWeekPlan = `
products:
  - id: plain
    yield: 10
    cost:
      small: 1.0
      large: 2.0
  - id: deluxe
    yield: 8
    cost:
      small: 3.0
      large: 1.5
resources:
  - small
  - large
periods:
  - week1
  - week2
demand:
  plain:
    week1: 100
    week2: 150
  deluxe:
    week1: 50
    week2: 75
supply:
  small:
    week1: 120
    week2: 100
  large:
    week1: 80
    week2: 90
allowed:
  plain: [small, large]
  deluxe: [small, large]
`

func run(data *core.PlanningData, opts optimizer.RunOptions) *optimizer.RunResult {
	GinkgoHelper()
	r := optimizer.New(logr.Discard(), metrics.New())
	res, err := r.Run(context.Background(), data, opts)
	Expect(err).NotTo(HaveOccurred())
	return res
}

func defaultOpts(backend string, mode formulation.ObjectiveMode) optimizer.RunOptions {
	return optimizer.RunOptions{
		Mode:       mode,
		SolverName: backend,
		Solver:     solver.Config{TimeLimitSeconds: 30, OptimalityGap: 0.0},
	}
}

var _ = Describe("Solve", func() {
	for _, backend := range solver.Names() {
		backend := backend

		Context("with the "+backend+" backend", func() {
			It("minimizes cost on the two-week plan", func() {
				data, err := dataset.Parse([]byte(twoWeekPlan))
				Expect(err).NotTo(HaveOccurred())

				res := run(data, defaultOpts(backend, formulation.MinimizeCost))

				Expect(res.Report.Feasible).To(BeTrue())
				Expect(res.Raw.Status).To(Equal(solver.StatusOptimal))
				Expect(res.Solution).NotTo(BeNil())

				// Cheapest routing: plain exhausts small (220 units at
				// cost 10/unit) and overflows 30 onto large; deluxe takes
				// 125 units of large at 12/unit.
				Expect(res.Solution.ObjectiveValue).To(BeNumerically("~", 4300, 1e-6))
				Expect(res.Solution.TotalCost).To(BeNumerically("~", 4300, 1e-6))

				for _, d := range res.Solution.Demands {
					Expect(d.Exact).To(BeTrue(), d.Product+"/"+d.Period)
				}
			})

			It("banks early supply for later periods", func() {
				data := &core.PlanningData{
					Products:  []core.ProductType{{ID: "p", Yield: 1}},
					Resources: []core.ResourceType{{ID: "r"}},
					Periods: []core.Period{
						{ID: "w1", Seq: 1}, {ID: "w2", Seq: 2}, {ID: "w3", Seq: 3},
					},
					Demand: map[core.DemandKey]int{
						{Product: "p", Period: "w1"}: 2,
						{Product: "p", Period: "w2"}: 2,
						{Product: "p", Period: "w3"}: 1,
					},
					Supply:  map[core.SupplyKey]int{{Resource: "r", Period: "w1"}: 5},
					Cost:    map[core.PairKey]float64{{Product: "p", Resource: "r"}: 1.0},
					Allowed: map[core.PairKey]bool{{Product: "p", Resource: "r"}: true},
				}

				res := run(data, defaultOpts(backend, formulation.MinimizeCost))

				Expect(res.Report.Feasible).To(BeTrue())
				Expect(res.Raw.Status).To(Equal(solver.StatusOptimal))

				var total int64
				for _, a := range res.Solution.Allocations {
					total += a.Quantity
				}
				Expect(total).To(Equal(int64(5)))
			})

			It("reports infeasibility from the backend when forced", func() {
				data, err := dataset.Parse([]byte(twoWeekPlan))
				Expect(err).NotTo(HaveOccurred())
				// Starve week-1 supply below week-1 demand.
				delete(data.Supply, core.SupplyKey{Resource: "small", Period: "week1"})
				delete(data.Supply, core.SupplyKey{Resource: "large", Period: "week1"})

				opts := defaultOpts(backend, formulation.MinimizeCost)
				opts.Force = true
				res := run(data, opts)

				Expect(res.Report.Feasible).To(BeFalse())
				Expect(res.Raw.Status.HasSolution()).To(BeFalse())
				Expect(res.Solution).To(BeNil())
				if backend == "cpsat" {
					Expect(res.Raw.Status).To(Equal(solver.StatusInfeasible))
				}
			})

			It("overproduces under unconstrained output maximization", func() {
				data, err := dataset.Parse([]byte(twoWeekPlan))
				Expect(err).NotTo(HaveOccurred())

				res := run(data, defaultOpts(backend, formulation.MaximizeOutput))

				Expect(res.Raw.Status).To(Equal(solver.StatusOptimal))
				// All 390 supply units get used: 375 on demand plus 15
				// spare routed to the highest-yield product.
				var total int64
				for _, a := range res.Solution.Allocations {
					total += a.Quantity
				}
				Expect(total).To(Equal(int64(390)))
			})

			It("stays at demand with the limit option", func() {
				data, err := dataset.Parse([]byte(twoWeekPlan))
				Expect(err).NotTo(HaveOccurred())

				opts := defaultOpts(backend, formulation.MaximizeOutput)
				opts.LimitToDemand = true
				res := run(data, opts)

				Expect(res.Raw.Status).To(Equal(solver.StatusOptimal))
				for _, d := range res.Solution.Demands {
					Expect(d.Overproduction).To(BeZero())
				}
			})
		})
	}
})
