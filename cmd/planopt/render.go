package main

import (
	"fmt"
	"math"
	"sort"

	"github.com/spf13/cobra"

	"github.com/bakeops/production-plan-optimizer/internal/optimizer"
	"github.com/bakeops/production-plan-optimizer/pkg/feasibility"
)

func renderReport(cmd *cobra.Command, report *feasibility.Report) {
	out := cmd.OutOrStdout()

	verdict := "FEASIBLE"
	if !report.Feasible {
		verdict = "INFEASIBLE"
	}
	fmt.Fprintf(out, "Feasibility: %s\n", verdict)
	if math.IsInf(report.SupplyBufferPct, 1) {
		fmt.Fprintln(out, "Supply buffer: no demand")
	} else {
		fmt.Fprintf(out, "Supply buffer: %.1f%% of demand\n", report.SupplyBufferPct)
	}
	if report.AggregateShortfall > 0 {
		fmt.Fprintf(out, "Aggregate shortfall: %d resource units\n", report.AggregateShortfall)
	}

	for _, pc := range report.Periods {
		marker := "ok"
		if !pc.CumulativeOK {
			marker = "CUMULATIVE DEFICIT"
		} else if !pc.OK {
			marker = "period deficit, covered by banked supply"
		}
		fmt.Fprintf(out, "  %s: demand %d, supply %d (cumulative %d/%d) %s\n",
			pc.Period, pc.Demand, pc.Supply, pc.CumulativeDemand, pc.CumulativeSupply, marker)
	}
	for _, s := range report.Shortages {
		fmt.Fprintf(out, "  shortage: %s in %s needs %.1f compatible units, has %d (%.1f%% short)\n",
			s.Product, s.Period, s.Required, s.CompatibleSupply, s.DeficitPct)
	}
	for _, w := range report.Warnings {
		fmt.Fprintf(out, "  warning: %s\n", w)
	}
}

func renderSolution(cmd *cobra.Command, result *optimizer.RunResult) {
	out := cmd.OutOrStdout()
	sol := result.Solution

	fmt.Fprintf(out, "\nSolve status: %s (%.2fs)\n", sol.Status, sol.SolveTime.Seconds())
	fmt.Fprintf(out, "Objective: %.2f\n", sol.ObjectiveValue)
	fmt.Fprintf(out, "Total output: %.1f units, total cost: %.2f (%.4f per unit)\n",
		sol.TotalOutput, sol.TotalCost, sol.AvgCostPerUnit)

	for _, a := range sol.Allocations {
		fmt.Fprintf(out, "  %s on %s in %s: %d units -> %.1f output, cost %.2f\n",
			a.Product, a.Resource, a.Period, a.Quantity, a.Output, a.Cost)
	}
	resources := make([]string, 0, len(sol.Utilization))
	for resource := range sol.Utilization {
		resources = append(resources, resource)
	}
	sort.Strings(resources)
	for _, resource := range resources {
		fmt.Fprintf(out, "  utilization %s: %.1f%%\n", resource, sol.Utilization[resource]*100)
	}
	for _, d := range sol.Demands {
		if d.Overproduction > 0 {
			fmt.Fprintf(out, "  overproduced %s in %s: %d assigned vs %d demanded\n",
				d.Product, d.Period, d.Assigned, d.Demand)
		}
	}
}
