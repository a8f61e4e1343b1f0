package optimizer

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/bakeops/production-plan-optimizer/internal/metrics"
	"github.com/bakeops/production-plan-optimizer/pkg/core"
	"github.com/bakeops/production-plan-optimizer/pkg/feasibility"
	"github.com/bakeops/production-plan-optimizer/pkg/formulation"
	"github.com/bakeops/production-plan-optimizer/pkg/solution"
	"github.com/bakeops/production-plan-optimizer/pkg/solver"
)

// SolverFactory resolves a backend adapter by name. The default is
// solver.New; tests inject stubs through it.
type SolverFactory func(name string) (solver.Solver, error)

// RunOptions selects what one pipeline run should do.
type RunOptions struct {
	Mode          formulation.ObjectiveMode
	LimitToDemand bool

	SolverName string
	Solver     solver.Config

	// Force skips the feasibility gate and hands the model to the
	// backend even when the report says infeasible.
	Force bool
}

// RunResult aggregates the pipeline outputs. Solution is nil when the
// feasibility gate short-circuited or the solve produced no solution; Raw
// is nil only when the gate short-circuited.
type RunResult struct {
	Report   *feasibility.Report
	Raw      *solver.RawResult
	Solution *solution.Solution
}

// Runner executes analysis/solve cycles. The zero value is not usable;
// construct with New.
type Runner struct {
	log     logr.Logger
	metrics *metrics.Metrics
	factory SolverFactory
}

// Option customizes a Runner.
type Option func(*Runner)

// WithSolverFactory replaces the backend factory, for tests.
func WithSolverFactory(f SolverFactory) Option {
	return func(r *Runner) { r.factory = f }
}

// New creates a Runner.
func New(log logr.Logger, m *metrics.Metrics, opts ...Option) *Runner {
	r := &Runner{log: log, metrics: m, factory: solver.New}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// CheckOnly runs integrity validation and the feasibility analysis
// without building a model.
func (r *Runner) CheckOnly(data *core.PlanningData) (*feasibility.Report, error) {
	report, err := feasibility.Check(data)
	if err != nil {
		return nil, err
	}
	if !report.Feasible {
		r.metrics.InfeasibleReports.Inc()
	}
	return report, nil
}

// Run executes the full pipeline for one dataset.
func (r *Runner) Run(ctx context.Context, data *core.PlanningData, opts RunOptions) (*RunResult, error) {
	report, err := r.CheckOnly(data)
	if err != nil {
		return nil, err
	}
	result := &RunResult{Report: report}

	log := r.log.WithValues("objective", opts.Mode.String(), "solver", opts.SolverName)
	log.Info("feasibility analysis complete",
		"feasible", report.Feasible,
		"supplyBufferPct", report.SupplyBufferPct,
		"shortages", len(report.Shortages))

	if !report.Feasible && !opts.Force {
		log.Info("dataset infeasible, skipping solve")
		return result, nil
	}

	model, err := formulation.Formulate(data, opts.Mode, formulation.Options{
		LimitToDemand: opts.LimitToDemand,
	})
	if err != nil {
		return nil, err
	}
	log.V(1).Info("model formulated",
		"variables", len(model.Variables),
		"constraints", len(model.Constraints))

	backend, err := r.factory(opts.SolverName)
	if err != nil {
		return nil, err
	}
	if err := backend.Build(model); err != nil {
		return nil, fmt.Errorf("building backend model: %w", err)
	}

	raw, err := backend.Solve(ctx, opts.Solver)
	if err != nil {
		return nil, fmt.Errorf("solving: %w", err)
	}
	result.Raw = raw
	r.metrics.SolvesTotal.WithLabelValues(opts.SolverName, raw.Status.String()).Inc()
	r.metrics.SolveDuration.Observe(raw.SolveTime.Seconds())
	log.Info("solve finished",
		"status", raw.Status.String(),
		"solveTime", raw.SolveTime,
		"state", backend.State().String())

	if !raw.Status.HasSolution() {
		// Infeasible, unbounded and error outcomes are results the
		// caller branches on, not failures of the pipeline.
		return result, nil
	}

	sol, err := solution.Extract(data, model, raw)
	if err != nil {
		return nil, err
	}
	result.Solution = sol
	log.Info("solution extracted",
		"allocations", len(sol.Allocations),
		"totalCost", sol.TotalCost,
		"totalOutput", sol.TotalOutput)
	return result, nil
}
