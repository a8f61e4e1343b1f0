// Package optimizer orchestrates the analysis/solve pipeline.
//
// The runner coordinates the core components in dependency order:
//
//	Data Model → Feasibility Checker → Model Formulator → Solver → Extractor
//	 (pkg/core)   (pkg/feasibility)    (pkg/formulation) (pkg/solver) (pkg/solution)
//
// The feasibility checker acts as a gate: when the report is infeasible
// the runner stops before any model is built, unless the caller forces the
// solve to proceed (useful to obtain the backend's own infeasibility
// proof).
//
// The runner owns the cross-cutting concerns the pure core packages must
// not have: structured logging through logr and Prometheus metrics for
// solve outcomes. Each Run constructs its own model and backend adapter;
// nothing is shared between runs, so independent runs (for example
// comparing objective modes or backends) may execute concurrently.
package optimizer
