// Package solver defines the capability interface between the model
// formulation layer and the integer-programming engines that do the
// combinatorial search.
//
// Key components:
//
//   - Solver: the backend-neutral interface (Build, Solve, State)
//   - New: a by-name factory over the registered backends
//   - RawResult: the normalized solve outcome
//
// Two interchangeable backend adapters implement the interface: an
// OR-Tools CP-SAT adapter ("cpsat") and a GLPK MIP adapter ("glpk"). Each
// adapter maps its engine's native status vocabulary onto the fixed
// taxonomy {Optimal, Feasible, Infeasible, Unbounded, Error} so that
// downstream reporting never depends on one engine's vocabulary, and
// catches engine-internal faults at the adapter boundary, normalizing them
// to StatusError instead of letting them escape.
//
// Example usage:
//
//	s, err := solver.New("cpsat")
//	if err != nil {
//		return err
//	}
//	if err := s.Build(model); err != nil {
//		return err
//	}
//	raw, err := s.Solve(ctx, solver.Config{TimeLimitSeconds: 60, OptimalityGap: 0.005})
//	if err != nil {
//		return err
//	}
//	switch raw.Status {
//	case solver.StatusOptimal, solver.StatusFeasible:
//		// extract the solution
//	case solver.StatusInfeasible:
//		// a result, not an error: report and stop
//	}
//
// Per solve invocation the adapter moves Created → Built → Solving and
// ends in exactly one terminal state. No retries happen automatically; a
// caller wanting different configuration invokes Solve again explicitly.
// Adapter instances are owned by the solve cycle that created them and
// must not be shared across concurrent solves.
package solver
