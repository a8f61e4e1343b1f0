package solver

import (
	"context"
	"fmt"
	"time"

	"github.com/bakeops/production-plan-optimizer/pkg/formulation"
)

// Status is the normalized solve outcome, shared by all backends.
type Status int

const (
	// StatusOptimal means the backend proved optimality.
	StatusOptimal Status = iota
	// StatusFeasible means a solution was found but optimality was not
	// proven, typically because the time limit or gap tolerance stopped
	// the search first.
	StatusFeasible
	StatusInfeasible
	StatusUnbounded
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "OPTIMAL"
	case StatusFeasible:
		return "FEASIBLE_NOT_PROVEN_OPTIMAL"
	case StatusInfeasible:
		return "INFEASIBLE"
	case StatusUnbounded:
		return "UNBOUNDED"
	case StatusError:
		return "ERROR"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// HasSolution reports whether variable values are meaningful for the
// status.
func (s Status) HasSolution() bool {
	return s == StatusOptimal || s == StatusFeasible
}

// State tracks one adapter instance through its solve lifecycle.
type State int

const (
	StateCreated State = iota
	StateBuilt
	StateSolving
	StateOptimal
	StateFeasibleTimeout
	StateInfeasible
	StateUnbounded
	StateErrored
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "Created"
	case StateBuilt:
		return "Built"
	case StateSolving:
		return "Solving"
	case StateOptimal:
		return "Optimal"
	case StateFeasibleTimeout:
		return "FeasibleTimeout"
	case StateInfeasible:
		return "Infeasible"
	case StateUnbounded:
		return "Unbounded"
	case StateErrored:
		return "Errored"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// terminalState maps a normalized status to the adapter's terminal state.
func terminalState(s Status) State {
	switch s {
	case StatusOptimal:
		return StateOptimal
	case StatusFeasible:
		return StateFeasibleTimeout
	case StatusInfeasible:
		return StateInfeasible
	case StatusUnbounded:
		return StateUnbounded
	default:
		return StateErrored
	}
}

// Config is the recognized solver configuration surface.
type Config struct {
	// TimeLimitSeconds caps wall-clock search time. Must be positive.
	TimeLimitSeconds float64
	// OptimalityGap is the relative tolerance at which a feasible but
	// unproven solution is accepted as final. Must be in [0, 1).
	OptimalityGap float64
}

// Validate rejects configuration outside the recognized ranges.
func (c Config) Validate() error {
	if c.TimeLimitSeconds <= 0 {
		return fmt.Errorf("time limit must be positive, got %g", c.TimeLimitSeconds)
	}
	if c.OptimalityGap < 0 || c.OptimalityGap >= 1 {
		return fmt.Errorf("optimality gap must be in [0, 1), got %g", c.OptimalityGap)
	}
	return nil
}

// RawResult is the backend-neutral solve outcome. Values maps variable
// indices (into the formulated model's variable list) to assigned
// quantities, populated only when the status carries a solution.
type RawResult struct {
	Status         Status
	ObjectiveValue float64
	HasObjective   bool
	SolveTime      time.Duration
	Values         map[int]int64
	// Message carries the backend's own description of an error outcome.
	Message string
}

// Solver is the capability interface implemented by backend adapters. An
// instance is single-use: Build once, Solve once, then discard. Solve
// blocks for up to the configured time limit; cancellation granularity is
// the backend's, not the context's.
type Solver interface {
	Build(model *formulation.Model) error
	Solve(ctx context.Context, cfg Config) (*RawResult, error)
	State() State
}

// UnknownSolverError reports a backend name the factory does not
// recognize. There is deliberately no silent fallback to a default
// backend.
type UnknownSolverError struct {
	Name string
}

func (e *UnknownSolverError) Error() string {
	return fmt.Sprintf("unknown solver %q", e.Name)
}

// New creates a backend adapter by name. Recognized names are "cpsat" and
// "glpk".
func New(name string) (Solver, error) {
	switch name {
	case "cpsat":
		return newCPSat(), nil
	case "glpk":
		return newGLPK(), nil
	default:
		return nil, &UnknownSolverError{Name: name}
	}
}

// Names lists the backends the factory can create, for CLI help and
// configuration validation messages.
func Names() []string {
	return []string{"cpsat", "glpk"}
}
