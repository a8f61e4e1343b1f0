// Package formulation builds an abstract integer-program description from
// a planning dataset and an objective mode. The description is backend
// neutral: solver adapters in the solver package translate it into their
// native model form.
//
// Compatibility is enforced structurally. A decision variable exists only
// for allowed (product, resource, period) triples, so disallowed
// assignments are impossible by construction instead of being zeroed out
// by explicit constraints. This keeps the model sparse and makes
// structurally infeasible assignments unrepresentable.
package formulation

import (
	"fmt"
)

// ObjectiveMode selects which of the two alternative models to build.
type ObjectiveMode int

const (
	// MinimizeCost minimizes total production cost with exact demand
	// fulfillment.
	MinimizeCost ObjectiveMode = iota
	// MaximizeOutput maximizes total produced output.
	MaximizeOutput
)

func (m ObjectiveMode) String() string {
	switch m {
	case MinimizeCost:
		return "minimize_cost"
	case MaximizeOutput:
		return "maximize_output"
	default:
		return fmt.Sprintf("objective_mode(%d)", int(m))
	}
}

// Options tunes model construction. LimitToDemand is only meaningful for
// MaximizeOutput: it forces exact demand fulfillment where the
// unconstrained formulation allows overproduction.
type Options struct {
	LimitToDemand bool
}

// Sense is the comparison direction of a linear constraint.
type Sense int

const (
	Equal Sense = iota
	LessOrEqual
	GreaterOrEqual
)

// Variable is one non-negative integer decision variable: the number of
// resource units of Resource assigned to Product in Period. UpperBound is
// a finite domain bound (the resource's total supply) for backends that
// require one.
type Variable struct {
	Product    string
	Resource   string
	Period     string
	UpperBound int64
}

// Term is one coefficient in a linear expression, referencing a variable
// by its index in Model.Variables.
type Term struct {
	Var  int
	Coef float64
}

// Constraint is one linear constraint over the decision variables.
type Constraint struct {
	Name  string
	Terms []Term
	Sense Sense
	RHS   float64
}

// Model is the abstract integer program handed to a solver backend.
type Model struct {
	Mode     ObjectiveMode
	Maximize bool

	Variables   []Variable
	Objective   []Term
	Constraints []Constraint

	index map[tripleKey]int
}

type tripleKey struct {
	product  string
	resource string
	period   string
}

// VarIndex returns the index of the variable for the triple, if one was
// created.
func (m *Model) VarIndex(product, resource, period string) (int, bool) {
	i, ok := m.index[tripleKey{product, resource, period}]
	return i, ok
}

// ModelBuildError reports a formulation-time failure: a missing cost entry
// under cost minimization, or a compatibility matrix that admits no
// variables at all.
type ModelBuildError struct {
	Reason string
}

func (e *ModelBuildError) Error() string {
	return fmt.Sprintf("cannot build model: %s", e.Reason)
}
