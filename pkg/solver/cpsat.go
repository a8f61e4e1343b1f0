package solver

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	cmpb "github.com/google/or-tools/ortools/sat/proto/cpmodel"
	sppb "github.com/google/or-tools/ortools/sat/proto/satparameters"
	"google.golang.org/protobuf/proto"

	"github.com/bakeops/production-plan-optimizer/pkg/formulation"
)

// objectiveScale turns the fractional cost/yield coefficients into the
// integer coefficients CP-SAT requires. The scale is divided back out of
// the reported objective value.
const objectiveScale = 1000

// cpsatSolver adapts the OR-Tools CP-SAT engine. CP-SAT works on finite
// integer domains, so it relies on the per-variable upper bounds the
// formulator provides; an unbounded outcome cannot occur here.
type cpsatSolver struct {
	state State
	model *formulation.Model
	proto *cmpb.CpModelProto
	vars  []cpmodel.IntVar
}

func newCPSat() *cpsatSolver {
	return &cpsatSolver{state: StateCreated}
}

func (s *cpsatSolver) State() State { return s.state }

func (s *cpsatSolver) Build(model *formulation.Model) error {
	if s.state != StateCreated {
		return fmt.Errorf("cpsat: Build called in state %s", s.state)
	}

	b := cpmodel.NewCpModelBuilder()
	s.vars = make([]cpmodel.IntVar, len(model.Variables))
	for i, v := range model.Variables {
		s.vars[i] = b.NewIntVar(0, v.UpperBound)
	}

	obj := cpmodel.NewLinearExpr()
	for _, t := range model.Objective {
		obj.AddTerm(s.vars[t.Var], scaleCoef(t.Coef))
	}
	if model.Maximize {
		b.Maximize(obj)
	} else {
		b.Minimize(obj)
	}

	for _, c := range model.Constraints {
		expr := cpmodel.NewLinearExpr()
		for _, t := range c.Terms {
			expr.AddTerm(s.vars[t.Var], int64(math.Round(t.Coef)))
		}
		rhs := cpmodel.NewConstant(int64(math.Round(c.RHS)))
		switch c.Sense {
		case formulation.Equal:
			b.AddEquality(expr, rhs)
		case formulation.LessOrEqual:
			b.AddLessOrEqual(expr, rhs)
		case formulation.GreaterOrEqual:
			b.AddGreaterOrEqual(expr, rhs)
		}
	}

	m, err := b.Model()
	if err != nil {
		return fmt.Errorf("cpsat: instantiating model: %w", err)
	}
	s.proto = m
	s.model = model
	s.state = StateBuilt
	return nil
}

func (s *cpsatSolver) Solve(_ context.Context, cfg Config) (*RawResult, error) {
	if s.state != StateBuilt {
		return nil, fmt.Errorf("cpsat: Solve called in state %s", s.state)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s.state = StateSolving

	params := &sppb.SatParameters{
		MaxTimeInSeconds: proto.Float64(cfg.TimeLimitSeconds),
		RelativeGapLimit: proto.Float64(cfg.OptimalityGap),
	}

	start := time.Now()
	response, err := cpmodel.SolveCpModelWithParameters(s.proto, params)
	elapsed := time.Since(start)
	if err != nil {
		// Engine faults are normalized to an error result rather than
		// escaping the adapter boundary.
		result := &RawResult{Status: StatusError, SolveTime: elapsed, Message: err.Error()}
		s.state = StateErrored
		return result, nil
	}

	result := &RawResult{
		Status:    mapCPSatStatus(response.GetStatus()),
		SolveTime: elapsed,
	}
	if wall := response.GetWallTime(); wall > 0 {
		result.SolveTime = time.Duration(wall * float64(time.Second))
	}
	if result.Status.HasSolution() {
		result.ObjectiveValue = response.GetObjectiveValue() / objectiveScale
		result.HasObjective = true
		values := response.GetSolution()
		result.Values = make(map[int]int64, len(s.vars))
		for i, v := range s.vars {
			result.Values[i] = values[v.Index()]
		}
	} else {
		result.Message = response.GetStatus().String()
	}
	s.state = terminalState(result.Status)
	return result, nil
}

func mapCPSatStatus(status cmpb.CpSolverStatus) Status {
	switch status {
	case cmpb.CpSolverStatus_OPTIMAL:
		return StatusOptimal
	case cmpb.CpSolverStatus_FEASIBLE:
		return StatusFeasible
	case cmpb.CpSolverStatus_INFEASIBLE:
		return StatusInfeasible
	default:
		// MODEL_INVALID and UNKNOWN both mean no usable outcome.
		return StatusError
	}
}

func scaleCoef(c float64) int64 {
	return int64(math.Round(c * objectiveScale))
}
