package solver

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/lukpank/go-glpk/glpk"

	"github.com/bakeops/production-plan-optimizer/pkg/formulation"
)

// glpkSolver adapts the GNU Linear Programming Kit through the go-glpk
// wrapper. The wrapper exposes no time-limit or gap parameters, so the
// solve configuration is validated and accepted but not forwarded; the
// engine runs to completion. Callers needing those knobs should select the
// cpsat backend.
type glpkSolver struct {
	state State
	model *formulation.Model
	lp    *glpk.Prob
}

func newGLPK() *glpkSolver {
	return &glpkSolver{state: StateCreated}
}

func (s *glpkSolver) State() State { return s.state }

func (s *glpkSolver) Build(model *formulation.Model) error {
	if s.state != StateCreated {
		return fmt.Errorf("glpk: Build called in state %s", s.state)
	}

	lp := glpk.New()
	lp.SetProbName("production_plan")
	if model.Maximize {
		lp.SetObjDir(glpk.ObjDir(glpk.MAX))
	} else {
		lp.SetObjDir(glpk.ObjDir(glpk.MIN))
	}

	// Columns: one integer variable per model variable, 1-based.
	lp.AddCols(len(model.Variables))
	for i, v := range model.Variables {
		col := i + 1
		lp.SetColName(col, fmt.Sprintf("x_%s_%s_%s", v.Product, v.Resource, v.Period))
		lp.SetColKind(col, glpk.VarType(glpk.IV))
		lp.SetColBnds(col, glpk.BndsType(glpk.LO), 0, 0)
	}
	for _, t := range model.Objective {
		lp.SetObjCoef(t.Var+1, t.Coef)
	}

	// Rows: one per constraint.
	row := 0
	for _, c := range model.Constraints {
		lp.AddRows(1)
		row++
		lp.SetRowName(row, c.Name)
		switch c.Sense {
		case formulation.Equal:
			lp.SetRowBnds(row, glpk.BndsType(glpk.FX), c.RHS, c.RHS)
		case formulation.LessOrEqual:
			lp.SetRowBnds(row, glpk.BndsType(glpk.UP), 0, c.RHS)
		case formulation.GreaterOrEqual:
			lp.SetRowBnds(row, glpk.BndsType(glpk.LO), c.RHS, 0)
		}
		indices := make([]int32, len(c.Terms))
		coefs := make([]float64, len(c.Terms))
		for i, t := range c.Terms {
			indices[i] = int32(t.Var + 1)
			coefs[i] = t.Coef
		}
		lp.SetMatRow(row, indices, coefs)
	}

	s.lp = lp
	s.model = model
	s.state = StateBuilt
	return nil
}

func (s *glpkSolver) Solve(_ context.Context, cfg Config) (*RawResult, error) {
	if s.state != StateBuilt {
		return nil, fmt.Errorf("glpk: Solve called in state %s", s.state)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s.state = StateSolving
	defer s.lp.Delete()

	smcp := glpk.NewSmcp()
	smcp.SetMsgLev(glpk.MsgLev(glpk.MSG_ERR))
	iocp := glpk.NewIocp()
	iocp.SetPresolve(true)
	iocp.SetMsgLev(glpk.MsgLev(glpk.MSG_ERR))

	// Engine faults stay inside the adapter and come back as an error
	// result, never as a fault.
	start := time.Now()
	if err := s.lp.Simplex(smcp); err != nil {
		s.state = StateErrored
		return &RawResult{Status: StatusError, SolveTime: time.Since(start), Message: err.Error()}, nil
	}
	if err := s.lp.Intopt(iocp); err != nil {
		s.state = StateErrored
		return &RawResult{Status: StatusError, SolveTime: time.Since(start), Message: err.Error()}, nil
	}
	elapsed := time.Since(start)

	result := &RawResult{SolveTime: elapsed}
	switch status := s.lp.MipStatus(); status {
	case glpk.OPT:
		result.Status = StatusOptimal
	case glpk.FEAS:
		result.Status = StatusFeasible
	case glpk.NOFEAS:
		result.Status = StatusInfeasible
	case glpk.UNBND:
		result.Status = StatusUnbounded
	default:
		result.Status = StatusError
		result.Message = fmt.Sprintf("glpk mip status %v", status)
	}
	if result.Status.HasSolution() {
		result.ObjectiveValue = s.lp.MipObjVal()
		result.HasObjective = true
		result.Values = make(map[int]int64, len(s.model.Variables))
		for i := range s.model.Variables {
			result.Values[i] = int64(math.Round(s.lp.MipColVal(i + 1)))
		}
	}
	s.state = terminalState(result.Status)
	return result, nil
}
