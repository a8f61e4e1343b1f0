package solver

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	for _, name := range Names() {
		s, err := New(name)
		require.NoError(t, err, name)
		assert.Equal(t, StateCreated, s.State(), name)
	}

	_, err := New("simplex-deluxe")
	require.Error(t, err)
	var unknown *UnknownSolverError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "simplex-deluxe", unknown.Name)
	assert.Contains(t, err.Error(), "simplex-deluxe")
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"defaults in range", Config{TimeLimitSeconds: 60, OptimalityGap: 0.005}, ""},
		{"zero gap allowed", Config{TimeLimitSeconds: 1, OptimalityGap: 0}, ""},
		{"zero time limit", Config{TimeLimitSeconds: 0, OptimalityGap: 0.1}, "time limit"},
		{"negative time limit", Config{TimeLimitSeconds: -5, OptimalityGap: 0.1}, "time limit"},
		{"negative gap", Config{TimeLimitSeconds: 10, OptimalityGap: -0.01}, "optimality gap"},
		{"gap of one", Config{TimeLimitSeconds: 10, OptimalityGap: 1.0}, "optimality gap"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "OPTIMAL", StatusOptimal.String())
	assert.Equal(t, "FEASIBLE_NOT_PROVEN_OPTIMAL", StatusFeasible.String())
	assert.Equal(t, "INFEASIBLE", StatusInfeasible.String())
	assert.Equal(t, "UNBOUNDED", StatusUnbounded.String())
	assert.Equal(t, "ERROR", StatusError.String())
}

func TestStatusHasSolution(t *testing.T) {
	assert.True(t, StatusOptimal.HasSolution())
	assert.True(t, StatusFeasible.HasSolution())
	assert.False(t, StatusInfeasible.HasSolution())
	assert.False(t, StatusUnbounded.HasSolution())
	assert.False(t, StatusError.HasSolution())
}

func TestTerminalState(t *testing.T) {
	assert.Equal(t, StateOptimal, terminalState(StatusOptimal))
	assert.Equal(t, StateFeasibleTimeout, terminalState(StatusFeasible))
	assert.Equal(t, StateInfeasible, terminalState(StatusInfeasible))
	assert.Equal(t, StateUnbounded, terminalState(StatusUnbounded))
	assert.Equal(t, StateErrored, terminalState(StatusError))
}
