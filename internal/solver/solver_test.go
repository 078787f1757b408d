package solver

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/markovavail/internal/model"
)

func buildModel(t *testing.T, states []string, edges map[[2]string]float64) *model.Model {
	t.Helper()
	m := model.New(t.Name())
	for _, s := range states {
		m.AddState(model.State{Name: s})
	}
	for pair, fits := range edges {
		from, ok := m.Index(pair[0])
		require.True(t, ok)
		to, ok := m.Index(pair[1])
		require.True(t, ok)
		require.NoError(t, m.SetRate(from, to, "", fits))
	}
	return m
}

func TestEquations(t *testing.T) {
	rates := [][]float64{
		{0, 100, 5},
		{900, 0, 0},
		{7, 0, 0},
	}
	a, b := Equations(rates)

	want := [][]float64{
		{1, 1, 1},
		{100, -900, 0},
		{5, 0, -7},
	}
	for i := range want {
		for j := range want[i] {
			assert.Equal(t, want[i][j], a.At(i, j), "A[%d][%d]", i, j)
		}
	}
	assert.Equal(t, []float64{1, 0, 0}, b.RawVector().Data)
}

func TestSolve_TwoState(t *testing.T) {
	m := buildModel(t, []string{"A", "B"}, map[[2]string]float64{
		{"A", "B"}: 100,
		{"B", "A"}: 900,
	})
	sol, err := Solve(context.Background(), m)
	require.NoError(t, err)

	assert.InDelta(t, 0.9, sol.Occupancy[0], 1e-12)
	assert.InDelta(t, 0.1, sol.Occupancy[1], 1e-12)
	assert.InDelta(t, 90, sol.Weighted[0][1], 1e-9)
	assert.InDelta(t, 90, sol.Weighted[1][0], 1e-9)
}

func TestSolve_BirthDeath(t *testing.T) {
	m := buildModel(t, []string{"a", "b", "c"}, map[[2]string]float64{
		{"a", "b"}: 1,
		{"b", "a"}: 2,
		{"b", "c"}: 1,
		{"c", "b"}: 4,
	})
	sol, err := Solve(context.Background(), m)
	require.NoError(t, err)

	total := 1 + 0.5 + 0.125
	assert.InDelta(t, 1/total, sol.Occupancy[0], 1e-12)
	assert.InDelta(t, 0.5/total, sol.Occupancy[1], 1e-12)
	assert.InDelta(t, 0.125/total, sol.Occupancy[2], 1e-12)
}

func TestSolve_SingleState(t *testing.T) {
	m := buildModel(t, []string{"only"}, nil)
	sol, err := Solve(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, []float64{1}, sol.Occupancy)
}

func TestSolve_TransientStatesGetZero(t *testing.T) {
	// "install" is never re-entered, so all of its mass drains to the loop.
	m := buildModel(t, []string{"install", "up", "down"}, map[[2]string]float64{
		{"install", "up"}: 10,
		{"up", "down"}:    1,
		{"down", "up"}:    1,
	})
	sol, err := Solve(context.Background(), m)
	require.NoError(t, err)
	assert.InDelta(t, 0, sol.Occupancy[0], 1e-12)
	assert.InDelta(t, 0.5, sol.Occupancy[1], 1e-12)
	assert.InDelta(t, 0.5, sol.Occupancy[2], 1e-12)
}

func TestSolve_SingularSystems(t *testing.T) {
	tests := []struct {
		name    string
		states  []string
		edges   map[[2]string]float64
		classes [][]string
	}{
		{
			name:   "isolated state",
			states: []string{"up", "down", "orphan"},
			edges: map[[2]string]float64{
				{"up", "down"}: 100,
				{"down", "up"}: 900,
			},
			classes: [][]string{{"up", "down"}, {"orphan"}},
		},
		{
			name:   "isolated state in the normalization row",
			states: []string{"orphan", "up", "down"},
			edges: map[[2]string]float64{
				{"up", "down"}: 100,
				{"down", "up"}: 900,
			},
			classes: [][]string{{"orphan"}, {"up", "down"}},
		},
		{
			name:   "two absorbing states",
			states: []string{"up", "dead1", "dead2"},
			edges: map[[2]string]float64{
				{"up", "dead1"}: 1,
				{"up", "dead2"}: 1,
			},
			classes: [][]string{{"dead1"}, {"dead2"}},
		},
		{
			name:   "edges with zero rate do not connect",
			states: []string{"a", "b"},
			edges: map[[2]string]float64{
				{"a", "b"}: 0,
				{"b", "a"}: 0,
			},
			classes: [][]string{{"a"}, {"b"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := buildModel(t, tt.states, tt.edges)
			sol, err := Solve(context.Background(), m)
			require.Error(t, err)
			assert.Nil(t, sol)

			var serr *SolverError
			require.True(t, errors.As(err, &serr))
			assert.Equal(t, tt.classes, serr.ClosedClasses)
			assert.Contains(t, err.Error(), "singular")
		})
	}
}

func TestOccupancy_InvalidInput(t *testing.T) {
	_, err := Occupancy(context.Background(), nil)
	var serr *SolverError
	require.ErrorAs(t, err, &serr)
	assert.Contains(t, serr.Reason, "no states")

	_, err = Occupancy(context.Background(), [][]float64{{0, 1}, {1}})
	require.ErrorAs(t, err, &serr)
	assert.Contains(t, serr.Reason, "not square")

	_, err = Occupancy(context.Background(), [][]float64{{0, 0}, {0, 0}})
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, [][]string{{"0"}, {"1"}}, serr.ClosedClasses)
}

func TestWeight(t *testing.T) {
	rates := [][]float64{{0, 100}, {900, 0}}
	weighted := Weight(rates, []float64{0.9, 0.1})

	assert.Equal(t, [][]float64{{0, 90}, {90, 0}}, weighted)
	assert.Equal(t, [][]float64{{0, 100}, {900, 0}}, rates, "the rate matrix is not modified")
	sol := &model.Solution{Occupancy: []float64{0.9, 0.1}, Weighted: weighted}
	assert.Equal(t, 90.0, sol.Inflow(0))
	assert.Equal(t, 90.0, sol.Inflow(1))
}

// randomChain builds an n-state chain from vals; a ring of positive rates
// keeps it irreducible.
func randomChain(n int, vals []float64) [][]float64 {
	rates := make([][]float64, n)
	for i := range rates {
		rates[i] = make([]float64, n)
		for j := range rates[i] {
			if i != j {
				rates[i][j] = vals[i*n+j]
			}
		}
		next := (i + 1) % n
		rates[i][next] = math.Max(rates[i][next], 1)
	}
	return rates
}

func TestSteadyStateProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	const maxStates = 8
	chains := []gopter.Gen{
		gen.IntRange(2, maxStates),
		gen.SliceOfN(maxStates*maxStates, gen.Float64Range(0, 1e6)),
	}

	properties.Property("occupancy is a probability distribution", prop.ForAll(
		func(n int, vals []float64) bool {
			occ, err := Occupancy(context.Background(), randomChain(n, vals))
			if err != nil {
				return false
			}
			var sum float64
			for _, o := range occ {
				if o < -Tolerance {
					return false
				}
				sum += o
			}
			return math.Abs(sum-1) <= Tolerance
		},
		chains...,
	))

	properties.Property("flow out of a state is occupancy times outgoing rate", prop.ForAll(
		func(n int, vals []float64) bool {
			rates := randomChain(n, vals)
			occ, err := Occupancy(context.Background(), rates)
			if err != nil {
				return false
			}
			weighted := Weight(rates, occ)
			for i := range rates {
				var out, flow float64
				for j := range rates[i] {
					out += rates[i][j]
					flow += weighted[i][j]
				}
				if math.Abs(flow-occ[i]*out) > 1e-9*math.Max(1, flow) {
					return false
				}
			}
			return true
		},
		chains...,
	))

	properties.Property("steady state balances every state", prop.ForAll(
		func(n int, vals []float64) bool {
			rates := randomChain(n, vals)
			occ, err := Occupancy(context.Background(), rates)
			if err != nil {
				return false
			}
			sol := &model.Solution{Occupancy: occ, Weighted: Weight(rates, occ)}
			for i := range rates {
				in, out := sol.Inflow(i), sol.Outflow(i)
				if math.Abs(in-out) > 1e-6*math.Max(1, out) {
					return false
				}
			}
			return true
		},
		chains...,
	))

	properties.TestingRun(t)
}
