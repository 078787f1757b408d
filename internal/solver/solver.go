package solver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"

	"github.com/vk/markovavail/internal/ctxlog"
	"github.com/vk/markovavail/internal/model"
	"gonum.org/v1/gonum/mat"
)

// Tolerance bounds the normalization error and negative occupancies
// accepted from the numeric solve.
const Tolerance = 1e-9

// Equations builds the linear system A·x = b of the steady state. Row 0 is
// the normalization Σx = 1; row s ≥ 1 balances the flow into state s
// against the flow out of it.
func Equations(rates [][]float64) (*mat.Dense, *mat.VecDense) {
	n := len(rates)
	a := mat.NewDense(n, n, nil)
	b := mat.NewVecDense(n, nil)

	for d := 0; d < n; d++ {
		a.Set(0, d, 1)
	}
	b.SetVec(0, 1)

	for s := 1; s < n; s++ {
		var out float64
		for d := 0; d < n; d++ {
			if d == s {
				continue
			}
			out += rates[s][d]
			a.Set(s, d, rates[d][s])
		}
		a.Set(s, s, -out)
	}
	return a, b
}

// Occupancy solves the balance equations of an N×N rate matrix and returns
// the stationary distribution, indexed like the matrix.
func Occupancy(ctx context.Context, rates [][]float64) ([]float64, error) {
	logger := ctxlog.FromContext(ctx)
	n := len(rates)
	if n == 0 {
		return nil, &SolverError{Reason: "model has no states"}
	}
	for i, row := range rates {
		if len(row) != n {
			return nil, &SolverError{Reason: fmt.Sprintf("rate matrix is not square: row %d has %d entries, want %d", i, len(row), n)}
		}
	}

	if classes := closedClasses(rates); len(classes) != 1 {
		return nil, &SolverError{Reason: fmt.Sprintf("balance equations are singular: %d closed classes, want exactly 1", len(classes)), ClosedClasses: idNames(classes), closedIDs: classes}
	}

	a, b := Equations(rates)
	if logger.Enabled(ctx, ctxlog.LevelTrace) {
		logger.Log(ctx, ctxlog.LevelTrace, "Balance equations.", "a", fmt.Sprintf("\n%v", mat.Formatted(a, mat.Squeeze())), "b", fmt.Sprintf("\n%v", mat.Formatted(b, mat.Squeeze())))
	}

	var lu mat.LU
	lu.Factorize(a)
	cond := lu.Cond()
	logger.Debug("Balance equations factorized.", "states", n, "condition", cond)

	x := mat.NewVecDense(n, nil)
	if err := lu.SolveVecTo(x, false, b); err != nil {
		return nil, &SolverError{Reason: "balance equations are singular or ill-conditioned", Err: err}
	}

	occupancy := make([]float64, n)
	var sum float64
	for i := range occupancy {
		v := x.AtVec(i)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, &SolverError{Reason: fmt.Sprintf("occupancy of state %d is not a number (%v)", i, v)}
		}
		if v < -Tolerance {
			return nil, &SolverError{Reason: fmt.Sprintf("occupancy of state %d is negative (%g)", i, v)}
		}
		if v < 0 {
			v = 0
		}
		occupancy[i] = v
		sum += v
	}
	if math.Abs(sum-1) > Tolerance {
		return nil, &SolverError{Reason: fmt.Sprintf("occupancies sum to %.12f, not 1", sum)}
	}

	if logger.Enabled(ctx, slog.LevelDebug) {
		logger.Debug("Balance equations solved.", "occupancy", occupancy)
	}
	return occupancy, nil
}

// Solve computes the steady state of m: the stationary occupancy and the
// occupancy-weighted flow matrix.
func Solve(ctx context.Context, m *model.Model) (*model.Solution, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Solving model.", "model", m.Name, "states", m.Len())

	occupancy, err := Occupancy(ctx, m.Rates())
	if err != nil {
		var serr *SolverError
		if errors.As(err, &serr) && len(serr.closedIDs) > 0 {
			serr.ClosedClasses = stateNames(m, serr.closedIDs)
		}
		return nil, err
	}

	return &model.Solution{
		Occupancy: occupancy,
		Weighted:  Weight(m.Rates(), occupancy),
	}, nil
}

func stateNames(m *model.Model, classes [][]int) [][]string {
	out := make([][]string, len(classes))
	for i, c := range classes {
		for _, id := range c {
			out[i] = append(out[i], m.State(id).Name)
		}
	}
	return out
}

func idNames(classes [][]int) [][]string {
	out := make([][]string, len(classes))
	for i, c := range classes {
		for _, id := range c {
			out[i] = append(out[i], strconv.Itoa(id))
		}
	}
	return out
}
