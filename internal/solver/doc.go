// Package solver computes the steady state of a Markov availability model.
//
// The balance equations of a closed CTMC state that, for every state, the
// total flow in equals the total flow out. Those N equations have rank N-1,
// so the first one is replaced by the normalization Σx = 1 and the dense
// system is solved directly with an LU factorization. The solver refuses to
// return numbers for a system that has no unique solution: a model with
// more than one closed communicating class (for example a state that
// nothing enters and nothing leaves) fails with a *SolverError that names
// the classes.
//
// Weight turns the occupancy vector into the steady-state flow matrix used
// by the reports.
package solver
