package cli

import (
	"errors"

	"github.com/vk/markovavail/internal/builder"
	"github.com/vk/markovavail/internal/config"
	"github.com/vk/markovavail/internal/rates"
	"github.com/vk/markovavail/internal/ratesheet"
	"github.com/vk/markovavail/internal/solver"
)

// Process exit codes.
const (
	ExitOK       = 0
	ExitInternal = 1
	ExitUsage    = 2
	ExitParse    = 3
	ExitModel    = 4
	ExitSolver   = 5
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// ExitCode maps an error returned by a run to the process exit code.
func ExitCode(err error) int {
	var (
		exitErr    *ExitError
		parseErr   *config.ParseError
		sheetErr   *ratesheet.SheetError
		problems   *builder.Problems
		resolution *rates.ResolutionError
		solverErr  *solver.SolverError
	)
	switch {
	case err == nil:
		return ExitOK
	case errors.As(err, &exitErr):
		return exitErr.Code
	case errors.As(err, &parseErr), errors.As(err, &sheetErr):
		return ExitParse
	case errors.As(err, &problems), errors.As(err, &resolution):
		return ExitModel
	case errors.As(err, &solverErr):
		return ExitSolver
	default:
		return ExitInternal
	}
}
