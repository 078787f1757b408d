package solver

import (
	"fmt"
	"strings"
)

// SolverError reports a balance-equation system without a unique, valid
// solution. It is always fatal.
type SolverError struct {
	Reason string
	// ClosedClasses lists the state names of every closed communicating
	// class when there is more than one.
	ClosedClasses [][]string
	Err           error

	closedIDs [][]int
}

// Error implements the error interface for SolverError.
func (e *SolverError) Error() string {
	var sb strings.Builder
	sb.WriteString("cannot solve model: ")
	sb.WriteString(e.Reason)
	if len(e.ClosedClasses) > 0 {
		sb.WriteString(" (closed classes:")
		for _, c := range e.ClosedClasses {
			fmt.Fprintf(&sb, " {%s}", strings.Join(c, ", "))
		}
		sb.WriteString(")")
	}
	if e.Err != nil {
		fmt.Fprintf(&sb, ": %v", e.Err)
	}
	return sb.String()
}

// Unwrap returns the underlying numeric error, if any.
func (e *SolverError) Unwrap() error {
	return e.Err
}
