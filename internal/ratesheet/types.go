package ratesheet

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
)

// fileRoot decodes the top-level blocks of a rate sheet.
type fileRoot struct {
	Params []*paramsBlock `hcl:"params,block"`
	Rates  []*rateBlock   `hcl:"rate,block"`
}

type paramsBlock struct {
	Body hcl.Body `hcl:",remain"`
}

type rateBlock struct {
	Name        string         `hcl:"name,label"`
	Description string         `hcl:"description,optional"`
	Fits        hcl.Expression `hcl:"fits,optional"`
	Time        hcl.Expression `hcl:"time,optional"`
}

// Rate is one evaluated rate of a sheet.
type Rate struct {
	Name        string
	Description string
	// FITs is the exact evaluated rate; dictionary output rounds it.
	FITs float64
}

// Sheet is an evaluated rate parameter file.
type Sheet struct {
	Source string
	// Params holds the final value of every parameter, after overrides.
	Params map[string]float64
	// Rates are sorted by name.
	Rates []Rate
}

// SheetError reports a rate sheet that cannot be parsed or evaluated.
type SheetError struct {
	Path string
	Err  error
}

// Error implements the error interface for SheetError.
func (e *SheetError) Error() string {
	return fmt.Sprintf("rate sheet %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error, usually hcl.Diagnostics.
func (e *SheetError) Unwrap() error {
	return e.Err
}
