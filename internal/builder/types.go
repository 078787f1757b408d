package builder

import (
	"errors"
	"fmt"
	"strings"
)

// MissingRatePolicy decides what an unresolvable edge rate does to the build.
type MissingRatePolicy string

const (
	// MissingRateFail rejects the model when any edge rate is unresolved.
	MissingRateFail MissingRatePolicy = "fail"
	// MissingRateZero keeps the edge at rate 0 and only warns about it.
	MissingRateZero MissingRatePolicy = "zero"
)

// ParseMissingRatePolicy validates a policy name.
func ParseMissingRatePolicy(s string) (MissingRatePolicy, error) {
	switch p := MissingRatePolicy(strings.ToLower(s)); p {
	case MissingRateFail, MissingRateZero:
		return p, nil
	case "":
		return MissingRateFail, nil
	}
	return "", fmt.Errorf("invalid missing-rate policy %q: must be 'fail' or 'zero'", s)
}

// Options tunes model construction.
type Options struct {
	MissingRate MissingRatePolicy
}

// Problems is every issue found while building a model.
type Problems struct {
	Errs []error
}

// Error implements the error interface for Problems.
func (p *Problems) Error() string {
	if len(p.Errs) == 1 {
		return p.Errs[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d problems in model:", len(p.Errs))
	for _, err := range p.Errs {
		sb.WriteString("\n  ")
		sb.WriteString(err.Error())
	}
	return sb.String()
}

// Unwrap exposes the individual problems to errors.Is and errors.As.
func (p *Problems) Unwrap() []error {
	return p.Errs
}

func (p *Problems) add(err error) {
	p.Errs = append(p.Errs, err)
}

func (p *Problems) empty() bool {
	return len(p.Errs) == 0
}

// AttributeError reports a malformed state annotation.
type AttributeError struct {
	State string
	Key   string
	Value string
	Err   error
}

// Error implements the error interface for AttributeError.
func (e *AttributeError) Error() string {
	return fmt.Sprintf("state %s: invalid %s %q: %v", e.State, e.Key, e.Value, e.Err)
}

// Unwrap returns the underlying cause.
func (e *AttributeError) Unwrap() error {
	return e.Err
}

var errOutOfRange = errors.New("must be a fraction between 0 and 1")
