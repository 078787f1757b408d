// Package rates resolves the transition rate of a model edge into FITs
// (failures per 10^9 device-hours) from its attributes or from a rate
// dictionary.
package rates

import (
	"fmt"

	"github.com/vk/markovavail/internal/config"
	"github.com/vk/markovavail/internal/dictionary"
)

// ResolutionError reports an edge whose rate could not be determined.
type ResolutionError struct {
	Label  string
	Source string
	Dest   string
	Reason string
}

// Error implements the error interface for ResolutionError.
func (e *ResolutionError) Error() string {
	label := e.Label
	if label == "" {
		label = "(unlabeled)"
	}
	return fmt.Sprintf("transition %s: %s->%s: %s", label, e.Source, e.Dest, e.Reason)
}

// Resolution is a successfully resolved rate and where it came from.
type Resolution struct {
	FITs   float64
	Source config.RateKind
}

// Resolver turns edge attributes into FIT rates. The zero value resolves
// without a dictionary.
type Resolver struct {
	dict dictionary.Dictionary
}

// NewResolver creates a resolver backed by an optional dictionary.
func NewResolver(dict dictionary.Dictionary) *Resolver {
	return &Resolver{dict: dict}
}

// Resolve determines the rate of e. Explicit attributes always win over the
// dictionary; the dictionary is consulted only by label.
func (r *Resolver) Resolve(e *config.Edge) (Resolution, error) {
	spec := e.RateSpec()
	fail := func(reason string) (Resolution, error) {
		return Resolution{}, &ResolutionError{Label: e.Label(), Source: e.Source, Dest: e.Dest, Reason: reason}
	}

	switch spec.Kind {
	case config.RateFits, config.RateAlias:
		v, err := ParseFits(spec.Value)
		if err != nil {
			return fail(err.Error())
		}
		return Resolution{FITs: v, Source: spec.Kind}, nil

	case config.RateTime:
		v, err := FromTime(spec.Value)
		if err != nil {
			return fail(err.Error())
		}
		return Resolution{FITs: v, Source: spec.Kind}, nil

	case config.RateLabel:
		raw, ok := r.dict.Lookup(spec.Value)
		if !ok {
			return fail("no transition rate (label not in dictionary)")
		}
		v, err := parseDictionaryValue(raw)
		if err != nil {
			return fail(fmt.Sprintf("bad value in dictionary (%s=%s): %v", spec.Value, raw, err))
		}
		return Resolution{FITs: v, Source: spec.Kind}, nil
	}
	return fail("no transition rate (no fits, rate, time or label)")
}

// parseDictionaryValue reads a value whose trailing non-digit marks it as a
// time, and otherwise as an integer FIT literal.
func parseDictionaryValue(raw string) (float64, error) {
	if raw != "" && !isDigit(raw[len(raw)-1]) {
		return FromTime(raw)
	}
	return ParseFits(raw)
}
