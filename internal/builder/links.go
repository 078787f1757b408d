package builder

import (
	"context"
	"errors"

	"github.com/vk/markovavail/internal/config"
	"github.com/vk/markovavail/internal/ctxlog"
	"github.com/vk/markovavail/internal/model"
	"github.com/vk/markovavail/internal/rates"
)

// linkTransitions resolves every edge rate and writes it into the matrix in
// declaration order. It returns how many edges could not be resolved.
func linkTransitions(ctx context.Context, edges []*config.Edge, m *model.Model, r *rates.Resolver, problems *Problems) int {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Starting transition linking pass.")

	unresolved := 0
	for _, e := range edges {
		from, _ := m.Index(e.Source)
		to, _ := m.Index(e.Dest)
		edgeLogger := logger.With("source", e.Source, "dest", e.Dest, "label", e.Label())

		res, err := r.Resolve(e)
		if err != nil {
			unresolved++
			problems.add(err)
			// The pair keeps whatever it had; a later edge may still set it.
			continue
		}

		if from == to {
			edgeLogger.Warn("Self-transition has no effect on the steady state and is ignored.", "fits", res.FITs)
			continue
		}
		if prev := m.Rate(from, to); prev != 0 {
			edgeLogger.Warn("Parallel transition overwrites an earlier rate.", "previous_fits", prev, "fits", res.FITs)
		}
		if err := m.SetRate(from, to, e.Label(), res.FITs); err != nil {
			problems.add(&rates.ResolutionError{Label: e.Label(), Source: e.Source, Dest: e.Dest, Reason: err.Error()})
			continue
		}
		edgeLogger.Debug("Transition linked.", "fits", res.FITs, "rate_source", res.Source.String())
	}
	logger.Debug("Finished transition linking pass.")
	return unresolved
}

// withoutResolutionErrors applies the zero-rate policy: unresolved edges are
// logged and dropped from the problem list, everything else stays fatal.
func withoutResolutionErrors(ctx context.Context, problems *Problems) *Problems {
	logger := ctxlog.FromContext(ctx)
	kept := &Problems{}
	for _, err := range problems.Errs {
		var rerr *rates.ResolutionError
		if errors.As(err, &rerr) {
			logger.Warn("Transition has no usable rate, treating it as 0 FITs.", "label", rerr.Label, "source", rerr.Source, "dest", rerr.Dest, "reason", rerr.Reason)
			continue
		}
		kept.add(err)
	}
	return kept
}
