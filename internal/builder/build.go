package builder

import (
	"context"

	"github.com/vk/markovavail/internal/config"
	"github.com/vk/markovavail/internal/ctxlog"
	"github.com/vk/markovavail/internal/model"
	"github.com/vk/markovavail/internal/rates"
)

// Build constructs a complete model from a graph description. On failure
// the returned error is a *Problems listing every issue found.
func Build(ctx context.Context, g *config.Graph, r *rates.Resolver, opts Options) (*model.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: Starting model construction.", "graph", g.Name)
	if opts.MissingRate == "" {
		opts.MissingRate = MissingRateFail
	}
	if r == nil {
		r = rates.NewResolver(nil)
	}

	m := model.New(g.Name)
	problems := &Problems{}

	// First pass: declared states, with their annotations.
	createStates(ctx, g.Nodes, m, problems)
	logger.Debug("Build: State creation complete.", "state_count", m.Len())

	// Second pass: states only implied by transitions.
	createImplicitStates(ctx, g.Edges, m)
	logger.Debug("Build: Implicit state discovery complete.", "state_count", m.Len())

	// Third pass: resolve and link transition rates.
	unresolved := linkTransitions(ctx, g.Edges, m, r, problems)
	logger.Debug("Build: Transition linking complete.", "transition_count", len(m.Transitions()), "unresolved", unresolved)

	if opts.MissingRate == MissingRateZero {
		problems = withoutResolutionErrors(ctx, problems)
	}
	if !problems.empty() {
		logger.Debug("Build: Model rejected.", "problems", len(problems.Errs))
		return nil, problems
	}

	logger.Info("Build: Model construction successful.", "states", m.Len(), "transitions", len(m.Transitions()))
	return m, nil
}
