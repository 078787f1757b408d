package builder

import (
	"context"

	"github.com/vk/markovavail/internal/config"
	"github.com/vk/markovavail/internal/ctxlog"
	"github.com/vk/markovavail/internal/model"
)

// createImplicitStates registers edge endpoints that were never declared.
func createImplicitStates(ctx context.Context, edges []*config.Edge, m *model.Model) {
	logger := ctxlog.FromContext(ctx)

	for _, e := range edges {
		for _, name := range []string{e.Source, e.Dest} {
			if id, added := m.AddState(model.State{Name: name}); added {
				logger.Debug("Implicit state discovered from transition.", "id", id, "state", name, "source", e.Source, "dest", e.Dest)
			}
		}
	}
}
