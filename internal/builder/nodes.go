package builder

import (
	"context"
	"strconv"

	"github.com/vk/markovavail/internal/config"
	"github.com/vk/markovavail/internal/ctxlog"
	"github.com/vk/markovavail/internal/model"
)

// createStates performs the first pass of model creation, registering every
// declared node as a state.
func createStates(ctx context.Context, nodes []*config.Node, m *model.Model, problems *Problems) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Starting state creation pass.")

	for _, n := range nodes {
		if _, ok := m.Index(n.Name); ok {
			logger.Warn("Duplicate state declaration found, the first one is kept.", "state", n.Name)
			continue
		}

		s := model.State{Name: n.Name}
		s.Class, _ = n.Attrs.State()
		if v, ok := n.Attrs.Performance(); ok {
			s.Performance = parseFraction(n.Name, config.KeyPerformance, v, problems)
		}
		if v, ok := n.Attrs.Capacity(); ok {
			s.Capacity = parseFraction(n.Name, config.KeyCapacity, v, problems)
		}

		id, _ := m.AddState(s)
		logger.Debug("State declared.", "id", id, "state", s.Name, "class", s.Class, "performance", fmtOptional(s.Performance), "capacity", fmtOptional(s.Capacity))
	}
	logger.Debug("Finished state creation pass.")
}

// parseFraction reads a 0..1 annotation, recording a problem when invalid.
func parseFraction(state string, key config.Key, v string, problems *Problems) *float64 {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		problems.add(&AttributeError{State: state, Key: string(key), Value: v, Err: err})
		return nil
	}
	if f < 0 || f > 1 {
		problems.add(&AttributeError{State: state, Key: string(key), Value: v, Err: errOutOfRange})
		return nil
	}
	return &f
}

func fmtOptional(f *float64) string {
	if f == nil {
		return "-"
	}
	return strconv.FormatFloat(*f, 'g', -1, 64)
}
