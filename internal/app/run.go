package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vk/markovavail/internal/builder"
	"github.com/vk/markovavail/internal/ctxlog"
	"github.com/vk/markovavail/internal/dictionary"
	"github.com/vk/markovavail/internal/metrics"
	"github.com/vk/markovavail/internal/model"
	"github.com/vk/markovavail/internal/rates"
	"github.com/vk/markovavail/internal/report"
	"github.com/vk/markovavail/internal/solver"
)

// Run loads, builds and solves the model, then writes the reports and,
// when configured, the metrics file. Errors keep their kind so callers can
// classify them with errors.As.
func (a *App) Run(ctx context.Context) error {
	logger := a.logger.With("run_id", uuid.NewString())
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("App.Run method started.", "model", a.config.ModelPath)

	m, err := a.buildModel(ctx)
	if err != nil {
		return err
	}
	if a.config.Debug >= 1 {
		logModel(ctx, m)
	}

	start := time.Now()
	sol, err := solver.Solve(ctx, m)
	if err != nil {
		return fmt.Errorf("failed to solve model %s: %w", a.config.ModelPath, err)
	}
	took := time.Since(start)
	logger.Info("Model solved.", "states", m.Len(), "duration", took)

	summary := report.Summarize(m, sol)
	if err := a.writeReport(m, sol, summary); err != nil {
		return err
	}

	if a.config.MetricsFile != "" {
		reg := metrics.NewRegistry()
		reg.RecordSolve(len(m.Transitions()), summary, took)
		if err := reg.WriteTextfile(a.config.MetricsFile); err != nil {
			return err
		}
		logger.Debug("Metrics file written.", "path", a.config.MetricsFile)
	}

	logger.Debug("App.Run method finished.")
	return nil
}

func (a *App) buildModel(ctx context.Context) (*model.Model, error) {
	g, err := a.loader.Load(ctx, a.config.ModelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load model: %w", err)
	}

	var dict dictionary.Dictionary
	if a.config.DictionaryPath != "" {
		dict, err = dictionary.Load(ctx, a.config.DictionaryPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load dictionary: %w", err)
		}
	}

	policy, err := builder.ParseMissingRatePolicy(a.config.MissingRate)
	if err != nil {
		return nil, err
	}
	m, err := builder.Build(ctx, g, rates.NewResolver(dict), builder.Options{MissingRate: policy})
	if err != nil {
		return nil, fmt.Errorf("failed to build model %s: %w", a.config.ModelPath, err)
	}
	return m, nil
}

func (a *App) writeReport(m *model.Model, sol *model.Solution, s *report.Summary) error {
	var err error
	switch a.config.Format {
	case FormatYAML:
		err = report.WriteYAML(a.outW, m, sol, s)
	default:
		err = report.WriteText(a.outW, m, s, report.Options{
			Format: report.NewFormat(m, a.config.HiRes, a.config.LoRes),
			Styled: a.styled,
		})
	}
	if err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// logModel logs the parsed states and transitions.
func logModel(ctx context.Context, m *model.Model) {
	logger := ctxlog.FromContext(ctx)
	for _, s := range m.States() {
		logger.Debug("Parsed state.", "id", s.ID, "state", s.Name, "class", s.Class)
	}
	for _, t := range m.Transitions() {
		logger.Debug("Parsed transition.", "source", m.State(t.From).Name, "dest", m.State(t.To).Name, "label", t.Label, "fits", t.Rate)
	}
	if logger.Enabled(ctx, ctxlog.LevelTrace) {
		logger.Log(ctx, ctxlog.LevelTrace, "Rate matrix.", "rates", m.Rates())
	}
}
