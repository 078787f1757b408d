// Package metrics exposes a solved model as Prometheus gauges and writes
// them in the text exposition format, for the node_exporter textfile
// collector.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/vk/markovavail/internal/report"
)

// Registry holds the gauges of one solve.
type Registry struct {
	States         prometheus.Gauge
	Transitions    prometheus.Gauge
	SolveDuration  prometheus.Gauge
	StateOccupancy *prometheus.GaugeVec
	ClassOccupancy *prometheus.GaugeVec
	Performance    prometheus.Gauge
	Capacity       prometheus.Gauge

	registry *prometheus.Registry
}

// NewRegistry creates the gauges on a private registry.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Registry{
		registry: reg,
		States: factory.NewGauge(prometheus.GaugeOpts{
			Name: "markovavail_states",
			Help: "Number of states in the model",
		}),
		Transitions: factory.NewGauge(prometheus.GaugeOpts{
			Name: "markovavail_transitions",
			Help: "Number of distinct transitions in the model",
		}),
		SolveDuration: factory.NewGauge(prometheus.GaugeOpts{
			Name: "markovavail_solve_duration_seconds",
			Help: "Time spent solving the balance equations",
		}),
		StateOccupancy: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "markovavail_state_occupancy",
			Help: "Steady-state probability of each state",
		}, []string{"state", "class"}),
		ClassOccupancy: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "markovavail_class_occupancy",
			Help: "Steady-state probability of each availability class",
		}, []string{"class"}),
		Performance: factory.NewGauge(prometheus.GaugeOpts{
			Name: "markovavail_performance",
			Help: "Occupancy-weighted fraction of nominal performance",
		}),
		Capacity: factory.NewGauge(prometheus.GaugeOpts{
			Name: "markovavail_capacity",
			Help: "Occupancy-weighted fraction of nominal capacity",
		}),
	}
}

// RecordSolve sets every gauge from a solve.
func (r *Registry) RecordSolve(transitions int, s *report.Summary, took time.Duration) {
	r.States.Set(float64(len(s.States)))
	r.Transitions.Set(float64(transitions))
	r.SolveDuration.Set(took.Seconds())
	for _, st := range s.States {
		r.StateOccupancy.WithLabelValues(st.Name, st.Class).Set(st.Occupancy)
	}
	for _, c := range s.Classes {
		r.ClassOccupancy.WithLabelValues(c.Name).Set(c.Occupancy)
	}
	r.Performance.Set(s.StateTotals.Performance)
	r.Capacity.Set(s.StateTotals.Capacity)
}

// WriteTextfile writes the gauges to path. The file is written to a
// temporary name and renamed, so collectors never see a partial file.
func (r *Registry) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics file %q: %w", path, err)
	}
	return nil
}
