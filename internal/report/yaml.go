package report

import (
	"fmt"
	"io"

	"github.com/vk/markovavail/internal/model"
	"gopkg.in/yaml.v3"
)

type yamlState struct {
	ID          int      `yaml:"id"`
	Name        string   `yaml:"name"`
	Class       string   `yaml:"class,omitempty"`
	Performance *float64 `yaml:"performance,omitempty"`
	Capacity    *float64 `yaml:"capacity,omitempty"`
	Occupancy   float64  `yaml:"occupancy"`
	// Flow is the steady-state rate of leaving the state, in FITs.
	Flow        float64  `yaml:"flow"`
}

type yamlTransition struct {
	From  string  `yaml:"from"`
	To    string  `yaml:"to"`
	Label string  `yaml:"label,omitempty"`
	Rate  float64 `yaml:"rate"`
	Flow  float64 `yaml:"flow"`
}

type yamlClass struct {
	Name        string   `yaml:"name"`
	Occupancy   float64  `yaml:"occupancy"`
	Performance *float64 `yaml:"performance,omitempty"`
	Capacity    *float64 `yaml:"capacity,omitempty"`
}

type yamlTotals struct {
	Occupancy   float64 `yaml:"occupancy"`
	Performance float64 `yaml:"performance"`
	Capacity    float64 `yaml:"capacity"`
}

// Document is the machine-readable form of a solved model.
type Document struct {
	Model       string           `yaml:"model"`
	States      []yamlState      `yaml:"states"`
	Transitions []yamlTransition `yaml:"transitions"`
	Classes     []yamlClass      `yaml:"classes"`
	Totals      yamlTotals       `yaml:"totals"`
	ClassTotals yamlTotals       `yaml:"class_totals"`
}

// NewDocument assembles the YAML document of a solved model. States keep
// their id order.
func NewDocument(m *model.Model, sol *model.Solution, s *Summary) *Document {
	doc := &Document{Model: m.Name}
	for _, st := range m.States() {
		doc.States = append(doc.States, yamlState{
			ID:          st.ID,
			Name:        st.Name,
			Class:       st.Class,
			Performance: st.Performance,
			Capacity:    st.Capacity,
			Occupancy:   sol.Occupancy[st.ID],
			Flow:        sol.Outflow(st.ID),
		})
	}
	for _, tr := range m.Transitions() {
		doc.Transitions = append(doc.Transitions, yamlTransition{
			From:  m.State(tr.From).Name,
			To:    m.State(tr.To).Name,
			Label: tr.Label,
			Rate:  tr.Rate,
			Flow:  sol.Weighted[tr.From][tr.To],
		})
	}
	for _, c := range s.Classes {
		doc.Classes = append(doc.Classes, yamlClass(c))
	}
	doc.Totals = yamlTotals(s.StateTotals)
	doc.ClassTotals = yamlTotals(s.ClassTotals)
	return doc
}

// WriteYAML encodes the document of a solved model to w.
func WriteYAML(w io.Writer, m *model.Model, sol *model.Solution, s *Summary) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(NewDocument(m, sol, s)); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return enc.Close()
}
