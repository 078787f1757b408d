package report

import (
	"cmp"
	"slices"

	"github.com/vk/markovavail/internal/model"
)

// StateRow is the steady-state result for one state.
type StateRow struct {
	ID          int
	Name        string
	Class       string
	Occupancy   float64
	Performance *float64
	Capacity    *float64
}

// ClassRow aggregates the states of one availability class. Performance
// and Capacity are occupancy-weighted means within the class, nil when no
// member carries the annotation.
type ClassRow struct {
	Name        string
	Occupancy   float64
	Performance *float64
	Capacity    *float64
}

// Totals are the occupancy and the occupancy-weighted performance and
// capacity over a set of rows. Unannotated states contribute nothing.
type Totals struct {
	Occupancy   float64
	Performance float64
	Capacity    float64
}

// Flow is one source feeding a target state.
type Flow struct {
	Source   int
	Fraction float64 // share of the target's total inflow
	FITs     float64
}

// Tributary lists the sources of the flow into one state.
type Tributary struct {
	Target  int
	Sources []Flow
}

// Summary is everything the reports show, computed once per solution.
type Summary struct {
	States      []StateRow // occupancy descending
	StateTotals Totals
	Classes     []ClassRow // occupancy descending, zero-occupancy classes dropped
	ClassTotals Totals
	Tributaries []Tributary
}

// Summarize computes the report rows of a solved model.
func Summarize(m *model.Model, sol *model.Solution) *Summary {
	s := &Summary{}
	for _, st := range m.States() {
		s.States = append(s.States, StateRow{
			ID:          st.ID,
			Name:        st.Name,
			Class:       st.Class,
			Occupancy:   sol.Occupancy[st.ID],
			Performance: st.Performance,
			Capacity:    st.Capacity,
		})
	}
	slices.SortStableFunc(s.States, func(a, b StateRow) int {
		return cmp.Compare(b.Occupancy, a.Occupancy)
	})

	for _, r := range s.States {
		s.StateTotals.add(r)
	}
	s.summarizeClasses()
	s.summarizeTributaries(sol)
	return s
}

func (t *Totals) add(r StateRow) {
	t.Occupancy += r.Occupancy
	if r.Performance != nil {
		t.Performance += r.Occupancy * *r.Performance
	}
	if r.Capacity != nil {
		t.Capacity += r.Occupancy * *r.Capacity
	}
}

func (s *Summary) summarizeClasses() {
	type acc struct {
		Totals
		hasPerf, hasCap bool
	}
	byClass := make(map[string]*acc)
	var order []string
	for _, r := range s.States {
		if r.Class == "" {
			continue
		}
		a, ok := byClass[r.Class]
		if !ok {
			a = &acc{}
			byClass[r.Class] = a
			order = append(order, r.Class)
		}
		a.add(r)
		a.hasPerf = a.hasPerf || r.Performance != nil
		a.hasCap = a.hasCap || r.Capacity != nil
	}

	for _, name := range order {
		a := byClass[name]
		if a.Occupancy == 0 {
			continue
		}
		row := ClassRow{Name: name, Occupancy: a.Occupancy}
		if a.hasPerf {
			p := a.Performance / a.Occupancy
			row.Performance = &p
		}
		if a.hasCap {
			c := a.Capacity / a.Occupancy
			row.Capacity = &c
		}
		s.Classes = append(s.Classes, row)
		s.ClassTotals.Occupancy += a.Occupancy
		s.ClassTotals.Performance += a.Performance
		s.ClassTotals.Capacity += a.Capacity
	}
	slices.SortStableFunc(s.Classes, func(a, b ClassRow) int {
		return cmp.Compare(b.Occupancy, a.Occupancy)
	})
}

func (s *Summary) summarizeTributaries(sol *model.Solution) {
	for _, target := range s.States {
		inflow := sol.Inflow(target.ID)
		if inflow == 0 {
			continue
		}
		t := Tributary{Target: target.ID}
		for _, src := range s.States {
			fits := sol.Weighted[src.ID][target.ID]
			if fits == 0 {
				continue
			}
			t.Sources = append(t.Sources, Flow{Source: src.ID, Fraction: fits / inflow, FITs: fits})
		}
		s.Tributaries = append(s.Tributaries, t)
	}
}
