package model

import "fmt"

// Transition is a single i->j entry of the rate matrix, with the label of
// the edge that set it.
type Transition struct {
	From  int
	To    int
	Label string
	Rate  float64 // FITs
}

// Model is the state table plus the N×N transition-rate matrix.
type Model struct {
	Name string

	states      []State
	index       map[string]int
	rates       [][]float64
	transitions []Transition
	pairs       map[[2]int]int // (from, to) -> index into transitions
}

// New returns an empty model.
func New(name string) *Model {
	return &Model{
		Name:  name,
		index: make(map[string]int),
		pairs: make(map[[2]int]int),
	}
}

// AddState registers a state by name if it is not already known and returns
// its id and whether it was newly added. Annotations of an existing state
// are never changed.
func (m *Model) AddState(s State) (int, bool) {
	if id, ok := m.index[s.Name]; ok {
		return id, false
	}
	s.ID = len(m.states)
	m.states = append(m.states, s)
	m.index[s.Name] = s.ID

	for i := range m.rates {
		m.rates[i] = append(m.rates[i], 0)
	}
	m.rates = append(m.rates, make([]float64, len(m.states)))
	return s.ID, true
}

// SetRate writes the rate of from->to, overwriting any earlier value for
// the same ordered pair. Self-transitions and negative rates are rejected.
func (m *Model) SetRate(from, to int, label string, fits float64) error {
	if from < 0 || from >= len(m.states) || to < 0 || to >= len(m.states) {
		return fmt.Errorf("transition %d->%d out of range for %d states", from, to, len(m.states))
	}
	if from == to {
		return fmt.Errorf("self-transition on state %q is not representable", m.states[from].Name)
	}
	if fits < 0 {
		return fmt.Errorf("negative rate %g for %s->%s", fits, m.states[from].Name, m.states[to].Name)
	}

	m.rates[from][to] = fits
	t := Transition{From: from, To: to, Label: label, Rate: fits}
	if i, ok := m.pairs[[2]int{from, to}]; ok {
		m.transitions[i] = t
		return nil
	}
	m.pairs[[2]int{from, to}] = len(m.transitions)
	m.transitions = append(m.transitions, t)
	return nil
}

// Len returns the number of states.
func (m *Model) Len() int {
	return len(m.states)
}

// States returns the state table in id order.
func (m *Model) States() []State {
	return m.states
}

// State returns the state with the given id.
func (m *Model) State(id int) State {
	return m.states[id]
}

// Index returns the id of the named state.
func (m *Model) Index(name string) (int, bool) {
	id, ok := m.index[name]
	return id, ok
}

// Rate returns the FIT rate of the from->to transition (0 when absent).
func (m *Model) Rate(from, to int) float64 {
	return m.rates[from][to]
}

// Rates returns the rate matrix. Callers must treat it as read-only.
func (m *Model) Rates() [][]float64 {
	return m.rates
}

// Transitions returns the distinct transitions in first-declared order.
func (m *Model) Transitions() []Transition {
	return m.transitions
}
