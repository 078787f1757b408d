package model

// State is one system configuration of the Markov model.
type State struct {
	// ID is the stable index of the state in the rate matrix, assigned in
	// first-seen order.
	ID int
	// Name is the unique state name from the model description.
	Name string
	// Class is the availability bucket the state is reported under. Empty
	// when the state is not annotated.
	Class string
	// Performance is the fraction of nominal throughput, when annotated.
	Performance *float64
	// Capacity is the fraction of nominal capacity, when annotated.
	Capacity *float64
}

// HasClass reports whether the state carries an availability class.
func (s State) HasClass() bool {
	return s.Class != ""
}
