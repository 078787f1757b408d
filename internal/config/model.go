package config

// Graph is the format-agnostic representation of a Markov availability
// model description: a named set of node and edge records.
type Graph struct {
	Name  string
	Nodes []*Node
	Edges []*Edge
}

// Node is a declared state. Its name and attribute values are already
// dequoted by the loader.
type Node struct {
	Name  string
	Attrs Attributes
}

// Edge is a directed transition between two named states.
type Edge struct {
	Source string
	Dest   string
	Attrs  Attributes
}

// Key names an attribute this tool understands.
type Key string

const (
	KeyFits        Key = "fits"
	KeyRate        Key = "rate"
	KeyTime        Key = "time"
	KeyLabel       Key = "label"
	KeyState       Key = "state"
	KeyPerformance Key = "performance"
	KeyCapacity    Key = "capacity"
)

// Attributes is the attribute list of a node or edge. Unknown keys are kept
// (a DOT file usually carries layout attributes too) but are only reachable
// through Raw.
type Attributes struct {
	values map[string]string
}

// NewAttributes copies m into a new attribute set.
func NewAttributes(m map[string]string) Attributes {
	values := make(map[string]string, len(m))
	for k, v := range m {
		values[k] = v
	}
	return Attributes{values: values}
}

// Get returns the value stored for a known key and whether it was present.
func (a Attributes) Get(k Key) (string, bool) {
	v, ok := a.values[string(k)]
	return v, ok
}

// Raw returns the value of an arbitrary attribute.
func (a Attributes) Raw(name string) (string, bool) {
	v, ok := a.values[name]
	return v, ok
}

// Len reports the number of attributes.
func (a Attributes) Len() int {
	return len(a.values)
}

func (a Attributes) Label() (string, bool)       { return a.Get(KeyLabel) }
func (a Attributes) State() (string, bool)       { return a.Get(KeyState) }
func (a Attributes) Performance() (string, bool) { return a.Get(KeyPerformance) }
func (a Attributes) Capacity() (string, bool)    { return a.Get(KeyCapacity) }

// RateKind identifies where an edge's rate comes from.
type RateKind int

const (
	// RateNone means the edge carries no rate-bearing attribute and no label.
	RateNone RateKind = iota
	// RateFits is an explicit `fits` integer literal.
	RateFits
	// RateAlias is an explicit `rate` integer literal (alias of fits).
	RateAlias
	// RateTime is an explicit `time` mean-time-to-transition.
	RateTime
	// RateLabel defers to the rate dictionary, keyed by the edge label.
	RateLabel
)

func (k RateKind) String() string {
	switch k {
	case RateFits:
		return "fits"
	case RateAlias:
		return "rate"
	case RateTime:
		return "time"
	case RateLabel:
		return "dictionary"
	default:
		return "none"
	}
}

// RateSpec is the single rate source selected for an edge.
type RateSpec struct {
	Kind  RateKind
	Value string // the literal, time string, or dictionary label
}

// RateSpec applies the rate precedence rules: fits, then rate, then time,
// then a dictionary lookup by label.
func (e *Edge) RateSpec() RateSpec {
	if v, ok := e.Attrs.Get(KeyFits); ok {
		return RateSpec{Kind: RateFits, Value: v}
	}
	if v, ok := e.Attrs.Get(KeyRate); ok {
		return RateSpec{Kind: RateAlias, Value: v}
	}
	if v, ok := e.Attrs.Get(KeyTime); ok {
		return RateSpec{Kind: RateTime, Value: v}
	}
	if v, ok := e.Attrs.Label(); ok {
		return RateSpec{Kind: RateLabel, Value: v}
	}
	return RateSpec{Kind: RateNone}
}

// Label returns the edge label, or the empty string.
func (e *Edge) Label() string {
	l, _ := e.Attrs.Label()
	return l
}
