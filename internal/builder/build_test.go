package builder

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/markovavail/internal/config"
	"github.com/vk/markovavail/internal/dictionary"
	"github.com/vk/markovavail/internal/dot_adapter"
	"github.com/vk/markovavail/internal/model"
	"github.com/vk/markovavail/internal/rates"
)

func load(t *testing.T, src string) *config.Graph {
	t.Helper()
	g, err := dot_adapter.NewLoader().LoadBytes(context.Background(), t.Name()+".dot", []byte(src))
	require.NoError(t, err)
	return g
}

func names(m *model.Model) []string {
	var out []string
	for _, s := range m.States() {
		out = append(out, s.Name)
	}
	return out
}

func TestBuild_StateDiscoveryOrder(t *testing.T) {
	g := load(t, `
digraph m {
	b [state=degraded];
	a [state=up, performance="1.0", capacity="0.5"];
	c -> a [fits=1];
	a -> d [fits=2];
	d -> b [fits=3];
	b -> c [fits=4];
}`)
	m, err := Build(context.Background(), g, nil, Options{})
	require.NoError(t, err)

	if diff := cmp.Diff([]string{"b", "a", "c", "d"}, names(m)); diff != "" {
		t.Errorf("state order mismatch (-want +got):\n%s", diff)
	}

	a := m.State(1)
	assert.Equal(t, 1, a.ID)
	assert.Equal(t, "up", a.Class)
	require.NotNil(t, a.Performance)
	assert.Equal(t, 1.0, *a.Performance)
	require.NotNil(t, a.Capacity)
	assert.Equal(t, 0.5, *a.Capacity)

	c := m.State(2)
	assert.False(t, c.HasClass())
	assert.Nil(t, c.Performance)
	assert.Nil(t, c.Capacity)

	want := [][]float64{
		{0, 0, 4, 0},
		{0, 0, 0, 2},
		{0, 1, 0, 0},
		{3, 0, 0, 0},
	}
	if diff := cmp.Diff(want, m.Rates()); diff != "" {
		t.Errorf("rate matrix mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_DuplicateEdgeOverwrites(t *testing.T) {
	g := load(t, `digraph m { a -> b [label=first, fits=100]; b -> a [fits=1]; a -> b [label=second, fits=300]; }`)
	m, err := Build(context.Background(), g, nil, Options{})
	require.NoError(t, err)

	assert.Equal(t, 300.0, m.Rate(0, 1))
	require.Len(t, m.Transitions(), 2)
	assert.Equal(t, "second", m.Transitions()[0].Label)
}

func TestBuild_DuplicateStateKeepsFirstDeclaration(t *testing.T) {
	g := load(t, `digraph m { a [state=up]; a [state=down, performance="fast"]; a -> b [fits=1]; b -> a [fits=1]; }`)
	m, err := Build(context.Background(), g, nil, Options{})
	require.NoError(t, err, "annotations of an ignored declaration are not validated")

	require.Equal(t, []string{"a", "b"}, names(m))
	assert.Equal(t, "up", m.State(0).Class)
	assert.Nil(t, m.State(0).Performance)
}

func TestBuild_DictionaryAndExplicitRates(t *testing.T) {
	g := load(t, `
digraph m {
	up -> down [label=fail, fits=100];
	down -> up [label=repair];
	up -> maint [label=service];
	maint -> up [time="1d"];
}`)
	r := rates.NewResolver(dictionary.Dictionary{"fail": "999", "repair": "4h", "service": "2000"})
	m, err := Build(context.Background(), g, r, Options{})
	require.NoError(t, err)

	up, _ := m.Index("up")
	down, _ := m.Index("down")
	maint, _ := m.Index("maint")
	assert.Equal(t, 100.0, m.Rate(up, down), "explicit fits beats the dictionary")
	assert.Equal(t, 2.5e8, m.Rate(down, up))
	assert.Equal(t, 2000.0, m.Rate(up, maint))
	assert.Equal(t, 1e9/24, m.Rate(maint, up))
}

func TestBuild_CollectsAllProblems(t *testing.T) {
	g := load(t, `
digraph m {
	a [performance="fast"];
	b [capacity="1.5"];
	a -> b [label=nothing];
	b -> a [fits="1.5"];
	b -> c [fits=3];
}`)
	_, err := Build(context.Background(), g, nil, Options{MissingRate: MissingRateFail})
	require.Error(t, err)

	var problems *Problems
	require.True(t, errors.As(err, &problems))
	assert.Len(t, problems.Errs, 4)

	var attrErr *AttributeError
	assert.True(t, errors.As(err, &attrErr))
	var resErr *rates.ResolutionError
	require.True(t, errors.As(err, &resErr))
	assert.Equal(t, "nothing", resErr.Label)

	assert.Contains(t, err.Error(), "4 problems in model")
	assert.Contains(t, err.Error(), "state b: invalid capacity")
}

func TestBuild_MissingRatePolicy(t *testing.T) {
	src := `digraph m { a -> b [label=unknown]; b -> a [fits=5]; }`

	t.Run("fail", func(t *testing.T) {
		_, err := Build(context.Background(), load(t, src), nil, Options{MissingRate: MissingRateFail})
		var resErr *rates.ResolutionError
		require.ErrorAs(t, err, &resErr)
		assert.Equal(t, "a", resErr.Source)
		assert.Equal(t, "b", resErr.Dest)
	})

	t.Run("zero", func(t *testing.T) {
		m, err := Build(context.Background(), load(t, src), nil, Options{MissingRate: MissingRateZero})
		require.NoError(t, err)
		assert.Zero(t, m.Rate(0, 1))
		assert.Equal(t, 5.0, m.Rate(1, 0))
	})

	t.Run("zero keeps attribute problems fatal", func(t *testing.T) {
		g := load(t, `digraph m { a [performance=2]; a -> b [label=unknown]; }`)
		_, err := Build(context.Background(), g, nil, Options{MissingRate: MissingRateZero})
		var attrErr *AttributeError
		require.ErrorAs(t, err, &attrErr)
		assert.ErrorIs(t, err, errOutOfRange)
	})
}

func TestBuild_IgnoresSelfTransitions(t *testing.T) {
	g := load(t, `digraph m { a -> a [fits=10]; a -> b [fits=1]; b -> a [fits=1]; }`)
	m, err := Build(context.Background(), g, nil, Options{})
	require.NoError(t, err)
	assert.Zero(t, m.Rate(0, 0))
	assert.Len(t, m.Transitions(), 2)
}

func TestParseMissingRatePolicy(t *testing.T) {
	p, err := ParseMissingRatePolicy("")
	require.NoError(t, err)
	assert.Equal(t, MissingRateFail, p)

	p, err = ParseMissingRatePolicy("ZERO")
	require.NoError(t, err)
	assert.Equal(t, MissingRateZero, p)

	_, err = ParseMissingRatePolicy("ignore")
	assert.ErrorContains(t, err, "invalid missing-rate policy")
}
