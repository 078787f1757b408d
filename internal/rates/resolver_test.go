package rates

import (
	"errors"
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/markovavail/internal/config"
	"github.com/vk/markovavail/internal/dictionary"
)

func edge(attrs map[string]string) *config.Edge {
	return &config.Edge{Source: "up", Dest: "down", Attrs: config.NewAttributes(attrs)}
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		in    string
		hours float64
	}{
		{"3600s", 1},
		{"90m", 1.5},
		{"2", 2},
		{"4h", 4},
		{"1d", 24},
		{"1w", 168},
		{"1y", 8766},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTime(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.hours, got)
		})
	}

	for _, bad := range []string{"", "h", "4x", "-4h", "1.5h", "0", "0d", "four"} {
		t.Run("bad "+bad, func(t *testing.T) {
			_, err := ParseTime(bad)
			assert.Error(t, err)
		})
	}
}

func TestTimeEquivalences(t *testing.T) {
	r24h, err := FromTime("24h")
	require.NoError(t, err)
	r1d, err := FromTime("1d")
	require.NoError(t, err)
	assert.Equal(t, r24h, r1d)
	assert.Equal(t, 1e9/24, r1d)

	r60m, err := FromTime("60m")
	require.NoError(t, err)
	r1h, err := FromTime("1h")
	require.NoError(t, err)
	assert.Equal(t, r1h, r60m)

	bare, err := FromTime("2")
	require.NoError(t, err)
	assert.Equal(t, 1e9/2, bare)

	// Sub-hour intervals must not truncate.
	r30s, err := FromTime("30s")
	require.NoError(t, err)
	assert.InEpsilon(t, 1.2e11, r30s, 1e-12)
}

func TestParseFits(t *testing.T) {
	v, err := ParseFits("0")
	require.NoError(t, err)
	assert.Zero(t, v)

	v, err = ParseFits("1642")
	require.NoError(t, err)
	assert.Equal(t, 1642.0, v)

	for _, bad := range []string{"", "-1", "1.5", "1e3", "12h", " 1"} {
		_, err := ParseFits(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestResolve_Precedence(t *testing.T) {
	r := NewResolver(dictionary.Dictionary{
		"fail":   "5000",
		"repair": "4h",
		"broken": "4x",
	})

	tests := []struct {
		name   string
		attrs  map[string]string
		fits   float64
		source config.RateKind
	}{
		{"explicit fits beats dictionary", map[string]string{"fits": "100", "label": "fail"}, 100, config.RateFits},
		{"rate alias", map[string]string{"rate": "200", "label": "fail"}, 200, config.RateAlias},
		{"fits beats rate", map[string]string{"fits": "1", "rate": "2"}, 1, config.RateFits},
		{"time beats dictionary", map[string]string{"time": "2", "label": "fail"}, 5e8, config.RateTime},
		{"dictionary integer", map[string]string{"label": "fail"}, 5000, config.RateLabel},
		{"dictionary time", map[string]string{"label": "repair"}, 2.5e8, config.RateLabel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := r.Resolve(edge(tt.attrs))
			require.NoError(t, err)
			assert.Equal(t, tt.fits, res.FITs)
			assert.Equal(t, tt.source, res.Source)
		})
	}
}

func TestResolve_Errors(t *testing.T) {
	r := NewResolver(dictionary.Dictionary{"broken": "4x", "neg": "-3"})

	tests := []struct {
		name   string
		attrs  map[string]string
		reason string
	}{
		{"non-integer fits", map[string]string{"fits": "1.5"}, "non-negative integer"},
		{"bad time", map[string]string{"time": "soon"}, "unknown unit"},
		{"label missing from dictionary", map[string]string{"label": "unknown"}, "label not in dictionary"},
		{"bad dictionary time", map[string]string{"label": "broken"}, "bad value in dictionary"},
		{"bad dictionary literal", map[string]string{"label": "neg"}, "bad value in dictionary"},
		{"nothing at all", map[string]string{}, "no fits, rate, time or label"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Resolve(edge(tt.attrs))
			var rerr *ResolutionError
			require.True(t, errors.As(err, &rerr))
			assert.Equal(t, "up", rerr.Source)
			assert.Equal(t, "down", rerr.Dest)
			assert.Contains(t, rerr.Reason, tt.reason)
			assert.Contains(t, err.Error(), "up->down")
		})
	}
}

func TestResolve_NilDictionary(t *testing.T) {
	var r Resolver
	_, err := r.Resolve(edge(map[string]string{"label": "fail"}))
	assert.Error(t, err)

	res, err := r.Resolve(edge(map[string]string{"fits": "7"}))
	require.NoError(t, err)
	assert.Equal(t, 7.0, res.FITs)
}

func TestTimeUnitProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("days and hours agree", prop.ForAll(
		func(n uint32) bool {
			d, err1 := FromTime(fmt.Sprintf("%dd", n))
			h, err2 := FromTime(fmt.Sprintf("%dh", uint64(n)*24))
			return err1 == nil && err2 == nil && d == h
		},
		gen.UInt32Range(1, 1_000_000),
	))

	properties.Property("bare integers are hours", prop.ForAll(
		func(n uint32) bool {
			bare, err1 := FromTime(fmt.Sprintf("%d", n))
			h, err2 := FromTime(fmt.Sprintf("%dh", n))
			return err1 == nil && err2 == nil && bare == h && bare == 1e9/float64(n)
		},
		gen.UInt32Range(1, 1_000_000),
	))

	properties.Property("rates are positive and finite", prop.ForAll(
		func(n uint32, unit string) bool {
			v, err := FromTime(fmt.Sprintf("%d%s", n, unit))
			return err == nil && v > 0 && v <= 1e9*3600
		},
		gen.UInt32Range(1, 1_000_000),
		gen.OneConstOf("s", "m", "h", "d", "w", "y"),
	))

	properties.TestingRun(t)
}
