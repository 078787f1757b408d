package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/markovavail/internal/ratesheet"
	"github.com/vk/markovavail/internal/testutil"
)

const sheet = `
params {
  mtbf = 1000
}
rate "fail" {
  time = mtbf
}
`

func TestRunRates(t *testing.T) {
	path := testutil.WriteFile(t, "rates.hcl", sheet)
	out := &bytes.Buffer{}
	logs := &testutil.SafeBuffer{}

	cfg, err := NewRatesConfig(RatesConfig{SheetPath: path, LogFormat: "text", LogLevel: "info"})
	require.NoError(t, err)
	require.NoError(t, RunRates(context.Background(), out, logs, cfg))
	assert.Contains(t, out.String(), "fail")
	assert.Contains(t, out.String(), "1000000")
	assert.Contains(t, logs.String(), "Rates generated.")
}

func TestRunRates_OutputFileAndOverrides(t *testing.T) {
	path := testutil.WriteFile(t, "rates.hcl", sheet)
	outPath := filepath.Join(t.TempDir(), "rates.txt")

	cfg, err := NewRatesConfig(RatesConfig{
		SheetPath:  path,
		OutputPath: outPath,
		Overrides:  map[string]string{"mtbf": "10"},
		LogFormat:  "json",
		LogLevel:   "warn",
	})
	require.NoError(t, err)
	out := &bytes.Buffer{}
	require.NoError(t, RunRates(context.Background(), out, &testutil.SafeBuffer{}, cfg))
	assert.Empty(t, out.String())

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# override mtbf = 10")
	assert.Contains(t, string(data), "100000000")
}

func TestRunRates_SheetError(t *testing.T) {
	path := testutil.WriteFile(t, "rates.hcl", `rate "x" { fits = -1 }`)
	cfg, err := NewRatesConfig(RatesConfig{SheetPath: path, LogFormat: "text", LogLevel: "info"})
	require.NoError(t, err)

	err = RunRates(context.Background(), &bytes.Buffer{}, &testutil.SafeBuffer{}, cfg)
	var serr *ratesheet.SheetError
	require.ErrorAs(t, err, &serr)
}
