package cli

import (
	"errors"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/vk/markovavail/internal/app"
)

// Invocation is the parsed command line: exactly one of Solve and Rates
// is set.
type Invocation struct {
	Solve *app.Config
	Rates *app.RatesConfig
}

// solveFlags are the raw flag values of the solve command.
type solveFlags struct {
	configPath  string
	dictionary  string
	debug       int
	hires       int
	lores       int
	missingRate *enumValue
	format      *enumValue
	metricsFile string
	logFormat   *enumValue
	logLevel    *enumValue
}

type ratesFlags struct {
	output    string
	set       []string
	logFormat *enumValue
	logLevel  *enumValue
}

// Parse processes command-line arguments. It returns the parsed
// invocation, a boolean indicating if the program should exit cleanly
// (help was shown), or an ExitError.
func Parse(args []string, output io.Writer) (*Invocation, bool, error) {
	slog.Debug("CLI parser started.")
	var inv *Invocation

	root := newSolveCommand(&inv)
	root.AddCommand(newRatesCommand(&inv))
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetArgs(args)
	root.SetOut(output)
	root.SetErr(output)

	if err := root.Execute(); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return nil, false, exitErr
		}
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}
	if inv == nil {
		slog.Debug("No command to run, exiting.")
		return nil, true, nil
	}
	slog.Debug("CLI parser finished successfully.")
	return inv, false, nil
}

func newSolveCommand(inv **Invocation) *cobra.Command {
	defaults := app.DefaultConfig()
	f := &solveFlags{
		missingRate: newEnum(defaults.MissingRate, "fail", "zero"),
		format:      newEnum(defaults.Format, app.FormatText, app.FormatYAML),
		logFormat:   newEnum(defaults.LogFormat, "text", "json"),
		logLevel:    newEnum(defaults.LogLevel, "debug", "info", "warn", "error"),
	}

	cmd := &cobra.Command{
		Use:   "markovavail [flags] input_file [dictionary_file]",
		Short: "Steady-state availability of a continuous-time Markov model",
		Long: `markovavail solves the steady state of a system described as a DOT
digraph of states and FIT-rated transitions, and reports the occupancy of
every state, every availability class and the flows between states.

Transition rates come from the edge's fits, rate or time attribute, or
from the dictionary entry named by its label.

Exit codes:
  0  success
  1  internal or I/O error
  2  usage or configuration error
  3  unparsable model, dictionary or rate sheet
  4  missing or invalid rates and annotations
  5  balance equations without a unique solution`,
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			cfg, err := f.config(cmd, args)
			if err != nil {
				return err
			}
			*inv = &Invocation{Solve: cfg}
			return nil
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.configPath, "config", "", "Settings file (.yaml, .yml or .toml); flags override its values.")
	fl.StringVarP(&f.dictionary, "dictionary", "D", "", "Rate dictionary file; a positional dictionary_file wins.")
	fl.IntVarP(&f.debug, "debug", "d", 0, "Diagnostic detail: 1 logs the parsed model, 2 also the balance equations.")
	fl.IntVar(&f.hires, "hires", defaults.HiRes, "Decimal places of occupancy percentages.")
	fl.IntVar(&f.lores, "lores", defaults.LoRes, "Decimal places of fractions, performance and capacity.")
	fl.Var(f.missingRate, "missing-rate", "What to do with a transition without a rate: 'fail' or 'zero'.")
	fl.Var(f.format, "format", "Report format: 'text' or 'yaml'.")
	fl.StringVar(&f.metricsFile, "metrics-file", "", "Write Prometheus textfile metrics to this path.")
	fl.Var(f.logFormat, "log-format", "Log output format. Options: 'text' or 'json'.")
	fl.Var(f.logLevel, "log-level", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	return cmd
}

// config layers the defaults, the settings file and the flags that were
// given, then validates the result.
func (f *solveFlags) config(cmd *cobra.Command, args []string) (*app.Config, error) {
	cfg := app.DefaultConfig()
	if f.configPath != "" {
		fc, err := app.LoadFileConfig(f.configPath)
		if err != nil {
			return nil, &ExitError{Code: ExitUsage, Message: err.Error()}
		}
		fc.Apply(&cfg)
	}

	fl := cmd.Flags()
	if changed(fl, "dictionary") {
		cfg.DictionaryPath = f.dictionary
	}
	if changed(fl, "debug") {
		cfg.Debug = f.debug
	}
	if changed(fl, "hires") {
		cfg.HiRes = f.hires
	}
	if changed(fl, "lores") {
		cfg.LoRes = f.lores
	}
	if changed(fl, "missing-rate") {
		cfg.MissingRate = f.missingRate.value
	}
	if changed(fl, "format") {
		cfg.Format = f.format.value
	}
	if changed(fl, "metrics-file") {
		cfg.MetricsFile = f.metricsFile
	}
	if changed(fl, "log-format") {
		cfg.LogFormat = f.logFormat.value
	}
	if changed(fl, "log-level") {
		cfg.LogLevel = f.logLevel.value
	}

	cfg.ModelPath = args[0]
	if len(args) > 1 {
		cfg.DictionaryPath = args[1]
	}

	validated, err := app.NewConfig(cfg)
	if err != nil {
		return nil, &ExitError{Code: ExitUsage, Message: err.Error()}
	}
	return validated, nil
}

func newRatesCommand(inv **Invocation) *cobra.Command {
	defaults := app.DefaultConfig()
	f := &ratesFlags{
		logFormat: newEnum(defaults.LogFormat, "text", "json"),
		logLevel:  newEnum(defaults.LogLevel, "debug", "info", "warn", "error"),
	}

	cmd := &cobra.Command{
		Use:   "rates [flags] params_file",
		Short: "Generate a rate dictionary from an HCL rate sheet",
		Long: `Evaluate an HCL rate sheet and write its rates as a dictionary file.

Parameters are evaluated in order and may be overridden with --set, so
several configurations can be generated from one sheet.

Examples:
  markovavail rates raid.hcl -o raid.rates
  markovavail rates raid.hcl --set num_disks=8 --set rebuild="6 * hour"`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides, err := parseOverrides(f.set)
			if err != nil {
				return &ExitError{Code: ExitUsage, Message: err.Error()}
			}
			cfg, err := app.NewRatesConfig(app.RatesConfig{
				SheetPath:  args[0],
				OutputPath: f.output,
				Overrides:  overrides,
				LogFormat:  f.logFormat.value,
				LogLevel:   f.logLevel.value,
			})
			if err != nil {
				return &ExitError{Code: ExitUsage, Message: err.Error()}
			}
			*inv = &Invocation{Rates: cfg}
			return nil
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.output, "output", "o", "", "Output file (default stdout).")
	fl.StringArrayVar(&f.set, "set", nil, "Override a parameter (name=expression), can be repeated.")
	fl.Var(f.logFormat, "log-format", "Log output format. Options: 'text' or 'json'.")
	fl.Var(f.logLevel, "log-level", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	return cmd
}
