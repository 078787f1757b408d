package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Report formats.
const (
	FormatText = "text"
	FormatYAML = "yaml"
)

// Config holds all the necessary configuration for a solve run.
type Config struct {
	ModelPath      string `validate:"required"`
	DictionaryPath string

	// Debug is the diagnostic detail: 1 logs the parsed model, 2 also the
	// balance equations.
	Debug       int    `validate:"gte=0,lte=2"`
	HiRes       int    `validate:"gte=0,lte=12"`
	LoRes       int    `validate:"gte=0,lte=12"`
	MissingRate string `validate:"oneof=fail zero"`
	Format      string `validate:"oneof=text yaml"`
	MetricsFile string

	LogFormat string `validate:"oneof=text json"`
	LogLevel  string `validate:"oneof=debug info warn error"`
}

// DefaultConfig returns the settings used when nothing overrides them.
func DefaultConfig() Config {
	return Config{
		HiRes:       4,
		LoRes:       2,
		MissingRate: "fail",
		Format:      FormatText,
		LogFormat:   "text",
		LogLevel:    "info",
	}
}

// RatesConfig holds the configuration of a rate sheet generation run.
type RatesConfig struct {
	SheetPath  string `validate:"required"`
	OutputPath string
	Overrides  map[string]string `validate:"dive,keys,required,endkeys,required"`

	LogFormat string `validate:"oneof=text json"`
	LogLevel  string `validate:"oneof=debug info warn error"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// NewConfig normalizes and validates cfg.
func NewConfig(cfg Config) (*Config, error) {
	cfg.MissingRate = strings.ToLower(cfg.MissingRate)
	cfg.Format = strings.ToLower(cfg.Format)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	if err := validate.Struct(cfg); err != nil {
		return nil, describe(err)
	}
	return &cfg, nil
}

// NewRatesConfig normalizes and validates cfg.
func NewRatesConfig(cfg RatesConfig) (*RatesConfig, error) {
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	if err := validate.Struct(cfg); err != nil {
		return nil, describe(err)
	}
	return &cfg, nil
}

// describe turns validator failures into one readable error per field.
func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			out = append(out, fmt.Errorf("%s is a required configuration field and cannot be empty", fe.Field()))
		case "oneof":
			out = append(out, fmt.Errorf("invalid %s %q: must be one of %s", fe.Field(), fe.Value(), strings.ReplaceAll(fe.Param(), " ", ", ")))
		case "gte", "lte":
			out = append(out, fmt.Errorf("invalid %s %v: must be between the allowed bounds (%s %s)", fe.Field(), fe.Value(), fe.Tag(), fe.Param()))
		default:
			out = append(out, fmt.Errorf("invalid %s: failed %q check", fe.Field(), fe.Tag()))
		}
	}
	return errors.Join(out...)
}
