package app

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// FileConfig is the optional settings file. Unset fields leave the
// defaults alone, and command-line flags override whatever it sets.
type FileConfig struct {
	Dictionary  *string `yaml:"dictionary" toml:"dictionary"`
	Debug       *int    `yaml:"debug" toml:"debug"`
	HiRes       *int    `yaml:"hires" toml:"hires"`
	LoRes       *int    `yaml:"lores" toml:"lores"`
	MissingRate *string `yaml:"missing_rate" toml:"missing_rate"`
	Format      *string `yaml:"format" toml:"format"`
	MetricsFile *string `yaml:"metrics_file" toml:"metrics_file"`
	LogFormat   *string `yaml:"log_format" toml:"log_format"`
	LogLevel    *string `yaml:"log_level" toml:"log_level"`
}

// LoadFileConfig reads a YAML (.yaml, .yml) or TOML (.toml) settings file.
// Unknown keys are rejected.
func LoadFileConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fc FileConfig
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("invalid config file %s: %w", path, err)
		}
	case ".toml":
		md, err := toml.Decode(string(data), &fc)
		if err != nil {
			return nil, fmt.Errorf("invalid config file %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, 0, len(undecoded))
			for _, k := range undecoded {
				keys = append(keys, k.String())
			}
			slices.Sort(keys)
			return nil, fmt.Errorf("invalid config file %s: unknown keys %s", path, strings.Join(keys, ", "))
		}
	default:
		return nil, fmt.Errorf("unsupported config file type %q: use .yaml, .yml or .toml", ext)
	}
	return &fc, nil
}

// Apply copies every set field onto cfg.
func (fc *FileConfig) Apply(cfg *Config) {
	setString(&cfg.DictionaryPath, fc.Dictionary)
	setInt(&cfg.Debug, fc.Debug)
	setInt(&cfg.HiRes, fc.HiRes)
	setInt(&cfg.LoRes, fc.LoRes)
	setString(&cfg.MissingRate, fc.MissingRate)
	setString(&cfg.Format, fc.Format)
	setString(&cfg.MetricsFile, fc.MetricsFile)
	setString(&cfg.LogFormat, fc.LogFormat)
	setString(&cfg.LogLevel, fc.LogLevel)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
