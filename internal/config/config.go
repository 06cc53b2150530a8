package config

import (
	"bytes"
	stderrors "errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/vdiff/internal/errors"
	"github.com/vango-dev/vdiff/pkg/vdom"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "vdiff.yaml"

	// DefaultConcurrency is the default number of diffs run at once by batch.
	DefaultConcurrency = 4

	// DefaultMetricsNamespace is the default Prometheus namespace.
	DefaultMetricsNamespace = "vdiff"

	// DefaultTracerName is the default OpenTelemetry tracer name.
	DefaultTracerName = "vdiff"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config represents the complete vdiff.yaml configuration.
type Config struct {
	// Diff configures the diff engine.
	Diff DiffConfig `yaml:"diff"`

	// Output configures how results are printed.
	Output OutputConfig `yaml:"output"`

	// Batch configures the batch command.
	Batch BatchConfig `yaml:"batch"`

	// Metrics configures the Prometheus middleware.
	Metrics MetricsConfig `yaml:"metrics"`

	// Tracing configures the OpenTelemetry middleware.
	Tracing TracingConfig `yaml:"tracing"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// DiffConfig contains diff engine settings.
type DiffConfig struct {
	// MaxDepth bounds recursion. Zero means unlimited.
	MaxDepth int `yaml:"max_depth"`
}

// OutputConfig contains output settings.
type OutputConfig struct {
	// Format is "text" or "json".
	Format string `yaml:"format"`

	// Color is "auto", "always" or "never".
	Color string `yaml:"color"`

	// Pretty indents rendered HTML.
	Pretty bool `yaml:"pretty"`
}

// BatchConfig contains batch settings.
type BatchConfig struct {
	// Concurrency is the number of diffs run at once.
	Concurrency int `yaml:"concurrency"`
}

// MetricsConfig contains metrics settings.
type MetricsConfig struct {
	// Namespace is the Prometheus metrics namespace.
	Namespace string `yaml:"namespace"`
}

// TracingConfig contains tracing settings.
type TracingConfig struct {
	// TracerName is the OpenTelemetry tracer name.
	TracerName string `yaml:"tracer_name"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Output: OutputConfig{
			Format: FormatText,
			Color:  ColorAuto,
		},
		Batch: BatchConfig{
			Concurrency: DefaultConcurrency,
		},
		Metrics: MetricsConfig{
			Namespace: DefaultMetricsNamespace,
		},
		Tracing: TracingConfig{
			TracerName: DefaultTracerName,
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for vdiff.yaml in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
// Keys missing from the file keep their defaults; unknown keys are an error.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		e := errors.New("E101").Wrap(err).WithDetail("Cannot read " + path)
		if stderrors.Is(err, fs.ErrNotExist) {
			e = e.WithDetail("No " + ConfigFileName + " found in " + filepath.Dir(path))
		}
		return nil, e
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	cfg.configPath = path
	return cfg, nil
}

// Parse decodes a vdiff.yaml document over the defaults and validates it.
func Parse(data []byte) (*Config, error) {
	cfg := New()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		e := errors.New("E102").
			WithDetail("Failed to parse " + ConfigFileName + ": " + err.Error()).
			WithSuggestion("Check that " + ConfigFileName + " is valid YAML and uses only known keys").
			Wrap(err)
		return nil, e
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Output.Format == "" {
		c.Output.Format = FormatText
	}
	if c.Output.Color == "" {
		c.Output.Color = ColorAuto
	}
	if c.Batch.Concurrency == 0 {
		c.Batch.Concurrency = DefaultConcurrency
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultMetricsNamespace
	}
	if c.Tracing.TracerName == "" {
		c.Tracing.TracerName = DefaultTracerName
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch {
	case c.Diff.MaxDepth < 0:
		return errors.New("E103").
			WithDetailf("diff.max_depth must not be negative, got %d", c.Diff.MaxDepth)
	case c.Output.Format != FormatText && c.Output.Format != FormatJSON:
		return errors.New("E103").
			WithDetailf("output.format must be %q or %q, got %q", FormatText, FormatJSON, c.Output.Format)
	case c.Output.Color != ColorAuto && c.Output.Color != ColorAlways && c.Output.Color != ColorNever:
		return errors.New("E103").
			WithDetailf("output.color must be %q, %q or %q, got %q", ColorAuto, ColorAlways, ColorNever, c.Output.Color)
	case c.Batch.Concurrency < 1:
		return errors.New("E103").
			WithDetailf("batch.concurrency must be at least 1, got %d", c.Batch.Concurrency)
	}
	return nil
}

// DiffOptions returns the engine options described by the configuration.
func (c *Config) DiffOptions(logger *slog.Logger) vdom.Options {
	return vdom.Options{
		MaxDepth: c.Diff.MaxDepth,
		Logger:   logger,
	}
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// Find walks up from startDir looking for vdiff.yaml and returns the
// directory containing it.
func Find(startDir string) (string, bool) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false
	}
	for {
		if Exists(dir) {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// Resolve loads the configuration for a command: the explicit path when
// one is given, otherwise the nearest vdiff.yaml above startDir, otherwise
// the defaults.
func Resolve(explicitPath, startDir string) (*Config, error) {
	if explicitPath != "" {
		return LoadFile(explicitPath)
	}
	if dir, ok := Find(startDir); ok {
		return Load(dir)
	}
	return New(), nil
}
