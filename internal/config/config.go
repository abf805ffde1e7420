package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/vango-dev/reconciler/internal/errors"
)

const (
	// ConfigName is the configuration file name without extension.
	// reconcile.yaml, reconcile.yml and reconcile.json are all found.
	ConfigName = "reconcile"

	// EnvPrefix prefixes environment overrides: RECONCILE_LOG_LEVEL
	// overrides log.level.
	EnvPrefix = "RECONCILE"

	// DefaultPreviewAddr is the default preview server address.
	DefaultPreviewAddr = "localhost:7070"

	// DefaultDebounce is the default file watch debounce.
	DefaultDebounce = 100 * time.Millisecond

	// DefaultSnapshotDir is the default filesystem snapshot directory.
	DefaultSnapshotDir = ".snapshots"
)

// Config is the project configuration.
type Config struct {
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
	Metrics  MetricsConfig  `mapstructure:"metrics" yaml:"metrics"`
	Tracing  TracingConfig  `mapstructure:"tracing" yaml:"tracing"`
	Preview  PreviewConfig  `mapstructure:"preview" yaml:"preview"`
	Watch    WatchConfig    `mapstructure:"watch" yaml:"watch"`
	Snapshot SnapshotConfig `mapstructure:"snapshot" yaml:"snapshot"`

	// configPath is the file the config was loaded from, if any.
	configPath string
}

// LogConfig configures structured logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `mapstructure:"level" yaml:"level"`

	// Format is text or json.
	Format string `mapstructure:"format" yaml:"format"`
}

// MetricsConfig configures the Prometheus observer.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled" yaml:"enabled"`
	Namespace string `mapstructure:"namespace" yaml:"namespace"`
}

// TracingConfig configures the OpenTelemetry observer.
type TracingConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// Exporter is stdout or none.
	Exporter string `mapstructure:"exporter" yaml:"exporter"`

	// Tracer is the tracer name.
	Tracer string `mapstructure:"tracer" yaml:"tracer"`
}

// PreviewConfig configures the preview server.
type PreviewConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

// WatchConfig configures fixture watching.
type WatchConfig struct {
	// Debounce coalesces bursts of file events (e.g. "100ms").
	Debounce time.Duration `mapstructure:"debounce" yaml:"debounce"`
}

// SnapshotConfig selects where rendered snapshots are stored. A non-empty
// Bucket selects S3; otherwise snapshots go to Dir.
type SnapshotConfig struct {
	Dir    string `mapstructure:"dir" yaml:"dir"`
	Bucket string `mapstructure:"bucket" yaml:"bucket"`
	Prefix string `mapstructure:"prefix" yaml:"prefix,omitempty"`
	Region string `mapstructure:"region" yaml:"region,omitempty"`

	// Endpoint overrides the S3 endpoint, for S3-compatible stores.
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint,omitempty"`
}

// New returns a config holding the defaults.
func New() *Config {
	return &Config{
		Log:      LogConfig{Level: "info", Format: "text"},
		Metrics:  MetricsConfig{Enabled: true, Namespace: "reconcile"},
		Tracing:  TracingConfig{Exporter: "stdout", Tracer: "reconcile"},
		Preview:  PreviewConfig{Addr: DefaultPreviewAddr},
		Watch:    WatchConfig{Debounce: DefaultDebounce},
		Snapshot: SnapshotConfig{Dir: DefaultSnapshotDir},
	}
}

// setDefaults registers every key so environment overrides apply on
// Unmarshal even when no file sets them.
func setDefaults(v *viper.Viper) {
	d := New()
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
	v.SetDefault("metrics.namespace", d.Metrics.Namespace)
	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.exporter", d.Tracing.Exporter)
	v.SetDefault("tracing.tracer", d.Tracing.Tracer)
	v.SetDefault("preview.addr", d.Preview.Addr)
	v.SetDefault("watch.debounce", d.Watch.Debounce)
	v.SetDefault("snapshot.dir", d.Snapshot.Dir)
	v.SetDefault("snapshot.bucket", "")
	v.SetDefault("snapshot.prefix", "")
	v.SetDefault("snapshot.region", "")
	v.SetDefault("snapshot.endpoint", "")
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the configuration from dir. A missing file is not an error:
// defaults and environment overrides still apply.
func Load(dir string) (*Config, error) {
	v := newViper()
	v.SetConfigName(ConfigName)
	v.AddConfigPath(dir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.New(errors.CodeConfigInvalid).
				WithDetail("read config in %s", dir).
				Wrap(err)
		}
	}
	return decode(v)
}

// LoadFile reads the configuration from an explicit path.
func LoadFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		e := errors.New(errors.CodeConfigInvalid).WithDetail("read %s", path).Wrap(err)
		if os.IsNotExist(err) {
			e.WithSuggestion("Run 'reconcile init' to create a config file.")
		}
		return nil, e
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.New(errors.CodeConfigInvalid).Wrap(err)
	}
	cfg.configPath = v.ConfigFileUsed()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveTo writes the configuration as YAML to path.
func (c *Config) SaveTo(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.New(errors.CodeConfigInvalid).Wrap(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.New(errors.CodeConfigInvalid).WithDetail("write %s", path).Wrap(err)
	}
	c.configPath = path
	return nil
}

// Path returns the file the config was loaded from, or "" for defaults.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory of the config file, or "." for defaults.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return "."
	}
	return filepath.Dir(c.configPath)
}

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"text", "json"}
	exporters  = []string{"stdout", "none"}
)

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return errors.New(errors.CodeConfigInvalid).WithDetail(format, args...)
	}
	switch {
	case !slices.Contains(logLevels, c.Log.Level):
		return invalid("log.level %q is not one of %s", c.Log.Level, strings.Join(logLevels, ", "))
	case !slices.Contains(logFormats, c.Log.Format):
		return invalid("log.format %q is not one of %s", c.Log.Format, strings.Join(logFormats, ", "))
	case c.Metrics.Enabled && c.Metrics.Namespace == "":
		return invalid("metrics.namespace is required when metrics are enabled")
	case c.Tracing.Enabled && !slices.Contains(exporters, c.Tracing.Exporter):
		return invalid("tracing.exporter %q is not one of %s", c.Tracing.Exporter, strings.Join(exporters, ", "))
	case c.Preview.Addr == "":
		return invalid("preview.addr is required")
	case c.Watch.Debounce <= 0:
		return invalid("watch.debounce must be positive, got %s", c.Watch.Debounce)
	case c.Snapshot.Bucket == "" && c.Snapshot.Dir == "":
		return invalid("snapshot.dir or snapshot.bucket is required")
	}
	return nil
}

// SlogLevel returns the configured log level.
func (c LogConfig) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Logger builds a logger writing to w in the configured format.
func (c LogConfig) Logger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.SlogLevel()}
	if c.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// String returns a one-line summary for debug output.
func (c *Config) String() string {
	src := c.configPath
	if src == "" {
		src = "defaults"
	}
	return fmt.Sprintf("config(%s: log=%s/%s preview=%s)", src, c.Log.Level, c.Log.Format, c.Preview.Addr)
}
