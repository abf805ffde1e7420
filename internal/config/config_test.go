package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/reconciler/internal/errors"
)

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Preview.Addr != DefaultPreviewAddr {
		t.Errorf("Preview.Addr = %q, want %q", cfg.Preview.Addr, DefaultPreviewAddr)
	}
	if cfg.Watch.Debounce != DefaultDebounce {
		t.Errorf("Watch.Debounce = %v, want %v", cfg.Watch.Debounce, DefaultDebounce)
	}
	if cfg.Snapshot.Dir != DefaultSnapshotDir {
		t.Errorf("Snapshot.Dir = %q, want %q", cfg.Snapshot.Dir, DefaultSnapshotDir)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, New().Log, cfg.Log)
	assert.Equal(t, DefaultDebounce, cfg.Watch.Debounce)
	assert.Empty(t, cfg.Path())
	assert.Equal(t, ".", cfg.Dir())
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "reconcile.yaml"), `
log:
  level: debug
  format: json
preview:
  addr: 0.0.0.0:9000
watch:
  debounce: 250ms
snapshot:
  bucket: trees
  prefix: ci/
  region: eu-west-1
`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "0.0.0.0:9000", cfg.Preview.Addr)
	assert.Equal(t, 250*time.Millisecond, cfg.Watch.Debounce)
	assert.Equal(t, "trees", cfg.Snapshot.Bucket)
	assert.Equal(t, "ci/", cfg.Snapshot.Prefix)
	assert.Equal(t, DefaultSnapshotDir, cfg.Snapshot.Dir, "unset keys keep defaults")
	assert.Equal(t, dir, cfg.Dir())
}

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "reconcile.json"), `{"metrics": {"enabled": false}, "tracing": {"enabled": true, "exporter": "none"}}`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.False(t, cfg.Metrics.Enabled)
	assert.True(t, cfg.Tracing.Enabled)
	assert.Equal(t, "none", cfg.Tracing.Exporter)
}

func TestEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "reconcile.yaml"), "log:\n  level: warn\n")
	t.Setenv("RECONCILE_LOG_LEVEL", "error")
	t.Setenv("RECONCILE_WATCH_DEBOUNCE", "2s")
	t.Setenv("RECONCILE_METRICS_ENABLED", "false")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, 2*time.Second, cfg.Watch.Debounce)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		file string
		body string
	}{
		{"bad level", "reconcile.yaml", "log:\n  level: loud\n"},
		{"bad format", "reconcile.yaml", "log:\n  format: xml\n"},
		{"bad exporter", "reconcile.yaml", "tracing:\n  enabled: true\n  exporter: jaeger\n"},
		{"zero debounce", "reconcile.yaml", "watch:\n  debounce: 0s\n"},
		{"no store", "reconcile.yaml", "snapshot:\n  dir: ''\n"},
		{"syntax", "reconcile.json", `{"log": `},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, filepath.Join(dir, tt.file), tt.body)

			_, err := Load(dir)
			require.Error(t, err)
			assert.Equal(t, errors.CodeConfigInvalid, errors.CodeOf(err))
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.CodeOf(err))
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reconcile.yaml")
	cfg := New()
	cfg.Log.Level = "debug"
	cfg.Watch.Debounce = 3 * time.Second
	require.NoError(t, cfg.SaveTo(path))
	assert.Equal(t, path, cfg.Path())

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", loaded.Log.Level)
	assert.Equal(t, 3*time.Second, loaded.Watch.Debounce)
	assert.Equal(t, cfg.Snapshot, loaded.Snapshot)
}

func TestLogger(t *testing.T) {
	tests := []struct {
		cfg     LogConfig
		level   slog.Level
		logged  bool
		jsonOut bool
	}{
		{LogConfig{Level: "debug", Format: "text"}, slog.LevelDebug, true, false},
		{LogConfig{Level: "warn", Format: "json"}, slog.LevelWarn, false, true},
		{LogConfig{Level: "bogus", Format: "text"}, slog.LevelInfo, false, false},
	}
	for _, tt := range tests {
		if got := tt.cfg.SlogLevel(); got != tt.level {
			t.Errorf("SlogLevel(%q) = %v, want %v", tt.cfg.Level, got, tt.level)
		}

		var buf bytes.Buffer
		logger := tt.cfg.Logger(&buf)
		logger.Debug("probe")
		logger.Error("boom")

		if got := strings.Contains(buf.String(), "probe"); got != tt.logged {
			t.Errorf("%s: debug logged = %v, want %v", tt.cfg.Level, got, tt.logged)
		}
		if got := strings.HasPrefix(buf.String(), "{"); got != tt.jsonOut {
			t.Errorf("%s: json output = %v, want %v", tt.cfg.Format, got, tt.jsonOut)
		}
	}
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}
