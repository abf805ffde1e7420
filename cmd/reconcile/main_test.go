package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/reconciler/internal/config"
	"github.com/vango-dev/reconciler/pkg/fixture"
	"github.com/vango-dev/reconciler/pkg/preview"
)

const appDoc = `
type: main
children:
  - type: Card
    props: {title: Hi}
    children:
      - type: p
        props: {textContent: body}
  - type: Counter
    props: {start: 3, label: Clicks}
`

const appHTML = `<main><section class="card"><h2>Hi</h2><div class="card-body"><p>body</p></div></section>` +
	`<button data-count="3">Clicks: 3</button></main>`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// run executes the CLI with --dir set to dir and returns stdout.
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(append(args, "--dir="+dir))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()
	return out.String(), err
}

func TestRender(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "app.yaml", appDoc)

	out, err := run(t, dir, "render", path)
	require.NoError(t, err)
	assert.Equal(t, appHTML+"\n", out)

	out, err = run(t, dir, "render", path, "--trace")
	require.NoError(t, err)
	lines := strings.Split(out, "\n")
	assert.Equal(t, `createNode("main")`, lines[0])
	assert.Contains(t, lines, `setProperty(button, "data-count", "3")`)
	assert.Contains(t, lines, `appendChild(root, main)`)
	assert.Contains(t, out, appHTML)
}

func TestRenderErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, dir, "render", filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := writeFile(t, dir, "bad.yaml", "type: Widget\n")
	_, err = run(t, dir, "render", bad)
	assert.ErrorIs(t, err, fixture.ErrUnknownComponent)

	_, err = run(t, dir, "render")
	assert.Error(t, err)
}

func TestDiff(t *testing.T) {
	dir := t.TempDir()
	before := writeFile(t, dir, "before.yaml", appDoc)
	after := writeFile(t, dir, "after.yaml", strings.Replace(appDoc, "label: Clicks", "label: Taps", 1))

	out, err := run(t, dir, "diff", before, after)
	require.NoError(t, err)

	// The counter instance survives the second pass and counts the update.
	assert.Contains(t, out, `setProperty(button, "textContent", "Taps: 4")`)
	assert.NotContains(t, out, "createNode")
	assert.Contains(t, out, "-   <button data-count=\"3\">Clicks: 3</button>\n")
	assert.Contains(t, out, "+   <button data-count=\"4\">Taps: 4</button>\n")
	assert.Contains(t, out, "    <h2>Hi</h2>\n")
}

func TestWriteLineDiff(t *testing.T) {
	var buf bytes.Buffer
	writeLineDiff(&buf, "a\nb\nc\n", "a\nc\nd\n")
	assert.Equal(t, "  a\n- b\n  c\n+ d\n", buf.String())
}

func TestSnapshot(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "app.yaml", appDoc)

	out, err := run(t, dir, "snapshot", path, "home")
	require.NoError(t, err)
	assert.Contains(t, out, "Stored home")

	stored, err := os.ReadFile(filepath.Join(dir, config.DefaultSnapshotDir, "home.html"))
	require.NoError(t, err)
	assert.Equal(t, appHTML, string(stored))

	_, err = run(t, dir, "snapshot", path, "home", "--check")
	require.NoError(t, err)

	changed := writeFile(t, dir, "changed.yaml", strings.Replace(appDoc, "title: Hi", "title: Bye", 1))
	out, err = run(t, dir, "snapshot", changed, "home", "--check")
	require.Error(t, err)
	assert.Contains(t, out, "Bye")

	out, err = run(t, dir, "snapshot", "--list")
	require.NoError(t, err)
	assert.Equal(t, "home\n", out)

	_, err = run(t, dir, "snapshot", path, "../escape")
	assert.Error(t, err)
}

func TestInit(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, dir, "init")
	require.NoError(t, err)

	cfg, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "reconcile.yaml"), cfg.Path())

	_, err = run(t, dir, "init")
	assert.Error(t, err, "init must not overwrite without --force")

	_, err = run(t, dir, "init", "--force")
	assert.NoError(t, err)
}

func TestInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "reconcile.yaml", "log:\n  level: loud\n")

	_, err := run(t, dir, "version")
	assert.ErrorContains(t, err, "log.level")
}

func TestVersion(t *testing.T) {
	out, err := run(t, t.TempDir(), "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", out)
}

func TestCounterKeepsStateAcrossPasses(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "app.yaml", appDoc)

	a := &app{dir: dir}
	require.NoError(t, a.setup(&bytes.Buffer{}))
	s := a.newSession()

	var last preview.Update
	for range 3 {
		u, err := a.mountFile(s, path)
		require.NoError(t, err)
		last = u
	}
	assert.Equal(t, 3, last.Version)
	assert.Contains(t, last.HTML, `<button data-count="5">Clicks: 5</button>`)

	_, err := s.Unmount()
	require.NoError(t, err)
	assert.Empty(t, s.HTML())
}

func TestIntProp(t *testing.T) {
	tests := []struct {
		value any
		want  int
	}{
		{3, 3},
		{int64(4), 4},
		{float64(5), 5},
		{"6", 6},
		{"x", 0},
		{nil, 0},
	}
	for _, tt := range tests {
		got := intProp(map[string]any{"n": tt.value}, "n")
		if got != tt.want {
			t.Errorf("intProp(%v) = %d, want %d", tt.value, got, tt.want)
		}
	}
}
