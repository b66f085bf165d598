package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	t       *testing.T
	dataDir string
}

// newHarness isolates config lookup and data from the real user dirs.
func newHarness(t *testing.T) *harness {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	for _, k := range []string{"WORKTRAVEL_DATA_DIR", "WORKTRAVEL_BACKEND", "WORKTRAVEL_THEME", "WORKTRAVEL_LOG_LEVEL", "WORKTRAVEL_LOG_FORMAT"} {
		t.Setenv(k, "")
	}
	return &harness{t: t, dataDir: t.TempDir()}
}

func (h *harness) run(stdin string, args ...string) (code int, stdout, stderr string) {
	h.t.Helper()
	var out, errb bytes.Buffer
	full := append([]string{"--data-dir", h.dataDir, "--theme", "mono"}, args...)
	code = Run(context.Background(), full, IO{In: strings.NewReader(stdin), Out: &out, Err: &errb})
	return code, out.String(), errb.String()
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	code, out, errOut := h.run("", args...)
	require.Equal(h.t, 0, code, "stderr: %s", errOut)
	return out
}

func TestAddAndList(t *testing.T) {
	h := newHarness(t)
	h.mustRun("add", "Buy", "milk")
	h.mustRun("add", "Call Bob")

	out := h.mustRun("ls")
	assert.Contains(t, out, " 1. [ ] Buy milk")
	assert.Contains(t, out, " 2. [ ] Call Bob")
	assert.Contains(t, out, "Total 2")
}

func TestAddBlankIsUsageError(t *testing.T) {
	h := newHarness(t)
	code, _, errOut := h.run("", "add", "")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "empty text")
}

func TestCanceledBeforeLoadWritesNothing(t *testing.T) {
	h := newHarness(t)
	h.mustRun("add", "kept")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out, errb bytes.Buffer
	code := Run(ctx, []string{"--data-dir", h.dataDir, "--theme", "mono", "add", "late"}, IO{In: strings.NewReader(""), Out: &out, Err: &errb})
	assert.Equal(t, 1, code)

	list := h.mustRun("ls")
	assert.Contains(t, list, "kept", "an unread store is never overwritten")
	assert.NotContains(t, list, "late")
}

func TestModesAreSeparateLists(t *testing.T) {
	h := newHarness(t)
	h.mustRun("add", "Standup")
	assert.Equal(t, "Work\n", h.mustRun("mode"))

	h.mustRun("mode", "travel")
	h.mustRun("add", "Lisbon")
	assert.Equal(t, "Travel\n", h.mustRun("mode"))

	out := h.mustRun("ls")
	assert.Contains(t, out, "Lisbon")
	assert.NotContains(t, out, "Standup")

	all := h.mustRun("ls", "--all")
	assert.Contains(t, all, "Lisbon")
	assert.Contains(t, all, "Standup")
	assert.Less(t, strings.Index(all, "Standup"), strings.Index(all, "Lisbon"), "Work is listed first")
}

func TestModeRejectsUnknownName(t *testing.T) {
	h := newHarness(t)
	code, _, _ := h.run("", "mode", "holiday")
	assert.Equal(t, 2, code)
}

func TestDoneUndoneByIndex(t *testing.T) {
	h := newHarness(t)
	h.mustRun("add", "one")
	h.mustRun("add", "two")
	h.mustRun("done", "2")

	out := h.mustRun("ls", "--group")
	pending := strings.Index(out, "Pending")
	done := strings.Index(out, "Done")
	require.True(t, pending >= 0 && done > pending)
	assert.Contains(t, out[done:], " 2. [x] two", "grouping keeps the list index")
	assert.Contains(t, out[pending:done], " 1. [ ] one")

	h.mustRun("undone", "2")
	assert.Contains(t, h.mustRun("ls"), " 2. [ ] two")
}

func TestIndexOutOfRange(t *testing.T) {
	h := newHarness(t)
	h.mustRun("add", "one")
	code, _, errOut := h.run("", "done", "5")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "index out of range: have 1, got 5")
}

func TestEditByID(t *testing.T) {
	h := newHarness(t)
	h.mustRun("add", "Call Bob")

	m := regexp.MustCompile(`\((\d+)\)`).FindStringSubmatch(h.mustRun("ls"))
	require.Len(t, m, 2)
	id := m[1]
	require.NotEmpty(t, id)

	h.mustRun("edit", id, "Call", "Alice")
	out := h.mustRun("ls")
	assert.Contains(t, out, "Call Alice")
	assert.Contains(t, out, "("+id+")")

	code, _, _ := h.run("", "edit", id, "")
	assert.Equal(t, 2, code)
	assert.Contains(t, h.mustRun("ls"), "Call Alice")
}

func TestRemoveAsksFirst(t *testing.T) {
	h := newHarness(t)
	h.mustRun("add", "keep")
	h.mustRun("add", "drop")

	code, out, _ := h.run("n\n", "rm", "2")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Delete To Do")
	assert.Contains(t, out, "Are you sure?")
	assert.Contains(t, out, "kept")
	assert.Contains(t, h.mustRun("ls"), "drop")

	code, _, _ = h.run("", "rm", "2")
	assert.Equal(t, 0, code, "EOF on stdin cancels")
	assert.Contains(t, h.mustRun("ls"), "drop")

	code, out, _ = h.run("y\n", "rm", "2")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "removed")
	assert.NotContains(t, h.mustRun("ls"), "drop")

	h.mustRun("rm", "--yes", "1")
	assert.Contains(t, h.mustRun("ls"), "no items")
}

func TestUnknownFlagIsUsageError(t *testing.T) {
	h := newHarness(t)
	code, _, errOut := h.run("", "ls", "--bogus")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "--help")
}

func TestBadConfigValueIsUsageError(t *testing.T) {
	h := newHarness(t)
	code, _, errOut := h.run("", "--backend", "postgres", "ls")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "backend")
}

func TestSQLiteBackendPersists(t *testing.T) {
	h := newHarness(t)
	h.mustRun("--backend", "sqlite", "add", "Lisbon")
	assert.FileExists(t, filepath.Join(h.dataDir, "worktravel.db"))
	assert.Contains(t, h.mustRun("--backend", "sqlite", "ls"), "Lisbon")
	assert.NotContains(t, h.mustRun("ls"), "Lisbon", "file backend is separate")
}

func TestConfigFileSelectsBackend(t *testing.T) {
	h := newHarness(t)
	cfg := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("backend: sqlite\n"), 0o644))

	h.mustRun("--config", cfg, "add", "from yaml")
	assert.FileExists(t, filepath.Join(h.dataDir, "worktravel.db"))
}
