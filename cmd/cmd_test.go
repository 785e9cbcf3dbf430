package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags restores every flag in the command tree to its default, since
// cobra keeps parsed values on the package-level commands.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

type harness struct {
	t  *testing.T
	db string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("CAREERPATH_DB", "")
	t.Setenv("CAREERPATH_CATALOG_SOURCE", "")
	return &harness{t: t, db: filepath.Join(dir, "careerpath.db")}
}

func (h *harness) run(stdin string, args ...string) (string, error) {
	h.t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--db", h.db}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	out, err := h.run("", args...)
	require.NoError(h.t, err, out)
	return out
}

func TestMilestoneList(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("milestone", "list")
	assert.Contains(t, out, "Frontend Fundamentals")
	assert.Contains(t, out, "In Progress")
	assert.Contains(t, out, "5 milestones")

	out = h.mustRun("milestone", "list", "--status", "locked")
	assert.Contains(t, out, "4 milestones")
	assert.NotContains(t, out, "Frontend Fundamentals")

	_, err := h.run("", "milestone", "list", "--status", "completed")
	assert.Error(t, err, "empty filter result is an error")
}

func TestMilestoneShow(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("milestone", "show", "4")
	for _, want := range []string{"State Management", "Locked", "Redux", "React Fundamentals (2)", "→ Frontend Capstone (5)", "Thinking in State"} {
		assert.Contains(t, out, want)
	}

	_, err := h.run("", "milestone", "show", "nope")
	assert.ErrorContains(t, err, "milestone not found")
}

func TestCompleteAndProgress(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("complete", "1")
	assert.Contains(t, out, "✓ Completed Frontend Fundamentals")
	assert.Contains(t, out, "Unlocked: React Fundamentals")
	assert.Contains(t, out, "Achievement unlocked: First Step")

	out = h.mustRun("complete", "1")
	assert.Contains(t, out, "already completed")

	out = h.mustRun("progress")
	assert.Contains(t, out, "(1/5)")
	assert.Contains(t, out, "Level 1")

	out = h.mustRun("achievements")
	assert.Contains(t, out, "1 of 3 unlocked")
}

func TestFocus(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("focus", "3")
	assert.Contains(t, out, "Focusing on TypeScript Basics")

	out = h.mustRun("progress")
	assert.Contains(t, out, "Focus: TypeScript Basics")

	out = h.mustRun("focus", "--clear")
	assert.Contains(t, out, "Focus cleared")

	_, err := h.run("", "focus")
	assert.Error(t, err)

	h.mustRun("complete", "1")
	_, err = h.run("", "focus", "1")
	assert.ErrorContains(t, err, "already completed")
}

func TestResources(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("resources", "4")
	assert.Contains(t, out, "Redux Toolkit in Practice")

	_, err := h.run("", "resources", "missing")
	assert.Error(t, err)
}

func TestCatalogExportValidateAndUse(t *testing.T) {
	h := newHarness(t)
	path := filepath.Join(t.TempDir(), "roadmap.yaml")

	out := h.mustRun("catalog", "export", "--name", "Frontend path")
	require.NoError(t, os.WriteFile(path, []byte(out), 0o644))

	out = h.mustRun("catalog", "validate", path)
	assert.Contains(t, out, "Frontend path v1.0.0, 5 milestones in 4 levels")
	assert.NotContains(t, out, "warning")

	out = h.mustRun("--catalog", path, "milestone", "show", "5")
	assert.Contains(t, out, "Frontend Capstone")
}

func TestCatalogFlagSatisfiesFileSource(t *testing.T) {
	h := newHarness(t)
	dir := t.TempDir()
	roadmapPath := filepath.Join(dir, "roadmap.yaml")
	require.NoError(t, os.WriteFile(roadmapPath, []byte(h.mustRun("catalog", "export")), 0o644))

	configPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("catalog:\n  source: file\n"), 0o644))

	_, err := h.run("", "--config", configPath, "progress")
	require.ErrorContains(t, err, "catalog.path")

	out := h.mustRun("--config", configPath, "--catalog", roadmapPath, "progress")
	assert.Contains(t, out, "(0/5)")
}

func TestCatalogValidateRejectsCycle(t *testing.T) {
	h := newHarness(t)
	path := filepath.Join(t.TempDir(), "cycle.json")
	doc := `{"version": "1.0.0", "milestones": [
		{"id": "A", "title": "A", "category": "fundamentals", "prerequisites": ["B"]},
		{"id": "B", "title": "B", "category": "fundamentals", "prerequisites": ["A"]}
	]}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	out, err := h.run("", "catalog", "validate", path)
	require.Error(t, err)
	assert.Contains(t, out, "is not a valid catalog")
	assert.Contains(t, out, "cycle")
}

func TestReset(t *testing.T) {
	h := newHarness(t)
	h.mustRun("complete", "1")

	out, err := h.run("no\n", "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "Aborted")
	assert.Contains(t, h.mustRun("progress"), "(1/5)")

	out, err = h.run("reset\n", "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "Progress reset")
	assert.Contains(t, h.mustRun("progress"), "(0/5)")
}

func TestVersion(t *testing.T) {
	h := newHarness(t)
	assert.Contains(t, h.mustRun("version"), "careerpath (devel)")
}
