package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/worldinsights/internal/nav"
	"github.com/jask/worldinsights/internal/view"
)

// run executes the CLI with a config that keeps the log inside the test's
// temp dir.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out, _, err := runLogged(t, args...)
	return out, err
}

// runLogged is run that also returns the path of the log file.
func runLogged(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	logPath := filepath.Join(dir, "insights.log")
	cfg := fmt.Sprintf("[log]\nfile = %q\n", logPath)
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o600))

	var out, errOut bytes.Buffer
	root, e := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := root.Execute()
	e.finish(err)
	return out.String(), logPath, err
}

func TestShowWorld(t *testing.T) {
	out, err := run(t, "show")
	require.NoError(t, err)
	require.Contains(t, out, "World  [All Time · All Severity]")
	require.Contains(t, out, "Africa")
	require.Contains(t, out, "North America")
	require.Contains(t, out, "Economic Growth, Climate Adaptation, Digital Transformation")
}

func TestShowSectorWithSeverityFilter(t *testing.T) {
	out, err := run(t, "show", "Africa/Kenya/Healthcare", "--severity", "critical")
	require.NoError(t, err)
	require.Contains(t, out, "World › Africa › Kenya › Healthcare")
	require.Contains(t, out, "Maternal Health Crisis in Rural Areas")
	require.NotContains(t, out, "Digital Health Infrastructure Expansion")
}

func TestShowEmptyRegion(t *testing.T) {
	out, err := run(t, "show", "Europe")
	require.NoError(t, err)
	require.Contains(t, out, "Nothing tracked here yet.")
}

func TestShowIssue(t *testing.T) {
	out, err := run(t, "show", "Africa/Kenya/Technology", "--issue", "3")
	require.NoError(t, err)
	require.Contains(t, out, "# AI Regulation Framework Development")
	require.Contains(t, out, "AI Policy Consultant Role")
	require.Contains(t, out, "[View all →](http://localhost:3000/dashboard)")
}

func TestShowJSON(t *testing.T) {
	out, err := run(t, "show", "Africa/Kenya", "--json")
	require.NoError(t, err)
	var v view.View
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	require.Equal(t, view.SectorList, v.Kind)
	require.Len(t, v.Sectors, 3)
	require.Equal(t, "Healthcare", v.Sectors[0].Name)
	require.Equal(t, 2, v.Sectors[0].Issues)
}

func TestShowErrors(t *testing.T) {
	_, err := run(t, "show", "Africa/Kenia")
	var unknown *nav.UnknownKeyError
	require.ErrorAs(t, err, &unknown)
	require.Contains(t, err.Error(), `did you mean "Kenya"`)

	_, err = run(t, "show", "--issue", "99")
	require.ErrorIs(t, err, nav.ErrUnknownIssue)

	_, err = run(t, "show", "--severity", "urgent")
	require.ErrorContains(t, err, "unknown severity filter")

	_, err = run(t, "show", "Africa/Kenya/Healthcare/More")
	require.ErrorIs(t, err, nav.ErrAtLeaf)
}

func TestSearch(t *testing.T) {
	out, err := run(t, "search", "kenia")
	require.NoError(t, err)
	require.Contains(t, out, "Kenya")
	require.Contains(t, out, "Africa/Kenya")

	out, err = run(t, "search", "maternal", "--json")
	require.NoError(t, err)
	var hits []struct {
		Kind    string   `json:"kind"`
		Label   string   `json:"label"`
		Path    []string `json:"path"`
		IssueID int      `json:"issue_id"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &hits))
	require.NotEmpty(t, hits)
	require.Equal(t, "issue", hits[0].Kind)
	require.Equal(t, 2, hits[0].IssueID)

	out, err = run(t, "search", "zzzzzzzz")
	require.NoError(t, err)
	require.Equal(t, "No matches\n", out)
}

func TestValidate(t *testing.T) {
	out, err := run(t, "validate")
	require.NoError(t, err)
	require.Equal(t, "embedded: ok (3 regions, 1 countries, 3 sectors, 4 issues, 8 opportunities)\n", out)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("regions:\n  Asia:\n    impact: extreme\n    trend: up\n"), 0o600))
	_, err = run(t, "validate", bad)
	require.ErrorContains(t, err, "invalid")
}

func TestUnknownConfigFile(t *testing.T) {
	root, e := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.toml"), "validate"})
	err := root.Execute()
	require.ErrorContains(t, err, "config")
	e.finish(err)
}

func TestFailedCommandIsLogged(t *testing.T) {
	_, logPath, err := runLogged(t, "show", "Africa/Kenia")
	require.Error(t, err)
	raw, readErr := os.ReadFile(logPath)
	require.NoError(t, readErr)
	require.Contains(t, string(raw), "command failed")
	require.Contains(t, string(raw), "Kenia")
}
