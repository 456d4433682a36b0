package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_STATE_HOME", "")
	t.Setenv("INSIGHTS_CONFIG", "")
	return home
}

func TestLoadDefaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, filepath.Join(home, ".local", "state", "insights", "insights.log"), cfg.Log.File)
	require.Equal(t, 80, cfg.UI.MatchThreshold)
	require.Equal(t, "insights", cfg.UI.DefaultTab)
	require.Equal(t, ":8000", cfg.Server.Addr)
	require.Equal(t, []string{"http://localhost:3000"}, cfg.Server.AllowedOrigins)
	require.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	require.Empty(t, cfg.Dataset.Path)
	require.Equal(t, []FocusArea{
		{Name: "Healthcare", Role: "Primary"},
		{Name: "Technology", Role: "Secondary"},
		{Name: "East Africa", Role: "Region"},
	}, cfg.UI.Focus())
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[log]
level = "debug"

[ui]
match_threshold = 90
focus_areas = ["Education:Primary"]

[server]
addr = "127.0.0.1:9000"
shutdown_timeout = "2s"
`), 0o644))

	t.Setenv("INSIGHTS_SERVER_ADDR", ":7000")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, 90, cfg.UI.MatchThreshold)
	require.Equal(t, []FocusArea{{Name: "Education", Role: "Primary"}}, cfg.UI.Focus())
	require.Equal(t, ":7000", cfg.Server.Addr)
	require.Equal(t, 2*time.Second, cfg.Server.ShutdownTimeout)
}

func TestLoadFromDefaultLocation(t *testing.T) {
	home := isolate(t)
	dir := filepath.Join(home, ".config", "insights")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[ui]\ndefault_tab = \"atlas\"\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "atlas", cfg.UI.DefaultTab)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	home := isolate(t)
	_, err := Load(filepath.Join(home, "nope.toml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	isolate(t)
	cfg, err := Load("")
	require.NoError(t, err)

	bad := cfg
	bad.UI.MatchThreshold = 120
	require.ErrorContains(t, bad.Validate(), "match_threshold")

	bad = cfg
	bad.Log.Level = "chatty"
	require.ErrorContains(t, bad.Validate(), "log.level")

	bad = cfg
	bad.UI.DefaultTab = "map"
	require.ErrorContains(t, bad.Validate(), "default_tab")

	bad = cfg
	bad.Server.RateBurst = 0
	require.ErrorContains(t, bad.Validate(), "rate_burst")

	bad.Server.RateLimit = 0
	require.NoError(t, bad.Validate())
}

func TestFocusSkipsBlankEntries(t *testing.T) {
	ui := UIConfig{FocusAreas: []string{" :Primary", "Water", "Energy : Watch"}}
	require.Equal(t, []FocusArea{{Name: "Water"}, {Name: "Energy", Role: "Watch"}}, ui.Focus())
}
