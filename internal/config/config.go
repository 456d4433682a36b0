package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Log     LogConfig
	UI      UIConfig
	Server  ServerConfig
	Dataset DatasetConfig
}

// LogConfig holds logger settings. An empty File logs to stderr.
type LogConfig struct {
	Level string
	File  string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	DashboardURL   string   `mapstructure:"dashboard_url"`
	FocusAreas     []string `mapstructure:"focus_areas"`
	MatchThreshold int      `mapstructure:"match_threshold"`
	DefaultTab     string   `mapstructure:"default_tab"`
}

// ServerConfig holds the read-only API settings.
type ServerConfig struct {
	Addr            string
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	RateLimit       float64       `mapstructure:"rate_limit"`
	RateBurst       int           `mapstructure:"rate_burst"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatasetConfig optionally replaces the compiled-in dataset with a YAML
// file of the same shape.
type DatasetConfig struct {
	Path string
}

func stateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "insights")
	}
	return filepath.Join(os.Getenv("HOME"), ".local", "state", "insights")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", filepath.Join(stateDir(), "insights.log"))
	v.SetDefault("ui.dashboard_url", "http://localhost:3000/dashboard")
	v.SetDefault("ui.focus_areas", []string{"Healthcare:Primary", "Technology:Secondary", "East Africa:Region"})
	v.SetDefault("ui.match_threshold", 80)
	v.SetDefault("ui.default_tab", "insights")
	v.SetDefault("server.addr", ":8000")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.rate_limit", 20.0)
	v.SetDefault("server.rate_burst", 40)
	v.SetDefault("server.shutdown_timeout", "5s")
	v.SetDefault("dataset.path", "")
}

// Load reads configuration from file and env. Env var overrides use prefix INSIGHTS_.
// path overrides INSIGHTS_CONFIG; a missing default config file is not an error.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")

	if path == "" {
		path = os.Getenv("INSIGHTS_CONFIG")
	}
	explicit := path != ""
	if explicit {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "insights"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("INSIGHTS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks ranges and enumerations.
func (c Config) Validate() error {
	var errs []error
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level %q", c.Log.Level))
	}
	if c.UI.MatchThreshold < 0 || c.UI.MatchThreshold > 100 {
		errs = append(errs, fmt.Errorf("ui.match_threshold %d outside 0-100", c.UI.MatchThreshold))
	}
	switch c.UI.DefaultTab {
	case "insights", "atlas":
	default:
		errs = append(errs, fmt.Errorf("ui.default_tab %q", c.UI.DefaultTab))
	}
	if c.Server.RateLimit < 0 {
		errs = append(errs, fmt.Errorf("server.rate_limit %v is negative", c.Server.RateLimit))
	}
	if c.Server.RateLimit > 0 && c.Server.RateBurst < 1 {
		errs = append(errs, fmt.Errorf("server.rate_burst %d must be at least 1", c.Server.RateBurst))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// FocusArea is one sidebar entry, configured as "Name:Role".
type FocusArea struct {
	Name string
	Role string
}

func (u UIConfig) Focus() []FocusArea {
	out := make([]FocusArea, 0, len(u.FocusAreas))
	for _, raw := range u.FocusAreas {
		name, role, _ := strings.Cut(raw, ":")
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		out = append(out, FocusArea{Name: name, Role: strings.TrimSpace(role)})
	}
	return out
}
