// Package config loads process configuration from an optional JSON
// file and KEYWARDEN_* environment variables. Environment variables
// win over the file; the file wins over defaults.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/tidwall/gjson"

	"github.com/dshills/keywarden/internal/security"
)

// Environment variable names.
const (
	EnvBuildMode  = "KEYWARDEN_BUILD_MODE"
	EnvMaxSession = "KEYWARDEN_MAX_SESSION"
	EnvLogLevel   = "KEYWARDEN_LOG_LEVEL"
	EnvDebugInput = "KEYWARDEN_DEBUG_INPUT"
	EnvScriptDir  = "KEYWARDEN_SCRIPT_DIR"
)

// Config is the resolved process configuration.
type Config struct {
	// BuildMode selects the authorization ceiling.
	BuildMode security.BuildMode

	// MaxSession bounds elevated authorization sessions.
	MaxSession time.Duration

	// LogLevel is the minimum log level name.
	LogLevel string

	// DebugInput enables per-event dispatch tracing.
	DebugInput bool

	// ScriptDir holds Lua handler scripts. Empty disables script loading.
	ScriptDir string

	// FlagOverrides force feature flags on or off after seeding.
	FlagOverrides map[string]bool
}

// Default returns the safe configuration: release mode, one-hour
// sessions, info logging, no scripts.
func Default() Config {
	return Config{
		BuildMode:  security.Release,
		MaxSession: time.Hour,
		LogLevel:   "info",
	}
}

// Load resolves configuration from the given file path and the
// environment. An empty path or a missing file is not an error; a
// present but malformed file is.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return cfg, err
		}
	}
	if err := cfg.loadEnv(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("config: %s is not valid JSON", path)
	}

	doc := string(data)

	if v := gjson.Get(doc, "build_mode"); v.Exists() {
		mode, err := security.ParseBuildMode(v.String())
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		c.BuildMode = mode
	}
	if v := gjson.Get(doc, "max_session"); v.Exists() {
		d, err := time.ParseDuration(v.String())
		if err != nil {
			return fmt.Errorf("config: max_session: %w", err)
		}
		c.MaxSession = d
	}
	if v := gjson.Get(doc, "log_level"); v.Exists() {
		c.LogLevel = v.String()
	}
	if v := gjson.Get(doc, "debug_input"); v.Exists() {
		c.DebugInput = v.Bool()
	}
	if v := gjson.Get(doc, "script_dir"); v.Exists() {
		c.ScriptDir = v.String()
	}
	if v := gjson.Get(doc, "flags"); v.IsObject() {
		c.FlagOverrides = make(map[string]bool)
		v.ForEach(func(k, val gjson.Result) bool {
			c.FlagOverrides[k.String()] = val.Bool()
			return true
		})
	}
	return nil
}

func (c *Config) loadEnv() error {
	if v := os.Getenv(EnvBuildMode); v != "" {
		mode, err := security.ParseBuildMode(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvBuildMode, err)
		}
		c.BuildMode = mode
	}
	if v := os.Getenv(EnvMaxSession); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvMaxSession, err)
		}
		c.MaxSession = d
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvDebugInput); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvDebugInput, err)
		}
		c.DebugInput = b
	}
	if v := os.Getenv(EnvScriptDir); v != "" {
		c.ScriptDir = v
	}
	return nil
}

// ApplyFlagOverrides forces configured flags after seeding. Overrides
// run at the context's current level, so a release build cannot force
// privileged flags on through configuration.
func (c *Config) ApplyFlagOverrides(ctx *security.Context, flags *security.Flags) error {
	for name, value := range c.FlagOverrides {
		if _, err := flags.Set(name, value, ctx.Level()); err != nil {
			return fmt.Errorf("config: override %q: %w", name, err)
		}
	}
	return nil
}
