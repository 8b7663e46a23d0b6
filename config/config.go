// Package config loads application configuration for hotkeys hosts from
// a config file and HOTKEYS_ environment variables, and builds the logger
// the rest of the stack shares.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config holds host application configuration.
type Config struct {
	Log      LogConfig
	Dispatch DispatchConfig
	Journal  JournalConfig
	Keymap   KeymapConfig
	Script   ScriptConfig
	Remote   RemoteConfig
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is one of none, error, warn, info, debug.
	Level string

	// Format is "text" or "json".
	Format string
}

// DispatchConfig holds Manager dispatch settings.
type DispatchConfig struct {
	// SequenceTimeoutMS is the multi-key sequence timeout in
	// milliseconds. Zero disables the timeout.
	SequenceTimeoutMS int `mapstructure:"sequence_timeout_ms"`
}

// JournalConfig holds dispatch journal settings.
type JournalConfig struct {
	Enabled bool
	Path    string
}

// KeymapConfig holds keymap document settings.
type KeymapConfig struct {
	// Files are keymap JSON documents loaded at startup, in order.
	Files []string
}

// ScriptConfig holds Lua binding settings.
type ScriptConfig struct {
	Enabled bool
	Path    string
}

// RemoteConfig holds the simulated-input server settings.
type RemoteConfig struct {
	Enabled bool
	Addr    string
}

// Load reads configuration from file and env. Env var overrides use
// prefix HOTKEYS_; a .env file in the working directory is applied first,
// best-effort.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()

	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")
	v.SetDefault("dispatch.sequence_timeout_ms", 1000)
	v.SetDefault("journal.enabled", false)
	v.SetDefault("journal.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "hotkeys", "journal.db"))
	v.SetDefault("keymap.files", []string{})
	v.SetDefault("script.enabled", false)
	v.SetDefault("script.path", filepath.Join(os.Getenv("HOME"), ".config", "hotkeys", "bindings.lua"))
	v.SetDefault("remote.enabled", false)
	v.SetDefault("remote.addr", "127.0.0.1:7117")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("HOTKEYS_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "hotkeys"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("HOTKEYS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// BuildLogger constructs the shared logger from a LogConfig. Unknown
// levels fall back to warn; level "none" discards everything.
func BuildLogger(lc LogConfig) *logrus.Logger {
	log := logrus.New()

	switch strings.ToLower(lc.Level) {
	case "none":
		log.SetOutput(io.Discard)
		log.SetLevel(logrus.PanicLevel)
	case "error":
		log.SetLevel(logrus.ErrorLevel)
	case "info":
		log.SetLevel(logrus.InfoLevel)
	case "debug":
		log.SetLevel(logrus.DebugLevel)
	default:
		log.SetLevel(logrus.WarnLevel)
	}

	if strings.EqualFold(lc.Format, "json") {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return log
}
