// Package config defines and loads the netpanel-cli configuration.
//
// Configuration is resolved with koanf from three sources, later overriding
// earlier: built-in defaults, the YAML config file, and NETPANEL_*
// environment variables. Command-line flags override on top of the loaded
// result at the call site.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the environment variable prefix.
const EnvPrefix = "NETPANEL_"

// CLIConfig is the configuration for netpanel-cli.
type CLIConfig struct {
	// Server is the API endpoint root, configured once per invocation.
	Server string `koanf:"server"`

	// Output is the default output format (table, json, yaml).
	Output string `koanf:"output"`

	Credentials CredentialsSection `koanf:"credentials"`
	Log         LogSection         `koanf:"log"`
	RateLimit   RateLimitSection   `koanf:"ratelimit"`
}

// CredentialsSection configures the credential store.
type CredentialsSection struct {
	// File is the credential store location (default
	// ~/.netpanel/credentials.json).
	File string `koanf:"file"`

	// Key optionally seals the credential file at rest (hex-encoded
	// 32-byte key).
	Key string `koanf:"key"`
}

// LogSection configures CLI logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// RateLimitSection optionally throttles outbound requests.
type RateLimitSection struct {
	RPS   float64 `koanf:"rps"`
	Burst int     `koanf:"burst"`
}

// Default returns the default CLI configuration.
func Default() *CLIConfig {
	return &CLIConfig{
		Server: "http://localhost:8080/api",
		Output: "table",
		Log: LogSection{
			Level:  "warn",
			Format: "text",
		},
	}
}

// DefaultConfigPath returns the default CLI config file path.
func DefaultConfigPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".netpanel", "cli.yaml")
}

// Load resolves the configuration. A missing file is not an error; an
// unreadable or malformed one is.
func Load(path string) (*CLIConfig, error) {
	if path == "" {
		path = DefaultConfigPath()
	}

	k := koanf.New(".")

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	// NETPANEL_LOG_LEVEL -> log.level
	envTransformer := func(s string) string {
		s = strings.TrimPrefix(s, EnvPrefix)
		s = strings.ToLower(s)
		return strings.ReplaceAll(s, "_", ".")
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransformer), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}
