package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	intconfig "github.com/buildgraph/projfile/internal/config"
)

// maxUpwardSearchLevels limits how far up the directory tree to search for
// config files.
const maxUpwardSearchLevels = 10

// Package-level koanf instance and config file tracking.
var (
	k              = koanf.New(".")
	configFileUsed string
	currentConfig  *Config
)

// GetConfigFileUsed returns the config file the last load read, if any.
func GetConfigFileUsed() string { return configFileUsed }

// GetCurrentConfig returns the most recently loaded config, or nil.
func GetCurrentConfig() *Config { return currentConfig }

// ResetConfig resets the koanf instance. Used for testing.
func ResetConfig() {
	k = koanf.New(".")
	configFileUsed = ""
	currentConfig = nil
}

// findConfigFile finds the config file to use.
// Priority: explicit path > projfile.yaml > projfile.yml, searching upward
// from the project document's directory (or CWD when no project is given).
func findConfigFile(explicit, startDir string) string {
	if explicit != "" {
		return explicit
	}
	dir := startDir
	for i := 0; i < maxUpwardSearchLevels; i++ {
		for _, name := range intconfig.ConfigFileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// LoadConfig loads configuration from file, environment variables, and
// flags. Precedence (highest to lowest): flags > env vars > config file >
// defaults.
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k = koanf.New(".")

	// 1. Defaults.
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"language": intconfig.DefaultLanguage,
		"output":   intconfig.DefaultOutput,
		"verbose":  false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file, searched upward from the project document's directory.
	startDir, _ := os.Getwd()
	if flags != nil && flags.Changed("project") {
		if v, _ := flags.GetString("project"); v != "" {
			if abs, err := filepath.Abs(v); err == nil {
				startDir = filepath.Dir(abs)
			}
		}
	}
	configFileUsed = findConfigFile(cfgFile, startDir)
	if configFileUsed != "" {
		if err := k.Load(file.Provider(configFileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFileUsed, err)
		}
	}

	// 3. Environment variables: PROJFILE_FRAMEWORKS_DIR -> frameworks_dir.
	if err := k.Load(env.Provider(intconfig.EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, intconfig.EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags, highest priority. Only explicitly set flags are loaded.
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			name := strings.ReplaceAll(f.Name, "-", "_")
			if f.Name == "gac-root" {
				v, _ := flags.GetStringSlice(f.Name)
				return "gac_roots", v
			}
			return name, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	currentConfig = &cfg
	return &cfg, nil
}
