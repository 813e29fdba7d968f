// Package config provides configuration management for the projfile CLI.
// Values are layered from defaults, an optional projfile.yaml, PROJFILE_*
// environment variables, and command-line flags, in rising precedence.
package config

import (
	"log/slog"
	"os"
)

// Config is the resolved CLI configuration.
type Config struct {
	// Project is the path to the project document to operate on.
	Project string `koanf:"project"`

	// Language is the source language used when the document declares none.
	Language string `koanf:"language"`

	// FrameworksDir overrides the platform framework reference-assembly
	// directory.
	FrameworksDir string `koanf:"frameworks_dir"`

	// GacRoots overrides the shared-assembly-cache roots.
	GacRoots []string `koanf:"gac_roots"`

	// Output selects the output format: auto, text, markdown, or json.
	Output string `koanf:"output"`

	// Verbose enables debug logging.
	Verbose bool `koanf:"verbose"`
}

// NewLogger builds the CLI logger from the config. Debug level when verbose,
// warnings and up otherwise; always to stderr.
func (c *Config) NewLogger() *slog.Logger {
	level := slog.LevelWarn
	if c.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
