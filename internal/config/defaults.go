// Package config holds shared configuration constants and defaults for the
// projfile tool.
package config

// Default configuration values.
const (
	DefaultLanguage = "csharp"
	DefaultOutput   = "auto"
)

// Config file names searched for in the project directory and its parents.
var ConfigFileNames = []string{"projfile.yaml", "projfile.yml"}

// EnvPrefix is the prefix for environment-variable configuration.
const EnvPrefix = "PROJFILE_"
