package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/buildgraph/projfile/internal/language"
)

var validOutputs = map[string]struct{}{
	"auto":     {},
	"text":     {},
	"markdown": {},
	"json":     {},
}

// Validate checks the configuration for values no command could act on.
func (c *Config) Validate() error {
	if c.Output != "" {
		if _, ok := validOutputs[c.Output]; !ok {
			return fmt.Errorf("unknown output format %q (expected auto, text, markdown, or json)", c.Output)
		}
	}
	if c.Language != "" {
		if _, ok := language.Lookup(c.Language); !ok {
			names := language.Names()
			sort.Strings(names)
			return fmt.Errorf("unknown language %q (available: %s)", c.Language, strings.Join(names, ", "))
		}
	}
	return nil
}
