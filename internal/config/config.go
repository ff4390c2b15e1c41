// Package config loads checker options from a YAML file, the way the
// rest of the pack's tools load their own project configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Options controls the Type Checker's behavior for one run.
type Options struct {
	// MaxDiagnostics caps how many diagnostics the checker records
	// before it stops reporting (but keeps walking). 0 means no cap.
	MaxDiagnostics int `yaml:"max_diagnostics,omitempty"`

	// WarningsAsErrors is reserved for a future warning kind; the
	// current diagnostic taxonomy has no warnings, so this currently
	// has no observable effect beyond being threaded through.
	WarningsAsErrors bool `yaml:"warnings_as_errors,omitempty"`

	// EditionConstraint is the supported edition range, e.g.
	// ">=1.0.0, <2.0.0"; empty admits every module edition.
	EditionConstraint string `yaml:"edition_constraint,omitempty"`
}

// Default returns the checker's out-of-the-box options.
func Default() *Options {
	return &Options{EditionConstraint: ">=1.0.0, <2.0.0"}
}

// Load reads and parses a checker config file at path.
func Load(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses checker config content from bytes, filling in defaults
// for anything the document omits.
func Parse(data []byte) (*Options, error) {
	opts := Default()
	if err := yaml.Unmarshal(data, opts); err != nil {
		return nil, fmt.Errorf("config: parsing options: %w", err)
	}

	return opts, nil
}
