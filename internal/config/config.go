/*
File    : meteor/internal/config/config.go

Package config loads meteor.yaml, the project-level settings file
covering the entrypoint policy Open Question spec.md §9 leaves to
implementers and the CLI's color output toggle. It searches a given
directory and its ancestors the way a project-root marker file
conventionally is found, and falls back to defaults silently when none
is present: meteor.yaml is an optional refinement, never a requirement
to run a script.
*/
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/akashmaji946/meteor/internal/eval"
)

// fileName is the project settings file meteor looks for.
const fileName = "meteor.yaml"

// Config is meteor's project-level configuration.
type Config struct {
	// Entrypoint selects Run's top-level policy (spec.md §9's Open
	// Question). "main-function" (default) or "last-expression".
	Entrypoint string `yaml:"entrypoint"`
	// Color enables ANSI-colored diagnostic output. Defaults to true
	// when absent; a false value disables it even on a terminal.
	Color *bool `yaml:"color"`
}

// Default returns the configuration used when no meteor.yaml is found.
func Default() Config {
	t := true
	return Config{Entrypoint: "main-function", Color: &t}
}

// Policy translates the configured entrypoint string into an
// eval.EntrypointPolicy, defaulting to PolicyMainFunction for an empty
// or unrecognized value.
func (c Config) Policy() eval.EntrypointPolicy {
	if c.Entrypoint == "last-expression" {
		return eval.PolicyLastExpression
	}
	return eval.PolicyMainFunction
}

// UseColor reports whether diagnostic output should be colored,
// defaulting to true when unset.
func (c Config) UseColor() bool {
	if c.Color == nil {
		return true
	}
	return *c.Color
}

// Load searches dir and its ancestors for meteor.yaml, parses the
// first one found, and returns Default() if none exists anywhere up
// to the filesystem root. A present-but-malformed file is also
// reported, distinguishing "no config" from "broken config".
func Load(dir string) (Config, error) {
	path, ok := findUpward(dir, fileName)
	if !ok {
		return Default(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Default(), err
	}
	cfg := Default()
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Default(), err
	}
	if cfg.Entrypoint == "" {
		cfg.Entrypoint = "main-function"
	}
	return cfg, nil
}

func findUpward(dir, name string) (string, bool) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	for {
		candidate := filepath.Join(abs, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return "", false
		}
		abs = parent
	}
}
