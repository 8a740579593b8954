package cli

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds user preferences loaded from a YAML file via --config.
// Flags set explicitly on the command line take precedence over config
// values.
type Config struct {
	// Prompt is the REPL prompt string.
	Prompt string `yaml:"prompt"`

	// MaxAnswers bounds how many answers a query prints. 0 means
	// unbounded, which the caller accepts at their own risk: resolution
	// of an unrestricted logic program may not terminate.
	MaxAnswers int `yaml:"max_answers"`

	// Database is the default path to the declarations journal.
	Database string `yaml:"database"`
}

// DefaultConfig returns the built-in defaults used when no config file
// is given.
func DefaultConfig() Config {
	return Config{
		Prompt:     "> ",
		MaxAnswers: 0,
	}
}

// LoadConfig reads a YAML config file. An empty path yields the
// defaults. Unknown keys are rejected so typos surface instead of
// silently falling back.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
