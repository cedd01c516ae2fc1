package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"whilelang/pkg/interpreter"
	"whilelang/pkg/parser"
)

// DefaultPath is read when no -config flag is given and the file exists
const DefaultPath = "whilelang.yml"

// Config is the run configuration, read from YAML and overridden by CLI flags
type Config struct {
	Log                string `yaml:"log"`    // "log" or "nolog", empty when not given
	Color              bool   `yaml:"color"`  // colored diagnostics and logs
	Format             string `yaml:"format"` // snapshot format, "text" or "yaml"
	DB                 string `yaml:"db"`     // SQLite file runs are stored in, empty to disable
	Strict             bool   `yaml:"strict"`
	EagerBindings      bool   `yaml:"eager_bindings"`
	CompoundScope      string `yaml:"compound_scope"` // "innermost" or "current"
	MaxDepth           int    `yaml:"max_depth"`
	MaxSteps           int    `yaml:"max_steps"`
	RejectRedefinition bool   `yaml:"reject_redefinition"`
}

// Default returns the configuration used when no file is present
func Default() *Config {
	return &Config{
		Color:         true,
		Format:        "text",
		CompoundScope: interpreter.ScopeInnermost.String(),
		MaxDepth:      10000,
	}
}

// ValidationError aggregates configuration failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// Load reads the YAML file at path on top of the defaults.
// An empty path reads DefaultPath if it exists and falls back to the defaults otherwise.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		if _, err := os.Stat(DefaultPath); err != nil {
			return cfg, nil
		}
		path = DefaultPath
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer file.Close()

	if err := cfg.Decode(file); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Decode overlays YAML from r onto c. Unknown keys are rejected, an empty document is not an error.
func (c *Config) Decode(r io.Reader) error {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	return nil
}

// Validate checks the enumerated and numeric settings
func (c *Config) Validate() error {
	var issues []string

	switch c.Log {
	case "", "log", "nolog":
	default:
		issues = append(issues, fmt.Sprintf("log must be \"log\" or \"nolog\", got %q", c.Log))
	}

	switch c.Format {
	case "text", "yaml":
	default:
		issues = append(issues, fmt.Sprintf("format must be \"text\" or \"yaml\", got %q", c.Format))
	}

	if _, ok := interpreter.ParseScope(c.CompoundScope); !ok {
		issues = append(issues, fmt.Sprintf("compound_scope must be \"innermost\" or \"current\", got %q", c.CompoundScope))
	}

	if c.MaxDepth < 0 {
		issues = append(issues, "max_depth can't be negative")
	}
	if c.MaxSteps < 0 {
		issues = append(issues, "max_steps can't be negative")
	}

	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}

	return nil
}

// Debug reports whether the line trace is enabled
func (c *Config) Debug() bool {
	return c.Log == "log"
}

// ParserOptions translates the configuration into parser options
func (c *Config) ParserOptions() []parser.Option {
	var opts []parser.Option
	if c.RejectRedefinition {
		opts = append(opts, parser.WithRejectRedefinition())
	}
	return opts
}

// InterpreterOptions translates the configuration into interpreter options
func (c *Config) InterpreterOptions() []interpreter.Option {
	scope, _ := interpreter.ParseScope(c.CompoundScope)

	opts := []interpreter.Option{
		interpreter.WithCompoundScope(scope),
		interpreter.WithMaxDepth(c.MaxDepth),
		interpreter.WithMaxSteps(c.MaxSteps),
	}

	if c.Strict {
		opts = append(opts, interpreter.WithStrict())
	}
	if c.EagerBindings {
		opts = append(opts, interpreter.WithEagerBindings())
	}

	return opts
}
