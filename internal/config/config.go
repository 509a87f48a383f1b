// Package config loads and validates solvent.yaml, the per-project
// configuration the compiler driver consults for indentation width and
// solver iteration budget overrides, plus a language-version pragma. It
// follows the teacher's validation.go pattern: decode to a generic document,
// marshal to JSON, and validate that JSON against a compiled JSON Schema,
// rather than relying on yaml struct tags alone to reject malformed input.
package config

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// Config is the decoded, validated contents of solvent.yaml.
type Config struct {
	// Language is a "vX.Y.Z" pragma recording which compiler version the
	// project was last verified against. Required, and must be a valid
	// semantic version per golang.org/x/mod/semver.
	Language string `yaml:"language"`

	// MaxIndentUnit overrides the default 4-space indentation unit
	// (layout.WithUnitWidth). Zero means "use the default".
	MaxIndentUnit int `yaml:"maxIndentUnit"`

	// SolveIterationCap overrides the solver's fixpoint iteration cap
	// (infer.WithMaxIterations). Zero means "use the default".
	SolveIterationCap int `yaml:"solveIterationCap"`
}

// Error reports a solvent.yaml that failed to parse or validate.
type Error struct {
	Path   string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Path, e.Reason)
}

var schema *jsonschema.Schema

func init() {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("schema://solvent-config.json", strings.NewReader(schemaJSON)); err != nil {
		panic(fmt.Sprintf("config: embedded schema failed to load: %v", err))
	}
	compiled, err := compiler.Compile("schema://solvent-config.json")
	if err != nil {
		panic(fmt.Sprintf("config: embedded schema failed to compile: %v", err))
	}
	schema = compiled
}

// Parse decodes raw YAML bytes into a Config, validating the decoded
// document against the embedded JSON Schema and the language pragma
// against semver.IsValid.
func Parse(path string, raw []byte) (*Config, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, &Error{Path: path, Reason: fmt.Sprintf("invalid YAML: %v", err)}
	}

	jsonBytes, err := json.Marshal(doc)
	if err != nil {
		return nil, &Error{Path: path, Reason: fmt.Sprintf("re-marshal to JSON failed: %v", err)}
	}
	var asAny any
	if err := json.Unmarshal(jsonBytes, &asAny); err != nil {
		return nil, &Error{Path: path, Reason: fmt.Sprintf("re-unmarshal failed: %v", err)}
	}
	if err := schema.Validate(asAny); err != nil {
		return nil, &Error{Path: path, Reason: fmt.Sprintf("schema validation failed: %v", err)}
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, &Error{Path: path, Reason: fmt.Sprintf("invalid YAML: %v", err)}
	}

	normalized := cfg.Language
	if !strings.HasPrefix(normalized, "v") {
		normalized = "v" + normalized
	}
	if !semver.IsValid(normalized) {
		return nil, &Error{Path: path, Reason: fmt.Sprintf("language %q is not a valid semantic version", cfg.Language)}
	}

	return &cfg, nil
}

// Default returns the configuration used when no solvent.yaml is present:
// language pinned to the compiler's own version, every override at its
// package default (zero means "use the default").
func Default(compilerVersion string) *Config {
	return &Config{Language: compilerVersion}
}
