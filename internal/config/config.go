// Package config loads the optional rbw-lookup.yaml configuration file.
// The file is validated against a JSON schema at the boundary before any
// field is used, so ill-typed or unknown settings fail loudly instead of
// being silently ignored.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	rlerrors "github.com/lalmeras/rbw-lookup/internal/errors"
	"github.com/lalmeras/rbw-lookup/internal/logging"
)

// Config holds the runtime configuration.
type Config struct {
	Path       string
	Logger     *logging.Logger
	Definition *Definition
}

// Definition represents the rbw-lookup.yaml structure.
type Definition struct {
	Version  int            `yaml:"version" json:"version"`
	Rbw      ToolConfig     `yaml:"rbw,omitempty" json:"rbw,omitempty"`
	Defaults DefaultsConfig `yaml:"defaults,omitempty" json:"defaults,omitempty"`
}

// ToolConfig configures how the rbw executable is invoked.
type ToolConfig struct {
	// Path to the rbw executable. Empty means "rbw" resolved via PATH.
	Path string `yaml:"path,omitempty" json:"path,omitempty"`
}

// DefaultsConfig carries default query qualifiers applied when the
// caller supplies none.
type DefaultsConfig struct {
	Folder string `yaml:"folder,omitempty" json:"folder,omitempty"`
	Field  string `yaml:"field,omitempty" json:"field,omitempty"`
}

// definitionSchema is the JSON schema every configuration file must
// satisfy. additionalProperties is off so a typo fails instead of being
// ignored.
const definitionSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "version": {"type": "integer", "minimum": 0, "maximum": 1},
    "rbw": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "path": {"type": "string", "minLength": 1}
      }
    },
    "defaults": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "folder": {"type": "string"},
        "field": {"type": "string", "minLength": 1}
      }
    }
  }
}`

// Load reads and parses the configuration file. A missing file is not an
// error; the zero Definition (rbw from PATH, password field) applies.
func (c *Config) Load() error {
	data, err := os.ReadFile(c.Path)
	if err != nil {
		if os.IsNotExist(err) {
			c.Definition = &Definition{}
			return nil
		}
		return rlerrors.UserError{
			Message:    "Failed to read configuration file",
			Details:    err.Error(),
			Suggestion: "Check file permissions and path",
			Err:        err,
		}
	}

	if err := validateDefinition(data); err != nil {
		return rlerrors.ConfigError{
			Field:      "file",
			Value:      c.Path,
			Message:    err.Error(),
			Suggestion: "Fix the configuration file; recognized settings are rbw.path, defaults.folder and defaults.field",
		}
	}

	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return rlerrors.ConfigError{
			Field:      "file",
			Value:      c.Path,
			Message:    "invalid YAML: " + err.Error(),
			Suggestion: "Check for indentation errors and missing quotes",
		}
	}

	c.Definition = &def
	return nil
}

// validateDefinition checks the raw YAML document against the schema.
func validateDefinition(data []byte) error {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("invalid YAML: %w", err)
	}
	if doc == nil {
		// Empty file, same as no file.
		return nil
	}

	jsonData, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to convert configuration for validation: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(definitionSchema),
		gojsonschema.NewBytesLoader(jsonData),
	)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if !result.Valid() {
		var messages []string
		for _, desc := range result.Errors() {
			messages = append(messages, desc.String())
		}
		return fmt.Errorf("schema validation failed:\n  - %s", strings.Join(messages, "\n  - "))
	}
	return nil
}

// ToolPath returns the configured rbw executable path, empty when the
// default PATH lookup applies.
func (c *Config) ToolPath() string {
	if c.Definition == nil {
		return ""
	}
	return c.Definition.Rbw.Path
}

// DefaultFolder returns the configured default folder qualifier.
func (c *Config) DefaultFolder() string {
	if c.Definition == nil {
		return ""
	}
	return c.Definition.Defaults.Folder
}

// DefaultField returns the configured default field.
func (c *Config) DefaultField() string {
	if c.Definition == nil {
		return ""
	}
	return c.Definition.Defaults.Field
}
