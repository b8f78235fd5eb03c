package scenario

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a scenario document.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFor picks the document format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported scenario file extension %q (use .yaml, .yml or .json)", filepath.Ext(path))
	}
}

var (
	schemaOnce     sync.Once
	schema         *jsonschema.Schema
	resolvedSchema *jsonschema.Resolved
	schemaErr      error
)

// Schema returns the JSON schema of a scenario document. Unknown keys are not allowed.
func Schema() (*jsonschema.Schema, error) {
	loadSchema()
	return schema, schemaErr
}

func loadSchema() {
	schemaOnce.Do(func() {
		s, err := jsonschema.For[Scenario](nil)
		if err != nil {
			schemaErr = fmt.Errorf("failed to infer scenario schema: %w", err)
			return
		}
		closeObjects(s)

		resolved, err := s.Resolve(nil)
		if err != nil {
			schemaErr = fmt.Errorf("failed to resolve scenario schema: %w", err)
			return
		}
		schema, resolvedSchema = s, resolved
	})
}

// closeObjects forbids additional properties on every object in the schema tree.
func closeObjects(s *jsonschema.Schema) {
	if s == nil {
		return
	}
	if len(s.Properties) > 0 {
		s.AdditionalProperties = &jsonschema.Schema{Not: &jsonschema.Schema{}}
	}
	for _, p := range s.Properties {
		closeObjects(p)
	}
	closeObjects(s.Items)
}

// Decode parses a document, checks it against Schema and returns the scenario. The
// returned scenario has not been through Validate yet.
func Decode(data []byte, format Format) (Scenario, error) {
	var raw any
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return Scenario{}, fmt.Errorf("failed to parse YAML scenario: %w", err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &raw); err != nil {
			return Scenario{}, fmt.Errorf("failed to parse JSON scenario: %w", err)
		}
	default:
		return Scenario{}, fmt.Errorf("unsupported scenario format %q", format)
	}

	// Round-trip through JSON so YAML scalars and maps take the shapes the schema
	// validator expects.
	canonical, err := json.Marshal(raw)
	if err != nil {
		return Scenario{}, fmt.Errorf("scenario is not representable as JSON: %w", err)
	}
	var instance any
	if err := json.Unmarshal(canonical, &instance); err != nil {
		return Scenario{}, err
	}

	loadSchema()
	if schemaErr != nil {
		return Scenario{}, schemaErr
	}
	if err := resolvedSchema.Validate(instance); err != nil {
		return Scenario{}, fmt.Errorf("scenario does not match schema: %w", err)
	}

	var s Scenario
	dec := json.NewDecoder(bytes.NewReader(canonical))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return Scenario{}, fmt.Errorf("failed to decode scenario: %w", err)
	}
	return s, nil
}

// Load reads a scenario file and validates it against maxWeeks.
func Load(path string, maxWeeks int) (Scenario, error) {
	format, err := FormatFor(path)
	if err != nil {
		return Scenario{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("failed to read scenario: %w", err)
	}

	s, err := Decode(data, format)
	if err != nil {
		return Scenario{}, fmt.Errorf("%s: %w", path, err)
	}
	if err := s.Validate(maxWeeks); err != nil {
		return Scenario{}, err
	}

	log.Debug().Str("path", path).Str("name", s.Name).Int("weeks", s.Weeks).Msg("Loaded scenario")
	return s, nil
}

// Save writes the scenario in the format implied by the path's extension.
func Save(path string, s Scenario) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}

	var data []byte
	switch format {
	case FormatYAML:
		data, err = yaml.Marshal(s)
	case FormatJSON:
		data, err = json.MarshalIndent(s, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to encode scenario: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
