// Package schema describes the plugin configuration document.
package schema

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/invopop/jsonschema"

	"github.com/goliatone/go-burnguard/pkg/config"
)

// ID is the $id stamped on the generated schema.
const ID = "https://github.com/goliatone/go-burnguard/schema/burnedbegone.json"

// Format names a schema rendering.
type Format string

const (
	FormatJSONSchema  Format = "jsonschema"
	FormatDescriptors Format = "descriptors"
)

// Generate reflects config.Configuration into a JSON schema.
func Generate() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		ExpandedStruct: true,
	}
	s := reflector.Reflect(new(config.Configuration))
	s.ID = ID
	s.Title = "BurnedBegone configuration"
	s.Description = "Validates oxide/config/BurnedBegone.json"
	return s
}

// FieldDescriptor describes a document path and the type of its default.
type FieldDescriptor struct {
	Path string `json:"path"`
	Type string `json:"type"`
}

// Descriptors flattens the default configuration into dotted key paths.
func Descriptors() ([]FieldDescriptor, error) {
	raw, err := json.Marshal(config.Defaults())
	if err != nil {
		return nil, fmt.Errorf("schema: encode defaults: %w", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("schema: decode defaults: %w", err)
	}
	return deriveFieldDescriptors(doc, ""), nil
}

func deriveFieldDescriptors(value any, prefix string) []FieldDescriptor {
	switch typed := value.(type) {
	case map[string]any:
		keys := make([]string, 0, len(typed))
		for key := range typed {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		var fields []FieldDescriptor
		for _, key := range keys {
			fields = append(fields, deriveFieldDescriptors(typed[key], joinPath(prefix, key))...)
		}
		return fields
	case []any:
		return []FieldDescriptor{{Path: prefix, Type: "array"}}
	case string:
		return []FieldDescriptor{{Path: prefix, Type: "string"}}
	case bool:
		return []FieldDescriptor{{Path: prefix, Type: "boolean"}}
	case float64:
		return []FieldDescriptor{{Path: prefix, Type: "number"}}
	default:
		return []FieldDescriptor{{Path: prefix, Type: "null"}}
	}
}

func joinPath(prefix, segment string) string {
	if prefix == "" {
		return segment
	}
	return strings.Join([]string{prefix, segment}, ".")
}

// Render encodes the schema in the requested format as indented JSON.
func Render(format Format) ([]byte, error) {
	var doc any
	switch format {
	case FormatJSONSchema, "":
		doc = Generate()
	case FormatDescriptors:
		fields, err := Descriptors()
		if err != nil {
			return nil, err
		}
		doc = fields
	default:
		return nil, fmt.Errorf("schema: unknown format %q", format)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("schema: marshal: %w", err)
	}
	return append(data, '\n'), nil
}

// Write renders format to path, replacing any existing file.
func Write(path string, format Format) error {
	data, err := Render(format)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("schema: create directory: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("schema: write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("schema: replace %s: %w", path, err)
	}
	return nil
}
