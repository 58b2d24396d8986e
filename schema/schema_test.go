package schema

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestGenerateDescribesDocument(t *testing.T) {
	s := Generate()
	if s.ID != ID || s.Title == "" {
		t.Fatalf("unexpected header %q %q", s.ID, s.Title)
	}
	for _, key := range []string{"Plugin Settings", "Protected Items", "Additional Items", "Excluded Items"} {
		if _, ok := s.Properties.Get(key); !ok {
			t.Fatalf("missing property %q", key)
		}
		if !slices.Contains(s.Required, key) {
			t.Fatalf("expected %q to be required", key)
		}
	}

	settings, ok := s.Definitions["Settings"]
	if !ok {
		t.Fatalf("expected Settings definition, got %v", s.Definitions)
	}
	mode, ok := settings.Properties.Get("Permission Mode")
	if !ok {
		t.Fatal("missing Permission Mode")
	}
	if !slices.Equal(mode.Enum, []any{"global", "individual"}) {
		t.Fatalf("unexpected mode enum %v", mode.Enum)
	}
	if slices.Contains(settings.Required, "Authorization Rule") {
		t.Fatal("Authorization Rule is optional")
	}
}

func TestDescriptors(t *testing.T) {
	fields, err := Descriptors()
	if err != nil {
		t.Fatalf("descriptors: %v", err)
	}
	want := map[string]string{
		"Additional Items":                           "array",
		"Plugin Settings.Enable Logging":             "boolean",
		"Plugin Settings.Permission Mode":            "string",
		"Plugin Settings.Auto Create Language Files": "boolean",
		"Protected Items":                            "array",
	}
	got := map[string]string{}
	for _, field := range fields {
		got[field.Path] = field.Type
	}
	for path, typ := range want {
		if got[path] != typ {
			t.Fatalf("expected %s to be %s, got %q", path, typ, got[path])
		}
	}
	if _, ok := got["Plugin Settings.Authorization Rule"]; ok {
		t.Fatal("empty optional setting must not be listed")
	}
}

func TestWriteAndRender(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "schema.json")
	if err := Write(path, FormatJSONSchema); err != nil {
		t.Fatalf("write: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc["$id"] != ID {
		t.Fatalf("unexpected $id %v", doc["$id"])
	}

	if _, err := Render("xml"); err == nil {
		t.Fatal("expected unknown format error")
	}
}
