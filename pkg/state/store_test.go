package state_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/goliatone/go-burnguard/internal/hydrate"
	"github.com/goliatone/go-burnguard/pkg/state"
)

type pluginSettings struct {
	Logging bool   `json:"Enable Logging"`
	Mode    string `json:"Permission Mode" layering:"fill"`
}

type pluginConfig struct {
	Settings  *pluginSettings `json:"Plugin Settings"`
	Protected []string        `json:"Protected Items"`
}

func samplePluginConfig() pluginConfig {
	return pluginConfig{
		Settings:  &pluginSettings{Logging: true, Mode: "global"},
		Protected: []string{"fish.cooked", "bearmeat.cooked"},
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := state.NewMemoryStore[pluginConfig]()
	ctx := context.Background()
	ref := state.Ref{Name: "BurnedBegone"}

	if _, _, ok, err := store.Load(ctx, ref); ok || err != nil {
		t.Fatalf("expected empty store, got ok=%v err=%v", ok, err)
	}

	meta, err := store.Save(ctx, ref, samplePluginConfig(), state.Meta{Extra: map[string]string{"origin": "test"}})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if meta.ETag == "" || meta.SnapshotID == "" || meta.UpdatedAt.IsZero() {
		t.Fatalf("expected stamped meta, got %+v", meta)
	}
	if meta.Extra["origin"] != "test" {
		t.Fatalf("expected extra preserved, got %+v", meta.Extra)
	}

	got, loadedMeta, ok, err := store.Load(ctx, ref)
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if !reflect.DeepEqual(got, samplePluginConfig()) {
		t.Fatalf("round trip mismatch: %#v", got)
	}
	if loadedMeta.ETag != meta.ETag {
		t.Fatalf("etag changed between save and load: %q vs %q", meta.ETag, loadedMeta.ETag)
	}

	again, err := store.Save(ctx, ref, samplePluginConfig(), state.Meta{})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if again.ETag != meta.ETag || again.SnapshotID != meta.SnapshotID {
		t.Fatalf("equal content must yield equal metadata")
	}
}

func TestMemoryStoreRejectsInvalidRef(t *testing.T) {
	store := state.NewMemoryStore[pluginConfig]()
	if _, err := store.Save(context.Background(), state.Ref{Name: "a/b"}, pluginConfig{}, state.Meta{}); !errors.Is(err, state.ErrInvalidRef) {
		t.Fatalf("expected ErrInvalidRef, got %v", err)
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	for _, format := range []state.Format{state.FormatJSON, state.FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			dir := t.TempDir()
			store, err := state.NewFileStore[pluginConfig](filepath.Join(dir, "config"), format)
			if err != nil {
				t.Fatalf("new store: %v", err)
			}
			ctx := context.Background()
			ref := state.Ref{Name: "BurnedBegone"}

			if _, _, ok, err := store.Load(ctx, ref); ok || err != nil {
				t.Fatalf("expected missing document, got ok=%v err=%v", ok, err)
			}

			meta, err := store.Save(ctx, ref, samplePluginConfig(), state.Meta{})
			if err != nil {
				t.Fatalf("save: %v", err)
			}

			path, _ := store.Path(ref)
			if filepath.Ext(path) != "."+string(format) {
				t.Fatalf("unexpected path %s", path)
			}
			raw, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			if !strings.Contains(string(raw), "Protected Items") || !strings.Contains(string(raw), "Permission Mode") {
				t.Fatalf("expected json tag names in document:\n%s", raw)
			}

			got, loadedMeta, ok, err := store.Load(ctx, ref)
			if err != nil || !ok {
				t.Fatalf("load: ok=%v err=%v", ok, err)
			}
			if !reflect.DeepEqual(got, samplePluginConfig()) {
				t.Fatalf("round trip mismatch: %#v", got)
			}
			if loadedMeta.ETag != meta.ETag || loadedMeta.SnapshotID != meta.SnapshotID {
				t.Fatalf("metadata mismatch: saved %+v loaded %+v", meta, loadedMeta)
			}
		})
	}
}

func TestFileStoreYAMLKeepsFieldOrder(t *testing.T) {
	dir := t.TempDir()
	store, err := state.NewFileStore[pluginConfig](dir, state.FormatYAML)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if _, err := store.Save(context.Background(), state.Ref{Name: "cfg"}, samplePluginConfig(), state.Meta{}); err != nil {
		t.Fatalf("save: %v", err)
	}
	raw, err := os.ReadFile(filepath.Join(dir, "cfg.yaml"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	text := string(raw)
	if strings.Index(text, "Plugin Settings") > strings.Index(text, "Protected Items") {
		t.Fatalf("expected struct field order preserved:\n%s", text)
	}
	if strings.Contains(text, "{") {
		t.Fatalf("expected block style yaml:\n%s", text)
	}
}

func TestFileStoreDecodeErrors(t *testing.T) {
	cases := []struct {
		name   string
		format state.Format
		body   string
	}{
		{name: "broken json", format: state.FormatJSON, body: `{"Protected Items": [`},
		{name: "wrong type json", format: state.FormatJSON, body: `{"Protected Items": "fish.cooked"}`},
		{name: "broken yaml", format: state.FormatYAML, body: "Protected Items: [\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			if err := os.WriteFile(filepath.Join(dir, "cfg."+string(tc.format)), []byte(tc.body), 0o644); err != nil {
				t.Fatalf("write: %v", err)
			}
			store, err := state.NewFileStore[pluginConfig](dir, tc.format)
			if err != nil {
				t.Fatalf("new store: %v", err)
			}
			_, _, ok, err := store.Load(context.Background(), state.Ref{Name: "cfg"})
			if ok || !errors.Is(err, state.ErrDecode) {
				t.Fatalf("expected ErrDecode, got ok=%v err=%v", ok, err)
			}
		})
	}
}

func TestFileStoreCustomDecoder(t *testing.T) {
	dir := t.TempDir()
	body := `{"Protected Items": [" fish.cooked "]}`
	if err := os.WriteFile(filepath.Join(dir, "cfg.json"), []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	decoder := hydrate.NewDecoder[pluginConfig](
		hydrate.WithPostHook[pluginConfig](func(_ hydrate.Context, cfg *pluginConfig) error {
			for i, item := range cfg.Protected {
				cfg.Protected[i] = strings.TrimSpace(item)
			}
			return nil
		}),
	)
	store, err := state.NewFileStore[pluginConfig](dir, state.FormatJSON, state.WithDecoder(decoder))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	got, _, ok, err := store.Load(context.Background(), state.Ref{Name: "cfg"})
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if got.Protected[0] != "fish.cooked" {
		t.Fatalf("expected post hook applied, got %q", got.Protected[0])
	}
}

func TestParseFormat(t *testing.T) {
	for input, want := range map[string]state.Format{"": state.FormatJSON, "JSON": state.FormatJSON, "yml": state.FormatYAML, "yaml": state.FormatYAML} {
		got, err := state.ParseFormat(input)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q) = %q, %v", input, got, err)
		}
	}
	if _, err := state.ParseFormat("toml"); err == nil {
		t.Fatalf("expected error for toml")
	}
}
