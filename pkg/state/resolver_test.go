package state_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"testing"

	"github.com/goliatone/go-burnguard/pkg/state"
)

type recordingLogger struct {
	messages []string
}

func (l *recordingLogger) Warn(msg string, args ...any) {
	l.messages = append(l.messages, fmt.Sprint(append([]any{msg}, args...)...))
}

func TestResolveWithDefaultsCreatesMissingDocument(t *testing.T) {
	store := state.NewMemoryStore[pluginConfig]()
	resolver := state.Resolver[pluginConfig]{Store: store}
	ctx := context.Background()
	ref := state.Ref{Name: "BurnedBegone"}

	got, res, err := resolver.ResolveWithDefaults(ctx, ref, samplePluginConfig())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !res.Created || res.FellBack || res.Updated || !res.Saved() {
		t.Fatalf("unexpected resolution %+v", res)
	}
	if !reflect.DeepEqual(got, samplePluginConfig()) {
		t.Fatalf("expected defaults, got %#v", got)
	}
	if _, _, ok, _ := store.Load(ctx, ref); !ok {
		t.Fatalf("defaults were not saved")
	}
}

func TestResolveWithDefaultsFillsMissingSettings(t *testing.T) {
	store := state.NewMemoryStore[pluginConfig]()
	ctx := context.Background()
	ref := state.Ref{Name: "BurnedBegone"}
	if _, err := store.Save(ctx, ref, pluginConfig{Settings: &pluginSettings{Logging: false}}, state.Meta{}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	resolver := state.Resolver[pluginConfig]{Store: store}
	got, res, err := resolver.ResolveWithDefaults(ctx, ref, samplePluginConfig())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !res.Updated {
		t.Fatalf("expected updated resolution, got %+v", res)
	}
	if want := []string{"Plugin Settings.Permission Mode", "Protected Items"}; !slices.Equal(res.Filled, want) {
		t.Fatalf("expected filled %v, got %v", want, res.Filled)
	}
	if got.Settings.Logging {
		t.Fatalf("explicit false setting must survive")
	}
	if got.Settings.Mode != "global" || len(got.Protected) != 2 {
		t.Fatalf("expected defaults filled, got %#v", got)
	}

	_, res, err = resolver.ResolveWithDefaults(ctx, ref, samplePluginConfig())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if res.Saved() {
		t.Fatalf("complete document must not be saved again, got %+v", res)
	}
}

func TestResolveWithDefaultsFallsBackOnDecodeError(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "BurnedBegone.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	store, err := state.NewFileStore[pluginConfig](dir, state.FormatJSON)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	logger := &recordingLogger{}
	resolver := state.Resolver[pluginConfig]{Store: store, Logger: logger}

	got, res, err := resolver.ResolveWithDefaults(context.Background(), state.Ref{Name: "BurnedBegone"}, samplePluginConfig())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !res.FellBack || !errors.Is(res.Err, state.ErrDecode) {
		t.Fatalf("expected fallback resolution, got %+v", res)
	}
	if !reflect.DeepEqual(got, samplePluginConfig()) {
		t.Fatalf("expected defaults, got %#v", got)
	}
	if len(logger.messages) != 1 {
		t.Fatalf("expected one warning, got %v", logger.messages)
	}

	_, _, ok, err := store.Load(context.Background(), state.Ref{Name: "BurnedBegone"})
	if err != nil || !ok {
		t.Fatalf("defaults should have replaced the broken file: ok=%v err=%v", ok, err)
	}
}

func TestResolveWithDefaultsPropagatesLoadErrors(t *testing.T) {
	boom := errors.New("disk on fire")
	resolver := state.Resolver[pluginConfig]{Store: &mutateStore[pluginConfig]{loadErr: boom}}
	_, _, err := resolver.ResolveWithDefaults(context.Background(), state.Ref{Name: "x"}, samplePluginConfig())
	if !errors.Is(err, boom) {
		t.Fatalf("expected load error, got %v", err)
	}
}
