package memhost

import (
	"slices"
	"testing"

	burnguard "github.com/goliatone/go-burnguard"
	"github.com/goliatone/go-burnguard/pkg/plugin"
)

func TestHostLookupAndMutation(t *testing.T) {
	h := New(map[string]burnguard.ValuePair{"fish.cooked": {Low: 40, High: 120}, "chicken.cooked": {Low: 30, High: 90}})

	handle, ok := h.Cookable("fish.cooked")
	if !ok {
		t.Fatal("expected fish.cooked")
	}
	handle.SetPair(burnguard.DisabledPair)
	if got := h.Temperatures()["fish.cooked"]; got != burnguard.DisabledPair {
		t.Fatalf("expected write through handle, got %v", got)
	}

	h.Remove("fish.cooked")
	if _, ok := h.Cookable("fish.cooked"); ok {
		t.Fatal("expected removed item to miss")
	}
	if got := h.Items(); !slices.Equal(got, []string{"chicken.cooked"}) {
		t.Fatalf("unexpected items %v", got)
	}
}

func TestHostPlayersAndPlugins(t *testing.T) {
	h := New(nil)
	h.Join(burnguard.Actor{ID: "1", Name: "ann"})
	if actor, ok := h.Player("1"); !ok || actor.Name != "ann" {
		t.Fatalf("unexpected player %+v %v", actor, ok)
	}
	h.Leave("1")
	if _, ok := h.Player("1"); ok {
		t.Fatal("expected player to leave")
	}

	h.Install(plugin.Info{Name: "UnburnableMeat", Version: "1.0.0"})
	loaded := h.Loaded()
	loaded[0].Name = "mutated"
	if h.Loaded()[0].Name != "UnburnableMeat" {
		t.Fatal("Loaded must return a copy")
	}
}
