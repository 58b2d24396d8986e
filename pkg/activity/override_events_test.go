package activity

import (
	"context"
	"testing"
)

func TestBuildOverrideAppliedEventIncludesValues(t *testing.T) {
	meta := map[string]any{"plugin": "BurnedBegone"}
	event := BuildOverrideAppliedEvent(OverrideEventInput{
		ActorID:    " 42 ",
		Identifier: " deermeat.cooked ",
		Operation:  "activate",
		Metadata:   meta,
		OldValue:   map[string]int{"low": 40, "high": 120},
		NewValue:   map[string]int{"low": -1, "high": -1},
	})

	if event.Verb != VerbOverrideApplied {
		t.Fatalf("expected verb %s, got %s", VerbOverrideApplied, event.Verb)
	}
	if event.ObjectType != ObjectTypeItem || event.ObjectID != "deermeat.cooked" {
		t.Fatalf("unexpected object fields: %+v", event)
	}
	if event.ActorID != "42" {
		t.Fatalf("expected trimmed actor, got %q", event.ActorID)
	}
	if event.Metadata["operation"] != "activate" || event.Metadata["plugin"] != "BurnedBegone" {
		t.Fatalf("unexpected metadata: %+v", event.Metadata)
	}
	if old, ok := event.Metadata["old_value"].(map[string]int); !ok || old["low"] != 40 {
		t.Fatalf("expected old_value, got %v", event.Metadata["old_value"])
	}
	event.Metadata["plugin"] = "changed"
	if meta["plugin"] != "BurnedBegone" {
		t.Fatalf("expected input metadata untouched")
	}
}

func TestBuildOverrideMissedEventFallsBackObjectID(t *testing.T) {
	event := BuildOverrideMissedEvent(OverrideEventInput{})
	if event.ObjectID != ObjectTypeItem {
		t.Fatalf("expected fallback object id %q, got %q", ObjectTypeItem, event.ObjectID)
	}
	if event.Metadata != nil {
		t.Fatalf("expected no metadata, got %+v", event.Metadata)
	}
}

func TestOverrideEventsWorkWithHooks(t *testing.T) {
	capture := &CaptureHook{}
	hooks := Hooks{capture}

	builders := []func(OverrideEventInput) Event{
		BuildOverrideAppliedEvent,
		BuildOverrideDeferredEvent,
		BuildOverrideRestoredEvent,
		BuildOverrideMissedEvent,
		BuildOverrideDeniedEvent,
	}
	for _, build := range builders {
		if err := hooks.Notify(context.Background(), build(OverrideEventInput{Identifier: "fish.cooked"})); err != nil {
			t.Fatalf("notify: %v", err)
		}
	}

	want := []string{VerbOverrideApplied, VerbOverrideDeferred, VerbOverrideRestored, VerbOverrideMissed, VerbOverrideDenied}
	got := capture.Verbs()
	if len(got) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event[%d] expected %s, got %s", i, want[i], got[i])
		}
	}
}
