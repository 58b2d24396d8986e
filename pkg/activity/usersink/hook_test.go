package usersink_test

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-burnguard/pkg/activity"
	"github.com/goliatone/go-burnguard/pkg/activity/usersink"
	usertypes "github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"
)

type recordingSink struct {
	records []usertypes.ActivityRecord
	err     error
}

func (s *recordingSink) Log(_ context.Context, record usertypes.ActivityRecord) error {
	s.records = append(s.records, record)
	return s.err
}

func TestHookNotifyMapsEvent(t *testing.T) {
	sink := &recordingSink{}
	tenant := uuid.New()
	hook := usersink.Hook{Sink: sink, TenantID: tenant}

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	actorID := uuid.New()

	event := activity.BuildOverrideAppliedEvent(activity.OverrideEventInput{
		ActorID:    actorID.String(),
		Identifier: "wolfmeat.cooked",
		Operation:  "apply",
		Channel:    "burnguard",
	})
	event.OccurredAt = now

	if err := hook.Notify(context.Background(), event); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if len(sink.records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(sink.records))
	}
	record := sink.records[0]
	if record.ActorID != actorID || record.UserID != actorID {
		t.Fatalf("expected actor %s got %s/%s", actorID, record.ActorID, record.UserID)
	}
	if record.TenantID != tenant {
		t.Fatalf("expected tenant %s got %s", tenant, record.TenantID)
	}
	if record.Verb != activity.VerbOverrideApplied || record.ObjectType != "item" || record.ObjectID != "wolfmeat.cooked" {
		t.Fatalf("unexpected record payload: %+v", record)
	}
	if record.Channel != "burnguard" {
		t.Fatalf("expected channel burnguard got %q", record.Channel)
	}
	if !record.OccurredAt.Equal(now) {
		t.Fatalf("expected occurred_at %v got %v", now, record.OccurredAt)
	}
	if record.Data["operation"] != "apply" {
		t.Fatalf("expected metadata passthrough got %v", record.Data)
	}
	if _, ok := record.Data["actor_ref"]; ok {
		t.Fatalf("expected no actor_ref for uuid actors")
	}
}

func TestHookNotifyKeepsPlatformActorRef(t *testing.T) {
	sink := &recordingSink{}
	hook := usersink.Hook{Sink: sink}

	err := hook.Notify(context.Background(), activity.Event{
		Verb:       activity.VerbOverrideApplied,
		ActorID:    "76561198000000001",
		ObjectType: "item",
		ObjectID:   "fish.cooked",
	})
	if err != nil {
		t.Fatalf("notify: %v", err)
	}
	record := sink.records[0]
	if record.ActorID != uuid.Nil {
		t.Fatalf("expected nil actor uuid, got %s", record.ActorID)
	}
	if record.Data["actor_ref"] != "76561198000000001" {
		t.Fatalf("expected actor_ref, got %v", record.Data["actor_ref"])
	}
	if record.OccurredAt.IsZero() {
		t.Fatalf("expected occurred_at to be defaulted")
	}
}

func TestHookNotifySkipsMissingVerb(t *testing.T) {
	sink := &recordingSink{}
	hook := usersink.Hook{Sink: sink}

	_ = hook.Notify(context.Background(), activity.Event{})

	if len(sink.records) != 0 {
		t.Fatalf("expected no records for empty event, got %d", len(sink.records))
	}
}
