package activity

import "strings"

const (
	VerbOverrideApplied  = "burnguard.override.applied"
	VerbOverrideDeferred = "burnguard.override.deferred"
	VerbOverrideRestored = "burnguard.override.restored"
	VerbOverrideMissed   = "burnguard.override.missed"
	VerbOverrideDenied   = "burnguard.override.denied"

	// ObjectTypeItem is the object type used for overridden item definitions.
	ObjectTypeItem = "item"
)

// OverrideEventInput describes the common fields for override lifecycle events.
type OverrideEventInput struct {
	ActorID    string
	Identifier string
	Operation  string
	Channel    string
	Metadata   map[string]any
	OldValue   any
	NewValue   any
}

// BuildOverrideAppliedEvent constructs an event for a written override.
func BuildOverrideAppliedEvent(input OverrideEventInput) Event {
	return buildOverrideEvent(VerbOverrideApplied, input)
}

// BuildOverrideDeferredEvent constructs an event for an original recorded
// without writing the override.
func BuildOverrideDeferredEvent(input OverrideEventInput) Event {
	return buildOverrideEvent(VerbOverrideDeferred, input)
}

// BuildOverrideRestoredEvent constructs an event for a restored original.
func BuildOverrideRestoredEvent(input OverrideEventInput) Event {
	return buildOverrideEvent(VerbOverrideRestored, input)
}

// BuildOverrideMissedEvent constructs an event for an identifier the host
// could not resolve.
func BuildOverrideMissedEvent(input OverrideEventInput) Event {
	return buildOverrideEvent(VerbOverrideMissed, input)
}

// BuildOverrideDeniedEvent constructs an event for a refused per-use override.
func BuildOverrideDeniedEvent(input OverrideEventInput) Event {
	return buildOverrideEvent(VerbOverrideDenied, input)
}

func buildOverrideEvent(verb string, input OverrideEventInput) Event {
	metadata := cloneMap(input.Metadata)
	if op := strings.TrimSpace(input.Operation); op != "" {
		metadata = ensureMetadata(metadata)
		metadata["operation"] = op
	}
	if input.OldValue != nil {
		metadata = ensureMetadata(metadata)
		metadata["old_value"] = input.OldValue
	}
	if input.NewValue != nil {
		metadata = ensureMetadata(metadata)
		metadata["new_value"] = input.NewValue
	}

	objectID := strings.TrimSpace(input.Identifier)
	if objectID == "" {
		objectID = ObjectTypeItem
	}

	return Event{
		Verb:       verb,
		ActorID:    strings.TrimSpace(input.ActorID),
		ObjectType: ObjectTypeItem,
		ObjectID:   objectID,
		Channel:    strings.TrimSpace(input.Channel),
		Metadata:   metadata,
	}
}

func ensureMetadata(meta map[string]any) map[string]any {
	if meta == nil {
		return map[string]any{}
	}
	return meta
}
