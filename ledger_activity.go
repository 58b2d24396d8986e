package burnguard

import (
	"context"

	"github.com/goliatone/go-burnguard/pkg/activity"
)

// WithActivityHooks attaches activity hooks notified for every per-identifier
// outcome. Hooks are cloned and nil entries dropped. Hooks run while the ledger
// lock is held and must not call back into the ledger.
func WithActivityHooks(hooks activity.Hooks) Option {
	normalized := hooks.Clone()
	return func(cfg *ledgerConfig) {
		cfg.activityHooks = normalized
	}
}

// WithActivityChannel overrides the channel stamped on emitted events.
func WithActivityChannel(channel string) Option {
	return func(cfg *ledgerConfig) {
		cfg.activityChannel = channel
	}
}

// ActivityHooks returns a copy of the configured hooks.
func (l *Ledger) ActivityHooks() activity.Hooks {
	if l == nil {
		return nil
	}
	return l.cfg.activityHooks.Clone()
}

type ledgerEvent struct {
	op       LedgerOp
	id       string
	actor    Actor
	outcome  string
	original ValuePair
	value    ValuePair
}

func (l *Ledger) record(ctx context.Context, ev ledgerEvent) {
	at := l.cfg.now()
	logEvent := LedgerLogEvent{
		Op:         ev.op,
		Identifier: ev.id,
		ActorID:    ev.actor.ID,
		Outcome:    ev.outcome,
		Original:   ev.original,
		Value:      ev.value,
		At:         at,
	}

	if l.emitter.Enabled() {
		if event, ok := activityEvent(ev); ok {
			event.OccurredAt = at
			logEvent.Err = l.emitter.Emit(ctx, event)
		}
	}

	l.cfg.logger.LogLedger(logEvent)
}

func activityEvent(ev ledgerEvent) (activity.Event, bool) {
	input := activity.OverrideEventInput{
		ActorID:    ev.actor.ID,
		Identifier: ev.id,
		Operation:  string(ev.op),
		OldValue:   pairValue(ev.original),
	}
	switch ev.outcome {
	case "applied":
		input.NewValue = pairValue(ev.value)
		return activity.BuildOverrideAppliedEvent(input), true
	case "deferred":
		return activity.BuildOverrideDeferredEvent(input), true
	case "restored":
		input.NewValue = pairValue(ev.value)
		return activity.BuildOverrideRestoredEvent(input), true
	case "missing":
		if ev.op == OpActivate {
			input.OldValue = nil
		}
		return activity.BuildOverrideMissedEvent(input), true
	case "denied":
		return activity.BuildOverrideDeniedEvent(input), true
	default:
		return activity.Event{}, false
	}
}

func pairValue(p ValuePair) map[string]int {
	return map[string]int{"low": p.Low, "high": p.High}
}
