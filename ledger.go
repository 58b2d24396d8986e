package burnguard

import (
	"context"
	"sync"

	"github.com/goliatone/go-burnguard/pkg/activity"
)

// Ledger records the original ValuePair of every identifier it overrides so
// that Deactivate can put each one back exactly once. An original is recorded
// at most once per lifetime; repeated Activate calls never replace it.
//
// A Ledger is safe for concurrent use; a single mutex serializes Activate,
// ApplyIfAuthorized and Deactivate.
type Ledger struct {
	mu        sync.Mutex
	originals map[string]ValuePair
	order     []string
	cfg       ledgerConfig
	emitter   *activity.Emitter
}

// NewLedger returns an empty ledger.
func NewLedger(opts ...Option) *Ledger {
	cfg := applyOptions(opts)
	return &Ledger{
		originals: map[string]ValuePair{},
		cfg:       cfg,
		emitter: activity.NewEmitter(cfg.activityHooks, activity.Config{
			Enabled: len(cfg.activityHooks) > 0,
			Channel: cfg.activityChannel,
		}),
	}
}

// Activate records originals for every target that resolves and is not yet
// tracked. In global mode the override is written immediately; in individual
// mode it is withheld until ApplyIfAuthorized.
func (l *Ledger) Activate(ctx context.Context, targets []string, lookup LookupFunc, override ValuePair, mode Mode) ActivationReport {
	l.mu.Lock()
	defer l.mu.Unlock()

	var report ActivationReport
	for _, id := range targets {
		handle, ok := lookup.find(id)
		if !ok {
			report.Missing++
			l.record(ctx, ledgerEvent{op: OpActivate, id: id, outcome: "missing"})
			continue
		}
		if _, tracked := l.originals[id]; tracked {
			report.Skipped++
			continue
		}

		original := handle.Pair()
		l.originals[id] = original
		l.order = append(l.order, id)
		report.Applied++

		if mode == ModeIndividual {
			report.Deferred++
			l.record(ctx, ledgerEvent{op: OpActivate, id: id, outcome: "deferred", original: original})
			continue
		}
		handle.SetPair(override)
		l.record(ctx, ledgerEvent{op: OpActivate, id: id, outcome: "applied", original: original, value: override})
	}
	return report
}

// ApplyIfAuthorized writes override for a single tracked identifier when
// authorize allows actor. Untracked identifiers are never written, which keeps
// every written handle restorable. A nil authorize denies.
func (l *Ledger) ApplyIfAuthorized(ctx context.Context, id string, actor Actor, lookup LookupFunc, override ValuePair, authorize AuthorizeFunc) ApplyOutcome {
	l.mu.Lock()
	defer l.mu.Unlock()

	original, tracked := l.originals[id]
	if !tracked {
		return ApplyUntracked
	}
	if authorize == nil || !authorize(id, actor) {
		l.record(ctx, ledgerEvent{op: OpApply, id: id, actor: actor, outcome: "denied", original: original})
		return ApplyDenied
	}
	handle, ok := lookup.find(id)
	if !ok {
		l.record(ctx, ledgerEvent{op: OpApply, id: id, actor: actor, outcome: "missing", original: original})
		return ApplyMissing
	}
	handle.SetPair(override)
	l.record(ctx, ledgerEvent{op: OpApply, id: id, actor: actor, outcome: "applied", original: original, value: override})
	return ApplyApplied
}

// Deactivate writes every recorded original back through lookup and empties
// the ledger. Identifiers that no longer resolve are counted as missing.
func (l *Ledger) Deactivate(ctx context.Context, lookup LookupFunc) RestorationReport {
	l.mu.Lock()
	defer l.mu.Unlock()

	var report RestorationReport
	for _, id := range l.order {
		original := l.originals[id]
		handle, ok := lookup.find(id)
		if !ok {
			report.Missing++
			l.record(ctx, ledgerEvent{op: OpDeactivate, id: id, outcome: "missing", original: original})
			continue
		}
		handle.SetPair(original)
		report.Restored++
		l.record(ctx, ledgerEvent{op: OpDeactivate, id: id, outcome: "restored", original: original, value: original})
	}

	l.originals = map[string]ValuePair{}
	l.order = nil
	return report
}

// State reports whether the ledger holds any entries.
func (l *Ledger) State() LedgerState {
	if l.Len() == 0 {
		return StateEmpty
	}
	return StatePopulated
}

// Len returns the number of recorded originals.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.originals)
}

// Tracked reports whether id has a recorded original.
func (l *Ledger) Tracked(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.originals[id]
	return ok
}

// Original returns the recorded original for id.
func (l *Ledger) Original(id string) (ValuePair, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	pair, ok := l.originals[id]
	return pair, ok
}

// Originals returns a copy of the recorded originals.
func (l *Ledger) Originals() map[string]ValuePair {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make(map[string]ValuePair, len(l.originals))
	for id, pair := range l.originals {
		out[id] = pair
	}
	return out
}

// Identifiers returns tracked identifiers in the order they were recorded.
func (l *Ledger) Identifiers() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.order...)
}
