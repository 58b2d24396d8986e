package burnguard

import (
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-burnguard/pkg/activity"
)

// ValuePair is the low/high threshold pair held by a live handle.
type ValuePair struct {
	Low  int `json:"low"`
	High int `json:"high"`
}

// DisabledPair is the override written to disable burning.
var DisabledPair = ValuePair{Low: -1, High: -1}

func (p ValuePair) String() string {
	return fmt.Sprintf("(%d,%d)", p.Low, p.High)
}

// Handle is a reference to a live, mutable ValuePair owned by the host.
type Handle interface {
	Pair() ValuePair
	SetPair(ValuePair)
}

// LookupFunc resolves an identifier to a live handle. The bool reports whether
// the identifier exists in the host environment.
type LookupFunc func(id string) (Handle, bool)

func (fn LookupFunc) find(id string) (Handle, bool) {
	if fn == nil {
		return nil, false
	}
	handle, ok := fn(id)
	if !ok || handle == nil {
		return nil, false
	}
	return handle, true
}

// Actor identifies whoever triggered a use event.
type Actor struct {
	ID       string         `json:"id"`
	Name     string         `json:"name,omitempty"`
	Locale   string         `json:"locale,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

func (a Actor) binding() map[string]any {
	binding := map[string]any{
		"id":     a.ID,
		"name":   a.Name,
		"locale": a.Locale,
	}
	if len(a.Metadata) > 0 {
		binding["metadata"] = copyMetadata(a.Metadata)
	}
	return binding
}

// AuthorizeFunc decides whether actor may receive the override for id.
type AuthorizeFunc func(id string, actor Actor) bool

// AllOf combines predicates; every non-nil predicate must allow. With no
// non-nil predicates the result denies.
func AllOf(predicates ...AuthorizeFunc) AuthorizeFunc {
	filtered := make([]AuthorizeFunc, 0, len(predicates))
	for _, p := range predicates {
		if p != nil {
			filtered = append(filtered, p)
		}
	}
	return func(id string, actor Actor) bool {
		if len(filtered) == 0 {
			return false
		}
		for _, p := range filtered {
			if !p(id, actor) {
				return false
			}
		}
		return true
	}
}

// Mode selects when the override value is written.
type Mode string

const (
	// ModeGlobal writes the override for every resolved target on Activate.
	ModeGlobal Mode = "global"
	// ModeIndividual records originals on Activate and writes per use event.
	ModeIndividual Mode = "individual"
)

// ParseMode converts a configured string into a Mode. Anything other than
// "individual" is treated as global.
func ParseMode(value string) Mode {
	if strings.EqualFold(strings.TrimSpace(value), string(ModeIndividual)) {
		return ModeIndividual
	}
	return ModeGlobal
}

func (m Mode) String() string {
	if m == "" {
		return string(ModeGlobal)
	}
	return string(m)
}

// ActivationReport summarises one Activate pass.
type ActivationReport struct {
	// Applied counts identifiers newly recorded during this pass.
	Applied int `json:"applied"`
	// Deferred counts newly recorded identifiers whose override was withheld.
	Deferred int `json:"deferred"`
	// Skipped counts identifiers that already had a recorded original.
	Skipped int `json:"skipped"`
	Missing int `json:"missing"`
}

// RestorationReport summarises one Deactivate pass.
type RestorationReport struct {
	Restored int `json:"restored"`
	Missing  int `json:"missing"`
}

// ApplyOutcome describes the result of ApplyIfAuthorized.
type ApplyOutcome int

const (
	ApplyApplied ApplyOutcome = iota
	ApplyDenied
	ApplyUntracked
	ApplyMissing
)

func (o ApplyOutcome) String() string {
	switch o {
	case ApplyApplied:
		return "applied"
	case ApplyDenied:
		return "denied"
	case ApplyUntracked:
		return "untracked"
	case ApplyMissing:
		return "missing"
	default:
		return "unknown"
	}
}

// LedgerState is the lifecycle state of a Ledger.
type LedgerState int

const (
	StateEmpty LedgerState = iota
	StatePopulated
)

func (s LedgerState) String() string {
	if s == StatePopulated {
		return "populated"
	}
	return "empty"
}

// Option configures a Ledger.
type Option func(*ledgerConfig)

type ledgerConfig struct {
	logger          LedgerLogger
	activityHooks   activity.Hooks
	activityChannel string
	now             func() time.Time
}

func applyOptions(opts []Option) ledgerConfig {
	cfg := ledgerConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.logger == nil {
		cfg.logger = noopLedgerLogger{}
	}
	if cfg.now == nil {
		cfg.now = time.Now
	}
	return cfg
}

// WithClock overrides the time source used for log and activity timestamps.
func WithClock(now func() time.Time) Option {
	return func(cfg *ledgerConfig) {
		cfg.now = now
	}
}

func copyMetadata(origin map[string]any) map[string]any {
	if len(origin) == 0 {
		return nil
	}
	out := make(map[string]any, len(origin))
	for key, value := range origin {
		out[key] = value
	}
	return out
}
