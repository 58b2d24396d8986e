package plugin

import (
	"context"

	burnguard "github.com/goliatone/go-burnguard"
	"github.com/goliatone/go-burnguard/pkg/config"
)

// LegacyName is the older plugin that protected a fixed list of meats.
const LegacyName = "UnburnableMeat"

// LegacyPlugin protects the fixed UnburnableMeat list globally with no
// configuration or permissions.
type LegacyPlugin struct {
	host   Host
	ledger *burnguard.Ledger
	logger Logger
}

// NewLegacy returns the fixed-list preset. A nil logger discards log lines.
func NewLegacy(host Host, logger Logger, opts ...burnguard.Option) *LegacyPlugin {
	return &LegacyPlugin{host: host, ledger: burnguard.NewLedger(opts...), logger: logger}
}

// OnServerInitialized disables burning for every listed item.
func (l *LegacyPlugin) OnServerInitialized(ctx context.Context) burnguard.ActivationReport {
	report := l.ledger.Activate(ctx, config.UnburnableDefaults(), l.lookup, burnguard.DisabledPair, burnguard.ModeGlobal)
	if l.logger != nil {
		l.logger.Info("unburnablemeat loaded", "protected", l.ledger.Len(), "missing", report.Missing)
	}
	return report
}

// Unload restores the recorded originals.
func (l *LegacyPlugin) Unload(ctx context.Context) burnguard.RestorationReport {
	return l.ledger.Deactivate(ctx, l.lookup)
}

// Ledger exposes the override ledger.
func (l *LegacyPlugin) Ledger() *burnguard.Ledger {
	return l.ledger
}

func (l *LegacyPlugin) lookup(id string) (burnguard.Handle, bool) {
	if l.host == nil {
		return nil, false
	}
	return l.host.Cookable(id)
}
