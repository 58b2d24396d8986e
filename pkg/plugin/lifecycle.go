package plugin

import (
	"context"
	"fmt"

	burnguard "github.com/goliatone/go-burnguard"
	"github.com/goliatone/go-burnguard/pkg/authz"
	"github.com/goliatone/go-burnguard/pkg/config"
	"github.com/goliatone/go-burnguard/pkg/i18n"
)

// Init registers the plugin permissions.
func (p *Plugin) Init() error {
	for _, perm := range []string{authz.PermissionUse, authz.PermissionAdmin} {
		if err := p.authz.RegisterPermission(perm); err != nil {
			return fmt.Errorf("plugin: register %s: %w", perm, err)
		}
	}
	return nil
}

// OnServerInitialized loads the configuration and protects the configured
// items. A configured authorization rule that fails to compile denies every
// use event and is reported as an error after activation.
func (p *Plugin) OnServerInitialized(ctx context.Context) error {
	if err := p.loadConfig(ctx); err != nil {
		return err
	}
	p.CheckForConflictingPlugins()
	report, err := p.activate(ctx)

	p.mu.Lock()
	p.loaded = true
	p.mu.Unlock()

	if p.logging() {
		p.logger.Info("burnedbegone loaded",
			"version", Version,
			"protected", p.ledger.Len(),
			"mode", p.Config().Mode().String(),
			"missing", report.Missing,
		)
	}
	return err
}

// Unload restores every recorded original.
func (p *Plugin) Unload(ctx context.Context) burnguard.RestorationReport {
	p.mu.Lock()
	p.loaded = false
	p.mu.Unlock()

	if p.ledger.State() == burnguard.StateEmpty {
		return burnguard.RestorationReport{}
	}
	report := p.ledger.Deactivate(ctx, p.lookup)

	if p.logging() {
		p.logger.Info("burnedbegone restored original temperatures", "restored", report.Restored, "missing", report.Missing)
	}
	return report
}

// Reload re-reads the configuration and activates any newly listed items.
// Items already recorded keep their first original. When the effective mode
// changes, every tracked item is restored first and then activated again under
// the new mode.
func (p *Plugin) Reload(ctx context.Context) error {
	previous := p.Config().Mode()
	if err := p.loadConfig(ctx); err != nil {
		return err
	}
	if current := p.Config().Mode(); current != previous && p.ledger.State() == burnguard.StatePopulated {
		report := p.ledger.Deactivate(ctx, p.lookup)
		if p.logging() {
			p.logger.Info("burnedbegone permission mode changed",
				"from", previous.String(),
				"to", current.String(),
				"restored", report.Restored,
				"missing", report.Missing,
			)
		}
	}
	_, err := p.activate(ctx)
	return err
}

// OnItemCook applies the override for one cook event in individual mode. The
// bool reports whether the event was considered at all.
func (p *Plugin) OnItemCook(ctx context.Context, shortname, ownerID string) (burnguard.ApplyOutcome, bool) {
	p.mu.RLock()
	perUse := p.cfg.PerUse()
	authorize := p.authorize
	p.mu.RUnlock()

	if !perUse {
		return burnguard.ApplyUntracked, false
	}
	actor, ok := p.host.Player(ownerID)
	if !ok {
		return burnguard.ApplyDenied, true
	}
	return p.ledger.ApplyIfAuthorized(ctx, shortname, actor, p.lookup, burnguard.DisabledPair, authorize), true
}

func (p *Plugin) loadConfig(ctx context.Context) error {
	loader := config.Loader{Store: p.store, Logger: p.logger, Name: Name}
	cfg, res, err := loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("plugin: load config: %w", err)
	}

	p.mu.Lock()
	p.cfg = cfg
	p.mu.Unlock()

	settings := cfg.Setting()
	if settings.EnableLogging && res.Updated {
		p.logger.Info("burnedbegone configuration updated with new fields", "filled", res.Filled)
	}
	if settings.AutoCreateLanguageFiles {
		p.registerTranslations()
	}
	return nil
}

func (p *Plugin) registerTranslations() {
	updated := 0
	for lang, messages := range i18n.Translations() {
		if err := p.catalog.Register(lang, messages); err != nil {
			p.logger.Error("burnedbegone language setup failed", "lang", lang, "error", err)
			continue
		}
		updated++
	}
	if updated > 0 && p.logging() {
		p.logger.Info("burnedbegone updated language files", "languages", updated)
	}
}

func (p *Plugin) activate(ctx context.Context) (burnguard.ActivationReport, error) {
	cfg := p.Config()
	report := p.ledger.Activate(ctx, cfg.Targets(), p.lookup, burnguard.DisabledPair, cfg.Mode())
	if report.Missing > 0 && cfg.Setting().EnableLogging {
		p.logger.Warn("burnedbegone items failed to load (may not exist in this version)", "count", report.Missing)
	}

	authorize, err := p.buildAuthorize(cfg)
	p.mu.Lock()
	p.authorize = authorize
	p.mu.Unlock()
	return report, err
}

func (p *Plugin) buildAuthorize(cfg config.Configuration) (burnguard.AuthorizeFunc, error) {
	permitted := func(_ string, actor burnguard.Actor) bool {
		return p.authz.UserHasPermission(actor.ID, authz.PermissionUse)
	}
	settings := cfg.Setting()
	if settings.AuthorizationRule == "" {
		return permitted, nil
	}

	evaluator, err := burnguard.NewEvaluator(settings.RuleEngine, p.evaluatorOpts...)
	if err != nil {
		return denyAll, fmt.Errorf("plugin: rule engine: %w", err)
	}
	opts := []burnguard.RuleOption{
		burnguard.WithRuleMode(cfg.Mode()),
		burnguard.WithRuleOriginals(p.ledger.Originals()),
		burnguard.WithEvaluatorLogger(burnguard.EvaluatorLoggerFunc(p.logEvaluation)),
	}
	rule, err := burnguard.RuleAuthorizer(evaluator, settings.AuthorizationRule, append(opts, p.ruleOpts...)...)
	if err != nil {
		p.logger.Error("burnedbegone authorization rule rejected", "rule", settings.AuthorizationRule, "error", err)
		return denyAll, fmt.Errorf("plugin: authorization rule: %w", err)
	}
	return burnguard.AllOf(permitted, rule), nil
}

func (p *Plugin) logEvaluation(event burnguard.EvaluatorLogEvent) {
	if event.Err == nil {
		return
	}
	p.logger.Warn("burnedbegone rule evaluation failed",
		"engine", event.Engine,
		"identifier", event.Identifier,
		"actor", event.ActorID,
		"error", event.Err,
	)
}

func denyAll(string, burnguard.Actor) bool { return false }
