package plugin

import (
	"fmt"
	"log/slog"
	"sync"

	burnguard "github.com/goliatone/go-burnguard"
	"github.com/goliatone/go-burnguard/pkg/authz"
	"github.com/goliatone/go-burnguard/pkg/commands"
	"github.com/goliatone/go-burnguard/pkg/config"
	"github.com/goliatone/go-burnguard/pkg/i18n"
	"github.com/goliatone/go-burnguard/pkg/state"
)

const (
	Name    = "BurnedBegone"
	Title   = "Burned Begone"
	Version = "1.3.0"
)

// Host is the game side the plugin talks to.
type Host interface {
	// Cookable resolves an item shortname to its live temperature pair.
	Cookable(shortname string) (burnguard.Handle, bool)
	// Player resolves an owner id to a connected player.
	Player(id string) (burnguard.Actor, bool)
}

// Info describes a loaded plugin.
type Info struct {
	Name    string
	Title   string
	Version string
}

// Registry lists the plugins currently loaded by the host.
type Registry interface {
	Loaded() []Info
}

// RegistryFunc adapts a function to Registry.
type RegistryFunc func() []Info

// Loaded implements Registry.
func (f RegistryFunc) Loaded() []Info {
	if f == nil {
		return nil
	}
	return f()
}

// Logger receives plugin log lines. *slog.Logger satisfies it.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Plugin wires configuration, permissions, messages and the override ledger
// to a host.
type Plugin struct {
	host     Host
	registry Registry
	store    state.Store[config.Configuration]
	authz    *authz.Authorizer
	catalog  *i18n.Catalog
	ledger   *burnguard.Ledger
	logger   Logger
	router   *commands.Router
	sub      *commands.Router

	evaluatorOpts []burnguard.EvaluatorOption
	ruleOpts      []burnguard.RuleOption
	ledgerOpts    []burnguard.Option

	mu        sync.RWMutex
	cfg       config.Configuration
	authorize burnguard.AuthorizeFunc
	loaded    bool
}

// Option configures a Plugin.
type Option func(*Plugin)

// WithRegistry sets the loaded-plugin registry used for conflict detection.
func WithRegistry(registry Registry) Option {
	return func(p *Plugin) {
		p.registry = registry
	}
}

// WithStore sets where the configuration document lives. Defaults to memory.
func WithStore(store state.Store[config.Configuration]) Option {
	return func(p *Plugin) {
		p.store = store
	}
}

// WithAuthorizer shares a permission authorizer with the host.
func WithAuthorizer(a *authz.Authorizer) Option {
	return func(p *Plugin) {
		p.authz = a
	}
}

// WithCatalog shares a message catalog with the host.
func WithCatalog(c *i18n.Catalog) Option {
	return func(p *Plugin) {
		p.catalog = c
	}
}

// WithLogger sets the plugin logger. Defaults to slog.Default().
func WithLogger(logger Logger) Option {
	return func(p *Plugin) {
		p.logger = logger
	}
}

// WithLedgerOptions forwards options to the override ledger.
func WithLedgerOptions(opts ...burnguard.Option) Option {
	return func(p *Plugin) {
		p.ledgerOpts = append(p.ledgerOpts, opts...)
	}
}

// WithEvaluatorOptions forwards options to the authorization rule evaluator.
func WithEvaluatorOptions(opts ...burnguard.EvaluatorOption) Option {
	return func(p *Plugin) {
		p.evaluatorOpts = append(p.evaluatorOpts, opts...)
	}
}

// WithRuleOptions forwards options to the authorization rule.
func WithRuleOptions(opts ...burnguard.RuleOption) Option {
	return func(p *Plugin) {
		p.ruleOpts = append(p.ruleOpts, opts...)
	}
}

// New builds a plugin bound to host.
func New(host Host, opts ...Option) (*Plugin, error) {
	if host == nil {
		return nil, fmt.Errorf("plugin: host is required")
	}
	p := &Plugin{host: host}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	if p.store == nil {
		p.store = state.NewMemoryStore[config.Configuration]()
	}
	if p.authz == nil {
		a, err := authz.New()
		if err != nil {
			return nil, fmt.Errorf("plugin: %w", err)
		}
		p.authz = a
	}
	if p.catalog == nil {
		p.catalog = i18n.New()
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	if p.registry == nil {
		p.registry = RegistryFunc(nil)
	}
	p.ledger = burnguard.NewLedger(p.ledgerOpts...)
	p.cfg = config.Defaults()
	p.defineCommands()
	return p, nil
}

// Ledger exposes the override ledger.
func (p *Plugin) Ledger() *burnguard.Ledger {
	return p.ledger
}

// Authorizer exposes the permission authorizer.
func (p *Plugin) Authorizer() *authz.Authorizer {
	return p.authz
}

// Catalog exposes the message catalog.
func (p *Plugin) Catalog() *i18n.Catalog {
	return p.catalog
}

// Config returns the active configuration.
func (p *Plugin) Config() config.Configuration {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.cfg
}

// Loaded reports whether OnServerInitialized completed.
func (p *Plugin) Loaded() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loaded
}

func (p *Plugin) lookup(id string) (burnguard.Handle, bool) {
	return p.host.Cookable(id)
}

func (p *Plugin) logging() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.cfg.Setting().EnableLogging
}
