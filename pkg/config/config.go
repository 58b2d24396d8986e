package config

import (
	"context"
	"errors"
	"fmt"
	"strings"

	burnguard "github.com/goliatone/go-burnguard"
	"github.com/goliatone/go-burnguard/pkg/state"
)

// Name is the document name used for the plugin configuration.
const Name = "BurnedBegone"

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Configuration mirrors the plugin's JSON document.
type Configuration struct {
	Settings        *Settings `json:"Plugin Settings" jsonschema:"title=Plugin Settings"`
	ProtectedItems  []string  `json:"Protected Items" jsonschema:"description=Item shortnames protected from burning"`
	AdditionalItems []string  `json:"Additional Items" jsonschema:"description=Extra shortnames added to the protected list"`
	ExcludedItems   []string  `json:"Excluded Items" jsonschema:"description=Shortnames removed from the protected list"`
}

// Settings groups the plugin behaviour switches.
type Settings struct {
	EnableLogging           bool   `json:"Enable Logging"`
	RequirePermission       bool   `json:"Require Permission"`
	PermissionMode          string `json:"Permission Mode" layering:"fill" jsonschema:"enum=global,enum=individual"`
	EnableChatCommands      bool   `json:"Enable Chat Commands"`
	AutoCreateLanguageFiles bool   `json:"Auto Create Language Files"`
	RuleEngine              string `json:"Rule Engine" layering:"fill" jsonschema:"enum=expr,enum=cel,enum=js"`
	AuthorizationRule       string `json:"Authorization Rule,omitempty" jsonschema:"description=Optional rule evaluated per use in individual mode"`
}

// Defaults returns a fresh default configuration.
func Defaults() Configuration {
	return Configuration{
		Settings: &Settings{
			EnableLogging:           true,
			RequirePermission:       false,
			PermissionMode:          string(burnguard.ModeGlobal),
			EnableChatCommands:      true,
			AutoCreateLanguageFiles: true,
			RuleEngine:              burnguard.EngineExpr,
		},
		ProtectedItems: []string{
			"bearmeat.cooked", "chicken.cooked", "deermeat.cooked", "horsemeat.cooked",
			"humanmeat.cooked", "meat.pork.cooked", "wolfmeat.cooked", "fish.cooked",
			"bigcatmeat.cooked", "crocodilemeat.cooked", "snakemeat.cooked",
			"fish.anchovy.cooked", "fish.catfish.cooked", "fish.herring.cooked",
			"fish.salmon.cooked", "fish.sardine.cooked", "fish.smallshark.cooked",
			"fish.troutsmall.cooked", "fish.yellowperch.cooked", "meat.boar.cooked",
			"cactusflesh.cooked",
		},
		AdditionalItems: []string{},
		ExcludedItems:   []string{},
	}
}

// UnburnableDefaults is the fixed list of the older UnburnableMeat plugin.
func UnburnableDefaults() []string {
	return []string{
		"bearmeat.cooked",
		"chicken.cooked",
		"deermeat.cooked",
		"horsemeat.cooked",
		"humanmeat.cooked",
		"meat.pork.cooked",
		"wolfmeat.cooked",
		"fish.cooked",
	}
}

// Validate implements state.Validatable.
func (c Configuration) Validate() error {
	var errs []error
	if c.Settings != nil {
		switch strings.ToLower(strings.TrimSpace(c.Settings.PermissionMode)) {
		case "", string(burnguard.ModeGlobal), string(burnguard.ModeIndividual):
		default:
			errs = append(errs, fmt.Errorf("permission mode %q must be global or individual", c.Settings.PermissionMode))
		}
		switch strings.ToLower(strings.TrimSpace(c.Settings.RuleEngine)) {
		case "", burnguard.EngineExpr, burnguard.EngineCEL, burnguard.EngineJS:
		default:
			errs = append(errs, fmt.Errorf("rule engine %q is not supported", c.Settings.RuleEngine))
		}
	}
	lists := []struct {
		label string
		items []string
	}{
		{"Protected Items", c.ProtectedItems},
		{"Additional Items", c.AdditionalItems},
		{"Excluded Items", c.ExcludedItems},
	}
	for _, list := range lists {
		for i, id := range list.items {
			if strings.TrimSpace(id) == "" {
				errs = append(errs, fmt.Errorf("%s[%d] is blank", list.label, i))
			}
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

// Targets resolves the identifiers to override.
func (c Configuration) Targets() []string {
	return burnguard.Resolve(c.ProtectedItems, c.AdditionalItems, c.ExcludedItems)
}

// Mode is the effective override mode. Without Require Permission every
// target is overridden globally regardless of Permission Mode.
func (c Configuration) Mode() burnguard.Mode {
	if c.Settings == nil || !c.Settings.RequirePermission {
		return burnguard.ModeGlobal
	}
	return burnguard.ParseMode(c.Settings.PermissionMode)
}

// PerUse reports whether overrides are applied per use event.
func (c Configuration) PerUse() bool {
	return c.Mode() == burnguard.ModeIndividual
}

// Setting returns the settings block, falling back to defaults when absent.
func (c Configuration) Setting() Settings {
	if c.Settings == nil {
		return *Defaults().Settings
	}
	return *c.Settings
}

// Loader reads the configuration document through a state store.
type Loader struct {
	Store  state.Store[Configuration]
	Logger state.Logger
	Name   string
}

// Load resolves the configuration, creating or repairing the stored document
// as needed. A document that decodes but fails Validate is returned as an
// error and left on disk.
func (l Loader) Load(ctx context.Context) (Configuration, state.Resolution, error) {
	if l.Store == nil {
		return Configuration{}, state.Resolution{}, fmt.Errorf("config: store is required")
	}
	name := l.Name
	if name == "" {
		name = Name
	}
	resolver := state.Resolver[Configuration]{Store: l.Store, Logger: l.Logger}
	cfg, res, err := resolver.ResolveWithDefaults(ctx, state.Ref{Name: name}, Defaults())
	if err != nil {
		return Configuration{}, res, err
	}
	if err := cfg.Validate(); err != nil {
		return Configuration{}, res, err
	}
	return cfg, res, nil
}
