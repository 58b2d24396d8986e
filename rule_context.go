package burnguard

import (
	"fmt"
	"time"
)

// RuleContext carries the inputs of a per-use authorization rule.
type RuleContext struct {
	Identifier string
	Actor      Actor
	Mode       Mode
	Original   ValuePair
	Now        *time.Time
	Args       map[string]any
	Metadata   map[string]any
}

func (ctx RuleContext) withDefaultNow() RuleContext {
	if ctx.Now != nil {
		return ctx
	}
	now := time.Now()
	ctx.Now = &now
	return ctx
}

func (ctx RuleContext) timestamp() time.Time {
	ctx = ctx.withDefaultNow()
	return *ctx.Now
}

func (ctx RuleContext) withDefaultMaps() RuleContext {
	if ctx.Args == nil {
		ctx.Args = map[string]any{}
	}
	if ctx.Metadata == nil {
		ctx.Metadata = map[string]any{}
	}
	return ctx
}

func (ctx RuleContext) withDefaults() RuleContext {
	return ctx.withDefaultNow().withDefaultMaps()
}

func (ctx RuleContext) label() string {
	if ctx.Identifier != "" {
		return ctx.Identifier
	}
	return "unknown"
}

// bindings returns the variables exposed to every rule engine.
func (ctx RuleContext) bindings() map[string]any {
	return map[string]any{
		"identifier": ctx.Identifier,
		"actor":      ctx.Actor.binding(),
		"mode":       ctx.Mode.String(),
		"original":   map[string]any{"low": ctx.Original.Low, "high": ctx.Original.High},
		"now":        ctx.timestamp(),
		"args":       ctx.Args,
		"metadata":   ctx.Metadata,
	}
}

// Evaluator executes rule expressions against a rule context.
type Evaluator interface {
	Evaluate(ctx RuleContext, expr string) (any, error)
	Compile(expr string, opts ...CompileOption) (CompiledRule, error)
}

// CompiledRule represents a reusable expression program.
type CompiledRule interface {
	Evaluate(ctx RuleContext) (any, error)
}

// CompileOption configures evaluator compile behaviour.
type CompileOption interface {
	applyCompileOption(*compileConfig)
}

type compileConfig struct {
	requireBool bool
}

type compileOptionFunc func(*compileConfig)

func (f compileOptionFunc) applyCompileOption(cfg *compileConfig) {
	if f != nil {
		f(cfg)
	}
}

// CompileAsPredicate asks engines that type-check (CEL) to reject expressions
// that do not produce a bool.
func CompileAsPredicate() CompileOption {
	return compileOptionFunc(func(cfg *compileConfig) {
		cfg.requireBool = true
	})
}

func applyCompileOptions(opts []CompileOption) compileConfig {
	cfg := compileConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt.applyCompileOption(&cfg)
		}
	}
	return cfg
}

func evaluatorEngineName(e Evaluator) string {
	if e == nil {
		return "unknown"
	}
	switch fmt.Sprintf("%T", e) {
	case "*burnguard.exprEvaluator":
		return EngineExpr
	case "*burnguard.celEvaluator":
		return EngineCEL
	case "*burnguard.jsEvaluator":
		return EngineJS
	default:
		return "custom"
	}
}
