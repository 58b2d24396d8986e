package burnguard

import (
	"fmt"
	"strings"
	"time"
)

// Rule engine names accepted by NewEvaluator.
const (
	EngineExpr = "expr"
	EngineCEL  = "cel"
	EngineJS   = "js"
)

// EvaluatorOption configures NewEvaluator.
type EvaluatorOption func(*evaluatorConfig)

type evaluatorConfig struct {
	cache    ProgramCache
	registry *FunctionRegistry
}

// WithProgramCache shares compiled programs across evaluators.
func WithProgramCache(cache ProgramCache) EvaluatorOption {
	return func(cfg *evaluatorConfig) {
		cfg.cache = cache
	}
}

// WithFunctionRegistry exposes custom functions to rule expressions.
func WithFunctionRegistry(registry *FunctionRegistry) EvaluatorOption {
	return func(cfg *evaluatorConfig) {
		cfg.registry = registry
	}
}

// WithCustomFunction registers fn under name for the evaluator.
func WithCustomFunction(name string, fn Function) EvaluatorOption {
	return func(cfg *evaluatorConfig) {
		if cfg.registry == nil {
			cfg.registry = NewFunctionRegistry()
		} else {
			cfg.registry = cfg.registry.Clone()
		}
		_ = cfg.registry.Register(name, fn)
	}
}

// NewEvaluator returns the evaluator for engine. An empty engine selects expr.
// The js engine requires the js_eval build tag.
func NewEvaluator(engine string, opts ...EvaluatorOption) (Evaluator, error) {
	cfg := evaluatorConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	switch strings.ToLower(strings.TrimSpace(engine)) {
	case "", EngineExpr:
		return NewExprEvaluator(ExprWithProgramCache(cfg.cache), ExprWithFunctionRegistry(cfg.registry)), nil
	case EngineCEL:
		return NewCELEvaluator(CELWithProgramCache(cfg.cache), CELWithFunctionRegistry(cfg.registry)), nil
	case EngineJS:
		if !jsEvaluatorAvailable() {
			return nil, fmt.Errorf("%w: %s", ErrEngineUnavailable, engine)
		}
		return NewJSEvaluator(JSWithProgramCache(cfg.cache), JSWithFunctionRegistry(cfg.registry)), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, engine)
	}
}

// RuleOption configures RuleAuthorizer.
type RuleOption func(*ruleConfig)

type ruleConfig struct {
	logger    EvaluatorLogger
	mode      Mode
	args      map[string]any
	metadata  map[string]any
	originals map[string]ValuePair
	now       func() time.Time
}

// WithEvaluatorLogger receives one event per rule evaluation.
func WithEvaluatorLogger(logger EvaluatorLogger) RuleOption {
	return func(cfg *ruleConfig) {
		cfg.logger = logger
	}
}

// WithRuleMode sets the mode exposed to rules as `mode`.
func WithRuleMode(mode Mode) RuleOption {
	return func(cfg *ruleConfig) {
		cfg.mode = mode
	}
}

// WithRuleArgs exposes static arguments to rules as `args`.
func WithRuleArgs(args map[string]any) RuleOption {
	return func(cfg *ruleConfig) {
		cfg.args = copyMetadata(args)
	}
}

// WithRuleMetadata exposes static metadata to rules as `metadata`.
func WithRuleMetadata(metadata map[string]any) RuleOption {
	return func(cfg *ruleConfig) {
		cfg.metadata = copyMetadata(metadata)
	}
}

// WithRuleOriginals binds `original` from a snapshot of recorded originals,
// typically Ledger.Originals taken after Activate.
func WithRuleOriginals(originals map[string]ValuePair) RuleOption {
	return func(cfg *ruleConfig) {
		cfg.originals = originals
	}
}

// WithRuleClock overrides the time bound to `now`.
func WithRuleClock(now func() time.Time) RuleOption {
	return func(cfg *ruleConfig) {
		cfg.now = now
	}
}

// RuleAuthorizer compiles expression once and returns an AuthorizeFunc that
// allows only when the rule evaluates to true. Evaluation errors and
// non-bool results deny.
func RuleAuthorizer(evaluator Evaluator, expression string, opts ...RuleOption) (AuthorizeFunc, error) {
	if evaluator == nil {
		return nil, fmt.Errorf("burnguard: rule evaluator is nil")
	}
	cfg := ruleConfig{mode: ModeIndividual, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.logger == nil {
		cfg.logger = noopEvaluatorLogger{}
	}
	rule, err := evaluator.Compile(expression, CompileAsPredicate())
	if err != nil {
		return nil, err
	}
	engine := evaluatorEngineName(evaluator)
	return func(id string, actor Actor) bool {
		now := cfg.now()
		ctx := RuleContext{
			Identifier: id,
			Actor:      actor,
			Mode:       cfg.mode,
			Original:   cfg.originals[id],
			Now:        &now,
			Args:       cfg.args,
			Metadata:   cfg.metadata,
		}
		start := time.Now()
		value, evalErr := rule.Evaluate(ctx)
		allowed, ok := value.(bool)
		if evalErr == nil && !ok {
			evalErr = wrapEvaluationError(engine, expression, id, ErrRuleNotBool)
		}
		cfg.logger.LogEvaluation(EvaluatorLogEvent{
			Engine:     engine,
			Expr:       expression,
			Identifier: id,
			ActorID:    actor.ID,
			Allowed:    evalErr == nil && allowed,
			Duration:   time.Since(start),
			Err:        evalErr,
		})
		return evalErr == nil && allowed
	}, nil
}
