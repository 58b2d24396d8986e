package burnguard

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownEngine is returned for rule engine names that are not supported.
	ErrUnknownEngine = errors.New("burnguard: unknown rule engine")
	// ErrEngineUnavailable is returned when an engine is compiled out.
	ErrEngineUnavailable = errors.New("burnguard: rule engine unavailable")
	// ErrRuleNotBool is returned when a rule produces a non-bool result.
	ErrRuleNotBool = errors.New("burnguard: rule must evaluate to bool")
)

// EvaluationError captures evaluator metadata alongside the originating error.
type EvaluationError struct {
	Engine     string
	Expr       string
	Identifier string
	Err        error
}

func (e *EvaluationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("burnguard: %s evaluator %s identifier=%s: %v", e.Engine, describeExpression(e.Expr), e.Identifier, e.Err)
}

func (e *EvaluationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func describeExpression(expr string) string {
	if expr == "" {
		return "expr=<empty>"
	}
	return fmt.Sprintf("expr=%q", expr)
}

func wrapEvaluatorError(engine string, err error) error {
	if err == nil {
		return nil
	}

	var evalErr *EvaluationError
	if errors.As(err, &evalErr) {
		return err
	}

	if strings.HasPrefix(err.Error(), "burnguard:") {
		return err
	}
	return fmt.Errorf("burnguard: %s evaluator: %w", engine, err)
}

func wrapEvaluationError(engine, expr, identifier string, err error) error {
	if err == nil {
		return nil
	}

	var evalErr *EvaluationError
	if errors.As(err, &evalErr) {
		if evalErr.Engine == "" {
			evalErr.Engine = engine
		}
		if evalErr.Expr == "" {
			evalErr.Expr = expr
		}
		if evalErr.Identifier == "" {
			evalErr.Identifier = identifier
		}
		return evalErr
	}

	return &EvaluationError{
		Engine:     engine,
		Expr:       expr,
		Identifier: identifier,
		Err:        err,
	}
}
