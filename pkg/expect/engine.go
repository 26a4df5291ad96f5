package expect

import (
	"errors"
	"fmt"
	"sync"

	"digital.vasic.corespec/pkg/scenario"
)

// Engine evaluates Definitions by type.
type Engine interface {
	// Evaluate checks a single definition against value.
	Evaluate(def Definition, value any) Result

	// EvaluateAll checks every definition against value, in
	// order.
	EvaluateAll(defs []Definition, value any) []Result

	// Check returns the first failing definition as an
	// *scenario.AssertionError, or nil.
	Check(defs []Definition, value any) error

	// Register adds a custom evaluator. Returns an error if the
	// type is already registered.
	Register(typ string, evaluator Evaluator) error

	// HasEvaluator reports whether typ is registered.
	HasEvaluator(typ string) bool
}

// DefaultEngine is the standard Engine implementation. It is
// safe for concurrent use.
type DefaultEngine struct {
	mu         sync.RWMutex
	evaluators map[string]Evaluator
}

// NewEngine creates a DefaultEngine with the built-in
// evaluators pre-registered.
func NewEngine() *DefaultEngine {
	e := &DefaultEngine{
		evaluators: make(map[string]Evaluator),
	}
	e.registerDefaults()
	return e
}

func (e *DefaultEngine) registerDefaults() {
	e.evaluators["equals"] = evaluateEquals
	e.evaluators["not_equals"] = evaluateNotEquals
	e.evaluators["kind"] = evaluateKind
	e.evaluators["nil"] = evaluateNil
	e.evaluators["not_nil"] = evaluateNotNil
	e.evaluators["true"] = evaluateTrue
	e.evaluators["false"] = evaluateFalse
	e.evaluators["matches"] = evaluateMatches
	e.evaluators["contains"] = evaluateContains
	e.evaluators["not_empty"] = evaluateNotEmpty
	e.evaluators["count"] = evaluateCount
	e.evaluators["ordering"] = evaluateOrdering
	e.evaluators["one_of"] = evaluateOneOf
	e.evaluators["distinct"] = evaluateDistinct
}

// Register adds a custom evaluator for the given type.
func (e *DefaultEngine) Register(
	typ string,
	evaluator Evaluator,
) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.evaluators[typ]; exists {
		return fmt.Errorf(
			"expectation type already registered: %s", typ,
		)
	}

	e.evaluators[typ] = evaluator
	return nil
}

// HasEvaluator reports whether typ has a registered evaluator.
func (e *DefaultEngine) HasEvaluator(typ string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, exists := e.evaluators[typ]
	return exists
}

// Evaluate runs a single definition against value.
func (e *DefaultEngine) Evaluate(def Definition, value any) Result {
	err := e.evaluate(def, value)
	if err == nil {
		return Result{Type: def.Type, Passed: true}
	}
	return Result{Type: def.Type, Message: err.Error()}
}

// EvaluateAll runs every definition against value.
func (e *DefaultEngine) EvaluateAll(
	defs []Definition,
	value any,
) []Result {
	results := make([]Result, 0, len(defs))
	for _, def := range defs {
		results = append(results, e.Evaluate(def, value))
	}
	return results
}

// Check stops at the first failing definition.
func (e *DefaultEngine) Check(defs []Definition, value any) error {
	for _, def := range defs {
		if err := e.evaluate(def, value); err != nil {
			return err
		}
	}
	return nil
}

func (e *DefaultEngine) evaluate(def Definition, value any) error {
	e.mu.RLock()
	evaluator, exists := e.evaluators[def.Type]
	e.mu.RUnlock()

	if !exists {
		return scenario.NewConfigurationError(
			"expectation", "unknown type "+def.Type,
		)
	}

	err := evaluator(def, value)
	if err == nil {
		return nil
	}
	var ae *scenario.AssertionError
	if !errors.As(err, &ae) {
		ae = &scenario.AssertionError{
			Kind: def.Type, Message: err.Error(),
		}
	}
	if def.Message != "" {
		return &scenario.AssertionError{
			Kind:    ae.Kind,
			Message: def.Message + ": " + ae.Message,
		}
	}
	return ae
}
