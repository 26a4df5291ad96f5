package expect

// Definition describes a declarative expectation, as written in
// declaration files.
type Definition struct {
	// Type is the evaluator type (e.g., "equals", "kind",
	// "ordering").
	Type string `json:"type" yaml:"type"`

	// Value is the expected value for single-value
	// expectations.
	Value any `json:"value,omitempty" yaml:"value,omitempty"`

	// Values holds the candidates for multi-value expectations
	// (e.g., "one_of").
	Values []any `json:"values,omitempty" yaml:"values,omitempty"`

	// Pattern is a regular expression for "matches".
	Pattern string `json:"pattern,omitempty" yaml:"pattern,omitempty"`

	// Message replaces the evaluator's diagnostic on failure.
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// Evaluator checks a single expectation type against a concrete
// value. It returns nil on success or an error describing the
// mismatch.
type Evaluator func(def Definition, value any) error

// Result captures the outcome of evaluating one Definition.
type Result struct {
	Type    string `json:"type"`
	Passed  bool   `json:"passed"`
	Message string `json:"message,omitempty"`
}
