package filter

import "github.com/s0up4200/gifbox/giphy"

// Filter decides whether a media item is kept
type Filter interface {
	// Match reports whether m satisfies the filter
	Match(m giphy.Media) bool
}

// CompiledFilter is a pre-compiled expression ready for evaluation
type CompiledFilter interface {
	Filter

	// Evaluate is Match with the evaluation error, if any
	Evaluate(m giphy.Media) (bool, error)

	// Expression returns the source expression
	Expression() string
}

// Compiler compiles filter expressions
type Compiler interface {
	Compile(expression string) (CompiledFilter, error)
}
