package filter

import (
	"maps"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/gifbox/giphy"
)

// DefaultCacheSize is the number of compiled expressions kept by default
const DefaultCacheSize = 64

// ExprCompilerOption configures an ExprCompiler
type ExprCompilerOption func(*ExprCompiler)

// WithCache sets the compiled expression cache size. Zero disables caching.
func WithCache(size int) ExprCompilerOption {
	return func(c *ExprCompiler) {
		if size > 0 {
			c.cache = newLRUCache[*exprFilter](size)
		} else {
			c.cache = nil
		}
	}
}

// WithFavourites backs the isFavourite helper
func WithFavourites(isFavourite func(id string) bool) ExprCompilerOption {
	return func(c *ExprCompiler) {
		c.isFavourite = isFavourite
	}
}

// WithCustomFunctions adds helper functions available to every expression
func WithCustomFunctions(funcs map[string]any) ExprCompilerOption {
	return func(c *ExprCompiler) {
		maps.Copy(c.helpers, funcs)
	}
}

// ExprCompiler compiles expr-lang expressions evaluated against media items
type ExprCompiler struct {
	helpers     map[string]any
	isFavourite func(id string) bool
	cache       *lruCache[*exprFilter]
}

var _ Compiler = (*ExprCompiler)(nil)

// NewExprCompiler creates a compiler with a DefaultCacheSize cache
func NewExprCompiler(opts ...ExprCompilerOption) *ExprCompiler {
	c := &ExprCompiler{
		helpers: helperFunctions(),
		cache:   newLRUCache[*exprFilter](DefaultCacheSize),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.isFavourite == nil {
		c.isFavourite = func(string) bool { return false }
	}
	c.helpers["isFavourite"] = c.isFavourite

	return c
}

// Compile compiles expression into a filter. Unknown identifiers and
// non-boolean results are compile errors.
func (c *ExprCompiler) Compile(expression string) (CompiledFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	program, err := expr.Compile(expression,
		expr.Env(c.environment(giphy.Media{})),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	f := &exprFilter{
		compiler:   c,
		expression: expression,
		program:    program,
	}

	if c.cache != nil {
		c.cache.Put(expression, f)
	}

	return f, nil
}

// Cached returns the number of cached programs
func (c *ExprCompiler) Cached() int {
	if c.cache == nil {
		return 0
	}
	return c.cache.Len()
}

// Clear empties the program cache
func (c *ExprCompiler) Clear() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// environment exposes the fields of m next to the helpers
func (c *ExprCompiler) environment(m giphy.Media) map[string]any {
	env := make(map[string]any, len(c.helpers)+8)
	maps.Copy(env, c.helpers)

	env["ID"] = m.ID
	env["Slug"] = m.Slug
	env["Title"] = m.Title
	env["Rating"] = string(m.Rating)
	env["Username"] = m.Username
	env["Image"] = m.Image
	env["Original"] = m.Original
	env["ImageSize"] = m.ImageSize

	return env
}

type exprFilter struct {
	compiler   *ExprCompiler
	expression string
	program    *vm.Program
}

// Match reports whether m satisfies the expression. Items that fail to
// evaluate do not match.
func (f *exprFilter) Match(m giphy.Media) bool {
	ok, err := f.Evaluate(m)
	return err == nil && ok
}

func (f *exprFilter) Evaluate(m giphy.Media) (bool, error) {
	out, err := expr.Run(f.program, f.compiler.environment(m))
	if err != nil {
		return false, &EvaluationError{
			Expression: f.expression,
			Slug:       m.Slug,
			Err:        err,
		}
	}

	ok, _ := out.(bool)
	return ok, nil
}

func (f *exprFilter) Expression() string {
	return f.expression
}

// helperFunctions complements the expr builtins (lower, upper, the contains
// and startsWith operators) with case-insensitive matching and size units.
func helperFunctions() map[string]any {
	return map[string]any{
		"like": func(s, substr string) bool {
			return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
		},
		"kb": func(n int) int64 { return int64(n) << 10 },
		"mb": func(n int) int64 { return int64(n) << 20 },
	}
}
