// Package filter narrows feeds and favourites with expr-lang expressions
// such as `like(Title, "cat") && Rating == "g"`.
package filter

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/s0up4200/gifbox/giphy"
)

// Apply returns the items of items that f matches, in order. A nil filter
// keeps everything.
func Apply(f Filter, items []giphy.Media) []giphy.Media {
	if f == nil {
		return slices.Clone(items)
	}

	out := make([]giphy.Media, 0, len(items))
	for _, m := range items {
		if f.Match(m) {
			out = append(out, m)
		}
	}
	return out
}

// Presets holds the named expressions from the configuration
type Presets struct {
	compiler Compiler
	filters  map[string]CompiledFilter
	fallback string
}

// NewPresets compiles every preset up front so typos surface at startup.
// fallback is either a preset name or an expression and applies when
// Resolve is given neither.
func NewPresets(compiler Compiler, presets map[string]string, fallback string) (*Presets, error) {
	p := &Presets{
		compiler: compiler,
		filters:  make(map[string]CompiledFilter, len(presets)),
		fallback: strings.TrimSpace(fallback),
	}

	for name, expression := range presets {
		f, err := compiler.Compile(expression)
		if err != nil {
			return nil, fmt.Errorf("failed to compile filter preset '%s': %w", name, err)
		}
		p.filters[name] = f
	}

	if p.fallback != "" {
		if _, err := p.lookup(p.fallback); err != nil {
			return nil, fmt.Errorf("invalid default filter: %w", err)
		}
	}

	return p, nil
}

// Resolve picks the filter for a command: an explicit expression wins over
// a preset name, which wins over the default. It returns nil when none is
// set.
func (p *Presets) Resolve(expression, preset string) (CompiledFilter, error) {
	if expression = strings.TrimSpace(expression); expression != "" {
		return p.compiler.Compile(expression)
	}

	if preset = strings.TrimSpace(preset); preset != "" {
		f, ok := p.filters[preset]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownPreset, preset)
		}
		return f, nil
	}

	if p.fallback == "" {
		return nil, nil
	}
	return p.lookup(p.fallback)
}

// Names returns the preset names in sorted order
func (p *Presets) Names() []string {
	return slices.Sorted(maps.Keys(p.filters))
}

// lookup treats s as a preset name first, then as an expression
func (p *Presets) lookup(s string) (CompiledFilter, error) {
	if f, ok := p.filters[s]; ok {
		return f, nil
	}
	return p.compiler.Compile(s)
}
