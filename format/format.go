// Package format renders media lists for the terminal and exports
// favourites to files.
package format

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"golang.org/x/term"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/s0up4200/gifbox/giphy"
)

const (
	defaultWidth = 80
	minWidth     = 20
)

// TermWidth returns the width of stdout, or 80 when it is not a terminal
func TermWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return defaultWidth
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return width
}

// Option configures a Printer
type Option func(*Printer)

// WithWidth overrides the detected terminal width
func WithWidth(width int) Option {
	return func(p *Printer) {
		if width > 0 {
			p.width = max(width, minWidth)
		}
	}
}

// WithVerbose prints links and sizes under every item
func WithVerbose(verbose bool) Option {
	return func(p *Printer) {
		p.verbose = verbose
	}
}

// WithFavourites marks favourite items in listings
func WithFavourites(isFavourite func(id string) bool) Option {
	return func(p *Printer) {
		p.isFavourite = isFavourite
	}
}

// Printer writes human readable listings
type Printer struct {
	w           io.Writer
	width       int
	verbose     bool
	isFavourite func(id string) bool
	title       cases.Caser
}

// NewPrinter creates a Printer writing to w
func NewPrinter(w io.Writer, opts ...Option) *Printer {
	p := &Printer{
		w:     w,
		title: cases.Title(language.English),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.width == 0 {
		p.width = TermWidth()
	}

	return p
}

// Heading prints a title-cased section heading
func (p *Printer) Heading(text string) {
	fmt.Fprintf(p.w, "\n%s\n", p.title.String(text))
}

// Media prints one entry per item:
//
//	• Funny Cat GIF [g] ★
//	  ├─ https://giphy.com/gifs/funny-cat-abc
//	  └─ 512 kB by catlover
func (p *Printer) Media(items []giphy.Media) {
	if len(items) == 0 {
		fmt.Fprintln(p.w, "No results.")
		return
	}

	for _, m := range items {
		line := "• " + displayTitle(m)
		if m.Rating != "" {
			line += " [" + string(m.Rating) + "]"
		}
		if p.isFavourite != nil && p.isFavourite(m.ID) {
			line += " ★"
		}
		fmt.Fprintln(p.w, Truncate(line, p.width))

		if !p.verbose {
			continue
		}

		details := []string{m.Original}
		if m.Image != "" && m.Image != m.Original {
			details = append(details, m.Image)
		}
		if meta := describe(m); meta != "" {
			details = append(details, meta)
		}
		p.tree(details)
	}
}

// Terms prints a numbered list of search terms
func (p *Printer) Terms(terms []string) {
	if len(terms) == 0 {
		fmt.Fprintln(p.w, "No terms.")
		return
	}
	for i, t := range terms {
		fmt.Fprintln(p.w, Truncate(fmt.Sprintf("%d. %s", i+1, t), p.width))
	}
}

// Summary prints a trailing count line
func (p *Printer) Summary(shown, fetched int) {
	if shown == fetched {
		fmt.Fprintf(p.w, "\n%s items\n", humanize.Comma(int64(shown)))
		return
	}
	fmt.Fprintf(p.w, "\n%s of %s items match\n", humanize.Comma(int64(shown)), humanize.Comma(int64(fetched)))
}

func (p *Printer) tree(lines []string) {
	for i, l := range lines {
		prefix := "  ├─ "
		if i == len(lines)-1 {
			prefix = "  └─ "
		}
		fmt.Fprintln(p.w, Truncate(prefix+l, p.width))
	}
}

// Truncate shortens s to width runes, marking the cut with an ellipsis
func Truncate(s string, width int) string {
	if width <= 0 || utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-1]) + "…"
}

// Size renders a byte count, or "" when unknown
func Size(n int64) string {
	if n <= 0 {
		return ""
	}
	return humanize.Bytes(uint64(n))
}

func displayTitle(m giphy.Media) string {
	if t := strings.TrimSpace(m.Title); t != "" {
		return t
	}
	if m.Slug != "" {
		return m.Slug
	}
	return m.ID
}

func describe(m giphy.Media) string {
	var parts []string
	if s := Size(m.ImageSize); s != "" {
		parts = append(parts, s)
	}
	if m.Username != "" {
		parts = append(parts, "by "+m.Username)
	}
	return strings.Join(parts, " ")
}
