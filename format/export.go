package format

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/markdown"
	"gopkg.in/yaml.v3"

	"github.com/s0up4200/gifbox/giphy"
)

// ExportFormat is an output encoding for Export
type ExportFormat string

const (
	FormatJSON     ExportFormat = "json"
	FormatYAML     ExportFormat = "yaml"
	FormatMarkdown ExportFormat = "markdown"
)

// ErrUnknownFormat is returned for an unsupported export format
var ErrUnknownFormat = errors.New("unknown export format")

// ParseFormat accepts json, yaml/yml and markdown/md
func ParseFormat(s string) (ExportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("%w: %q (must be json, yaml or markdown)", ErrUnknownFormat, s)
	}
}

// Export writes items to w in the given format
func Export(w io.Writer, format ExportFormat, items []giphy.Media) error {
	if items == nil {
		items = []giphy.Media{}
	}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(items); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	case FormatMarkdown:
		return exportMarkdown(w, items)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func exportMarkdown(w io.Writer, items []giphy.Media) error {
	md := markdown.NewMarkdown(w)
	md.H1("Favourites")
	md.PlainText("")

	if len(items) == 0 {
		md.PlainText("No favourites yet.")
		return md.Build()
	}

	rows := make([][]string, 0, len(items))
	for _, m := range items {
		rows = append(rows, []string{
			"`" + m.ID + "`",
			displayTitle(m),
			string(m.Rating),
			Size(m.ImageSize),
			"[view](" + m.Original + ")",
		})
	}

	md.Table(markdown.TableSet{
		Header: []string{"ID", "Title", "Rating", "Size", "Link"},
		Rows:   rows,
	})

	return md.Build()
}
