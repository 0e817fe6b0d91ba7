package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/s0up4200/gifbox/giphy"
)

var sample = []giphy.Media{
	{
		ID:        "abc",
		Slug:      "funny-cat-abc",
		Title:     "Funny Cat GIF",
		Image:     "https://media.giphy.com/abc.mp4",
		Original:  "https://giphy.com/gifs/funny-cat-abc",
		Rating:    giphy.RatingG,
		Username:  "catlover",
		ImageSize: 512000,
	},
	{
		ID:       "def",
		Slug:     "pipe-def",
		Title:    "a | b",
		Original: "https://giphy.com/gifs/pipe-def",
	},
}

func TestPrinterMedia(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf,
		WithWidth(120),
		WithVerbose(true),
		WithFavourites(func(id string) bool { return id == "abc" }),
	)

	p.Media(sample)

	want := strings.Join([]string{
		"• Funny Cat GIF [g] ★",
		"  ├─ https://giphy.com/gifs/funny-cat-abc",
		"  ├─ https://media.giphy.com/abc.mp4",
		"  └─ 512 kB by catlover",
		"• a | b",
		"  └─ https://giphy.com/gifs/pipe-def",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestPrinterCompact(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, WithWidth(40)).Media([]giphy.Media{{ID: "x", Slug: "only-slug"}})
	assert.Equal(t, "• only-slug\n", buf.String())

	buf.Reset()
	NewPrinter(&buf, WithWidth(40)).Media(nil)
	assert.Equal(t, "No results.\n", buf.String())
}

func TestPrinterHeadingAndTerms(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, WithWidth(80))

	p.Heading("trending stickers")
	p.Terms([]string{"cats", "dogs"})
	p.Summary(2, 10)

	assert.Equal(t, "\nTrending Stickers\n1. cats\n2. dogs\n\n2 of 10 items match\n", buf.String())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcd…", Truncate("abcdefgh", 5))
	assert.Equal(t, "ééé…", Truncate("éééééé", 4))
	assert.Equal(t, "anything", Truncate("anything", 0))
}

func TestSize(t *testing.T) {
	assert.Empty(t, Size(0))
	assert.Equal(t, "1.0 MB", Size(1_000_000))
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]ExportFormat{
		"json": FormatJSON, "YAML": FormatYAML, "yml": FormatYAML, "md": FormatMarkdown, "markdown": FormatMarkdown,
	} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseFormat("csv")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestExportJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, FormatJSON, sample))

	var got []giphy.Media
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, sample, got)

	buf.Reset()
	require.NoError(t, Export(&buf, FormatJSON, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestExportYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, FormatYAML, sample))
	assert.Contains(t, buf.String(), "slug: funny-cat-abc")

	var got []giphy.Media
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, sample, got)
}

func TestExportMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, FormatMarkdown, sample))

	out := buf.String()
	assert.Contains(t, out, "# Favourites")
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "`abc`")
	assert.Contains(t, out, "[view](https://giphy.com/gifs/funny-cat-abc)")
	assert.Contains(t, out, "Funny Cat GIF")

	buf.Reset()
	require.NoError(t, Export(&buf, FormatMarkdown, nil))
	assert.Contains(t, buf.String(), "No favourites yet.")
}

func TestExportUnknown(t *testing.T) {
	err := Export(&bytes.Buffer{}, ExportFormat("csv"), sample)
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
