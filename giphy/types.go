package giphy

import (
	"fmt"
	"strconv"
)

// Kind selects between the two content collections the API serves
type Kind string

const (
	// KindGifs selects animated GIFs
	KindGifs Kind = "gifs"
	// KindStickers selects stickers (transparent GIFs)
	KindStickers Kind = "stickers"
)

// Valid reports whether k is one of the known kinds
func (k Kind) Valid() bool {
	return k == KindGifs || k == KindStickers
}

// String returns the path segment for the kind
func (k Kind) String() string {
	return string(k)
}

// ParseKind converts a user supplied string into a Kind
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.Valid() {
		return "", fmt.Errorf("%w: %q (must be gifs or stickers)", ErrInvalidKind, s)
	}
	return k, nil
}

// Rating is a content rating filter
type Rating string

const (
	RatingG    Rating = "g"
	RatingPG   Rating = "pg"
	RatingPG13 Rating = "pg-13"
	RatingR    Rating = "r"
	RatingRX   Rating = "rx"
	RatingRX17 Rating = "rx-17"

	// DefaultRating is the most restrictive level
	DefaultRating = RatingG
)

// Ratings lists every rating level from most to least restrictive
var Ratings = []Rating{RatingG, RatingPG, RatingPG13, RatingR, RatingRX, RatingRX17}

// Valid reports whether r is one of the known levels
func (r Rating) Valid() bool {
	for _, known := range Ratings {
		if r == known {
			return true
		}
	}
	return false
}

// ParseRating converts a user supplied string into a Rating
func ParseRating(s string) (Rating, error) {
	r := Rating(s)
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidRating, s)
	}
	return r, nil
}

// Media is the trimmed-down item the rest of the application works with.
// The first four JSON names match the favourites format written by earlier
// versions, so stored lists load unchanged.
type Media struct {
	ID        string `json:"id" yaml:"id"`
	Image     string `json:"image" yaml:"image"`
	Slug      string `json:"slug" yaml:"slug"`
	Original  string `json:"original" yaml:"original"`
	Title     string `json:"title,omitempty" yaml:"title,omitempty"`
	Rating    Rating `json:"rating,omitempty" yaml:"rating,omitempty"`
	Username  string `json:"username,omitempty" yaml:"username,omitempty"`
	ImageSize int64  `json:"image_size,omitempty" yaml:"image_size,omitempty"`
}

// Rendition is one encoded variant of a GIF. GIPHY sends numbers as strings.
type Rendition struct {
	URL     string `json:"url,omitempty"`
	Width   string `json:"width,omitempty"`
	Height  string `json:"height,omitempty"`
	Size    string `json:"size,omitempty"`
	MP4     string `json:"mp4,omitempty"`
	MP4Size string `json:"mp4_size,omitempty"`
	WebP    string `json:"webp,omitempty"`
}

// Images holds the renditions used by this client
type Images struct {
	Original       Rendition `json:"original"`
	DownsizedSmall Rendition `json:"downsized_small"`
	FixedHeight    Rendition `json:"fixed_height"`
	PreviewGIF     Rendition `json:"preview_gif"`
}

// Gif is a GIF or sticker object as returned by the API
type Gif struct {
	Type             string `json:"type"`
	ID               string `json:"id"`
	Slug             string `json:"slug"`
	URL              string `json:"url"`
	Title            string `json:"title"`
	Rating           Rating `json:"rating"`
	Username         string `json:"username"`
	ImportDatetime   string `json:"import_datetime"`
	TrendingDatetime string `json:"trending_datetime"`
	Images           Images `json:"images"`
}

// ToMedia maps an API object into a Media item. The display image prefers
// the small mp4 rendition and falls back to larger ones.
func (g *Gif) ToMedia() Media {
	m := Media{
		ID:       g.ID,
		Slug:     g.Slug,
		Original: g.URL,
		Title:    g.Title,
		Rating:   g.Rating,
		Username: g.Username,
	}

	for _, r := range []Rendition{g.Images.DownsizedSmall, g.Images.FixedHeight, g.Images.Original} {
		if r.MP4 != "" {
			m.Image = r.MP4
			m.ImageSize, _ = strconv.ParseInt(r.MP4Size, 10, 64)
			break
		}
	}
	if m.Image == "" {
		m.Image = g.Images.Original.URL
		m.ImageSize, _ = strconv.ParseInt(g.Images.Original.Size, 10, 64)
	}

	return m
}

// Pagination describes where a page sits in the upstream result set
type Pagination struct {
	TotalCount int `json:"total_count"`
	Count      int `json:"count"`
	Offset     int `json:"offset"`
}

// NextOffset returns the offset of the page after this one
func (p Pagination) NextOffset() int {
	return p.Offset + p.Count
}

// Meta is the status block sent with every response
type Meta struct {
	Status     int    `json:"status"`
	Msg        string `json:"msg"`
	ResponseID string `json:"response_id"`
}

// GifsResponse is a page of search or trending results
type GifsResponse struct {
	Data       []Gif      `json:"data"`
	Pagination Pagination `json:"pagination"`
	Meta       Meta       `json:"meta"`

	err error
}

// FailedGifs returns the empty page a fetcher yields when it fails
func FailedGifs(err error) *GifsResponse {
	return &GifsResponse{Data: []Gif{}, err: err}
}

// Err returns the failure that produced an empty fallback response, if any
func (r *GifsResponse) Err() error {
	return r.err
}

// Media maps every item on the page
func (r *GifsResponse) Media() []Media {
	out := make([]Media, 0, len(r.Data))
	for i := range r.Data {
		out = append(out, r.Data[i].ToMedia())
	}
	return out
}

// GifResponse wraps a single GIF lookup
type GifResponse struct {
	Data *Gif `json:"data"`
	Meta Meta `json:"meta"`

	err error
}

// Err returns the failure that produced an empty fallback response, if any
func (r *GifResponse) Err() error {
	return r.err
}

// TermsResponse holds the trending search terms
type TermsResponse struct {
	Data []string `json:"data"`
	Meta Meta     `json:"meta"`

	err error
}

// FailedTerms returns the empty term list a fetcher yields when it fails
func FailedTerms(err error) *TermsResponse {
	return &TermsResponse{Data: []string{}, err: err}
}

// Err returns the failure that produced an empty fallback response, if any
func (r *TermsResponse) Err() error {
	return r.err
}

// Tag is a related search term
type Tag struct {
	Name                     string `json:"name"`
	AnalyticsResponsePayload string `json:"analytics_response_payload"`
}

// TagsResponse holds related tags for a term
type TagsResponse struct {
	Data []Tag `json:"data"`
	Meta Meta  `json:"meta"`

	err error
}

// FailedTags returns the empty tag list a fetcher yields when it fails
func FailedTags(err error) *TagsResponse {
	return &TagsResponse{Data: []Tag{}, err: err}
}

// Err returns the failure that produced an empty fallback response, if any
func (r *TagsResponse) Err() error {
	return r.err
}

// Names returns the tag names in order
func (r *TagsResponse) Names() []string {
	out := make([]string, 0, len(r.Data))
	for _, t := range r.Data {
		out = append(out, t.Name)
	}
	return out
}

// SearchParams configures a search request
type SearchParams struct {
	Kind   Kind
	Query  string
	Limit  int
	Offset int
	Rating Rating
}

// TrendingParams configures a trending request
type TrendingParams struct {
	Kind   Kind
	Limit  int
	Offset int
	Rating Rating
}
