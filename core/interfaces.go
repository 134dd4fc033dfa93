// Package core defines the conversion pipeline for devmark.
// A document moves through fetch → extract → normalize → render; each
// stage is a small interface so commands and tests can swap them.
package core

import "context"

// FetchResult holds the raw HTML and response metadata from a fetch.
type FetchResult struct {
	URL        string
	StatusCode int
	HTML       string
}

// DocumentMetadata describes where a converted document came from.
type DocumentMetadata struct {
	Source       string `json:"source"`
	CanonicalURL string `json:"canonical_url,omitempty"`
	Title        string `json:"title,omitempty"`
	Language     string `json:"language,omitempty"`
	ConvertedAt  string `json:"converted_at"` // ISO8601
}

// Heading is a heading found in the converted Markdown.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// Link is a hyperlink or image reference found in the converted Markdown.
type Link struct {
	Text  string `json:"text"`
	Href  string `json:"href"`
	Image bool   `json:"image,omitempty"`
}

// Embed is a liquid shortcode found in the converted Markdown.
type Embed struct {
	Service string `json:"service"`
	Arg     string `json:"arg"`
}

// DocumentStructure is the structural summary of a converted document.
type DocumentStructure struct {
	Headings  []Heading `json:"headings"`
	Links     []Link    `json:"links"`
	Embeds    []Embed   `json:"embeds"`
	ListItems int       `json:"list_items"`
}

// DocumentJSON is the complete JSON output for one document.
type DocumentJSON struct {
	Metadata  DocumentMetadata  `json:"metadata"`
	Markdown  string            `json:"markdown"`
	Structure DocumentStructure `json:"structure"`
}

// Fetcher retrieves raw HTML from a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// Extractor isolates the article body of a full HTML page.
type Extractor interface {
	Extract(html string) (string, error)
}

// Normalizer converts an HTML fragment into Markdown.
type Normalizer interface {
	Normalize(html string) (string, error)
}

// Renderer converts Markdown (and metadata) into a final output format.
type Renderer interface {
	Render(markdown string, meta DocumentMetadata) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".md", ".pdf").
	Extension() string
}
