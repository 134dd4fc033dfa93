// Package render provides output renderers for the devmark pipeline.
// This file implements the Markdown renderer, which writes the converted
// body behind an optional dev.to front matter block.
package render

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/gaurav-prasanna/devmark/core"
)

// FrontMatter is the dev.to article header. New articles are created as drafts.
type FrontMatter struct {
	Title        string `yaml:"title"`
	Published    bool   `yaml:"published"`
	CanonicalURL string `yaml:"canonical_url,omitempty"`
}

// MarkdownRenderer writes Markdown, optionally prefixed with front matter.
type MarkdownRenderer struct {
	FrontMatter bool
}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer(frontMatter bool) *MarkdownRenderer {
	return &MarkdownRenderer{FrontMatter: frontMatter}
}

// Render returns the Markdown as bytes.
func (r *MarkdownRenderer) Render(markdown string, meta core.DocumentMetadata) ([]byte, error) {
	if !r.FrontMatter {
		return []byte(markdown), nil
	}

	header, err := yaml.Marshal(FrontMatter{
		Title:        meta.Title,
		CanonicalURL: meta.CanonicalURL,
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling front matter: %w", err)
	}
	return []byte("---\n" + string(header) + "---\n\n" + markdown), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}
