// Package render — JSON renderer.
// Wraps the converted Markdown with metadata and a structural summary
// (headings, links, embeds, list items) taken from a goldmark parse.
package render

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/gaurav-prasanna/devmark/core"
)

// shortcodeRegex matches liquid embeds such as {% youtube abc123 %}.
var shortcodeRegex = regexp.MustCompile(`\{%\s*([a-z]+)\s+(\S+)\s*%\}`)

// JSONRenderer produces structured JSON output from Markdown.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render converts Markdown and metadata into the JSON document.
func (r *JSONRenderer) Render(markdown string, meta core.DocumentMetadata) ([]byte, error) {
	doc := core.DocumentJSON{
		Metadata:  meta,
		Markdown:  markdown,
		Structure: Analyze(markdown),
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}

// Analyze summarizes the structure of a Markdown document.
func Analyze(markdown string) core.DocumentStructure {
	src := []byte(markdown)
	root := goldmark.New().Parser().Parse(text.NewReader(src))

	structure := core.DocumentStructure{
		Headings: []core.Heading{},
		Links:    []core.Link{},
		Embeds:   extractEmbeds(markdown),
	}

	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *gmast.Heading:
			structure.Headings = append(structure.Headings, core.Heading{
				Level: node.Level,
				Text:  plainText(node, src),
			})
		case *gmast.Link:
			structure.Links = append(structure.Links, core.Link{
				Text: plainText(node, src),
				Href: string(node.Destination),
			})
		case *gmast.AutoLink:
			u := string(node.URL(src))
			structure.Links = append(structure.Links, core.Link{Text: u, Href: u})
		case *gmast.Image:
			structure.Links = append(structure.Links, core.Link{
				Text:  plainText(node, src),
				Href:  string(node.Destination),
				Image: true,
			})
		case *gmast.ListItem:
			structure.ListItems++
		}
		return gmast.WalkContinue, nil
	})

	return structure
}

func extractEmbeds(md string) []core.Embed {
	matches := shortcodeRegex.FindAllStringSubmatch(md, -1)
	embeds := make([]core.Embed, 0, len(matches))
	for _, m := range matches {
		embeds = append(embeds, core.Embed{Service: m[1], Arg: m[2]})
	}
	return embeds
}

// plainText concatenates the text segments below n.
func plainText(n gmast.Node, src []byte) string {
	var b strings.Builder
	_ = gmast.Walk(n, func(c gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *gmast.Text:
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() {
				b.WriteByte(' ')
			}
		case *gmast.String:
			b.Write(t.Value)
		}
		return gmast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}
