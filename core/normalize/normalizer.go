// Package normalize implements the Normalizer interface.
// The devto engine writes dev.to Markdown with liquid embed shortcodes;
// the commonmark engine uses html-to-markdown for plain CommonMark and
// only borrows the embed handling for iframes.
package normalize

import (
	"errors"
	"fmt"
	"strings"

	"github.com/JohannesKaufmann/dom"
	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"golang.org/x/net/html"

	"github.com/gaurav-prasanna/devmark/core/embed"
	"github.com/gaurav-prasanna/devmark/core/markdown"
)

// Engine names a conversion backend.
type Engine string

const (
	EngineDevTo      Engine = "devto"
	EngineCommonMark Engine = "commonmark"
)

// Engines lists the supported engines.
var Engines = []Engine{EngineDevTo, EngineCommonMark}

// ErrUnknownEngine is returned by New for an unsupported engine name.
var ErrUnknownEngine = errors.New("unknown conversion engine")

// MarkdownNormalizer converts HTML fragments to Markdown.
type MarkdownNormalizer struct {
	engine Engine
	devto  *markdown.Converter
	cm     *converter.Converter
}

// New creates a MarkdownNormalizer for engine. opts only applies to the devto engine.
func New(engine Engine, opts markdown.Options) (*MarkdownNormalizer, error) {
	switch engine {
	case EngineDevTo, "":
		conv, err := markdown.New(opts)
		if err != nil {
			return nil, err
		}
		return &MarkdownNormalizer{engine: EngineDevTo, devto: conv}, nil
	case EngineCommonMark:
		return &MarkdownNormalizer{engine: engine, cm: newCommonMark()}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, engine)
	}
}

// Engine reports which engine this normalizer uses.
func (n *MarkdownNormalizer) Engine() Engine {
	return n.engine
}

// Normalize converts a cleaned HTML fragment into Markdown.
func (n *MarkdownNormalizer) Normalize(fragment string) (string, error) {
	if n.devto != nil {
		return n.devto.Convert(fragment), nil
	}
	md, err := n.cm.ConvertString(fragment)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return md, nil
}

// newCommonMark builds an html-to-markdown converter whose iframes resolve
// to embed shortcodes instead of being dropped.
func newCommonMark() *converter.Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
		),
	)
	conv.Register.TagType("iframe", converter.TagTypeBlock, converter.PriorityEarly)
	conv.Register.RendererFor("iframe", converter.TagTypeBlock,
		func(ctx converter.Context, w converter.Writer, n *html.Node) converter.RenderStatus {
			src := strings.TrimSpace(dom.GetAttributeOr(n, "src", ""))
			if src == "" {
				return converter.RenderSuccess
			}
			w.WriteString("\n\n" + strings.TrimSpace(embed.Resolve(src)) + "\n\n")
			return converter.RenderSuccess
		},
		converter.PriorityEarly,
	)
	return conv
}
