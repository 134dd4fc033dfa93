// Package extract implements the Extractor interface.
// It isolates the article body of a full HTML page by:
//  1. Removing page chrome (nav, footer, scripts, forms, ads)
//  2. Picking the best content container (<main>, <article>, or <body>)
//
// Media elements stay: images, figures and iframes become Markdown images
// and embed shortcodes further down the pipeline.
package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// noiseSelectors are HTML elements removed before extraction.
var noiseSelectors = []string{
	"script:not([src*='platform.twitter.com'])", "style", "noscript", "template",
	"nav", "footer", "header", "aside",
	"form", "button", "input", "select", "textarea",
	".sidebar", ".menu", ".navigation", ".ads", ".advertisement",
}

// HTMLExtractor strips page chrome and returns the article fragment.
type HTMLExtractor struct{}

// New creates an HTMLExtractor.
func New() *HTMLExtractor {
	return &HTMLExtractor{}
}

// Extract takes raw HTML and returns the inner HTML of the main content container.
func (e *HTMLExtractor) Extract(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}

	var content *goquery.Selection
	for _, tag := range []string{"main", "article", "body"} {
		sel := doc.Find(tag)
		if sel.Length() > 0 {
			content = sel.First()
			break
		}
	}
	if content == nil {
		return "", fmt.Errorf("no content container found in HTML")
	}

	result, err := content.Html()
	if err != nil {
		return "", fmt.Errorf("serializing content: %w", err)
	}
	return strings.TrimSpace(result), nil
}

// Metadata returns the document title and language of a full HTML page.
// The first <h1> stands in for a missing <title>.
func Metadata(html string) (title, lang string) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", ""
	}
	title = strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("h1").First().Text())
	}
	lang = strings.TrimSpace(doc.Find("html").AttrOr("lang", ""))
	return title, lang
}
