// Package markdown converts HTML fragments into the Markdown dialect used by
// dev.to, including liquid embed shortcodes for iframes and tweets.
//
// Conversion is a bottom-up walk: every element's children are converted
// first and the resulting text is handed to the rule for the element's tag.
package markdown

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/google/uuid"
	"golang.org/x/net/html"
)

// hrPattern matches a bare horizontal rule. Rules are written as a
// paragraph holding "---".
var hrPattern = regexp.MustCompile(`(?i)<hr\s*/?>`)

// Converter turns HTML into Markdown. It is immutable after New and safe
// for concurrent use.
type Converter struct {
	filter       Filter
	headingStyle HeadingStyle
	bullets      []rune
	autolinks    bool

	// marker is the id of the synthetic element wrapping every input.
	marker string
	root   cascadia.Selector
	logger *slog.Logger
}

// New validates opts and creates a Converter.
func New(opts Options) (*Converter, error) {
	filter, err := opts.Filter()
	if err != nil {
		return nil, fmt.Errorf("markdown options: %w", err)
	}

	style := opts.HeadingStyle
	if style == "" {
		style = Underlined
	}
	bullets := []rune(opts.Bullets)
	if len(bullets) == 0 {
		bullets = []rune(DefaultBullets)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	marker := "devmark-fragment-" + uuid.NewString()
	return &Converter{
		filter:       filter,
		headingStyle: style,
		bullets:      bullets,
		autolinks:    !opts.NoAutolinks,
		marker:       marker,
		root:         cascadia.MustCompile("#" + marker),
		logger:       logger,
	}, nil
}

// HTMLToMarkdown converts htmlText with ATX headings and otherwise default options.
func HTMLToMarkdown(htmlText string) string {
	opts := DefaultOptions()
	opts.HeadingStyle = ATX
	c, err := New(opts)
	if err != nil {
		// Default options never conflict.
		panic(err)
	}
	return c.Convert(htmlText)
}

// Convert returns the Markdown for htmlText. It never fails: markup the
// parser cannot make sense of degrades to its text content.
func (c *Converter) Convert(htmlText string) string {
	htmlText = hrPattern.ReplaceAllString(htmlText, "<p>---</p>")
	wrapped := `<div id="` + c.marker + `">` + htmlText + `</div>`

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(wrapped))
	if err != nil {
		c.logger.Debug("Parsing HTML failed", "error", err)
		return ""
	}

	root := doc.FindMatcher(c.root)
	if root.Length() == 0 {
		return ""
	}
	// A stray end tag in the input closes the wrapper early; whatever follows
	// it lands in the wrapper's later siblings.
	n := root.Get(0)
	return c.nodes(n.FirstChild, scope{}) + c.nodes(n.NextSibling, scope{})
}

// scope carries the ancestor context some rules depend on.
type scope struct {
	// ulDepth counts enclosing <ul> elements.
	ulDepth int
	// inItem is set below any <li>.
	inItem bool
	// parentOrdered is set when the direct parent is an <ol>.
	parentOrdered bool
	// itemIndex is the 1-based position of an <li> among its <li> siblings.
	itemIndex int
}

// enter returns the scope for the children of n.
func (s scope) enter(n *html.Node) scope {
	next := s
	next.parentOrdered = false
	next.itemIndex = 0
	if n.Type != html.ElementNode {
		return next
	}
	switch strings.ToLower(n.Data) {
	case "ul":
		next.ulDepth++
	case "ol":
		next.parentOrdered = true
	case "li":
		next.inItem = true
	}
	return next
}

// children converts every child of n in document order.
func (c *Converter) children(n *html.Node, sc scope) string {
	return c.nodes(n.FirstChild, sc)
}

// nodes converts first and all of its following siblings.
func (c *Converter) nodes(first *html.Node, sc scope) string {
	var b strings.Builder
	items := 0
	for child := first; child != nil; child = child.NextSibling {
		csc := sc
		if child.Type == html.ElementNode && strings.EqualFold(child.Data, "li") {
			items++
			csc.itemIndex = items
		}
		b.WriteString(c.process(child, csc))
	}
	return b.String()
}

// process converts a single node. sc describes n's position in the tree.
func (c *Converter) process(n *html.Node, sc scope) string {
	switch n.Type {
	case html.TextNode:
		return processText(n.Data)
	case html.ElementNode:
		text := c.children(n, sc.enter(n))
		tag := strings.ToLower(n.Data)
		if !c.filter.Allows(tag) {
			return text
		}
		return c.apply(tag, n, text, sc)
	default:
		// comments, doctype
		return ""
	}
}
