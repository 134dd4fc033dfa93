package markdown

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/JohannesKaufmann/dom"
	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/gaurav-prasanna/devmark/core/embed"
)

const (
	// tweetClass marks a blockquote produced by the Twitter embed snippet.
	tweetClass = "twitter-tweet"
	tweetURL   = "https://twitter.com/"
)

var tweetLink = cascadia.MustCompile(`a[href^="` + tweetURL + `"]`)

// rule converts an element given the already converted text of its children.
type rule func(c *Converter, n *html.Node, text string, sc scope) string

var rules = map[string]rule{
	"a":          (*Converter).link,
	"b":          (*Converter).strong,
	"strong":     (*Converter).strong,
	"em":         (*Converter).emphasis,
	"i":          (*Converter).emphasis,
	"p":          (*Converter).paragraph,
	"br":         (*Converter).lineBreak,
	"img":        (*Converter).image,
	"ul":         (*Converter).list,
	"ol":         (*Converter).list,
	"li":         (*Converter).listItem,
	"blockquote": (*Converter).blockquote,
	"figcaption": (*Converter).figcaption,
	"iframe":     (*Converter).iframe,
}

// apply dispatches to the rule for tag. Tags without a rule pass their
// text through unchanged.
func (c *Converter) apply(tag string, n *html.Node, text string, sc scope) string {
	if level, ok := headingLevel(tag); ok {
		return c.heading(level, text)
	}
	if r, ok := rules[tag]; ok {
		return r(c, n, text, sc)
	}
	return text
}

// MaxHeadingLevel is the deepest hN tag converted to a heading. Deeper or
// malformed tags pass their text through.
const MaxHeadingLevel = 32

// headingLevel reports N for tags of the form hN, where N is plain decimal
// without a leading zero.
func headingLevel(tag string) (int, bool) {
	digits := strings.TrimPrefix(tag, "h")
	if len(digits) == len(tag) || digits == "" || len(digits) > 2 || digits[0] == '0' {
		return 0, false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	level, err := strconv.Atoi(digits)
	if err != nil || level > MaxHeadingLevel {
		return 0, false
	}
	return level, true
}

func (c *Converter) heading(level int, text string) string {
	text = strings.TrimRightFunc(text, unicode.IsSpace)
	if c.headingStyle == Underlined && level <= 2 {
		if level == 1 {
			return underline(text, "=")
		}
		return underline(text, "-")
	}
	hashes := strings.Repeat("#", level)
	if c.headingStyle == ATXClosed {
		return hashes + " " + text + " " + hashes + "\n\n"
	}
	return hashes + " " + text + "\n\n"
}

func underline(text, pad string) string {
	if text == "" {
		return ""
	}
	return text + "\n" + strings.Repeat(pad, utf8.RuneCountInString(text)) + "\n\n"
}

func (c *Converter) strong(_ *html.Node, text string, _ scope) string {
	if text == "" {
		return ""
	}
	return "**" + text + "**"
}

func (c *Converter) emphasis(_ *html.Node, text string, _ scope) string {
	if text == "" {
		return ""
	}
	return "*" + text + "*"
}

func (c *Converter) paragraph(_ *html.Node, text string, _ scope) string {
	if text == "" {
		return ""
	}
	return text + "\n\n"
}

func (c *Converter) lineBreak(*html.Node, string, scope) string {
	return "  \n"
}

func (c *Converter) link(n *html.Node, text string, _ scope) string {
	href := dom.GetAttributeOr(n, "href", "")
	title := dom.GetAttributeOr(n, "title", "")
	if c.autolinks && href != "" && text == href && title == "" {
		return "<" + href + ">"
	}
	if href == "" {
		return text
	}
	return "[" + text + "](" + href + titleSuffix(title) + ")"
}

func (c *Converter) image(n *html.Node, _ string, _ scope) string {
	alt := dom.GetAttributeOr(n, "alt", "")
	src := dom.GetAttributeOr(n, "src", "")
	title := dom.GetAttributeOr(n, "title", "")
	return "![" + alt + "](" + src + titleSuffix(title) + ")"
}

// titleSuffix renders the optional ` "title"` part of links and images.
func titleSuffix(title string) string {
	if title == "" {
		return ""
	}
	return ` "` + strings.ReplaceAll(title, `"`, `\"`) + `"`
}

func (c *Converter) list(_ *html.Node, text string, sc scope) string {
	if sc.inItem {
		text = "\n" + indent(text)
	}
	return "\n" + text + "\n"
}

func (c *Converter) listItem(_ *html.Node, text string, sc scope) string {
	var bullet string
	if sc.parentOrdered {
		bullet = strconv.Itoa(sc.itemIndex) + "."
	} else {
		// A list item outside any <ul> gets depth -1, i.e. the last bullet.
		depth := sc.ulDepth - 1
		n := len(c.bullets)
		bullet = string(c.bullets[((depth%n)+n)%n])
	}
	return bullet + " " + text + "\n"
}

func (c *Converter) blockquote(n *html.Node, text string, _ scope) string {
	if firstClass(n) == tweetClass {
		href, ok := goquery.NewDocumentFromNode(n).FindMatcher(tweetLink).Attr("href")
		if ok {
			return embed.Resolve(href)
		}
	}
	if text == "" {
		return ""
	}
	return "\n" + prefixLines(text, "> ")
}

func (c *Converter) figcaption(_ *html.Node, text string, _ scope) string {
	return "\n<figcaption>" + text + "</figcaption>\n"
}

func (c *Converter) iframe(n *html.Node, _ string, _ scope) string {
	src := dom.GetAttributeOr(n, "src", "")
	if src == "" {
		return ""
	}
	e := embed.Lookup(src)
	if e.Service == embed.ServiceNone {
		c.logger.Debug("Unrecognized embed", "src", src)
	}
	return e.Shortcode()
}

func firstClass(n *html.Node) string {
	classes := strings.Fields(dom.GetAttributeOr(n, "class", ""))
	if len(classes) == 0 {
		return ""
	}
	return classes[0]
}
