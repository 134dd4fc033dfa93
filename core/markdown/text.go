package markdown

import (
	"strings"
	"unicode"
)

// processText collapses whitespace and escapes Markdown-significant characters.
func processText(text string) string {
	return escape(collapseWhitespace(text))
}

// collapseWhitespace replaces every run of whitespace with a single space.
func collapseWhitespace(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	inSpace := false
	for _, r := range text {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte(' ')
			}
			inSpace = true
			continue
		}
		inSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

func escape(text string) string {
	return strings.ReplaceAll(text, "_", `\_`)
}

// prefixLines puts prefix at the start of text and after every newline,
// including a trailing one.
func prefixLines(text, prefix string) string {
	return prefix + strings.ReplaceAll(text, "\n", "\n"+prefix)
}

// indent shifts every line of text one tab stop.
func indent(text string) string {
	if text == "" {
		return ""
	}
	return prefixLines(text, "\t")
}
