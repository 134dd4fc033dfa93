package render

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/adrg/frontmatter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/devmark/core"
)

const sample = "My Post\n=======\n\n" +
	"## Setup\n\n" +
	"See [the site](https://example.com) or <https://go.dev>.\n\n" +
	"![cat](cat.png)\n<figcaption>A cat</figcaption>\n\n" +
	"* one\n* two\n\n" +
	"\n{% youtube kmjiUVEMvI4 %}\n" +
	"\n{% twitter 1188230579646619649 %}\n"

var meta = core.DocumentMetadata{
	Source:       "https://blog.example.com/my-post",
	CanonicalURL: "https://blog.example.com/my-post",
	Title:        "My Post",
	ConvertedAt:  "2026-01-02T03:04:05Z",
}

func TestMarkdownRenderer_FrontMatter(t *testing.T) {
	data, err := NewMarkdownRenderer(true).Render("# body\n", meta)
	require.NoError(t, err)

	var fm FrontMatter
	body, err := frontmatter.Parse(bytes.NewReader(data), &fm)
	require.NoError(t, err)
	assert.Equal(t, "My Post", fm.Title)
	assert.False(t, fm.Published)
	assert.Equal(t, "https://blog.example.com/my-post", fm.CanonicalURL)
	assert.Contains(t, string(body), "# body")
}

func TestMarkdownRenderer_Passthrough(t *testing.T) {
	r := NewMarkdownRenderer(false)
	data, err := r.Render(sample, meta)
	require.NoError(t, err)
	assert.Equal(t, sample, string(data))
	assert.Equal(t, ".md", r.Extension())
}

func TestAnalyze(t *testing.T) {
	s := Analyze(sample)

	require.Len(t, s.Headings, 2)
	assert.Equal(t, core.Heading{Level: 1, Text: "My Post"}, s.Headings[0])
	assert.Equal(t, core.Heading{Level: 2, Text: "Setup"}, s.Headings[1])

	require.Len(t, s.Links, 3)
	assert.Equal(t, core.Link{Text: "the site", Href: "https://example.com"}, s.Links[0])
	assert.Equal(t, core.Link{Text: "https://go.dev", Href: "https://go.dev"}, s.Links[1])
	assert.Equal(t, core.Link{Text: "cat", Href: "cat.png", Image: true}, s.Links[2])

	assert.Equal(t, []core.Embed{
		{Service: "youtube", Arg: "kmjiUVEMvI4"},
		{Service: "twitter", Arg: "1188230579646619649"},
	}, s.Embeds)
	assert.Equal(t, 2, s.ListItems)
}

func TestJSONRenderer(t *testing.T) {
	r := NewJSONRenderer()
	data, err := r.Render(sample, meta)
	require.NoError(t, err)
	assert.Equal(t, ".json", r.Extension())

	var doc core.DocumentJSON
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, meta, doc.Metadata)
	assert.Equal(t, sample, doc.Markdown)
	assert.Len(t, doc.Structure.Embeds, 2)
}

func TestAnalyze_Empty(t *testing.T) {
	s := Analyze("")
	assert.NotNil(t, s.Headings)
	assert.NotNil(t, s.Links)
	assert.Empty(t, s.Embeds)
}

func TestPDFRenderer(t *testing.T) {
	r := NewPDFRenderer()
	data, err := r.Render(sample+"---\n\n> quoted\n\n1. first\n\t+ nested\n", meta)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	assert.Equal(t, ".pdf", r.Extension())
}

func TestCleanInlineMarkdown(t *testing.T) {
	assert.Equal(t, "bold and it", cleanInlineMarkdown("**bold** and *it*"))
	assert.Equal(t, "see site", cleanInlineMarkdown("see [site](https://x.y)"))
	assert.Equal(t, "[image: cat]", cleanInlineMarkdown("![cat](cat.png)"))
	assert.Equal(t, "https://go.dev", cleanInlineMarkdown("<https://go.dev>"))
	assert.Equal(t, "snake_case", cleanInlineMarkdown(`snake\_case`))
}
