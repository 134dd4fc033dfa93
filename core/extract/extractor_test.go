package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<!DOCTYPE html>
<html lang="en">
<head><title>My Post</title><style>.x{color:red}</style></head>
<body>
  <nav><a href="/">Home</a></nav>
  <main>
    <h1>Heading</h1>
    <p>Body text.</p>
    <figure><img src="cat.png" alt="cat"><figcaption>A cat</figcaption></figure>
    <iframe src="https://www.youtube.com/embed/abc"></iframe>
    <script>trackVisitor()</script>
  </main>
  <footer>Copyright</footer>
</body>
</html>`

func TestExtract_KeepsMainContentAndMedia(t *testing.T) {
	out, err := New().Extract(page)
	require.NoError(t, err)

	assert.Contains(t, out, "<h1>Heading</h1>")
	assert.Contains(t, out, `<img src="cat.png" alt="cat"/>`)
	assert.Contains(t, out, "<figcaption>A cat</figcaption>")
	assert.Contains(t, out, `<iframe src="https://www.youtube.com/embed/abc">`)

	assert.NotContains(t, out, "Home")
	assert.NotContains(t, out, "Copyright")
	assert.NotContains(t, out, "trackVisitor")
	assert.NotContains(t, out, "<main>")
}

func TestExtract_FallsBackToArticleThenBody(t *testing.T) {
	out, err := New().Extract(`<body><div class="sidebar">junk</div><article><p>post</p></article></body>`)
	require.NoError(t, err)
	assert.Equal(t, "<p>post</p>", out)

	out, err = New().Extract(`<p>fragment</p>`)
	require.NoError(t, err)
	assert.Equal(t, "<p>fragment</p>", out)
}

func TestMetadata(t *testing.T) {
	title, lang := Metadata(page)
	assert.Equal(t, "My Post", title)
	assert.Equal(t, "en", lang)

	title, lang = Metadata(`<h1>Only heading</h1>`)
	assert.Equal(t, "Only heading", title)
	assert.Empty(t, lang)
}
