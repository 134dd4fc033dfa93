package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/devmark/core/markdown"
)

const youtubeIframe = `<iframe src="https://www.youtube.com/embed/kmjiUVEMvI4"></iframe>`

func TestNormalize_DevTo(t *testing.T) {
	opts := markdown.DefaultOptions()
	opts.HeadingStyle = markdown.ATX

	n, err := New(EngineDevTo, opts)
	require.NoError(t, err)
	assert.Equal(t, EngineDevTo, n.Engine())

	md, err := n.Normalize("<h1>heading</h1>" + youtubeIframe)
	require.NoError(t, err)
	assert.Equal(t, "# heading\n\n\n{% youtube kmjiUVEMvI4 %}\n", md)
}

func TestNormalize_DefaultEngineIsDevTo(t *testing.T) {
	n, err := New("", markdown.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, EngineDevTo, n.Engine())
}

func TestNormalize_CommonMarkKeepsEmbeds(t *testing.T) {
	n, err := New(EngineCommonMark, markdown.Options{})
	require.NoError(t, err)

	md, err := n.Normalize("<h1>Title</h1><p>Some <strong>bold</strong> text.</p>" + youtubeIframe)
	require.NoError(t, err)
	assert.Contains(t, md, "# Title")
	assert.Contains(t, md, "**bold**")
	assert.Contains(t, md, "{% youtube kmjiUVEMvI4 %}")
}

func TestNew_Errors(t *testing.T) {
	_, err := New("pandoc", markdown.DefaultOptions())
	assert.ErrorIs(t, err, ErrUnknownEngine)

	opts := markdown.DefaultOptions()
	opts.Strip = []string{"a"}
	opts.Convert = []string{"b"}
	_, err = New(EngineDevTo, opts)
	assert.ErrorIs(t, err, markdown.ErrConflictingFilter)
}
