package embed

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_Services(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"youtube embed path", "https://www.youtube.com/embed/kmjiUVEMvI4", "\n{% youtube kmjiUVEMvI4 %}\n"},
		{"youtube watch query", "https://www.youtube.com/watch?v=l9nh1l8ZIJQ", "\n{% youtube l9nh1l8ZIJQ %}\n"},
		{"twitter status", "https://twitter.com/NASA/status/1188230579646619649?ref_src=twsrc%5Etfw", "\n{% twitter 1188230579646619649 %}\n"},
		{"codepen keeps scheme", "https://codepen.io/twhite96/pen/XKqrJX", "\n{% codepen https://codepen.io/twhite96/pen/XKqrJX %}\n"},
		{"soundcloud keeps scheme", "https://soundcloud.com/blanc_de_noir/sets/glitched-love", "\n{% soundcloud https://soundcloud.com/blanc_de_noir/sets/glitched-love %}\n"},
		{"github keeps scheme", "https://github.com/golang/go", "\n{% github https://github.com/golang/go %}\n"},
		{"instagram post", "https://www.instagram.com/p/BXgGcAUjM39/", "\n{% instagram BXgGcAUjM39 %}\n"},
		{"replit drops query", "https://repl.it/@WigWog/Practice-Problem-8?lite=true", "\n{% replit @WigWog/Practice-Problem-8 %}\n"},
		{"unknown host", "https://www.example.com/unknown/embed?id=2", "\nhttps://www.example.com/unknown/embed?id=2\n"},
		{"youtube without id", "https://www.youtube.com/watch", "\nhttps://www.youtube.com/watch\n"},
		{"empty", "", "\n\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.url))
		})
	}
}

func TestResolve_SchemeVariantsDispatchIdentically(t *testing.T) {
	variants := []string{
		"http://youtube.com/embed/abc123",
		"http://www.youtube.com/embed/abc123",
		"https://youtube.com/embed/abc123",
		"https://www.youtube.com/embed/abc123",
	}
	for _, v := range variants {
		assert.Equal(t, "//youtube.com/embed/abc123", StripScheme(v), v)
		assert.Equal(t, "\n{% youtube abc123 %}\n", Resolve(v), v)
	}
}

func TestResolve_ProxyRoundTrip(t *testing.T) {
	targets := []string{
		"https://www.youtube.com/watch?v=l9nh1l8ZIJQ",
		"https://twitter.com/NASAVoyager/status/1016476808638656521",
		"https://codepen.io/twhite96/pen/XKqrJX",
		"https://www.instagram.com/p/BXgGcAUjM39/",
		"https://soundcloud.com/blanc_de_noir/sets/glitched-love",
		"https://github.com/golang/go",
		"https://repl.it/@WigWog/Practice-Problem-8",
	}

	for _, target := range targets {
		t.Run(target, func(t *testing.T) {
			direct := Resolve(target)
			unfurl := "https://cdn.unfurl.dev/embed?url=" + url.QueryEscape(target)
			embedly := "//cdn.embedly.com/widgets/media.html?src=" + url.QueryEscape(target) + "&key=internal"

			assert.Equal(t, direct, Resolve(unfurl))
			assert.Equal(t, direct, Resolve(embedly))
		})
	}
}

func TestResolve_EmbedlyYouTube(t *testing.T) {
	src := "//cdn.embedly.com/widgets/media.html?src=https%3A%2F%2Fwww.youtube.com%2Fembed%2F7YpIumoM1Os%3Ffeature%3Doembed&url=https%3A%2F%2Fwww.youtube.com%2Fwatch%3Fv%3D7YpIumoM1Os&image=https%3A%2F%2Fi.ytimg.com%2Fvi%2F7YpIumoM1Os%2Fhqdefault.jpg&key=internal&type=text%2Fhtml&schema=youtube"
	assert.Equal(t, "\n{% youtube 7YpIumoM1Os %}\n", Resolve(src))
}

func TestResolve_ProxyWithoutParamFallsBack(t *testing.T) {
	src := "https://cdn.unfurl.dev/embed?height=400"
	assert.Equal(t, "\n"+src+"\n", Resolve(src))
}

func TestLookup_UnwrapDepthIsBounded(t *testing.T) {
	target := "https://www.youtube.com/embed/abc123"
	once := "https://cdn.unfurl.dev/embed?url=" + url.QueryEscape(target)
	twice := "https://cdn.unfurl.dev/embed?url=" + url.QueryEscape(once)
	thrice := "https://cdn.unfurl.dev/embed?url=" + url.QueryEscape(twice)

	assert.Equal(t, ServiceYouTube, Lookup(twice).Service)

	e := Lookup(thrice)
	require.Equal(t, ServiceNone, e.Service)
	assert.Equal(t, once, e.URL)
	assert.Equal(t, "\n"+once+"\n", e.Shortcode())
}

func TestLookup_ReportsService(t *testing.T) {
	e := Lookup("https://cdn.unfurl.dev/embed?url=https%3A%2F%2Ftwitter.com%2FNASAVoyager%2Fstatus%2F1016476808638656521")
	assert.Equal(t, ServiceTwitter, e.Service)
	assert.Equal(t, "1016476808638656521", e.Arg)
	assert.Equal(t, "https://twitter.com/NASAVoyager/status/1016476808638656521", e.URL)
}
