package crawl

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/devmark/core/fetch"
)

func blogServer(t *testing.T, sitemap string) *httptest.Server {
	t.Helper()
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/sitemap.xml":
			if sitemap == "" {
				http.NotFound(w, r)
				return
			}
			fmt.Fprintf(w, sitemap, srv.URL, srv.URL, srv.URL)
		case "/posts", "/posts/":
			fmt.Fprint(w, `<a href="/posts/a">A</a> <a href="/posts/b#comments">B</a>
<a href="/about">About</a> <a href="/posts/cover.png">img</a>
<a href="https://elsewhere.example/posts/x">ext</a> <a href="mailto:me@example.com">mail</a>`)
		case "/posts/a":
			fmt.Fprint(w, `<a href="/posts/">all</a> <a href="/posts/c?ref=a">C</a>`)
		default:
			fmt.Fprint(w, `<p>article</p>`)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestDiscover_FollowsLinksInScope(t *testing.T) {
	srv := blogServer(t, "")

	urls, err := New(fetch.New(0), 0, nil).Discover(context.Background(), srv.URL+"/posts/")
	require.NoError(t, err)
	assert.Equal(t, []string{
		srv.URL + "/posts",
		srv.URL + "/posts/a",
		srv.URL + "/posts/b",
		srv.URL + "/posts/c",
	}, urls)
}

func TestDiscover_MaxPages(t *testing.T) {
	srv := blogServer(t, "")

	urls, err := New(fetch.New(0), 2, nil).Discover(context.Background(), srv.URL+"/posts/")
	require.NoError(t, err)
	assert.Equal(t, []string{srv.URL + "/posts", srv.URL + "/posts/a"}, urls)
}

func TestDiscover_PrefersSitemap(t *testing.T) {
	srv := blogServer(t, `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>%s/posts/one</loc></url>
  <url><loc>%s/about</loc></url>
  <url><loc>%s/posts/two/</loc></url>
</urlset>`)

	urls, err := New(fetch.New(0), 0, nil).Discover(context.Background(), srv.URL+"/posts/")
	require.NoError(t, err)
	assert.Equal(t, []string{
		srv.URL + "/posts",
		srv.URL + "/posts/one",
		srv.URL + "/posts/two",
	}, urls)
}

func TestDiscover_InvalidStart(t *testing.T) {
	_, err := New(fetch.New(0), 0, nil).Discover(context.Background(), "not a url")
	assert.Error(t, err)
}

func TestScope(t *testing.T) {
	start, _ := url.Parse("https://blog.example.com/posts/")
	s := NewScope(start)

	assert.True(t, s.Contains("https://blog.example.com/posts"))
	assert.True(t, s.Contains("https://blog.example.com/posts/hello-world"))
	assert.False(t, s.Contains("https://blog.example.com/postscript"))
	assert.False(t, s.Contains("https://blog.example.com/about"))
	assert.False(t, s.Contains("https://other.example.com/posts/x"))
	assert.False(t, s.Contains("https://blog.example.com/posts/feed.xml"))
	assert.False(t, s.Contains("ftp://blog.example.com/posts/x"))

	root, _ := url.Parse("https://blog.example.com")
	assert.True(t, NewScope(root).Contains("https://blog.example.com/anything"))
}

func TestNormalizeURL(t *testing.T) {
	assert.Equal(t, "https://a.b/x", NormalizeURL("https://a.b/x/#top"))
	assert.Equal(t, "https://a.b/x", NormalizeURL("https://a.b/x?utm=1"))
	assert.Equal(t, "https://a.b/", NormalizeURL("https://a.b/"))
}

func TestFrontier(t *testing.T) {
	f := newFrontier()
	assert.True(t, f.push("a"))
	assert.False(t, f.push("a"))
	assert.True(t, f.push("b"))
	assert.Equal(t, 2, f.size())
	assert.Equal(t, "a", f.pop())
	assert.True(t, f.pending())
	assert.Equal(t, "b", f.pop())
	assert.False(t, f.pending())
}
