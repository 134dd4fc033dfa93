// Package crawl — scope rules.
// A blog crawl stays on the start host and under the start URL's path.
package crawl

import (
	"net/url"
	"path"
	"strings"
)

// skipExtensions are paths that never hold an article.
var skipExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".svg": true, ".webp": true, ".ico": true,
	".css": true, ".js": true, ".mjs": true, ".json": true,
	".woff": true, ".woff2": true, ".ttf": true,
	".mp4": true, ".webm": true, ".mp3": true,
	".zip": true, ".gz": true, ".pdf": true,
	".xml": true, ".rss": true, ".atom": true,
}

// Scope decides which discovered URLs belong to the crawl.
type Scope struct {
	host   string
	prefix string
}

// NewScope scopes a crawl to start's host and directory. A start URL of
// https://blog.example.com/posts/ admits everything under /posts/.
func NewScope(start *url.URL) Scope {
	prefix := start.Path
	if prefix == "" {
		prefix = "/"
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return Scope{host: start.Host, prefix: prefix}
}

// Contains reports whether rawURL is an in-scope, non-asset page.
func (s Scope) Contains(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return false
	}
	if u.Host != s.host {
		return false
	}
	if skipExtensions[strings.ToLower(path.Ext(u.Path))] {
		return false
	}
	p := u.Path
	if !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return strings.HasPrefix(p, s.prefix)
}

// NormalizeURL strips fragments, queries and trailing slashes for deduplication.
func NormalizeURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	u.Fragment = ""
	u.RawQuery = ""
	if u.Path != "/" {
		u.Path = strings.TrimSuffix(u.Path, "/")
	}
	return u.String()
}
