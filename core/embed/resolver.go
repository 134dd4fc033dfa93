// Package embed turns third-party embed URLs (iframe sources, tweet links)
// into dev.to liquid shortcodes such as {% youtube id %}.
//
// Proxy services (unfurl, embedly) are unwrapped before host dispatch.
// Unknown URLs fall back to the bare URL on its own line.
package embed

import (
	"net/url"
	"strings"
)

// MaxUnwrapDepth bounds how many nested proxy URLs are unwrapped.
const MaxUnwrapDepth = 2

const (
	unfurlPrefix  = "//cdn.unfurl.dev/embed?"
	embedlyPrefix = "//cdn.embedly.com/widgets/media.html"
)

// Service identifies the embed target detected for a URL.
type Service string

const (
	ServiceNone       Service = ""
	ServiceTwitter    Service = "twitter"
	ServiceYouTube    Service = "youtube"
	ServiceCodepen    Service = "codepen"
	ServiceSoundCloud Service = "soundcloud"
	ServiceGitHub     Service = "github"
	ServiceInstagram  Service = "instagram"
	ServiceReplit     Service = "replit"
)

// Embed is the result of resolving a URL.
type Embed struct {
	Service Service
	// Arg is the shortcode argument (id, path or the input URL).
	Arg string
	// URL is the resolved target after proxy unwrapping.
	URL string
}

// Shortcode renders the embed in dev.to syntax. Unrecognized URLs render
// as the bare URL surrounded by newlines.
func (e Embed) Shortcode() string {
	if e.Service == ServiceNone {
		return "\n" + e.URL + "\n"
	}
	return "\n{% " + string(e.Service) + " " + e.Arg + " %}\n"
}

// Resolve returns the shortcode text for rawURL. It never fails.
func Resolve(rawURL string) string {
	return Lookup(rawURL).Shortcode()
}

// Lookup detects the embed service for rawURL, unwrapping proxy URLs first.
func Lookup(rawURL string) Embed {
	return lookup(rawURL, 0)
}

func lookup(rawURL string, depth int) Embed {
	if target, ok := unwrapProxy(rawURL); ok {
		if depth >= MaxUnwrapDepth {
			return Embed{URL: rawURL}
		}
		return lookup(target, depth+1)
	}
	return dispatch(rawURL)
}

// StripScheme rewrites http(s) and www. prefixes to a scheme-agnostic
// "//host/..." form. It is used for host comparison only.
func StripScheme(rawURL string) string {
	for _, prefix := range []string{"https://www.", "https://", "http://www.", "http://"} {
		if strings.HasPrefix(rawURL, prefix) {
			return "//" + rawURL[len(prefix):]
		}
	}
	return rawURL
}

// unwrapProxy extracts the wrapped target from unfurl and embedly URLs.
func unwrapProxy(rawURL string) (string, bool) {
	stripped := StripScheme(rawURL)

	var param string
	switch {
	case strings.HasPrefix(stripped, unfurlPrefix):
		param = "url"
	case strings.HasPrefix(stripped, embedlyPrefix):
		param = "src"
	default:
		return "", false
	}

	q, err := queryOf(stripped)
	if err != nil {
		return "", false
	}
	target := q.Get(param)
	if target == "" {
		return "", false
	}
	return target, true
}

// dispatch maps a (non-proxy) URL to its service by host prefix.
func dispatch(rawURL string) Embed {
	stripped := StripScheme(rawURL)
	fallback := Embed{URL: rawURL}

	switch {
	case strings.HasPrefix(stripped, "//twitter.com"):
		u, err := url.Parse(stripped)
		if err != nil {
			return fallback
		}
		segments := strings.Split(strings.TrimSuffix(u.Path, "/"), "/")
		id := segments[len(segments)-1]
		if id == "" {
			return fallback
		}
		return Embed{Service: ServiceTwitter, Arg: id, URL: rawURL}

	case strings.HasPrefix(stripped, "//youtube.com"):
		u, err := url.Parse(stripped)
		if err != nil {
			return fallback
		}
		id := ""
		if strings.HasPrefix(u.Path, "/embed/") {
			id = strings.TrimPrefix(u.Path, "/embed/")
		} else {
			id = u.Query().Get("v")
		}
		if id == "" {
			return fallback
		}
		return Embed{Service: ServiceYouTube, Arg: id, URL: rawURL}

	case strings.HasPrefix(stripped, "//codepen.io"):
		return Embed{Service: ServiceCodepen, Arg: rawURL, URL: rawURL}

	case strings.HasPrefix(stripped, "//soundcloud.com"):
		return Embed{Service: ServiceSoundCloud, Arg: rawURL, URL: rawURL}

	case strings.HasPrefix(stripped, "//github.com"):
		return Embed{Service: ServiceGitHub, Arg: rawURL, URL: rawURL}

	case strings.HasPrefix(stripped, "//instagram.com"):
		u, err := url.Parse(stripped)
		if err != nil {
			return fallback
		}
		id := strings.ReplaceAll(strings.TrimPrefix(u.Path, "/p/"), "/", "")
		if id == "" {
			return fallback
		}
		return Embed{Service: ServiceInstagram, Arg: id, URL: rawURL}

	case strings.HasPrefix(stripped, "//repl.it"):
		u, err := url.Parse(stripped)
		if err != nil {
			return fallback
		}
		p := strings.TrimPrefix(u.Path, "/")
		if p == "" {
			return fallback
		}
		return Embed{Service: ServiceReplit, Arg: p, URL: rawURL}
	}

	return fallback
}

// queryOf parses the query string of a scheme-stripped URL.
func queryOf(stripped string) (url.Values, error) {
	u, err := url.Parse(stripped)
	if err != nil {
		return nil, err
	}
	return url.ParseQuery(u.RawQuery)
}
