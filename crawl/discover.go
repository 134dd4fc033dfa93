// Package crawl discovers the article pages of a blog so a whole site can be
// converted in one run. Discovery reads sitemap.xml first and falls back to
// following links breadth first, staying inside the start URL's scope.
package crawl

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"

	"github.com/gaurav-prasanna/devmark/core"
)

// DefaultMaxPages bounds a crawl when no limit is given.
const DefaultMaxPages = 100

var linkMatcher = cascadia.MustCompile("a[href]")

type sitemapURL struct {
	Loc string `xml:"loc"`
}

type urlSet struct {
	URLs []sitemapURL `xml:"url"`
}

// Discoverer finds in-scope pages using a core.Fetcher.
type Discoverer struct {
	fetcher  core.Fetcher
	maxPages int
	logger   *slog.Logger
}

// New creates a Discoverer. maxPages <= 0 uses DefaultMaxPages; a nil
// logger discards output.
func New(fetcher core.Fetcher, maxPages int, logger *slog.Logger) *Discoverer {
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Discoverer{fetcher: fetcher, maxPages: maxPages, logger: logger}
}

// Discover returns up to maxPages in-scope URLs. The start URL is always first.
func (d *Discoverer) Discover(ctx context.Context, startURL string) ([]string, error) {
	start, err := url.Parse(startURL)
	if err != nil || start.Host == "" {
		return nil, fmt.Errorf("invalid start URL %q", startURL)
	}
	scope := NewScope(start)

	urls, err := d.fromSitemap(ctx, start, scope)
	if err == nil && len(urls) > 1 {
		return urls, nil
	}
	if err != nil {
		d.logger.Debug("sitemap unavailable, following links", "error", err)
	}
	return d.fromLinks(ctx, startURL, scope)
}

func (d *Discoverer) fromSitemap(ctx context.Context, start *url.URL, scope Scope) ([]string, error) {
	sitemap := url.URL{Scheme: start.Scheme, Host: start.Host, Path: "/sitemap.xml"}
	result, err := d.fetcher.Fetch(ctx, sitemap.String())
	if err != nil {
		return nil, err
	}

	var set urlSet
	if err := xml.Unmarshal([]byte(result.HTML), &set); err != nil {
		return nil, fmt.Errorf("parsing sitemap: %w", err)
	}

	f := newFrontier()
	f.push(NormalizeURL(start.String()))
	for _, u := range set.URLs {
		if f.size() >= d.maxPages {
			break
		}
		loc := strings.TrimSpace(u.Loc)
		if scope.Contains(loc) {
			f.push(NormalizeURL(loc))
		}
	}
	return f.urls(), nil
}

func (d *Discoverer) fromLinks(ctx context.Context, startURL string, scope Scope) ([]string, error) {
	f := newFrontier()
	f.push(NormalizeURL(startURL))

	for f.pending() && f.size() < d.maxPages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		current := f.pop()

		result, err := d.fetcher.Fetch(ctx, current)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			d.logger.Warn("skipping page", "url", current, "error", err)
			continue
		}

		links, err := extractLinks(result.HTML, current)
		if err != nil {
			continue
		}
		for _, link := range links {
			if f.size() >= d.maxPages {
				break
			}
			if scope.Contains(link) {
				f.push(NormalizeURL(link))
			}
		}
	}
	return f.urls(), nil
}

// extractLinks returns the absolute targets of all <a href> elements.
func extractLinks(html string, pageURL string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, err
	}

	var links []string
	doc.FindMatcher(linkMatcher).Each(func(_ int, s *goquery.Selection) {
		if resolved := resolveURL(s.AttrOr("href", ""), base); resolved != "" {
			links = append(links, resolved)
		}
	})
	return links, nil
}

func resolveURL(href string, base *url.URL) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return ""
	}
	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(parsed)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	resolved.Fragment = ""
	return resolved.String()
}
