package markdown

import (
	"errors"
	"log/slog"
	"strings"
)

// HeadingStyle selects how h1..hN elements are written.
type HeadingStyle string

const (
	// ATX writes "# heading".
	ATX HeadingStyle = "atx"
	// ATXClosed writes "# heading #".
	ATXClosed HeadingStyle = "atx_closed"
	// Underlined writes setext headings for levels 1 and 2 and ATX beyond.
	Underlined HeadingStyle = "underlined"
)

// DefaultBullets is cycled by unordered list nesting depth.
const DefaultBullets = "*+-"

// ErrConflictingFilter is returned when both strip and convert tags are configured.
var ErrConflictingFilter = errors.New("you may specify either tags to strip or tags to convert, but not both")

// Options configures a Converter. The zero value converts with the defaults:
// underlined headings, "*+-" bullets and autolinks.
type Options struct {
	// Strip lists tags that are never converted; their children still render.
	Strip []string `mapstructure:"strip" yaml:"strip,omitempty"`
	// Convert lists the only tags that are converted. Mutually exclusive with Strip.
	Convert      []string     `mapstructure:"convert" yaml:"convert,omitempty"`
	HeadingStyle HeadingStyle `mapstructure:"heading_style" yaml:"heading_style"`
	Bullets      string       `mapstructure:"bullets" yaml:"bullets"`
	// NoAutolinks writes [url](url) instead of <url> for links whose text
	// equals their href.
	NoAutolinks bool `mapstructure:"no_autolinks" yaml:"no_autolinks"`

	Logger *slog.Logger `mapstructure:"-" yaml:"-"`
}

// DefaultOptions returns underlined headings, "*+-" bullets and autolinks enabled.
func DefaultOptions() Options {
	return Options{
		HeadingStyle: Underlined,
		Bullets:      DefaultBullets,
	}
}

// Filter decides which tags get converted. It is one of AllowAll,
// StripList or ConvertList.
type Filter interface {
	Allows(tag string) bool
	isFilter()
}

// AllowAll converts every tag.
type AllowAll struct{}

// StripList converts every tag except the listed ones.
type StripList map[string]struct{}

// ConvertList converts only the listed tags.
type ConvertList map[string]struct{}

func (AllowAll) Allows(string) bool { return true }

func (s StripList) Allows(tag string) bool {
	_, found := s[strings.ToLower(tag)]
	return !found
}

func (c ConvertList) Allows(tag string) bool {
	_, found := c[strings.ToLower(tag)]
	return found
}

func (AllowAll) isFilter()    {}
func (StripList) isFilter()   {}
func (ConvertList) isFilter() {}

// Filter builds the tag filter, failing when both lists are set.
func (o Options) Filter() (Filter, error) {
	switch {
	case len(o.Strip) > 0 && len(o.Convert) > 0:
		return nil, ErrConflictingFilter
	case len(o.Strip) > 0:
		return StripList(tagSet(o.Strip)), nil
	case len(o.Convert) > 0:
		return ConvertList(tagSet(o.Convert)), nil
	default:
		return AllowAll{}, nil
	}
}

func tagSet(tags []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			set[t] = struct{}{}
		}
	}
	return set
}
