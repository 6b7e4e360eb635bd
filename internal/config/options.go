package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alecthomas/kong"

	"github.com/lepinkainen/blog-rss/internal/markdown"
	"github.com/lepinkainen/blog-rss/pkg/feed"
	"github.com/lepinkainen/blog-rss/pkg/providers"
	"github.com/lepinkainen/blog-rss/pkg/urlutils"
)

// ConfigurationError reports a missing or malformed setting.
type ConfigurationError struct {
	Field  string // flag name, e.g. "blog-path"
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("--%s %s", e.Field, e.Reason)
}

// Feed holds the settings shared by every command that renders a feed.
// Each field can also be set in the config file or as BLOG_RSS_<NAME>.
type Feed struct {
	Title       string `help:"Feed title"`
	Description string `help:"Feed description"`
	URL         string `name:"url" help:"Absolute root URL of the site, e.g. https://example.com"`
	BlogPath    string `help:"Path of the blog index, appended to --url"`
	FeedPath    string `help:"Path of the feed itself, appended to --url"`
	Limit       int    `help:"Maximum number of posts in the feed" default:"${default_limit}"`

	Format      string `help:"Output format: rss, atom or json" default:"rss"`
	Timezone    string `help:"IANA timezone for dates (default: local time)"`
	PostPath    string `help:"Href prefix for posts without an explicit href (default: --blog-path)"`
	Drafts      bool   `help:"Include posts marked as drafts"`
	Source      string `help:"Post source" default:"markdown"`
	TemplateDir string `help:"Directory with template overrides"`
}

// Vars supplies the interpolation variables used in Feed's struct tags.
func Vars() kong.Vars {
	return kong.Vars{
		"default_limit": strconv.Itoa(feed.DefaultLimit),
	}
}

// Validate checks every setting and returns all problems found, each as a
// *ConfigurationError.
func (f *Feed) Validate() error {
	var errs []error
	fail := func(field, reason string) {
		errs = append(errs, &ConfigurationError{Field: field, Reason: reason})
	}

	required := []struct {
		field string
		value string
	}{
		{"title", f.Title},
		{"description", f.Description},
		{"url", f.URL},
		{"blog-path", f.BlogPath},
		{"feed-path", f.FeedPath},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			fail(r.field, "is required")
		}
	}

	if f.URL != "" && !urlutils.IsHTTPURL(f.URL) {
		fail("url", "must be an absolute http(s) URL")
	}

	if f.Limit < 0 {
		fail("limit", "must not be negative")
	}

	if _, err := feed.ParseFeedType(f.Format); err != nil {
		fail("format", fmt.Sprintf("must be one of %v", feed.FeedTypes))
	}

	if _, err := f.Location(); err != nil {
		fail("timezone", fmt.Sprintf("is not a known timezone: %v", err))
	}

	if _, err := providers.GetProvider(f.Source); err != nil {
		fail("source", fmt.Sprintf("must be one of %v", providers.ListProviders()))
	}

	if f.TemplateDir != "" {
		if info, err := os.Stat(f.TemplateDir); err != nil || !info.IsDir() {
			fail("template-dir", "must be an existing directory")
		}
	}

	if len(errs) == 0 && !strings.HasSuffix(f.URL, "/") {
		for _, p := range []string{f.BlogPath, f.FeedPath} {
			if !urlutils.IsSitePath(p) {
				slog.Warn("Path does not start with a slash; links are joined to --url as-is", "path", p, "url", f.URL)
			}
		}
	}

	return errors.Join(errs...)
}

// Location returns the timezone used for all feed dates.
func (f *Feed) Location() (*time.Location, error) {
	if f.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(f.Timezone)
}

// HrefPrefix returns the prefix joined with post slugs.
func (f *Feed) HrefPrefix() string {
	if f.PostPath != "" {
		return f.PostPath
	}
	return f.BlogPath
}

// FeedConfig converts validated settings into a feed.Config.
func (f *Feed) FeedConfig() (feed.Config, error) {
	format, err := feed.ParseFeedType(f.Format)
	if err != nil {
		return feed.Config{}, &ConfigurationError{Field: "format", Reason: err.Error()}
	}

	loc, err := f.Location()
	if err != nil {
		return feed.Config{}, &ConfigurationError{Field: "timezone", Reason: err.Error()}
	}

	return feed.Config{
		Title:       f.Title,
		Description: f.Description,
		URL:         f.URL,
		BlogPath:    f.BlogPath,
		FeedPath:    f.FeedPath,
		Limit:       f.Limit,
		Format:      format,
		Location:    loc,
	}, nil
}

// SourceConfig returns the configuration value passed to the post source factory.
func (f *Feed) SourceConfig() (any, error) {
	switch f.Source {
	case markdown.Name:
		loc, err := f.Location()
		if err != nil {
			return nil, &ConfigurationError{Field: "timezone", Reason: err.Error()}
		}
		return &markdown.Config{
			HrefPrefix:    f.HrefPrefix(),
			IncludeDrafts: f.Drafts,
			Location:      loc,
		}, nil
	default:
		return nil, nil
	}
}
