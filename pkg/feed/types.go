package feed

import (
	"fmt"
	"time"
)

// Language is the fixed channel language of generated feeds.
const Language = "en-US"

// DefaultLimit is the number of posts included when no limit is configured.
const DefaultLimit = 15

// Config holds the channel metadata and rendering options for a feed.
type Config struct {
	Title       string
	Description string
	URL         string // absolute root URL, e.g. "https://example.com"
	BlogPath    string // appended to URL for the channel link
	FeedPath    string // appended to URL for the atom self link
	Limit       int
	Format      FeedType
	Location    *time.Location // zone used for all dates, time.Local when nil
}

// ChannelLink returns the absolute link to the blog index.
func (c Config) ChannelLink() string {
	return c.URL + c.BlogPath
}

// SelfLink returns the absolute link to the feed itself.
func (c Config) SelfLink() string {
	return c.URL + c.FeedPath
}

// ItemLink returns the absolute link to a post.
func (c Config) ItemLink(href string) string {
	return c.URL + href
}

func (c Config) location() *time.Location {
	if c.Location == nil {
		return time.Local
	}
	return c.Location
}

// FeedType represents the type of feed to generate
type FeedType string

const (
	RSS  FeedType = "rss"
	Atom FeedType = "atom"
	JSON FeedType = "json"
)

// FeedTypes lists every supported feed type.
var FeedTypes = []FeedType{RSS, Atom, JSON}

// ParseFeedType converts a user supplied name to a FeedType.
// The empty string selects RSS.
func ParseFeedType(name string) (FeedType, error) {
	switch FeedType(name) {
	case "", RSS:
		return RSS, nil
	case Atom:
		return Atom, nil
	case JSON:
		return JSON, nil
	}
	return "", fmt.Errorf("unsupported feed type: %s", name)
}
