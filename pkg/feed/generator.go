package feed

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/gorilla/feeds"
	"github.com/samber/lo"

	"github.com/lepinkainen/blog-rss/pkg/providers"
)

// Generator turns an ordered post list into a feed document.
type Generator struct {
	Config Config

	// Now supplies the build timestamp; time.Now when nil.
	Now func() time.Time

	templates *TemplateGenerator
}

// NewGenerator creates a new feed generator
func NewGenerator(config Config) *Generator {
	return &Generator{
		Config:    config,
		Now:       time.Now,
		templates: NewTemplateGenerator(),
	}
}

// Limit returns the first Config.Limit posts. Posts are expected newest first
// and are never re-ordered.
func (g *Generator) Limit(posts []providers.Post) []providers.Post {
	return lo.Slice(posts, 0, g.Config.Limit)
}

func (g *Generator) now() time.Time {
	if g.Now == nil {
		return time.Now()
	}
	return g.Now()
}

// BuildTemplateData limits the posts and converts them into template data.
// All dates are moved into the configured location.
func (g *Generator) BuildTemplateData(posts []providers.Post) *TemplateData {
	loc := g.Config.location()

	items := lo.Map(g.Limit(posts), func(post providers.Post, _ int) TemplateItem {
		link := g.Config.ItemLink(post.Href)
		return TemplateItem{
			Title:       post.Title,
			Link:        link,
			GUID:        link,
			Published:   post.Date.In(loc),
			Description: post.Description,
		}
	})

	return &TemplateData{
		FeedTitle:       g.Config.Title,
		FeedLink:        g.Config.ChannelLink(),
		FeedDescription: g.Config.Description,
		Language:        Language,
		SelfLink:        g.Config.SelfLink(),
		Updated:         g.now().In(loc),
		Items:           items,
	}
}

// Render renders the feed in the configured format into a byte slice.
func (g *Generator) Render(posts []providers.Post) ([]byte, error) {
	var buf bytes.Buffer

	feedType := g.Config.Format
	if feedType == "" {
		feedType = RSS
	}

	switch feedType {
	case RSS:
		if err := g.renderRSS(posts, &buf); err != nil {
			return nil, err
		}
	case Atom, JSON:
		if err := g.renderGorilla(posts, feedType, &buf); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported feed type: %s", feedType)
	}

	slog.Debug("Rendered feed", "type", feedType, "items", len(g.Limit(posts)), "bytes", buf.Len())
	return buf.Bytes(), nil
}

func (g *Generator) renderRSS(posts []providers.Post, w io.Writer) error {
	if err := g.templates.LoadEmbeddedTemplate(RSSTemplateName); err != nil {
		return err
	}

	return g.templates.GenerateFromTemplate(RSSTemplateName, g.BuildTemplateData(posts), w)
}

// BuildFeed converts the limited posts into a gorilla/feeds document.
func (g *Generator) BuildFeed(posts []providers.Post) *feeds.Feed {
	data := g.BuildTemplateData(posts)

	feed := &feeds.Feed{
		Title:       data.FeedTitle,
		Link:        &feeds.Link{Href: data.FeedLink},
		Description: data.FeedDescription,
		Id:          data.SelfLink,
		Updated:     data.Updated,
		Created:     data.Updated,
	}

	for _, item := range data.Items {
		feed.Items = append(feed.Items, &feeds.Item{
			Title:       item.Title,
			Link:        &feeds.Link{Href: item.Link},
			Id:          item.GUID,
			Description: item.Description,
			Created:     item.Published,
			Updated:     item.Published,
		})
	}

	return feed
}

func (g *Generator) renderGorilla(posts []providers.Post, feedType FeedType, w io.Writer) error {
	feed := g.BuildFeed(posts)

	var err error
	switch feedType {
	case Atom:
		err = feed.WriteAtom(w)
	case JSON:
		err = feed.WriteJSON(w)
	}

	if err != nil {
		return fmt.Errorf("failed to write %s feed: %w", feedType, err)
	}
	return nil
}
