// Package markdown reads blog posts and their front matter from a directory of markdown files.
package markdown

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/lepinkainen/blog-rss/pkg/providers"
)

// Name is the registry name of the markdown post source.
const Name = "markdown"

var datePrefix = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})-(.+)$`)

func init() {
	providers.RegisterProvider(Name, &providers.ProviderInfo{
		Name:        "Markdown",
		Description: "Blog posts from markdown files with YAML or TOML front matter",
		Version:     "1.0.0",
		Factory: func(config any) (providers.PostProvider, error) {
			switch c := config.(type) {
			case nil:
				return NewProvider(Config{}), nil
			case Config:
				return NewProvider(c), nil
			case *Config:
				if c == nil {
					return NewProvider(Config{}), nil
				}
				return NewProvider(*c), nil
			default:
				return nil, fmt.Errorf("invalid config type for markdown provider: %T", config)
			}
		},
	})
}

// Provider implements the PostProvider interface for markdown files
type Provider struct {
	config Config
}

// NewProvider creates a new markdown provider
func NewProvider(config Config) *Provider {
	if config.Location == nil {
		config.Location = time.Local
	}
	return &Provider{config: config}
}

// FetchPosts reads every post below dir and returns them newest first.
func (p *Provider) FetchPosts(dir string) ([]providers.Post, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open blog directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	var posts []providers.Post
	drafts := 0

	err = filepath.WalkDir(dir, func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if filePath != dir && skipName(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if !isPostFile(d.Name()) {
			return nil
		}

		post, err := p.readPost(filePath)
		if err != nil {
			return fmt.Errorf("%s: %w", filePath, err)
		}

		if post.Draft && !p.config.IncludeDrafts {
			slog.Debug("Skipping draft", "path", filePath)
			drafts++
			return nil
		}

		posts = append(posts, post)
		return nil
	})
	if err != nil {
		return nil, err
	}

	SortNewestFirst(posts)

	slog.Debug("Read markdown posts", "dir", dir, "posts", len(posts), "drafts", drafts)
	return posts, nil
}

// readPost parses a single markdown file into a post.
func (p *Provider) readPost(filePath string) (providers.Post, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return providers.Post{}, err
	}

	fm, body, err := parseFrontMatter(content)
	if err != nil {
		return providers.Post{}, err
	}

	slug, fileDate := slugFromPath(filePath)
	if fm.Slug != "" {
		slug = fm.Slug
	}

	title := strings.TrimSpace(fm.Title)
	if title == "" {
		title = firstHeading(body)
	}
	if title == "" {
		return providers.Post{}, ErrMissingTitle
	}

	var date time.Time
	switch {
	case fm.Date.IsSet():
		date, err = fm.Date.Resolve(p.config.Location)
		if err != nil {
			return providers.Post{}, err
		}
	case fileDate != "":
		date, err = parseDate(fileDate, p.config.Location)
		if err != nil {
			return providers.Post{}, err
		}
	default:
		return providers.Post{}, ErrMissingDate
	}

	description := strings.TrimSpace(fm.Description)
	if description == "" {
		description = strings.TrimSpace(fm.Summary)
	}

	return providers.Post{
		Title:       title,
		Date:        date,
		Href:        p.href(fm, slug),
		Description: description,
		Slug:        slug,
		Source:      filePath,
		Draft:       fm.Draft,
	}, nil
}

func (p *Provider) href(fm frontMatter, slug string) string {
	switch {
	case fm.Href != "":
		return fm.Href
	case fm.Permalink != "":
		return fm.Permalink
	}
	return path.Join("/", p.config.HrefPrefix, slug)
}

// slugFromPath derives the slug and an optional YYYY-MM-DD date from a file name.
// index.md files take the name of their directory.
func slugFromPath(filePath string) (slug, date string) {
	base := filepath.Base(filePath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	if strings.EqualFold(stem, "index") {
		stem = filepath.Base(filepath.Dir(filePath))
	}

	if m := datePrefix.FindStringSubmatch(stem); m != nil {
		return m[2], m[1]
	}
	return stem, ""
}

func isPostFile(name string) bool {
	if skipName(name) || strings.EqualFold(name, "README.md") {
		return false
	}
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".md" || ext == ".markdown"
}

func skipName(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}

// SortNewestFirst orders posts by descending date. Posts with equal dates are ordered by title.
func SortNewestFirst(posts []providers.Post) {
	slices.SortStableFunc(posts, func(a, b providers.Post) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		return strings.Compare(a.Title, b.Title)
	})
}
