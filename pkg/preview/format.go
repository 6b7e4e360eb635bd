// Package preview provides interactive feed post preview functionality using Bubble Tea TUI.
package preview

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/lepinkainen/blog-rss/pkg/feed"
	"github.com/lepinkainen/blog-rss/pkg/providers"
)

var itemRegex = regexp.MustCompile(`(?s)<item>.*?</item>`)

const separator = "═══════════════════════════════════════════════════════════════════════\n"

// wrapText wraps text to the specified width, breaking at word boundaries when possible
func wrapText(text string, width int) string {
	if width <= 0 {
		width = 70
	}

	var result strings.Builder
	var line strings.Builder
	lineLen := 0

	words := strings.Fields(text)
	for i, word := range words {
		wordLen := len(word)

		if lineLen > 0 && lineLen+1+wordLen > width {
			result.WriteString(line.String())
			result.WriteString("\n")
			line.Reset()
			lineLen = 0
		}

		if lineLen > 0 {
			line.WriteString(" ")
			lineLen++
		}

		line.WriteString(word)
		lineLen += wordLen

		if i == len(words)-1 {
			result.WriteString(line.String())
		}
	}

	return result.String()
}

// FormatCompactListItem formats a single post in compact list format
// Example: " 1. 2024-03-01  Hello World"
func FormatCompactListItem(index int, post providers.Post) string {
	title := post.Title

	const maxTitleLength = 70
	if len(title) > maxTitleLength {
		title = title[:maxTitleLength-3] + "..."
	}

	line := fmt.Sprintf("%2d. %s  %s", index+1, post.Date.Format("2006-01-02"), title)
	if post.Draft {
		line += " [draft]"
	}
	return line
}

// FormatDetailedItem formats a single post with all metadata
func FormatDetailedItem(post providers.Post, config feed.Config, now time.Time) string {
	var b strings.Builder

	b.WriteString(separator)
	fmt.Fprintf(&b, "Title: %s\n", post.Title)
	fmt.Fprintf(&b, "Link: %s\n", config.ItemLink(post.Href))
	fmt.Fprintf(&b, "Published: %s (%s)\n", post.Date.Format(time.RFC1123Z), formatTimeAgo(post.Date, now))

	if post.Slug != "" {
		fmt.Fprintf(&b, "Slug: %s\n", post.Slug)
	}
	if post.Source != "" {
		fmt.Fprintf(&b, "Source: %s\n", post.Source)
	}
	if post.Draft {
		b.WriteString("Draft: yes\n")
	}

	if post.HasDescription() {
		fmt.Fprintf(&b, "\nDescription:\n%s\n", wrapText(post.Description, 70))
	} else {
		b.WriteString("\nNo description; the item will have no <description> element.\n")
	}

	b.WriteString(separator)

	return b.String()
}

// FormatXMLItem renders a single post as the <item> element it will have in the
// RSS feed, wrapped for display in the terminal
func FormatXMLItem(post providers.Post, generator *feed.Generator) string {
	item, err := RenderItem(post, generator)
	if err != nil {
		return err.Error()
	}

	return wrapXMLContent(item, 80)
}

// RenderItem returns the <item> element for post exactly as it appears in the RSS feed.
func RenderItem(post providers.Post, generator *feed.Generator) (string, error) {
	single := *generator
	single.Config.Limit = 1
	single.Config.Format = feed.RSS

	out, err := single.Render([]providers.Post{post})
	if err != nil {
		return "", fmt.Errorf("error generating feed: %w", err)
	}

	match := itemRegex.Find(out)
	if match == nil {
		return "", errors.New("no item found in generated feed")
	}

	return string(match), nil
}

// wrapXMLContent wraps only the content inside tags, not the tags themselves
func wrapXMLContent(xml string, width int) string {
	var result strings.Builder
	lines := strings.Split(xml, "\n")

	for _, line := range lines {
		if len(line) <= width {
			result.WriteString(line)
			result.WriteString("\n")
			continue
		}

		remaining := line
		for len(remaining) > width {
			breakPoint := width
			for breakPoint > 0 && !utf8.RuneStart(remaining[breakPoint]) {
				breakPoint--
			}
			// Prefer breaking after a space or the end of a tag
			for i := width; i > width-20 && i > 0; i-- {
				if remaining[i] == ' ' || remaining[i] == '>' {
					breakPoint = i + 1
					break
				}
			}
			result.WriteString(remaining[:breakPoint])
			result.WriteString("\n")
			remaining = remaining[breakPoint:]
		}
		if remaining != "" {
			result.WriteString(remaining)
			result.WriteString("\n")
		}
	}

	return result.String()
}

// formatTimeAgo formats t relative to now as a human-readable "X ago" string
func formatTimeAgo(t, now time.Time) string {
	duration := now.Sub(t)

	switch {
	case duration < 0:
		return "scheduled"
	case duration < time.Minute:
		return "just now"
	case duration < time.Hour:
		mins := int(duration.Minutes())
		if mins == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", mins)
	case duration < 24*time.Hour:
		hours := int(duration.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	case duration < 7*24*time.Hour:
		days := int(duration.Hours() / 24)
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	default:
		return t.Format("2006-01-02")
	}
}
