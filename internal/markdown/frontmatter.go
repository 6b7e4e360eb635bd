package markdown

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const (
	yamlDelimiter = "---"
	tomlDelimiter = "+++"
)

// dateLayouts are tried in order for textual dates.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05 -07:00",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
}

// splitFrontMatter separates the front matter block from the body.
// delimiter is empty when the document has no front matter.
func splitFrontMatter(content []byte) (delimiter string, meta, body []byte, err error) {
	content = bytes.TrimPrefix(content, []byte("\xef\xbb\xbf"))
	content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))

	for _, delim := range []string{yamlDelimiter, tomlDelimiter} {
		opening := delim + "\n"
		if !bytes.HasPrefix(content, []byte(opening)) {
			continue
		}

		rest := content[len(opening):]

		// Empty block: closing delimiter directly after the opening one
		if bytes.HasPrefix(rest, []byte(delim+"\n")) || bytes.Equal(rest, []byte(delim)) {
			return delim, nil, bytes.TrimPrefix(bytes.TrimPrefix(rest, []byte(delim)), []byte("\n")), nil
		}

		closing := []byte("\n" + delim)
		for offset := 0; ; {
			idx := bytes.Index(rest[offset:], closing)
			if idx < 0 {
				return "", nil, nil, ErrUnterminatedFrontMatter
			}

			end := offset + idx
			after := rest[end+len(closing):]
			if len(after) == 0 || after[0] == '\n' {
				return delim, rest[:end+1], bytes.TrimPrefix(after, []byte("\n")), nil
			}

			// "---" was the start of a longer line; keep looking
			offset = end + len(closing)
		}
	}

	return "", nil, content, nil
}

// parseFrontMatter decodes the front matter of a post file.
func parseFrontMatter(content []byte) (frontMatter, []byte, error) {
	var fm frontMatter

	delimiter, meta, body, err := splitFrontMatter(content)
	if err != nil {
		return fm, nil, err
	}

	switch delimiter {
	case yamlDelimiter:
		if err := yaml.Unmarshal(meta, &fm); err != nil {
			return fm, nil, fmt.Errorf("invalid YAML front matter: %w", err)
		}
	case tomlDelimiter:
		if _, err := toml.Decode(string(meta), &fm); err != nil {
			return fm, nil, fmt.Errorf("invalid TOML front matter: %w", err)
		}
	}

	return fm, body, nil
}

// parseDate parses a textual date, using loc for values without a zone.
func parseDate(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
}

// firstHeading returns the text of the first level-one ATX heading in body.
func firstHeading(body []byte) string {
	scanner := bufio.NewScanner(bytes.NewReader(body))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimRight(strings.TrimPrefix(line, "# "), "#"))
		}
	}
	return ""
}
