package markdown

import (
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Errors reported for individual post files.
var (
	ErrMissingTitle            = errors.New("post has no title")
	ErrMissingDate             = errors.New("post has no date")
	ErrInvalidDate             = errors.New("unrecognised date")
	ErrUnterminatedFrontMatter = errors.New("front matter is not terminated")
)

// Config configures the markdown post source.
type Config struct {
	// HrefPrefix is joined with the post slug when a post has no explicit href.
	HrefPrefix string
	// IncludeDrafts keeps posts marked `draft: true`.
	IncludeDrafts bool
	// Location is used for dates written without a zone; time.Local when nil.
	Location *time.Location
}

// frontMatter holds the recognised metadata keys of a post.
type frontMatter struct {
	Title       string   `yaml:"title" toml:"title"`
	Date        postDate `yaml:"date" toml:"date"`
	Description string   `yaml:"description" toml:"description"`
	Summary     string   `yaml:"summary" toml:"summary"`
	Slug        string   `yaml:"slug" toml:"slug"`
	Href        string   `yaml:"href" toml:"href"`
	Permalink   string   `yaml:"permalink" toml:"permalink"`
	Draft       bool     `yaml:"draft" toml:"draft"`
}

// postDate keeps a front matter date undecided until the configured location is known.
type postDate struct {
	raw      string    // textual date, parsed later
	absolute time.Time // date that carried its own zone
	wall     time.Time // zone-less date; only the clock fields are meaningful
	kind     dateKind
}

type dateKind int

const (
	dateUnset dateKind = iota
	dateRaw
	dateAbsolute
	dateWall
)

// UnmarshalYAML keeps the scalar text so zone-less dates can be placed in the configured location.
func (d *postDate) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: date must be a scalar", ErrInvalidDate)
	}
	if value.Value == "" {
		return nil
	}
	d.raw = value.Value
	d.kind = dateRaw
	return nil
}

// UnmarshalTOML accepts TOML datetimes and strings.
func (d *postDate) UnmarshalTOML(value any) error {
	switch v := value.(type) {
	case time.Time:
		// Local dates and datetimes are decoded into these named zones
		switch v.Location().String() {
		case "datetime-local", "date-local":
			d.wall = v
			d.kind = dateWall
		default:
			d.absolute = v
			d.kind = dateAbsolute
		}
	case string:
		if v == "" {
			return nil
		}
		d.raw = v
		d.kind = dateRaw
	default:
		return fmt.Errorf("%w: unsupported date value %v", ErrInvalidDate, value)
	}
	return nil
}

// IsSet reports whether a date was present.
func (d postDate) IsSet() bool {
	return d.kind != dateUnset
}

// Resolve returns the date as an absolute time, interpreting zone-less values in loc.
func (d postDate) Resolve(loc *time.Location) (time.Time, error) {
	switch d.kind {
	case dateAbsolute:
		return d.absolute, nil
	case dateWall:
		return time.Date(d.wall.Year(), d.wall.Month(), d.wall.Day(),
			d.wall.Hour(), d.wall.Minute(), d.wall.Second(), d.wall.Nanosecond(), loc), nil
	case dateRaw:
		return parseDate(d.raw, loc)
	}
	return time.Time{}, ErrMissingDate
}
