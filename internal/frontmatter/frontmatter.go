// Package frontmatter splits a post file into its metadata block and
// markdown body and decodes the metadata keys the blog understands.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
)

// ErrMissingTitle is returned when the front-matter has no usable title.
var ErrMissingTitle = errors.New("title is required")

// dateLayouts are tried in order for string dates.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"January 2, 2006",
}

// Meta holds the decoded front-matter keys.
type Meta struct {
	Title       string
	Tags        []string
	Date        time.Time
	DateMissing bool
	Description string
	// Raw keeps every key as decoded, including the ones above.
	Raw map[string]any
}

// Document is a parsed post file.
type Document struct {
	Meta Meta
	Body string
}

// Parse decodes the leading front-matter block of data and returns the
// metadata together with the remaining markdown body.
func Parse(data []byte) (*Document, error) {
	raw := map[string]any{}
	body, err := frontmatter.Parse(bytes.NewReader(data), &raw)
	if err != nil {
		return nil, fmt.Errorf("front-matter: %w", err)
	}

	meta, err := decodeMeta(raw)
	if err != nil {
		return nil, err
	}

	return &Document{
		Meta: meta,
		Body: strings.TrimLeft(string(body), "\r\n"),
	}, nil
}

func decodeMeta(raw map[string]any) (Meta, error) {
	meta := Meta{Raw: raw, Tags: []string{}}

	title, err := optionalString(raw, "title")
	if err != nil {
		return Meta{}, err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return Meta{}, ErrMissingTitle
	}
	meta.Title = title

	if meta.Tags, err = decodeTags(raw["tags"]); err != nil {
		return Meta{}, err
	}

	if meta.Description, err = optionalString(raw, "description"); err != nil {
		return Meta{}, err
	}

	date, ok, err := decodeDate(raw["date"])
	if err != nil {
		return Meta{}, err
	}
	meta.Date = date
	meta.DateMissing = !ok

	return meta, nil
}

func optionalString(raw map[string]any, key string) (string, error) {
	v, ok := raw[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := scalarString(v)
	if !ok {
		return "", fmt.Errorf("%s must be a string, got %T", key, v)
	}
	return s, nil
}

// scalarString accepts strings and the plain scalars YAML produces for
// unquoted values such as `title: 1984` or `- 2023`.
func scalarString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case int, int64, uint64, float64, bool:
		return fmt.Sprint(t), true
	default:
		return "", false
	}
}

// decodeTags accepts a sequence of scalars or a single scalar.
func decodeTags(v any) ([]string, error) {
	switch t := v.(type) {
	case nil:
		return []string{}, nil
	case string, int, int64, uint64, float64, bool:
		s, _ := scalarString(t)
		if strings.TrimSpace(s) == "" {
			return []string{}, nil
		}
		return []string{s}, nil
	case []string:
		return append([]string{}, t...), nil
	case []any:
		out := make([]string, 0, len(t))
		for i, item := range t {
			s, ok := scalarString(item)
			if !ok {
				return nil, fmt.Errorf("tags[%d] must be a string, got %T", i, item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("tags must be a list of strings, got %T", v)
	}
}

// decodeDate returns ok=false when no date is present.
func decodeDate(v any) (time.Time, bool, error) {
	switch d := v.(type) {
	case nil:
		return time.Time{}, false, nil
	case time.Time:
		return d, true, nil
	case string:
		s := strings.TrimSpace(d)
		if s == "" {
			return time.Time{}, false, nil
		}
		for _, layout := range dateLayouts {
			if ts, err := time.Parse(layout, s); err == nil {
				return ts, true, nil
			}
		}
		return time.Time{}, false, fmt.Errorf("date %q is not a recognised date", s)
	default:
		return time.Time{}, false, fmt.Errorf("date must be a string or timestamp, got %T", v)
	}
}
