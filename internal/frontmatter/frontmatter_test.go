package frontmatter

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestParse_FrontmatterAndBody(t *testing.T) {
	input := []byte("---\ntitle: Hello\ntags:\n  - go\n  - blog\ndate: 2023-06-01\ndescription: A greeting\n---\n\n# Hello\nBody text.\n")
	doc, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Meta.Title != "Hello" {
		t.Errorf("title = %q, want %q", doc.Meta.Title, "Hello")
	}
	if len(doc.Meta.Tags) != 2 || doc.Meta.Tags[0] != "go" || doc.Meta.Tags[1] != "blog" {
		t.Errorf("tags = %v, want [go blog]", doc.Meta.Tags)
	}
	want := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	if !doc.Meta.Date.Equal(want) {
		t.Errorf("date = %v, want %v", doc.Meta.Date, want)
	}
	if doc.Meta.DateMissing {
		t.Error("date should not be flagged missing")
	}
	if doc.Meta.Description != "A greeting" {
		t.Errorf("description = %q", doc.Meta.Description)
	}
	if doc.Body != "# Hello\nBody text.\n" {
		t.Errorf("body = %q", doc.Body)
	}
}

func TestParse_QuotedDateLayouts(t *testing.T) {
	cases := map[string]time.Time{
		`"2023-01-02"`:                time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC),
		`"2023-01-02T10:30:00Z"`:      time.Date(2023, 1, 2, 10, 30, 0, 0, time.UTC),
		`"2023-01-02 10:30:00"`:       time.Date(2023, 1, 2, 10, 30, 0, 0, time.UTC),
		`"January 2, 2023"`:           time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC),
		`"2023-01-02T10:30:00+01:00"`: time.Date(2023, 1, 2, 9, 30, 0, 0, time.UTC),
	}
	for in, want := range cases {
		doc, err := Parse([]byte("---\ntitle: T\ndate: " + in + "\n---\nbody\n"))
		if err != nil {
			t.Errorf("date %s: unexpected error: %v", in, err)
			continue
		}
		if !doc.Meta.Date.Equal(want) {
			t.Errorf("date %s = %v, want %v", in, doc.Meta.Date, want)
		}
	}
}

func TestParse_MissingDateFlagged(t *testing.T) {
	doc, err := Parse([]byte("---\ntitle: Undated\n---\nbody\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !doc.Meta.DateMissing || !doc.Meta.Date.IsZero() {
		t.Errorf("expected zero date flagged missing, got %v (missing=%v)", doc.Meta.Date, doc.Meta.DateMissing)
	}
}

func TestParse_InvalidDate(t *testing.T) {
	_, err := Parse([]byte("---\ntitle: T\ndate: \"not a date\"\n---\nbody\n"))
	if err == nil {
		t.Fatal("expected error for invalid date")
	}
}

func TestParse_TagsDefaultEmpty(t *testing.T) {
	doc, err := Parse([]byte("---\ntitle: No tags\ndate: \"2023-01-01\"\n---\nbody\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Meta.Tags == nil || len(doc.Meta.Tags) != 0 {
		t.Errorf("tags = %#v, want empty non-nil slice", doc.Meta.Tags)
	}
}

func TestParse_SingleStringTag(t *testing.T) {
	doc, err := Parse([]byte("---\ntitle: One\ntags: go\n---\nbody\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Meta.Tags) != 1 || doc.Meta.Tags[0] != "go" {
		t.Errorf("tags = %v, want [go]", doc.Meta.Tags)
	}
}

func TestParse_NonStringTag(t *testing.T) {
	_, err := Parse([]byte("---\ntitle: T\ntags:\n  - go\n  - nested: map\n---\nbody\n"))
	if err == nil {
		t.Fatal("expected error for non-string tag")
	}
}

func TestParse_MissingTitle(t *testing.T) {
	_, err := Parse([]byte("---\ndate: \"2023-01-01\"\n---\nbody\n"))
	if !errors.Is(err, ErrMissingTitle) {
		t.Fatalf("expected ErrMissingTitle, got %v", err)
	}
}

func TestParse_NoFrontmatter(t *testing.T) {
	_, err := Parse([]byte("# Just a heading\nSome text.\n"))
	if !errors.Is(err, ErrMissingTitle) {
		t.Fatalf("expected ErrMissingTitle without front-matter, got %v", err)
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("---\ntitle: [unclosed\n---\nBody\n"))
	if err == nil {
		t.Fatal("expected error for malformed front-matter")
	}
}

func TestParse_TitleMustBeString(t *testing.T) {
	_, err := Parse([]byte("---\ntitle:\n  - a\n---\nBody\n"))
	if err == nil {
		t.Fatal("expected error for non-string title")
	}
}

func TestParse_ScalarTitleAndTags(t *testing.T) {
	doc, err := Parse([]byte("---\ntitle: 1984\ntags: [go, 2023, true, 1.5]\n---\nbody\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if doc.Meta.Title != "1984" {
		t.Errorf("title = %q, want 1984", doc.Meta.Title)
	}
	want := []string{"go", "2023", "true", "1.5"}
	if !reflect.DeepEqual(doc.Meta.Tags, want) {
		t.Errorf("tags = %v, want %v", doc.Meta.Tags, want)
	}
}

func TestParse_SingleNumericTag(t *testing.T) {
	doc, err := Parse([]byte("---\ntitle: T\ntags: 2023\n---\nbody\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !reflect.DeepEqual(doc.Meta.Tags, []string{"2023"}) {
		t.Errorf("tags = %v, want [2023]", doc.Meta.Tags)
	}
}
