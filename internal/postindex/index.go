// Package postindex answers the blog's post queries straight from the
// content directory. Every call performs its own complete scan; nothing is
// cached between calls, so an Index is safe for concurrent use.
package postindex

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"
	"strings"

	"github.com/nancruz/blogindex/internal/apperr"
	"github.com/nancruz/blogindex/internal/frontmatter"
	"github.com/nancruz/blogindex/internal/models"
	"github.com/nancruz/blogindex/internal/storage"
)

// Index is the post query layer over a storage.Provider.
type Index struct {
	store  storage.Provider
	logger *slog.Logger
}

// New creates an Index reading from store. A nil logger discards output.
func New(store storage.Provider, logger *slog.Logger) *Index {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Index{store: store, logger: logger}
}

// ListAll returns a summary of every post, most recent first. Posts with
// the same date are ordered by slug. Posts without a date sort last.
// A single unparseable file fails the whole call with its *apperr.ParseError.
func (ix *Index) ListAll(ctx context.Context) ([]models.PostSummary, error) {
	entries, err := ix.store.List()
	if err != nil {
		return nil, fmt.Errorf("postindex: list: %w", err)
	}

	out := make([]models.PostSummary, 0, len(entries))
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		post, err := ix.load(e.Name)
		if err != nil {
			return nil, fmt.Errorf("postindex: list: %w", err)
		}
		out = append(out, post.PostSummary)
	}

	sortByDateDesc(out)
	return out, nil
}

// GetBySlug loads the post stored in <slug>.md, body and description
// included. Unknown slugs yield an error matching apperr.ErrNotFound.
func (ix *Index) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name := slug + storage.Ext
	if !validSlug(slug) || !storage.IsPostFile(name) {
		return nil, fmt.Errorf("postindex: get %q: %w", slug, apperr.ErrNotFound)
	}
	post, err := ix.load(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("postindex: get %q: %w", slug, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("postindex: get %q: %w", slug, err)
	}
	return post, nil
}

// ListByTag returns ListAll restricted to posts carrying tag, in the same order.
func (ix *Index) ListByTag(ctx context.Context, tag string) ([]models.PostSummary, error) {
	all, err := ix.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.PostSummary, 0, len(all))
	for _, p := range all {
		if p.HasTag(tag) {
			out = append(out, p)
		}
	}
	return out, nil
}

// ListAllTags returns the distinct tags across all posts. The result is a
// set; it is returned in order of first appearance in ListAll.
func (ix *Index) ListAllTags(ctx context.Context) ([]string, error) {
	all, err := ix.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	tags := []string{}
	for _, p := range all {
		for _, t := range p.Tags {
			if _, dup := seen[t]; dup {
				continue
			}
			seen[t] = struct{}{}
			tags = append(tags, t)
		}
	}
	return tags, nil
}

// load reads and parses a single file.
func (ix *Index) load(name string) (*models.Post, error) {
	data, err := ix.store.Read(name)
	if err != nil {
		return nil, err
	}
	post, missingDate, err := Decode(name, data)
	if err != nil {
		return nil, err
	}
	if missingDate {
		ix.logger.Warn("post has no date; sorting it last", slog.String("file", name))
	}
	return post, nil
}

// Decode parses the raw bytes of file name into a post. missingDate reports
// a post without a date, whose Date is left zero.
func Decode(name string, data []byte) (post *models.Post, missingDate bool, err error) {
	doc, err := frontmatter.Parse(data)
	if err != nil {
		return nil, false, &apperr.ParseError{File: name, Err: err}
	}
	return &models.Post{
		PostSummary: models.PostSummary{
			Slug:  storage.SlugOf(name),
			Title: doc.Meta.Title,
			Tags:  doc.Meta.Tags,
			Date:  doc.Meta.Date,
		},
		Content:     doc.Body,
		Description: doc.Meta.Description,
	}, doc.Meta.DateMissing, nil
}

func validSlug(slug string) bool {
	if slug == "" || slug == "." || slug == ".." {
		return false
	}
	return !strings.ContainsAny(slug, `/\`)
}

func sortByDateDesc(posts []models.PostSummary) {
	sort.SliceStable(posts, func(i, j int) bool {
		a, b := posts[i], posts[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		return a.Slug < b.Slug
	})
}
