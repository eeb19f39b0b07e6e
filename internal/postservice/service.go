// Package postservice coordinates the post index, the search mirror and
// markdown rendering for the transports (HTTP, MCP, CLI).
package postservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/nancruz/blogindex/internal/models"
	"github.com/nancruz/blogindex/internal/postindex"
	"github.com/nancruz/blogindex/internal/render"
	"github.com/nancruz/blogindex/internal/search"
	"github.com/nancruz/blogindex/internal/storage"
)

// ErrSearchDisabled is returned by Search when no search mirror is attached.
var ErrSearchDisabled = errors.New("search is not enabled")

// PostDetail is the full representation of a post.
type PostDetail struct {
	models.Post
	HTML string `json:"html,omitempty"`
}

// TagCount is a tag together with the number of posts carrying it.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// Service coordinates index, search and rendering.
type Service struct {
	store    storage.Provider
	index    *postindex.Index
	db       *search.DB
	renderer *render.Renderer
	logger   *slog.Logger
}

// NewService creates a post service. db may be nil, in which case Search
// and Reindex report ErrSearchDisabled.
func NewService(store storage.Provider, db *search.DB, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		store:    store,
		index:    postindex.New(store, logger),
		db:       db,
		renderer: render.New(),
		logger:   logger,
	}
}

// Index exposes the underlying post index.
func (s *Service) Index() *postindex.Index { return s.index }

// Store returns the content directory the service reads from.
func (s *Service) Store() storage.Provider { return s.store }

// SearchDB returns the search mirror, or nil when search is disabled.
func (s *Service) SearchDB() *search.DB { return s.db }

// ListPosts returns all posts, or only those tagged tag when tag is non-empty.
func (s *Service) ListPosts(ctx context.Context, tag string) ([]models.PostSummary, error) {
	if tag == "" {
		return s.index.ListAll(ctx)
	}
	return s.index.ListByTag(ctx, tag)
}

// GetPost returns one post, optionally with its body rendered to HTML.
func (s *Service) GetPost(ctx context.Context, slug string, withHTML bool) (*PostDetail, error) {
	post, err := s.index.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	detail := &PostDetail{Post: *post}
	if withHTML {
		html, err := s.renderer.HTML(post.Content)
		if err != nil {
			return nil, fmt.Errorf("postservice: render %q: %w", slug, err)
		}
		detail.HTML = html
	}
	return detail, nil
}

// Tags returns the distinct tags across all posts.
func (s *Service) Tags(ctx context.Context) ([]string, error) {
	return s.index.ListAllTags(ctx)
}

// TagCounts returns every tag with its post count, ordered by tag name.
func (s *Service) TagCounts(ctx context.Context) ([]TagCount, error) {
	posts, err := s.index.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, p := range posts {
		for _, t := range p.Tags {
			counts[t]++
		}
	}
	out := make([]TagCount, 0, len(counts))
	for tag, n := range counts {
		out = append(out, TagCount{Tag: tag, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Tag < out[j].Tag })
	return out, nil
}

// Search delegates full-text search to the mirror.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]search.Result, error) {
	if s.db == nil {
		return nil, ErrSearchDisabled
	}
	return s.db.Search(ctx, query, limit)
}

// Reindex brings the search mirror in line with the content directory.
func (s *Service) Reindex(ctx context.Context) error {
	if s.db == nil {
		return ErrSearchDisabled
	}
	return search.Sync(ctx, s.db, s.store, s.logger)
}

// Check reports content problems without failing on the first one.
func (s *Service) Check(ctx context.Context) ([]postindex.Issue, error) {
	return s.index.Check(ctx)
}
