package api

import (
	"github.com/nancruz/blogindex/internal/models"
	"github.com/nancruz/blogindex/internal/postservice"
	"github.com/nancruz/blogindex/internal/search"
)

// PostDetail is the full post response type (aliased from the domain layer).
type PostDetail = postservice.PostDetail

// PostListResponse wraps post listings.
type PostListResponse struct {
	Posts []models.PostSummary `json:"posts" validate:"required"`
	Total int                  `json:"total" example:"42" validate:"required"`
}

// TagListResponse wraps the tag listing with per-tag post counts.
type TagListResponse struct {
	Tags []postservice.TagCount `json:"tags" validate:"required"`
}

// SearchResponse wraps search results.
type SearchResponse struct {
	Results []search.Result `json:"results" validate:"required"`
}

func newPostList(posts []models.PostSummary) PostListResponse {
	if posts == nil {
		posts = []models.PostSummary{}
	}
	return PostListResponse{Posts: posts, Total: len(posts)}
}
