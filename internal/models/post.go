// Package models defines the domain types for the blog index.
package models

import "time"

// PostSummary is the list-view representation of a post (no body).
type PostSummary struct {
	Slug  string    `json:"slug"`
	Title string    `json:"title"`
	Tags  []string  `json:"tags"`
	Date  time.Time `json:"date"`
}

// Post is the full record returned by single-post retrieval.
type Post struct {
	PostSummary
	Content     string `json:"content"`
	Description string `json:"description,omitempty"`
}

// HasTag reports whether the post carries tag (exact match).
func (s PostSummary) HasTag(tag string) bool {
	for _, t := range s.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Entry describes one markdown file in the content directory.
type Entry struct {
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	UpdatedAt time.Time `json:"updated_at"`
}
