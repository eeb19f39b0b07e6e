// Package storage defines the read-only content directory abstraction.
package storage

import "github.com/nancruz/blogindex/internal/models"

// Ext is the file extension of post files.
const Ext = ".md"

// Provider is the interface for content directory access.
type Provider interface {
	// List returns one entry per markdown file directly under the content root.
	List() ([]models.Entry, error)
	// Read returns the raw bytes of the named file (a bare file name, no directories).
	Read(name string) ([]byte, error)
	// Root returns the absolute path of the content directory.
	Root() string
}
