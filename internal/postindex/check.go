package postindex

import (
	"context"
	"fmt"

	"github.com/goliatone/go-slug"
)

// Severity levels reported by Check.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Issue is a problem found in one content file.
type Issue struct {
	File     string `json:"file"`
	Slug     string `json:"slug"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// Check scans every post file and reports problems without stopping at the
// first one: parse failures, posts with no date, and slugs that are not
// URL-safe. Only an unreadable content directory is returned as an error.
func (ix *Index) Check(ctx context.Context) ([]Issue, error) {
	entries, err := ix.store.List()
	if err != nil {
		return nil, fmt.Errorf("postindex: check: %w", err)
	}

	var issues []Issue
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if !slug.IsValid(e.Slug) {
			msg := "slug is not URL-safe"
			if normalized, err := slug.Normalize(e.Slug); err == nil && normalized != "" {
				msg = fmt.Sprintf("slug is not URL-safe; consider renaming to %q", normalized)
			}
			issues = append(issues, Issue{File: e.Name, Slug: e.Slug, Severity: SeverityWarning, Message: msg})
		}

		data, err := ix.store.Read(e.Name)
		if err != nil {
			issues = append(issues, Issue{File: e.Name, Slug: e.Slug, Severity: SeverityError, Message: err.Error()})
			continue
		}
		_, missingDate, err := Decode(e.Name, data)
		switch {
		case err != nil:
			issues = append(issues, Issue{File: e.Name, Slug: e.Slug, Severity: SeverityError, Message: err.Error()})
		case missingDate:
			issues = append(issues, Issue{File: e.Name, Slug: e.Slug, Severity: SeverityWarning, Message: "date is missing; post sorts last"})
		}
	}
	return issues, nil
}

// HasErrors reports whether any issue is error-level.
func HasErrors(issues []Issue) bool {
	for _, is := range issues {
		if is.Severity == SeverityError {
			return true
		}
	}
	return false
}
