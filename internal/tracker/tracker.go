package tracker

import "context"

// Tracker files issues in an issue tracker.
type Tracker interface {
	// Name is the human-readable tracker name, e.g. "GitHub".
	Name() string
	// CreateIssue files a new issue and returns its web URL.
	CreateIssue(ctx context.Context, title, body string) (string, error)
}
