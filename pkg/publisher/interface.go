// Package publisher defines interfaces and data types used to push a
// generated site to a hosting provider and serve it as a public web page.
package publisher

import (
	"context"
	"time"
)

// RateLimitStatus describes the current API rate-limit status returned by the
// underlying hosting provider.
type RateLimitStatus struct {
	Limit     int       // Limit is the total number of allowed requests in the current window.
	Remaining int       // Remaining indicates how many requests are left in the current window.
	ResetAt   time.Time // ResetAt is when the rate-limit window resets.
}

// Request describes a single site publication.
type Request struct {
	// Repo is the repository name the site is published under.
	Repo string
	// Description is the repository description shown by the provider.
	Description string
	// Round is the delivery round; it appears in commit messages.
	Round int
	// Update indicates the repository already exists and its files are
	// replaced instead of created.
	Update bool
	// Files maps repository-relative paths to file contents.
	Files map[string][]byte
}

// Result represents a completed publication.
type Result struct {
	RepoURL   string // RepoURL is the browsable repository URL.
	CommitSHA string // CommitSHA is the head commit of the published branch.
	PagesURL  string // PagesURL is the public page URL.
}

// Publisher is the abstraction for site publishers. Implementations create or
// update a repository with the site files and expose them as a static page.
//
//go:generate mockgen -package mockpublisher -source=interface.go -destination=mock/mockpublisher.go *
type Publisher interface {
	// Publish commits the site files to the repository named in the request
	// and returns where the site lives plus the current rate-limit status.
	Publish(ctx context.Context, req Request) (Result, RateLimitStatus, error)
	// WaitLive blocks until the page URL serves successfully or the
	// configured attempts are exhausted.
	WaitLive(ctx context.Context, pagesURL string) error
}
