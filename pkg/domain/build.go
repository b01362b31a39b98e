package domain

import (
	"time"

	"github.com/google/uuid"
)

// BuildID uniquely identifies a build job.
// It wraps uuid.UUID to provide type safety at the domain layer.
type BuildID uuid.UUID

// BuildStatus represents the lifecycle state of a build.
// It can be pending, completed, or failed.
type BuildStatus string

const (
	// BuildStatusPending indicates the build has been accepted but not published yet.
	BuildStatusPending BuildStatus = "PENDING"
	// BuildStatusCompleted indicates the site was published and the evaluator notified.
	BuildStatusCompleted BuildStatus = "COMPLETED"
	// BuildStatusFailed indicates the build ended with an error; see LastError and Attempts for details.
	BuildStatusFailed BuildStatus = "FAILED"
)

// Attachment is a named artifact shipped with a task brief, typically a
// sample image the published page can be pointed at.
type Attachment struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// CheckResult records the outcome of a single post-deploy verification
// check against the live page.
type CheckResult struct {
	Check  string `json:"check"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail,omitempty"`
}

// BuildResult holds the outcome of a completed build: where the site lives,
// which commit is deployed, and how the live page fared against the task's
// verification checks.
type BuildResult struct {
	// RepoURL is the HTML URL of the published repository.
	RepoURL string `json:"repoUrl,omitempty"`
	// CommitSHA is the head commit of the deployed branch.
	CommitSHA string `json:"commitSha,omitempty"`
	// PagesURL is the public URL the site is served from.
	PagesURL string `json:"pagesUrl,omitempty"`

	// Checks contains per-check verification outcomes; empty when
	// verification is disabled.
	Checks []CheckResult `json:"checks,omitempty"`

	// NotifiedAt is the time the evaluator acknowledged the receipt;
	// nil if notification has not happened.
	NotifiedAt *time.Time `json:"notifiedAt,omitempty"`
}

// Build represents a single site build request and its current state.
// It carries the task brief received over the webhook, the publication
// status, result, error information, and timestamps.
type Build struct {
	// ID is the unique identifier of the build.
	ID BuildID `json:"id"`

	// Task is the slug naming the task; it doubles as the repository name.
	Task string `json:"task"`
	// Round is the delivery round of the task, starting at 1. Rounds above
	// one update the repository published in earlier rounds.
	Round int `json:"round"`
	// Email identifies the participant the build is attributed to.
	Email string `json:"email"`
	// Nonce is an opaque value echoed back to the evaluator.
	Nonce string `json:"nonce"`

	// Brief is the human-readable description of what the page must do.
	Brief string `json:"brief"`
	// Checks lists the verification checks the evaluator will run against
	// the live page.
	Checks []string `json:"checks,omitempty"`
	// Attachments are the artifacts shipped with the brief.
	Attachments []Attachment `json:"attachments,omitempty"`
	// EvaluationURL is where the receipt is POSTed once the site is live.
	EvaluationURL string `json:"evaluationUrl"`

	// Status is the current lifecycle state of the build.
	Status BuildStatus `json:"status"`
	// Result contains the latest known outcome of the build.
	Result BuildResult `json:"result"`

	// Attempts is the number of times the system has tried to publish this build.
	Attempts uint `json:"attempts"`
	// LastError stores the most recent error message, if any, encountered while publishing.
	LastError string `json:"-"`

	// CreatedAt is the time when the build request was accepted.
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is the time when the build was last updated (e.g., status or result changed).
	UpdatedAt time.Time `json:"updatedAt"`
	// DeletedAt marks when the build was soft-deleted; zero value means not deleted.
	DeletedAt time.Time `json:"-"`
}
