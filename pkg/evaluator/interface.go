// Package evaluator defines the interface and data types used to report a
// finished build back to the evaluation service that requested it.
package evaluator

import "context"

// Receipt is the payload delivered to the evaluation service once a build is
// published. Field names follow the callback contract.
type Receipt struct {
	Email     string `json:"email"`
	Task      string `json:"task"`
	Round     int    `json:"round"`
	Nonce     string `json:"nonce"`
	RepoURL   string `json:"repo_url"`
	CommitSHA string `json:"commit_sha"`
	PagesURL  string `json:"pages_url"`
}

// Evaluator is the abstraction for delivery notifications. Implementations
// post the receipt to the evaluation URL supplied with the task.
//
//go:generate mockgen -package mockevaluator -source=interface.go -destination=mock/mockevaluator.go *
type Evaluator interface {
	// Notify delivers the receipt to evaluationURL, retrying failed
	// deliveries before giving up.
	Notify(ctx context.Context, evaluationURL string, receipt Receipt) error
}
