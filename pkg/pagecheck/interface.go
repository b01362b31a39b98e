// Package pagecheck defines the interface used to verify a published page
// against the checks attached to a task.
package pagecheck

import (
	"context"

	"pagesmith/pkg/domain"
)

// Checker is the abstraction for page verification. Implementations probe the
// published page and report one result per check.
//
//go:generate mockgen -package mockpagecheck -source=interface.go -destination=mock/mockpagecheck.go *
type Checker interface {
	// Check probes pageURL and evaluates the given checks against it.
	Check(ctx context.Context, pageURL string, checks []string) ([]domain.CheckResult, error)
}
