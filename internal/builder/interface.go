package builder

import (
	"context"
	"pagesmith/pkg/domain"
	"pagesmith/pkg/publisher"
)

//go:generate mockgen -package mockbuilder -source=interface.go -destination=mock/mockbuilder.go *
type Builder interface {
	Submit(ctx context.Context, build domain.Build) (*domain.Build, error)
	Builds(ctx context.Context,
		status domain.BuildStatus,
		cursor string,
		limit uint) ([]domain.Build, string, error)
	Build(ctx context.Context, task string, round int) (publisher.RateLimitStatus, error)
	Result(ctx context.Context, ID domain.BuildID) (*domain.Build, error)
	Delete(ctx context.Context, ID domain.BuildID) error
}
