package domain

import (
	"context"

	"batchtrace/internal/core/submission"
)

// RecorderPort appends submissions. It never fails, the result says what happened
type RecorderPort interface {
	Save(ctx context.Context, s submission.Submission) SaveResult
}

// ServicePort is the admin surface over stored submissions
type ServicePort interface {
	RecorderPort
	All(ctx context.Context) LoadResult
	List(ctx context.Context, in ListInput) ListResult
	Export(ctx context.Context, in ListInput) (Export, error)
	Clear(ctx context.Context) error
}
