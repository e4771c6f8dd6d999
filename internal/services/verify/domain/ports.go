package domain

import "context"

// ServicePort is the consumer verification contract
type ServicePort interface {
	Open(ctx context.Context) (Session, error)
	Submit(ctx context.Context, sessionID string, in SubmitInput, userAgent string) (SubmitResult, error)
	EditImage(ctx context.Context, in EditInput) (EditResult, error)
}
