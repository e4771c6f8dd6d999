// Package net holds transport-neutral request context helpers and envelopes
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type ctxKey string

const keyPrincipal ctxKey = "principal"

// WithRequestID sets the request id where chimw.GetReqID can read it
func WithRequestID(ctx context.Context, reqID string) context.Context {
	if reqID == "" {
		return ctx
	}
	return context.WithValue(ctx, chimw.RequestIDKey, reqID)
}

// RequestID returns the request id on ctx or ""
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }

// WithPrincipal records the authenticated caller for the rest of the request
func WithPrincipal(ctx context.Context, principal string) context.Context {
	if principal == "" {
		return ctx
	}
	return context.WithValue(ctx, keyPrincipal, principal)
}

// Principal returns the authenticated caller or ""
func Principal(ctx context.Context) string {
	v, _ := ctx.Value(keyPrincipal).(string)
	return v
}
