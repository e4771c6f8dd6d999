// Package httpkit provides handler and routing helpers that alias the platform http package
// use these from modules so they do not import internal/platform/net/http directly
package httpkit

import (
	"net/http"

	phttp "batchtrace/internal/platform/net/http"
	"batchtrace/internal/platform/net/http/bind"

	"github.com/go-chi/chi/v5"
)

type (
	// Envelope is the transport envelope type
	Envelope = phttp.Envelope

	// Response is the HTTP response type
	Response = phttp.Response

	// Handler is the platform handler type
	Handler = phttp.Handler

	// Router is a re-export of the platform router seam
	Router = phttp.Router
)

// OK returns a 200 response
func OK(data any) Response { return phttp.OK(data) }

// Created returns a 201 response
func Created(data any) Response { return phttp.Created(data) }

// NoContent returns a 204 response
func NoContent() Response { return phttp.NoContent() }

// Error returns a response that maps an error to status and envelope
func Error(err error) Response { return phttp.Error(err) }

// Attachment returns a download response
func Attachment(filename, contentType string, data []byte) Response {
	return phttp.Attachment(filename, contentType, data)
}

// JSON decodes and validates T before calling fn
func JSON[T any](fn func(*http.Request, T) (any, error), maxBytes int64) Handler {
	return phttp.JSONHandler(fn, jsonOptions(maxBytes))
}

// Call adapts a handler that takes no JSON body
func Call(fn func(*http.Request) (any, error)) Handler { return phttp.NoBodyHandler(fn) }

// Validate runs struct validation for inputs that do not arrive as a JSON body
func Validate(v any) error { return bind.Validate(v) }

// DecodeJSON decodes and validates T from a body of at most maxBytes
func DecodeJSON[T any](r *http.Request, maxBytes int64) (T, error) {
	return bind.ParseJSON[T](r, jsonOptions(maxBytes))
}

// jsonOptions is the strict default with an optional body cap. 0 keeps the default
func jsonOptions(maxBytes int64) bind.JSONOptions {
	o := bind.DefaultJSONOptions()
	if maxBytes > 0 {
		o.MaxBytes = maxBytes
	}
	return o
}

// FailedTags lists the validator tags behind a validation error
func FailedTags(err error) []string { return bind.FailedTags(err) }

// Param reads a path parameter
func Param(r *http.Request, name string) string { return chi.URLParam(r, name) }
