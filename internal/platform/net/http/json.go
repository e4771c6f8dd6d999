package http

import (
	"net/http"

	"batchtrace/internal/platform/net/http/bind"
)

// JSONHandler decodes and validates T from the body before calling fn.
// fn may return a Response to control status or headers. opts default to
// bind.DefaultJSONOptions
func JSONHandler[T any](fn func(*http.Request, T) (any, error), opts ...bind.JSONOptions) Handler {
	return Handle(func(r *http.Request) Response {
		in, err := bind.ParseJSON[T](r, opts...)
		if err != nil {
			return Error(err)
		}
		return reply(fn(r, in))
	})
}

// NoBodyHandler calls fn without reading the body
func NoBodyHandler(fn func(*http.Request) (any, error)) Handler {
	return Handle(func(r *http.Request) Response { return reply(fn(r)) })
}

func reply(out any, err error) Response {
	if err != nil {
		return Error(err)
	}
	if resp, ok := out.(Response); ok {
		return resp
	}
	return OK(out)
}
