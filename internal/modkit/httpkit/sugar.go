package httpkit

import "net/http"

// PostJSON mounts a JSON body handler under POST. maxBytes caps the body, 0 for the default
func PostJSON[T any](r Router, path string, maxBytes int64, h func(*http.Request, T) (any, error)) {
	r.Post(path, JSON(h, maxBytes))
}

// Get mounts a body-less handler under GET
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, Call(h))
}

// Post mounts a body-less handler under POST
func Post(r Router, path string, h func(*http.Request) (any, error)) {
	r.Post(path, Call(h))
}

// Delete mounts a body-less handler under DELETE
func Delete(r Router, path string, h func(*http.Request) (any, error)) {
	r.Delete(path, Call(h))
}
