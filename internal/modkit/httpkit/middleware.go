package httpkit

import (
	"net/http"
	"time"

	phttp "batchtrace/internal/platform/net/http"
	"batchtrace/internal/platform/net/middleware"
)

// CommonStack is the baseline mounted on the versioned API scope
func CommonStack(cors middleware.CORSOptions, slow time.Duration) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		middleware.CORS(cors),
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: slow, Skip: []string{"/api/v1/meta/health", "/api/v1/meta/ready"}}),
		middleware.StripSlashes(),
	}
}

// Auth wires the auth middleware to the platform JSON writer
func Auth(p middleware.AuthPort) func(http.Handler) http.Handler {
	return middleware.Auth(p, phttp.JSON)
}
