package middleware

import (
	"net/http"

	pnet "batchtrace/internal/platform/net"
)

// AuthPort resolves the caller of a request
type AuthPort interface {
	// Parse returns the principal for r or an error that maps to 401/403
	Parse(r *http.Request) (principal string, err error)
}

// Auth rejects requests the port cannot resolve and stores the principal
// on the context. A nil port lets every request through
func Auth(p AuthPort, write func(w http.ResponseWriter, status int, body any)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p == nil {
				next.ServeHTTP(w, r)
				return
			}
			who, err := p.Parse(r)
			if err != nil {
				status, body := pnet.Error(err, pnet.RequestID(r.Context()))
				write(w, status, body)
				return
			}
			next.ServeHTTP(w, r.WithContext(pnet.WithPrincipal(r.Context(), who)))
		})
	}
}
