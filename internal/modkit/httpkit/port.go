package httpkit

import (
	"crypto/subtle"
	"net/http"
	"strings"

	perr "batchtrace/internal/platform/errors"
)

// TokenFunc resolves a bearer token to a principal
type TokenFunc func(token string) (principal string, err error)

// Port implements middleware.AuthPort by reading Authorization and delegating to a TokenFunc
type Port struct {
	parse TokenFunc
}

// NewPortFunc builds a Port from a parser function
func NewPortFunc(fn TokenFunc) *Port { return &Port{parse: fn} }

// StaticToken accepts exactly want and names the caller principal.
// An empty want rejects everything
func StaticToken(want, principal string) TokenFunc {
	return func(got string) (string, error) {
		if want == "" || subtle.ConstantTimeCompare([]byte(got), []byte(want)) != 1 {
			return "", perr.Unauthorizedf("invalid bearer token")
		}
		return principal, nil
	}
}

// Parse extracts the principal from an Authorization Bearer token. Missing,
// malformed and rejected tokens are all unauthorized
func (p *Port) Parse(r *http.Request) (string, error) {
	s := strings.TrimSpace(r.Header.Get("Authorization"))
	const prefix = "bearer"
	if len(s) < len(prefix) || !strings.EqualFold(s[:len(prefix)], prefix) {
		return "", perr.Unauthorizedf("missing bearer token")
	}
	raw := strings.TrimSpace(s[len(prefix):])
	if raw == "" {
		return "", perr.Unauthorizedf("missing bearer token")
	}
	if p == nil || p.parse == nil {
		return "", perr.Unauthorizedf("invalid bearer token")
	}
	who, err := p.parse(raw)
	if err != nil {
		return "", perr.Unauthorizedf("invalid bearer token")
	}
	return who, nil
}
