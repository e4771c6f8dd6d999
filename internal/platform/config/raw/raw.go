// Package raw reads environment variables during bootstrap.
// It must not import the logger, which is configured from it
package raw

import (
	"os"
	"strconv"
	"strings"
)

// Conf is a prefixed view over the process environment (e.g. "LOG_")
type Conf struct{ prefix string }

// New returns an unprefixed Conf
func New() Conf { return Conf{} }

// Prefix returns a child Conf whose keys are prefixed with p
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

func (c Conf) lookup(k string) string {
	return strings.TrimSpace(os.Getenv(c.prefix + k))
}

// Get returns the trimmed value or def when unset
func (c Conf) Get(key, def string) string {
	if v := c.lookup(key); v != "" {
		return v
	}
	return def
}

// GetBool accepts 1, true, yes and on; anything else is false. def when unset
func (c Conf) GetBool(key string, def bool) bool {
	v := strings.ToLower(c.lookup(key))
	switch v {
	case "":
		return def
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

// GetInt returns a non-negative int or def when unset or malformed
func (c Conf) GetInt(key string, def int) int {
	v := c.lookup(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}
