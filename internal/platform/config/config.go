// Package config reads typed settings from environment variables
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"batchtrace/internal/platform/logger"

	"github.com/joho/godotenv"
)

// Conf is a prefixed view over the environment, e.g. Prefix("CORE_CATALOG_")
type Conf struct{ prefix string }

// New returns the unprefixed root Conf
func New() Conf { return Conf{} }

// Prefix returns a child Conf; prefixes nest left to right
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

// Key returns the fully qualified variable name for k
func (c Conf) Key(k string) string { return c.prefix + k }

func (c Conf) get(k string) string { return strings.TrimSpace(os.Getenv(c.Key(k))) }

// LoadEnvFiles loads dotenv files into the environment without overriding
// variables that are already set. Missing files are skipped. It returns the
// files that loaded and the first unreadable one. It does not log, so it can
// run before the logger reads LOG_*
func LoadEnvFiles(paths ...string) ([]string, error) {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	var (
		loaded   []string
		firstErr error
	)
	for _, p := range paths {
		err := godotenv.Load(p)
		switch {
		case err == nil:
			loaded = append(loaded, p)
		case errors.Is(err, fs.ErrNotExist):
		case firstErr == nil:
			firstErr = fmt.Errorf("env file %s: %w", p, err)
		}
	}
	return loaded, firstErr
}

// MustString panics when the key is unset or blank
func (c Conf) MustString(key string) string {
	v := c.get(key)
	if v == "" {
		logger.Get().Panic().Str("key", c.Key(key)).Msg("missing required env")
	}
	return v
}

// MustInt panics when the key is unset or not an int
func (c Conf) MustInt(key string) int {
	s := c.MustString(key)
	v, err := strconv.Atoi(s)
	if err != nil {
		logger.Get().Panic().Str("key", c.Key(key)).Str("value", s).Msg("invalid int value")
	}
	return v
}

// MayString returns the value or def
func (c Conf) MayString(key, def string) string {
	if v := c.get(key); v != "" {
		return v
	}
	return def
}

// MayInt returns the value or def; malformed values log a warning and yield def
func (c Conf) MayInt(key string, def int) int {
	s := c.get(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		logger.Get().Warn().Str("key", c.Key(key)).Str("value", s).Int("default", def).Msg("invalid int; using default")
		return def
	}
	return v
}

// MayBool returns the value or def; malformed values log a warning and yield def
func (c Conf) MayBool(key string, def bool) bool {
	s := c.get(key)
	if s == "" {
		return def
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		logger.Get().Warn().Str("key", c.Key(key)).Str("value", s).Bool("default", def).Msg("invalid bool; using default")
		return def
	}
	return v
}

// MayDuration returns the value or def; malformed values log a warning and yield def
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	s := c.get(key)
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		logger.Get().Warn().Str("key", c.Key(key)).Str("value", s).Dur("default", def).Msg("invalid duration; using default")
		return def
	}
	return d
}

// MayCSV splits a comma separated value, dropping blanks; def when empty
func (c Conf) MayCSV(key string, def []string) []string {
	s := c.get(key)
	if s == "" {
		return def
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// MayEnum returns the value lowercased when it is one of allowed, def when unset.
// Any other value panics
func (c Conf) MayEnum(key, def string, allowed ...string) string {
	v := c.MayString(key, def)
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return strings.ToLower(a)
		}
	}
	logger.Get().Panic().Str("key", c.Key(key)).Str("value", v).Strs("allowed", allowed).Msg("invalid enum value")
	return ""
}

// MayLocation loads a tz database name, falling back to def
func (c Conf) MayLocation(key string, def *time.Location) *time.Location {
	s := c.get(key)
	if s == "" {
		return def
	}
	loc, err := time.LoadLocation(s)
	if err != nil {
		logger.Get().Warn().Err(err).Str("key", c.Key(key)).Str("value", s).Msg("invalid time zone; using default")
		return def
	}
	return loc
}
