package module

import (
	"time"

	"batchtrace/internal/adapters/imagedit"
	"batchtrace/internal/platform/config"
)

// Options controls sessions and image editing
type Options struct {
	SessionTTL  time.Duration
	MaxSessions int

	Gemini imagedit.Options
}

// FromConfig reads with CORE_VERIFY_ prefix and GEMINI_ for the image editor
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("CORE_VERIFY_")
	g := cfg.Prefix("GEMINI_")
	return Options{
		SessionTTL:  c.MayDuration("SESSION_TTL", 30*time.Minute),
		MaxSessions: c.MayInt("MAX_SESSIONS", 10000),
		Gemini: imagedit.Options{
			APIKey: g.MayString("API_KEY", ""),
			Model:  g.MayString("MODEL", imagedit.DefaultModel),
		},
	}
}
