package module

import (
	"time"

	"batchtrace/internal/platform/config"
)

// Options controls the submission store and its admin routes
type Options struct {
	Key          string
	ExportPrefix string
	Location     *time.Location

	// AdminToken guards the admin routes. Empty leaves them unmounted
	AdminToken string
}

// FromConfig reads with CORE_SUBMISSIONS_ prefix plus CORE_ADMIN_TOKEN and CORE_TZ
func FromConfig(cfg config.Conf) Options {
	core := cfg.Prefix("CORE_")
	c := core.Prefix("SUBMISSIONS_")
	return Options{
		Key:          c.MayString("KEY", "submissions"),
		ExportPrefix: c.MayString("EXPORT_PREFIX", "adi_bharat_export"),
		Location:     core.MayLocation("TZ", time.Local),
		AdminToken:   core.MayString("ADMIN_TOKEN", ""),
	}
}
