// Package module defines the minimal contract for a modkit module
package module

import (
	phttp "batchtrace/internal/platform/net/http"
)

// Module is mounted by the composition root and may export ports
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
