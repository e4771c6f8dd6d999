// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"time"

	"batchtrace/internal/modkit"
	"batchtrace/internal/modkit/httpkit"
	str "batchtrace/internal/platform/strings"

	metahttp "batchtrace/internal/services/api/meta/http"
)

// Module implements the modkit.Module interface
type Module struct {
	built     modkit.Built
	startedAt time.Time
}

// New constructs a meta module. store may be nil when nothing is pinged
func New(deps modkit.Deps, service string, store metahttp.Pinger, opts ...modkit.Option) *Module {
	now := deps.Clock()
	m := &Module{startedAt: now()}
	m.built = modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
		modkit.WithRegister(func(r httpkit.Router) {
			metahttp.Register(r, metahttp.Deps{
				ServiceName: service,
				StartedAt:   m.startedAt,
				Store:       store,
				Now:         now,
			})
		}),
	}, opts...)...)
	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) { m.built.Mount(r) }

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.built.Name, "meta") }

// Prefix returns the route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.built.Prefix) }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
