// Package module wires the catalog loader and exposes it as a port
package module

import (
	"batchtrace/internal/adapters/sheets"
	"batchtrace/internal/modkit"
	"batchtrace/internal/modkit/httpkit"
	"batchtrace/internal/services/catalog/domain"
	"batchtrace/internal/services/catalog/service"
)

// Ports holds the ports exposed by the catalog module
type Ports struct {
	Loader domain.LoaderPort
}

// Module is the catalog module. It has no routes of its own
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New builds the module with the HTTP feed fetcher from opts
func New(deps modkit.Deps, opts Options) *Module {
	return NewWithFetcher(deps, opts, sheets.NewHTTPFetcher(opts.Feed, nil))
}

// NewWithFetcher builds the module around f
func NewWithFetcher(deps modkit.Deps, opts Options, f sheets.Fetcher) *Module {
	svc := service.New(f, service.Config{
		Columns:        opts.Columns(),
		ProductName:    opts.ProductName,
		LabName:        opts.LabName,
		TestDateLayout: opts.TestDateLayout,
		Location:       opts.Location,
	}, deps.Clock())
	return &Module{deps: deps, ports: Ports{Loader: svc}}
}

// Loader is a typed shortcut for Ports().Loader
func (m *Module) Loader() domain.LoaderPort { return m.ports.Loader }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return "catalog" }

// Prefix returns no route prefix
func (m *Module) Prefix() string { return "" }

// MountRoutes mounts nothing
func (m *Module) MountRoutes(_ httpkit.Router) {}
