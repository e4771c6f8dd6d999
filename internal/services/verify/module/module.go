// Package module wires the verification flow into the API using modkit
package module

import (
	"batchtrace/internal/adapters/imagedit"
	"batchtrace/internal/modkit"
	"batchtrace/internal/modkit/httpkit"
	catalogdom "batchtrace/internal/services/catalog/domain"
	subdom "batchtrace/internal/services/submissions/domain"
	verifyhttp "batchtrace/internal/services/verify/http"
	verifysvc "batchtrace/internal/services/verify/service"
)

// Ports are the ports this module consumes
type Ports struct {
	Loader   catalogdom.LoaderPort
	Recorder subdom.RecorderPort
	Editor   imagedit.Editor
}

// Module implements the modkit.Module interface
type Module struct {
	deps  modkit.Deps
	built modkit.Built
	svc   *verifysvc.Svc
}

// New constructs the verify module from the catalog and submissions ports
func New(deps modkit.Deps, opts Options, p Ports, extra ...modkit.Option) *Module {
	svc := verifysvc.New(p.Loader, p.Recorder, p.Editor, verifysvc.Config{
		SessionTTL:  opts.SessionTTL,
		MaxSessions: opts.MaxSessions,
	}, deps.Clock())

	m := &Module{deps: deps, svc: svc}
	m.built = modkit.Build(append([]modkit.Option{
		modkit.WithName("verify"),
		modkit.WithPrefix("/verify"),
		modkit.WithPorts(svc),
		modkit.WithRegister(func(r httpkit.Router) { verifyhttp.Register(r, svc) }),
	}, extra...)...)
	return m
}

// Service exposes the concrete service
func (m *Module) Service() *verifysvc.Svc { return m.svc }

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) { m.built.Mount(r) }

// Name returns the module name
func (m *Module) Name() string { return m.built.Name }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return m.built.Prefix }

// Ports returns the verify service port
func (m *Module) Ports() any { return m.built.Ports }
