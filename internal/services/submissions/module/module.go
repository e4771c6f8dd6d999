// Package module wires the submission store and its admin routes using modkit
package module

import (
	"net/http"

	"batchtrace/internal/modkit"
	"batchtrace/internal/modkit/httpkit"
	"batchtrace/internal/services/submissions/domain"
	subhttp "batchtrace/internal/services/submissions/http"
	subrepo "batchtrace/internal/services/submissions/repo"
	subsvc "batchtrace/internal/services/submissions/service"
)

// Ports holds the ports exposed by the submissions module
type Ports struct {
	Recorder domain.RecorderPort
	Service  domain.ServicePort
}

// Module implements the modkit.Module interface
type Module struct {
	deps  modkit.Deps
	built modkit.Built
	ports Ports
	admin bool

	svc *subsvc.Svc
}

// New constructs the submissions module. deps.DB must be set
func New(deps modkit.Deps, opts Options, extra ...modkit.Option) *Module {
	svc := subsvc.New(deps.DB, subrepo.ForDialect(deps.Dialect), subsvc.Config{
		Key:          opts.Key,
		ExportPrefix: opts.ExportPrefix,
		Location:     opts.Location,
	}, deps.Clock())

	m := &Module{deps: deps, svc: svc, admin: opts.AdminToken != ""}
	m.ports = Ports{Recorder: svc, Service: svc}

	mws := []func(http.Handler) http.Handler{
		httpkit.Auth(httpkit.NewPortFunc(httpkit.StaticToken(opts.AdminToken, "admin"))),
	}
	m.built = modkit.Build(append([]modkit.Option{
		modkit.WithName("submissions"),
		modkit.WithPrefix("/admin/submissions"),
		modkit.WithMiddlewares(mws...),
		modkit.WithPorts(m.ports),
		modkit.WithRegister(func(r httpkit.Router) { subhttp.Register(r, svc) }),
	}, extra...)...)
	return m
}

// Service exposes the concrete service for the composition root and CLI
func (m *Module) Service() *subsvc.Svc { return m.svc }

// MountRoutes mounts the admin routes when an admin token is configured
func (m *Module) MountRoutes(r httpkit.Router) {
	if !m.admin {
		m.deps.Log.Warn().Msg("CORE_ADMIN_TOKEN empty, admin submission routes not mounted")
		return
	}
	m.built.Mount(r)
}

// Name returns the module name
func (m *Module) Name() string { return m.built.Name }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return m.built.Prefix }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
