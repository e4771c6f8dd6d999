// Package api provides the HTTP API for the application
package api

import (
	"context"
	"time"

	"batchtrace/internal/adapters/imagedit"
	"batchtrace/internal/adapters/sheets"
	"batchtrace/internal/modkit"
	"batchtrace/internal/modkit/httpkit"
	"batchtrace/internal/modkit/module"
	"batchtrace/internal/modkit/swaggerkit"
	"batchtrace/internal/platform/config"
	"batchtrace/internal/platform/logger"
	phttp "batchtrace/internal/platform/net/http"
	"batchtrace/internal/platform/net/middleware"
	"batchtrace/internal/platform/store"

	metamod "batchtrace/internal/services/api/meta/module"
	catalogdom "batchtrace/internal/services/catalog/domain"
	catalogmod "batchtrace/internal/services/catalog/module"
	subdom "batchtrace/internal/services/submissions/domain"
	submod "batchtrace/internal/services/submissions/module"
	verifymod "batchtrace/internal/services/verify/module"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ServiceName names the API in logs and meta endpoints
const ServiceName = "batchtrace-api"

// Options are the API options
type Options struct {
	Config config.Conf
	Store  *store.Store
	Logger *logger.Logger

	CORS     middleware.CORSOptions
	SlowLog  time.Duration
	Swagger  bool
	Profiler bool
	Metrics  bool

	// Fetcher replaces the HTTP catalog feed, nil for the configured feed
	Fetcher sheets.Fetcher
	// Editor replaces the Gemini image editor, nil to build from config
	Editor imagedit.Editor

	Now func() time.Time
}

// Mounted is what Mount wired, for callers that need the services
type Mounted struct {
	Modules     []module.Module
	Submissions *submod.Module
	Verify      *verifymod.Module
}

// Mount ensures the schema, wires every module and mounts them onto r
func Mount(ctx context.Context, r phttp.Router, opt Options) (Mounted, error) {
	log := *opt.Logger
	deps := modkit.Deps{
		Log:     log,
		Cfg:     opt.Config,
		DB:      opt.Store.DB,
		Dialect: opt.Store.Driver,
		Now:     opt.Now,
	}

	catOpts := catalogmod.FromConfig(deps.Cfg)
	var cat *catalogmod.Module
	if opt.Fetcher != nil {
		cat = catalogmod.NewWithFetcher(deps, catOpts, opt.Fetcher)
	} else {
		cat = catalogmod.New(deps, catOpts)
	}

	subs := submod.New(deps, submod.FromConfig(deps.Cfg))
	if err := subs.Service().EnsureSchema(ctx); err != nil {
		return Mounted{}, err
	}

	vOpts := verifymod.FromConfig(deps.Cfg)
	editor := opt.Editor
	if editor == nil {
		var err error
		if editor, err = imagedit.New(ctx, vOpts.Gemini); err != nil {
			log.Warn().Err(err).Msg("image editor unavailable")
			editor = imagedit.Disabled{}
		}
	}
	verify := verifymod.New(deps, vOpts, verifymod.Ports{
		Loader:   module.MustPortsOf[catalogdom.LoaderPort](cat),
		Recorder: module.MustPortsOf[subdom.RecorderPort](subs),
		Editor:   editor,
	})

	mods := []module.Module{
		metamod.New(deps, ServiceName, opt.Store),
		cat,
		subs,
		verify,
	}

	swaggerkit.Mount(r, opt.Swagger)
	phttp.MountProfiler(r, "/debug", opt.Profiler)
	if opt.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	httpkit.MountAPIV1(r, httpkit.CommonStack(opt.CORS, opt.SlowLog), func(api httpkit.Router) {
		for _, m := range mods {
			m.MountRoutes(api)
			log.Debug().Str("module", m.Name()).Msg("module mounted")
		}
	})

	return Mounted{Modules: mods, Submissions: subs, Verify: verify}, nil
}
