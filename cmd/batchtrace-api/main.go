// @title         batchtrace API
// @version       0.1.0
// @description   Batch verification for consumers and submission review for admins

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"batchtrace/internal/modkit/repokit"
	"batchtrace/internal/platform/config"
	"batchtrace/internal/platform/logger"
	"batchtrace/internal/platform/metrics"
	phttp "batchtrace/internal/platform/net/http"
	"batchtrace/internal/platform/net/middleware"
	"batchtrace/internal/platform/store"

	"batchtrace/internal/services/api"

	"github.com/go-chi/chi/v5"
)

func main() {
	envFiles, envErr := config.LoadEnvFiles(".env", ".env.local")

	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	// bring up logging early
	opts := logger.FromEnv()
	opts.Service = api.ServiceName
	opts.Component = "api"
	logger.Init(opts)
	l := logger.Get()
	if envErr != nil {
		l.Warn().Err(envErr).Msg("env file unreadable")
	}
	l.Debug().Strs("files", envFiles).Msg("env files loaded")

	metrics.Register()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, store.FromConfig(root), store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	repokit.MustPing(ctx, st.Driver, st)

	// http server (reads CORE_API_PORT etc)
	srv := phttp.NewServer(apiCfg, func(m *chi.Mux) {
		m.Use(middleware.Defaults(apiCfg.MayDuration("TIMEOUT", 30*time.Second))...)
	})

	if _, err := api.Mount(ctx, srv.Router(), api.Options{
		Config: root,
		Store:  st,
		Logger: l,
		CORS: middleware.CORSOptions{
			AllowedOrigins: apiCfg.MayCSV("CORS_ORIGINS", []string{"*"}),
		},
		SlowLog:  apiCfg.MayDuration("SLOW_REQUEST", time.Second),
		Swagger:  apiCfg.MayBool("SWAGGER", true),
		Profiler: apiCfg.MayBool("PROFILER", false),
		Metrics:  apiCfg.MayBool("METRICS", true),
	}); err != nil {
		l.Panic().Err(err).Msg("api.Mount failed")
	}

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
	l.Info().Msg("bye")
}
