// @title         GovGraph API
// @version       0.1.0
// @description   Temporal aggregation endpoints over the government entity graph

package main

import (
	"context"

	"govgraph/internal/adapters/opengin"
	"govgraph/internal/platform/config"
	"govgraph/internal/platform/logger"
	phttp "govgraph/internal/platform/net/http"

	"govgraph/internal/services/api"
)

func main() {
	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	ginCfg := root.Prefix("UPSTREAM_OPENGIN_") // upstream graph store settings

	// bring up logging early
	l := logger.Get()

	// upstream graph client, shared by every aggregator module
	graph := opengin.NewClient(opengin.Options{
		BaseURL:        ginCfg.MustString("BASE_URL"),
		UserAgent:      "govgraph-api",
		ConnectTimeout: ginCfg.MayDuration("CONNECT_TIMEOUT", 0),
		ReadTimeout:    ginCfg.MayDuration("READ_TIMEOUT", 0),
		RetryBudget:    ginCfg.MayDuration("RETRY_BUDGET", 0),
	})

	// http server (reads CORE_API_PORT / CORE_API_ADDR)
	srv := phttp.NewServer(apiCfg)

	// mount our API
	api.Mount(
		srv.Router(),
		api.Options{
			Config:         apiCfg,
			Graph:          graph,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", true),
		},
	)

	// run
	if err := srv.Run(context.Background()); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
