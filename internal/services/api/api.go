// Package api provides the HTTP API for the application
package api

import (
	"govgraph/internal/adapters/opengin"
	"govgraph/internal/platform/config"
	"govgraph/internal/platform/logger"
	phttp "govgraph/internal/platform/net/http"

	"govgraph/internal/modkit"
	"govgraph/internal/modkit/httpkit"
	"govgraph/internal/modkit/module"
	"govgraph/internal/modkit/swaggerkit"

	catalogmod "govgraph/internal/services/api/catalog/module"
	metamod "govgraph/internal/services/api/meta/module"
	orgchartmod "govgraph/internal/services/api/orgchart/module"
	peoplemod "govgraph/internal/services/api/people/module"
	searchmod "govgraph/internal/services/api/search/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Graph          opengin.Port
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg:   opt.Config,
		Graph: opt.Graph,
	}

	mods := []module.Module{
		metamod.New(deps),
		catalogmod.New(deps),
		orgchartmod.New(deps),
		peoplemod.New(deps),
		searchmod.New(deps),
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}
