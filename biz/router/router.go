package router

import (
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hankinsohl/fgdb/biz/handler"
	"github.com/hankinsohl/fgdb/biz/handler/version"
	"github.com/hankinsohl/fgdb/biz/middleware"
	"github.com/hankinsohl/fgdb/pkg/config"
)

// Options configures the middleware wrapped around the routes.
type Options struct {
	AdminToken  string
	MaxBodySize int64
	CORS        config.CORSConfig
	// Gatherer backs /metrics; nil leaves the endpoint unregistered.
	Gatherer prometheus.Gatherer
}

// Register configures HTTP routes for the catalog API.
func Register(r *server.Hertz, h *handler.CatalogHandler, opts Options) {
	r.Use(middleware.Recovery(), middleware.Logging())
	if opts.CORS.AllowOrigin != "" {
		r.Use(middleware.CORS(opts.CORS))
	}

	r.GET("/ping", handler.Ping)
	if opts.Gatherer != nil {
		r.GET("/metrics", handler.Metrics(opts.Gatherer))
	}

	v1 := r.Group("/api/v1")
	v1.GET("/version", version.GetVersion)
	v1.GET("/envs", h.ListEnvs)
	v1.GET("/tables", h.ListTables)
	v1.GET("/envs/:env/tables", h.Counts)
	v1.GET("/envs/:env/tables/:table/export", h.Export)

	write := v1.Group("", middleware.RequireToken(opts.AdminToken), middleware.BodyLimit(opts.MaxBodySize))
	write.POST("/envs/:env/tables/:table/import", h.Import)
	write.POST("/tables/:table/partial", h.Partial)
	write.POST("/update", h.Update)
	write.POST("/publish", h.Publish)
}
