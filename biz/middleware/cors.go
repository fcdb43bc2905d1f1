package middleware

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/hankinsohl/fgdb/pkg/config"
)

// CORS returns a middleware that handles Cross-Origin Resource Sharing.
func CORS(cfg config.CORSConfig) app.HandlerFunc {
	allowOrigin := cfg.AllowOrigin
	allowMethods := "GET,POST,OPTIONS"
	allowHeaders := "Authorization,Content-Type," + RequestIDHeader
	allowCredentials := "false"

	if cfg.AllowMethods != "" {
		allowMethods = cfg.AllowMethods
	}
	if cfg.AllowHeaders != "" {
		allowHeaders = cfg.AllowHeaders
	}
	if cfg.AllowCredentials {
		allowCredentials = "true"
	}

	return func(ctx context.Context, c *app.RequestContext) {
		c.Response.Header.Set("Access-Control-Allow-Origin", allowOrigin)
		c.Response.Header.Set("Access-Control-Allow-Methods", allowMethods)
		c.Response.Header.Set("Access-Control-Allow-Headers", allowHeaders)
		c.Response.Header.Set("Access-Control-Allow-Credentials", allowCredentials)

		// Handle preflight requests
		if string(c.Request.Method()) == consts.MethodOptions {
			c.AbortWithStatus(consts.StatusNoContent)
			return
		}

		c.Next(ctx)
	}
}
