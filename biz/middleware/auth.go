package middleware

import (
	"context"
	"crypto/subtle"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/hankinsohl/fgdb/pkg/common"
)

// RequireToken returns a middleware that rejects requests without
// "Authorization: Bearer <token>". An empty token disables the check.
func RequireToken(token string) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		if token == "" {
			c.Next(ctx)
			return
		}
		got, ok := strings.CutPrefix(string(c.GetHeader("Authorization")), "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			c.AbortWithStatusJSON(consts.StatusUnauthorized, common.CommonResponse{
				Code:  consts.StatusUnauthorized,
				Msg:   "authentication required",
				Error: "missing or invalid bearer token",
			})
			return
		}
		c.Next(ctx)
	}
}
