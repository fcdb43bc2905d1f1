package middleware

import (
	"context"
	"fmt"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/hankinsohl/fgdb/pkg/common"
)

// BodyLimit rejects requests whose body exceeds limit bytes.
func BodyLimit(limit int64) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		size := int64(c.Request.Header.ContentLength())
		if size < 0 {
			size = int64(len(c.Request.Body()))
		}
		if limit > 0 && size > limit {
			c.AbortWithStatusJSON(consts.StatusRequestEntityTooLarge, common.CommonResponse{
				Code:  consts.StatusRequestEntityTooLarge,
				Msg:   "request body too large",
				Error: fmt.Sprintf("body of %d bytes exceeds limit of %d", size, limit),
			})
			return
		}
		c.Next(ctx)
	}
}
