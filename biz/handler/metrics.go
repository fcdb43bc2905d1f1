package handler

import (
	"bytes"
	"context"
	"net/http"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Metrics serves the families of g in the exposition format the client accepts.
// The body is encoded into memory first so a gather error can still become a 500.
func Metrics(g prometheus.Gatherer) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		families, err := g.Gather()
		if err != nil {
			RespondError(ctx, c, err)
			return
		}

		accept := http.Header{}
		accept.Set("Accept", string(c.GetHeader("Accept")))
		format := expfmt.NegotiateIncludingOpenMetrics(accept)

		var buf bytes.Buffer
		enc := expfmt.NewEncoder(&buf, format)
		for _, mf := range families {
			if err := enc.Encode(mf); err != nil {
				RespondError(ctx, c, err)
				return
			}
		}
		if closer, ok := enc.(expfmt.Closer); ok {
			if err := closer.Close(); err != nil {
				RespondError(ctx, c, err)
				return
			}
		}
		c.Data(consts.StatusOK, string(format), buf.Bytes())
	}
}
