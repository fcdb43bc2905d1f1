package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/hankinsohl/fgdb/biz/dal/db"
	"github.com/hankinsohl/fgdb/biz/dal/table"
	"github.com/hankinsohl/fgdb/pkg/common"
	"github.com/hankinsohl/fgdb/pkg/env"
	"github.com/hankinsohl/fgdb/pkg/envpool"
	"github.com/hankinsohl/fgdb/pkg/storage"
	"github.com/hankinsohl/fgdb/pkg/types"
	"github.com/hankinsohl/fgdb/pkg/validator"
)

// Ping reports liveness.
func Ping(ctx context.Context, c *app.RequestContext) {
	c.JSON(consts.StatusOK, common.CommonResponse{Code: consts.StatusOK, Msg: "pong"})
}

func RespondOK(c *app.RequestContext, data any) {
	c.JSON(consts.StatusOK, common.CommonResponse{
		Code: consts.StatusOK,
		Msg:  http.StatusText(consts.StatusOK),
		Data: data,
	})
}

// RespondError writes err with the status its kind maps to.
func RespondError(ctx context.Context, c *app.RequestContext, err error) {
	status := StatusFor(err)
	if status >= consts.StatusInternalServerError {
		hlog.CtxErrorf(ctx, "request failed: %v", err)
	}
	c.JSON(status, common.CommonResponse{
		Code:  status,
		Msg:   http.StatusText(status),
		Error: err.Error(),
	})
}

// StatusFor maps domain errors onto HTTP status codes.
func StatusFor(err error) int {
	var parseErr *types.ParseError
	var rangeErr *types.RangeError
	switch {
	case errors.Is(err, env.ErrUnknownEnv), errors.Is(err, db.ErrUnknownTable), errors.Is(err, storage.ErrNotFound):
		return consts.StatusNotFound
	case errors.Is(err, validator.ErrPayloadTooLarge):
		return consts.StatusRequestEntityTooLarge
	case errors.Is(err, validator.ErrEmptyPayload),
		errors.Is(err, validator.ErrUnsupportedType),
		errors.Is(err, validator.ErrMissingContentType),
		errors.Is(err, table.ErrInvalidData),
		errors.As(err, &parseErr),
		errors.As(err, &rangeErr):
		return consts.StatusBadRequest
	case errors.Is(err, envpool.ErrEmptyPool), errors.Is(err, context.DeadlineExceeded):
		return consts.StatusServiceUnavailable
	default:
		return consts.StatusInternalServerError
	}
}

func RespondBadRequest(c *app.RequestContext, err error) {
	c.JSON(consts.StatusBadRequest, common.CommonResponse{
		Code:  consts.StatusBadRequest,
		Msg:   err.Error(),
		Error: err.Error(),
	})
}
