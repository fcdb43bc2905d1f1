package handler

import (
	"bytes"
	"context"
	"fmt"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/hankinsohl/fgdb/biz/dal/db"
	"github.com/hankinsohl/fgdb/biz/service"
	"github.com/hankinsohl/fgdb/pkg/env"
	"github.com/hankinsohl/fgdb/pkg/validator"
)

// EnvHeader names the environment an export was read from.
const EnvHeader = "X-Fgdb-Env"

// CatalogHandler exposes catalog tables, updates and publication over HTTP.
type CatalogHandler struct {
	catalog   *service.Catalog
	updater   *service.Updater
	publisher *service.Publisher
	payload   *validator.PayloadConfig
}

func NewCatalogHandler(svc *service.Service, payload *validator.PayloadConfig) *CatalogHandler {
	if payload == nil {
		payload = validator.DefaultPayloadConfig()
	}
	return &CatalogHandler{
		catalog:   svc.Catalog,
		updater:   svc.Updater,
		publisher: svc.Publisher,
		payload:   payload,
	}
}

// ListEnvs lists every environment and whether it is leased.
func (h *CatalogHandler) ListEnvs(ctx context.Context, c *app.RequestContext) {
	RespondOK(c, map[string]any{"envs": h.catalog.Envs()})
}

// ListTables lists table names in dependency order.
func (h *CatalogHandler) ListTables(ctx context.Context, c *app.RequestContext) {
	RespondOK(c, map[string]any{"tables": h.catalog.Tables()})
}

// Counts returns the row count of every table in one environment.
func (h *CatalogHandler) Counts(ctx context.Context, c *app.RequestContext) {
	target, ok := h.param(ctx, c, "env", env.ErrUnknownEnv)
	if !ok {
		return
	}
	e, counts, err := h.catalog.Counts(ctx, target)
	if err != nil {
		RespondError(ctx, c, err)
		return
	}
	RespondOK(c, map[string]any{"env": e, "counts": counts})
}

// Export streams one table as catalog JSON.
func (h *CatalogHandler) Export(ctx context.Context, c *app.RequestContext) {
	target, ok := h.param(ctx, c, "env", env.ErrUnknownEnv)
	if !ok {
		return
	}
	name, ok := h.param(ctx, c, "table", db.ErrUnknownTable)
	if !ok {
		return
	}
	var buf bytes.Buffer
	e, err := h.catalog.Export(ctx, target, name, &buf)
	if err != nil {
		RespondError(ctx, c, err)
		return
	}
	c.Response.Header.Set(EnvHeader, e.RelativePath())
	c.Response.Header.Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.json\"", name))
	c.Data(consts.StatusOK, consts.MIMEApplicationJSONUTF8, buf.Bytes())
}

// Import inserts the rows of the request body into one table.
func (h *CatalogHandler) Import(ctx context.Context, c *app.RequestContext) {
	target, ok := h.param(ctx, c, "env", env.ErrUnknownEnv)
	if !ok {
		return
	}
	name, ok := h.param(ctx, c, "table", db.ErrUnknownTable)
	if !ok {
		return
	}
	body, ok := h.body(ctx, c)
	if !ok {
		return
	}
	e, n, err := h.catalog.Import(ctx, target, name, bytes.NewReader(body))
	if err != nil {
		RespondError(ctx, c, err)
		return
	}
	RespondOK(c, map[string]any{"env": e, "table": name, "inserted": n})
}

// Partial returns a random reduced subset of the dataset in the request body.
func (h *CatalogHandler) Partial(ctx context.Context, c *app.RequestContext) {
	name, ok := h.param(ctx, c, "table", db.ErrUnknownTable)
	if !ok {
		return
	}
	body, ok := h.body(ctx, c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := h.catalog.Partial(name, bytes.NewReader(body), &buf); err != nil {
		RespondError(ctx, c, err)
		return
	}
	c.Data(consts.StatusOK, consts.MIMEApplicationJSONUTF8, buf.Bytes())
}

// Update refreshes the production store according to ?policy= (default auto).
func (h *CatalogHandler) Update(ctx context.Context, c *app.RequestContext) {
	policy := service.PolicyAuto
	if raw := c.Query("policy"); raw != "" {
		p, err := service.ParsePolicy(raw)
		if err != nil {
			RespondBadRequest(c, err)
			return
		}
		policy = p
	}
	res, err := h.updater.Run(ctx, policy)
	if err != nil {
		RespondError(ctx, c, err)
		return
	}
	RespondOK(c, res)
}

// Publish snapshots ?env= (default prod) into the repository.
func (h *CatalogHandler) Publish(ctx context.Context, c *app.RequestContext) {
	target := c.DefaultQuery("env", env.Prod.RelativePath())
	res, err := h.publisher.Publish(ctx, target)
	if err != nil {
		RespondError(ctx, c, err)
		return
	}
	RespondOK(c, res)
}

func (h *CatalogHandler) param(ctx context.Context, c *app.RequestContext, key string, notFound error) (string, bool) {
	value, ok := validator.SanitizeName(c.Param(key))
	if !ok {
		RespondError(ctx, c, fmt.Errorf("%w: %q", notFound, c.Param(key)))
		return "", false
	}
	return value, true
}

func (h *CatalogHandler) body(ctx context.Context, c *app.RequestContext) ([]byte, bool) {
	body := c.Request.Body()
	if err := h.payload.Validate(string(c.ContentType()), body); err != nil {
		RespondError(ctx, c, err)
		return nil, false
	}
	return body, true
}
