// Package http provides the admin transport for stored submissions
package http

import (
	"fmt"
	stdhttp "net/http"

	"batchtrace/internal/modkit/httpkit"
	"batchtrace/internal/platform/logger"
	pnet "batchtrace/internal/platform/net"
	"batchtrace/internal/services/submissions/domain"
	svc "batchtrace/internal/services/submissions/service"
)

// Register mounts the admin submission endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.Get(r, "/", h.list)
	httpkit.Get(r, "/export", h.export)
	httpkit.Delete(r, "/", h.clear)
}

type handlers struct{ svc svc.Service }

func listInput(r *stdhttp.Request) (domain.ListInput, error) {
	q := r.URL.Query()
	in := domain.ListInput{
		Range: q.Get("range"),
		Start: q.Get("start"),
		End:   q.Get("end"),
		Q:     q.Get("q"),
	}
	return in, httpkit.Validate(in)
}

// swagger:route GET /admin/submissions Admin adminListSubmissions
// @Summary Filtered submissions, newest first
// @Tags Admin
// @Produce json
// @Param range query string false "all today week month last_month quarter last_quarter custom"
// @Param start query string false "custom start YYYY-MM-DD"
// @Param end query string false "custom end YYYY-MM-DD"
// @Param q query string false "mobile, batch code or name"
// @Success 200 {object} domain.ListResult "ok"
// @Router /admin/submissions [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	in, err := listInput(r)
	if err != nil {
		return nil, err
	}
	return h.svc.List(r.Context(), in), nil
}

// swagger:route GET /admin/submissions/export Admin adminExportSubmissions
// @Summary CSV export of the filtered submissions
// @Tags Admin
// @Produce text/csv
// @Success 200 {file} file "csv"
// @Failure 404 {object} httpkit.Envelope "nothing to export"
// @Router /admin/submissions/export [get]
func (h *handlers) export(r *stdhttp.Request) (any, error) {
	in, err := listInput(r)
	if err != nil {
		return nil, err
	}
	out, err := h.svc.Export(r.Context(), in)
	if err != nil {
		return nil, err
	}
	logger.C(r.Context()).Info().
		Str("principal", pnet.Principal(r.Context())).
		Str("file", out.Filename).
		Int("rows", out.Rows).
		Msg("submissions exported")
	resp := httpkit.Attachment(out.Filename, "text/csv; charset=utf-8", out.Data)
	resp.Header.Set("X-Export-Rows", fmt.Sprint(out.Rows))
	return resp, nil
}

// swagger:route DELETE /admin/submissions Admin adminClearSubmissions
// @Summary Remove every stored submission
// @Tags Admin
// @Success 204 "cleared"
// @Router /admin/submissions [delete]
func (h *handlers) clear(r *stdhttp.Request) (any, error) {
	if err := h.svc.Clear(r.Context()); err != nil {
		return nil, err
	}
	logger.C(r.Context()).Warn().Str("principal", pnet.Principal(r.Context())).Msg("submissions cleared by admin")
	return httpkit.NoContent(), nil
}
