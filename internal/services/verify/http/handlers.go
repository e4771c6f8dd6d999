// Package http provides http transport for the verification flow
package http

import (
	stdhttp "net/http"
	"slices"

	"batchtrace/internal/modkit/httpkit"
	perr "batchtrace/internal/platform/errors"
	"batchtrace/internal/services/verify/domain"
	svc "batchtrace/internal/services/verify/service"
)

// maxBody leaves room for a base64 pack photo
const maxBody = 12 << 20

// Register mounts verification endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.Post(r, "/sessions", h.open)
	httpkit.Post(r, "/sessions/{id}/submissions", h.submit)
	httpkit.PostJSON(r, "/images/edit", maxBody, h.edit)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /verify/sessions Verify verifyOpenSession
// @Summary Load the catalog and open a verification session
// @Tags Verify
// @Produce json
// @Success 201 {object} domain.Session "created"
// @Failure 503 {object} httpkit.Envelope "catalog unavailable"
// @Router /verify/sessions [post]
func (h *handlers) open(r *stdhttp.Request) (any, error) {
	s, err := h.svc.Open(r.Context())
	if err != nil {
		return nil, err
	}
	return httpkit.Created(s), nil
}

// swagger:route POST /verify/sessions/{id}/submissions Verify verifySubmit
// @Summary Verify a batch code and record the attempt
// @Tags Verify
// @Accept json
// @Produce json
// @Param id path string true "session id"
// @Param payload body domain.SubmitInput true "Consumer form"
// @Success 200 {object} domain.SubmitResult "ok"
// @Failure 400 {object} httpkit.Envelope "missing fields"
// @Failure 404 {object} httpkit.Envelope "unknown or expired session"
// @Router /verify/sessions/{id}/submissions [post]
func (h *handlers) submit(r *stdhttp.Request) (any, error) {
	in, err := httpkit.DecodeJSON[domain.SubmitInput](r, maxBody)
	if err != nil {
		return nil, requiredMessage(err)
	}
	return h.svc.Submit(r.Context(), httpkit.Param(r, "id"), in, r.UserAgent())
}

// swagger:route POST /verify/images/edit Verify verifyEditImage
// @Summary Edit a pack photo with an instruction
// @Tags Verify
// @Accept json
// @Produce json
// @Param payload body domain.EditInput true "Image and instruction"
// @Success 200 {object} domain.EditResult "ok"
// @Failure 503 {object} httpkit.Envelope "editing not configured"
// @Router /verify/images/edit [post]
func (h *handlers) edit(r *stdhttp.Request, in domain.EditInput) (any, error) {
	return h.svc.EditImage(r.Context(), in)
}

// requiredMessage replaces a missing field failure with the form message
func requiredMessage(err error) error {
	if !perr.IsCode(err, perr.ErrorCodeValidation) || !slices.Contains(httpkit.FailedTags(err), "required") {
		return err
	}
	field := ""
	if e, ok := perr.As(err); ok {
		field = e.Field()
	}
	return perr.WithField(perr.Validationf(domain.MsgRequired), field)
}
