// Package http adapts chi to the platform router seam and writes the
// standard JSON envelope
package http

import (
	"encoding/json"
	stdhttp "net/http"

	perr "batchtrace/internal/platform/errors"
	"batchtrace/internal/platform/logger"
	pnet "batchtrace/internal/platform/net"
)

// Envelope is the body of every JSON response
type Envelope struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	Field      string         `json:"field,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

// JSON writes v with the given status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Response is what return-style handlers produce
type Response struct {
	Status int
	Body   any
	Header stdhttp.Header

	// Raw bypasses the envelope and is written verbatim with ContentType
	Raw         []byte
	ContentType string
}

// Handle adapts a Response-returning func to net/http
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		h(r).write(w, r)
	}
}

func (resp Response) write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	for k, vv := range resp.Header {
		for _, v := range vv {
			w.Header().Add(k, v)
		}
	}
	status := resp.Status
	if status == 0 {
		status = stdhttp.StatusOK
	}
	reqID := pnet.RequestID(r.Context())

	if err, ok := resp.Body.(error); ok && err != nil {
		status = perr.HTTPStatus(err)
		wr := perr.WireFrom(err)
		if status >= stdhttp.StatusInternalServerError {
			logger.C(r.Context()).Error().Err(err).Str("code", wr.Code.String()).Int("status", status).Msg("request failed")
		}
		JSON(w, status, Envelope{
			StatusCode: status,
			Status:     stdhttp.StatusText(status),
			Code:       wr.Code,
			Error:      wr.Message,
			Field:      wr.Field,
			RequestID:  reqID,
		})
		return
	}

	switch {
	case status == stdhttp.StatusNoContent:
		w.WriteHeader(status)
	case resp.Raw != nil:
		if resp.ContentType != "" {
			w.Header().Set("Content-Type", resp.ContentType)
		}
		w.WriteHeader(status)
		_, _ = w.Write(resp.Raw)
	default:
		JSON(w, status, Envelope{
			StatusCode: status,
			Status:     stdhttp.StatusText(status),
			RequestID:  reqID,
			Data:       resp.Body,
		})
	}
}

// OK is a 200 with data
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// Created is a 201 with data
func Created(data any) Response { return Response{Status: stdhttp.StatusCreated, Body: data} }

// NoContent is a bodyless 204
func NoContent() Response { return Response{Status: stdhttp.StatusNoContent} }

// Error maps err onto the envelope and its status
func Error(err error) Response { return Response{Body: err} }

// Attachment is a 200 download with a filename
func Attachment(filename, contentType string, data []byte) Response {
	h := stdhttp.Header{}
	h.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if data == nil {
		data = []byte{}
	}
	return Response{Status: stdhttp.StatusOK, Header: h, Raw: data, ContentType: contentType}
}
