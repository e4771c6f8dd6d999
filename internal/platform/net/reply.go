package net

import (
	"net/http"

	perr "batchtrace/internal/platform/errors"
)

// Wire is the error envelope written by middleware that runs before handlers
type Wire struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
}

// Error builds the status and envelope for err. nil yields a bare 200
func Error(err error, reqID string) (int, Wire) {
	if err == nil {
		return http.StatusOK, Wire{StatusCode: http.StatusOK, Status: http.StatusText(http.StatusOK), RequestID: reqID}
	}
	status, w := perr.HTTP(err)
	return status, Wire{
		StatusCode: status,
		Status:     http.StatusText(status),
		Code:       w.Code,
		Error:      w.Message,
		RequestID:  reqID,
	}
}
