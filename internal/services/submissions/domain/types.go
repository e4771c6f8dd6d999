// Package domain holds DTOs for submissions http and service contracts
package domain

import (
	"batchtrace/internal/core/query"
	"batchtrace/internal/core/submission"
)

// SaveResult reports whether a submission reached the store
type SaveResult struct {
	Logged bool   `json:"logged"`
	Reason string `json:"reason,omitempty"`
}

// LoadResult is the stored sequence in insertion order. A corrupt document
// reads as empty with Degraded set
type LoadResult struct {
	Items    []submission.Submission `json:"items"`
	Degraded bool                    `json:"degraded"`
	Reason   string                  `json:"reason,omitempty"`
}

// ListInput is one admin query
type ListInput struct {
	Range string `json:"range,omitempty" validate:"omitempty,oneof=all today week month last_month quarter last_quarter custom" example:"month"`
	Start string `json:"start,omitempty" validate:"omitempty,datetime=2006-01-02" example:"2024-01-01"`
	End   string `json:"end,omitempty" validate:"omitempty,datetime=2006-01-02" example:"2024-01-31"`
	Q     string `json:"q,omitempty" validate:"omitempty,max=200" example:"9876"`
}

// Filter converts in to a query filter. Unknown ranges mean all
func (in ListInput) Filter() query.Filter {
	r, _ := query.ParseRange(in.Range)
	return query.Filter{Range: r, Start: in.Start, End: in.End, Search: in.Q}
}

// ListResult is a filtered page of submissions, newest first
type ListResult struct {
	Items    []submission.Submission `json:"items"`
	Total    int                     `json:"total"`
	Matched  int                     `json:"matched"`
	Success  int                     `json:"success"`
	Failure  int                     `json:"failure"`
	Range    string                  `json:"range"`
	Degraded bool                    `json:"degraded"`
	Reason   string                  `json:"reason,omitempty"`
}

// Export is a rendered CSV download
type Export struct {
	Filename string
	Rows     int
	Data     []byte
}
