// Package domain holds DTOs for the consumer verification flow
package domain

import (
	"time"

	"batchtrace/internal/core/catalog"
	"batchtrace/internal/core/submission"
)

// Consumer facing messages
const (
	MsgRequired    = "Please fill all required fields."
	MsgUnavailable = "Service temporarily unavailable"
	MsgNotFound    = "Batch code not found. Please check your pack."
	MsgVerified    = "Batch verified."
)

// Session is an open verification session over one catalog snapshot
type Session struct {
	ID        string    `json:"id" example:"3f0c2a4e-3c1b-4f7e-9a55-0c1f4d7b2e10"`
	Entries   int       `json:"entries" example:"412"`
	LoadedAt  time.Time `json:"loaded_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SubmitInput is the consumer form
type SubmitInput struct {
	FullName  string `json:"full_name" validate:"required,max=200" example:"Asha Rao"`
	Mobile    string `json:"mobile" validate:"required,max=32" example:"9876543210"`
	Email     string `json:"email,omitempty" validate:"omitempty,max=254" example:"asha@example.com"`
	PinCode   string `json:"pin_code" validate:"required,max=16" example:"560001"`
	BatchCode string `json:"batch_code" validate:"required,max=64" example:"ADI-24-0117"`
	// PackImage is an optional data URL of the pack photo
	PackImage string `json:"pack_image,omitempty"`
}

// SubmitResult is the verification outcome
type SubmitResult struct {
	SubmissionID string              `json:"submission_id"`
	Status       submission.Status   `json:"status" example:"SUCCESS"`
	Message      string              `json:"message"`
	Entry        *catalog.BatchEntry `json:"entry,omitempty"`
	Logged       bool                `json:"logged"`
	Reason       string              `json:"reason,omitempty"`
}

// EditInput asks for a pack photo edit
type EditInput struct {
	Image  string `json:"image" validate:"required"`
	Prompt string `json:"prompt" validate:"required,notblank,max=500" example:"remove the glare"`
}

// EditResult carries the edited photo as a data URL
type EditResult struct {
	Image string `json:"image"`
}
