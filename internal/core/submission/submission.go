// Package submission is the verification attempt record shared by the
// store, the query engine and the export
package submission

import (
	"regexp"
	"time"
)

// Status is the match outcome of a submission
type Status string

// Outcomes
const (
	StatusSuccess Status = "SUCCESS"
	StatusFailure Status = "FAILURE"
)

// TimestampLayout is how creation times are stored: UTC with milliseconds
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Device types
const (
	DeviceMobile  = "Mobile"
	DeviceDesktop = "Desktop"
)

// Submission is one verification attempt. It is never mutated once stored
type Submission struct {
	ID         string `json:"id"`
	Timestamp  string `json:"timestamp"`
	FullName   string `json:"full_name"`
	Mobile     string `json:"mobile"`
	Email      string `json:"email,omitempty"`
	PinCode    string `json:"pin_code"`
	BatchCode  string `json:"batch_code"`
	MatchedURL string `json:"matched_url,omitempty"`
	Status     Status `json:"status"`
	DeviceType string `json:"device_type"`
	PackImage  string `json:"pack_image,omitempty"`
}

// Stamp renders t in TimestampLayout
func Stamp(t time.Time) string { return t.UTC().Format(TimestampLayout) }

// Time parses the timestamp. Any RFC 3339 form is accepted so records
// written by other tools still filter correctly
func (s Submission) Time() (time.Time, error) {
	if t, err := time.Parse(TimestampLayout, s.Timestamp); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339Nano, s.Timestamp)
}

var mobileUA = regexp.MustCompile(`(?i)mobi`)

// DeviceType classifies a User-Agent header
func DeviceType(userAgent string) string {
	if mobileUA.MatchString(userAgent) {
		return DeviceMobile
	}
	return DeviceDesktop
}

// ExportHeaders is the header row of the CSV export
var ExportHeaders = []string{"Timestamp", "Full Name", "Mobile", "Email", "PIN", "Batch Code", "Status", "Matched URL", "Device"}

// ExportRows renders subs under ExportHeaders, header first. Pack images are
// not exported
func ExportRows(subs []Submission) [][]string {
	rows := make([][]string, 0, len(subs)+1)
	rows = append(rows, append([]string(nil), ExportHeaders...))
	for _, s := range subs {
		rows = append(rows, []string{
			s.Timestamp, s.FullName, s.Mobile, s.Email, s.PinCode,
			s.BatchCode, string(s.Status), s.MatchedURL, s.DeviceType,
		})
	}
	return rows
}
