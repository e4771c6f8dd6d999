// Package query filters and orders the submission log for the admin views
package query

import (
	"slices"
	"strings"
	"time"

	"batchtrace/internal/core/submission"

	"golang.org/x/text/cases"
)

// RangeKind selects the date predicate
type RangeKind string

// Range kinds
const (
	RangeAll         RangeKind = "all"
	RangeToday       RangeKind = "today"
	RangeWeek        RangeKind = "week"
	RangeMonth       RangeKind = "month"
	RangeLastMonth   RangeKind = "last_month"
	RangeQuarter     RangeKind = "quarter"
	RangeLastQuarter RangeKind = "last_quarter"
	RangeCustom      RangeKind = "custom"
)

// Ranges lists every kind in display order
var Ranges = []RangeKind{RangeAll, RangeToday, RangeWeek, RangeMonth, RangeLastMonth, RangeQuarter, RangeLastQuarter, RangeCustom}

// DateLayout is the format of custom bounds
const DateLayout = "2006-01-02"

// ParseRange maps s onto a kind. Unknown or empty input is RangeAll, false
func ParseRange(s string) (RangeKind, bool) {
	k := RangeKind(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(Ranges, k) {
		return k, true
	}
	return RangeAll, false
}

// Filter is one admin query
type Filter struct {
	Range  RangeKind
	Start  string
	End    string
	Search string
}

// Apply keeps the submissions passing both the date and the search predicate,
// preserving input order. Calendar ranges are evaluated in loc
func Apply(subs []submission.Submission, f Filter, now time.Time, loc *time.Location) []submission.Submission {
	if loc == nil {
		loc = time.Local
	}
	inRange := datePredicate(f, now.In(loc), loc)
	matches := searchPredicate(f.Search)

	out := make([]submission.Submission, 0, len(subs))
	for _, s := range subs {
		if !matches(s) {
			continue
		}
		if inRange != nil {
			t, err := s.Time()
			if err != nil || !inRange(t.In(loc)) {
				continue
			}
		}
		out = append(out, s)
	}
	return out
}

// datePredicate returns nil when the filter does not constrain dates
func datePredicate(f Filter, now time.Time, loc *time.Location) func(time.Time) bool {
	y, m, d := now.Date()
	switch f.Range {
	case RangeToday:
		return func(t time.Time) bool {
			ty, tm, td := t.Date()
			return ty == y && tm == m && td == d
		}
	case RangeWeek:
		from := now.Add(-7 * 24 * time.Hour)
		return func(t time.Time) bool { return !t.Before(from) }
	case RangeMonth:
		return func(t time.Time) bool { return t.Year() == y && t.Month() == m }
	case RangeLastMonth:
		from := time.Date(y, m-1, 1, 0, 0, 0, 0, loc)
		to := time.Date(y, m, 1, 0, 0, 0, 0, loc)
		return func(t time.Time) bool { return !t.Before(from) && t.Before(to) }
	case RangeQuarter:
		q := quarter(m)
		return func(t time.Time) bool { return t.Year() == y && quarter(t.Month()) == q }
	case RangeLastQuarter:
		q, qy := quarter(m)-1, y
		if q < 0 {
			q, qy = 3, y-1
		}
		return func(t time.Time) bool { return t.Year() == qy && quarter(t.Month()) == q }
	case RangeCustom:
		from, err1 := time.ParseInLocation(DateLayout, strings.TrimSpace(f.Start), loc)
		end, err2 := time.ParseInLocation(DateLayout, strings.TrimSpace(f.End), loc)
		if err1 != nil || err2 != nil {
			return nil
		}
		to := end.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
		return func(t time.Time) bool { return !t.Before(from) && !t.After(to) }
	default:
		return nil
	}
}

// quarter is 0 for Jan-Mar through 3 for Oct-Dec
func quarter(m time.Month) int { return (int(m) - 1) / 3 }

func searchPredicate(term string) func(submission.Submission) bool {
	if term == "" {
		return func(submission.Submission) bool { return true }
	}
	fold := cases.Fold()
	needle := fold.String(term)
	return func(s submission.Submission) bool {
		return strings.Contains(s.Mobile, term) ||
			strings.Contains(fold.String(s.BatchCode), needle) ||
			strings.Contains(fold.String(s.FullName), needle)
	}
}

// SortNewest returns a copy ordered by timestamp descending. Unparseable
// timestamps sort last, keeping their relative order
func SortNewest(subs []submission.Submission) []submission.Submission {
	type keyed struct {
		s  submission.Submission
		t  time.Time
		ok bool
	}
	ks := make([]keyed, len(subs))
	for i, s := range subs {
		t, err := s.Time()
		ks[i] = keyed{s: s, t: t, ok: err == nil}
	}
	slices.SortStableFunc(ks, func(a, b keyed) int {
		switch {
		case a.ok && b.ok:
			return b.t.Compare(a.t)
		case a.ok:
			return -1
		case b.ok:
			return 1
		}
		return 0
	})
	out := make([]submission.Submission, len(ks))
	for i, k := range ks {
		out[i] = k.s
	}
	return out
}
