// Package catalog maps spreadsheet rows to batch entries and matches
// consumer input against them
package catalog

import (
	"strings"
)

// BatchEntry is one lab-tested batch
type BatchEntry struct {
	BatchCode   string `json:"batch_code"`
	ReportURL   string `json:"report_url"`
	ProductName string `json:"product_name"`
	TestDate    string `json:"test_date"`
	LabName     string `json:"lab_name"`
}

// Defaults fill the fields a row may leave empty
type Defaults struct {
	ProductName string
	LabName     string
	// TestDate is the already rendered load date
	TestDate string
}

// Stats describes one mapping pass
type Stats struct {
	Rows    int
	Entries int
	Dropped int
}

// FromRows maps rows through cols. Rows narrower than cols.MinWidth() and
// rows without a batch code or report URL are dropped. cols must be valid
func FromRows(rows [][]string, cols ColumnMap, def Defaults) ([]BatchEntry, Stats) {
	st := Stats{Rows: len(rows)}
	width := cols.MinWidth()
	out := make([]BatchEntry, 0, len(rows))
	for _, row := range rows {
		if len(row) < width {
			st.Dropped++
			continue
		}
		code := strings.TrimSpace(row[cols.BatchCode])
		url := strings.TrimSpace(row[cols.ReportURL])
		if code == "" || url == "" {
			st.Dropped++
			continue
		}
		e := BatchEntry{
			BatchCode:   code,
			ReportURL:   url,
			ProductName: strings.TrimSpace(row[cols.ProductName]),
			TestDate:    strings.TrimSpace(row[cols.TestDate]),
			LabName:     def.LabName,
		}
		if e.ProductName == "" {
			e.ProductName = def.ProductName
		}
		if e.TestDate == "" {
			e.TestDate = def.TestDate
		}
		out = append(out, e)
	}
	st.Entries = len(out)
	return out, st
}

// FirstCodes returns up to n batch codes in catalog order
func FirstCodes(entries []BatchEntry, n int) []string {
	n = min(n, len(entries))
	out := make([]string, 0, n)
	for _, e := range entries[:n] {
		out = append(out, e.BatchCode)
	}
	return out
}
