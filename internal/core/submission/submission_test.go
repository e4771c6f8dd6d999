package submission

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestDeviceType(t *testing.T) {
	cases := map[string]string{
		"Mozilla/5.0 (iPhone; CPU iPhone OS 17_0) Mobile/15E148": DeviceMobile,
		"Mozilla/5.0 (Linux; Android 14) MOBILE Safari":          DeviceMobile,
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64)":              DeviceDesktop,
		"": DeviceDesktop,
	}
	for ua, want := range cases {
		if got := DeviceType(ua); got != want {
			t.Fatalf("DeviceType(%q) = %q, want %q", ua, got, want)
		}
	}
}

func TestStampAndTime(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	at := time.Date(2024, 3, 9, 10, 4, 5, 123_000_000, ist)
	s := Submission{Timestamp: Stamp(at)}
	if s.Timestamp != "2024-03-09T04:34:05.123Z" {
		t.Fatalf("stamp = %q", s.Timestamp)
	}
	got, err := s.Time()
	if err != nil || !got.Equal(at) {
		t.Fatalf("time = %v, %v", got, err)
	}

	if _, err := (Submission{Timestamp: "2024-03-09T10:04:05+05:30"}).Time(); err != nil {
		t.Fatalf("rfc3339: %v", err)
	}
	if _, err := (Submission{Timestamp: "yesterday"}).Time(); err == nil {
		t.Fatalf("want parse error")
	}
}

func TestExportRows(t *testing.T) {
	rows := ExportRows([]Submission{{
		Timestamp: "2024-01-01T00:00:00.000Z", FullName: "Adi Kumar", Mobile: "98", PinCode: "560001",
		BatchCode: "ADI-1", Status: StatusSuccess, MatchedURL: "https://r/1", DeviceType: DeviceMobile,
		PackImage: "data:image/jpeg;base64,AAAA",
	}})
	want := [][]string{
		ExportHeaders,
		{"2024-01-01T00:00:00.000Z", "Adi Kumar", "98", "", "560001", "ADI-1", "SUCCESS", "https://r/1", "Mobile"},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Fatalf("rows (-want +got):\n%s", diff)
	}
	if len(ExportRows(nil)) != 1 {
		t.Fatalf("empty export should still carry the header")
	}
}
