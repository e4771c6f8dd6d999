package csvgrid

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want [][]string
	}{
		{"empty", "", nil},
		{"simple", "a,b\nc,d", [][]string{{"a", "b"}, {"c", "d"}}},
		{"trailing newline", "a,b\n", [][]string{{"a", "b"}}},
		{"crlf", "a,b\r\nc,d\r\n", [][]string{{"a", "b"}, {"c", "d"}}},
		{"bare cr", "a\rb", [][]string{{"a"}, {"b"}}},
		{"quoted comma", `"x,y",z`, [][]string{{"x,y", "z"}}},
		{"escaped quote", `"He said ""hi"""`, [][]string{{`He said "hi"`}}},
		{"quoted newline", "\"l1\nl2\",b", [][]string{{"l1\nl2", "b"}}},
		{"empty cells", ",,", [][]string{{"", "", ""}}},
		{"blank line", "a\n\nb", [][]string{{"a"}, {""}, {"b"}}},
		{"unbalanced quote", "a,\"b,c\nd", [][]string{{"a", "b,c\nd"}}},
		{"trailing comma", "a,", [][]string{{"a", ""}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, Parse(tc.in)); diff != "" {
				t.Fatalf("Parse(%q) (-want +got):\n%s", tc.in, diff)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	got := Format([][]string{{"Timestamp", "Full Name"}, {"2024-01-01", `Ann "A" Lee`}})
	want := "\"Timestamp\",\"Full Name\"\n\"2024-01-01\",\"Ann \"\"A\"\" Lee\""
	if got != want {
		t.Fatalf("Format = %q, want %q", got, want)
	}
	if Format(nil) != "" {
		t.Fatalf("empty grid should format to empty string")
	}
}

func TestParseInvertsFormat(t *testing.T) {
	grids := [][][]string{
		{{"a"}},
		{{"", ""}, {"x"}},
		{{"comma,inside", "quote\"inside", "new\nline", "cr\r\nlf"}},
		{{"ADI-1", "https://r/1"}, {"ADI-2", ""}},
	}
	for _, g := range grids {
		if diff := cmp.Diff(g, Parse(Format(g))); diff != "" {
			t.Fatalf("round trip (-want +got):\n%s", diff)
		}
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestWritePropagatesErrors(t *testing.T) {
	if err := Write(failWriter{}, [][]string{{"a"}}); err == nil {
		t.Fatalf("want write error")
	}
}
