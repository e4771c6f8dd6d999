package raw

import "testing"

func TestGet(t *testing.T) {
	t.Setenv("LOG_LEVEL", "  info ")
	c := New().Prefix("LOG_")
	if got := c.Get("LEVEL", "debug"); got != "info" {
		t.Fatalf("Get = %q, want info", got)
	}
	if got := c.Get("FORMAT", "console"); got != "console" {
		t.Fatalf("Get default = %q, want console", got)
	}
}

func TestGetBool(t *testing.T) {
	c := New().Prefix("B_")
	cases := []struct {
		val  string
		def  bool
		want bool
	}{
		{"", true, true},
		{"", false, false},
		{"1", false, true},
		{"YES", false, true},
		{"on", false, true},
		{"no", true, false},
		{"garbage", true, false},
	}
	for _, tc := range cases {
		t.Setenv("B_FLAG", tc.val)
		if got := c.GetBool("FLAG", tc.def); got != tc.want {
			t.Fatalf("GetBool(%q, %v) = %v, want %v", tc.val, tc.def, got, tc.want)
		}
	}
}

func TestGetInt(t *testing.T) {
	c := New()
	t.Setenv("N", "12")
	if got := c.GetInt("N", 3); got != 12 {
		t.Fatalf("GetInt = %d, want 12", got)
	}
	t.Setenv("N", "-4")
	if got := c.GetInt("N", 3); got != 3 {
		t.Fatalf("negative should fall back, got %d", got)
	}
	t.Setenv("N", "1x")
	if got := c.GetInt("N", 3); got != 3 {
		t.Fatalf("malformed should fall back, got %d", got)
	}
}
