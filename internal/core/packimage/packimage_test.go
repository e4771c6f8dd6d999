package packimage

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"
)

func pngOf(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 90, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestNormalizeDownscalesAndReencodes(t *testing.T) {
	out, err := Normalize(pngOf(t, 1200, 600))
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if format != "jpeg" || cfg.Width != 512 || cfg.Height != 256 {
		t.Fatalf("got %s %dx%d", format, cfg.Width, cfg.Height)
	}
}

func TestNormalizeKeepsSmallDimensions(t *testing.T) {
	out, err := Normalize(pngOf(t, 40, 30))
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(out))
	if err != nil || cfg.Width != 40 || cfg.Height != 30 {
		t.Fatalf("cfg = %+v, %v", cfg, err)
	}
}

func TestNormalizeRejectsGarbage(t *testing.T) {
	if _, err := Normalize([]byte("not an image")); err == nil {
		t.Fatalf("want error")
	}
}

func TestDataURL(t *testing.T) {
	url := EncodeDataURL("image/png", []byte{1, 2, 3})
	if url != "data:image/png;base64,AQID" {
		t.Fatalf("url = %q", url)
	}
	mime, data, err := DecodeDataURL(url)
	if err != nil || mime != "image/png" || !bytes.Equal(data, []byte{1, 2, 3}) {
		t.Fatalf("decode = %q %v %v", mime, data, err)
	}

	for _, bad := range []string{"", "http://x", "data:image/png,AQID", "data:image/png;base64"} {
		if _, _, err := DecodeDataURL(bad); !errors.Is(err, ErrNotDataURL) {
			t.Fatalf("DecodeDataURL(%q) = %v", bad, err)
		}
	}
	if _, _, err := DecodeDataURL("data:image/png;base64,!!!"); err == nil {
		t.Fatalf("want payload error")
	}
}

func TestNormalizeDataURL(t *testing.T) {
	out, err := NormalizeDataURL(EncodeDataURL("image/png", pngOf(t, 10, 10)))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "data:image/jpeg;base64,") {
		t.Fatalf("out = %.40s", out)
	}
}

func TestOrient(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 2))
	red := color.RGBA{R: 255, A: 255}
	src.Set(0, 0, red)

	cases := []struct {
		o          int
		w, h       int
		redX, redY int
	}{
		{1, 3, 2, 0, 0},
		{2, 3, 2, 2, 0},
		{3, 3, 2, 2, 1},
		{4, 3, 2, 0, 1},
		{5, 2, 3, 0, 0},
		{6, 2, 3, 1, 0},
		{7, 2, 3, 1, 2},
		{8, 2, 3, 0, 2},
	}
	for _, tc := range cases {
		got := Orient(src, tc.o)
		b := got.Bounds()
		if b.Dx() != tc.w || b.Dy() != tc.h {
			t.Fatalf("o=%d size %dx%d", tc.o, b.Dx(), b.Dy())
		}
		if r, _, _, _ := got.At(tc.redX, tc.redY).RGBA(); r != 0xffff {
			t.Fatalf("o=%d red pixel not at (%d,%d)", tc.o, tc.redX, tc.redY)
		}
	}
}

func TestOrientationWithoutExif(t *testing.T) {
	if got := Orientation(pngOf(t, 2, 2)); got != 1 {
		t.Fatalf("orientation = %d", got)
	}
}

func TestFit(t *testing.T) {
	cases := []struct{ w, h, ww, wh int }{
		{100, 50, 100, 50},
		{1200, 600, 512, 256},
		{600, 1200, 256, 512},
		{4000, 3, 512, 1},
		{512, 512, 512, 512},
	}
	for _, tc := range cases {
		if w, h := fit(tc.w, tc.h); w != tc.ww || h != tc.wh {
			t.Fatalf("fit(%d,%d) = %d,%d", tc.w, tc.h, w, h)
		}
	}
}
