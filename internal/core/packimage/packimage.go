// Package packimage normalises consumer pack photos before they are stored:
// EXIF orientation applied, long edge capped, re-encoded as JPEG
package packimage

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
	"golang.org/x/image/draw"
)

// Encoding limits
const (
	MaxDimension = 512
	Quality      = 85
)

// ErrNotDataURL is returned for input that is not a base64 data URL
var ErrNotDataURL = errors.New("packimage: not a base64 data URL")

// DecodeDataURL splits a data:<mime>;base64,<payload> URL
func DecodeDataURL(s string) (mime string, data []byte, err error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(s), "data:")
	if !ok {
		return "", nil, ErrNotDataURL
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, ErrNotDataURL
	}
	mime, ok = strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", nil, ErrNotDataURL
	}
	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("packimage: payload: %w", err)
	}
	return mime, data, nil
}

// EncodeDataURL is the inverse of DecodeDataURL
func EncodeDataURL(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// Orientation reads the EXIF orientation tag, 1 when absent
func Orientation(data []byte) int {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return 1
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	v, err := tag.Int(0)
	if err != nil {
		return 1
	}
	return v
}

// Orient maps img through EXIF orientation o (1..8). Unknown values are identity
func Orient(img image.Image, o int) image.Image {
	if o < 2 || o > 8 {
		return img
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	dw, dh := w, h
	if o >= 5 {
		dw, dh = h, w
	}
	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var dx, dy int
			switch o {
			case 2:
				dx, dy = w-1-x, y
			case 3:
				dx, dy = w-1-x, h-1-y
			case 4:
				dx, dy = x, h-1-y
			case 5:
				dx, dy = y, x
			case 6:
				dx, dy = h-1-y, x
			case 7:
				dx, dy = h-1-y, w-1-x
			case 8:
				dx, dy = y, w-1-x
			}
			dst.Set(dx, dy, img.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return dst
}

// fit scales w x h so the long edge is at most MaxDimension
func fit(w, h int) (int, int) {
	if w <= MaxDimension && h <= MaxDimension {
		return w, h
	}
	if w >= h {
		return MaxDimension, max(1, h*MaxDimension/w)
	}
	return max(1, w*MaxDimension/h), MaxDimension
}

// Normalize decodes a JPEG or PNG, applies orientation, downsizes and
// re-encodes as JPEG
func Normalize(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("packimage: decode: %w", err)
	}
	img = Orient(img, Orientation(data))

	b := img.Bounds()
	nw, nh := fit(b.Dx(), b.Dy())
	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: Quality}); err != nil {
		return nil, fmt.Errorf("packimage: encode: %w", err)
	}
	return buf.Bytes(), nil
}

// NormalizeDataURL runs Normalize over a data URL and returns a JPEG data URL
func NormalizeDataURL(s string) (string, error) {
	_, data, err := DecodeDataURL(s)
	if err != nil {
		return "", err
	}
	out, err := Normalize(data)
	if err != nil {
		return "", err
	}
	return EncodeDataURL("image/jpeg", out), nil
}
