// Package screenshot decodes the base64 PNG a ScreenDescriber attaches to a
// captured screen, recovering real pixel dimensions rather than trusting a
// caller-supplied window size (§4.1, §4.4: status-bar and home-gesture
// boundaries are only as accurate as the window bounds they're computed
// against).
package screenshot

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/png"

	"golang.org/x/image/draw"

	"github.com/corvid-labs/skillwalk/pkg/model"
)

// Bounds decodes pngB64's header and returns its pixel width and height.
func Bounds(pngB64 string) (width, height int, err error) {
	img, err := decode(pngB64)
	if err != nil {
		return 0, 0, err
	}
	return img.Width, img.Height, nil
}

func decode(pngB64 string) (image.Config, error) {
	raw, err := base64.StdEncoding.DecodeString(pngB64)
	if err != nil {
		return image.Config{}, fmt.Errorf("decoding base64 screenshot: %w", err)
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return image.Config{}, fmt.Errorf("decoding screenshot png header: %w", err)
	}
	return cfg, nil
}

// ResolveHints overlays the real pixel width/height recovered from pngB64
// onto hints, when the screenshot is present and decodable. A missing or
// malformed screenshot leaves hints untouched: the caller-supplied bounds
// are the only fallback there is.
func ResolveHints(pngB64 string, hints model.ScreenHints) model.ScreenHints {
	if pngB64 == "" {
		return hints
	}
	w, h, err := Bounds(pngB64)
	if err != nil {
		return hints
	}
	hints.WindowWidth = float64(w)
	hints.WindowHeight = float64(h)
	return hints
}

// Thumbnail decodes pngB64 and downscales it to fit within maxW x maxH
// (preserving aspect ratio), returning a re-encoded base64 PNG. Bundle
// writing in pkg/synth does not call it.
func Thumbnail(pngB64 string, maxW, maxH int) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(pngB64)
	if err != nil {
		return "", fmt.Errorf("decoding base64 screenshot: %w", err)
	}
	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("decoding screenshot png: %w", err)
	}

	bounds := src.Bounds()
	scale := 1.0
	if bounds.Dx() > maxW {
		scale = float64(maxW) / float64(bounds.Dx())
	}
	if h := float64(bounds.Dy()) * scale; h > float64(maxH) {
		scale = float64(maxH) / float64(bounds.Dy())
	}
	dstW := max(1, int(float64(bounds.Dx())*scale))
	dstH := max(1, int(float64(bounds.Dy())*scale))

	dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	return encodePNG(dst)
}
