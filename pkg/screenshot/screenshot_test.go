package screenshot_test

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/corvid-labs/skillwalk/pkg/model"
	"github.com/corvid-labs/skillwalk/pkg/screenshot"
)

func fixturePNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestBoundsRecoversRealPixelDimensions(t *testing.T) {
	b64 := fixturePNG(t, 390, 844)
	w, h, err := screenshot.Bounds(b64)
	require.NoError(t, err)
	require.Equal(t, 390, w)
	require.Equal(t, 844, h)
}

func TestBoundsRejectsGarbage(t *testing.T) {
	_, _, err := screenshot.Bounds("not-a-png")
	require.Error(t, err)
}

func TestResolveHintsOverlaysRealDimensions(t *testing.T) {
	b64 := fixturePNG(t, 400, 900)
	hints := model.ScreenHints{WindowWidth: 100, WindowHeight: 200}
	resolved := screenshot.ResolveHints(b64, hints)
	require.Equal(t, 400.0, resolved.WindowWidth)
	require.Equal(t, 900.0, resolved.WindowHeight)
}

func TestResolveHintsLeavesHintsOnMissingScreenshot(t *testing.T) {
	hints := model.ScreenHints{WindowWidth: 100, WindowHeight: 200}
	resolved := screenshot.ResolveHints("", hints)
	require.Equal(t, hints, resolved)
}

func TestResolveHintsLeavesHintsOnMalformedScreenshot(t *testing.T) {
	hints := model.ScreenHints{WindowWidth: 100, WindowHeight: 200}
	resolved := screenshot.ResolveHints("garbage-not-base64-png", hints)
	require.Equal(t, hints, resolved)
}

func TestThumbnailDownscalesPreservingAspect(t *testing.T) {
	b64 := fixturePNG(t, 800, 400)
	thumb, err := screenshot.Thumbnail(b64, 200, 200)
	require.NoError(t, err)

	w, h, err := screenshot.Bounds(thumb)
	require.NoError(t, err)
	require.LessOrEqual(t, w, 200)
	require.LessOrEqual(t, h, 200)
	require.Equal(t, 200, w) // width was the binding constraint (2:1 aspect)
	require.Equal(t, 100, h)
}
