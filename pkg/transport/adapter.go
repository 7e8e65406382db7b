package transport

import (
	"context"
	"fmt"

	"github.com/corvid-labs/skillwalk/pkg/boundary"
	"github.com/corvid-labs/skillwalk/pkg/model"
)

// LiveDescriber composes a ScreenCapture, TextRecognizer, and WindowBridge
// into the single boundary.ScreenDescriber the core expects per tick (§6:
// "composes capture, recognition, and bounding-box detection"). Icon count
// is left to the recognizer/bounding-box detector the caller wires in;
// LiveDescriber itself only sequences the three calls.
type LiveDescriber struct {
	Bridge     boundary.WindowBridge
	Capture    boundary.ScreenCapture
	Recognizer boundary.TextRecognizer
}

func (d *LiveDescriber) Describe(ctx context.Context) (boundary.Description, error) {
	info, found, err := d.Bridge.GetWindowInfo(ctx)
	if err != nil {
		return boundary.Description{}, fmt.Errorf("getting window info: %w", err)
	}
	if !found {
		return boundary.Description{}, fmt.Errorf("mirrored window not found")
	}

	raw, err := d.Capture.CaptureData(ctx)
	if err != nil {
		return boundary.Description{}, fmt.Errorf("capturing screen: %w", err)
	}
	b64, err := d.Capture.CaptureBase64(ctx)
	if err != nil {
		return boundary.Description{}, fmt.Errorf("encoding screenshot: %w", err)
	}

	bounds := boundary.ContentBounds{Width: info.Width, Height: info.Height}
	hits, err := d.Recognizer.RecognizeText(ctx, raw, info, bounds)
	if err != nil {
		return boundary.Description{}, fmt.Errorf("recognizing text: %w", err)
	}

	elements := make([]model.TapPoint, 0, len(hits))
	for _, h := range hits {
		elements = append(elements, model.TapPoint{
			Text: h.Text, TapX: h.TapX, TapY: (h.TopY + h.BottomY) / 2, Confidence: h.Confidence,
		})
	}

	return boundary.Description{
		Elements:      elements,
		Hints:         model.ScreenHints{WindowWidth: info.Width, WindowHeight: info.Height},
		ScreenshotB64: b64,
	}, nil
}
