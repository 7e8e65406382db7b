// Package boundary declares the external-collaborator interfaces the
// exploration core consumes (spec §6): the mirrored-device bridge, input
// synthesis, screen capture, text recognition, and the composed
// ScreenDescriber. The core never imports a concrete implementation of
// these; it is handed one at session-construction time.
package boundary

import (
	"context"

	"github.com/corvid-labs/skillwalk/pkg/model"
)

// ConnectionState is WindowBridge.GetState's result.
type ConnectionState int

const (
	StateNoWindow ConnectionState = iota
	StateConnected
	StatePaused
	StateNotRunning
)

// Orientation is WindowBridge.GetOrientation's result.
type Orientation int

const (
	OrientationUnknown Orientation = iota
	OrientationPortrait
	OrientationLandscape
)

// WindowInfo describes the mirrored window's placement and size.
type WindowInfo struct {
	WindowID string
	X, Y     float64
	Width    float64
	Height   float64
}

// WindowBridge locates and describes the mirrored device window.
type WindowBridge interface {
	FindProcess(ctx context.Context) (handle string, found bool, err error)
	GetWindowInfo(ctx context.Context) (WindowInfo, bool, error)
	GetState(ctx context.Context) (ConnectionState, error)
	GetOrientation(ctx context.Context) (Orientation, error)
	Activate(ctx context.Context) error
}

// KeyModifier is one of the modifier keys InputProvider.PressKey accepts.
type KeyModifier string

const (
	ModShift   KeyModifier = "shift"
	ModCommand KeyModifier = "command"
	ModOption  KeyModifier = "option"
	ModControl KeyModifier = "control"
)

// TypeResult is InputProvider.TypeText's outcome.
type TypeResult struct {
	Success bool
	Warning string
	Err     error
}

// KeyResult is InputProvider.PressKey's outcome.
type KeyResult struct {
	Success bool
	Err     error
}

// InputProvider synthesizes touch and keyboard input. All coordinates are
// in window points with a top-left origin (§6).
type InputProvider interface {
	Tap(ctx context.Context, x, y float64) error
	Swipe(ctx context.Context, fromX, fromY, toX, toY float64, durationMs int) error
	Drag(ctx context.Context, fromX, fromY, toX, toY float64, durationMs int) error
	LongPress(ctx context.Context, x, y float64, durationMs int) error
	DoubleTap(ctx context.Context, x, y float64) error
	Shake(ctx context.Context) error
	TypeText(ctx context.Context, text string) (TypeResult, error)
	PressKey(ctx context.Context, keyName string, modifiers []KeyModifier) (KeyResult, error)
	LaunchApp(ctx context.Context, name string) error
	OpenURL(ctx context.Context, url string) error
}

// ScreenCapture pulls raw pixels from the mirrored window.
type ScreenCapture interface {
	CaptureData(ctx context.Context) ([]byte, error)
	CaptureBase64(ctx context.Context) (string, error)
}

// ContentBounds compensates sub-image OCR so tap coordinates always refer
// to the mirrored window's logical point grid (§6).
type ContentBounds struct {
	X, Y          float64
	Width, Height float64
}

// RawTextElement is one text-recognizer hit.
type RawTextElement struct {
	Text       string
	TapX       float64
	TopY       float64
	BottomY    float64
	Width      float64
	Confidence float64
}

// TextRecognizer turns a screenshot into OCR elements. Implementations may
// be composed (e.g. an on-device pass chained with a remote fallback).
type TextRecognizer interface {
	RecognizeText(ctx context.Context, image []byte, windowSize WindowInfo, bounds ContentBounds) ([]RawTextElement, error)
}

// Description is what a ScreenDescriber produces for one tick.
type Description struct {
	Elements      []model.TapPoint
	Icons         int
	Hints         model.ScreenHints
	ScreenshotB64 string
}

// ScreenDescriber composes capture, recognition, and bounding-box
// detection into a single per-tick read of screen state.
type ScreenDescriber interface {
	Describe(ctx context.Context) (Description, error)
}
