package boundary

import "context"

// FakeDescriber serves a scripted sequence of Descriptions, one per call,
// and repeats the last one once the script is exhausted. Used by traversal
// tests in place of a live OCR/capture pipeline.
type FakeDescriber struct {
	Script []Description
	Err    error
	calls  int
}

func (f *FakeDescriber) Describe(ctx context.Context) (Description, error) {
	if f.Err != nil {
		return Description{}, f.Err
	}
	if len(f.Script) == 0 {
		return Description{}, nil
	}
	idx := f.calls
	if idx >= len(f.Script) {
		idx = len(f.Script) - 1
	}
	f.calls++
	return f.Script[idx], nil
}

// Calls reports how many times Describe has been invoked.
func (f *FakeDescriber) Calls() int { return f.calls }

// FakeInput records every synthesized input call without driving anything
// real.
type FakeInput struct {
	Taps     []struct{ X, Y float64 }
	Swipes   []struct{ FromX, FromY, ToX, ToY float64 }
	KeyPress []string
}

func (f *FakeInput) Tap(ctx context.Context, x, y float64) error {
	f.Taps = append(f.Taps, struct{ X, Y float64 }{x, y})
	return nil
}

func (f *FakeInput) Swipe(ctx context.Context, fromX, fromY, toX, toY float64, durationMs int) error {
	f.Swipes = append(f.Swipes, struct{ FromX, FromY, ToX, ToY float64 }{fromX, fromY, toX, toY})
	return nil
}

func (f *FakeInput) Drag(ctx context.Context, fromX, fromY, toX, toY float64, durationMs int) error {
	return nil
}

func (f *FakeInput) LongPress(ctx context.Context, x, y float64, durationMs int) error { return nil }
func (f *FakeInput) DoubleTap(ctx context.Context, x, y float64) error                 { return nil }
func (f *FakeInput) Shake(ctx context.Context) error                                  { return nil }

func (f *FakeInput) TypeText(ctx context.Context, text string) (TypeResult, error) {
	return TypeResult{Success: true}, nil
}

func (f *FakeInput) PressKey(ctx context.Context, keyName string, modifiers []KeyModifier) (KeyResult, error) {
	f.KeyPress = append(f.KeyPress, keyName)
	return KeyResult{Success: true}, nil
}

func (f *FakeInput) LaunchApp(ctx context.Context, name string) error { return nil }
func (f *FakeInput) OpenURL(ctx context.Context, url string) error    { return nil }
