package clock_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/corvid-labs/skillwalk/pkg/clock"
)

func TestFakeSleepAdvancesNowWithoutBlocking(t *testing.T) {
	start := time.Unix(0, 0)
	f := clock.NewFake(start)

	done := make(chan struct{})
	go func() {
		f.Sleep(context.Background(), 5*time.Second)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Fake.Sleep blocked instead of returning immediately")
	}

	require.Equal(t, start.Add(5*time.Second), f.Now())
	require.Equal(t, 1, f.SleepCount())
}

func TestFakeSleepZeroOrNegativeDoesNothing(t *testing.T) {
	start := time.Unix(0, 0)
	f := clock.NewFake(start)
	f.Sleep(context.Background(), 0)
	f.Sleep(context.Background(), -time.Second)
	require.Equal(t, start, f.Now())
	require.Equal(t, 0, f.SleepCount())
}

func TestFakeAdvanceDoesNotCountAsSleep(t *testing.T) {
	start := time.Unix(0, 0)
	f := clock.NewFake(start)
	f.Advance(10 * time.Second)
	require.Equal(t, start.Add(10*time.Second), f.Now())
	require.Equal(t, 0, f.SleepCount())
}

func TestFakeOnSleepCallbackFiresWithDuration(t *testing.T) {
	f := clock.NewFake(time.Unix(0, 0))
	var got time.Duration
	f.OnSleep(func(d time.Duration) { got = d })
	f.Sleep(context.Background(), 3*time.Second)
	require.Equal(t, 3*time.Second, got)
}

func TestSystemNowIsCurrent(t *testing.T) {
	before := time.Now()
	got := clock.System{}.Now()
	after := time.Now()
	require.False(t, got.Before(before))
	require.False(t, got.After(after))
}

func TestWithClockAndFromContextRoundtrip(t *testing.T) {
	f := clock.NewFake(time.Unix(42, 0))
	ctx := clock.WithClock(context.Background(), f)
	got, ok := clock.FromContext(ctx).(*clock.Fake)
	require.True(t, ok)
	require.Same(t, f, got)

	require.IsType(t, clock.System{}, clock.FromContext(context.Background()))
}
