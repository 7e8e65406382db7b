package walkerr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/corvid-labs/skillwalk/pkg/walkerr"
)

func TestIsMatchesDirectKind(t *testing.T) {
	err := walkerr.New(walkerr.BudgetExhausted, "max screens reached")
	require.True(t, walkerr.Is(err, walkerr.BudgetExhausted))
	require.False(t, walkerr.Is(err, walkerr.Transient))
}

func TestIsUnwrapsThroughWrappingLayers(t *testing.T) {
	base := walkerr.Wrap(walkerr.Transient, errors.New("ocr timeout"), "describing screen")
	wrapped := fmt.Errorf("tick failed: %w", base)
	require.True(t, walkerr.Is(wrapped, walkerr.Transient))
}

func TestIsFalseForNonWalkerrChain(t *testing.T) {
	require.False(t, walkerr.Is(errors.New("plain error"), walkerr.Structural))
	require.False(t, walkerr.Is(nil, walkerr.Structural))
}

func TestWrapNilCauseBehavesLikeNew(t *testing.T) {
	err := walkerr.Wrap(walkerr.Configuration, nil, "unknown strategy")
	require.Nil(t, err.Unwrap())
	require.Equal(t, "configuration: unknown strategy", err.Error())
}

func TestErrorMessageIncludesCause(t *testing.T) {
	cause := errors.New("tap outside window")
	err := walkerr.Wrap(walkerr.OutOfBounds, cause, "rejecting tap")
	require.Contains(t, err.Error(), "out_of_bounds")
	require.Contains(t, err.Error(), "rejecting tap")
	require.Contains(t, err.Error(), "tap outside window")
}

func TestKindStringCoversAllTags(t *testing.T) {
	cases := map[walkerr.Kind]string{
		walkerr.Transient:         "transient",
		walkerr.BudgetExhausted:   "budget_exhausted",
		walkerr.OutOfBounds:       "out_of_bounds",
		walkerr.Structural:        "structural",
		walkerr.Configuration:     "configuration",
		walkerr.UnreachableTarget: "unreachable_target",
	}
	for kind, want := range cases {
		require.Equal(t, want, kind.String())
	}
}
