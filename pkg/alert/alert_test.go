package alert_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/corvid-labs/skillwalk/pkg/alert"
)

// S5 from spec §8.
func TestLocationAlertDetectedAndDismissTargetIsDontAllow(t *testing.T) {
	els := []string{"would like to use your location", "Don't Allow", "Allow"}
	require.True(t, alert.IsAlert(els))
	target, ok := alert.DismissTarget(els)
	require.True(t, ok)
	require.Equal(t, "Don't Allow", target)
}

func TestTwoButtonsWithoutTitleStillDetected(t *testing.T) {
	els := []string{"Cancel", "OK"}
	require.True(t, alert.IsAlert(els))
}

func TestSingleButtonWithoutTitleIsNotAlert(t *testing.T) {
	els := []string{"Settings", "OK"}
	require.False(t, alert.IsAlert(els))
}

func TestTenOrMoreElementsIsNotAlert(t *testing.T) {
	els := make([]string, 10)
	for i := range els {
		els[i] = "Cancel"
	}
	require.False(t, alert.IsAlert(els))
}

func TestDismissPriorityIsDeterministic(t *testing.T) {
	els := []string{"Allow", "Not Now", "OK"}
	a, _ := alert.DismissTarget(els)
	b, _ := alert.DismissTarget(els)
	require.Equal(t, a, b)
	require.Equal(t, "Not Now", a)
}

func TestNoPriorityButtonPresentReturnsFalse(t *testing.T) {
	_, ok := alert.DismissTarget([]string{"Settings", "General"})
	require.False(t, ok)
}
