package handlers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRingProgress(t *testing.T) {
	require.Equal(t, 50, ringProgress(5000, 10000))
	require.Equal(t, 33, ringProgress(10, 30))
	require.Equal(t, 0, ringProgress(0, 10000))
}

func TestRingProgressCapsAt100(t *testing.T) {
	require.Equal(t, 100, ringProgress(12540, 10000))
	require.Equal(t, 100, ringProgress(10000, 10000))
}

func TestRingProgressZeroGoal(t *testing.T) {
	require.Equal(t, 0, ringProgress(5000, 0))
	require.Equal(t, 0, ringProgress(5000, -1))
}

func TestDefaultAvatarURL(t *testing.T) {
	url := defaultAvatarURL("Jane Doe")
	require.Contains(t, url, "ui-avatars.com")
	require.Contains(t, url, "name=Jane+Doe")
}
