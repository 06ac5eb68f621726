package visuals

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytautotest11/auto-youtube/types"
)

func board(durations ...float64) types.Storyboard {
	s := make(types.Storyboard, len(durations))
	for i, d := range durations {
		s[i] = types.VisualFrame{ImagePath: frameName(i), Duration: d}
	}
	return s
}

func frameName(i int) string {
	return string(rune('a'+i)) + ".png"
}

func TestReconcileScalesToTarget(t *testing.T) {
	// 3 x 4.0s against a 20.0s narration: scale = 20/12.
	got, err := Reconcile(board(4, 4, 4), 20.0, DefaultTolerance)
	require.NoError(t, err)
	require.Len(t, got, 3)

	for i, f := range got {
		assert.InDelta(t, 20.0/3, f.Duration, 0.001, "frame %d", i)
	}
	assert.InDelta(t, 20.0, got.TotalDuration(), 0.001)
}

func TestReconcileNoOpWithinTolerance(t *testing.T) {
	// 3 x 4.0s against 12.0s audio: already matching, nothing changes.
	got, err := Reconcile(board(4, 4, 4), 12.0, DefaultTolerance)
	require.NoError(t, err)
	for _, f := range got {
		assert.Equal(t, 4.0, f.Duration)
	}

	// 12.4s is still inside the 0.5s window.
	got, err = Reconcile(board(4, 4, 4), 12.4, DefaultTolerance)
	require.NoError(t, err)
	for _, f := range got {
		assert.Equal(t, 4.0, f.Duration)
	}
}

func TestReconcileIdempotent(t *testing.T) {
	once, err := Reconcile(board(2, 5, 3), 25.0, DefaultTolerance)
	require.NoError(t, err)

	twice, err := Reconcile(once, 25.0, DefaultTolerance)
	require.NoError(t, err)

	for i := range once {
		assert.LessOrEqual(t, math.Abs(once[i].Duration-twice[i].Duration), DefaultTolerance)
	}
}

func TestReconcilePreservesOrderAndInput(t *testing.T) {
	original := board(1, 2, 3)
	got, err := Reconcile(original, 30.0, DefaultTolerance)
	require.NoError(t, err)
	require.Len(t, got, 3)

	// Order preserved, proportions preserved.
	for i := range got {
		assert.Equal(t, frameName(i), got[i].ImagePath)
	}
	assert.InDelta(t, got[1].Duration/got[0].Duration, 2.0, 0.001)

	// The input storyboard must not have been mutated.
	assert.Equal(t, 1.0, original[0].Duration)
	assert.Equal(t, 2.0, original[1].Duration)
	assert.Equal(t, 3.0, original[2].Duration)
}

func TestReconcileEmptyStoryboard(t *testing.T) {
	_, err := Reconcile(types.Storyboard{}, 10.0, DefaultTolerance)
	assert.ErrorIs(t, err, types.ErrEmptyStoryboard)
}

func TestReconcileZeroTotalStoryboard(t *testing.T) {
	// All-zero durations would scale by target/0; must error, not NaN.
	_, err := Reconcile(board(0, 0), 10.0, DefaultTolerance)
	assert.ErrorIs(t, err, types.ErrInvalidDuration)
}

func TestReconcileInvalidTarget(t *testing.T) {
	_, err := Reconcile(board(4), 0, DefaultTolerance)
	assert.ErrorIs(t, err, types.ErrInvalidDuration)

	_, err = Reconcile(board(4), -3, DefaultTolerance)
	assert.ErrorIs(t, err, types.ErrInvalidDuration)
}
