package visuals

import (
	"fmt"
	"log"
	"math"

	"github.com/ytautotest11/auto-youtube/types"
)

// DefaultTolerance is how close the storyboard total must be to the
// target before rescaling is skipped as imperceptible churn.
const DefaultTolerance = 0.5

// Reconcile proportionally rescales frame durations so the storyboard
// total matches targetSeconds. It returns a new storyboard and never
// mutates its input: the same storyboard may be shared across language
// branches. Frame order and count are preserved.
func Reconcile(storyboard types.Storyboard, targetSeconds, tolerance float64) (types.Storyboard, error) {
	if len(storyboard) == 0 {
		return storyboard, fmt.Errorf("cannot reconcile: %w", types.ErrEmptyStoryboard)
	}
	if targetSeconds <= 0 {
		return nil, fmt.Errorf("target %.2fs: %w", targetSeconds, types.ErrInvalidDuration)
	}
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}

	out := make(types.Storyboard, len(storyboard))
	copy(out, storyboard)

	total := storyboard.TotalDuration()
	if total <= 0 {
		return nil, fmt.Errorf("storyboard total %.2fs: %w", total, types.ErrInvalidDuration)
	}
	if math.Abs(total-targetSeconds) <= tolerance {
		log.Printf("[visuals] storyboard total %.2fs already within %.1fs of target %.2fs — skipping rescale",
			total, tolerance, targetSeconds)
		return out, nil
	}

	scale := targetSeconds / total
	for i := range out {
		out[i].Duration *= scale
	}
	log.Printf("[visuals] rescaled %d frame(s) by %.3f (%.2fs -> %.2fs)",
		len(out), scale, total, targetSeconds)
	return out, nil
}
