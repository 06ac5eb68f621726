// Package format decides the output geometry for one video: vertical
// short-form or horizontal long-form.
package format

import (
	"fmt"

	"github.com/ytautotest11/auto-youtube/types"
)

// Selector derives a FormatDecision from the mixed audio duration and
// the caller's vertical preference. Pure; no side effects.
type Selector struct {
	CeilingSeconds float64 // short-form duration ceiling
	ShortWidth     int
	ShortHeight    int
	LongWidth      int
	LongHeight     int
}

// Select classifies the target output. A video is short-form when its
// duration fits under the ceiling OR the caller explicitly asked for
// vertical framing. Must run before the visual composer, since the
// wrap budget depends on the chosen geometry.
func (s Selector) Select(durationSeconds float64, verticalPreference bool) (types.FormatDecision, error) {
	if durationSeconds < 0 {
		return types.FormatDecision{}, fmt.Errorf("duration %.2fs: %w", durationSeconds, types.ErrInvalidDuration)
	}
	if durationSeconds <= s.CeilingSeconds || verticalPreference {
		return types.FormatDecision{ShortForm: true, Width: s.ShortWidth, Height: s.ShortHeight}, nil
	}
	return types.FormatDecision{ShortForm: false, Width: s.LongWidth, Height: s.LongHeight}, nil
}
