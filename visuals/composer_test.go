package visuals

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytautotest11/auto-youtube/config"
	"github.com/ytautotest11/auto-youtube/types"
)

func TestWrapText(t *testing.T) {
	tests := []struct {
		name string
		text string
		cols int
		want []string
	}{
		{
			name: "fits on one line",
			text: "keep pushing forward",
			cols: 38,
			want: []string{"keep pushing forward"},
		},
		{
			name: "wraps greedily at budget",
			text: "every single day is a brand new chance to start over",
			cols: 20,
			want: []string{"every single day is", "a brand new chance", "to start over"},
		},
		{
			name: "oversized word gets its own line",
			text: "an extraordinarily-long-compound-word here",
			cols: 10,
			want: []string{"an", "extraordinarily-long-compound-word", "here"},
		},
		{
			name: "blank input",
			text: "   ",
			cols: 20,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapText(tt.text, tt.cols)
			assert.Equal(t, tt.want, got)
			for _, line := range got {
				// A line only exceeds the budget when a single word does.
				if len(line) > tt.cols {
					assert.NotContains(t, line, " ")
				}
			}
		})
	}
}

func TestComposeEmptySentences(t *testing.T) {
	cfg := config.VisualsConfig{WrapColsHorizontal: 38, WrapColsVertical: 22, FontSize: 48}
	c := NewComposer(&cfg, "")

	got, err := c.Compose(context.Background(), nil, types.FormatDecision{Width: 1280, Height: 720}, 4.0, t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestComposeRejectsInvalidDefaultDuration(t *testing.T) {
	cfg := config.VisualsConfig{WrapColsHorizontal: 38, WrapColsVertical: 22, FontSize: 48}
	c := NewComposer(&cfg, "")

	_, err := c.Compose(context.Background(), []string{"hello"}, types.FormatDecision{Width: 1280, Height: 720}, 0, t.TempDir())
	assert.ErrorIs(t, err, types.ErrInvalidDuration)
}
