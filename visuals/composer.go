// Package visuals produces the storyboard: one timed frame per script
// sentence, plus the duration reconciliation that locks the visual
// track to the mixed audio.
package visuals

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/ytautotest11/auto-youtube/config"
	"github.com/ytautotest11/auto-youtube/ffmpeg"
	"github.com/ytautotest11/auto-youtube/types"
)

// Composer renders wrapped sentence text onto fixed-size canvases,
// composited over the template background when one is configured.
type Composer struct {
	cfg      *config.VisualsConfig
	template string // background template image, "" for solid canvas
}

// NewComposer creates a Composer. template may be empty.
func NewComposer(cfg *config.VisualsConfig, template string) *Composer {
	return &Composer{cfg: cfg, template: template}
}

// Compose renders one frame per sentence into outDir. Every frame gets
// defaultFrameSeconds; final durations are set later by Reconcile. An
// empty sentence list yields an empty storyboard.
func (c *Composer) Compose(ctx context.Context, sentences []string, format types.FormatDecision, defaultFrameSeconds float64, outDir string) (types.Storyboard, error) {
	if defaultFrameSeconds <= 0 {
		return nil, fmt.Errorf("default frame duration %.2fs: %w", defaultFrameSeconds, types.ErrInvalidDuration)
	}

	cols := c.cfg.WrapColsHorizontal
	if format.ShortForm {
		cols = c.cfg.WrapColsVertical
	}

	storyboard := make(types.Storyboard, 0, len(sentences))
	for i, sentence := range sentences {
		outFile := filepath.Join(outDir, fmt.Sprintf("frame_%03d.png", i))
		if err := c.renderFrame(ctx, sentence, cols, format, outFile); err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		storyboard = append(storyboard, types.VisualFrame{
			ImagePath: outFile,
			Duration:  defaultFrameSeconds,
		})
	}

	log.Printf("[visuals] composed %d frame(s) at %dx%d", len(storyboard), format.Width, format.Height)
	return storyboard, nil
}

// renderFrame draws the wrapped sentence centered on the canvas.
func (c *Composer) renderFrame(ctx context.Context, sentence string, cols int, format types.FormatDecision, outFile string) error {
	lines := WrapText(sentence, cols)
	text := ffmpeg.EscapeText(strings.Join(lines, "\n"))

	draw := fmt.Sprintf(
		"drawtext=text='%s':fontcolor=white:fontsize=%d:box=1:boxcolor=black@0.5:boxborderw=18:x=(w-text_w)/2:y=(h-text_h)/2",
		text, c.cfg.FontSize,
	)
	if c.cfg.FontFile != "" {
		draw += ":fontfile=" + ffmpeg.EscapePath(c.cfg.FontFile)
	}

	var args []string
	if c.template != "" {
		scale := fmt.Sprintf("scale=%d:%d:force_original_aspect_ratio=increase,crop=%d:%d",
			format.Width, format.Height, format.Width, format.Height)
		args = []string{"-y",
			"-i", c.template,
			"-vf", scale + "," + draw,
			"-frames:v", "1",
			outFile,
		}
	} else {
		args = []string{"-y",
			"-f", "lavfi",
			"-i", fmt.Sprintf("color=c=0x101018:s=%dx%d:d=1", format.Width, format.Height),
			"-vf", draw,
			"-frames:v", "1",
			outFile,
		}
	}

	if err := ffmpeg.Run(ctx, args...); err != nil {
		return fmt.Errorf("render text frame: %w", err)
	}
	return nil
}

// WrapText greedily wraps words to a character budget per line. Words
// longer than the budget get their own line rather than being split.
func WrapText(text string, cols int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		if len(current)+1+len(word) <= cols {
			current += " " + word
		} else {
			lines = append(lines, current)
			current = word
		}
	}
	return append(lines, current)
}
