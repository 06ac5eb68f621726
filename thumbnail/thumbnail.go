// Package thumbnail composes the one publishable thumbnail image for a
// run from the per-language titles. Pure rendering: no network.
package thumbnail

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/ytautotest11/auto-youtube/ffmpeg"
)

// Composer renders title text onto the template background.
type Composer struct {
	template string // "" falls back to a solid canvas
	fontFile string
	width    int
	height   int
}

// New creates a thumbnail Composer. template and fontFile may be empty.
func New(template, fontFile string, width, height int) *Composer {
	return &Composer{template: template, fontFile: fontFile, width: width, height: height}
}

// Compose renders the titles (one per language) stacked onto a single
// image at outPath.
func (c *Composer) Compose(ctx context.Context, titles []string, outPath string) error {
	text := ffmpeg.EscapeText(strings.Join(titles, "\n"))

	draw := fmt.Sprintf(
		"drawtext=text='%s':fontcolor=white:fontsize=%d:borderw=4:bordercolor=black:x=(w-text_w)/2:y=(h-text_h)/2",
		text, c.height/10,
	)
	if c.fontFile != "" {
		draw += ":fontfile=" + ffmpeg.EscapePath(c.fontFile)
	}

	var args []string
	if c.template != "" {
		scale := fmt.Sprintf("scale=%d:%d:force_original_aspect_ratio=increase,crop=%d:%d",
			c.width, c.height, c.width, c.height)
		args = []string{"-y", "-i", c.template, "-vf", scale + "," + draw, "-frames:v", "1", outPath}
	} else {
		args = []string{"-y",
			"-f", "lavfi",
			"-i", fmt.Sprintf("color=c=0x101018:s=%dx%d:d=1", c.width, c.height),
			"-vf", draw,
			"-frames:v", "1",
			outPath,
		}
	}

	if err := ffmpeg.Run(ctx, args...); err != nil {
		return fmt.Errorf("compose thumbnail: %w", err)
	}
	log.Printf("[thumbnail] composed %d title(s) -> %s", len(titles), outPath)
	return nil
}
