// Package assemble muxes the reconciled storyboard and the mixed audio
// track into the final video file.
package assemble

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ytautotest11/auto-youtube/ffmpeg"
	"github.com/ytautotest11/auto-youtube/types"
)

// Assembler renders storyboards into muxed video files.
type Assembler struct {
	fps int
}

// New creates an Assembler encoding at the given frame rate.
func New(fps int) *Assembler {
	return &Assembler{fps: fps}
}

// Assemble concatenates the storyboard frames at their reconciled
// durations, attaches the mixed audio and encodes under the chosen
// geometry. Malformed upstream input (empty storyboard, zero-length
// audio) and renderer rejections both surface as ErrEncoding; neither
// is retried.
func (a *Assembler) Assemble(ctx context.Context, storyboard types.Storyboard, mixed types.MixedAudioTrack, format types.FormatDecision, outPath string) (types.VideoArtifact, error) {
	if len(storyboard) == 0 {
		return types.VideoArtifact{}, fmt.Errorf("no frames to assemble: %w", types.ErrEncoding)
	}
	if mixed.Duration <= 0 {
		return types.VideoArtifact{}, fmt.Errorf("mixed audio has zero duration: %w", types.ErrEncoding)
	}
	for i, f := range storyboard {
		if f.Duration <= 0 {
			return types.VideoArtifact{}, fmt.Errorf("frame %d has duration %.3fs: %w", i, f.Duration, types.ErrEncoding)
		}
	}

	listPath := strings.TrimSuffix(outPath, filepath.Ext(outPath)) + "_frames.txt"
	if err := os.WriteFile(listPath, []byte(ConcatList(storyboard)), 0644); err != nil {
		return types.VideoArtifact{}, fmt.Errorf("write concat list: %w", err)
	}

	args := a.BuildArgs(listPath, mixed.Path, format, outPath)
	log.Printf("[assemble] encoding %d frame(s) + audio (%.2fs) at %dx%d", len(storyboard), mixed.Duration, format.Width, format.Height)
	if err := ffmpeg.Run(ctx, args...); err != nil {
		return types.VideoArtifact{}, fmt.Errorf("assemble video: %v: %w", err, types.ErrEncoding)
	}

	dur, err := ffmpeg.ProbeDuration(ctx, outPath)
	if err != nil {
		return types.VideoArtifact{}, fmt.Errorf("probe assembled video: %w", err)
	}

	log.Printf("[assemble] final video: %.2fs -> %s", dur, outPath)
	return types.VideoArtifact{Path: outPath, Duration: dur, Format: format}, nil
}

// ConcatList renders the concat-demuxer playlist for the storyboard.
// The final frame is listed twice: the demuxer ignores the duration
// directive on the last entry otherwise.
func ConcatList(storyboard types.Storyboard) string {
	var sb strings.Builder
	sb.WriteString("ffconcat version 1.0\n")
	for _, f := range storyboard {
		fmt.Fprintf(&sb, "file '%s'\n", f.ImagePath)
		fmt.Fprintf(&sb, "duration %.3f\n", f.Duration)
	}
	fmt.Fprintf(&sb, "file '%s'\n", storyboard[len(storyboard)-1].ImagePath)
	return sb.String()
}

// BuildArgs constructs the ffmpeg invocation for the final mux.
// Short-form output is proportionally resized then center-cropped to
// the vertical frame; long-form is resized and padded.
func (a *Assembler) BuildArgs(listPath, audioPath string, format types.FormatDecision, outPath string) []string {
	var geometry string
	if format.ShortForm {
		geometry = fmt.Sprintf("scale=%d:%d:force_original_aspect_ratio=increase,crop=%d:%d",
			format.Width, format.Height, format.Width, format.Height)
	} else {
		geometry = fmt.Sprintf("scale=%d:%d:force_original_aspect_ratio=decrease,pad=%d:%d:(ow-iw)/2:(oh-ih)/2",
			format.Width, format.Height, format.Width, format.Height)
	}
	vf := geometry + fmt.Sprintf(",setsar=1,fps=%d,format=yuv420p", a.fps)

	return []string{"-y",
		"-f", "concat",
		"-safe", "0",
		"-i", listPath,
		"-i", audioPath,
		"-vf", vf,
		"-c:v", "libx264",
		"-preset", "fast",
		"-crf", "22",
		"-c:a", "aac",
		"-b:a", "192k",
		"-shortest",
		"-movflags", "+faststart",
		outPath,
	}
}
