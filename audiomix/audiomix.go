// Package audiomix combines the narration track with looped background
// music into the single audio track the video carries.
//
// Ducking is approximated by a constant attenuation on the music for
// the whole track rather than envelope detection; that is a deliberate
// simplification, not a placeholder.
package audiomix

import (
	"context"
	"fmt"
	"log"

	"github.com/ytautotest11/auto-youtube/config"
	"github.com/ytautotest11/auto-youtube/ffmpeg"
	"github.com/ytautotest11/auto-youtube/types"
)

// Mixer overlays narration on faded, attenuated, looped music.
type Mixer struct {
	cfg *config.AudioConfig
}

// New creates a Mixer.
func New(cfg *config.AudioConfig) *Mixer {
	return &Mixer{cfg: cfg}
}

// Mix produces the mixed audio track at outPath. The music is looped
// out to narration duration plus a fixed tail, so the result is always
// at least as long as the narration. A missing music artifact is fatal
// for the run: it is a configuration gap, not a transient fault.
func (m *Mixer) Mix(ctx context.Context, narration types.NarrationTrack, musicPath, outPath string) (types.MixedAudioTrack, error) {
	if musicPath == "" {
		return types.MixedAudioTrack{}, fmt.Errorf("background music: %w", types.ErrMissingAsset)
	}
	if narration.Duration <= 0 {
		return types.MixedAudioTrack{}, fmt.Errorf("narration duration %.2fs: %w", narration.Duration, types.ErrInvalidDuration)
	}

	args := BuildMixArgs(narration, musicPath, outPath, m.cfg)
	log.Printf("[audiomix] mixing narration (%.2fs) with %s", narration.Duration, musicPath)
	if err := ffmpeg.Run(ctx, args...); err != nil {
		return types.MixedAudioTrack{}, fmt.Errorf("mix audio: %w", err)
	}

	dur, err := ffmpeg.ProbeDuration(ctx, outPath)
	if err != nil {
		return types.MixedAudioTrack{}, fmt.Errorf("probe mixed audio: %w", err)
	}
	log.Printf("[audiomix] mixed track: %.2fs -> %s", dur, outPath)
	return types.MixedAudioTrack{Path: outPath, Duration: dur}, nil
}

// BuildMixArgs constructs the ffmpeg invocation for one mix. The music
// input loops indefinitely and is cut at narration + tail, faded in and
// attenuated; the narration rides on top unattenuated. amix with
// duration=longest keeps the full extended music bed, so the output
// duration is max(narration, narration+tail).
func BuildMixArgs(narration types.NarrationTrack, musicPath, outPath string, cfg *config.AudioConfig) []string {
	musicLen := narration.Duration + cfg.MusicTailSeconds

	filter := fmt.Sprintf(
		"[1:a]atrim=0:%.3f,afade=t=in:st=0:d=%.2f,volume=%.2f,"+
			"aresample=async=1:first_pts=0,aformat=sample_rates=%d:channel_layouts=stereo[music];"+
			"[0:a]aresample=async=1:first_pts=0,aformat=sample_rates=%d:channel_layouts=stereo[voice];"+
			"[voice][music]amix=inputs=2:duration=longest:dropout_transition=0:normalize=0[aout]",
		musicLen, cfg.MusicFadeInSeconds, cfg.MusicVolume,
		cfg.SampleRate, cfg.SampleRate,
	)

	return []string{"-y",
		"-i", narration.Path,
		"-stream_loop", "-1",
		"-i", musicPath,
		"-filter_complex", filter,
		"-map", "[aout]",
		"-t", fmt.Sprintf("%.3f", musicLen),
		"-c:a", "libmp3lame",
		"-q:a", "2",
		outPath,
	}
}
