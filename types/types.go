package types

// Script is the narration text for one language variant, split into
// sentences. It is produced once per run and never mutated afterwards.
type Script struct {
	Topic     string   `json:"topic"`
	Language  string   `json:"language"`
	Title     string   `json:"title"`
	Sentences []string `json:"sentences"`
}

// NarrationTrack is a synthesized speech artifact. Its duration is the
// timing source of truth for everything derived downstream.
type NarrationTrack struct {
	Path     string  `json:"path"`
	Duration float64 `json:"duration_sec"`
}

// VisualFrame is one still image shown for Duration seconds.
type VisualFrame struct {
	ImagePath string  `json:"image_path"`
	Duration  float64 `json:"duration_sec"`
}

// Storyboard is the ordered visual track of one video, one frame per
// script sentence.
type Storyboard []VisualFrame

// TotalDuration returns the sum of all frame durations.
func (s Storyboard) TotalDuration() float64 {
	var total float64
	for _, f := range s {
		total += f.Duration
	}
	return total
}

// MixedAudioTrack is narration overlaid on looped background music.
// Its duration is always >= the narration duration and is the target
// the storyboard gets reconciled against.
type MixedAudioTrack struct {
	Path     string  `json:"path"`
	Duration float64 `json:"duration_sec"`
}

// FormatDecision is the output geometry chosen for one video.
type FormatDecision struct {
	ShortForm bool `json:"short_form"`
	Width     int  `json:"width"`
	Height    int  `json:"height"`
}

// VideoArtifact is the final muxed video file.
type VideoArtifact struct {
	Path     string         `json:"path"`
	Duration float64        `json:"duration_sec"`
	Format   FormatDecision `json:"format"`
}

// VideoMetadata holds the publishable text metadata for one video.
type VideoMetadata struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// PublishBundle is the complete set of artifacts handed to the publish
// boundary. The core's responsibility ends at its construction.
type PublishBundle struct {
	Video         VideoArtifact `json:"video"`
	ThumbnailPath string        `json:"thumbnail_path"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	Tags          []string      `json:"tags"`
	ChannelID     string        `json:"channel_id"`
	ShortForm     bool          `json:"short_form"`
}

// BranchState records one language branch of a run for the state file.
type BranchState struct {
	Language    string          `json:"language"`
	Script      *Script         `json:"script,omitempty"`
	Narration   *NarrationTrack `json:"narration,omitempty"`
	Video       *VideoArtifact  `json:"video,omitempty"`
	Thumbnail   string          `json:"thumbnail,omitempty"`
	Metadata    *VideoMetadata  `json:"metadata,omitempty"`
	YouTubeID   string          `json:"youtube_id,omitempty"`
	YouTubeURL  string          `json:"youtube_url,omitempty"`
	FailedStage string          `json:"failed_stage,omitempty"`
	Error       string          `json:"error,omitempty"`
}

// PipelineState tracks the full state of one pipeline run.
type PipelineState struct {
	RunID       string         `json:"run_id"`
	Topic       string         `json:"topic"`
	StartedAt   string         `json:"started_at"`
	CompletedAt string         `json:"completed_at"`
	Branches    []*BranchState `json:"branches"`
	Error       string         `json:"error,omitempty"`
}
