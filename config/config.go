package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Script    ScriptConfig    `yaml:"script"`
	Narration NarrationConfig `yaml:"narration"`
	Visuals   VisualsConfig   `yaml:"visuals"`
	Audio     AudioConfig     `yaml:"audio"`
	Format    FormatConfig    `yaml:"format"`
	Metadata  MetadataConfig  `yaml:"metadata"`
	Upload    UploadConfig    `yaml:"upload"`
	Paths     PathsConfig     `yaml:"paths"`
}

type ScriptConfig struct {
	TextModel     string   `yaml:"text_model"`
	MaxTokens     int      `yaml:"max_tokens"`
	WordBudgetMin int      `yaml:"word_budget_min"`
	WordBudgetMax int      `yaml:"word_budget_max"`
	Languages     []string `yaml:"languages"`
}

type NarrationConfig struct {
	TTSModel string            `yaml:"tts_model"`
	Voices   map[string]string `yaml:"voices"` // language -> voice tag
}

type VisualsConfig struct {
	FPS                  int     `yaml:"fps"`
	DefaultFrameSeconds  float64 `yaml:"default_frame_seconds"`
	DurationToleranceSec float64 `yaml:"duration_tolerance_seconds"`
	FontFile             string  `yaml:"font_file"`
	FontSize             int     `yaml:"font_size"`
	WrapColsHorizontal   int     `yaml:"wrap_cols_horizontal"`
	WrapColsVertical     int     `yaml:"wrap_cols_vertical"`
}

type AudioConfig struct {
	MusicVolume        float64 `yaml:"music_volume"` // attenuation relative to narration
	MusicFadeInSeconds float64 `yaml:"music_fade_in_seconds"`
	MusicTailSeconds   float64 `yaml:"music_tail_seconds"`
	SampleRate         int     `yaml:"sample_rate"`
}

type FormatConfig struct {
	ShortFormCeilingSeconds float64 `yaml:"short_form_ceiling_seconds"`
	VerticalPreference      bool    `yaml:"vertical_preference"`
	ShortWidth              int     `yaml:"short_width"`
	ShortHeight             int     `yaml:"short_height"`
	LongWidth               int     `yaml:"long_width"`
	LongHeight              int     `yaml:"long_height"`
}

type MetadataConfig struct {
	TextModel     string `yaml:"text_model"`
	MaxTokens     int    `yaml:"max_tokens"`
	TitleMaxChars int    `yaml:"title_max_chars"`
	TagsMax       int    `yaml:"tags_max"`
}

type UploadConfig struct {
	Visibility        string            `yaml:"visibility"`
	CategoryID        string            `yaml:"category_id"`
	NotifySubscribers bool              `yaml:"notify_subscribers"`
	MadeForKids       bool              `yaml:"made_for_kids"`
	Channels          map[string]string `yaml:"channels"` // language -> channel ID
}

type PathsConfig struct {
	Templates string `yaml:"templates"` // background template images
	Music     string `yaml:"music"`     // background music tracks
	Output    string `yaml:"output"`
	Logs      string `yaml:"logs"`
}

// Load reads config.yaml and returns a Config struct.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// defaults returns a Config pre-filled with the recognized pipeline
// options so a minimal config.yaml still produces a runnable setup.
func defaults() *Config {
	return &Config{
		Script: ScriptConfig{
			TextModel:     "google/flan-t5-large",
			MaxTokens:     200,
			WordBudgetMin: 40,
			WordBudgetMax: 80,
			Languages:     []string{"en"},
		},
		Narration: NarrationConfig{
			TTSModel: "espnet/kan-bayashi_ljspeech_vits",
			Voices:   map[string]string{"en": "en-US"},
		},
		Visuals: VisualsConfig{
			FPS:                  24,
			DefaultFrameSeconds:  4.0,
			DurationToleranceSec: 0.5,
			FontSize:             48,
			WrapColsHorizontal:   38,
			WrapColsVertical:     22,
		},
		Audio: AudioConfig{
			MusicVolume:        0.25,
			MusicFadeInSeconds: 0.5,
			MusicTailSeconds:   2.0,
			SampleRate:         44100,
		},
		Format: FormatConfig{
			ShortFormCeilingSeconds: 60,
			ShortWidth:              720,
			ShortHeight:             1280,
			LongWidth:               1280,
			LongHeight:              720,
		},
		Metadata: MetadataConfig{
			TextModel:     "google/flan-t5-large",
			MaxTokens:     256,
			TitleMaxChars: 70,
			TagsMax:       30,
		},
		Upload: UploadConfig{
			Visibility: "public",
			CategoryID: "22",
		},
		Paths: PathsConfig{
			Templates: "assets/templates",
			Music:     "assets/music",
			Output:    "outputs",
			Logs:      "logs",
		},
	}
}

func (c *Config) validate() error {
	if len(c.Script.Languages) == 0 {
		return fmt.Errorf("script.languages must name at least one language")
	}
	if c.Visuals.DefaultFrameSeconds <= 0 {
		return fmt.Errorf("visuals.default_frame_seconds must be positive")
	}
	if c.Audio.MusicVolume <= 0 || c.Audio.MusicVolume > 1 {
		return fmt.Errorf("audio.music_volume must be in (0, 1]")
	}
	if c.Format.ShortFormCeilingSeconds <= 0 {
		return fmt.Errorf("format.short_form_ceiling_seconds must be positive")
	}
	return nil
}
