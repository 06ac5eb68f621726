// Package metadata generates the publishable title, description and
// tags for one video. Metadata is non-essential to a playable video,
// so generation degrades gracefully instead of failing the run.
package metadata

import (
	"context"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/ytautotest11/auto-youtube/config"
	"github.com/ytautotest11/auto-youtube/textgen"
	"github.com/ytautotest11/auto-youtube/types"
)

// Generator produces VideoMetadata via the text-generation service.
type Generator struct {
	cfg *config.MetadataConfig
	gen *textgen.Client
}

// New creates a metadata Generator.
func New(cfg *config.MetadataConfig, gen *textgen.Client) *Generator {
	return &Generator{cfg: cfg, gen: gen}
}

// Run generates metadata for the script. On any service failure it
// falls back to metadata derived from the script itself and logs a
// warning — it never aborts the run.
func (g *Generator) Run(ctx context.Context, script *types.Script) *types.VideoMetadata {
	meta := g.fallback(script)

	raw, err := g.gen.Generate(ctx, g.buildPrompt(script), g.cfg.MaxTokens)
	if err != nil {
		log.Printf("[metadata] generation failed: %v — using script-derived metadata", err)
		return meta
	}

	desc, tags := Parse(raw)
	if desc != "" {
		meta.Description = desc + "\n\nGenerated automatically."
	}
	if len(tags) > g.cfg.TagsMax {
		tags = tags[:g.cfg.TagsMax]
	}
	meta.Tags = tags

	log.Printf("[metadata] %s: %d tag(s), title %q", script.Language, len(meta.Tags), meta.Title)
	return meta
}

func (g *Generator) buildPrompt(script *types.Script) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Write a YouTube description (2-3 sentences, in %s) for a short video titled %q about %s.\n",
		script.Language, script.Title, script.Topic)
	sb.WriteString("The video narration is:\n")
	sb.WriteString(strings.Join(script.Sentences, " "))
	sb.WriteString("\n\nAfter the description, add one line starting with \"Tags:\" ")
	fmt.Fprintf(&sb, "followed by up to %d comma-separated search tags.", g.cfg.TagsMax)
	return sb.String()
}

// fallback derives minimal metadata from the script text alone.
func (g *Generator) fallback(script *types.Script) *types.VideoMetadata {
	title := script.Title
	if utf8.RuneCountInString(title) > g.cfg.TitleMaxChars {
		runes := []rune(title)
		title = strings.TrimSpace(string(runes[:g.cfg.TitleMaxChars-3])) + "..."
	}
	return &types.VideoMetadata{
		Title:       title,
		Description: strings.Join(script.Sentences, " ") + "\n\nGenerated automatically.",
		Tags:        nil,
	}
}
