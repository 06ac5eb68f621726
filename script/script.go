// Package script turns a topic prompt into the narration text for one
// language variant.
package script

import (
	"context"
	"fmt"
	"log"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ytautotest11/auto-youtube/config"
	"github.com/ytautotest11/auto-youtube/textgen"
	"github.com/ytautotest11/auto-youtube/types"
)

// Writer generates scripts via the text-generation service.
type Writer struct {
	cfg *config.ScriptConfig
	gen *textgen.Client
}

// New creates a script Writer.
func New(cfg *config.ScriptConfig, gen *textgen.Client) *Writer {
	return &Writer{cfg: cfg, gen: gen}
}

// Run writes one script for the given topic and language. The result is
// immutable for the rest of the run.
func (w *Writer) Run(ctx context.Context, topic, language string) (*types.Script, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, fmt.Errorf("topic: %w", types.ErrEmptyInput)
	}

	log.Printf("[script] generating %s script for topic %q", language, topic)

	prompt := w.buildPrompt(topic, language)
	text, err := w.gen.Generate(ctx, prompt, w.cfg.MaxTokens)
	if err != nil {
		return nil, fmt.Errorf("script generation: %w", err)
	}

	sentences := SplitSentences(text)
	if len(sentences) == 0 {
		return nil, fmt.Errorf("script came back blank: %w", types.ErrEmptyInput)
	}

	s := &types.Script{
		Topic:     topic,
		Language:  language,
		Title:     deriveTitle(sentences[0]),
		Sentences: sentences,
	}
	log.Printf("[script] %s: %d sentences, title %q", language, len(s.Sentences), s.Title)
	return s, nil
}

func (w *Writer) buildPrompt(topic, language string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Write a short (%d-%d words) motivational video script in %s about: %s. ",
		w.cfg.WordBudgetMin, w.cfg.WordBudgetMax, language, topic)
	sb.WriteString("The script should be punchy and simple, ")
	sb.WriteString("include a one-line hook at the start and a call-to-action at the end. ")
	sb.WriteString("Plain sentences only, no headings or stage directions.")
	return sb.String()
}

// SplitSentences splits generated text into trimmed sentences, one per
// visual frame. Terminators cover Latin and CJK/Devanagari punctuation
// since scripts come back in the target language.
func SplitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	flush := func() {
		s := strings.TrimSpace(current.String())
		current.Reset()
		if s != "" {
			sentences = append(sentences, s)
		}
	}

	for _, r := range text {
		switch r {
		case '\n':
			flush()
		case '.', '!', '?', '।', '。', '！', '？':
			current.WriteRune(r)
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()
	return sentences
}

// deriveTitle uses the first sentence as the working title, trimmed of
// trailing punctuation and capped at a reasonable length.
func deriveTitle(first string) string {
	title := strings.TrimRightFunc(first, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSpace(r)
	})
	const maxLen = 70
	if utf8.RuneCountInString(title) > maxLen {
		runes := []rune(title)
		title = strings.TrimSpace(string(runes[:maxLen-3])) + "..."
	}
	return title
}
