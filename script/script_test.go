package script

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytautotest11/auto-youtube/config"
	"github.com/ytautotest11/auto-youtube/textgen"
	"github.com/ytautotest11/auto-youtube/types"
)

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "latin terminators",
			text: "Start now. Why wait? Go!",
			want: []string{"Start now.", "Why wait?", "Go!"},
		},
		{
			name: "newlines split too",
			text: "First line\nSecond line.",
			want: []string{"First line", "Second line."},
		},
		{
			name: "devanagari danda",
			text: "आज ही शुरू करो। कल का इंतज़ार मत करो।",
			want: []string{"आज ही शुरू करो।", "कल का इंतज़ार मत करो।"},
		},
		{
			name: "blank input",
			text: "  \n ",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitSentences(tt.text))
		})
	}
}

func TestDeriveTitle(t *testing.T) {
	tests := []struct {
		name  string
		first string
		want  string
	}{
		{
			name:  "short sentence kept",
			first: "Dream big today.",
			want:  "Dream big today",
		},
		{
			name:  "long sentence truncated with ellipsis",
			first: strings.Repeat("keep going ", 10),
			want:  "keep going keep going keep going keep going keep going keep going k...",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, deriveTitle(tt.first))
		})
	}
}

func TestDeriveTitleTruncatesOnRuneBoundary(t *testing.T) {
	got := deriveTitle(strings.Repeat("सपने बड़े देखो ", 10))
	assert.True(t, utf8.ValidString(got), "title %q is not valid UTF-8", got)
	assert.LessOrEqual(t, utf8.RuneCountInString(got), 70)
}

func scriptConfig() *config.ScriptConfig {
	return &config.ScriptConfig{
		TextModel:     "some/model",
		MaxTokens:     200,
		WordBudgetMin: 40,
		WordBudgetMax: 80,
		Languages:     []string{"en"},
	}
}

func TestWriterRun(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"generated_text":"Dream big today. Work for it. Subscribe for more!"}]`))
	}))
	defer srv.Close()

	gen := textgen.NewClient("test-key", "some/model")
	gen.SetBaseURL(srv.URL)
	w := New(scriptConfig(), gen)

	got, err := w.Run(context.Background(), "chasing dreams", "en")
	require.NoError(t, err)

	assert.Equal(t, "chasing dreams", got.Topic)
	assert.Equal(t, "en", got.Language)
	assert.Equal(t, []string{"Dream big today.", "Work for it.", "Subscribe for more!"}, got.Sentences)
	assert.Equal(t, "Dream big today", got.Title)
}

func TestWriterRunEmptyTopic(t *testing.T) {
	w := New(scriptConfig(), textgen.NewClient("k", "m"))
	_, err := w.Run(context.Background(), "  ", "en")
	assert.ErrorIs(t, err, types.ErrEmptyInput)
}

func TestWriterRunBlankResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"generated_text":"   "}]`))
	}))
	defer srv.Close()

	gen := textgen.NewClient("test-key", "some/model")
	gen.SetBaseURL(srv.URL)
	w := New(scriptConfig(), gen)

	_, err := w.Run(context.Background(), "topic", "en")
	assert.ErrorIs(t, err, types.ErrEmptyInput)
}
