package metadata

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

func metaConfig() *config.MetadataConfig {
	return &config.MetadataConfig{
		TextModel:     "some/model",
		MaxTokens:     256,
		TitleMaxChars: 70,
		TagsMax:       3,
	}
}

func testScript() *types.Script {
	return &types.Script{
		Topic:     "morning routines",
		Language:  "en",
		Title:     "Win the morning",
		Sentences: []string{"Win the morning.", "Win the day."},
	}
}

func generatorFor(t *testing.T, handler http.HandlerFunc) *Generator {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	gen := textgen.NewClient("test-key", "some/model")
	gen.SetBaseURL(srv.URL)
	return New(metaConfig(), gen)
}

func TestRunParsesGeneratedMetadata(t *testing.T) {
	g := generatorFor(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"generated_text":"Start strong every day.\nTags: morning, routine, focus, extra"}]`))
	})

	meta := g.Run(context.Background(), testScript())
	require.NotNil(t, meta)

	assert.Equal(t, "Win the morning", meta.Title)
	assert.True(t, strings.HasPrefix(meta.Description, "Start strong every day."))
	// TagsMax caps the list.
	assert.Equal(t, []string{"morning", "routine", "focus"}, meta.Tags)
}

func TestFallbackTruncatesTitleOnRuneBoundary(t *testing.T) {
	g := New(metaConfig(), textgen.NewClient("k", "m"))

	scr := testScript()
	scr.Language = "hi"
	scr.Title = strings.TrimSpace(strings.Repeat("सपने बड़े देखो ", 10))

	meta := g.fallback(scr)
	require.NotNil(t, meta)
	assert.True(t, utf8.ValidString(meta.Title), "title %q is not valid UTF-8", meta.Title)
	assert.LessOrEqual(t, utf8.RuneCountInString(meta.Title), 70)
	assert.True(t, strings.HasSuffix(meta.Title, "..."))
}

func TestRunDegradesOnServiceFailure(t *testing.T) {
	g := generatorFor(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	})

	// Metadata is non-critical: a dead service still yields a usable
	// bundle derived from the script itself.
	meta := g.Run(context.Background(), testScript())
	require.NotNil(t, meta)

	assert.Equal(t, "Win the morning", meta.Title)
	assert.Contains(t, meta.Description, "Win the morning. Win the day.")
	assert.Empty(t, meta.Tags)
}
