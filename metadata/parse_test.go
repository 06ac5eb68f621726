package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMarkerSplit(t *testing.T) {
	raw := "A short video about morning routines.\nWatch until the end.\nTags: motivation, morning, habits"

	desc, tags := Parse(raw)
	assert.Equal(t, "A short video about morning routines.\nWatch until the end.", desc)
	assert.Equal(t, []string{"motivation", "morning", "habits"}, tags)
}

func TestParseMarkerCaseInsensitive(t *testing.T) {
	desc, tags := Parse("Great video.\nTAGS: one, two")
	assert.Equal(t, "Great video.", desc)
	assert.Equal(t, []string{"one", "two"}, tags)
}

func TestParseMarkerWithContinuationLines(t *testing.T) {
	raw := "Description here.\nTags: alpha, beta\ngamma, delta"

	_, tags := Parse(raw)
	assert.Equal(t, []string{"alpha", "beta", "gamma", "delta"}, tags)
}

func TestParseLastLineHeuristic(t *testing.T) {
	raw := "An inspiring story about persistence.\nmotivation, success, mindset, growth"

	desc, tags := Parse(raw)
	assert.Equal(t, "An inspiring story about persistence.", desc)
	assert.Equal(t, []string{"motivation", "success", "mindset", "growth"}, tags)
}

func TestParseLastLineWithoutCommasIsProse(t *testing.T) {
	raw := "First line of the description.\nSecond line closes the thought."

	desc, tags := Parse(raw)
	assert.Equal(t, raw, desc)
	assert.Empty(t, tags)
}

func TestParseFallsBackToEmptyTags(t *testing.T) {
	desc, tags := Parse("Just one plain sentence with no tags anywhere.")
	assert.Equal(t, "Just one plain sentence with no tags anywhere.", desc)
	assert.Empty(t, tags)
}

func TestParseEmptyInput(t *testing.T) {
	desc, tags := Parse("   \n  ")
	assert.Empty(t, desc)
	assert.Empty(t, tags)
}

func TestParseTagCleanup(t *testing.T) {
	_, tags := Parse("Desc.\nTags: #shorts, \"quoted\", , shorts, SHORTS")
	// Hash and quote trimming, blank and case-insensitive duplicate removal.
	assert.Equal(t, []string{"shorts", "quoted"}, tags)
}
