// Package narration synthesizes speech audio from script text via the
// hosted TTS inference service.
package narration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/ytautotest11/auto-youtube/ffmpeg"
	"github.com/ytautotest11/auto-youtube/types"
)

const defaultBaseURL = "https://api-inference.huggingface.co/models"

// Synthesizer turns plain text into a speech audio artifact with a
// known duration. Retries are the orchestrator's responsibility.
type Synthesizer struct {
	baseURL    string
	apiKey     string
	model      string
	voices     map[string]string // language -> voice tag
	httpClient *http.Client
}

// New creates a Synthesizer for the configured TTS model.
func New(apiKey, model string, voices map[string]string) *Synthesizer {
	return &Synthesizer{
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		model:      model,
		voices:     voices,
		httpClient: &http.Client{Timeout: 2 * time.Minute},
	}
}

// SetBaseURL overrides the inference endpoint. Used by tests.
func (s *Synthesizer) SetBaseURL(u string) { s.baseURL = strings.TrimRight(u, "/") }

// Synthesize generates speech for text in the given language, writes
// the audio artifact to outPath and probes its real duration.
func (s *Synthesizer) Synthesize(ctx context.Context, text, language, outPath string) (types.NarrationTrack, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return types.NarrationTrack{}, fmt.Errorf("narration text: %w", types.ErrEmptyInput)
	}

	log.Printf("[narration] synthesizing %d chars (%s) -> %s", len(text), language, outPath)

	audio, err := s.request(ctx, text, language)
	if err != nil {
		return types.NarrationTrack{}, err
	}
	if err := os.WriteFile(outPath, audio, 0644); err != nil {
		return types.NarrationTrack{}, fmt.Errorf("write narration: %w", err)
	}

	dur, err := ffmpeg.ProbeDuration(ctx, outPath)
	if err != nil {
		return types.NarrationTrack{}, fmt.Errorf("probe narration duration: %w", err)
	}
	if dur <= 0 {
		return types.NarrationTrack{}, fmt.Errorf("narration has zero duration: %w", types.ErrEncoding)
	}

	log.Printf("[narration] %s: %.2fs", language, dur)
	return types.NarrationTrack{Path: outPath, Duration: dur}, nil
}

func (s *Synthesizer) request(ctx context.Context, text, language string) ([]byte, error) {
	payload := map[string]string{"inputs": text}
	if voice, ok := s.voices[language]; ok {
		payload["voice"] = voice
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/%s", s.baseURL, s.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/wav")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tts request: %v: %w", err, types.ErrServiceUnavailable)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read tts response: %v: %w", err, types.ErrServiceUnavailable)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tts status %d: %s: %w",
			resp.StatusCode, truncate(string(data), 200), types.ErrServiceUnavailable)
	}
	// A tiny body is an error page, not audio.
	if len(data) < 100 {
		return nil, fmt.Errorf("tts response too small (%d bytes): %w", len(data), types.ErrServiceUnavailable)
	}
	return data, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
