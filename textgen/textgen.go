// Package textgen is the client for the hosted text-generation
// inference service. Every generative text in the pipeline (scripts,
// metadata) goes through Generate.
package textgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/ytautotest11/auto-youtube/types"
)

const defaultBaseURL = "https://api-inference.huggingface.co/models"

// Client calls the inference API for one configured text model.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a text-generation client for the given model.
func NewClient(apiKey, model string) *Client {
	return &Client{
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: 2 * time.Minute},
		// The free inference tier throttles aggressively; pace our
		// own calls instead of burning quota on 429s.
		limiter: rate.NewLimiter(rate.Every(2*time.Second), 1),
	}
}

// SetBaseURL overrides the inference endpoint. Used by tests.
func (c *Client) SetBaseURL(u string) { c.baseURL = strings.TrimRight(u, "/") }

type request struct {
	Inputs     string         `json:"inputs"`
	Parameters map[string]any `json:"parameters,omitempty"`
}

// Generate sends prompt to the model and returns the generated text.
// Any transport error, non-success status, or unusable payload is
// reported as types.ErrServiceUnavailable.
func (c *Client) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("prompt: %w", types.ErrEmptyInput)
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	body, err := json.Marshal(request{
		Inputs:     prompt,
		Parameters: map[string]any{"max_new_tokens": maxTokens},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/%s", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("text generation request: %v: %w", err, types.ErrServiceUnavailable)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read text generation response: %v: %w", err, types.ErrServiceUnavailable)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("text generation status %d: %s: %w",
			resp.StatusCode, truncate(string(payload), 200), types.ErrServiceUnavailable)
	}

	text, err := parsePayload(payload)
	if err != nil {
		return "", fmt.Errorf("%v: %w", err, types.ErrServiceUnavailable)
	}
	return text, nil
}

// parsePayload extracts generated text from the response. The shape
// varies by model: a list of {"generated_text": ...} objects, a single
// object, a bare JSON string, or plain text.
func parsePayload(payload []byte) (string, error) {
	type generated struct {
		GeneratedText string `json:"generated_text"`
		Text          string `json:"text"`
		Error         string `json:"error"`
	}

	var list []generated
	if err := json.Unmarshal(payload, &list); err == nil {
		var sb strings.Builder
		for _, item := range list {
			if item.GeneratedText != "" {
				sb.WriteString(item.GeneratedText)
			} else {
				sb.WriteString(item.Text)
			}
		}
		if sb.Len() > 0 {
			return sb.String(), nil
		}
	}

	var single generated
	if err := json.Unmarshal(payload, &single); err == nil {
		if single.Error != "" {
			return "", fmt.Errorf("inference error: %s", single.Error)
		}
		if single.GeneratedText != "" {
			return single.GeneratedText, nil
		}
		if single.Text != "" {
			return single.Text, nil
		}
	}

	var plain string
	if err := json.Unmarshal(payload, &plain); err == nil && plain != "" {
		return plain, nil
	}

	// Not JSON at all: treat the raw body as the generated text.
	if raw := strings.TrimSpace(string(payload)); raw != "" {
		return raw, nil
	}
	return "", fmt.Errorf("empty text generation payload")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
