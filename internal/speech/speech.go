// Package speech converts interviewer questions to audio through a
// text-to-speech REST API.
package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the production text-to-speech endpoint root.
const DefaultBaseURL = "https://texttospeech.googleapis.com/v1"

// DefaultTimeout is the per-request HTTP timeout.
const DefaultTimeout = 15 * time.Second

// Fixed voice used for every interviewer utterance.
const (
	voiceLanguage = "en-IN"
	voiceName     = "en-IN-Wavenet-A"
	voiceGender   = "FEMALE"
	audioEncoding = "MP3"
)

// Error represents a text-to-speech failure.
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("speech error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("speech error: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Synthesizer converts text to base64-encoded audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) (string, error)
}

// Client implements Synthesizer over a Cloud-TTS-compatible REST API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a speech client.
func NewClient(apiKey string) *Client {
	return &Client{
		baseURL:    DefaultBaseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// WithBaseURL overrides the endpoint root, used by tests.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

// Synthesize converts text to base64-encoded MP3 audio using the fixed
// interviewer voice.
func (c *Client) Synthesize(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", &Error{Message: "text is required"}
	}

	request := map[string]any{
		"input": map[string]string{"text": text},
		"voice": map[string]string{
			"languageCode": voiceLanguage,
			"name":         voiceName,
			"ssmlGender":   voiceGender,
		},
		"audioConfig": map[string]string{"audioEncoding": audioEncoding},
	}
	payload, err := json.Marshal(request)
	if err != nil {
		return "", &Error{Message: "failed to encode request", Cause: err}
	}

	endpoint := fmt.Sprintf("%s/text:synthesize?key=%s", c.baseURL, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", &Error{Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &Error{Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{Message: "failed to read response body", Cause: err}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &Error{Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	var response struct {
		AudioContent string `json:"audioContent"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return "", &Error{Message: "failed to decode response", Cause: err}
	}
	if response.AudioContent == "" {
		return "", &Error{Message: "empty audio content"}
	}
	return response.AudioContent, nil
}
