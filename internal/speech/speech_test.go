package speech

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthesize(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/text:synthesize", r.URL.Path)
		require.Equal(t, "test-key", r.URL.Query().Get("key"))

		var request struct {
			Input struct {
				Text string `json:"text"`
			} `json:"input"`
			Voice struct {
				LanguageCode string `json:"languageCode"`
			} `json:"voice"`
			AudioConfig struct {
				AudioEncoding string `json:"audioEncoding"`
			} `json:"audioConfig"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&request))
		assert.Equal(t, "Tell me about yourself.", request.Input.Text)
		assert.Equal(t, "en-IN", request.Voice.LanguageCode)
		assert.Equal(t, "MP3", request.AudioConfig.AudioEncoding)

		fmt.Fprint(w, `{"audioContent": "bXAzLWJ5dGVz"}`)
	}))
	defer server.Close()

	audio, err := NewClient("test-key").WithBaseURL(server.URL).Synthesize(context.Background(), "Tell me about yourself.")
	require.NoError(t, err)
	assert.Equal(t, "bXAzLWJ5dGVz", audio)
}

func TestSynthesize_EmptyTextRejected(t *testing.T) {
	client := NewClient("test-key")

	_, err := client.Synthesize(context.Background(), "   ")
	require.Error(t, err)

	var se *Error
	assert.ErrorAs(t, err, &se)
}

func TestSynthesize_UpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := NewClient("test-key").WithBaseURL(server.URL).Synthesize(context.Background(), "hello")
	require.Error(t, err)
}

func TestSynthesize_EmptyAudioContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"audioContent": ""}`)
	}))
	defer server.Close()

	_, err := NewClient("test-key").WithBaseURL(server.URL).Synthesize(context.Background(), "hello")
	require.Error(t, err)
}
