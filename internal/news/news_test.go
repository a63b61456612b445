package news

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCareerNews_MapsArticles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search", r.URL.Path)
		require.Equal(t, "test-key", r.URL.Query().Get("apikey"))
		require.Equal(t, "en", r.URL.Query().Get("lang"))
		require.NotEmpty(t, r.URL.Query().Get("q"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"totalArticles": 2,
			"articles": [
				{"title": "Hiring rebounds", "description": "Tech hiring up 12%.", "url": "https://example.com/a", "image": "https://example.com/a.jpg"},
				{"title": "Layoffs slow", "description": "", "url": "https://example.com/b", "image": ""}
			]
		}`)
	}))
	defer server.Close()

	articles, err := NewClient("test-key").WithBaseURL(server.URL).CareerNews(context.Background(), 5)
	require.NoError(t, err)

	require.Len(t, articles, 2)
	assert.Equal(t, "Hiring rebounds", articles[0].Title)
	assert.Equal(t, "https://example.com/a.jpg", articles[0].ImageURL)
	assert.Empty(t, articles[1].Description)
}

func TestSearch_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	_, err := NewClient("bad-key").WithBaseURL(server.URL).Search(context.Background(), "golang", 3)
	require.Error(t, err)

	var ne *Error
	assert.ErrorAs(t, err, &ne)
}

func TestSearch_MalformedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "not json at all")
	}))
	defer server.Close()

	_, err := NewClient("test-key").WithBaseURL(server.URL).Search(context.Background(), "golang", 3)
	require.Error(t, err)

	var ne *Error
	assert.ErrorAs(t, err, &ne)
}
