package trends

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAdzuna serves a category list and per-category counts, optionally
// failing specific category tags.
func fakeAdzuna(t *testing.T, counts map[string]int64, failTags map[string]int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "test-id", r.URL.Query().Get("app_id"))
		require.Equal(t, "test-key", r.URL.Query().Get("app_key"))

		switch r.URL.Path {
		case "/jobs/in/categories":
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"results": [`)
			first := true
			for tag := range counts {
				if !first {
					fmt.Fprint(w, ",")
				}
				first = false
				fmt.Fprintf(w, `{"tag": %q, "label": %q}`, tag, "Label "+tag)
			}
			fmt.Fprint(w, `]}`)
		case "/jobs/in/search/1":
			tag := r.URL.Query().Get("category")
			require.Equal(t, "0", r.URL.Query().Get("results_per_page"))
			if status, ok := failTags[tag]; ok {
				w.WriteHeader(status)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprintf(w, `{"count": %d}`, counts[tag])
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func newTestClient(server *httptest.Server) *Client {
	return NewClient("test-id", "test-key", "in").WithBaseURL(server.URL)
}

func TestCategories(t *testing.T) {
	server := fakeAdzuna(t, map[string]int64{"it-jobs": 120, "sales-jobs": 45}, nil)
	defer server.Close()

	categories, err := newTestClient(server).Categories(context.Background())
	require.NoError(t, err)
	assert.Len(t, categories, 2)
}

func TestCategoryCount(t *testing.T) {
	server := fakeAdzuna(t, map[string]int64{"it-jobs": 120}, nil)
	defer server.Close()

	count, err := newTestClient(server).CategoryCount(context.Background(), Category{Tag: "it-jobs"})
	require.NoError(t, err)
	assert.Equal(t, int64(120), count)
}

func TestTopCategories_SortedDescending(t *testing.T) {
	server := fakeAdzuna(t, map[string]int64{
		"it-jobs":          120,
		"sales-jobs":       45,
		"engineering-jobs": 300,
		"hr-jobs":          12,
	}, nil)
	defer server.Close()

	top, err := newTestClient(server).TopCategories(context.Background(), 3)
	require.NoError(t, err)

	require.Len(t, top, 3)
	assert.Equal(t, "engineering-jobs", top[0].Category.Tag)
	assert.Equal(t, int64(300), top[0].Count)
	assert.Equal(t, "it-jobs", top[1].Category.Tag)
	assert.Equal(t, "sales-jobs", top[2].Category.Tag)
}

func TestTopCategories_FailedCategoryCountsAsZero(t *testing.T) {
	server := fakeAdzuna(t,
		map[string]int64{"it-jobs": 120, "sales-jobs": 45},
		map[string]int{"sales-jobs": http.StatusTooManyRequests},
	)
	defer server.Close()

	top, err := newTestClient(server).TopCategories(context.Background(), 0)
	require.NoError(t, err)

	require.Len(t, top, 2)
	assert.Equal(t, "it-jobs", top[0].Category.Tag)
	assert.Equal(t, int64(0), top[1].Count)
}

func TestTopCategories_CategoryListFailureFailsOperation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := newTestClient(server).TopCategories(context.Background(), 5)
	require.Error(t, err)

	var te *Error
	assert.ErrorAs(t, err, &te)
}

func TestGetJSON_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html>definitely not json</html>")
	}))
	defer server.Close()

	_, err := newTestClient(server).Categories(context.Background())
	require.Error(t, err)

	var te *Error
	assert.ErrorAs(t, err, &te)
}
