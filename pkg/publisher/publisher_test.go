package publisher

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trendscribe/pkg/classify"
	"trendscribe/pkg/domain"
)

func TestClient_Publish(t *testing.T) {
	var postedPayload map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "bot", user)
		assert.Equal(t, "secret", pass)

		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/wp-json/wp/v2/categories":
			assert.Equal(t, "Web Development", r.URL.Query().Get("search"))
			json.NewEncoder(w).Encode([]map[string]any{
				{"id": 7, "name": "Web Development", "slug": "web-development"},
			})
		case r.Method == http.MethodPost && r.URL.Path == "/wp-json/wp/v2/posts":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&postedPayload))
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(map[string]any{"id": 42, "link": "https://blog/p/42", "status": "draft"})
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	classifier := classify.New([]string{"Web Development", "SEO"})
	client := New(Config{BaseURL: server.URL, Username: "bot", Password: "secret"}, classifier)

	content := domain.NewAIContent("Async Rendering Explained", "body md", "meta desc",
		[]string{"async rendering", "react"}, "web-development")
	post, err := client.Publish(context.Background(), "async rendering", content, "<p>rendered</p>")
	require.NoError(t, err)

	assert.Equal(t, int64(42), post.ID)
	assert.Equal(t, "draft", post.Status)

	assert.Equal(t, "Async Rendering Explained", postedPayload["title"])
	assert.Equal(t, "<p>rendered</p>", postedPayload["content"])
	assert.Equal(t, "draft", postedPayload["status"])
	assert.Equal(t, []any{float64(7)}, postedPayload["categories"])

	meta, ok := postedPayload["meta"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, meta["autoblog_generated"])
	assert.Equal(t, true, meta["autoblog_ai"])
	assert.Equal(t, "async rendering", meta["autoblog_topic"])
	assert.Equal(t, "async rendering", meta["rank_math_focus_keyword"])
	assert.Equal(t, "meta desc", meta["rank_math_description"])
}

func TestClient_Publish_CreatesMissingCategory(t *testing.T) {
	var createdName string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/wp-json/wp/v2/categories":
			json.NewEncoder(w).Encode([]map[string]any{}) // no match
		case r.Method == http.MethodPost && r.URL.Path == "/wp-json/wp/v2/categories":
			var req map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			createdName = req["name"]
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(map[string]any{"id": 9, "name": req["name"], "slug": "machine-learning"})
		case r.Method == http.MethodPost && r.URL.Path == "/wp-json/wp/v2/posts":
			var payload map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.Equal(t, []any{float64(9)}, payload["categories"])
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(map[string]any{"id": 1, "status": "draft"})
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))
	defer server.Close()

	// slug not among configured categories, name derived by title-casing
	client := New(Config{BaseURL: server.URL, Username: "bot", Password: "secret"}, classify.New([]string{"SEO"}))
	content := domain.NewTemplateContent("ML Basics", "intro", nil, "meta", nil, "machine-learning")

	_, err := client.Publish(context.Background(), "ml basics", content, "<p>x</p>")
	require.NoError(t, err)
	assert.Equal(t, "Machine Learning", createdName)
}

func TestClient_Publish_CategoryFailureStillPublishes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/wp-json/wp/v2/categories":
			w.WriteHeader(http.StatusInternalServerError)
		case r.Method == http.MethodPost && r.URL.Path == "/wp-json/wp/v2/posts":
			var payload map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.Nil(t, payload["categories"], "no category on lookup failure")
			json.NewEncoder(w).Encode(map[string]any{"id": 5, "status": "draft"})
		}
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL, Username: "bot", Password: "secret"}, classify.New(nil))
	content := domain.NewAIContent("T", "md", "", nil, "general")

	post, err := client.Publish(context.Background(), "t", content, "<p>x</p>")
	require.NoError(t, err)
	assert.Equal(t, int64(5), post.ID)
}

func TestClient_Publish_PostError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"code":"rest_cannot_create"}`))
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL, Username: "bot", Password: "secret"}, classify.New(nil))
	content := domain.NewAIContent("T", "md", "", nil, "") // no category, straight to post

	_, err := client.Publish(context.Background(), "t", content, "<p>x</p>")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
	assert.Contains(t, err.Error(), "rest_cannot_create")
}

func TestClient_Configured(t *testing.T) {
	assert.False(t, New(Config{}, classify.New(nil)).Configured())
	assert.False(t, New(Config{BaseURL: "https://x", Username: "u"}, classify.New(nil)).Configured())
	assert.True(t, New(Config{BaseURL: "https://x", Username: "u", Password: "p"}, classify.New(nil)).Configured())
}
