package imagegen

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGemini answers generateContent calls with body and records the last prompt.
func fakeGemini(t *testing.T, status int, body string) (*httptest.Server, *atomic.Value) {
	t.Helper()
	var lastPrompt atomic.Value
	lastPrompt.Store("")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "gemini-2.5-flash-image:generateContent") {
			http.NotFound(w, r)
			return
		}
		raw, _ := io.ReadAll(r.Body)
		var req struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		if err := json.Unmarshal(raw, &req); err == nil && len(req.Contents) > 0 && len(req.Contents[0].Parts) > 0 {
			lastPrompt.Store(req.Contents[0].Parts[0].Text)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, &lastPrompt
}

func imageResponse(mime string, data []byte) string {
	return `{"candidates":[{"content":{"role":"model","parts":[` +
		`{"text":"here you go"},` +
		`{"inlineData":{"mimeType":"` + mime + `","data":"` + base64.StdEncoding.EncodeToString(data) + `"}}` +
		`]}}]}`
}

func newTestClient(t *testing.T, baseURL string, perMinute int) *GeminiClient {
	t.Helper()
	g, err := NewGeminiClient(context.Background(), GeminiConfig{
		APIKey:    "test-key",
		BaseURL:   baseURL,
		PerMinute: perMinute,
	}, nil)
	require.NoError(t, err)
	return g
}

func TestGenerateReturnsDataURI(t *testing.T) {
	payload := []byte{0x89, 'P', 'N', 'G'}
	srv, prompt := fakeGemini(t, http.StatusOK, imageResponse("image/jpeg", payload))
	g := newTestClient(t, srv.URL, 0)

	uri, ok := g.Generate(context.Background(), "a calm sea")
	require.True(t, ok)
	assert.Equal(t, "data:image/jpeg;base64,"+base64.StdEncoding.EncodeToString(payload), uri)
	assert.Equal(t, "a calm sea", prompt.Load())
}

func TestGenerateUsesDefaultPromptWhenBlank(t *testing.T) {
	srv, prompt := fakeGemini(t, http.StatusOK, imageResponse("image/png", []byte("img")))
	g := newTestClient(t, srv.URL, 0)

	_, ok := g.Generate(context.Background(), "   ")
	require.True(t, ok)
	assert.Equal(t, DefaultPrompt, prompt.Load())
}

func TestGenerateWithoutImagePart(t *testing.T) {
	srv, _ := fakeGemini(t, http.StatusOK, `{"candidates":[{"content":{"parts":[{"text":"no image today"}]}}]}`)
	g := newTestClient(t, srv.URL, 0)

	uri, ok := g.Generate(context.Background(), "")
	assert.False(t, ok)
	assert.Empty(t, uri)
}

func TestGenerateAPIError(t *testing.T) {
	srv, _ := fakeGemini(t, http.StatusTooManyRequests, `{"error":{"code":429,"message":"quota exhausted","status":"RESOURCE_EXHAUSTED"}}`)
	g := newTestClient(t, srv.URL, 0)

	_, ok := g.Generate(context.Background(), "")
	assert.False(t, ok)
}

func TestGenerateRateLimited(t *testing.T) {
	srv, _ := fakeGemini(t, http.StatusOK, imageResponse("image/png", []byte("img")))
	g := newTestClient(t, srv.URL, 1)

	_, ok := g.Generate(context.Background(), "")
	require.True(t, ok)
	_, ok = g.Generate(context.Background(), "")
	assert.False(t, ok, "second call within the minute is refused")
}

func TestNewGeminiClientRequiresKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), GeminiConfig{}, nil)
	assert.Error(t, err)
}

func TestDisabled(t *testing.T) {
	uri, ok := Disabled{}.Generate(context.Background(), "anything")
	assert.False(t, ok)
	assert.Empty(t, uri)
}

func TestDataURI(t *testing.T) {
	assert.Equal(t, "data:image/png;base64,aGk=", DataURI("", []byte("hi")))
	assert.Equal(t, "data:image/webp;base64,aGk=", DataURI("image/webp", []byte("hi")))
}

func TestParseDataURI(t *testing.T) {
	mime, data, err := ParseDataURI(DataURI("image/jpeg", []byte("pixels")))
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", mime)
	assert.Equal(t, []byte("pixels"), data)

	for _, bad := range []string{
		"https://images.unsplash.com/photo.jpg",
		"data:image/png;base64",
		"data:image/png,plain",
		"data:image/png;base64,!!!",
	} {
		_, _, err := ParseDataURI(bad)
		assert.Error(t, err, bad)
	}
}
