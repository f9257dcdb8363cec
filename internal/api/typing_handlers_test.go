package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func startTyping(t *testing.T, c *testClient, req typingStartRequest) map[string]any {
	t.Helper()
	rec := c.post("/api/typing/start", req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	require.Equal(t, "active", body["state"])
	return body
}

func TestTypingStart(t *testing.T) {
	s, svc := newTestServer(t)
	c := newTestClient(t, s)
	svc.On("Fetch", mock.Anything, 1, 0).Return(wordPool(5), nil)

	body := startTyping(t, c, typingStartRequest{Level: 1, Count: 3})
	assert.Equal(t, float64(0), body["index"])
	assert.Equal(t, float64(3), body["total"])
	assert.Equal(t, "00:00", body["elapsed"])

	prompt := body["prompt"].(map[string]any)
	assert.NotEmpty(t, prompt["chinese"])
	assert.NotEmpty(t, prompt["meaning"])
	// Hidden-target sub-mode never leaks the answer.
	assert.NotContains(t, prompt, "pinyin")
}

func TestTypingStartDefaultsCount(t *testing.T) {
	s, svc := newTestServer(t)
	s.DefaultWordCount = 4
	c := newTestClient(t, s)
	svc.On("Fetch", mock.Anything, 1, 0).Return(wordPool(10), nil)

	body := startTyping(t, c, typingStartRequest{Level: 1})
	assert.Equal(t, float64(4), body["total"])
}

func TestTypingStartEmptyPool(t *testing.T) {
	s, svc := newTestServer(t)
	c := newTestClient(t, s)
	svc.On("Fetch", mock.Anything, 1, 0).Return(wordPool(0), nil)

	rec := c.post("/api/typing/start", typingStartRequest{Level: 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTypingInputFlow(t *testing.T) {
	s, svc := newTestServer(t)
	c := newTestClient(t, s)
	svc.On("Fetch", mock.Anything, 1, 0).Return(wordPool(5), nil)

	body := startTyping(t, c, typingStartRequest{Level: 1, Count: 2, ShowTarget: true})
	gen := uint64(body["generation"].(float64))
	target := body["prompt"].(map[string]any)["pinyin"].(string)

	// A wrong guess reports the mismatch and stays on the same prompt.
	rec := c.post("/api/typing/input", typingInputRequest{Generation: gen, Text: "nosuchpinyin"})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody(t, rec)
	assert.Equal(t, "mismatch", resp["match"])
	assert.Equal(t, false, resp["advanced"])
	assert.Equal(t, float64(0), resp["index"])

	// The exact target resolves the prompt and advances.
	rec = c.post("/api/typing/input", typingInputRequest{Generation: gen, Text: target})
	require.Equal(t, http.StatusOK, rec.Code)
	resp = decodeBody(t, rec)
	assert.Equal(t, "exact", resp["match"])
	assert.Equal(t, true, resp["advanced"])
	assert.Equal(t, float64(1), resp["index"])
	assert.Equal(t, float64(1), resp["correct"])
}

func TestTypingSkipRecorded(t *testing.T) {
	s, svc := newTestServer(t)
	c := newTestClient(t, s)
	svc.On("Fetch", mock.Anything, 1, 0).Return(wordPool(5), nil)

	body := startTyping(t, c, typingStartRequest{Level: 1, Count: 3, ShowTarget: true})
	gen := uint64(body["generation"].(float64))

	rec := c.post("/api/typing/skip", eventRequest{Generation: gen})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody(t, rec)
	assert.Equal(t, float64(1), resp["skipped"])
	assert.Equal(t, float64(1), resp["index"])
}

func TestTypingStaleGenerationIgnored(t *testing.T) {
	s, svc := newTestServer(t)
	c := newTestClient(t, s)
	svc.On("Fetch", mock.Anything, 1, 0).Return(wordPool(5), nil)

	startTyping(t, c, typingStartRequest{Level: 1, Count: 3})

	rec := c.post("/api/typing/skip", eventRequest{Generation: 999})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody(t, rec)
	assert.Equal(t, true, resp["ignored"])
	assert.Equal(t, float64(0), resp["index"])
	assert.Equal(t, "active", resp["state"])
}

func TestTypingEndAndReset(t *testing.T) {
	s, svc := newTestServer(t)
	c := newTestClient(t, s)
	svc.On("Fetch", mock.Anything, 1, 0).Return(wordPool(5), nil)

	body := startTyping(t, c, typingStartRequest{Level: 1, Count: 3})
	gen := uint64(body["generation"].(float64))

	rec := c.post("/api/typing/end", eventRequest{Generation: gen})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody(t, rec)
	assert.Equal(t, "ended", resp["state"])
	require.Contains(t, resp, "results")
	results := resp["results"].(map[string]any)
	assert.Equal(t, float64(0), results["correct"])

	rec = c.post("/api/typing/reset", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp = decodeBody(t, rec)
	assert.Equal(t, "configuring", resp["state"])
	assert.NotContains(t, resp, "results")
}

func TestTypingEventsOutsideActiveIgnored(t *testing.T) {
	s, _ := newTestServer(t)
	c := newTestClient(t, s)

	rec := c.post("/api/typing/skip", eventRequest{Generation: 0})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody(t, rec)
	assert.Equal(t, true, resp["ignored"])
	assert.Equal(t, "configuring", resp["state"])
}

func TestTypingSessionsIsolated(t *testing.T) {
	s, svc := newTestServer(t)
	svc.On("Fetch", mock.Anything, 1, 0).Return(wordPool(5), nil)

	first := newTestClient(t, s)
	startTyping(t, first, typingStartRequest{Level: 1, Count: 3})

	second := newTestClient(t, s)
	rec := second.get("/api/typing/state")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "configuring", decodeBody(t, rec)["state"])
	assert.Equal(t, 2, s.Sessions.Len())
}
