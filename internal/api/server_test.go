package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mhayashi/hskdrill/internal/models"
	"github.com/mhayashi/hskdrill/internal/services"
	"github.com/mhayashi/hskdrill/internal/testutil/mocks"
)

func newTestServer(t *testing.T) (*Server, *mocks.MockWordService) {
	t.Helper()
	svc := new(mocks.MockWordService)
	dir := t.TempDir()
	return &Server{
		WordService:      svc,
		Sessions:         services.NewSessionRegistry(time.Hour, dir),
		StaticDir:        dir,
		AudioDir:         dir,
		QuizFeedbackMS:   1200,
		DefaultWordCount: 20,
	}, svc
}

// testClient drives the router like a browser: it carries the session cookie
// across requests so all events land on the same session.
type testClient struct {
	t       *testing.T
	handler http.Handler
	cookies []*http.Cookie
}

func newTestClient(t *testing.T, s *Server) *testClient {
	t.Helper()
	return &testClient{t: t, handler: s.Routes()}
}

func (c *testClient) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(c.t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)
	c.cookies = append(c.cookies, rec.Result().Cookies()...)
	return rec
}

func (c *testClient) get(path string) *httptest.ResponseRecorder {
	return c.do(http.MethodGet, path, nil)
}

func (c *testClient) post(path string, body any) *httptest.ResponseRecorder {
	return c.do(http.MethodPost, path, body)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

// wordPool builds n complete words with pairwise distinct texts.
func wordPool(n int) []models.Word {
	words := make([]models.Word, 0, n)
	for i := 1; i <= n; i++ {
		words = append(words, models.Word{
			ID:          int64(i),
			Chinese:     fmt.Sprintf("字%d", i),
			Pinyin:      fmt.Sprintf("zi%d", i),
			PinyinToned: fmt.Sprintf("zì%d", i),
			Meaning:     fmt.Sprintf("meaning %d", i),
			Level:       1,
		})
	}
	return words
}
