package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mhayashi/hskdrill/internal/errors"
	"github.com/mhayashi/hskdrill/internal/models"
)

func TestHealthz(t *testing.T) {
	s, _ := newTestServer(t)
	c := newTestClient(t, s)

	rec := c.get("/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeBody(t, rec)["status"])
}

func TestWords(t *testing.T) {
	s, svc := newTestServer(t)
	c := newTestClient(t, s)
	svc.On("Fetch", mock.Anything, 2, 10).Return(wordPool(3), nil)

	rec := c.get("/api/words?level=2&limit=10")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, float64(3), body["count"])
	words := body["words"].([]any)
	require.Len(t, words, 3)
	first := words[0].(map[string]any)
	assert.Equal(t, "字1", first["chinese"])
	assert.Equal(t, "zì1", first["pinyin_toned"])
	svc.AssertExpectations(t)
}

func TestWordsBadParams(t *testing.T) {
	s, _ := newTestServer(t)
	c := newTestClient(t, s)

	for _, path := range []string{"/api/words", "/api/words?level=abc", "/api/words?level=1&limit=x"} {
		rec := c.get(path)
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
		body := decodeBody(t, rec)
		assert.Equal(t, errors.ErrCodeValidation, body["error"].(map[string]any)["code"], path)
	}
}

func TestWordsFetchFailure(t *testing.T) {
	s, svc := newTestServer(t)
	c := newTestClient(t, s)
	svc.On("Fetch", mock.Anything, 1, 0).Return(nil, errors.NewFetchError(assert.AnError))

	rec := c.get("/api/words?level=1")
	require.Equal(t, http.StatusBadGateway, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, errors.ErrCodeFetchFailed, body["error"].(map[string]any)["code"])
}

func TestLevels(t *testing.T) {
	s, svc := newTestServer(t)
	c := newTestClient(t, s)
	svc.On("Levels", mock.Anything).Return([]models.LevelCount{
		{Level: 1, Count: 150},
		{Level: 2, Count: 148},
	}, nil)

	rec := c.get("/api/levels")
	require.Equal(t, http.StatusOK, rec.Code)
	levels := decodeBody(t, rec)["levels"].([]any)
	require.Len(t, levels, 2)
	assert.Equal(t, float64(150), levels[0].(map[string]any)["count"])
}

func TestWordClipUnknownWord(t *testing.T) {
	s, svc := newTestServer(t)
	c := newTestClient(t, s)
	svc.On("Get", mock.Anything, int64(99)).Return(nil, errors.NewNotFoundError("word", int64(99)))

	rec := c.get("/api/audio/word/99")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCueClipUnknownName(t *testing.T) {
	s, _ := newTestServer(t)
	c := newTestClient(t, s)

	rec := c.get("/api/audio/cue/bogus")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
