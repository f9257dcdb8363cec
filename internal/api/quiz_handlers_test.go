package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func startQuiz(t *testing.T, c *testClient, req quizStartRequest) map[string]any {
	t.Helper()
	rec := c.post("/api/quiz/start", req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	require.Equal(t, "active", body["state"])
	return body
}

func TestQuizStart(t *testing.T) {
	s, svc := newTestServer(t)
	c := newTestClient(t, s)
	svc.On("Fetch", mock.Anything, 2, 0).Return(wordPool(6), nil)

	body := startQuiz(t, c, quizStartRequest{Level: 2, Count: 4})
	assert.Equal(t, float64(4), body["total"])
	assert.Equal(t, false, body["revealed"])
	assert.Equal(t, float64(-1), body["correct_index"])

	question := body["question"].(map[string]any)
	assert.NotEmpty(t, question["prompt"])
	assert.Len(t, question["choices"].([]any), 4)
}

func TestQuizStartPoolTooSmall(t *testing.T) {
	s, svc := newTestServer(t)
	c := newTestClient(t, s)
	svc.On("Fetch", mock.Anything, 1, 0).Return(wordPool(3), nil)

	rec := c.post("/api/quiz/start", quizStartRequest{Level: 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestQuizStartBadDirection(t *testing.T) {
	s, _ := newTestServer(t)
	c := newTestClient(t, s)

	rec := c.post("/api/quiz/start", quizStartRequest{Level: 1, Direction: "sideways"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestQuizAnswerLocksQuestion(t *testing.T) {
	s, svc := newTestServer(t)
	c := newTestClient(t, s)
	svc.On("Fetch", mock.Anything, 1, 0).Return(wordPool(6), nil)

	body := startQuiz(t, c, quizStartRequest{Level: 1, Count: 4})
	gen := uint64(body["generation"].(float64))

	rec := c.post("/api/quiz/answer", quizAnswerRequest{Generation: gen, Choice: 0})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody(t, rec)
	assert.Equal(t, true, resp["revealed"])
	assert.Equal(t, float64(1200), resp["advance_after_ms"])

	correctIndex := resp["correct_index"].(float64)
	assert.GreaterOrEqual(t, correctIndex, float64(0))
	assert.Equal(t, correctIndex == 0, resp["answer_correct"])
	// The question stays in view while feedback is shown.
	assert.Equal(t, float64(0), resp["index"])

	// A second selection on a locked question is a no-op.
	rec = c.post("/api/quiz/answer", quizAnswerRequest{Generation: gen, Choice: 1})
	require.Equal(t, http.StatusOK, rec.Code)
	resp = decodeBody(t, rec)
	assert.Equal(t, true, resp["ignored"])
	assert.Equal(t, float64(1), resp["correct"].(float64)+resp["wrong"].(float64))
}

func TestQuizAnswerOutOfRange(t *testing.T) {
	s, svc := newTestServer(t)
	c := newTestClient(t, s)
	svc.On("Fetch", mock.Anything, 1, 0).Return(wordPool(6), nil)

	body := startQuiz(t, c, quizStartRequest{Level: 1, Count: 4})
	gen := uint64(body["generation"].(float64))

	rec := c.post("/api/quiz/answer", quizAnswerRequest{Generation: gen, Choice: 9})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestQuizNextRequiresReveal(t *testing.T) {
	s, svc := newTestServer(t)
	c := newTestClient(t, s)
	svc.On("Fetch", mock.Anything, 1, 0).Return(wordPool(6), nil)

	body := startQuiz(t, c, quizStartRequest{Level: 1, Count: 4})
	gen := uint64(body["generation"].(float64))

	rec := c.post("/api/quiz/next", eventRequest{Generation: gen})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody(t, rec)
	assert.Equal(t, true, resp["ignored"])
	assert.Equal(t, float64(0), resp["index"])

	c.post("/api/quiz/answer", quizAnswerRequest{Generation: gen, Choice: 0})
	rec = c.post("/api/quiz/next", eventRequest{Generation: gen})
	require.Equal(t, http.StatusOK, rec.Code)
	resp = decodeBody(t, rec)
	assert.Equal(t, float64(1), resp["index"])
	assert.Equal(t, false, resp["revealed"])
}

func TestQuizSkip(t *testing.T) {
	s, svc := newTestServer(t)
	c := newTestClient(t, s)
	svc.On("Fetch", mock.Anything, 1, 0).Return(wordPool(6), nil)

	body := startQuiz(t, c, quizStartRequest{Level: 1, Count: 4})
	gen := uint64(body["generation"].(float64))

	rec := c.post("/api/quiz/skip", eventRequest{Generation: gen})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody(t, rec)
	assert.Equal(t, float64(1), resp["skipped"])
	assert.Equal(t, float64(1), resp["index"])
	assert.Equal(t, float64(0), resp["wrong"])
}

func TestQuizRunToCompletion(t *testing.T) {
	s, svc := newTestServer(t)
	c := newTestClient(t, s)
	svc.On("Fetch", mock.Anything, 1, 0).Return(wordPool(6), nil)

	body := startQuiz(t, c, quizStartRequest{Level: 1, Count: 2})
	gen := uint64(body["generation"].(float64))

	for i := 0; i < 2; i++ {
		rec := c.post("/api/quiz/answer", quizAnswerRequest{Generation: gen, Choice: 0})
		require.Equal(t, http.StatusOK, rec.Code)
		rec = c.post("/api/quiz/next", eventRequest{Generation: gen})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := c.get("/api/quiz/state")
	resp := decodeBody(t, rec)
	assert.Equal(t, "ended", resp["state"])
	require.Contains(t, resp, "results")
	results := resp["results"].(map[string]any)
	assert.Equal(t, float64(2), results["correct"].(float64)+results["wrong"].(float64))
}

func TestQuizReset(t *testing.T) {
	s, svc := newTestServer(t)
	c := newTestClient(t, s)
	svc.On("Fetch", mock.Anything, 1, 0).Return(wordPool(6), nil)

	startQuiz(t, c, quizStartRequest{Level: 1, Count: 4})

	rec := c.post("/api/quiz/reset", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody(t, rec)
	assert.Equal(t, "configuring", resp["state"])
	assert.NotContains(t, resp, "question")
}
