package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"uploadai/internal/domain"
)

type stubQA struct {
	answer domain.Answer
	err    error
}

func (s *stubQA) AnswerQuery(_ context.Context, question string) (domain.Answer, error) {
	if strings.TrimSpace(question) == "" {
		return domain.Answer{}, domain.ErrEmptyQuestion
	}
	return s.answer, s.err
}

func newTestServer(qa *stubQA) *httptest.Server {
	return httptest.NewServer(New(qa, zap.NewNop().Sugar()).Handler())
}

func postChat(t *testing.T, url string, body string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Post(url+"/chat", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	var payload map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	return resp, payload
}

func TestChatReturnsAnswerWithCitations(t *testing.T) {
	srv := newTestServer(&stubQA{answer: domain.Answer{
		Answer:    "We do email marketing.",
		Citations: []domain.Citation{{Title: "Services", URL: "https://uploaddigital.co/services"}},
	}})
	defer srv.Close()

	resp, payload := postChat(t, srv.URL, `{"question":"what do you do"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "We do email marketing.", payload["answer"])
	citations := payload["citations"].([]any)
	require.Len(t, citations, 1)
}

func TestChatRejectsBlankQuestion(t *testing.T) {
	srv := newTestServer(&stubQA{})
	defer srv.Close()

	resp, payload := postChat(t, srv.URL, `{"question":"  "}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "Question is required", payload["error"])
}

func TestChatRejectsInvalidJSON(t *testing.T) {
	srv := newTestServer(&stubQA{})
	defer srv.Close()

	resp, _ := postChat(t, srv.URL, `{not json`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestChatSynthesisFailureIs500(t *testing.T) {
	srv := newTestServer(&stubQA{err: errors.New("answer synthesis: boom")})
	defer srv.Close()

	resp, payload := postChat(t, srv.URL, `{"question":"q"}`)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	require.Contains(t, payload["error"], "boom")
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(&stubQA{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var payload map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.Equal(t, true, payload["ok"])
}
