package qualification

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/championmethod/funnel-platform/pkg/logging"
)

func newTestChatHandler(t *testing.T) *Handler {
	t.Helper()
	return NewHandler(newTestService(t), []byte("// widget"), 0, logging.New("error"))
}

func startSession(t *testing.T, h *Handler) OutboundMessage {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/qualification/start", nil)
	w := httptest.NewRecorder()
	h.HandleStart(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var out OutboundMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func postAnswer(t *testing.T, h *Handler, sessionID string, optionIndex int) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(InboundMessage{SessionID: sessionID, OptionIndex: optionIndex})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/qualification/answer", strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.HandleAnswer(w, req)
	return w
}

func TestHandleStart(t *testing.T) {
	h := newTestChatHandler(t)

	out := startSession(t, h)
	assert.Equal(t, "question", out.Type)
	assert.NotEmpty(t, out.SessionID)
	require.NotNil(t, out.Question)
	assert.Equal(t, "initial", out.Question.ID)
	assert.Equal(t, 1, out.Question.Step)
	assert.Equal(t, QuestionCount(), out.Question.Total)
	require.Len(t, out.Question.Options, 4)
	// Scores never leave the server.
	raw, _ := json.Marshal(out.Question.Options[0])
	assert.NotContains(t, string(raw), "score")
}

func TestHandleAnswerAdvancesAndCompletes(t *testing.T) {
	h := newTestChatHandler(t)
	out := startSession(t, h)

	var last OutboundMessage
	for i := 0; i < QuestionCount(); i++ {
		w := postAnswer(t, h, out.SessionID, 0)
		require.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &last))
	}

	assert.Equal(t, "result", last.Type)
	require.NotNil(t, last.Result)
	assert.Greater(t, last.Result.Score, 5.0)
	assert.True(t, strings.HasPrefix(last.Result.Redirect, "/checkout?qualified=true&score="))
	assert.NotEmpty(t, last.Result.Message)
}

func TestHandleAnswerErrors(t *testing.T) {
	h := newTestChatHandler(t)
	out := startSession(t, h)

	assert.Equal(t, http.StatusNotFound, postAnswer(t, h, "missing", 0).Code)
	assert.Equal(t, http.StatusBadRequest, postAnswer(t, h, out.SessionID, 9).Code)

	for i := 0; i < QuestionCount(); i++ {
		postAnswer(t, h, out.SessionID, 0)
	}
	assert.Equal(t, http.StatusConflict, postAnswer(t, h, out.SessionID, 0).Code)
}

func TestHandleGet(t *testing.T) {
	h := newTestChatHandler(t)
	out := startSession(t, h)
	postAnswer(t, h, out.SessionID, 2)

	r := chi.NewRouter()
	r.Get("/api/qualification/{sessionID}", h.HandleGet)

	req := httptest.NewRequest(http.MethodGet, "/api/qualification/"+out.SessionID, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var sess Session
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sess))
	assert.Equal(t, "goal", sess.CurrentID)
	require.Len(t, sess.Answers, 1)
	assert.False(t, sess.Completed)
}

func TestHandleGetNotFound(t *testing.T) {
	h := newTestChatHandler(t)

	r := chi.NewRouter()
	r.Get("/api/qualification/{sessionID}", h.HandleGet)

	req := httptest.NewRequest(http.MethodGet, "/api/qualification/missing", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleHistory(t *testing.T) {
	h := newTestChatHandler(t)
	out := startSession(t, h)
	postAnswer(t, h, out.SessionID, 0)

	req := httptest.NewRequest(http.MethodGet, "/api/qualification/history?session="+out.SessionID, nil)
	w := httptest.NewRecorder()
	h.HandleHistory(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Messages []ChatMessage `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	// Start question, answer, next question.
	assert.Len(t, resp.Messages, 3)
}

func TestHandleWidgetJS(t *testing.T) {
	h := newTestChatHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/widget.js", nil)
	w := httptest.NewRecorder()
	h.HandleWidgetJS(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/javascript", w.Header().Get("Content-Type"))
	assert.Equal(t, "// widget", w.Body.String())
}

func TestEmbeddedWidgetJS(t *testing.T) {
	assert.Contains(t, string(WidgetJS), "/api/qualification/start")
	assert.Contains(t, string(WidgetJS), "/qualification/ws")
}
