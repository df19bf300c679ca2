package qualification

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/net/websocket"

	"github.com/championmethod/funnel-platform/internal/visitor"
	"github.com/championmethod/funnel-platform/pkg/logging"
)

// Handler manages qualification chat connections and messages.
type Handler struct {
	service     *Service
	logger      *logging.Logger
	widgetJS    []byte
	typingDelay time.Duration

	mu       sync.RWMutex
	sessions map[string]*wsConn // sessionID -> active connection
}

type wsConn struct {
	conn *websocket.Conn
	done chan struct{}
}

// InboundMessage is what the widget sends.
type InboundMessage struct {
	Type        string `json:"type"` // "start", "answer", "ping"
	SessionID   string `json:"session_id"`
	OptionIndex int    `json:"option_index"`
}

// OptionView is an option as shown to the visitor. Scores stay
// server-side.
type OptionView struct {
	Text  string `json:"text"`
	Emoji string `json:"emoji,omitempty"`
}

// QuestionView is a question as shown to the visitor, with progress
// through the graph.
type QuestionView struct {
	ID      string       `json:"id"`
	Text    string       `json:"text"`
	Options []OptionView `json:"options"`
	Step    int          `json:"step"`
	Total   int          `json:"total"`
}

// ResultView closes a completed chat.
type ResultView struct {
	Score    float64 `json:"score"`
	Outcome  string  `json:"outcome"`
	Label    string  `json:"label"`
	Message  string  `json:"message"`
	Redirect string  `json:"redirect"`
}

// OutboundMessage is what we send to the widget.
type OutboundMessage struct {
	Type      string        `json:"type"` // "session", "question", "typing", "result", "history", "error", "pong"
	SessionID string        `json:"session_id,omitempty"`
	Question  *QuestionView `json:"question,omitempty"`
	Result    *ResultView   `json:"result,omitempty"`
	Messages  []ChatMessage `json:"messages,omitempty"`
	Text      string        `json:"text,omitempty"`
}

// NewHandler creates a qualification chat handler. typingDelay paces
// the bot's replies over the WebSocket.
func NewHandler(service *Service, widgetJS []byte, typingDelay time.Duration, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		service:     service,
		logger:      logger,
		widgetJS:    widgetJS,
		typingDelay: typingDelay,
		sessions:    make(map[string]*wsConn),
	}
}

func questionView(q Question, answered int) *QuestionView {
	opts := make([]OptionView, 0, len(q.Options))
	for _, o := range q.Options {
		opts = append(opts, OptionView{Text: o.Text, Emoji: o.Emoji})
	}
	return &QuestionView{
		ID:      q.ID,
		Text:    q.Text,
		Options: opts,
		Step:    answered + 1,
		Total:   QuestionCount(),
	}
}

func resultView(sess *Session) *ResultView {
	return &ResultView{
		Score:    sess.Score,
		Outcome:  string(sess.Outcome),
		Label:    sess.Outcome.Label(),
		Message:  ResultMessage(sess.Outcome, sess.Answers),
		Redirect: sess.Redirect,
	}
}

// HandleStart handles POST /api/qualification/start requests.
func (h *Handler) HandleStart(w http.ResponseWriter, r *http.Request) {
	visitorID, _ := visitor.SessionIDFromContext(r.Context())

	sess, q, err := h.service.Start(r.Context(), visitorID)
	if err != nil {
		h.logger.Error("failed to start qualification session", "error", err)
		http.Error(w, "failed to start session", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(OutboundMessage{
		Type:      "question",
		SessionID: sess.ID,
		Question:  questionView(q, 0),
	})
}

// HandleAnswer handles POST /api/qualification/answer requests, the
// HTTP fallback for widgets without a WebSocket.
func (h *Handler) HandleAnswer(w http.ResponseWriter, r *http.Request) {
	var req InboundMessage
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.SessionID == "" {
		http.Error(w, "session_id is required", http.StatusBadRequest)
		return
	}

	sess, next, err := h.service.Answer(r.Context(), req.SessionID, req.OptionIndex)
	if err != nil {
		h.answerError(w, err)
		return
	}

	out := OutboundMessage{SessionID: sess.ID}
	if next != nil {
		out.Type = "question"
		out.Question = questionView(*next, len(sess.Answers))
	} else {
		out.Type = "result"
		out.Result = resultView(sess)
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}

func (h *Handler) answerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		http.Error(w, "session not found", http.StatusNotFound)
	case errors.Is(err, ErrSessionCompleted):
		http.Error(w, "session already completed", http.StatusConflict)
	case errors.Is(err, ErrInvalidOption):
		http.Error(w, "invalid option index", http.StatusBadRequest)
	default:
		h.logger.Error("failed to record answer", "error", err)
		http.Error(w, "failed to record answer", http.StatusInternalServerError)
	}
}

// HandleGet handles GET /api/qualification/{sessionID} requests.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		http.Error(w, "missing session id", http.StatusBadRequest)
		return
	}

	sess, err := h.service.Get(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to load session", "error", err)
		http.Error(w, "failed to load session", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(sess)
}

// HandleHistory returns the chat log for a session.
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		http.Error(w, "session parameter required", http.StatusBadRequest)
		return
	}

	msgs, err := h.service.History(r.Context(), sessionID, 100)
	if err != nil {
		h.logger.Error("failed to load history", "error", err)
		http.Error(w, "failed to load history", http.StatusInternalServerError)
		return
	}
	if msgs == nil {
		msgs = []ChatMessage{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"messages": msgs})
}

// HandleWebSocket upgrades to WebSocket and runs the chat in real time.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	websocket.Handler(func(conn *websocket.Conn) {
		h.serveWS(conn, r)
	}).ServeHTTP(w, r)
}

func (h *Handler) serveWS(conn *websocket.Conn, r *http.Request) {
	visitorID, _ := visitor.SessionIDFromContext(r.Context())

	var sessionID string
	if existing := strings.TrimSpace(r.URL.Query().Get("session")); existing != "" {
		sessionID = existing
		// Replay history on reconnect.
		if msgs, err := h.service.History(r.Context(), sessionID, 100); err == nil && len(msgs) > 0 {
			_ = websocket.JSON.Send(conn, OutboundMessage{Type: "history", SessionID: sessionID, Messages: msgs})
		}
	}

	if sessionID != "" {
		h.register(sessionID, conn)
		defer h.unregister(sessionID)
	}

	for {
		var msg InboundMessage
		if err := websocket.JSON.Receive(conn, &msg); err != nil {
			h.logger.Debug("qualification: connection closed", "session_id", sessionID, "error", err)
			return
		}

		switch msg.Type {
		case "ping":
			_ = websocket.JSON.Send(conn, OutboundMessage{Type: "pong"})
		case "start":
			sess, q, err := h.service.Start(r.Context(), visitorID)
			if err != nil {
				_ = websocket.JSON.Send(conn, OutboundMessage{Type: "error", Text: "failed to start session"})
				continue
			}
			if sessionID != "" {
				h.unregister(sessionID)
			}
			sessionID = sess.ID
			h.register(sessionID, conn)
			_ = websocket.JSON.Send(conn, OutboundMessage{Type: "session", SessionID: sess.ID})
			h.sendTyped(conn, OutboundMessage{Type: "question", SessionID: sess.ID, Question: questionView(q, 0)})
		case "answer":
			id := msg.SessionID
			if id == "" {
				id = sessionID
			}
			if id == "" {
				_ = websocket.JSON.Send(conn, OutboundMessage{Type: "error", Text: "no active session"})
				continue
			}
			sess, next, err := h.service.Answer(r.Context(), id, msg.OptionIndex)
			if err != nil {
				_ = websocket.JSON.Send(conn, OutboundMessage{Type: "error", Text: answerErrorText(err)})
				continue
			}
			out := OutboundMessage{SessionID: sess.ID}
			if next != nil {
				out.Type = "question"
				out.Question = questionView(*next, len(sess.Answers))
			} else {
				out.Type = "result"
				out.Result = resultView(sess)
			}
			h.sendTyped(conn, out)
		}
	}
}

func answerErrorText(err error) string {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		return "session not found"
	case errors.Is(err, ErrSessionCompleted):
		return "session already completed"
	case errors.Is(err, ErrInvalidOption):
		return "invalid option index"
	default:
		return "Sorry, something went wrong. Please try again."
	}
}

// sendTyped shows a typing indicator, waits out the pacing delay, then
// sends the real message.
func (h *Handler) sendTyped(conn *websocket.Conn, msg OutboundMessage) {
	if h.typingDelay > 0 {
		_ = websocket.JSON.Send(conn, OutboundMessage{Type: "typing", SessionID: msg.SessionID})
		time.Sleep(h.typingDelay)
	}
	_ = websocket.JSON.Send(conn, msg)
}

func (h *Handler) register(sessionID string, conn *websocket.Conn) {
	wsc := &wsConn{conn: conn, done: make(chan struct{})}
	h.mu.Lock()
	h.sessions[sessionID] = wsc
	h.mu.Unlock()
}

func (h *Handler) unregister(sessionID string) {
	h.mu.Lock()
	if wsc, ok := h.sessions[sessionID]; ok {
		delete(h.sessions, sessionID)
		close(wsc.done)
	}
	h.mu.Unlock()
}

// SendToSession sends a message to an active WebSocket session.
func (h *Handler) SendToSession(sessionID string, msg OutboundMessage) {
	h.mu.RLock()
	wsc, ok := h.sessions[sessionID]
	h.mu.RUnlock()
	if !ok {
		return
	}
	_ = websocket.JSON.Send(wsc.conn, msg)
}

// HandleWidgetJS serves the embeddable widget JavaScript.
func (h *Handler) HandleWidgetJS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/javascript")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	_, _ = w.Write(h.widgetJS)
}
