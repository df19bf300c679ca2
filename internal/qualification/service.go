package qualification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/championmethod/funnel-platform/internal/observability/metrics"
	"github.com/championmethod/funnel-platform/pkg/logging"
)

var (
	// ErrSessionCompleted is returned when answering a finished chat.
	ErrSessionCompleted = errors.New("qualification: session already completed")
	// ErrInvalidOption is returned for an out-of-range option index.
	ErrInvalidOption = errors.New("qualification: invalid option index")
)

// Service runs the question graph: it creates sessions, records
// answers, and finalizes the score when the terminal question is
// answered.
type Service struct {
	sessions   SessionStore
	transcript *TranscriptStore
	metrics    *metrics.FunnelMetrics
	logger     *logging.Logger
	now        func() time.Time
}

// NewService creates the chat engine. transcript and metrics may be nil.
func NewService(sessions SessionStore, transcript *TranscriptStore, m *metrics.FunnelMetrics, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		sessions:   sessions,
		transcript: transcript,
		metrics:    m,
		logger:     logger,
		now:        time.Now,
	}
}

// Start opens a new session positioned at the first question.
func (s *Service) Start(ctx context.Context, visitorID string) (*Session, Question, error) {
	q, _ := QuestionByID(StartQuestionID)
	sess := &Session{
		ID:        uuid.NewString(),
		VisitorID: visitorID,
		CurrentID: q.ID,
		CreatedAt: s.now().UTC(),
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, Question{}, err
	}
	s.appendBot(ctx, sess.ID, q.Text)

	s.metrics.ObserveSessionStarted()
	s.logger.Info("qualification session started", "session_id", sess.ID)
	return sess, q, nil
}

// Answer records the selected option for the session's current
// question and advances the graph. The returned question is nil once
// the session completes; the session then carries the final score,
// outcome and redirect.
func (s *Service) Answer(ctx context.Context, sessionID string, optionIndex int) (*Session, *Question, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if sess.Completed {
		return nil, nil, ErrSessionCompleted
	}

	q, ok := QuestionByID(sess.CurrentID)
	if !ok {
		return nil, nil, fmt.Errorf("qualification: unknown question %q", sess.CurrentID)
	}
	if optionIndex < 0 || optionIndex >= len(q.Options) {
		return nil, nil, ErrInvalidOption
	}
	opt := q.Options[optionIndex]

	sess.Answers = append(sess.Answers, Answer{
		QuestionID: q.ID,
		OptionText: opt.Text,
		Score:      opt.Score,
		Weight:     q.Weight,
		Emoji:      opt.Emoji,
	})
	s.appendVisitor(ctx, sess.ID, opt.Text, opt.Emoji)

	if opt.Next != "" {
		next, ok := QuestionByID(opt.Next)
		if !ok {
			return nil, nil, fmt.Errorf("qualification: unknown question %q", opt.Next)
		}
		sess.CurrentID = next.ID
		if err := s.sessions.Save(ctx, sess); err != nil {
			return nil, nil, err
		}
		s.appendBot(ctx, sess.ID, next.Text)
		return sess, &next, nil
	}

	sess.Completed = true
	sess.CompletedAt = s.now().UTC()
	sess.Score = TotalScore(sess.Answers)
	sess.Outcome = OutcomeFor(sess.Score)
	sess.Redirect = RedirectFor(sess.Score)
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, nil, err
	}
	s.appendBot(ctx, sess.ID, ResultMessage(sess.Outcome, sess.Answers))

	s.metrics.ObserveSessionCompleted(string(sess.Outcome), sess.Score)
	s.logger.Info("qualification session completed",
		"session_id", sess.ID, "score", sess.Score, "outcome", sess.Outcome)
	return sess, nil, nil
}

// Get loads a session by id.
func (s *Service) Get(ctx context.Context, sessionID string) (*Session, error) {
	return s.sessions.Get(ctx, sessionID)
}

// History returns the chat log for a session.
func (s *Service) History(ctx context.Context, sessionID string, limit int64) ([]ChatMessage, error) {
	return s.transcript.List(ctx, sessionID, limit)
}

func (s *Service) appendBot(ctx context.Context, sessionID, body string) {
	if err := s.transcript.Append(ctx, sessionID, ChatMessage{Role: "bot", Body: body}); err != nil {
		s.logger.Error("failed to append transcript", "error", err, "session_id", sessionID)
	}
}

func (s *Service) appendVisitor(ctx context.Context, sessionID, body, emoji string) {
	if err := s.transcript.Append(ctx, sessionID, ChatMessage{Role: "visitor", Body: body, Emoji: emoji}); err != nil {
		s.logger.Error("failed to append transcript", "error", err, "session_id", sessionID)
	}
}
