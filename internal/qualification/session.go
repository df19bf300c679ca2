package qualification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const sessionKeyPrefix = "qualification:session:"

// ErrSessionNotFound is returned when a session was never started or
// its record expired.
var ErrSessionNotFound = errors.New("qualification: session not found")

// Session is the per-visitor chat state. Score, Outcome and Redirect
// are only set once Completed is true.
type Session struct {
	ID          string    `json:"id"`
	VisitorID   string    `json:"visitor_id,omitempty"`
	CurrentID   string    `json:"current_id"`
	Answers     []Answer  `json:"answers"`
	Completed   bool      `json:"completed"`
	Score       float64   `json:"score"`
	Outcome     Outcome   `json:"outcome,omitempty"`
	Redirect    string    `json:"redirect,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	CompletedAt time.Time `json:"completed_at,omitempty"`
}

// SessionStore persists chat sessions.
type SessionStore interface {
	Save(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
}

// RedisSessionStore keeps sessions in redis with a TTL so abandoned
// chats age out on their own.
type RedisSessionStore struct {
	redis  *redis.Client
	tracer trace.Tracer
	ttl    time.Duration
}

// NewRedisSessionStore returns a store, or nil when redis is
// unavailable.
func NewRedisSessionStore(redisClient *redis.Client, ttl time.Duration) *RedisSessionStore {
	if redisClient == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisSessionStore{
		redis:  redisClient,
		tracer: otel.Tracer("funnel.internal.qualification.session"),
		ttl:    ttl,
	}
}

// Save writes the session, refreshing its TTL.
func (s *RedisSessionStore) Save(ctx context.Context, sess *Session) error {
	if sess.ID == "" {
		return errors.New("qualification: session ID required")
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("qualification: marshal session: %w", err)
	}
	ctx, span := s.tracer.Start(ctx, "qualification.session.save")
	defer span.End()

	if err := s.redis.Set(ctx, sessionKey(sess.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("qualification: save session: %w", err)
	}
	return nil
}

// Get loads a session by id.
func (s *RedisSessionStore) Get(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, errors.New("qualification: session ID required")
	}
	ctx, span := s.tracer.Start(ctx, "qualification.session.get")
	defer span.End()

	raw, err := s.redis.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("qualification: load session: %w", err)
	}
	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("qualification: unmarshal session: %w", err)
	}
	return &sess, nil
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

// InMemorySessionStore is the stub implementation used when no redis
// is configured.
type InMemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewInMemorySessionStore creates a new in-memory store.
func NewInMemorySessionStore() *InMemorySessionStore {
	return &InMemorySessionStore{sessions: make(map[string]*Session)}
}

// Save stores a copy of the session.
func (s *InMemorySessionStore) Save(ctx context.Context, sess *Session) error {
	if sess.ID == "" {
		return errors.New("qualification: session ID required")
	}
	cp := *sess
	cp.Answers = append([]Answer(nil), sess.Answers...)
	s.mu.Lock()
	s.sessions[sess.ID] = &cp
	s.mu.Unlock()
	return nil
}

// Get returns a copy of the stored session.
func (s *InMemorySessionStore) Get(ctx context.Context, id string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	cp := *sess
	cp.Answers = append([]Answer(nil), sess.Answers...)
	return &cp, nil
}
