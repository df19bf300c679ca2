package qualification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const transcriptKeyPrefix = "qualification:transcript:"

// ChatMessage is one line in the chat log: a bot question, a visitor
// selection, or the closing result message.
type ChatMessage struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"` // "bot" or "visitor"
	Body      string    `json:"body"`
	Emoji     string    `json:"emoji,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// TranscriptStore keeps the chat log per session in a redis list so a
// reconnecting widget can replay history.
type TranscriptStore struct {
	redis       *redis.Client
	tracer      trace.Tracer
	ttl         time.Duration
	maxMessages int64
}

// NewTranscriptStore returns a store, or nil when redis is unavailable.
func NewTranscriptStore(redisClient *redis.Client, ttl time.Duration) *TranscriptStore {
	if redisClient == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TranscriptStore{
		redis:       redisClient,
		tracer:      otel.Tracer("funnel.internal.qualification.transcript"),
		ttl:         ttl,
		maxMessages: 100,
	}
}

// Append pushes a message onto the session's log and refreshes its TTL.
func (s *TranscriptStore) Append(ctx context.Context, sessionID string, msg ChatMessage) error {
	if s == nil || s.redis == nil {
		return nil
	}
	if sessionID == "" {
		return errors.New("qualification: transcript sessionID required")
	}
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("qualification: marshal chat message: %w", err)
	}

	ctx, span := s.tracer.Start(ctx, "qualification.transcript.append")
	defer span.End()

	key := transcriptKey(sessionID)
	pipe := s.redis.TxPipeline()
	pipe.RPush(ctx, key, data)
	pipe.Expire(ctx, key, s.ttl)
	if s.maxMessages > 0 {
		pipe.LTrim(ctx, key, -s.maxMessages, -1)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("qualification: append chat message: %w", err)
	}
	return nil
}

// List returns up to limit most recent messages in order.
func (s *TranscriptStore) List(ctx context.Context, sessionID string, limit int64) ([]ChatMessage, error) {
	if s == nil || s.redis == nil {
		return nil, nil
	}
	if sessionID == "" {
		return nil, errors.New("qualification: transcript sessionID required")
	}

	ctx, span := s.tracer.Start(ctx, "qualification.transcript.list")
	defer span.End()

	start := int64(0)
	if limit > 0 {
		start = -limit
	}
	raw, err := s.redis.LRange(ctx, transcriptKey(sessionID), start, -1).Result()
	if err != nil {
		if err == redis.Nil {
			return []ChatMessage{}, nil
		}
		return nil, fmt.Errorf("qualification: list transcript: %w", err)
	}

	out := make([]ChatMessage, 0, len(raw))
	for _, item := range raw {
		var msg ChatMessage
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			continue
		}
		out = append(out, msg)
	}
	return out, nil
}

func transcriptKey(sessionID string) string {
	return transcriptKeyPrefix + sessionID
}
