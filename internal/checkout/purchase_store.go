package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const purchaseKeyPrefix = "purchase:"

// PurchaseRecord is the per-session purchase state read by the
// thank-you page. Field names mirror the keys the storefront exposes.
type PurchaseRecord struct {
	Complete  bool      `json:"purchaseComplete"`
	Email     string    `json:"purchaseEmail"`
	Name      string    `json:"purchaseName"`
	CreatedAt time.Time `json:"createdAt"`
}

// PurchaseStore keeps purchase records in redis, keyed by visitor
// session and expiring after the configured TTL. There is a single
// logical writer per session, so no locking beyond redis itself.
type PurchaseStore struct {
	redis  *redis.Client
	tracer trace.Tracer
	ttl    time.Duration
}

// NewPurchaseStore returns a store, or nil when redis is unavailable.
func NewPurchaseStore(redisClient *redis.Client, ttl time.Duration) *PurchaseStore {
	if redisClient == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &PurchaseStore{
		redis:  redisClient,
		tracer: otel.Tracer("funnel.internal.checkout.purchase"),
		ttl:    ttl,
	}
}

// Save writes the purchase record for a session.
func (s *PurchaseStore) Save(ctx context.Context, sessionID string, rec PurchaseRecord) error {
	if s == nil || s.redis == nil {
		return nil
	}
	if sessionID == "" {
		return errors.New("checkout: purchase sessionID required")
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("checkout: marshal purchase record: %w", err)
	}
	ctx, span := s.tracer.Start(ctx, "checkout.purchase.save")
	defer span.End()

	if err := s.redis.Set(ctx, purchaseKey(sessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("checkout: save purchase record: %w", err)
	}
	return nil
}

// Get loads the purchase record for a session. ErrPurchaseNotFound is
// returned when the session never completed a purchase (or the record
// expired); callers fall back to placeholder greeting text.
func (s *PurchaseStore) Get(ctx context.Context, sessionID string) (*PurchaseRecord, error) {
	if s == nil || s.redis == nil {
		return nil, ErrPurchaseNotFound
	}
	if sessionID == "" {
		return nil, errors.New("checkout: purchase sessionID required")
	}

	ctx, span := s.tracer.Start(ctx, "checkout.purchase.get")
	defer span.End()

	raw, err := s.redis.Get(ctx, purchaseKey(sessionID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrPurchaseNotFound
		}
		return nil, fmt.Errorf("checkout: load purchase record: %w", err)
	}

	var rec PurchaseRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("checkout: unmarshal purchase record: %w", err)
	}
	return &rec, nil
}

func purchaseKey(sessionID string) string {
	return purchaseKeyPrefix + sessionID
}
