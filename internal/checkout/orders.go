package checkout

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Order is the persisted outcome of a successful checkout. Card data
// is validated and classified but never stored.
type Order struct {
	ID            string    `json:"id"`
	VisitorID     string    `json:"visitor_id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Email         string    `json:"email"`
	AmountCents   int       `json:"amount_cents"`
	TransactionID string    `json:"transaction_id"`
	CreatedAt     time.Time `json:"created_at"`
}

// OrderRepository defines order storage.
type OrderRepository interface {
	Create(ctx context.Context, order *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
}

// InMemoryOrderRepository is the stub implementation used when no
// database is configured.
type InMemoryOrderRepository struct {
	mu     sync.RWMutex
	orders map[string]*Order
}

// NewInMemoryOrderRepository creates a new in-memory repository.
func NewInMemoryOrderRepository() *InMemoryOrderRepository {
	return &InMemoryOrderRepository{orders: make(map[string]*Order)}
}

// Create stores the order in memory, assigning ID and timestamp when
// missing.
func (r *InMemoryOrderRepository) Create(ctx context.Context, order *Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC()
	}

	r.mu.Lock()
	r.orders[order.ID] = order
	r.mu.Unlock()
	return nil
}

// GetByID retrieves an order by ID.
func (r *InMemoryOrderRepository) GetByID(ctx context.Context, id string) (*Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// orderDB is the subset of pgxpool.Pool the repository needs; pgxmock
// satisfies it in tests.
type orderDB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresOrderRepository stores orders in the relational database.
type PostgresOrderRepository struct {
	db     orderDB
	tracer trace.Tracer
}

// NewPostgresOrderRepository initializes a repo backed by pgx.
func NewPostgresOrderRepository(db orderDB) *PostgresOrderRepository {
	if db == nil {
		panic("checkout: pgx pool required")
	}
	return &PostgresOrderRepository{
		db:     db,
		tracer: otel.Tracer("funnel.internal.checkout.orders"),
	}
}

// Create inserts a new row.
func (r *PostgresOrderRepository) Create(ctx context.Context, order *Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}

	ctx, span := r.tracer.Start(ctx, "checkout.orders.create")
	defer span.End()

	query := `
		INSERT INTO orders (id, visitor_id, first_name, last_name, email, amount_cents, transaction_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`
	if err := r.db.QueryRow(ctx, query,
		order.ID,
		order.VisitorID,
		order.FirstName,
		order.LastName,
		order.Email,
		order.AmountCents,
		order.TransactionID,
	).Scan(&order.CreatedAt); err != nil {
		return fmt.Errorf("checkout: insert order failed: %w", err)
	}
	return nil
}

// GetByID fetches a single order.
func (r *PostgresOrderRepository) GetByID(ctx context.Context, id string) (*Order, error) {
	ctx, span := r.tracer.Start(ctx, "checkout.orders.get_by_id")
	defer span.End()

	query := `
		SELECT id, visitor_id, first_name, last_name, email, amount_cents, transaction_id, created_at
		FROM orders
		WHERE id = $1
	`
	row := r.db.QueryRow(ctx, query, id)
	var order Order
	if err := row.Scan(
		&order.ID,
		&order.VisitorID,
		&order.FirstName,
		&order.LastName,
		&order.Email,
		&order.AmountCents,
		&order.TransactionID,
		&order.CreatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("checkout: select order failed: %w", err)
	}
	return &order, nil
}
