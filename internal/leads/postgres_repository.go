package leads

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// leadDB is the subset of pgxpool.Pool the repository needs; pgxmock
// satisfies it in tests.
type leadDB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores leads in the relational database.
type PostgresRepository struct {
	db     leadDB
	tracer trace.Tracer
}

// NewPostgresRepository initializes a repo backed by pgx.
func NewPostgresRepository(db leadDB) *PostgresRepository {
	if db == nil {
		panic("leads: pgx pool required")
	}
	return &PostgresRepository{
		db:     db,
		tracer: otel.Tracer("funnel.internal.leads"),
	}
}

// Create inserts a new row.
func (r *PostgresRepository) Create(ctx context.Context, req *CreateLeadRequest) (*Lead, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	id := uuid.New()

	ctx, span := r.tracer.Start(ctx, "leads.create")
	defer span.End()

	query := `
		INSERT INTO leads (id, visitor_id, name, email, message, source, score, outcome)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`
	var createdAt time.Time
	if err := r.db.QueryRow(ctx, query,
		id,
		req.VisitorID,
		req.Name,
		req.Email,
		req.Message,
		req.Source,
		req.Score,
		req.Outcome,
	).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("leads: insert failed: %w", err)
	}

	return &Lead{
		ID:        id.String(),
		VisitorID: req.VisitorID,
		Name:      req.Name,
		Email:     req.Email,
		Message:   req.Message,
		Source:    req.Source,
		Score:     req.Score,
		Outcome:   req.Outcome,
		CreatedAt: createdAt,
	}, nil
}

// GetByID fetches a single lead.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Lead, error) {
	ctx, span := r.tracer.Start(ctx, "leads.get_by_id")
	defer span.End()

	query := `
		SELECT id, visitor_id, name, email, message, source, score, outcome, created_at
		FROM leads
		WHERE id = $1
	`
	row := r.db.QueryRow(ctx, query, id)
	var lead Lead
	if err := row.Scan(
		&lead.ID,
		&lead.VisitorID,
		&lead.Name,
		&lead.Email,
		&lead.Message,
		&lead.Source,
		&lead.Score,
		&lead.Outcome,
		&lead.CreatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("leads: select failed: %w", err)
	}
	return &lead, nil
}
