package leads

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/championmethod/funnel-platform/internal/visitor"
	"github.com/championmethod/funnel-platform/pkg/logging"
)

func TestCreateLead(t *testing.T) {
	repo := NewInMemoryRepository()
	h := NewHandler(repo, logging.New("error"))

	body := `{"name":"Jane Smith","email":"jane@example.com","source":"qualification_chat","score":8.2,"outcome":"highly_qualified"}`
	req := httptest.NewRequest(http.MethodPost, "/api/leads", strings.NewReader(body))
	req = req.WithContext(visitor.WithSessionID(req.Context(), "sess1"))
	w := httptest.NewRecorder()

	h.CreateLead(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	var lead Lead
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &lead))
	assert.NotEmpty(t, lead.ID)
	assert.Equal(t, "sess1", lead.VisitorID)
	assert.Equal(t, "qualification_chat", lead.Source)
	assert.Equal(t, 8.2, lead.Score)
}

func TestCreateLeadDefaultsSource(t *testing.T) {
	repo := NewInMemoryRepository()
	h := NewHandler(repo, logging.New("error"))

	body := `{"name":"Jane Smith","email":"jane@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/api/leads", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.CreateLead(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	var lead Lead
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &lead))
	assert.Equal(t, "web", lead.Source)
}

func TestCreateLeadValidation(t *testing.T) {
	repo := NewInMemoryRepository()
	h := NewHandler(repo, logging.New("error"))

	tests := []struct {
		name string
		body string
	}{
		{"missing name", `{"email":"jane@example.com"}`},
		{"missing email", `{"name":"Jane Smith"}`},
		{"bad json", `{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/leads", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			h.CreateLead(w, req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestInMemoryRepositoryGetByID(t *testing.T) {
	repo := NewInMemoryRepository()
	lead, err := repo.Create(context.Background(), &CreateLeadRequest{
		Name:  "Jane Smith",
		Email: "jane@example.com",
	})
	require.NoError(t, err)

	got, err := repo.GetByID(context.Background(), lead.ID)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", got.Email)

	_, err = repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrLeadNotFound)
}

func TestPostgresRepositoryCreate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	created := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery("INSERT INTO leads").
		WithArgs(pgxmock.AnyArg(), "sess1", "Jane Smith", "jane@example.com", "", "qualification_chat", 8.2, "highly_qualified").
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(created))

	repo := NewPostgresRepository(mock)
	lead, err := repo.Create(context.Background(), &CreateLeadRequest{
		VisitorID: "sess1",
		Name:      "Jane Smith",
		Email:     "jane@example.com",
		Source:    "qualification_chat",
		Score:     8.2,
		Outcome:   "highly_qualified",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, lead.ID)
	assert.Equal(t, created, lead.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}
