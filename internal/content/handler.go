package content

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/championmethod/funnel-platform/pkg/logging"
)

// Handler serves marketing copy and the offer countdown.
type Handler struct {
	catalog *Catalog
	window  time.Duration
	logger  *logging.Logger
	now     func() time.Time
}

// NewHandler creates a content handler with the configured offer
// window.
func NewHandler(catalog *Catalog, window time.Duration, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		catalog: catalog,
		window:  window,
		logger:  logger,
		now:     time.Now,
	}
}

// GetSection handles GET /api/content/{section} requests.
func (h *Handler) GetSection(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "section")
	section, ok := h.catalog.Section(name)
	if !ok {
		http.Error(w, "unknown content section", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "public, max-age=300")
	_ = json.NewEncoder(w).Encode(section)
}

// GetCountdown handles GET /api/offer/countdown requests.
func (h *Handler) GetCountdown(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(CountdownAt(h.now(), h.window))
}
