package checkout

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/championmethod/funnel-platform/internal/cards"
	"github.com/championmethod/funnel-platform/internal/notify"
	"github.com/championmethod/funnel-platform/internal/observability/metrics"
	"github.com/championmethod/funnel-platform/internal/visitor"
	"github.com/championmethod/funnel-platform/pkg/logging"
)

// Handler handles HTTP requests for the checkout flow.
type Handler struct {
	processor   *Processor
	purchases   *PurchaseStore
	orders      OrderRepository
	email       notify.EmailSender
	metrics     *metrics.FunnelMetrics
	amountCents int
	logger      *logging.Logger
	now         func() time.Time
}

// NewHandler creates a checkout handler. email and metrics may be nil.
func NewHandler(processor *Processor, purchases *PurchaseStore, orders OrderRepository, email notify.EmailSender, m *metrics.FunnelMetrics, amountCents int, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		processor:   processor,
		purchases:   purchases,
		orders:      orders,
		email:       email,
		metrics:     m,
		amountCents: amountCents,
		logger:      logger,
		now:         time.Now,
	}
}

// CardMetaRequest carries the raw card inputs to classify and format.
type CardMetaRequest struct {
	CardNumber string `json:"cardNumber"`
	ExpiryDate string `json:"expiryDate"`
}

// CardMetaResponse returns the detected network and display formatting
// for the current card inputs.
type CardMetaResponse struct {
	Network         string `json:"network"`
	DisplayName     string `json:"displayName"`
	CVVLength       int    `json:"cvvLength"`
	FormattedNumber string `json:"formattedNumber"`
	FormattedExpiry string `json:"formattedExpiry,omitempty"`
}

// CardMeta handles POST /api/checkout/card-meta requests.
func (h *Handler) CardMeta(w http.ResponseWriter, r *http.Request) {
	var req CardMetaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	network := cards.Detect(req.CardNumber)
	resp := CardMetaResponse{
		Network:         string(network),
		DisplayName:     network.DisplayName(),
		CVVLength:       network.CVVLength(),
		FormattedNumber: cards.FormatNumber(req.CardNumber, network),
	}
	if req.ExpiryDate != "" {
		resp.FormattedExpiry = cards.FormatExpiry(req.ExpiryDate)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// ValidateFieldRequest carries a single field to check on blur.
// CardNumber is needed alongside cvv so the expected length follows
// the detected network.
type ValidateFieldRequest struct {
	Field      string `json:"field"`
	Value      string `json:"value"`
	CardNumber string `json:"cardNumber"`
}

// ValidateField handles POST /api/checkout/validate requests. Blur
// semantics: an empty value is invalid but carries no error text; the
// required-field message only appears at submit.
func (h *Handler) ValidateField(w http.ResponseWriter, r *http.Request) {
	var req ValidateFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	network := cards.Detect(req.CardNumber)
	result := FieldResult{Valid: Validate(req.Field, req.Value, network, h.now())}
	if req.Value != "" && !result.Valid {
		result.Error = ErrorFor(req.Field, req.Value, network, h.now())
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// SubmitResponse is the success payload for a completed checkout.
type SubmitResponse struct {
	Status        string `json:"status"`
	OrderID       string `json:"order_id"`
	TransactionID string `json:"transaction_id"`
	Redirect      string `json:"redirect"`
}

// submitErrorResponse reports per-field validation errors and the
// first invalid field in sweep order, which receives focus.
type submitErrorResponse struct {
	Errors       map[string]FieldResult `json:"errors"`
	FirstInvalid string                 `json:"first_invalid"`
}

// Submit handles POST /api/checkout/submit requests.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var form Form
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		h.logger.Error("failed to decode request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	network := cards.Detect(form.CardNumber)
	results, firstInvalid := ValidateAll(&form, network, h.now())
	if firstInvalid != "" {
		for _, field := range FieldOrder {
			if !results[field].Valid {
				h.metrics.ObserveValidationFailure(field)
			}
		}
		h.metrics.ObserveCheckout("validation_failed")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(submitErrorResponse{Errors: results, FirstInvalid: firstInvalid})
		return
	}

	h.metrics.ObserveNetwork(string(network))

	receipt, err := h.processor.Process(r.Context(), form.Email)
	if err != nil {
		// Visitor navigated away mid-processing; nothing was charged.
		h.logger.Info("checkout abandoned during processing", "error", err)
		h.metrics.ObserveCheckout("abandoned")
		return
	}

	fullName := form.FirstName + " " + form.LastName
	order := &Order{
		FirstName:     form.FirstName,
		LastName:      form.LastName,
		Email:         form.Email,
		AmountCents:   h.amountCents,
		TransactionID: receipt.TransactionID,
	}
	if sessionID, ok := visitor.SessionIDFromContext(r.Context()); ok {
		order.VisitorID = sessionID
		if h.purchases != nil {
			rec := PurchaseRecord{
				Complete:  true,
				Email:     form.Email,
				Name:      fullName,
				CreatedAt: h.now().UTC(),
			}
			if err := h.purchases.Save(r.Context(), sessionID, rec); err != nil {
				h.logger.Error("failed to save purchase record", "error", err)
			}
		}
	}

	if err := h.orders.Create(r.Context(), order); err != nil {
		h.logger.Error("failed to create order", "error", err)
		h.metrics.ObserveCheckout("error")
		http.Error(w, "failed to record order", http.StatusInternalServerError)
		return
	}

	if h.email != nil {
		msg := notify.PurchaseConfirmation(fullName, form.Email, order.ID, h.amountCents)
		if err := h.email.Send(r.Context(), msg); err != nil {
			h.logger.Error("failed to send confirmation email", "error", err, "order_id", order.ID)
		}
	}

	h.logger.Info("checkout completed", "order_id", order.ID, "network", network)
	h.metrics.ObserveCheckout("success")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SubmitResponse{
		Status:        "success",
		OrderID:       order.ID,
		TransactionID: receipt.TransactionID,
		Redirect:      "/thank-you",
	})
}

// ThankYouResponse personalizes the post-purchase page. Name and
// EmailDisplay fall back to generic copy when no purchase record
// exists for the visitor.
type ThankYouResponse struct {
	Complete     bool   `json:"complete"`
	Name         string `json:"name"`
	EmailDisplay string `json:"emailDisplay"`
}

// ThankYou handles GET /api/thank-you requests.
func (h *Handler) ThankYou(w http.ResponseWriter, r *http.Request) {
	resp := ThankYouResponse{Name: "Champion", EmailDisplay: "your inbox"}

	if sessionID, ok := visitor.SessionIDFromContext(r.Context()); ok && h.purchases != nil {
		rec, err := h.purchases.Get(r.Context(), sessionID)
		switch {
		case errors.Is(err, ErrPurchaseNotFound):
		case err != nil:
			h.logger.Error("failed to load purchase record", "error", err)
		case rec.Complete:
			resp.Complete = true
			if rec.Name != "" {
				resp.Name = rec.Name
			}
			if rec.Email != "" {
				resp.EmailDisplay = rec.Email
			}
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
