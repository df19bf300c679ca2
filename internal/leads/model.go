package leads

import "time"

// Lead represents a captured contact, typically from the qualification
// chat or a web form.
type Lead struct {
	ID        string    `json:"id"`
	VisitorID string    `json:"visitor_id,omitempty"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message,omitempty"`
	Source    string    `json:"source"`
	Score     float64   `json:"score,omitempty"`
	Outcome   string    `json:"outcome,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateLeadRequest represents the request body for creating a lead
type CreateLeadRequest struct {
	VisitorID string  `json:"-"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Message   string  `json:"message"`
	Source    string  `json:"source"`
	Score     float64 `json:"score"`
	Outcome   string  `json:"outcome"`
}

// Validate validates the create lead request
func (r *CreateLeadRequest) Validate() error {
	if r.Name == "" {
		return ErrInvalidName
	}
	if r.Email == "" {
		return ErrMissingContact
	}
	return nil
}
