package checkout

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/championmethod/funnel-platform/pkg/logging"
)

// Processor runs the simulated payment step. The delay is a pacing
// device, not real I/O: the step has no failure path and every
// submission that reaches it succeeds. A caller navigating away
// cancels the context and the pending continuation is abandoned.
type Processor struct {
	delay  time.Duration
	logger *logging.Logger
}

// Receipt is the result of a processed payment.
type Receipt struct {
	TransactionID string    `json:"transaction_id"`
	ProcessedAt   time.Time `json:"processed_at"`
}

// NewProcessor creates a processor with the configured pacing delay.
func NewProcessor(delay time.Duration, logger *logging.Logger) *Processor {
	if logger == nil {
		logger = logging.Default()
	}
	return &Processor{delay: delay, logger: logger}
}

// Process waits out the pacing delay and returns a receipt.
func (p *Processor) Process(ctx context.Context, email string) (*Receipt, error) {
	if p.delay > 0 {
		timer := time.NewTimer(p.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			p.logger.Debug("payment simulation abandoned", "email", email)
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	receipt := &Receipt{
		TransactionID: "txn_" + uuid.New().String(),
		ProcessedAt:   time.Now().UTC(),
	}
	p.logger.Info("payment simulated", "transaction_id", receipt.TransactionID)
	return receipt, nil
}
