// internal/submit/simulator.go
package submit

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/swapdemo/internal/metrics"
	"github.com/rovshanmuradov/swapdemo/internal/types"
)

// ErrInFlight is returned while a previous submission is outstanding.
var ErrInFlight = errors.New("a swap submission is already in progress")

// DefaultDelay is how long a simulated swap takes to "settle".
const DefaultDelay = 1200 * time.Millisecond

// Submitter accepts validated swap intents.
type Submitter interface {
	Submit(ctx context.Context, intent types.SwapIntent) (types.Receipt, error)
}

// Simulator completes every swap after a fixed delay without touching any
// ledger. Only one submission may be outstanding at a time.
type Simulator struct {
	delay    time.Duration
	inFlight atomic.Bool
	logger   *zap.Logger
	now      func() time.Time
}

// NewSimulator creates a simulator; a non-positive delay uses DefaultDelay.
func NewSimulator(delay time.Duration, logger *zap.Logger) *Simulator {
	if delay <= 0 {
		delay = DefaultDelay
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Simulator{
		delay:  delay,
		logger: logger.Named("submit"),
		now:    time.Now,
	}
}

// Busy reports whether a submission is outstanding.
func (s *Simulator) Busy() bool {
	return s.inFlight.Load()
}

// Submit blocks for the simulated delay and returns a receipt.
func (s *Simulator) Submit(ctx context.Context, intent types.SwapIntent) (types.Receipt, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		metrics.RecordSubmission("refused")
		s.logger.Warn("Refusing concurrent swap submission",
			zap.String("in", intent.TokenInSymbol),
			zap.String("out", intent.TokenOutSymbol))
		return types.Receipt{}, ErrInFlight
	}
	defer s.inFlight.Store(false)

	receipt := types.Receipt{
		ID:          uuid.NewString(),
		Intent:      intent,
		SubmittedAt: s.now(),
	}
	s.logger.Info("Swap submitted",
		zap.String("id", receipt.ID),
		zap.String("in", intent.TokenInSymbol),
		zap.String("out", intent.TokenOutSymbol),
		zap.Float64("amount_in", intent.AmountIn),
		zap.Float64("amount_out", intent.AmountOut))

	timer := time.NewTimer(s.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		metrics.RecordSubmission("cancelled")
		return types.Receipt{}, ctx.Err()
	case <-timer.C:
	}

	receipt.CompletedAt = s.now()
	metrics.RecordSubmission("ok")
	s.logger.Info("Swap completed", zap.String("id", receipt.ID))
	return receipt, nil
}
