package ratelimiter

import (
	"assistant-service/internal/app/contracts"
	"assistant-service/internal/pkg/constvars"
	"assistant-service/internal/pkg/exceptions"
	"assistant-service/internal/pkg/utils"
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// MinIntervalGate lets at most one caller through per interval, shared by all
// goroutines. Waiters queue in arrival order.
type MinIntervalGate struct {
	limiter  *rate.Limiter
	interval time.Duration
	log      *zap.Logger
}

// NewMinIntervalGate returns a gate with a burst of one. A non-positive
// interval disables waiting.
func NewMinIntervalGate(interval time.Duration, log *zap.Logger) *MinIntervalGate {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &MinIntervalGate{
		limiter:  rate.NewLimiter(limit, 1),
		interval: interval,
		log:      log,
	}
}

var _ contracts.Throttle = (*MinIntervalGate)(nil)

func (g *MinIntervalGate) Wait(ctx context.Context) error {
	start := time.Now()
	err := g.limiter.Wait(ctx)
	waited := time.Since(start)

	if err != nil {
		g.log.Warn("MinIntervalGate.Wait aborted",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.Duration(constvars.LoggingWaitDurationKey, waited),
			zap.Error(err),
		)
		if errors.Is(ctx.Err(), context.Canceled) {
			return err
		}
		// rate.Limiter also fails early when the deadline would pass first.
		return exceptions.ErrServerDeadlineExceeded(err)
	}

	if waited > time.Millisecond {
		g.log.Debug("MinIntervalGate.Wait throttled outbound call",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.Duration(constvars.LoggingWaitDurationKey, waited),
		)
	}
	return nil
}

func (g *MinIntervalGate) Interval() time.Duration {
	return g.interval
}
