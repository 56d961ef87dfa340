package notification

import (
	"context"
	"errors"
	"log"
	"time"

	"edufeed-backend/pkg/fcm"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Gateway is the push boundary consumed by the dispatcher. A non-nil error
// from Push means the gateway itself is unusable and the whole batch must
// fail; per-token failures are reported through the Outcome.
type Gateway interface {
	Push(ctx context.Context, token string, n fcm.Notification) (fcm.Outcome, error)
}

// Dispatcher fans one notification out to a set of device tokens through a
// bounded worker group. A shared token-bucket limiter paces the calls so the
// gateway's rate limit is respected regardless of worker count, and every
// call carries its own timeout so one stalled token never delays the rest
// beyond it.
type Dispatcher struct {
	gateway     Gateway
	limiter     *rate.Limiter
	workers     int
	sendTimeout time.Duration
}

// NewDispatcher creates a dispatcher sending through the given gateway with
// at most workers concurrent calls, ratePerSecond calls per second overall,
// and sendTimeout per call.
func NewDispatcher(gateway Gateway, workers int, ratePerSecond float64, sendTimeout time.Duration) *Dispatcher {
	if workers < 1 {
		workers = 1
	}
	return &Dispatcher{
		gateway:     gateway,
		limiter:     rate.NewLimiter(rate.Limit(ratePerSecond), 1),
		workers:     workers,
		sendTimeout: sendTimeout,
	}
}

// Dispatch sends the notification to every token independently and returns
// exactly one outcome per token. One bad token never aborts the batch; a
// gateway-level failure (fcm.ErrUnavailable) fails every token with zero
// purge candidates.
func (d *Dispatcher) Dispatch(ctx context.Context, tokens []string, n fcm.Notification) BatchResult {
	if len(tokens) == 0 {
		return BatchResult{}
	}

	outcomes := make([]fcm.Outcome, len(tokens))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.workers)

	for i, token := range tokens {
		g.Go(func() error {
			if err := d.limiter.Wait(gctx); err != nil {
				// Only happens when the batch is already being aborted
				outcomes[i] = fcm.OutcomeTransient
				return nil
			}

			callCtx, cancel := context.WithTimeout(gctx, d.sendTimeout)
			defer cancel()

			outcome, err := d.gateway.Push(callCtx, token, n)
			if err != nil {
				return err
			}
			outcomes[i] = outcome
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if errors.Is(err, fcm.ErrUnavailable) {
			log.Printf("[Dispatch] Gateway unavailable, failing batch of %d without purges: %v", len(tokens), err)
		} else {
			log.Printf("[Dispatch] Batch aborted: %v", err)
		}
		return BatchResult{
			Total:       len(tokens),
			Failed:      len(tokens),
			GatewayDown: true,
		}
	}

	result := BatchResult{Total: len(tokens)}
	for i, outcome := range outcomes {
		switch outcome {
		case fcm.OutcomeDelivered:
			result.Delivered++
		case fcm.OutcomeRejected:
			result.Failed++
			result.InvalidTokens = append(result.InvalidTokens, tokens[i])
		default:
			result.Failed++
		}
	}
	return result
}
