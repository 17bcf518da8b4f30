package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"

	"github.com/PabloGalante/frickbooks/internal/domain"
	"github.com/PabloGalante/frickbooks/internal/observability"
)

// BreakerClient fails fast once the wrapped backend keeps failing, instead of
// making the player wait out a full timeout on every entry.
type BreakerClient struct {
	next    domain.LLMClient
	breaker *gobreaker.CircuitBreaker
}

// NewBreakerClient opens after consecutiveFailures failures in a row and
// lets a probe through after openFor.
func NewBreakerClient(next domain.LLMClient, consecutiveFailures uint32, openFor time.Duration) *BreakerClient {
	settings := gobreaker.Settings{
		Name:        "narrative-backend",
		MaxRequests: 1,
		Timeout:     openFor,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= consecutiveFailures
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			observability.WithFields("breaker", name).Warn("circuit breaker state changed", "from", from.String(), "to", to.String())
		},
	}

	return &BreakerClient{
		next:    next,
		breaker: gobreaker.NewCircuitBreaker(settings),
	}
}

func (b *BreakerClient) Complete(ctx context.Context, req domain.CompletionRequest) (domain.Message, error) {
	out, err := b.breaker.Execute(func() (interface{}, error) {
		msg, err := b.next.Complete(ctx, req)
		return msg, err
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return domain.Message{}, fmt.Errorf("narrative backend unavailable: %w", err)
		}
		return domain.Message{}, err
	}

	return out.(domain.Message), nil
}

// State reports the breaker state, e.g. "closed" or "open".
func (b *BreakerClient) State() string {
	return b.breaker.State().String()
}
