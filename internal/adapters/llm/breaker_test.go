package llm_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/frickbooks/internal/adapters/llm"
	"github.com/PabloGalante/frickbooks/internal/domain"
)

type flakyLLM struct {
	calls int
	err   error
}

func (f *flakyLLM) Complete(context.Context, domain.CompletionRequest) (domain.Message, error) {
	f.calls++
	if f.err != nil {
		return domain.Message{}, f.err
	}
	return domain.Message{Role: domain.RoleAssistant, Content: "fine"}, nil
}

func TestBreakerPassesThrough(t *testing.T) {
	next := &flakyLLM{}
	b := llm.NewBreakerClient(next, 3, time.Minute)

	msg, err := b.Complete(context.Background(), domain.CompletionRequest{})
	require.NoError(t, err)
	assert.Equal(t, "fine", msg.Content)
	assert.Equal(t, "closed", b.State())
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	boom := errors.New("boom")
	next := &flakyLLM{err: boom}
	b := llm.NewBreakerClient(next, 3, time.Minute)

	for i := 0; i < 3; i++ {
		_, err := b.Complete(context.Background(), domain.CompletionRequest{})
		assert.ErrorIs(t, err, boom)
	}
	assert.Equal(t, "open", b.State())

	_, err := b.Complete(context.Background(), domain.CompletionRequest{})
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Contains(t, err.Error(), "narrative backend unavailable")
	assert.Equal(t, 3, next.calls, "open breaker must not reach the backend")
}

func TestBreakerRecoversAfterTimeout(t *testing.T) {
	next := &flakyLLM{err: errors.New("boom")}
	b := llm.NewBreakerClient(next, 1, 20*time.Millisecond)

	_, err := b.Complete(context.Background(), domain.CompletionRequest{})
	require.Error(t, err)
	require.Equal(t, "open", b.State())

	time.Sleep(40 * time.Millisecond)
	next.err = nil

	_, err = b.Complete(context.Background(), domain.CompletionRequest{})
	require.NoError(t, err)
	assert.Equal(t, "closed", b.State())
}
