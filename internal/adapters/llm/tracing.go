package llm

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/PabloGalante/frickbooks/internal/domain"
)

const tracerName = "frickbooks/llm"

// TracingClient records one span per backend call.
type TracingClient struct {
	next    domain.LLMClient
	backend string
	tracer  trace.Tracer
}

// NewTracingClient uses the global tracer provider when tp is nil.
func NewTracingClient(next domain.LLMClient, backend string, tp trace.TracerProvider) *TracingClient {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return &TracingClient{
		next:    next,
		backend: backend,
		tracer:  tp.Tracer(tracerName),
	}
}

func (t *TracingClient) Complete(ctx context.Context, req domain.CompletionRequest) (domain.Message, error) {
	ctx, span := t.tracer.Start(ctx, "llm.complete", trace.WithAttributes(
		attribute.String("llm.backend", t.backend),
		attribute.String("llm.model", req.Model),
		attribute.Int("llm.messages", len(req.Messages)),
	))
	defer span.End()

	msg, err := t.next.Complete(ctx, req)
	if err != nil {
		span.SetStatus(codes.Error, "backend call failed: "+err.Error())
		span.RecordError(err)
		return domain.Message{}, err
	}

	span.SetAttributes(attribute.Int("llm.reply_length", len(msg.Content)))
	return msg, nil
}
