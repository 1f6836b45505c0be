package observability

import (
	"context"
	"reflect"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/matchpointhq/matchpoint-backend/internal/mediator"
)

// TracingBehavior opens one span per dispatched command or query, named after
// the request type. Infrastructure errors mark the span failed; business
// failures do not, they are ordinary outcomes.
type TracingBehavior struct {
	tracer trace.Tracer
}

func NewTracingBehavior() *TracingBehavior {
	return &TracingBehavior{tracer: otel.Tracer("matchpoint/mediator")}
}

func (b *TracingBehavior) Name() string { return "tracing" }

func (b *TracingBehavior) Handle(ctx context.Context, req any, next mediator.Next) (any, error) {
	reqType := reflect.TypeOf(req).String()
	ctx, span := b.tracer.Start(ctx, "mediator.Send "+reqType,
		trace.WithAttributes(attribute.String("request.type", reqType)),
	)
	defer span.End()

	out, err := next(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return out, err
}
