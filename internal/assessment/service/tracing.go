package service

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	dErrors "amlengine/pkg/domain-errors"
)

func (s *Service) startSpan(ctx context.Context, name, clientID string) (context.Context, trace.Span) {
	var attrs []attribute.KeyValue
	if clientID != "" {
		attrs = append(attrs, attribute.String("aml.client_id", clientID))
	}
	return s.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// endSpan marks server-side failures as span errors. Caller mistakes
// (validation, auth, not found) are recorded as an attribute only.
func endSpan(span trace.Span, err error) {
	if err != nil {
		code := dErrors.GetCode(err)
		span.SetAttributes(attribute.String("aml.error_code", string(code)))
		switch code {
		case dErrors.CodeStorage, dErrors.CodeInternal, dErrors.CodeUnavailable, dErrors.CodeTimeout:
			span.RecordError(err)
			span.SetStatus(codes.Error, dErrors.Message(err))
		}
	}
	span.End()
}
