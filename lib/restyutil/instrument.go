package restyutil

import (
	"fmt"
	"log/slog"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentClient attaches tracing + logging middleware to a resty client.
// every request becomes a span; failures are recorded on it.
// `tracer` can be nil, it will default to a library name of "resty"
func InstrumentClient(client *resty.Client, tracer trace.Tracer) {
	if tracer == nil {
		tracer = otel.Tracer("resty")
	}

	client.OnBeforeRequest(func(cli *resty.Client, req *resty.Request) error {
		ctx, _ := tracer.Start(req.Context(), fmt.Sprintf("http %s", req.Method))
		slog.DebugContext(
			ctx, "start request",
			"method", req.Method,
			"url", req.URL,
		)
		req.SetContext(ctx)
		return nil
	})

	client.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		ctx := res.Request.Context()
		span := trace.SpanFromContext(ctx)
		defer span.End()

		span.SetAttributes(
			attribute.String("http.request.method", res.Request.Method),
			attribute.String("url.full", res.Request.URL),
			attribute.Int("http.response.status_code", res.StatusCode()),
		)
		slog.DebugContext(
			ctx, "request finished",
			"method", res.Request.Method,
			"url", res.Request.URL,
			"status", res.StatusCode(),
		)
		return nil
	})

	client.OnError(func(req *resty.Request, err error) {
		ctx := req.Context()
		span := trace.SpanFromContext(ctx)
		defer span.End()

		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		slog.ErrorContext(
			ctx, "request failed",
			"method", req.Method,
			"url", req.URL,
			"err", err,
		)
	})
}
