package backend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
)

const (
	Title   = "Contacts API"
	Version = "1.0.0"
)

var buckets = metrics.ExponentialBuckets(1e-3, 5, 6)

// NewHandler mounts the contacts endpoints at the root (so the collection is
// served at /contacts) plus /liveness and /metrics.
func NewHandler(store Store, logger *slog.Logger) http.Handler {
	set := metrics.NewSet()

	mux := http.NewServeMux()
	mux.HandleFunc("/liveness", func(http.ResponseWriter, *http.Request) {})
	mux.HandleFunc("/metrics", func(w http.ResponseWriter, _ *http.Request) { set.WritePrometheus(w) })

	api := humago.New(mux, huma.DefaultConfig(Title, Version))
	api.UseMiddleware(
		requestLogger(logger),
		meterRequests(set),
		recoverer(logger),
	)

	(&Contacts{Store: store, ErrorHandler: errorHandler(logger)}).Register(api)

	return mux
}

func requestLogger(logger *slog.Logger) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		start := time.Now()
		next(ctx)
		logger.LogAttrs(context.Background(), slog.LevelInfo,
			ctx.Operation().Method+" "+ctx.Operation().Path,
			slog.String("op", ctx.Operation().OperationID),
			slog.String("from", ctx.RemoteAddr()),
			slog.Int("status", ctx.Status()),
			slog.Duration("dur", time.Since(start)),
		)
	}
}

func meterRequests(set *metrics.Set) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		start := time.Now()
		next(ctx)
		op := ctx.Operation()
		labels := fmt.Sprintf(`{method=%q,path=%q,status="%d"}`, op.Method, op.Path, ctx.Status())
		set.GetOrCreatePrometheusHistogramExt(`http_request_duration_seconds`+labels, buckets).UpdateDuration(start)
		set.GetOrCreateCounter(`http_requests_total` + labels).Inc()
	}
}

// recoverer turns a handler panic into a 500.
func recoverer(logger *slog.Logger) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		defer func() {
			if v := recover(); v != nil {
				logger.LogAttrs(context.Background(), slog.LevelError, "panic occurred", slog.Any("recovered", v))
				ctx.SetStatus(http.StatusInternalServerError)
			}
		}()
		next(ctx)
	}
}

func errorHandler(logger *slog.Logger) func(context.Context, error) {
	return func(ctx context.Context, err error) {
		level := slog.LevelError
		attrs := []slog.Attr{slog.Any("err", err)}

		var statusErr huma.StatusError
		if errors.As(err, &statusErr) {
			if statusErr.GetStatus() < 500 {
				level = slog.LevelWarn
			}
			attrs = append(attrs, slog.Int("status", statusErr.GetStatus()))
		}

		logger.LogAttrs(ctx, level, "error occurred", attrs...)
	}
}
