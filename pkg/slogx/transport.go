package slogx

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/mlbahja/blogger/pkg/idx"
)

// Transport logs every outgoing request at debug level and attaches a
// request scoped logger to the request context.
type Transport struct {
	Base   http.RoundTripper
	Logger *slog.Logger
}

func (t *Transport) RoundTrip(r *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	// A logger on the request context wins, it carries per-command fields.
	logger, ok := r.Context().Value(ctxKey{}).(*slog.Logger)
	if !ok {
		logger = t.Logger
	}
	if logger == nil {
		logger = slog.Default()
	}

	// RoundTrippers must not mutate the caller's request.
	r = r.Clone(r.Context())
	reqID := idx.Stamp(r)

	logger = logger.With(
		"req_id", reqID.String(),
		"method", r.Method,
		"path", r.URL.Path,
	)
	r = r.WithContext(WithContext(r.Context(), logger))

	start := time.Now()
	resp, err := base.RoundTrip(r)
	duration := time.Since(start).Milliseconds()

	if err != nil {
		logger.Debug("http_request_failed", "duration_ms", duration, "error", err)
		return nil, err
	}

	logger.Debug("http_request",
		"status", resp.StatusCode,
		"duration_ms", duration,
	)
	return resp, nil
}
