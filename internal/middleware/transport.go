package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// Middleware decorates an outbound transport.
type Middleware func(next http.RoundTripper) http.RoundTripper

// RoundTripperFunc adapts a function to http.RoundTripper.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

// Chain wraps base so that the first middleware is the outermost.
func Chain(base http.RoundTripper, mws ...Middleware) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	for i := len(mws) - 1; i >= 0; i-- {
		base = mws[i](base)
	}
	return base
}

// RequestID stamps every request lacking one with a fresh UUID.
func RequestID(next http.RoundTripper) http.RoundTripper {
	return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		if r.Header.Get(RequestIDHeader) != "" {
			return next.RoundTrip(r)
		}
		// RoundTrippers must not mutate the caller's request.
		r = r.Clone(r.Context())
		r.Header.Set(RequestIDHeader, uuid.NewString())
		return next.RoundTrip(r)
	})
}

// Logging records method, path, status, and latency of each request.
// Credentials are never logged.
func Logging(logger *slog.Logger) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			start := time.Now()
			resp, err := next.RoundTrip(r)
			attrs := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"request_id", r.Header.Get(RequestIDHeader),
				"duration", time.Since(start).Truncate(time.Millisecond).String(),
			}
			if err != nil {
				logger.WarnContext(r.Context(), "api request failed", append(attrs, "error", err)...)
				return nil, err
			}
			logger.DebugContext(r.Context(), "api request", append(attrs, "status", resp.StatusCode)...)
			return resp, nil
		})
	}
}
