package middleware

import (
	"bufio"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"

	"eventagenda/internal/delivery/http/helpers"
)

// RequestIDHeader is echoed on every response and attached to the request log line.
const RequestIDHeader = "X-Request-ID"

const maxRequestIDLen = 128

// responseWriter records what the handler sent so it can be logged afterwards.
type responseWriter struct {
	http.ResponseWriter
	status   int
	written  int64
	upgraded bool
}

func (w *responseWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *responseWriter) Write(b []byte) (n int, err error) {
	n, err = w.ResponseWriter.Write(b)
	w.written += int64(n)
	return n, err
}

// Hijack lets websocket upgrades pass through the wrapper.
func (w *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	conn, rw, err := hj.Hijack()
	if err == nil {
		w.upgraded = true
		w.status = http.StatusSwitchingProtocols
	}
	return conn, rw, err
}

func (w *responseWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func requestID(r *http.Request) string {
	if id := r.Header.Get(RequestIDHeader); id != "" && len(id) <= maxRequestIDLen {
		return id
	}
	return uuid.NewString()
}

func levelForStatus(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// LoggingMiddleware logs one line per request once the handler returns. Bodies
// are never logged. The request ID comes from X-Request-ID (or is generated),
// is echoed on the response and is available to handlers through
// helpers.RequestIDFromContext. Websocket streams are logged when they close.
func LoggingMiddleware(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := requestID(r)
		w.Header().Set(RequestIDHeader, reqID)
		ctx := helpers.WithRequestID(r.Context(), reqID)

		wrapped := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(wrapped, r.WithContext(ctx))

		attrs := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.status,
			"duration_ms", time.Since(start).Milliseconds(),
			"bytes", wrapped.written,
			"request_id", reqID,
		}
		if wrapped.upgraded {
			attrs = append(attrs, "upgraded", true)
		}
		logger.Log(ctx, levelForStatus(wrapped.status), "request", attrs...)
	})
}
