// middleware.go - HTTP middleware for the streamable MCP transport.
//
// BearerTokenMiddleware guards the endpoint with a shared secret; RequestLoggingMiddleware
// records each request and its status. Neither applies to stdio mode.

package auth

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gebl/onenote-connector/internal/logging"
)

// BearerTokenMiddleware rejects requests whose Authorization header does not carry
// expectedToken. Both "Bearer <token>" and a bare token are accepted. /health and
// /ping are always allowed.
func BearerTokenMiddleware(expectedToken string) func(http.Handler) http.Handler {
	logger := logging.AuthLogger

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/health" || r.URL.Path == "/ping" {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

			var reason string
			switch {
			case header == "":
				reason = "Authorization header required"
			case token == "":
				reason = "Token cannot be empty"
			case subtle.ConstantTimeCompare([]byte(token), []byte(expectedToken)) != 1:
				reason = "Invalid token"
			}

			if reason != "" {
				logger.Warn("Authentication failed",
					"reason", reason,
					"remote_addr", r.RemoteAddr,
					"path", r.URL.Path,
					"method", r.Method)
				w.Header().Set("WWW-Authenticate", "Bearer")
				http.Error(w, reason, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequestLoggingMiddleware logs method, path and resulting status code.
func RequestLoggingMiddleware() func(http.Handler) http.Handler {
	logger := logging.MainLogger

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(wrapped, r)

			args := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status_code", wrapped.statusCode,
				"remote_addr", r.RemoteAddr,
			}
			if wrapped.statusCode >= 400 {
				logger.Warn("HTTP request completed with error", args...)
			} else {
				logger.Info("HTTP request completed", args...)
			}
		})
	}
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Flush keeps streaming responses working through the wrapper.
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
