package ratelimit

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/jonathan/glimpse/internal/logging"
)

// ClientID extracts the client identifier from the request's remote address.
// X-Forwarded-For is ignored since no proxy is trusted.
func ClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// SetHeaders sets the standard rate limit headers for limited endpoints.
func (i Info) SetHeaders(h http.Header) {
	if i.Limit <= 0 {
		return
	}
	h.Set("X-RateLimit-Limit", strconv.Itoa(i.Limit))
	h.Set("X-RateLimit-Remaining", strconv.Itoa(i.Remaining))
	h.Set("X-RateLimit-Reset", strconv.FormatInt(i.ResetTime.Unix(), 10))
}

// Middleware rejects requests over their limit with 429 Too Many Requests.
func (l *Limiter) Middleware(next http.Handler, logger logging.Logger) http.Handler {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := ClientID(r)
		allowed, info := l.Allow(clientID, r.URL.Path, r.Method)
		info.SetHeaders(w.Header())

		if allowed {
			next.ServeHTTP(w, r)
			return
		}

		logger.WithFields(logging.Fields{
			"client": clientID,
			"path":   r.URL.Path,
			"limit":  info.Limit,
			"reset":  info.ResetTime.Format(time.RFC3339),
		}).Warn("rate limit exceeded")

		response := map[string]any{
			"success": false,
			"error":   "rate_limit_exceeded",
			"message": "Rate limit exceeded. Please try again later.",
			"limit":   info.Limit,
		}
		if !info.ResetTime.IsZero() {
			response["reset_at"] = info.ResetTime.Format(time.RFC3339)
		}
		if info.RetryAfter > 0 {
			seconds := int(info.RetryAfter.Seconds()) + 1
			response["retry_after"] = seconds
			w.Header().Set("Retry-After", strconv.Itoa(seconds))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(response)
	})
}
