package httpadapter

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"svw.info/make24/internal/metrics"
)

// statusWriter captures HTTP status and bytes written.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// RequestLogger logs method, path, status, bytes, and duration, and
// counts the request by matched route.
func RequestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)
		if sw.status == 0 {
			sw.status = http.StatusOK
		}
		dur := time.Since(start)

		// ServeMux fills in Pattern; requests it never saw share a label.
		route := r.Pattern
		switch {
		case route != "":
		case sw.status == http.StatusTooManyRequests:
			route = "rate_limited"
		default:
			route = "unmatched"
		}
		metrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(sw.status)).Inc()
		logger.Info("http",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"bytes", sw.bytes,
			"dur", dur.Round(time.Millisecond),
		)
	})
}

// NewLimiter builds a shared limiter; perSecond <= 0 disables limiting.
func NewLimiter(perSecond float64, burst int) *rate.Limiter {
	if perSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	return rate.NewLimiter(rate.Limit(perSecond), burst)
}

// RateLimit rejects /api/ requests with 429 once the limiter is drained.
// Pages, assets, health and metrics are never limited.
func RateLimit(l *rate.Limiter, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") && !l.Allow() {
			retry := math.Ceil(1 / float64(l.Limit()))
			if l.Limit() == rate.Inf || retry < 1 {
				retry = 1
			}
			w.Header().Set("Retry-After", strconv.Itoa(int(retry)))
			writeJSON(w, http.StatusTooManyRequests, errorResp{Error: "rate limit exceeded"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
