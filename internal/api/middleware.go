package api

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/stakewell-labs/staking-vault/internal/observability/metrics"
	"github.com/stakewell-labs/staking-vault/internal/observability/tracing"
)

const adminKeyHeader = "X-Admin-Key"

// requestLogger gives every request a trace ID, times it, and logs the
// outcome. The timer feeds the HTTP duration histogram.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := tracing.InjectTraceID(r.Context())

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		stopTimer := metrics.StartHttpRequestDurationTimer(r.Method, r.URL.Path)

		startTime := time.Now()
		next.ServeHTTP(ww, r.WithContext(ctx))
		stopTimer(ww.Status())

		log.Ctx(ctx).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(startTime)).
			Msg("Handled request")
	})
}

// adminOnly rejects requests whose admin key does not match the configured
// one. The comparison is constant time so the key cannot be guessed byte
// by byte.
func (s *Server) adminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		provided := r.Header.Get(adminKeyHeader)
		expected := s.cfg.Api.AdminKey

		if subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) != 1 {
			log.Ctx(r.Context()).Warn().
				Str("path", r.URL.Path).
				Msg("Rejected admin request with invalid key")
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid admin key")
			return
		}

		next.ServeHTTP(w, r)
	})
}
