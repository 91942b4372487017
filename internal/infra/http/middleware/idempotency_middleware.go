package middleware

import (
	"bytes"
	"net/http"
	"time"

	"github.com/Juadebfm/payment/internal/gateway"
	"github.com/rs/zerolog/log"
)

// responseRecorder captures what the handler writes so the response can be
// replayed for a repeated key.
type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	body       *bytes.Buffer
}

func (r *responseRecorder) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

// Idempotency replays the cached response for a repeated Idempotency-Key,
// so a client retrying a money-moving POST cannot record the movement
// twice. Requests without the header pass straight through.
func Idempotency(store gateway.IdempotencyRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get("Idempotency-Key")
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()

			// Scope the cache entry to the caller: two users sending the
			// same key must never be served each other's responses.
			if userID, ok := UserID(ctx); ok {
				key = userID + ":" + key
			}

			cached, err := store.Get(ctx, key)
			if err != nil {
				log.Error().Err(err).Msg("failed to look up idempotency key")
				// Fail open: a cache outage must not take the API down.
				next.ServeHTTP(w, r)
				return
			}

			if cached != nil {
				log.Info().Str("key", key).Msg("idempotency cache hit")
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("X-Idempotency-Hit", "true")
				w.WriteHeader(cached.StatusCode)
				if _, err := w.Write(cached.Body); err != nil {
					log.Error().Err(err).Msg("failed to write cached response")
				}
				return
			}

			recorder := &responseRecorder{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
				body:           &bytes.Buffer{},
			}

			next.ServeHTTP(recorder, r)

			// 5xx responses are not cached so the client can retry them.
			if recorder.statusCode < 500 {
				err := store.Save(ctx, key, gateway.CachedResponse{
					StatusCode: recorder.statusCode,
					Body:       recorder.body.Bytes(),
				}, 24*time.Hour)
				if err != nil {
					log.Error().Err(err).Msg("failed to save idempotency key")
				}
			}
		})
	}
}
