package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/damon-houk/exchange-quote-relay/internal/application/auth"
	"github.com/damon-houk/exchange-quote-relay/internal/infrastructure/logger"
	"github.com/damon-houk/exchange-quote-relay/internal/infrastructure/metrics"
)

// UnauthorizedDetail is the fixed message of a rejected credential
const UnauthorizedDetail = "Unauthorized"

type unauthorizedResponse struct {
	Detail    string `json:"detail"`
	Status    int    `json:"status"`
	RequestID string `json:"request_id,omitempty"`
}

// BearerAuthMiddleware rejects requests whose Authorization header fails authn.Verify.
// Rejected requests get 401 {"detail":"Unauthorized"} and never reach next.
// m may be nil.
func BearerAuthMiddleware(authn *auth.Authenticator, log logger.Logger, m *metrics.QuoteMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header, present := r.Header["Authorization"]

			var value string
			if present && len(header) > 0 {
				value = header[0]
			}

			if err := authn.Verify(value); err != nil {
				requestID := GetRequestID(r.Context())

				log.Warn("Rejected credential", map[string]interface{}{
					"request_id":    requestID,
					"path":          r.URL.Path,
					"header_absent": !present,
				})

				if m != nil {
					m.IncAuthFailure()
				}

				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("WWW-Authenticate", auth.Scheme)
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(unauthorizedResponse{
					Detail:    UnauthorizedDetail,
					Status:    http.StatusUnauthorized,
					RequestID: requestID,
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
