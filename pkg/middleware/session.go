package middleware

import (
	"net/http"

	"food-marketplace/pkg/utils"

	"go.uber.org/zap"
)

// SessionHeader carries the cart session id in both directions.
const SessionHeader = "X-Session-ID"

// Session resolves the cart session from the X-Session-ID header. A missing or malformed
// id is replaced by a new one, which is echoed back so the client can keep it.
func Session(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := r.Header.Get(SessionHeader)
			if !utils.IsValidSessionID(sessionID) {
				if sessionID != "" {
					logger.Debug("Replacing malformed session id", zap.String("session_id", sessionID))
				}
				sessionID = utils.GenerateSessionID()
			}

			w.Header().Set(SessionHeader, sessionID)

			ctx := utils.SetSessionContext(r.Context(), sessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
