package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/hearthside-goods/storefront-backend/pkg/logger"
)

const cartSessionHeader = "X-Cart-Session"

// CartSession attaches the shopper's cart session id to the request context,
// issuing a fresh one when the client has none yet. The id is always echoed
// back so the client can persist it.
func CartSession(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := strings.TrimSpace(r.Header.Get(cartSessionHeader))
			if sessionID == "" {
				sessionID = uuid.NewString()
			}

			w.Header().Set(cartSessionHeader, sessionID)

			ctx := WithCartSession(r.Context(), sessionID)
			if logg != nil {
				ctx = logg.WithCartSession(ctx, sessionID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
