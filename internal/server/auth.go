package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmaresco/cellarscan/internal/common"
)

// Authenticator verifies a bearer token and resolves it to a user id. Token
// issuance and session management live outside this service.
type Authenticator interface {
	VerifyToken(ctx context.Context, token string) (userID string, err error)
}

// authMiddleware resolves the Authorization header to a requester id and
// stores it on the context. Requests without a verifiable token proceed
// unauthenticated; the pipeline rejects them before any external call.
func authMiddleware(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
			if token != "" && auth != nil {
				if userID, err := auth.VerifyToken(r.Context(), token); err == nil {
					r = r.WithContext(common.WithRequesterID(r.Context(), userID))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
