package v1handler

import (
	"accounts/pkg/domain"
	"accounts/pkg/logger"
	"accounts/pkg/serrors"
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

type ctxKey string

const (
	// UserIDKey is the context key of the authenticated user.
	UserIDKey ctxKey = "userID"
)

// GetUserIDFromContext returns the user authenticated by WithBearerAuth.
func GetUserIDFromContext(ctx context.Context) domain.UserID {
	id, _ := ctx.Value(UserIDKey).(domain.UserID)

	return id
}

// WithBearerAuth rejects requests without a valid session token and stores
// the token's user in the request context.
func (h *Handler) WithBearerAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" {
			h.writeError(w, r, serrors.With(serrors.ErrUnauthorized, "missing bearer token"))

			return
		}

		userID, err := h.deps.Verifier.Verify(token)
		if err != nil {
			h.writeError(w, r, err)

			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		ctx = logger.WithFields(ctx, zap.String("user_id", userID.String()))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
