package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/mcortez/taskstack/internal/api/httputil"
	"github.com/mcortez/taskstack/internal/domain"
	"github.com/mcortez/taskstack/internal/service"
	"github.com/rs/zerolog/log"
)

type contextKey string

const UserIDKey contextKey = "userID"

// Auth rejects requests without a valid bearer token and stores the resolved
// user id in the request context. Every failure mode is the same 401.
func Auth(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				httputil.WriteError(w, r, domain.Unauthenticated("Authorization header required"))
				return
			}

			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || token == "" {
				httputil.WriteError(w, r, domain.Unauthenticated("Invalid authorization header"))
				return
			}

			userID, err := authService.CurrentUser(r.Context(), token)
			if err != nil {
				log.Debug().Err(err).Str("path", r.URL.Path).Msg("token verification failed")
				httputil.WriteError(w, r, domain.Unauthenticated("Invalid or expired token"))
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}
