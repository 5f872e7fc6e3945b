package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/render"

	"github.com/tendant/simple-auth/pkg/account"
	"github.com/tendant/simple-auth/pkg/token"
)

type contextKey string

const (
	authUserKey  contextKey = "authUser"
	authTokenKey contextKey = "authToken"
)

// RequireUser resolves the bearer token on the request to a user and
// stores both on the context. Requests without a resolvable user are
// rejected with 401 before the handler runs.
func RequireUser(service *account.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := bearerToken(r)
			if tokenStr == "" {
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, ErrorResponse{Error: "Invalid token"})
				return
			}

			user, err := service.GetCurrentUser(r.Context(), tokenStr)
			if err != nil {
				switch {
				case errors.Is(err, token.ErrTokenExpired):
					render.Status(r, http.StatusUnauthorized)
					render.JSON(w, r, ErrorResponse{Error: "Token Expired"})
				case errors.Is(err, account.ErrUnauthenticated):
					render.Status(r, http.StatusUnauthorized)
					render.JSON(w, r, ErrorResponse{Error: "Invalid token"})
				default:
					render.Status(r, http.StatusInternalServerError)
					render.JSON(w, r, ErrorResponse{Error: "An error occurred"})
				}
				return
			}

			ctx := context.WithValue(r.Context(), authUserKey, user)
			ctx = context.WithValue(ctx, authTokenKey, tokenStr)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the authenticated user stored by RequireUser.
func UserFromContext(ctx context.Context) (*account.User, bool) {
	user, ok := ctx.Value(authUserKey).(*account.User)
	return user, ok
}

// TokenFromContext returns the raw bearer token stored by RequireUser.
func TokenFromContext(ctx context.Context) (string, bool) {
	tokenStr, ok := ctx.Value(authTokenKey).(string)
	return tokenStr, ok
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
