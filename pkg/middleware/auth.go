package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/shashiranjanraj/recipebox/pkg/apperr"
	"github.com/shashiranjanraj/recipebox/pkg/auth"
	"github.com/shashiranjanraj/recipebox/pkg/logger"
	"github.com/shashiranjanraj/recipebox/pkg/response"
)

type ctxKey int

const userIDKey ctxKey = iota

// Verifier confirms that the user behind a valid token may still act, for
// example that the account exists and is active.
type Verifier func(ctx context.Context, userID uint) error

// Authenticate requires an "Authorization: Bearer <token>" header (the
// "Token" scheme is accepted too). On success the user ID is stored in the
// request context; see UserID.
func Authenticate(verify Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearer(r.Header.Get("Authorization"))
			if !ok {
				response.Unauthorized(w, r)
				return
			}

			claims, err := auth.ValidateToken(token)
			if err != nil {
				response.Fail(w, r, apperr.Unauthenticated("Invalid token."))
				return
			}

			if verify != nil {
				if err := verify(r.Context(), claims.UserID); err != nil {
					if apperr.KindOf(err) == apperr.KindInternal {
						response.Fail(w, r, err)
						return
					}
					response.Fail(w, r, apperr.Unauthenticated("User inactive or deleted."))
					return
				}
			}

			ctx := WithUserID(r.Context(), claims.UserID)
			ctx = logger.InjectLogger(ctx, logger.WithCtx(ctx).With("user_id", claims.UserID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearer(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok {
		return "", false
	}
	if !strings.EqualFold(scheme, "Bearer") && !strings.EqualFold(scheme, "Token") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// WithUserID returns a context carrying the authenticated user ID.
func WithUserID(ctx context.Context, id uint) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// UserID returns the authenticated user ID, if any.
func UserID(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(userIDKey).(uint)
	return id, ok && id != 0
}
