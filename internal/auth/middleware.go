package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/appetiteclub/apt"
)

type contextKey string

const identityContextKey contextKey = "snacktrack.identity"

// IdentityFrom returns the authenticated caller stored by RequireAuth.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityContextKey).(Identity)
	return id, ok
}

// WithIdentity attaches an identity to a context. Exported for handler
// tests that bypass the middleware.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, id)
}

// Middleware authenticates bearer tokens and gates routes by role.
type Middleware struct {
	repo   UserRepo
	config *apt.Config
	logger apt.Logger
}

func NewMiddleware(repo UserRepo, config *apt.Config, logger apt.Logger) *Middleware {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &Middleware{
		repo:   repo,
		config: config,
		logger: logger,
	}
}

// RequireAuth validates the Authorization header, resolves the user and
// stores a typed Identity in the request context. 401 on any failure.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			apt.RespondError(w, http.StatusUnauthorized, "Not authorized, no token")
			return
		}

		userID, err := ParseToken(m.config, strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			m.logger.Debug("token rejected", "error", err)
			apt.RespondError(w, http.StatusUnauthorized, "Not authorized, token invalid")
			return
		}

		user, err := m.repo.Get(r.Context(), userID)
		if err != nil {
			m.logger.Error("cannot load user for token", "error", err, "user_id", userID.String())
			apt.RespondError(w, http.StatusUnauthorized, "Not authorized, token invalid")
			return
		}
		if user == nil {
			apt.RespondError(w, http.StatusUnauthorized, "Not authorized, token invalid")
			return
		}

		identity := Identity{ID: user.ID, Email: user.Email, Role: user.Role}
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
	})
}

// RequireRole allows the request through only when the authenticated
// identity carries one of the given roles. Must sit behind RequireAuth.
func RequireRole(roles ...Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFrom(r.Context())
			if !ok {
				apt.RespondError(w, http.StatusUnauthorized, "Not authorized")
				return
			}
			for _, role := range roles {
				if identity.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			apt.RespondError(w, http.StatusForbidden, "Insufficient role")
		})
	}
}
