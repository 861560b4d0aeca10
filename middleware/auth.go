package middleware

import (
	"context"
	"net/http"

	"github.com/davidkairu/TaskManagerApp/internal/session"
	"github.com/davidkairu/TaskManagerApp/models"
)

type contextKey string

const identityKey contextKey = "identity"

// Middleware holds shared dependencies for route middleware
type Middleware struct {
	Sessions *session.Manager
}

// NewMiddleware creates a new Middleware
func NewMiddleware(sessions *session.Manager) *Middleware {
	return &Middleware{Sessions: sessions}
}

// RequireUser resolves the session once per request and stores the
// resulting Identity in the request context. Unauthenticated requests
// are redirected to the login form.
func (m *Middleware) RequireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := m.Sessions.Resolve(r)
		if identity == nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		ctx := context.WithValue(r.Context(), identityKey, *identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// IdentityFrom returns the Identity stored by RequireUser. The second
// return is false on routes that skipped the middleware.
func IdentityFrom(ctx context.Context) (models.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(models.Identity)
	return identity, ok
}
