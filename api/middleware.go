package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/shaj13/go-guardian/auth"
	"github.com/shaj13/go-guardian/auth/strategies/bearer"
	"github.com/shaj13/go-guardian/store"
	"go.uber.org/zap"

	"github.com/reporthub/reporthub-api/identity"
	"github.com/reporthub/reporthub-api/models"
)

// Authenticator guards routes with a cached bearer strategy. Tokens are checked
// against the identity provider once and then served from cache until ttl passes.
type Authenticator struct {
	authenticator auth.Authenticator
}

// NewAuthenticator sets up go-guardian with a bearer strategy backed by v
func NewAuthenticator(v identity.Verifier, ttl time.Duration) *Authenticator {
	cache := store.NewFIFO(context.Background(), ttl)
	tokenStrategy := bearer.New(func(ctx context.Context, r *http.Request, token string) (auth.Info, error) {
		email, err := v.Verify(ctx, token)
		if err != nil {
			return nil, err
		}
		return auth.NewDefaultUser(email, email, nil, nil), nil
	}, cache)

	a := auth.New()
	a.EnableStrategy(bearer.CachedStrategyKey, tokenStrategy)
	return &Authenticator{authenticator: a}
}

// Middleware rejects requests without a valid bearer token and puts the
// verified email into the request context
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := a.authenticator.Authenticate(r)
		if err != nil {
			zap.S().Warnw("unauthorized",
				"url", r.URL.String(),
				"error", err)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			b, _ := json.Marshal(models.UnauthorizedResponse{Error: "unauthorized"})
			w.Write(b)
			return
		}
		zap.S().Debugw("user authenticated", "email", user.UserName())
		next.ServeHTTP(w, r.WithContext(WithEmail(r.Context(), user.UserName())))
	})
}

// Protect is a shorthand for wrapping a handler func with Middleware
func (a *Authenticator) Protect(h http.HandlerFunc) http.Handler {
	return a.Middleware(h)
}
