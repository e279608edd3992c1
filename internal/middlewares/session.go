package middlewares

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/timekeeper/internal/logger"
	"github.com/sbilibin2017/timekeeper/internal/models"
)

//go:generate mockgen -source=session.go -destination=session_mock.go -package=middlewares

// SessionLoader loads the session referenced by a request.
type SessionLoader interface {
	Load(r *http.Request) (*models.Session, error)
}

type sessionContextKey struct{}

// SessionMiddleware attaches the request's session, or a fresh anonymous one,
// to the request context.
func SessionMiddleware(loader SessionLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, err := loader.Load(r)
			if err != nil {
				logger.Log.Errorw("failed to load session", "err", err)
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}

			ctx := context.WithValue(r.Context(), sessionContextKey{}, s)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSessionFromContext returns the session set by SessionMiddleware, or nil.
func GetSessionFromContext(ctx context.Context) *models.Session {
	s, _ := ctx.Value(sessionContextKey{}).(*models.Session)
	return s
}

// SetSessionToContext returns a copy of ctx carrying s.
func SetSessionToContext(ctx context.Context, s *models.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, s)
}
