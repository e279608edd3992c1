package middlewares

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/timekeeper/internal/logger"
	"github.com/sbilibin2017/timekeeper/internal/models"
)

//go:generate mockgen -source=auth.go -destination=auth_mock.go -package=middlewares

// UserDeserializer resolves the principal stored in a session.
type UserDeserializer interface {
	DeserializeUser(ctx context.Context, id string) (*models.User, error)
}

// SessionSaver persists a session whose principal was dropped.
type SessionSaver interface {
	Save(ctx context.Context, w http.ResponseWriter, s *models.Session) error
}

type userContextKey struct{}

// AuthMiddleware attaches the logged-in user to the request context. It must
// run after SessionMiddleware. Anonymous sessions, and sessions whose user no
// longer exists, pass through without a user; the latter are stored again as
// anonymous.
func AuthMiddleware(deserializer UserDeserializer, saver SessionSaver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			s := GetSessionFromContext(ctx)
			if s == nil || !s.IsAuthenticated() {
				next.ServeHTTP(w, r)
				return
			}

			user, err := deserializer.DeserializeUser(ctx, s.UserID)
			if err != nil {
				logger.Log.Errorw("failed to deserialize user", "err", err)
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}
			if user == nil {
				s.UserID = ""
				if err := saver.Save(ctx, w, s); err != nil {
					logger.Log.Warnw("failed to save anonymous session", "err", err)
				}
				next.ServeHTTP(w, r)
				return
			}

			ctx = context.WithValue(ctx, userContextKey{}, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserFromContext returns the logged-in user, or nil when anonymous.
func GetUserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(userContextKey{}).(*models.User)
	return user
}

// SetUserToContext returns a copy of ctx carrying user.
func SetUserToContext(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}
