package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/sbilibin2017/timekeeper/internal/logger"
	"github.com/sbilibin2017/timekeeper/internal/models"
	"github.com/sbilibin2017/timekeeper/internal/services"
)

//go:generate mockgen -source=login.go -destination=login_mock.go -package=handlers

// Authenticator defines the interface that the auth service must implement.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	SerializeUser(user *models.User) string
}

// NewLoginHandler returns an HTTP handler for login. Every authentication
// failure redirects back to /login without a reason.
func NewLoginHandler(svc Authenticator, sessions SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form := models.LoginForm{
			Username: r.PostFormValue("username"),
			Password: r.PostFormValue("password"),
		}
		if err := validate.Struct(form); err != nil {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}

		user, err := svc.Authenticate(r.Context(), form.Username, form.Password)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUserDoesNotExist),
				errors.Is(err, services.ErrInvalidCredentials),
				errors.Is(err, services.ErrPendingVerification):
				http.Redirect(w, r, "/login", http.StatusFound)
			default:
				internalError(w, err)
			}
			return
		}

		if err := sessions.LogIn(r.Context(), w, sessionFromRequest(r), svc.SerializeUser(user)); err != nil {
			internalError(w, err)
			return
		}

		http.Redirect(w, r, "/", http.StatusFound)
	}
}

// NewLogoutHandler returns an HTTP handler that ends the session.
func NewLogoutHandler(sessions SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := sessions.LogOut(r.Context(), w, sessionFromRequest(r)); err != nil {
			logger.Log.Errorw("failed to destroy session", "err", err)
		}
		http.Redirect(w, r, "/", http.StatusFound)
	}
}
