package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sbilibin2017/timekeeper/internal/logger"
	"github.com/sbilibin2017/timekeeper/internal/middlewares"
	"github.com/sbilibin2017/timekeeper/internal/models"
	"github.com/sbilibin2017/timekeeper/internal/views"
)

//go:generate mockgen -source=handlers.go -destination=handlers_mock.go -package=handlers

// Flash messages shown to the user.
const (
	msgMissingFields      = "Please fill in all required fields."
	msgPasswordMismatch   = "Passwords do not match."
	msgFieldTooLong       = "One or more fields are too long."
	msgUserExists         = "Username or employee ID already exists."
	msgNoAccount          = "No account with that email address exists."
	msgResetTokenInvalid  = "Password reset token is invalid or has expired."
	msgVerifyTokenInvalid = "Account verification token is invalid or has expired."
	msgMailNotSent        = "We could not send the e-mail. Please try again later."
	msgMailSent           = "An e-mail has been sent to %s with further instructions."
	msgPasswordChanged    = "Success! Your password has been changed."
	msgAccountVerified    = "Success! Your account has been verified."
)

var validate = newValidator()

// newValidator returns a validator that also knows the maxbytes tag, a
// length limit in bytes rather than characters.
func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("maxbytes", maxBytes); err != nil {
		panic(err)
	}
	return v
}

func maxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= limit
}

// formMessage picks the flash shown for a rejected form.
func formMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return msgMissingFields
	}
	for _, fe := range verrs {
		switch fe.Tag() {
		case "eqfield":
			return msgPasswordMismatch
		case "max", "maxbytes":
			return msgFieldTooLong
		}
	}
	return msgMissingFields
}

// Renderer renders a named page.
type Renderer interface {
	Render(w io.Writer, name string, data views.PageData) error
}

// SessionManager persists sessions and switches their principal.
type SessionManager interface {
	Save(ctx context.Context, w http.ResponseWriter, s *models.Session) error
	LogIn(ctx context.Context, w http.ResponseWriter, s *models.Session, userID string) error
	LogOut(ctx context.Context, w http.ResponseWriter, s *models.Session) error
}

// UserSerializer maps a user to the value kept in the session.
type UserSerializer interface {
	SerializeUser(user *models.User) string
}

func sessionFromRequest(r *http.Request) *models.Session {
	if s := middlewares.GetSessionFromContext(r.Context()); s != nil {
		return s
	}
	return models.NewSession(uuid.NewString())
}

// render writes the page. Flashes are consumed, so the session is stored
// again when it carried any.
func render(w http.ResponseWriter, r *http.Request, renderer Renderer, sessions SessionManager, name, token string) {
	s := sessionFromRequest(r)

	data := views.PageData{
		User:    middlewares.GetUserFromContext(r.Context()),
		Flashes: s.PopFlashes(),
		Token:   token,
	}

	if len(data.Flashes) > 0 {
		if err := sessions.Save(r.Context(), w, s); err != nil {
			internalError(w, err)
			return
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := renderer.Render(w, name, data); err != nil {
		internalError(w, err)
	}
}

// redirect queues the flash, if any, and redirects to location.
func redirect(w http.ResponseWriter, r *http.Request, sessions SessionManager, location, kind, message string) {
	s := sessionFromRequest(r)

	if message != "" {
		s.AddFlash(kind, message)
		if err := sessions.Save(r.Context(), w, s); err != nil {
			logger.Log.Errorw("failed to save flash", "err", err)
		}
	}

	http.Redirect(w, r, location, http.StatusFound)
}

func internalError(w http.ResponseWriter, err error) {
	logger.Log.Errorw("internal server error", "err", err)
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

// NewPageHandler returns an HTTP handler rendering a static page.
func NewPageHandler(name string, renderer Renderer, sessions SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render(w, r, renderer, sessions, name, "")
	}
}
