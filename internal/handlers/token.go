package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/timekeeper/internal/models"
	"github.com/sbilibin2017/timekeeper/internal/services"
	"github.com/sbilibin2017/timekeeper/internal/views"
)

//go:generate mockgen -source=token.go -destination=token_mock.go -package=handlers

// PasswordResetter defines the interface that the account service must implement.
type PasswordResetter interface {
	CheckResetToken(ctx context.Context, token string) error
	ResetPassword(ctx context.Context, token, password string) (*models.User, error)
}

// AccountVerifier defines the interface that the account service must implement.
type AccountVerifier interface {
	CheckVerifyToken(ctx context.Context, token string) error
	VerifyAccount(ctx context.Context, token, password string) (*models.User, error)
}

type tokenChecker func(ctx context.Context, token string) error

type tokenConsumer func(ctx context.Context, token, password string) (*models.User, error)

// tokenFlow describes one "follow the mailed link, choose a password" flow.
type tokenFlow struct {
	page       string
	prefix     string
	invalidMsg string
	successMsg string
}

var (
	resetFlow = tokenFlow{
		page:       views.Reset,
		prefix:     "/reset/",
		invalidMsg: msgResetTokenInvalid,
		successMsg: msgPasswordChanged,
	}
	validateFlow = tokenFlow{
		page:       views.Validate,
		prefix:     "/validate/",
		invalidMsg: msgVerifyTokenInvalid,
		successMsg: msgAccountVerified,
	}
)

// NewResetPageHandler returns an HTTP handler rendering the reset form for a live token.
func NewResetPageHandler(svc PasswordResetter, renderer Renderer, sessions SessionManager) http.HandlerFunc {
	return resetFlow.pageHandler(svc.CheckResetToken, renderer, sessions)
}

// NewResetHandler returns an HTTP handler that sets a new password and logs the user in.
func NewResetHandler(svc PasswordResetter, serializer UserSerializer, sessions SessionManager) http.HandlerFunc {
	return resetFlow.submitHandler(svc.ResetPassword, serializer, sessions)
}

// NewValidatePageHandler returns an HTTP handler rendering the activation form for a live token.
func NewValidatePageHandler(svc AccountVerifier, renderer Renderer, sessions SessionManager) http.HandlerFunc {
	return validateFlow.pageHandler(svc.CheckVerifyToken, renderer, sessions)
}

// NewValidateHandler returns an HTTP handler that activates the account and logs the user in.
func NewValidateHandler(svc AccountVerifier, serializer UserSerializer, sessions SessionManager) http.HandlerFunc {
	return validateFlow.submitHandler(svc.VerifyAccount, serializer, sessions)
}

func (f tokenFlow) pageHandler(check tokenChecker, renderer Renderer, sessions SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := chi.URLParam(r, "token")

		if err := check(r.Context(), token); err != nil {
			if errors.Is(err, services.ErrTokenInvalidOrExpired) {
				redirect(w, r, sessions, "/forgot", models.FlashError, f.invalidMsg)
				return
			}
			internalError(w, err)
			return
		}

		render(w, r, renderer, sessions, f.page, token)
	}
}

func (f tokenFlow) submitHandler(consume tokenConsumer, serializer UserSerializer, sessions SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := chi.URLParam(r, "token")

		form := models.PasswordForm{
			Password: r.PostFormValue("password"),
			Confirm:  r.PostFormValue("confirm"),
		}
		if err := validate.Struct(form); err != nil {
			redirect(w, r, sessions, f.prefix+token, models.FlashError, formMessage(err))
			return
		}

		user, err := consume(r.Context(), token, form.Password)
		if err != nil && !errors.Is(err, services.ErrMailNotSent) {
			if errors.Is(err, services.ErrTokenInvalidOrExpired) {
				redirect(w, r, sessions, "/forgot", models.FlashError, f.invalidMsg)
				return
			}
			internalError(w, err)
			return
		}

		s := sessionFromRequest(r)
		if err != nil {
			s.AddFlash(models.FlashError, msgMailNotSent)
		}
		s.AddFlash(models.FlashSuccess, f.successMsg)

		if err := sessions.LogIn(r.Context(), w, s, serializer.SerializeUser(user)); err != nil {
			internalError(w, err)
			return
		}

		http.Redirect(w, r, "/", http.StatusFound)
	}
}
