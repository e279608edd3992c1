package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sbilibin2017/timekeeper/internal/models"
	"github.com/sbilibin2017/timekeeper/internal/services"
)

//go:generate mockgen -source=forgot.go -destination=forgot_mock.go -package=handlers

// PasswordResetRequester defines the interface that the account service must implement.
type PasswordResetRequester interface {
	RequestPasswordReset(ctx context.Context, email, baseURL string) error
}

// NewForgotHandler returns an HTTP handler that mails a password reset link
// pointing at baseURL.
func NewForgotHandler(svc PasswordResetRequester, sessions SessionManager, baseURL string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form := models.ForgotForm{Email: r.PostFormValue("email")}
		if err := validate.Struct(form); err != nil {
			redirect(w, r, sessions, "/forgot", models.FlashError, msgNoAccount)
			return
		}

		err := svc.RequestPasswordReset(r.Context(), form.Email, baseURL)
		switch {
		case err == nil:
			redirect(w, r, sessions, "/", models.FlashInfo, fmt.Sprintf(msgMailSent, form.Email))
		case errors.Is(err, services.ErrUserDoesNotExist):
			redirect(w, r, sessions, "/forgot", models.FlashError, msgNoAccount)
		case errors.Is(err, services.ErrMailNotSent):
			redirect(w, r, sessions, "/", models.FlashError, msgMailNotSent)
		default:
			internalError(w, err)
		}
	}
}
