package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sbilibin2017/timekeeper/internal/models"
	"github.com/sbilibin2017/timekeeper/internal/services"
)

//go:generate mockgen -source=register.go -destination=register_mock.go -package=handlers

// Registerer defines the interface that the account service must implement.
type Registerer interface {
	Register(ctx context.Context, user *models.User, baseURL string) error
}

// NewRegisterHandler returns an HTTP handler for employee registration.
// Mailed links point at baseURL.
func NewRegisterHandler(svc Registerer, sessions SessionManager, baseURL string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form := models.RegisterForm{
			Username:   r.PostFormValue("username"),
			Password:   r.PostFormValue("password"),
			EmployeeID: r.PostFormValue("employeeID"),
			FirstName:  r.PostFormValue("firstName"),
			LastName:   r.PostFormValue("lastName"),
			Phone:      r.PostFormValue("phone"),
			Department: r.PostFormValue("department"),
			JobTitle:   r.PostFormValue("jobTitle"),
			Level:      r.PostFormValue("level"),
			TeamLeader: r.PostFormValue("teamLeader"),
			Duration:   r.PostFormValue("duration"),
		}

		if err := validate.Struct(form); err != nil {
			redirect(w, r, sessions, "/user", models.FlashError, formMessage(err))
			return
		}

		user := form.User()
		err := svc.Register(r.Context(), user, baseURL)
		switch {
		case err == nil:
			redirect(w, r, sessions, "/", models.FlashInfo, fmt.Sprintf(msgMailSent, user.Username))
		case errors.Is(err, services.ErrUserAlreadyExists):
			redirect(w, r, sessions, "/user", models.FlashError, msgUserExists)
		case errors.Is(err, services.ErrMailNotSent):
			redirect(w, r, sessions, "/", models.FlashError, msgMailNotSent)
		default:
			internalError(w, err)
		}
	}
}
