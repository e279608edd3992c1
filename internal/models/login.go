package models

// LoginForm represents the credentials posted to /login.
type LoginForm struct {
	Username string `validate:"required,max=255"`
	Password string `validate:"required,maxbytes=72"`
}

// ForgotForm represents the form posted to /forgot.
type ForgotForm struct {
	Email string `validate:"required,max=255"`
}

// PasswordForm represents the new password posted to /reset/{token} and
// /validate/{token}.
type PasswordForm struct {
	Password string `validate:"required,maxbytes=72"`
	Confirm  string `validate:"omitempty,eqfield=Password"`
}
