package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents an employee account record in the database.
type User struct {
	UserID               uuid.UUID  `db:"user_id"`                  // Primary key
	Username             string     `db:"username"`                 // Unique, doubles as the e-mail address
	Password             string     `db:"password"`                 // bcrypt hash once persisted
	EmployeeID           string     `db:"employee_id"`              // Unique employee number
	FirstName            string     `db:"first_name"`
	LastName             string     `db:"last_name"`
	Phone                *string    `db:"phone"`                    // Optional
	Department           string     `db:"department"`
	JobTitle             string     `db:"job_title"`
	Level                string     `db:"level"`
	TeamLeader           string     `db:"team_leader"`
	Duration             string     `db:"duration"`
	Picture              *string    `db:"picture"`                  // Optional
	VerifyUserToken      *string    `db:"verify_user_token"`        // Set while account verification is pending
	VerifyUserExpires    *time.Time `db:"verify_user_expires"`
	ResetPasswordToken   *string    `db:"reset_password_token"`     // Set while a password reset is pending
	ResetPasswordExpires *time.Time `db:"reset_password_expires"`
	CreatedAt            time.Time  `db:"created_at"`               // Creation timestamp
	UpdatedAt            time.Time  `db:"updated_at"`               // Last update timestamp

	passwordChanged bool
}

// SetPassword stores a new plaintext password and marks it for hashing on
// the next save.
func (u *User) SetPassword(plain string) {
	u.Password = plain
	u.passwordChanged = true
}

// PasswordChanged reports whether Password holds plaintext that has not been
// hashed yet.
func (u *User) PasswordChanged() bool {
	return u.passwordChanged
}

// MarkPasswordHashed replaces the plaintext password with its hash.
func (u *User) MarkPasswordHashed(hash string) {
	u.Password = hash
	u.passwordChanged = false
}

// PendingVerification reports whether the account still waits for the
// verification link to be used.
func (u *User) PendingVerification() bool {
	return u.VerifyUserToken != nil
}

// SetVerifyToken attaches a verification token valid until expires.
func (u *User) SetVerifyToken(token string, expires time.Time) {
	u.VerifyUserToken = &token
	u.VerifyUserExpires = &expires
}

// ClearVerifyToken removes the verification token and its expiry.
func (u *User) ClearVerifyToken() {
	u.VerifyUserToken = nil
	u.VerifyUserExpires = nil
}

// SetResetToken attaches a password reset token valid until expires.
func (u *User) SetResetToken(token string, expires time.Time) {
	u.ResetPasswordToken = &token
	u.ResetPasswordExpires = &expires
}

// ClearResetToken removes the reset token and its expiry.
func (u *User) ClearResetToken() {
	u.ResetPasswordToken = nil
	u.ResetPasswordExpires = nil
}

// FullName joins first and last name.
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
