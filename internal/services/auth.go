package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/timekeeper/internal/logger"
	"github.com/sbilibin2017/timekeeper/internal/models"
)

//go:generate mockgen -source=auth.go -destination=auth_mock.go -package=services

// Error variables
var (
	ErrUserAlreadyExists   = errors.New("username or employee id already exists")
	ErrUserDoesNotExist    = errors.New("username does not exist")
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrPendingVerification = errors.New("account verification pending")
)

// UserReader defines read-only operations for users.
type UserReader interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByID(ctx context.Context, userID uuid.UUID) (*models.User, error)
	FindByVerifyToken(ctx context.Context, token string, now time.Time) (*models.User, error)
	FindByResetToken(ctx context.Context, token string, now time.Time) (*models.User, error)
}

// PasswordComparer checks a plaintext password against a stored hash.
type PasswordComparer interface {
	Compare(hash, plain string) bool
}

// AuthService checks credentials and maps users to session principals.
type AuthService struct {
	reader UserReader
	hasher PasswordComparer
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader UserReader, hasher PasswordComparer) *AuthService {
	return &AuthService{
		reader: reader,
		hasher: hasher,
	}
}

// Authenticate returns the user owning the credentials. Accounts that still
// wait for verification are refused even with the right password.
func (svc *AuthService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := svc.reader.FindByUsername(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, err
	}
	if user == nil {
		logger.Log.Infow("user does not exist", "username", username)
		return nil, ErrUserDoesNotExist
	}

	if !svc.hasher.Compare(user.Password, password) {
		logger.Log.Infow("invalid credentials", "username", username)
		return nil, ErrInvalidCredentials
	}

	if user.PendingVerification() {
		logger.Log.Infow("login refused, verification pending", "username", username)
		return nil, ErrPendingVerification
	}

	return user, nil
}

// SerializeUser returns the value stored in the session for user.
func (svc *AuthService) SerializeUser(user *models.User) string {
	return user.UserID.String()
}

// DeserializeUser resolves a serialized principal. Unknown or malformed IDs
// yield nil, nil so the request continues anonymously.
func (svc *AuthService) DeserializeUser(ctx context.Context, id string) (*models.User, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		logger.Log.Warnw("malformed user id in session", "id", id)
		return nil, nil
	}

	user, err := svc.reader.FindByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to deserialize user", "userID", id, "err", err)
		return nil, err
	}

	return user, nil
}
