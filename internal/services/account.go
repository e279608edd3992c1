package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/timekeeper/internal/logger"
	"github.com/sbilibin2017/timekeeper/internal/mailer"
	"github.com/sbilibin2017/timekeeper/internal/models"
	"github.com/sbilibin2017/timekeeper/internal/repositories"
	"github.com/sbilibin2017/timekeeper/internal/tokens"
	"github.com/segmentio/kafka-go"
)

//go:generate mockgen -source=account.go -destination=account_mock.go -package=services

var (
	// ErrTokenInvalidOrExpired is returned when a verify or reset token does not match or has expired.
	ErrTokenInvalidOrExpired = errors.New("token is invalid or has expired")
	// ErrMailNotSent is joined with the transport error when a workflow could not deliver its mail.
	ErrMailNotSent = errors.New("mail not sent")
)

// UserWriter defines write operations for users.
type UserWriter interface {
	Create(ctx context.Context, user *models.User) error
	Save(ctx context.Context, user *models.User) error
	ConsumeVerifyToken(ctx context.Context, user *models.User, token string, now time.Time) (bool, error)
	ConsumeResetToken(ctx context.Context, user *models.User, token string, now time.Time) (bool, error)
}

// Transactor runs fn inside a single database transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Mailer delivers outbound mail.
type Mailer interface {
	Send(ctx context.Context, msg mailer.Message) error
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// AccountService runs the registration, verification and password reset workflows.
type AccountService struct {
	reader      UserReader
	writer      UserWriter
	tx          Transactor
	mailer      Mailer
	kafkaWriter KafkaWriter

	newToken func() (string, error)
	now      func() time.Time
}

// NewAccountService creates a new AccountService. kafkaWriter may be nil.
func NewAccountService(
	reader UserReader,
	writer UserWriter,
	tx Transactor,
	mailer Mailer,
	kafkaWriter KafkaWriter,
) *AccountService {
	return &AccountService{
		reader:      reader,
		writer:      writer,
		tx:          tx,
		mailer:      mailer,
		kafkaWriter: kafkaWriter,
		newToken:    tokens.New,
		now:         time.Now,
	}
}

// Register stores a new user with a pending verification token and mails
// the verification link. baseURL is the scheme and host links point to.
func (s *AccountService) Register(ctx context.Context, user *models.User, baseURL string) error {
	token, err := s.newToken()
	if err != nil {
		logger.Log.Errorw("failed to generate verify token", "error", err)
		return err
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.writer.Create(ctx, user); err != nil {
			return err
		}
		user.SetVerifyToken(token, tokens.ExpiresAt(s.now()))
		return s.writer.Save(ctx, user)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrUniqueViolation) {
			logger.Log.Infow("user already exists", "username", user.Username, "employeeID", user.EmployeeID)
			return ErrUserAlreadyExists
		}
		logger.Log.Errorw("failed to register user", "username", user.Username, "error", err)
		return err
	}

	mailErr := s.send(ctx, registrationMail(user, baseURL, token))
	s.publishEvent(ctx, models.EventUserRegistered, user)

	return mailErr
}

// RequestPasswordReset attaches a reset token to the account registered
// under email and mails the reset link.
func (s *AccountService) RequestPasswordReset(ctx context.Context, email, baseURL string) error {
	user, err := s.reader.FindByUsername(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to get user", "email", email, "error", err)
		return err
	}
	if user == nil {
		logger.Log.Infow("password reset for unknown account", "email", email)
		return ErrUserDoesNotExist
	}

	token, err := s.newToken()
	if err != nil {
		logger.Log.Errorw("failed to generate reset token", "error", err)
		return err
	}

	user.SetResetToken(token, tokens.ExpiresAt(s.now()))
	if err := s.writer.Save(ctx, user); err != nil {
		logger.Log.Errorw("failed to save reset token", "userID", user.UserID, "error", err)
		return err
	}

	mailErr := s.send(ctx, resetRequestMail(user, baseURL, token))
	s.publishEvent(ctx, models.EventPasswordResetRequested, user)

	return mailErr
}

// CheckResetToken reports whether token is a live reset token.
func (s *AccountService) CheckResetToken(ctx context.Context, token string) error {
	_, err := s.findByToken(ctx, s.reader.FindByResetToken, token)
	return err
}

// ResetPassword consumes the reset token and sets the new password. The
// returned user is non-nil whenever the password was changed, even if the
// confirmation mail failed.
func (s *AccountService) ResetPassword(ctx context.Context, token, password string) (*models.User, error) {
	user, err := s.consume(ctx, s.reader.FindByResetToken, s.writer.ConsumeResetToken, token, password)
	if err != nil {
		return nil, err
	}

	mailErr := s.send(ctx, passwordChangedMail(user))
	s.publishEvent(ctx, models.EventPasswordReset, user)

	return user, mailErr
}

// CheckVerifyToken reports whether token is a live verification token.
func (s *AccountService) CheckVerifyToken(ctx context.Context, token string) error {
	_, err := s.findByToken(ctx, s.reader.FindByVerifyToken, token)
	return err
}

// VerifyAccount consumes the verification token and sets the password
// chosen by the employee. The returned user is non-nil whenever the account
// was verified, even if the confirmation mail failed.
func (s *AccountService) VerifyAccount(ctx context.Context, token, password string) (*models.User, error) {
	user, err := s.consume(ctx, s.reader.FindByVerifyToken, s.writer.ConsumeVerifyToken, token, password)
	if err != nil {
		return nil, err
	}

	mailErr := s.send(ctx, accountVerifiedMail(user))
	s.publishEvent(ctx, models.EventUserVerified, user)

	return user, mailErr
}

type tokenFinder func(ctx context.Context, token string, now time.Time) (*models.User, error)

type tokenConsumer func(ctx context.Context, user *models.User, token string, now time.Time) (bool, error)

func (s *AccountService) findByToken(ctx context.Context, find tokenFinder, token string) (*models.User, error) {
	user, err := find(ctx, token, s.now())
	if err != nil {
		logger.Log.Errorw("failed to look up token", "error", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrTokenInvalidOrExpired
	}
	return user, nil
}

// consume re-validates token, applies password and clears the token in one
// conditional write. A concurrent consumer makes the write miss.
func (s *AccountService) consume(ctx context.Context, find tokenFinder, apply tokenConsumer, token, password string) (*models.User, error) {
	user, err := s.findByToken(ctx, find, token)
	if err != nil {
		return nil, err
	}

	user.SetPassword(password)
	ok, err := apply(ctx, user, token, s.now())
	if err != nil {
		logger.Log.Errorw("failed to consume token", "userID", user.UserID, "error", err)
		return nil, err
	}
	if !ok {
		logger.Log.Infow("token already consumed", "userID", user.UserID)
		return nil, ErrTokenInvalidOrExpired
	}

	return user, nil
}

// send delivers msg. Failures are logged and returned joined with ErrMailNotSent.
func (s *AccountService) send(ctx context.Context, msg mailer.Message) error {
	if err := s.mailer.Send(ctx, msg); err != nil {
		logger.Log.Errorw("failed to send mail", "to", msg.To, "subject", msg.Subject, "error", err)
		return errors.Join(ErrMailNotSent, err)
	}
	return nil
}

// publishEvent publishes an account event to Kafka.
func (s *AccountService) publishEvent(ctx context.Context, eventType string, user *models.User) {
	event := models.AccountEvent{
		EventID:   uuid.NewString(),
		Type:      eventType,
		UserID:    user.UserID.String(),
		Username:  user.Username,
		Timestamp: s.now().Unix(),
	}

	if s.kafkaWriter == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publishing", "event_id", event.EventID, "type", eventType)
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("Failed to marshal account event for Kafka", "event_id", event.EventID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.UserID),
		Value: data,
	}

	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish account event to Kafka", "event_id", event.EventID, "error", err)
	} else {
		logger.Log.Infow("Account event published to Kafka", "event_id", event.EventID, "type", eventType)
	}
}
