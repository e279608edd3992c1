package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/timekeeper/internal/mailer"
	"github.com/sbilibin2017/timekeeper/internal/models"
	"github.com/sbilibin2017/timekeeper/internal/repositories"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testToken   = "0123456789abcdef0123456789abcdef01234567"
	testBaseURL = "http://localhost:8080"
)

var testNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type accountMocks struct {
	reader *MockUserReader
	writer *MockUserWriter
	tx     *MockTransactor
	mailer *MockMailer
	kafka  *MockKafkaWriter
}

func newTestAccountService(t *testing.T) (*AccountService, accountMocks) {
	ctrl := gomock.NewController(t)

	m := accountMocks{
		reader: NewMockUserReader(ctrl),
		writer: NewMockUserWriter(ctrl),
		tx:     NewMockTransactor(ctrl),
		mailer: NewMockMailer(ctrl),
		kafka:  NewMockKafkaWriter(ctrl),
	}

	svc := NewAccountService(m.reader, m.writer, m.tx, m.mailer, m.kafka)
	svc.newToken = func() (string, error) { return testToken, nil }
	svc.now = func() time.Time { return testNow }

	return svc, m
}

func runTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func employee() *models.User {
	u := &models.User{
		UserID:     uuid.New(),
		Username:   "alice@example.com",
		EmployeeID: "E-1",
		FirstName:  "Alice",
		LastName:   "Smith",
	}
	u.SetPassword("P@ssw0rd")
	return u
}

func TestAccountService_Register(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc, m := newTestAccountService(t)
		user := employee()

		m.tx.EXPECT().WithinTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx)
		m.writer.EXPECT().Create(gomock.Any(), user).Return(nil)
		m.writer.EXPECT().Save(gomock.Any(), user).DoAndReturn(func(ctx context.Context, u *models.User) error {
			require.NotNil(t, u.VerifyUserToken)
			assert.Equal(t, testToken, *u.VerifyUserToken)
			assert.Equal(t, testNow.Add(time.Hour), *u.VerifyUserExpires)
			return nil
		})
		m.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, msg mailer.Message) error {
			assert.Equal(t, "alice@example.com", msg.To)
			assert.Contains(t, msg.Body, testBaseURL+"/validate/"+testToken)
			return nil
		})
		m.kafka.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, msgs ...kafka.Message) error {
			require.Len(t, msgs, 1)
			var event models.AccountEvent
			require.NoError(t, json.Unmarshal(msgs[0].Value, &event))
			assert.Equal(t, models.EventUserRegistered, event.Type)
			assert.Equal(t, user.UserID.String(), event.UserID)
			return nil
		})

		assert.NoError(t, svc.Register(context.Background(), user, testBaseURL))
	})

	t.Run("duplicate user sends no mail", func(t *testing.T) {
		svc, m := newTestAccountService(t)

		m.tx.EXPECT().WithinTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx)
		m.writer.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(fmt.Errorf("%w: users_username_key", repositories.ErrUniqueViolation))

		err := svc.Register(context.Background(), employee(), testBaseURL)
		assert.ErrorIs(t, err, ErrUserAlreadyExists)
	})

	t.Run("store error", func(t *testing.T) {
		svc, m := newTestAccountService(t)

		m.tx.EXPECT().WithinTx(gomock.Any(), gomock.Any()).Return(errors.New("db error"))

		err := svc.Register(context.Background(), employee(), testBaseURL)
		assert.EqualError(t, err, "db error")
	})

	t.Run("mail failure keeps the account", func(t *testing.T) {
		svc, m := newTestAccountService(t)

		m.tx.EXPECT().WithinTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx)
		m.writer.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		m.writer.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
		m.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return(errors.New("smtp down"))
		m.kafka.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(nil)

		err := svc.Register(context.Background(), employee(), testBaseURL)
		assert.ErrorIs(t, err, ErrMailNotSent)
	})
}

func TestAccountService_RequestPasswordReset(t *testing.T) {
	t.Run("unknown account sends no mail", func(t *testing.T) {
		svc, m := newTestAccountService(t)

		m.reader.EXPECT().FindByUsername(gomock.Any(), "ghost@example.com").Return(nil, nil)

		err := svc.RequestPasswordReset(context.Background(), "ghost@example.com", testBaseURL)
		assert.ErrorIs(t, err, ErrUserDoesNotExist)
	})

	t.Run("success", func(t *testing.T) {
		svc, m := newTestAccountService(t)
		user := employee()

		m.reader.EXPECT().FindByUsername(gomock.Any(), user.Username).Return(user, nil)
		m.writer.EXPECT().Save(gomock.Any(), user).DoAndReturn(func(ctx context.Context, u *models.User) error {
			require.NotNil(t, u.ResetPasswordToken)
			assert.Equal(t, testToken, *u.ResetPasswordToken)
			assert.Equal(t, testNow.Add(time.Hour), *u.ResetPasswordExpires)
			return nil
		})
		m.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, msg mailer.Message) error {
			assert.Equal(t, user.Username, msg.To)
			assert.Contains(t, msg.Body, testBaseURL+"/reset/"+testToken)
			return nil
		})
		m.kafka.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(nil)

		assert.NoError(t, svc.RequestPasswordReset(context.Background(), user.Username, testBaseURL))
	})
}

func TestAccountService_ResetPassword(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc, m := newTestAccountService(t)
		user := employee()
		user.MarkPasswordHashed("$2a$10$old")

		m.reader.EXPECT().FindByResetToken(gomock.Any(), testToken, testNow).Return(user, nil)
		m.writer.EXPECT().ConsumeResetToken(gomock.Any(), user, testToken, testNow).
			DoAndReturn(func(ctx context.Context, u *models.User, token string, now time.Time) (bool, error) {
				assert.True(t, u.PasswordChanged())
				assert.Equal(t, "n3w-pass", u.Password)
				return true, nil
			})
		m.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, msg mailer.Message) error {
			assert.Equal(t, "Your password has been changed", msg.Subject)
			return nil
		})
		m.kafka.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(nil)

		got, err := svc.ResetPassword(context.Background(), testToken, "n3w-pass")
		require.NoError(t, err)
		assert.Equal(t, user.UserID, got.UserID)
	})

	t.Run("unknown or expired token", func(t *testing.T) {
		svc, m := newTestAccountService(t)

		m.reader.EXPECT().FindByResetToken(gomock.Any(), testToken, testNow).Return(nil, nil)

		got, err := svc.ResetPassword(context.Background(), testToken, "n3w-pass")
		assert.ErrorIs(t, err, ErrTokenInvalidOrExpired)
		assert.Nil(t, got)
	})

	t.Run("token consumed concurrently", func(t *testing.T) {
		svc, m := newTestAccountService(t)
		user := employee()

		m.reader.EXPECT().FindByResetToken(gomock.Any(), testToken, testNow).Return(user, nil)
		m.writer.EXPECT().ConsumeResetToken(gomock.Any(), user, testToken, testNow).Return(false, nil)

		got, err := svc.ResetPassword(context.Background(), testToken, "n3w-pass")
		assert.ErrorIs(t, err, ErrTokenInvalidOrExpired)
		assert.Nil(t, got)
	})

	t.Run("mail failure still returns user", func(t *testing.T) {
		svc, m := newTestAccountService(t)
		user := employee()

		m.reader.EXPECT().FindByResetToken(gomock.Any(), testToken, testNow).Return(user, nil)
		m.writer.EXPECT().ConsumeResetToken(gomock.Any(), user, testToken, testNow).Return(true, nil)
		m.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return(errors.New("smtp down"))
		m.kafka.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(nil)

		got, err := svc.ResetPassword(context.Background(), testToken, "n3w-pass")
		assert.ErrorIs(t, err, ErrMailNotSent)
		assert.NotNil(t, got)
	})
}

func TestAccountService_VerifyAccount(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc, m := newTestAccountService(t)
		user := employee()

		m.reader.EXPECT().FindByVerifyToken(gomock.Any(), testToken, testNow).Return(user, nil)
		m.writer.EXPECT().ConsumeVerifyToken(gomock.Any(), user, testToken, testNow).Return(true, nil)
		m.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, msg mailer.Message) error {
			assert.Equal(t, "Your account has been verified", msg.Subject)
			assert.Contains(t, msg.Body, "Alice Smith")
			return nil
		})
		m.kafka.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, msgs ...kafka.Message) error {
			var event models.AccountEvent
			require.NoError(t, json.Unmarshal(msgs[0].Value, &event))
			assert.Equal(t, models.EventUserVerified, event.Type)
			return nil
		})

		got, err := svc.VerifyAccount(context.Background(), testToken, "P@ssw0rd")
		require.NoError(t, err)
		assert.Equal(t, user.UserID, got.UserID)
	})

	t.Run("invalid token", func(t *testing.T) {
		svc, m := newTestAccountService(t)

		m.reader.EXPECT().FindByVerifyToken(gomock.Any(), "bogus", testNow).Return(nil, nil)

		_, err := svc.VerifyAccount(context.Background(), "bogus", "P@ssw0rd")
		assert.ErrorIs(t, err, ErrTokenInvalidOrExpired)
	})

	t.Run("store error", func(t *testing.T) {
		svc, m := newTestAccountService(t)

		m.reader.EXPECT().FindByVerifyToken(gomock.Any(), testToken, testNow).Return(nil, errors.New("db error"))

		_, err := svc.VerifyAccount(context.Background(), testToken, "P@ssw0rd")
		assert.EqualError(t, err, "db error")
	})
}

func TestAccountService_CheckTokens(t *testing.T) {
	svc, m := newTestAccountService(t)

	m.reader.EXPECT().FindByResetToken(gomock.Any(), "live", testNow).Return(employee(), nil)
	m.reader.EXPECT().FindByResetToken(gomock.Any(), "dead", testNow).Return(nil, nil)
	m.reader.EXPECT().FindByVerifyToken(gomock.Any(), "live", testNow).Return(employee(), nil)
	m.reader.EXPECT().FindByVerifyToken(gomock.Any(), "dead", testNow).Return(nil, nil)

	assert.NoError(t, svc.CheckResetToken(context.Background(), "live"))
	assert.ErrorIs(t, svc.CheckResetToken(context.Background(), "dead"), ErrTokenInvalidOrExpired)
	assert.NoError(t, svc.CheckVerifyToken(context.Background(), "live"))
	assert.ErrorIs(t, svc.CheckVerifyToken(context.Background(), "dead"), ErrTokenInvalidOrExpired)
}

func TestAccountService_PublishEvent(t *testing.T) {
	t.Run("no writer configured", func(t *testing.T) {
		svc, _ := newTestAccountService(t)
		svc.kafkaWriter = nil

		assert.NotPanics(t, func() {
			svc.publishEvent(context.Background(), models.EventPasswordReset, employee())
		})
	})

	t.Run("writer error is swallowed", func(t *testing.T) {
		svc, m := newTestAccountService(t)

		m.kafka.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(errors.New("kafka error"))

		svc.publishEvent(context.Background(), models.EventPasswordReset, employee())
	})
}
