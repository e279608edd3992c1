package repositories

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/timekeeper/internal/migrations"
	"github.com/sbilibin2017/timekeeper/internal/models"
	"github.com/sbilibin2017/timekeeper/internal/passwords"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/crypto/bcrypt"
)

func setupPostgres(t *testing.T) *sqlx.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping Postgres integration test in short mode")
	}
	ctx := context.Background()

	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_PASSWORD": "secret", "POSTGRES_DB": "testdb", "POSTGRES_USER": "postgres"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}

	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://postgres:secret@%s:%s/testdb?sslmode=disable", host, port.Port())

	var db *sqlx.DB
	for i := 0; i < 10; i++ {
		db, err = sqlx.Connect("pgx", dsn)
		if err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, migrations.Up(ctx, db.DB))
	return db
}

func newEmployee(username, employeeID string) *models.User {
	return (models.RegisterForm{
		Username:   username,
		Password:   "P@ssw0rd",
		EmployeeID: employeeID,
		FirstName:  "Alice",
		LastName:   "Smith",
		Department: "R&D",
		JobTitle:   "Engineer",
		Level:      "L2",
		TeamLeader: "Bob",
		Duration:   "full-time",
	}).User()
}

func TestUserRepository_Postgres(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()
	hasher := passwords.NewHasher(bcrypt.MinCost)

	reader := NewUserReadRepository(db)
	writer := NewUserWriteRepository(db, hasher)

	u := newEmployee("alice@example.com", "E-1")
	require.NoError(t, writer.Create(ctx, u))

	t.Run("password is stored hashed", func(t *testing.T) {
		stored, err := reader.FindByUsername(ctx, "alice@example.com")
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.NotEqual(t, "P@ssw0rd", stored.Password)
		assert.True(t, hasher.Compare(stored.Password, "P@ssw0rd"))
		assert.False(t, hasher.Compare(stored.Password, "wrong-pass"))
	})

	t.Run("save without password change keeps hash", func(t *testing.T) {
		stored, err := reader.FindByID(ctx, u.UserID)
		require.NoError(t, err)
		before := stored.Password

		stored.Department = "Ops"
		require.NoError(t, writer.Save(ctx, stored))

		after, err := reader.FindByID(ctx, u.UserID)
		require.NoError(t, err)
		assert.Equal(t, before, after.Password)
		assert.Equal(t, "Ops", after.Department)
	})

	t.Run("duplicate username and employee id", func(t *testing.T) {
		err := writer.Create(ctx, newEmployee("alice@example.com", "E-2"))
		assert.ErrorIs(t, err, ErrUniqueViolation)

		err = writer.Create(ctx, newEmployee("other@example.com", "E-1"))
		assert.ErrorIs(t, err, ErrUniqueViolation)
	})

	t.Run("reset token is single use", func(t *testing.T) {
		now := time.Now().UTC()
		stored, err := reader.FindByID(ctx, u.UserID)
		require.NoError(t, err)
		stored.SetResetToken("reset-token", now.Add(time.Hour))
		require.NoError(t, writer.Save(ctx, stored))

		found, err := reader.FindByResetToken(ctx, "reset-token", now)
		require.NoError(t, err)
		require.NotNil(t, found)

		found.SetPassword("n3w-pass")
		consumed, err := writer.ConsumeResetToken(ctx, found, "reset-token", now)
		require.NoError(t, err)
		assert.True(t, consumed)

		again, err := reader.FindByResetToken(ctx, "reset-token", now)
		require.NoError(t, err)
		assert.Nil(t, again)

		stale, err := reader.FindByID(ctx, u.UserID)
		require.NoError(t, err)
		stale.SetPassword("replayed")
		consumed, err = writer.ConsumeResetToken(ctx, stale, "reset-token", now)
		require.NoError(t, err)
		assert.False(t, consumed)

		final, err := reader.FindByID(ctx, u.UserID)
		require.NoError(t, err)
		assert.True(t, hasher.Compare(final.Password, "n3w-pass"))
	})

	t.Run("expired verify token is not found", func(t *testing.T) {
		now := time.Now().UTC()
		stored, err := reader.FindByID(ctx, u.UserID)
		require.NoError(t, err)
		stored.SetVerifyToken("verify-token", now.Add(-time.Second))
		require.NoError(t, writer.Save(ctx, stored))

		found, err := reader.FindByVerifyToken(ctx, "verify-token", now)
		require.NoError(t, err)
		assert.Nil(t, found)

		stored.SetPassword("whatever")
		consumed, err := writer.ConsumeVerifyToken(ctx, stored, "verify-token", now)
		require.NoError(t, err)
		assert.False(t, consumed)
	})
}

func TestUserRepository_ConcurrentRegistration(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()
	writer := NewUserWriteRepository(db, passwords.NewHasher(bcrypt.MinCost))
	tr := NewTransactor(db)

	const attempts = 2
	errs := make([]error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = tr.WithinTx(ctx, func(ctx context.Context) error {
				return writer.Create(ctx, newEmployee("alice", fmt.Sprintf("E-%d", i)))
			})
		}(i)
	}
	wg.Wait()

	var ok, rejected int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case assert.ErrorIs(t, err, ErrUniqueViolation):
			rejected++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, rejected)

	var count int
	require.NoError(t, db.GetContext(ctx, &count, "SELECT COUNT(*) FROM users WHERE username = $1", "alice"))
	assert.Equal(t, 1, count)
}
