package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/timekeeper/internal/logger"
	"github.com/sbilibin2017/timekeeper/internal/models"
)

// Error variables
var (
	ErrUniqueViolation = errors.New("unique constraint violation")
	ErrUserNotFound    = errors.New("user not found")
)

// uniqueViolationCode is the Postgres SQLSTATE for unique_violation.
const uniqueViolationCode = "23505"

var userColumns = []string{
	"user_id", "username", "password", "employee_id",
	"first_name", "last_name", "phone", "department", "job_title",
	"level", "team_leader", "duration", "picture",
	"verify_user_token", "verify_user_expires",
	"reset_password_token", "reset_password_expires",
	"created_at", "updated_at",
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// PasswordHasher hashes plaintext passwords before they are stored.
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

type UserReadRepository struct {
	db *sqlx.DB
}

func NewUserReadRepository(db *sqlx.DB) *UserReadRepository {
	return &UserReadRepository{db: db}
}

// FindByUsername returns the user with the given username, or nil.
func (r *UserReadRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, sq.Eq{"username": username})
}

// FindByID returns the user with the given ID, or nil.
func (r *UserReadRepository) FindByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return r.findOne(ctx, sq.Eq{"user_id": userID.String()})
}

// FindByVerifyToken returns the user holding an unexpired verification token, or nil.
func (r *UserReadRepository) FindByVerifyToken(ctx context.Context, token string, now time.Time) (*models.User, error) {
	return r.findOne(ctx, sq.And{
		sq.Eq{"verify_user_token": token},
		sq.Gt{"verify_user_expires": now},
	})
}

// FindByResetToken returns the user holding an unexpired reset token, or nil.
func (r *UserReadRepository) FindByResetToken(ctx context.Context, token string, now time.Time) (*models.User, error) {
	return r.findOne(ctx, sq.And{
		sq.Eq{"reset_password_token": token},
		sq.Gt{"reset_password_expires": now},
	})
}

func (r *UserReadRepository) findOne(ctx context.Context, pred sq.Sqlizer) (*models.User, error) {
	query, args, err := psql.Select(userColumns...).From("users").Where(pred).Limit(1).ToSql()
	if err != nil {
		return nil, err
	}

	var user models.User
	err = sqlx.GetContext(ctx, executor(ctx, r.db), &user, query, args...)

	logger.Log.Debugw("user query",
		"query", query,
		"found", err == nil,
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

type UserWriteRepository struct {
	db     *sqlx.DB
	hasher PasswordHasher
}

func NewUserWriteRepository(db *sqlx.DB, hasher PasswordHasher) *UserWriteRepository {
	return &UserWriteRepository{db: db, hasher: hasher}
}

// beforeSave runs on every write. It hashes the password when a new
// plaintext value was set and leaves stored hashes untouched.
func (r *UserWriteRepository) beforeSave(user *models.User) error {
	if !user.PasswordChanged() {
		return nil
	}
	hash, err := r.hasher.Hash(user.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.MarkPasswordHashed(hash)
	return nil
}

// Create inserts a new user. Duplicate usernames or employee IDs fail with
// ErrUniqueViolation.
func (r *UserWriteRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.beforeSave(user); err != nil {
		return err
	}
	if user.UserID == uuid.Nil {
		user.UserID = uuid.New()
	}
	now := time.Now().UTC()
	user.CreatedAt, user.UpdatedAt = now, now

	values := mutableValues(user)
	values["user_id"] = user.UserID
	values["username"] = user.Username
	values["employee_id"] = user.EmployeeID
	values["created_at"] = user.CreatedAt

	query, args, err := psql.Insert("users").SetMap(values).ToSql()
	if err != nil {
		return err
	}

	_, err = executor(ctx, r.db).ExecContext(ctx, query, args...)

	logger.Log.Infow("user insert",
		"query", oneLine(query),
		"user_id", user.UserID,
		"error", err,
	)

	return translateError(err)
}

// Save writes every mutable field of an existing user.
func (r *UserWriteRepository) Save(ctx context.Context, user *models.User) error {
	if err := r.beforeSave(user); err != nil {
		return err
	}
	user.UpdatedAt = time.Now().UTC()

	query, args, err := psql.Update("users").
		SetMap(mutableValues(user)).
		Where(sq.Eq{"user_id": user.UserID.String()}).
		ToSql()
	if err != nil {
		return err
	}

	res, err := executor(ctx, r.db).ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow("user update",
		"query", oneLine(query),
		"user_id", user.UserID,
		"result", rowsAffected,
		"error", err,
	)

	if err != nil {
		return translateError(err)
	}
	if rowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// ConsumeVerifyToken stores the user's new password and clears the
// verification token in one statement, provided token is still set and
// unexpired at now. It reports whether the token was consumed.
func (r *UserWriteRepository) ConsumeVerifyToken(ctx context.Context, user *models.User, token string, now time.Time) (bool, error) {
	consumed, err := r.consume(ctx, user, "verify_user_token", "verify_user_expires", token, now)
	if consumed {
		user.ClearVerifyToken()
	}
	return consumed, err
}

// ConsumeResetToken is ConsumeVerifyToken for the password reset token.
func (r *UserWriteRepository) ConsumeResetToken(ctx context.Context, user *models.User, token string, now time.Time) (bool, error) {
	consumed, err := r.consume(ctx, user, "reset_password_token", "reset_password_expires", token, now)
	if consumed {
		user.ClearResetToken()
	}
	return consumed, err
}

func (r *UserWriteRepository) consume(ctx context.Context, user *models.User, tokenColumn, expiresColumn, token string, now time.Time) (bool, error) {
	if err := r.beforeSave(user); err != nil {
		return false, err
	}
	user.UpdatedAt = now.UTC()

	query, args, err := psql.Update("users").
		Set("password", user.Password).
		Set(tokenColumn, nil).
		Set(expiresColumn, nil).
		Set("updated_at", user.UpdatedAt).
		Where(sq.Eq{"user_id": user.UserID.String(), tokenColumn: token}).
		Where(sq.Gt{expiresColumn: now}).
		ToSql()
	if err != nil {
		return false, err
	}

	res, err := executor(ctx, r.db).ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow("user token consume",
		"query", oneLine(query),
		"user_id", user.UserID,
		"result", rowsAffected,
		"error", err,
	)

	if err != nil {
		return false, err
	}
	return rowsAffected == 1, nil
}

func mutableValues(user *models.User) map[string]interface{} {
	return map[string]interface{}{
		"password":               user.Password,
		"first_name":             user.FirstName,
		"last_name":              user.LastName,
		"phone":                  user.Phone,
		"department":             user.Department,
		"job_title":              user.JobTitle,
		"level":                  user.Level,
		"team_leader":            user.TeamLeader,
		"duration":               user.Duration,
		"picture":                user.Picture,
		"verify_user_token":      user.VerifyUserToken,
		"verify_user_expires":    user.VerifyUserExpires,
		"reset_password_token":   user.ResetPasswordToken,
		"reset_password_expires": user.ResetPasswordExpires,
		"updated_at":             user.UpdatedAt,
	}
}

func translateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return fmt.Errorf("%w: %s", ErrUniqueViolation, pgErr.ConstraintName)
	}
	return err
}

func oneLine(query string) string {
	return strings.Join(strings.Fields(query), " ")
}
