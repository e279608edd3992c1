package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/timekeeper/internal/logger"
	"github.com/sbilibin2017/timekeeper/internal/models"
)

// SessionRepository keeps session records in Redis under "session:<id>".
type SessionRepository struct {
	client *redis.Client
	exp    time.Duration // expiration applied on every save
}

// NewSessionRepository creates a new repository instance with the given TTL
func NewSessionRepository(client *redis.Client, expiration time.Duration) *SessionRepository {
	return &SessionRepository{
		client: client,
		exp:    expiration,
	}
}

func sessionKey(id string) string {
	return "session:" + id
}

// Get loads a session record. A missing or expired record yields nil, nil.
func (r *SessionRepository) Get(ctx context.Context, id string) (*models.Session, error) {
	key := sessionKey(id)

	val, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		logger.Log.Errorw("failed to get session",
			"key", key,
			"error", err,
		)
		return nil, err
	}

	var s models.Session
	if err := json.Unmarshal(val, &s); err != nil {
		logger.Log.Warnw("discarding corrupt session",
			"key", key,
			"error", err,
		)
		return nil, nil
	}
	s.ID = id

	return &s, nil
}

// Save stores the session record and refreshes its expiration.
func (r *SessionRepository) Save(ctx context.Context, s *models.Session) error {
	key := sessionKey(s.ID)

	val, err := json.Marshal(s)
	if err != nil {
		return err
	}

	err = r.client.Set(ctx, key, val, r.exp).Err()
	logger.Log.Debugw("session saved",
		"key", key,
		"authenticated", s.IsAuthenticated(),
		"error", err,
	)

	return err
}

// Delete removes the session record. Deleting a missing record is not an error.
func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	key := sessionKey(id)
	err := r.client.Del(ctx, key).Err()

	logger.Log.Debugw("session deleted",
		"key", key,
		"error", err,
	)

	return err
}
