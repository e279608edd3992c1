package sessions

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/timekeeper/internal/logger"
	"github.com/sbilibin2017/timekeeper/internal/models"
)

//go:generate mockgen -source=sessions.go -destination=sessions_mock.go -package=sessions

// Store persists session records.
type Store interface {
	Get(ctx context.Context, id string) (*models.Session, error)
	Save(ctx context.Context, s *models.Session) error
	Delete(ctx context.Context, id string) error
}

// Signer turns a session ID into a cookie value and back.
type Signer interface {
	Generate(ctx context.Context, sessionID string) (string, error)
	GetSessionID(ctx context.Context, token string) (string, error)
}

// Manager handles the session cookie and its server-side record.
type Manager struct {
	store      Store
	signer     Signer
	cookieName string
	ttl        time.Duration
}

// NewManager creates a session manager.
func NewManager(store Store, signer Signer, cookieName string, ttl time.Duration) *Manager {
	return &Manager{
		store:      store,
		signer:     signer,
		cookieName: cookieName,
		ttl:        ttl,
	}
}

// Load returns the session referenced by the request cookie. A missing,
// invalid or expired cookie yields a fresh anonymous session that is not
// stored until Save is called.
func (m *Manager) Load(r *http.Request) (*models.Session, error) {
	ctx := r.Context()

	cookie, err := r.Cookie(m.cookieName)
	if err != nil {
		return m.fresh(), nil
	}

	sid, err := m.signer.GetSessionID(ctx, cookie.Value)
	if err != nil {
		logger.Log.Debugw("ignoring invalid session cookie", "error", err)
		return m.fresh(), nil
	}

	s, err := m.store.Get(ctx, sid)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return m.fresh(), nil
	}

	return s, nil
}

// Save stores the record and (re)sets the cookie.
func (m *Manager) Save(ctx context.Context, w http.ResponseWriter, s *models.Session) error {
	if err := m.store.Save(ctx, s); err != nil {
		return err
	}

	token, err := m.signer.Generate(ctx, s.ID)
	if err != nil {
		return err
	}

	http.SetCookie(w, m.cookie(token, int(m.ttl.Seconds())))
	return nil
}

// LogIn attaches the user to the session under a new session ID. The old
// record is removed; pending flashes are kept.
func (m *Manager) LogIn(ctx context.Context, w http.ResponseWriter, s *models.Session, userID string) error {
	oldID := s.ID

	s.ID = uuid.NewString()
	s.UserID = userID

	if err := m.Save(ctx, w, s); err != nil {
		return err
	}

	if err := m.store.Delete(ctx, oldID); err != nil {
		logger.Log.Warnw("failed to delete rotated session", "error", err)
	}

	return nil
}

// LogOut deletes the record and expires the cookie. The cookie is expired
// even when the record could not be deleted.
func (m *Manager) LogOut(ctx context.Context, w http.ResponseWriter, s *models.Session) error {
	err := m.store.Delete(ctx, s.ID)

	s.UserID = ""
	http.SetCookie(w, m.cookie("", -1))
	return err
}

func (m *Manager) fresh() *models.Session {
	return models.NewSession(uuid.NewString())
}

func (m *Manager) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     m.cookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
