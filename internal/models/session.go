package models

// Flash kinds rendered by the views.
const (
	FlashInfo    = "info"
	FlashError   = "error"
	FlashSuccess = "success"
)

// Session is the server-side session record.
type Session struct {
	ID      string              `json:"-"`                 // Session ID, also the store key
	UserID  string              `json:"user_id,omitempty"` // Serialized principal, empty when anonymous
	Flashes map[string][]string `json:"flashes,omitempty"` // Pending one-time messages by kind
}

// NewSession returns an anonymous session with the given ID.
func NewSession(id string) *Session {
	return &Session{ID: id}
}

// IsAuthenticated reports whether a principal is attached.
func (s *Session) IsAuthenticated() bool {
	return s.UserID != ""
}

// AddFlash queues a message shown on the next rendered page.
func (s *Session) AddFlash(kind, message string) {
	if s.Flashes == nil {
		s.Flashes = make(map[string][]string)
	}
	s.Flashes[kind] = append(s.Flashes[kind], message)
}

// PopFlashes returns all queued messages and clears them.
func (s *Session) PopFlashes() map[string][]string {
	flashes := s.Flashes
	s.Flashes = nil
	return flashes
}
