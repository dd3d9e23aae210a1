// Package session wraps gorilla cookie sessions behind the small surface the
// workflow engine needs, plus one-shot flash messages for the page layer.
package session

import (
	"log"
	"net/http"

	"github.com/gorilla/sessions"
)

const (
	cookieName  = "goboard_session"
	keyUserID   = "user_id"
	keyOTPEmail = "otp_email"
)

// Manager creates per-request Session handles from the cookie store.
type Manager struct {
	store *sessions.CookieStore
}

func NewManager(secret string) *Manager {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
	}
	return &Manager{store: store}
}

// Get returns the browser's session, or a fresh one if the cookie is absent
// or fails to decode.
func (m *Manager) Get(w http.ResponseWriter, r *http.Request) *Session {
	s, err := m.store.Get(r, cookieName)
	if err != nil {
		log.Printf("decoding session cookie: %v", err)
	}
	return &Session{s: s, w: w, r: r}
}

// Session is one browser's session scope. Mutations are buffered until Save.
type Session struct {
	s *sessions.Session
	w http.ResponseWriter
	r *http.Request
}

func (s *Session) UserID() (string, bool) {
	id, ok := s.s.Values[keyUserID].(string)
	return id, ok && id != ""
}

func (s *Session) SetUserID(id string) {
	s.s.Values[keyUserID] = id
}

func (s *Session) OTPEmail() (string, bool) {
	email, ok := s.s.Values[keyOTPEmail].(string)
	return email, ok && email != ""
}

func (s *Session) SetOTPEmail(email string) {
	s.s.Values[keyOTPEmail] = email
}

func (s *Session) DeleteOTPEmail() {
	delete(s.s.Values, keyOTPEmail)
}

// Clear empties the whole session scope, flashes included.
func (s *Session) Clear() {
	s.s.Values = make(map[any]any)
}

// Flash queues a one-shot message that survives one redirect.
func (s *Session) Flash(msg string) {
	s.s.AddFlash(msg)
}

// Flashes drains the queued messages.
func (s *Session) Flashes() []string {
	raw := s.s.Flashes()
	msgs := make([]string, 0, len(raw))
	for _, f := range raw {
		if m, ok := f.(string); ok {
			msgs = append(msgs, m)
		}
	}
	return msgs
}

// Save writes the session cookie. Call once per request, before the response
// body is written.
func (s *Session) Save() {
	if err := s.s.Save(s.r, s.w); err != nil {
		log.Printf("saving session: %v", err)
	}
}
