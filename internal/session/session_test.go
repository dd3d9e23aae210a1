package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, m *Manager, from *httptest.ResponseRecorder) *Session {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range from.Result().Cookies() {
		r.AddCookie(c)
	}
	return m.Get(httptest.NewRecorder(), r)
}

func TestSessionRoundTrip(t *testing.T) {
	m := NewManager("test-secret")

	w := httptest.NewRecorder()
	s := m.Get(w, httptest.NewRequest(http.MethodGet, "/", nil))
	s.SetUserID("abc123")
	s.SetOTPEmail("a@x.com")
	s.Save()
	require.NotEmpty(t, w.Result().Cookies())

	s2 := roundTrip(t, m, w)
	id, ok := s2.UserID()
	assert.True(t, ok)
	assert.Equal(t, "abc123", id)
	email, ok := s2.OTPEmail()
	assert.True(t, ok)
	assert.Equal(t, "a@x.com", email)
}

func TestClearEmptiesEverything(t *testing.T) {
	m := NewManager("test-secret")

	w := httptest.NewRecorder()
	s := m.Get(w, httptest.NewRequest(http.MethodGet, "/", nil))
	s.SetUserID("abc123")
	s.SetOTPEmail("a@x.com")
	s.Clear()
	s.Save()

	s2 := roundTrip(t, m, w)
	_, ok := s2.UserID()
	assert.False(t, ok)
	_, ok = s2.OTPEmail()
	assert.False(t, ok)
}

func TestDeleteOTPEmailKeepsUser(t *testing.T) {
	m := NewManager("test-secret")

	w := httptest.NewRecorder()
	s := m.Get(w, httptest.NewRequest(http.MethodGet, "/", nil))
	s.SetUserID("abc123")
	s.SetOTPEmail("a@x.com")
	s.DeleteOTPEmail()
	s.Save()

	s2 := roundTrip(t, m, w)
	_, ok := s2.OTPEmail()
	assert.False(t, ok)
	id, ok := s2.UserID()
	assert.True(t, ok)
	assert.Equal(t, "abc123", id)
}

func TestFlashesDrainOnce(t *testing.T) {
	m := NewManager("test-secret")

	w := httptest.NewRecorder()
	s := m.Get(w, httptest.NewRequest(http.MethodGet, "/", nil))
	s.Flash("saved")
	s.Flash("twice")
	s.Save()

	s2 := roundTrip(t, m, w)
	assert.Equal(t, []string{"saved", "twice"}, s2.Flashes())
	assert.Empty(t, s2.Flashes())
}

func TestBadCookieYieldsFreshSession(t *testing.T) {
	m := NewManager("test-secret")
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: cookieName, Value: "garbage"})

	s := m.Get(httptest.NewRecorder(), r)
	_, ok := s.UserID()
	assert.False(t, ok)
}
