// Package web serves the HTML pages and translates workflow results into
// flash messages and redirects. Workflow errors never hard-fail a request;
// the user always lands back on a form with a notice.
package web

import (
	"errors"
	"log"
	"net/http"

	"goboard/internal/auth"
	"goboard/internal/session"
	"goboard/internal/util"

	"github.com/gorilla/mux"
)

// Handler bundles the collaborators the pages need.
type Handler struct {
	auth          *auth.Service
	topics        TopicStore
	sessions      *session.Manager
	renderer      *Renderer
	adminPassword string
}

func NewHandler(a *auth.Service, topics TopicStore, sessions *session.Manager, renderer *Renderer, adminPassword string) *Handler {
	return &Handler{auth: a, topics: topics, sessions: sessions, renderer: renderer, adminPassword: adminPassword}
}

// render resolves the current user, drains flashes, saves the session, and
// writes the page.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, sess *session.Session, page, title string, data any) {
	pd := PageData{
		Title:   title,
		User:    h.auth.CurrentUser(r.Context(), sess),
		Flashes: sess.Flashes(),
		Data:    data,
	}
	sess.Save()
	h.renderer.Render(w, page, pd)
}

// redirect flashes an optional message and sends the browser on.
func (h *Handler) redirect(w http.ResponseWriter, r *http.Request, sess *session.Session, msg, location string) {
	if msg != "" {
		sess.Flash(msg)
	}
	sess.Save()
	http.Redirect(w, r, location, http.StatusSeeOther)
}

// flashError turns a workflow error into a flash. Unexpected errors are
// logged and shown as a generic notice.
func flashError(sess *session.Session, err error) {
	switch {
	case errors.Is(err, auth.ErrDuplicateEmail),
		errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrUnknownEmail),
		errors.Is(err, auth.ErrInvalidOrExpiredToken),
		errors.Is(err, auth.ErrInvalidOTP):
		sess.Flash(err.Error())
	default:
		log.Printf("workflow error: %v", err)
		sess.Flash("Something went wrong, please try again.")
	}
}

func (h *Handler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(w, r)
	h.render(w, r, sess, "register.html", "Register", nil)
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(w, r)
	email := r.FormValue("email")
	password := r.FormValue("password")
	name := r.FormValue("name")

	if !util.ValidateEmail(email) || password == "" {
		h.redirect(w, r, sess, "Please provide a valid email and a password.", "/register")
		return
	}
	if _, err := h.auth.Register(r.Context(), sess, email, password, name); err != nil {
		flashError(sess, err)
		h.redirect(w, r, sess, "", "/register")
		return
	}
	h.redirect(w, r, sess, "Welcome! Your account is ready.", "/")
}

func (h *Handler) LoginForm(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(w, r)
	h.render(w, r, sess, "login.html", "Log in", nil)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(w, r)
	_, err := h.auth.Login(r.Context(), sess, r.FormValue("email"), r.FormValue("password"))
	if err != nil {
		flashError(sess, err)
		h.redirect(w, r, sess, "", "/login")
		return
	}
	h.redirect(w, r, sess, "", "/")
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(w, r)
	h.auth.Logout(sess)
	h.redirect(w, r, sess, "You have been logged out.", "/")
}

func (h *Handler) ForgotForm(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(w, r)
	h.render(w, r, sess, "forgot.html", "Forgot password", nil)
}

func (h *Handler) Forgot(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(w, r)
	email := r.FormValue("email")
	if err := h.auth.RequestReset(r.Context(), email); err != nil {
		flashError(sess, err)
		h.redirect(w, r, sess, "", "/forgot")
		return
	}
	h.redirect(w, r, sess, "A reset link has been sent to "+email+".", "/login")
}

func (h *Handler) ResetForm(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(w, r)
	token := mux.Vars(r)["token"]
	h.render(w, r, sess, "reset.html", "Reset password", struct{ Token string }{token})
}

func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(w, r)
	token := mux.Vars(r)["token"]
	if err := h.auth.ResetByToken(r.Context(), token, r.FormValue("password")); err != nil {
		flashError(sess, err)
		h.redirect(w, r, sess, "", "/forgot")
		return
	}
	h.redirect(w, r, sess, "Password updated. You can log in now.", "/login")
}

func (h *Handler) OTPRequestForm(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(w, r)
	h.render(w, r, sess, "otp_request.html", "Reset with OTP", nil)
}

func (h *Handler) OTPRequest(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(w, r)
	if err := h.auth.RequestOTP(r.Context(), sess, r.FormValue("email")); err != nil {
		flashError(sess, err)
		h.redirect(w, r, sess, "", "/otp/request")
		return
	}
	h.redirect(w, r, sess, "We sent a one-time code to your email.", "/otp/verify")
}

func (h *Handler) OTPVerifyForm(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(w, r)
	if _, ok := sess.OTPEmail(); !ok {
		h.redirect(w, r, sess, "", "/otp/request")
		return
	}
	h.render(w, r, sess, "otp_verify.html", "Verify code", nil)
}

func (h *Handler) OTPVerify(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(w, r)
	err := h.auth.VerifyOTP(r.Context(), sess, r.FormValue("otp"))
	switch {
	case err == nil:
		h.redirect(w, r, sess, "", "/otp/reset")
	case errors.Is(err, auth.ErrNoOTPSession):
		h.redirect(w, r, sess, "", "/otp/request")
	default:
		flashError(sess, err)
		h.redirect(w, r, sess, "", "/otp/verify")
	}
}

func (h *Handler) OTPResetForm(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(w, r)
	if _, ok := sess.OTPEmail(); !ok {
		h.redirect(w, r, sess, "", "/otp/request")
		return
	}
	h.render(w, r, sess, "otp_reset.html", "Reset password", nil)
}

func (h *Handler) OTPReset(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(w, r)
	err := h.auth.ResetByOTP(r.Context(), sess, r.FormValue("password"))
	switch {
	case err == nil:
		h.redirect(w, r, sess, "Password updated. You can log in now.", "/login")
	case errors.Is(err, auth.ErrNoOTPSession):
		h.redirect(w, r, sess, "", "/otp/request")
	default:
		flashError(sess, err)
		h.redirect(w, r, sess, "", "/otp/reset")
	}
}
