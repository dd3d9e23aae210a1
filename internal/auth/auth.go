// Package auth implements the account workflow engine: registration, login,
// logout, current-user resolution, and the two password-recovery paths
// (emailed single-use token, session-scoped OTP). It holds no storage or
// transport of its own; collaborators are injected and session state is
// passed per call.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"time"

	"goboard/internal/models"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// UserStore is the credential store boundary. Find methods return ErrNotFound
// on a miss; Insert returns ErrDuplicateEmail when the unique email index
// rejects the document.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByResetToken(ctx context.Context, token string) (*models.User, error)
	Insert(ctx context.Context, user *models.User) (string, error)
	UpdateFields(ctx context.Context, id string, set map[string]any, unset []string) error
}

// Mailer delivers a single message. Callers in the recovery paths treat
// failures as log-only: delivery never gates the user-visible result.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// Session is the per-browser state the engine reads and writes. An absent
// user id means anonymous; the OTP email marker tracks an in-progress OTP
// recovery.
type Session interface {
	UserID() (string, bool)
	SetUserID(id string)
	OTPEmail() (string, bool)
	SetOTPEmail(email string)
	DeleteOTPEmail()
	Clear()
}

// Service orchestrates the account workflow over its injected collaborators.
type Service struct {
	users   UserStore
	hasher  Hasher
	mailer  Mailer
	baseURL string
}

func NewService(users UserStore, hasher Hasher, mailer Mailer, baseURL string) *Service {
	return &Service{users: users, hasher: hasher, mailer: mailer, baseURL: baseURL}
}

// Register creates an account and authenticates the session. The duplicate
// pre-check is a fast path; the unique index behind Insert is the authority,
// so a concurrent duplicate surfaces as ErrDuplicateEmail either way.
func (s *Service) Register(ctx context.Context, sess Session, email, password, name string) (*models.User, error) {
	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return nil, ErrDuplicateEmail
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("checking existing user: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}
	user := &models.User{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	id, err := s.users.Insert(ctx, user)
	if err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("inserting user: %w", err)
	}
	sess.SetUserID(id)
	return user, nil
}

// Login verifies credentials and authenticates the session. Unknown email and
// wrong password both yield ErrInvalidCredentials so responses do not reveal
// which emails are registered.
func (s *Service) Login(ctx context.Context, sess Session, email, password string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	sess.SetUserID(user.ID.Hex())
	return user, nil
}

// Logout drops the whole session scope, not just the user id. Idempotent.
func (s *Service) Logout(sess Session) {
	sess.Clear()
}

// CurrentUser resolves the session to a user, or nil for anonymous. A user id
// that no longer resolves (deleted record, corrupted reference) degrades to
// anonymous rather than erroring.
func (s *Service) CurrentUser(ctx context.Context, sess Session) *models.User {
	id, ok := sess.UserID()
	if !ok {
		return nil
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil
	}
	return user
}

// RequestReset starts the token recovery path: a fresh token replaces any
// outstanding one, and a reset link is mailed. Unlike Login this reveals
// whether the email is registered, matching the observed behavior. Mail
// delivery is fire-and-forget: failures are logged and the request still
// succeeds.
func (s *Service) RequestReset(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrUnknownEmail
		}
		return fmt.Errorf("looking up user: %w", err)
	}

	token, err := newResetToken()
	if err != nil {
		return fmt.Errorf("generating reset token: %w", err)
	}
	err = s.users.UpdateFields(ctx, user.ID.Hex(), map[string]any{"reset_token": token}, nil)
	if err != nil {
		return fmt.Errorf("storing reset token: %w", err)
	}

	link := fmt.Sprintf("%s/reset/%s", s.baseURL, token)
	body := fmt.Sprintf("<p>Hello,</p><p>Use the link below to reset your password:</p><p><a href=%q>%s</a></p>", link, link)
	if err := s.mailer.Send(user.Email, "Password reset request", body); err != nil {
		log.Printf("reset email to %s failed: %v", user.Email, err)
	}
	return nil
}

// ResetByToken consumes a reset token: the new password is stored and the
// token removed, so replaying the same token fails. Tokens do not expire by
// time; only consumption or replacement invalidates them.
func (s *Service) ResetByToken(ctx context.Context, token, newPassword string) error {
	user, err := s.users.FindByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrInvalidOrExpiredToken
		}
		return fmt.Errorf("looking up reset token: %w", err)
	}
	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	err = s.users.UpdateFields(ctx, user.ID.Hex(),
		map[string]any{"password_hash": hash},
		[]string{"reset_token"})
	if err != nil {
		return fmt.Errorf("storing new password: %w", err)
	}
	return nil
}

// RequestOTP starts the OTP recovery path: a six-digit code is stored on the
// record with its issue time, the session is marked with the email, and the
// code is mailed fire-and-forget.
func (s *Service) RequestOTP(ctx context.Context, sess Session, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrUnknownEmail
		}
		return fmt.Errorf("looking up user: %w", err)
	}

	code, err := newOTPCode()
	if err != nil {
		return fmt.Errorf("generating OTP: %w", err)
	}
	err = s.users.UpdateFields(ctx, user.ID.Hex(), map[string]any{
		"reset_otp":   code,
		"otp_created": time.Now().UTC(),
	}, nil)
	if err != nil {
		return fmt.Errorf("storing OTP: %w", err)
	}
	sess.SetOTPEmail(user.Email)

	body := fmt.Sprintf("<p>Your one-time code is: <b>%s</b></p>", code)
	if err := s.mailer.Send(user.Email, "Your OTP code", body); err != nil {
		log.Printf("OTP email to %s failed: %v", user.Email, err)
	}
	return nil
}

// VerifyOTP checks the submitted code against the stored one. A mismatch
// clears nothing, so the user can resubmit; a match leaves reset_otp in place
// for the reset step.
func (s *Service) VerifyOTP(ctx context.Context, sess Session, code string) error {
	email, ok := sess.OTPEmail()
	if !ok {
		return ErrNoOTPSession
	}
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrInvalidOTP
		}
		return fmt.Errorf("looking up user: %w", err)
	}
	if user.ResetOTP == nil || *user.ResetOTP != code {
		return ErrInvalidOTP
	}
	return nil
}

// ResetByOTP finishes the OTP path: the new password is stored, the OTP
// fields are removed from the record, and the session marker is cleared.
func (s *Service) ResetByOTP(ctx context.Context, sess Session, newPassword string) error {
	email, ok := sess.OTPEmail()
	if !ok {
		return ErrNoOTPSession
	}
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNoOTPSession
		}
		return fmt.Errorf("looking up user: %w", err)
	}
	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	err = s.users.UpdateFields(ctx, user.ID.Hex(),
		map[string]any{"password_hash": hash},
		[]string{"reset_otp", "otp_created"})
	if err != nil {
		return fmt.Errorf("storing new password: %w", err)
	}
	sess.DeleteOTPEmail()
	return nil
}

// newResetToken creates a URL-safe random token for reset links.
func newResetToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// newOTPCode derives a six-digit code from a throwaway random secret. The
// code itself is stored and compared verbatim; the secret is not kept.
func newOTPCode() (string, error) {
	secret := make([]byte, 20)
	if _, err := rand.Read(secret); err != nil {
		return "", err
	}
	return totp.GenerateCodeCustom(
		base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(secret),
		time.Now(),
		totp.ValidateOpts{
			Period:    300,
			Skew:      1,
			Digits:    otp.DigitsSix,
			Algorithm: otp.AlgorithmSHA1,
		})
}
