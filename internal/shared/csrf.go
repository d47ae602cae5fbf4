package shared

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
)

const (
	// CSRFSessionKey is where the minted token lives in the session store.
	CSRFSessionKey = "csrf_token"
	// CSRFFormField is the hidden form field the console templates emit.
	CSRFFormField = "csrf_token"
)

// CSRFManager mints and checks per-session CSRF tokens. The console runs
// anonymous sessions, so the token is the only thing tying a browser form
// (or a fetch with the X-CSRF-Token header) back to the cookie that loaded
// the page.
type CSRFManager struct {
	key []byte
}

// NewCSRFManager builds a manager keyed with the configured secret.
func NewCSRFManager(secret string) *CSRFManager {
	return &CSRFManager{key: []byte(secret)}
}

// EnsureToken returns the session's token, minting one on first use so every
// rendered page carries a value for its forms and the csrf-token meta tag.
func (m *CSRFManager) EnsureToken(ctx context.Context, sess *Session) (string, error) {
	if sess == nil {
		return "", errors.New("session missing")
	}
	if existing := sess.Get(CSRFSessionKey); existing != "" {
		return existing, nil
	}
	token, err := m.mint(sess.ID)
	if err != nil {
		return "", err
	}
	sess.Set(CSRFSessionKey, token)
	return token, nil
}

// VerifyToken checks a submitted token against the one stored in the session.
func (m *CSRFManager) VerifyToken(ctx context.Context, sess *Session, token string) error {
	if sess == nil || token == "" {
		return ErrCSRFTokenMissing
	}
	stored := sess.Get(CSRFSessionKey)
	if stored == "" {
		return ErrCSRFTokenMissing
	}
	if !hmac.Equal([]byte(stored), []byte(token)) {
		return ErrCSRFTokenMismatch
	}
	return nil
}

// mint derives a token from the session id plus a fresh nonce, so tokens are
// unguessable even though sessions are anonymous and long-lived.
func (m *CSRFManager) mint(sessionID string) (string, error) {
	nonce := make([]byte, 16)
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	mac := hmac.New(sha256.New, m.key)
	mac.Write([]byte(sessionID))
	mac.Write(nonce)
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nonce)), nil
}
