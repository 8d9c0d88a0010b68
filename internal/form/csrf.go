// internal/form/csrf.go
//
// Console forms: stateless CSRF tokens.
//
// Context
//   Every console form (login, logout, table sort/filter/page) embeds a
//   hidden `csrf_token` input generated at render time.  POST handlers sit
//   behind Protect, which rejects a request whose token does not verify.
//   The token is stateless:
//
//      base64url( nonce | unixMicro | HMAC_SHA256(key, nonce+unixMicro) )
//
//   •  nonce – 16 random bytes.
//   •  unixMicro – microseconds since Unix epoch, 8 bytes, big-endian.
//   •  HMAC – keyed with session.csrf_key from config.
//
//   Verification checks the signature and that the timestamp lies within
//   MaxAge.  No server-side state, so any console instance can verify.
//
// Workflow
//   •  c.Token()          → token string for the template.
//   •  c.Verify(tok)      → constant-time verify; false on any failure.
//   •  c.Protect(handler) → 403 on unsafe methods with a bad token.
//
//------------------------------------------------------------------------------

package form

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	// FieldName is the hidden input carrying the token.
	FieldName = "csrf_token"

	tokenBytes = 16 + 8 + sha256.Size // nonce + ts + sig

	// MaxAge is the token validity window.
	MaxAge = 2 * time.Hour
)

var ErrShortKey = errors.New("form: csrf key must be at least 16 bytes")

// CSRF issues and verifies tokens for one key.
type CSRF struct {
	key []byte
	now func() time.Time
}

// NewCSRF returns a CSRF keyed with key.
func NewCSRF(key string) (*CSRF, error) {
	if len(key) < 16 {
		return nil, ErrShortKey
	}
	return &CSRF{key: []byte(key), now: time.Now}, nil
}

// Token creates a new token.  Call once per form render.
func (c *CSRF) Token() (string, error) {
	nonce := make([]byte, 16)
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	ts := make([]byte, 8)
	binary.BigEndian.PutUint64(ts, uint64(c.now().UnixMicro()))

	buf := make([]byte, 0, tokenBytes)
	buf = append(buf, nonce...)
	buf = append(buf, ts...)
	buf = append(buf, c.sign(nonce, ts)...)

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Verify reports whether tok passes HMAC and age checks.
func (c *CSRF) Verify(tok string) bool {
	raw, err := base64.RawURLEncoding.DecodeString(tok)
	if err != nil || len(raw) != tokenBytes {
		return false
	}
	nonce, tsBytes, sig := raw[:16], raw[16:24], raw[24:]

	issued := time.UnixMicro(int64(binary.BigEndian.Uint64(tsBytes)))
	now := c.now()
	if now.Sub(issued) > MaxAge || issued.Sub(now) > time.Minute {
		// Older than MaxAge, or from the future (clock skew).
		return false
	}
	return hmac.Equal(sig, c.sign(nonce, tsBytes))
}

// Protect rejects POST, PUT, PATCH, and DELETE requests whose csrf_token
// form value fails Verify.
func (c *CSRF) Protect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next.ServeHTTP(w, r)
			return
		}
		if !c.Verify(r.PostFormValue(FieldName)) {
			zap.L().Warn("csrf token rejected",
				zap.String("path", r.URL.Path),
				zap.String("remote", r.RemoteAddr))
			http.Error(w, "Security token invalid.  Please refresh and try again.", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (c *CSRF) sign(nonce, ts []byte) []byte {
	mac := hmac.New(sha256.New, c.key)
	mac.Write(nonce)
	mac.Write(ts)
	return mac.Sum(nil)
}
