// internal/clientstore/clientstore.go
//
// Durable client-side key/value storage.
//
// Context
// -------
// Console state that must survive a reload (table sort, filters, page)
// lives on the client, not the server.  Storage is the small contract the
// table controller writes through; two implementations exist:
//
//   - Cookie – one cookie per key, value base64url-encoded.  Scoped to a
//     single request/response pair.
//   - Memory – map-backed, for tests and headless use.
//
// Notes
// -----
// • GetItem returns ok == false for a missing key; err is reserved for a
//   value that exists but cannot be decoded.
// • Oxford commas, two spaces after periods.
package clientstore

import (
	"encoding/base64"
	"errors"
	"net/http"
	"sync"
	"time"
)

// Storage mirrors the browser's localStorage surface.
type Storage interface {
	GetItem(key string) (value string, ok bool, err error)
	SetItem(key, value string) error
}

// ErrTooLarge is returned when an encoded value exceeds MaxCookieBytes.
var ErrTooLarge = errors.New("clientstore: value too large for cookie")

// MaxCookieBytes stays under the 4 KiB per-cookie browser limit.
const MaxCookieBytes = 3800

//
// Cookie storage
//

// Cookie stores each key in its own long-lived cookie.
type Cookie struct {
	w      http.ResponseWriter
	r      *http.Request
	secure bool

	// writes made during this request, visible to later GetItem calls
	pending map[string]string
}

// NewCookie binds storage to one request/response pair.
func NewCookie(w http.ResponseWriter, r *http.Request) *Cookie {
	return &Cookie{w: w, r: r, secure: r.TLS != nil, pending: map[string]string{}}
}

// GetItem reads key from this request's writes, then from the request.
func (c *Cookie) GetItem(key string) (string, bool, error) {
	if v, ok := c.pending[key]; ok {
		return v, true, nil
	}
	ck, err := c.r.Cookie(key)
	if err != nil || ck.Value == "" {
		return "", false, nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(ck.Value)
	if err != nil {
		return "", true, err
	}
	return string(raw), true, nil
}

// SetItem writes key as a cookie valid for one year.
func (c *Cookie) SetItem(key, value string) error {
	enc := base64.RawURLEncoding.EncodeToString([]byte(value))
	if len(enc) > MaxCookieBytes {
		return ErrTooLarge
	}
	http.SetCookie(c.w, &http.Cookie{
		Name:     key,
		Value:    enc,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(365 * 24 * time.Hour),
	})
	c.pending[key] = value
	return nil
}

//
// Memory storage
//

// Memory is a concurrency-safe in-process Storage.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemory returns an empty Memory.
func NewMemory() *Memory { return &Memory{data: map[string]string{}} }

func (m *Memory) GetItem(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Memory) SetItem(key, value string) error {
	m.mu.Lock()
	m.data[key] = value
	m.mu.Unlock()
	return nil
}
