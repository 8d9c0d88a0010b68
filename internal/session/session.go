// internal/session/session.go
//
// Console session cookie.
//
// Context
//   The console keeps auth.State on the client for the lifetime of the
//   browser session.  The state is carried in an HS256-signed JWT inside a
//   cookie named “console_session”.  The cookie has no Expires/MaxAge, so
//   the browser drops it on close; the token carries no exp claim for the
//   same reason.
//
//   A Manager is built once at startup with the signing secret and shared by
//   every handler.  Middleware decodes the cookie into the request context
//   (auth.WithState); Save and Clear run from the login/logout actions.
//
// Style
//   Two-space sentence spacing, Oxford comma, terse inline notes.
//
//------------------------------------------------------------------------------

package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/yanizio/console/internal/auth"
)

const (
	// CookieName is the session cookie key.
	CookieName = "console_session"

	issuer = "console"
)

var (
	ErrNoSession    = errors.New("session: no session cookie")
	ErrInvalidToken = errors.New("session: invalid token")
	ErrEmptySecret  = errors.New("session: empty secret")
)

type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Manager signs and verifies session cookies.
type Manager struct {
	secret []byte
	now    func() time.Time
}

// NewManager returns a Manager using secret for HS256.
func NewManager(secret string) (*Manager, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &Manager{secret: []byte(secret), now: time.Now}, nil
}

// Encode returns the signed token for st.
func (m *Manager) Encode(st auth.State) (string, error) {
	c := claims{
		Role: string(st.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  st.Username,
			Issuer:   issuer,
			IssuedAt: jwt.NewNumericDate(m.now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(m.secret)
}

// Decode verifies tok and rebuilds the auth.State it carries.
func (m *Manager) Decode(tok string) (auth.State, error) {
	var c claims
	t, err := jwt.ParseWithClaims(tok, &c, func(*jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
	)
	if err != nil || !t.Valid {
		return auth.State{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	role, ok := auth.ParseRole(c.Role)
	if !ok || c.Subject == "" {
		return auth.State{}, fmt.Errorf("%w: bad claims", ErrInvalidToken)
	}
	return auth.State{IsAuthenticated: true, Role: role, Username: c.Subject}, nil
}

// Save writes st as the session cookie.  A signed-out st clears it.
func (m *Manager) Save(w http.ResponseWriter, r *http.Request, st auth.State) error {
	if !st.IsAuthenticated {
		Clear(w)
		return nil
	}
	tok, err := m.Encode(st)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    tok,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil, // only send over HTTPS
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Load reads the session from r.
func (m *Manager) Load(r *http.Request) (auth.State, error) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return auth.State{}, ErrNoSession
	}
	return m.Decode(c.Value)
}

// Clear expires the session cookie.
func Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// Middleware attaches the decoded auth.State to every request.  A missing
// or tampered cookie yields the signed-out state; tampered cookies are
// also cleared.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		st, err := m.Load(r)
		if err != nil && !errors.Is(err, ErrNoSession) {
			zap.L().Debug("session rejected", zap.Error(err))
			Clear(w)
		}
		next.ServeHTTP(w, r.WithContext(auth.WithState(r.Context(), st)))
	})
}
