package form

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

func newCSRF(t *testing.T) *CSRF {
	t.Helper()
	c, err := NewCSRF("0123456789abcdef-test")
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestTokenVerify(t *testing.T) {
	c := newCSRF(t)
	tok, err := c.Token()
	if err != nil {
		t.Fatal(err)
	}
	if !c.Verify(tok) {
		t.Fatal("fresh token rejected")
	}

	other, _ := NewCSRF("another-key-of-16+")
	if other.Verify(tok) {
		t.Fatal("token verified under a different key")
	}
	if c.Verify(tok[:len(tok)-2]) || c.Verify("") {
		t.Fatal("truncated token accepted")
	}
}

func TestTokenExpires(t *testing.T) {
	c := newCSRF(t)
	tok, _ := c.Token()

	c.now = func() time.Time { return time.Now().Add(MaxAge + time.Minute) }
	if c.Verify(tok) {
		t.Fatal("expired token accepted")
	}
}

func TestNewCSRFShortKey(t *testing.T) {
	if _, err := NewCSRF("short"); err != ErrShortKey {
		t.Fatalf("err = %v, want ErrShortKey", err)
	}
}

func TestProtect(t *testing.T) {
	c := newCSRF(t)
	h := c.Protect(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	post := func(tok string) int {
		body := url.Values{FieldName: {tok}}.Encode()
		req := httptest.NewRequest(http.MethodPost, "/logout", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	tok, _ := c.Token()
	if code := post(tok); code != http.StatusNoContent {
		t.Fatalf("valid token: %d", code)
	}
	if code := post("bogus"); code != http.StatusForbidden {
		t.Fatalf("bogus token: %d", code)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("GET blocked: %d", rec.Code)
	}
}
