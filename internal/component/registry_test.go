package component

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

type stub struct {
	name    string
	initErr error
	inited  bool
}

func (s *stub) Name() string { return s.name }
func (s *stub) Init(Env) error {
	s.inited = true
	return s.initErr
}
func (s *stub) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte(s.name)) })
	return r
}

func withRegistry(t *testing.T, cs ...Component) {
	t.Helper()
	mu.Lock()
	saved := registry
	registry = map[string]Component{}
	mu.Unlock()
	for _, c := range cs {
		Register(c)
	}
	t.Cleanup(func() {
		mu.Lock()
		registry = saved
		mu.Unlock()
	})
}

func TestInitAllAndMount(t *testing.T) {
	a, b := &stub{name: "alpha"}, &stub{name: "beta"}
	withRegistry(t, b, a)

	if err := InitAll(Env{}); err != nil {
		t.Fatal(err)
	}
	if !a.inited || !b.inited {
		t.Fatal("Init not called on every component")
	}

	r := chi.NewRouter()
	Mount(r)
	for path, want := range map[string]string{"/ping": "alpha", "/beta/ping": "beta"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Body.String() != want {
			t.Errorf("%s = %q, want %q", path, rec.Body.String(), want)
		}
	}
}

func TestInitAllStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	withRegistry(t, &stub{name: "alpha", initErr: boom})
	if err := InitAll(Env{}); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
}
