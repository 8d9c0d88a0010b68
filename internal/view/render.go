// internal/view/render.go
//
// Central view engine: template lookup, override chain, func-map injection,
// and an LRU of parsed *template.Template* sets.
//
// Public helpers
// --------------
//   - Render         – buffer, then write rendered HTML to an
//     http.ResponseWriter with the given status.
//   - RenderToString – return template.HTML (fragments, tests).
//
// Lookup precedence (first hit wins):
//   1. <paths.templates>/<comp>/<tpl>.html   (operator override dir)
//   2. the fs.FS the component registered    (embedded defaults)
//
// All templates in the same directory are parsed as one set so layout and
// sub-templates ({{ template "row" . }}) work out-of-the-box.
//
// execName() chooses the template to execute:
//   – If the set contains "<name>.html", we run that (file has no define).
//   – Else we fall back to "<name>" (root template defined via {{ define }}).
//
// Style
// -----
// • Oxford commas, two spaces after periods.

package view

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/yanizio/console/internal/cache"
)

//
// cache definitions
//

// CachePolicy hints how the caller wants this template cached.
type CachePolicy int

const (
	CacheDefault CachePolicy = iota // cache parsed sets
	CacheSkip                       // always reparse (template development)
)

var ErrUnknownComponent = errors.New("view: component has no templates registered")

// Engine renders component templates.  Safe for concurrent use.
type Engine struct {
	overrideDir string
	funcs       template.FuncMap
	policy      CachePolicy

	mu      sync.RWMutex
	sources map[string]fs.FS

	sets *cache.LRU[string, *template.Template]
}

// New returns an Engine.  overrideDir may be empty.  extra adds helpers to
// the base func map (dict and the UA helpers).
func New(overrideDir string, policy CachePolicy, extra template.FuncMap) *Engine {
	fm := template.FuncMap{"dict": dict}
	for k, v := range uaFuncMap() {
		fm[k] = v
	}
	for k, v := range extra {
		fm[k] = v
	}
	return &Engine{
		overrideDir: overrideDir,
		funcs:       fm,
		policy:      policy,
		sources:     map[string]fs.FS{},
		sets:        cache.New[string, *template.Template](256),
	}
}

// Register binds a component to the fs.FS holding its *.html files.
func (e *Engine) Register(comp string, fsys fs.FS) {
	e.mu.Lock()
	e.sources[comp] = fsys
	e.mu.Unlock()
}

//
// public helpers
//

// Render executes the named template of comp and writes it with status.
// The body is buffered first so a template error still yields a clean 500.
func (e *Engine) Render(w http.ResponseWriter, status int, comp, name string, data any) error {
	var buf bytes.Buffer
	if err := e.execute(&buf, comp, name, data); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// RenderToString executes and returns HTML.
func (e *Engine) RenderToString(comp, name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := e.execute(&buf, comp, name, data); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

func (e *Engine) execute(buf *bytes.Buffer, comp, name string, data any) error {
	t, err := e.load(comp, name)
	if err != nil {
		return fmt.Errorf("view %s/%s: %w", comp, name, err)
	}
	return t.ExecuteTemplate(buf, execName(t, name), data)
}

//
// internal: load
//

// load finds and (if necessary) parses the template set for comp/name.
func (e *Engine) load(comp, name string) (*template.Template, error) {
	override := ""
	if e.overrideDir != "" {
		p := filepath.Join(e.overrideDir, comp, name+".html")
		if _, err := os.Stat(p); err == nil {
			override = filepath.Dir(p)
		}
	}
	key := strings.Join([]string{override, comp, name}, "::")

	if e.policy != CacheSkip {
		if t, ok := e.sets.Get(key); ok {
			return t, nil
		}
	}

	base := template.New("::" + comp).Funcs(e.funcs)
	var (
		t   *template.Template
		err error
	)
	if override != "" {
		t, err = base.ParseGlob(filepath.Join(override, "*.html"))
	} else {
		e.mu.RLock()
		fsys, ok := e.sources[comp]
		e.mu.RUnlock()
		if !ok {
			return nil, ErrUnknownComponent
		}
		t, err = base.ParseFS(fsys, "*.html")
	}
	if err != nil {
		return nil, err
	}
	if !defined(t, name+".html") && !defined(t, name) {
		return nil, fs.ErrNotExist
	}

	if e.policy != CacheSkip {
		e.sets.Add(key, t)
	}
	return t, nil
}

//
// helpers
//

// execName picks the template name to execute.
//
// Priority:
//  1. If the set has "<name>.html" (file-based template), run that.
//  2. Otherwise, fall back to "<name>" (root template defined via define).
func execName(t *template.Template, name string) string {
	if defined(t, name+".html") {
		return name + ".html"
	}
	return name
}

func defined(t *template.Template, name string) bool {
	tmpl := t.Lookup(name)
	return tmpl != nil && tmpl.Tree != nil
}

// dict builds a map in templates: {{ dict "k" 1 "k2" "v" }}.
func dict(kv ...any) map[string]any {
	m := make(map[string]any, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		key, _ := kv[i].(string)
		m[key] = kv[i+1]
	}
	return m
}
