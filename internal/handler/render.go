package handler

import (
	"bytes"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/hamzaabialal/github-clone/internal/model"
)

// Page names. Each is rendered from base.html plus "<name>.html".
const (
	pageLanding = "landing"
	pageProfile = "profile"
	pageError   = "error"
)

// dateLayout renders dates like "January 2, 2006".
const dateLayout = "January 2, 2006"

// layout is what base.html receives. Page holds the page-specific data.
type layout struct {
	Title       string
	Theme       model.Theme
	ReturnTo    string // where the theme toggle should send the visitor back to
	HeaderQuery string
	Year        int
	Page        any
}

// Renderer owns the parsed page templates.
//
// Templates are parsed once at startup. Every page gets its own template
// set because each page file defines "content" and the sets would otherwise
// overwrite each other's definition.
type Renderer struct {
	pages  map[string]*template.Template
	logger *slog.Logger
}

// NewRenderer parses base.html together with every page template in dir.
func NewRenderer(dir string, logger *slog.Logger) (*Renderer, error) {
	r := &Renderer{
		pages:  make(map[string]*template.Template),
		logger: logger,
	}
	for _, name := range []string{pageLanding, pageProfile, pageError} {
		tmpl, err := template.New("").Funcs(templateFuncs()).ParseFiles(
			filepath.Join(dir, "base.html"),
			filepath.Join(dir, name+".html"),
		)
		if err != nil {
			return nil, fmt.Errorf("parsing %s template: %w", name, err)
		}
		r.pages[name] = tmpl
	}
	return r, nil
}

// Render executes page into a buffer first so a template failure can still
// produce a clean 500 instead of half a page.
func (rd *Renderer) Render(w http.ResponseWriter, status int, page string, data layout) {
	tmpl, ok := rd.pages[page]
	if !ok {
		rd.logger.Error("unknown page template", slog.String("page", page))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if data.Year == 0 {
		data.Year = time.Now().Year()
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		rd.logger.Error("failed to render template",
			slog.String("page", page),
			slog.String("error", err.Error()),
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		rd.logger.Debug("writing page failed", slog.String("error", err.Error()))
	}
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatDate": FormatDate,
		"blogURL":    BlogURL,
		"twitterURL": TwitterURL,
		"score":      func(f float64) string { return fmt.Sprintf("%.1f", f) },
	}
}

// FormatDate renders t as "January 2, 2006". The zero time renders as "".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

// BlogURL makes a profile's blog field linkable. GitHub stores whatever the
// user typed, often without a scheme.
func BlogURL(blog string) string {
	blog = strings.TrimSpace(blog)
	if blog == "" || strings.HasPrefix(blog, "http") {
		return blog
	}
	return "https://" + blog
}

// TwitterURL links a Twitter handle.
func TwitterURL(handle string) string {
	return "https://twitter.com/" + strings.TrimPrefix(handle, "@")
}
