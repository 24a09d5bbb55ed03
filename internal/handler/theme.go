package handler

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/hamzaabialal/github-clone/internal/model"
	"github.com/hamzaabialal/github-clone/internal/visitor"
)

// ThemeHandler flips the visitor's colour theme.
type ThemeHandler struct {
	themes ThemeSwitcher
	logger *slog.Logger
}

// NewThemeHandler creates a ThemeHandler.
func NewThemeHandler(themes ThemeSwitcher, logger *slog.Logger) *ThemeHandler {
	return &ThemeHandler{themes: themes, logger: logger}
}

// themeResponse is the JSON answer to a toggle.
type themeResponse struct {
	Theme model.Theme `json:"theme"`
}

// HandleToggle toggles the theme and sends the browser back where it came
// from.
//
// HTTP: POST /theme/toggle
//
// The header's toggle button is a plain form, so the normal answer is a
// 303 redirect. Clients asking for JSON get {"theme": "light"} instead.
func (h *ThemeHandler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	visitorID, _ := visitor.IDFromContext(r.Context())
	wantsJSON := strings.Contains(r.Header.Get("Accept"), "application/json")

	theme, err := h.themes.Toggle(r.Context(), visitorID)
	if err != nil {
		if wantsJSON {
			writeError(w, err)
			return
		}
		// The page still works with the old theme; the service logged why.
		http.Redirect(w, r, returnPath(r), http.StatusSeeOther)
		return
	}

	if wantsJSON {
		writeJSON(w, http.StatusOK, themeResponse{Theme: theme})
		return
	}
	http.Redirect(w, r, returnPath(r), http.StatusSeeOther)
}

// returnPath picks the local path to redirect to after a toggle: the form's
// "return" field, else the Referer, else "/". Only same-site paths are
// accepted so the endpoint cannot be used as an open redirect.
func returnPath(r *http.Request) string {
	if p, ok := localPath(r.FormValue("return")); ok {
		return p
	}
	if ref := r.Referer(); ref != "" {
		if u, err := url.Parse(ref); err == nil {
			if p, ok := localPath(u.RequestURI()); ok {
				return p
			}
		}
	}
	return "/"
}

func localPath(p string) (string, bool) {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.HasPrefix(p, "/\\") {
		return "", false
	}
	return p, true
}
