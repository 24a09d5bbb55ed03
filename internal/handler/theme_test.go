package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamzaabialal/github-clone/internal/model"
)

func toggleRequest(form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/theme/toggle", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return withVisitor(req, "v1")
}

func TestHandleToggle(t *testing.T) {
	tests := []struct {
		name    string
		form    url.Values
		referer string
		wantLoc string
	}{
		{name: "return field", form: url.Values{"return": {"/user/octocat?language=Go"}}, wantLoc: "/user/octocat?language=Go"},
		{name: "referer path", referer: "http://localhost:8080/?search=torvalds", wantLoc: "/?search=torvalds"},
		{name: "nothing given", wantLoc: "/"},
		{name: "absolute URL rejected", form: url.Values{"return": {"https://evil.example/"}}, wantLoc: "/"},
		{name: "protocol-relative rejected", form: url.Values{"return": {"//evil.example/"}}, wantLoc: "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			themes := NewMockThemes()
			h := testRouter(t, &MockSearcher{}, &MockProfiles{}, themes)

			req := toggleRequest(tt.form)
			if tt.referer != "" {
				req.Header.Set("Referer", tt.referer)
			}
			rr := serve(h, req)

			assert.Equal(t, http.StatusSeeOther, rr.Code)
			assert.Equal(t, tt.wantLoc, rr.Header().Get("Location"))
			assert.Equal(t, model.ThemeLight, themes.Current(req.Context(), "v1"))
		})
	}
}

func TestHandleToggle_TwiceRestores(t *testing.T) {
	themes := NewMockThemes()
	h := testRouter(t, &MockSearcher{}, &MockProfiles{}, themes)

	serve(h, toggleRequest(nil))
	serve(h, toggleRequest(nil))

	rr := serve(h, withVisitor(httptest.NewRequest(http.MethodGet, "/", nil), "v1"))
	assert.Contains(t, rr.Body.String(), `data-theme="dark"`)
}

func TestHandleToggle_JSON(t *testing.T) {
	h := testRouter(t, &MockSearcher{}, &MockProfiles{}, NewMockThemes())

	req := toggleRequest(nil)
	req.Header.Set("Accept", "application/json")
	rr := serve(h, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var body map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, "light", body["theme"])
}

func TestHandleToggle_FailureStillRedirects(t *testing.T) {
	themes := NewMockThemes()
	themes.ToggleErr = assert.AnError
	h := testRouter(t, &MockSearcher{}, &MockProfiles{}, themes)

	rr := serve(h, toggleRequest(url.Values{"return": {"/user/octocat"}}))

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/user/octocat", rr.Header().Get("Location"))
}
