package github

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/hamzaabialal/github-clone/internal/apperror"
	"github.com/hamzaabialal/github-clone/internal/model"
)

// BuildSearchQuery turns free text plus filters into the value of the `q`
// query parameter of the user search endpoint.
//
// QUALIFIERS:
// GitHub's search syntax is free text followed by key:value qualifiers
// separated by spaces. In a URL the separator is written as "+":
//
//	acme type:org location:Berlin followers:>=50
//	→ acme+type%3Aorg+location%3ABerlin+followers%3A%3E%3D50
//
// Each piece is escaped on its own (so ':' becomes %3A) and the pieces are
// then joined with a literal '+'.
//
// Returns ("", nil) for an empty or whitespace-only query. A MinFollowers
// value that is not a non-negative whole number is a validation error.
func BuildSearchQuery(query string, filters model.SearchFilters) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", nil
	}

	parts := []string{encodeComponent(query)}

	switch strings.TrimSpace(filters.Type) {
	case model.AccountTypeUsers:
		parts = append(parts, encodeComponent("type:user"))
	case model.AccountTypeOrganizations:
		parts = append(parts, encodeComponent("type:org"))
	}

	if loc := strings.TrimSpace(filters.Location); loc != "" {
		parts = append(parts, encodeComponent("location:"+loc))
	}

	if raw := strings.TrimSpace(filters.MinFollowers); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return "", apperror.ValidationFailed("followers", "minimum followers must be a whole number")
		}
		parts = append(parts, encodeComponent("followers:>="+strconv.Itoa(n)))
	}

	return strings.Join(parts, "+"), nil
}

// encodeComponent escapes s so it can sit inside a query value without
// being confused with a separator. url.QueryEscape writes spaces as '+',
// which is also our qualifier separator, so spaces inside a piece are
// written as %20 instead.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
