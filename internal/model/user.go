// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data, similar to classes in other languages,
// but without inheritance. Go favours composition over inheritance.
//
// These types are our own view of the GitHub API. The github package decodes
// the wire format (snake_case JSON) and maps it onto these structs, so nothing
// outside that package depends on GitHub's field names.
package model

import "time"

// UserSummary is one item of a user search result set.
//
// It is produced by a single search call and never modified afterwards.
// A new search replaces the whole slice of summaries; nobody edits one in place.
type UserSummary struct {
	ID        int64   `json:"id"`
	Login     string  `json:"login"`
	AvatarURL string  `json:"avatarUrl"`
	Type      string  `json:"type"`  // "User" or "Organization"
	Score     float64 `json:"score"` // search relevance as reported by GitHub
}

// UserProfile is the full record for one account, as returned by the
// profile-by-login endpoint.
//
// Free-text fields (Name, Bio, Location, ...) are empty strings when the
// user has not filled them in. GitHub sends JSON null for those; decoding
// null into a string leaves the zero value, which is exactly what we want
// for templates ({{if .Bio}} just works).
type UserProfile struct {
	ID              int64     `json:"id"`
	Login           string    `json:"login"`
	Name            string    `json:"name"`
	Bio             string    `json:"bio"`
	AvatarURL       string    `json:"avatarUrl"`
	PublicRepos     int       `json:"publicRepos"`
	PublicGists     int       `json:"publicGists"`
	Followers       int       `json:"followers"`
	Following       int       `json:"following"`
	Location        string    `json:"location"`
	Company         string    `json:"company"`
	Blog            string    `json:"blog"`
	Email           string    `json:"email"`
	TwitterUsername string    `json:"twitterUsername"`
	HTMLURL         string    `json:"htmlUrl"` // canonical profile page on github.com
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// DisplayName returns the name to put in the page heading: the display name
// if set, otherwise the login.
func (p *UserProfile) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.Login
}
