package model

import "time"

// Repository is one entry of a user's repository listing.
type Repository struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	FullName        string    `json:"fullName"`
	Description     string    `json:"description"`
	Language        string    `json:"language"` // primary language, empty when GitHub could not detect one
	StargazersCount int       `json:"stargazersCount"`
	ForksCount      int       `json:"forksCount"`
	UpdatedAt       time.Time `json:"updatedAt"`
	HTMLURL         string    `json:"htmlUrl"`
	Fork            bool      `json:"fork"`
	Private         bool      `json:"private"`
}

// AllLanguages is the synthetic language option that disables filtering.
const AllLanguages = "All"
