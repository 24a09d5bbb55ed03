package github

import (
	"time"

	"github.com/hamzaabialal/github-clone/internal/model"
)

// Wire types: the portion of each GitHub response we care about.
// GitHub returns much larger objects; we only unmarshal the fields we need
// and map them onto model types so the rest of the app never sees
// snake_case JSON.

type searchUsersResponse struct {
	TotalCount int                `json:"total_count"`
	Items      []searchUserResult `json:"items"`
}

type searchUserResult struct {
	ID        int64   `json:"id"`
	Login     string  `json:"login"`
	AvatarURL string  `json:"avatar_url"`
	Type      string  `json:"type"`
	Score     float64 `json:"score"`
}

func (r searchUserResult) toModel() model.UserSummary {
	return model.UserSummary{
		ID:        r.ID,
		Login:     r.Login,
		AvatarURL: r.AvatarURL,
		Type:      r.Type,
		Score:     r.Score,
	}
}

type userResponse struct {
	ID              int64     `json:"id"`
	Login           string    `json:"login"`
	Name            string    `json:"name"`
	Bio             string    `json:"bio"`
	AvatarURL       string    `json:"avatar_url"`
	PublicRepos     int       `json:"public_repos"`
	PublicGists     int       `json:"public_gists"`
	Followers       int       `json:"followers"`
	Following       int       `json:"following"`
	Location        string    `json:"location"`
	Company         string    `json:"company"`
	Blog            string    `json:"blog"`
	Email           string    `json:"email"`
	TwitterUsername string    `json:"twitter_username"`
	HTMLURL         string    `json:"html_url"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (u userResponse) toModel() model.UserProfile {
	return model.UserProfile{
		ID:              u.ID,
		Login:           u.Login,
		Name:            u.Name,
		Bio:             u.Bio,
		AvatarURL:       u.AvatarURL,
		PublicRepos:     u.PublicRepos,
		PublicGists:     u.PublicGists,
		Followers:       u.Followers,
		Following:       u.Following,
		Location:        u.Location,
		Company:         u.Company,
		Blog:            u.Blog,
		Email:           u.Email,
		TwitterUsername: u.TwitterUsername,
		HTMLURL:         u.HTMLURL,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

type repoResponse struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	FullName        string    `json:"full_name"`
	Description     string    `json:"description"`
	Language        string    `json:"language"`
	StargazersCount int       `json:"stargazers_count"`
	ForksCount      int       `json:"forks_count"`
	UpdatedAt       time.Time `json:"updated_at"`
	HTMLURL         string    `json:"html_url"`
	Fork            bool      `json:"fork"`
	Private         bool      `json:"private"`
}

func (r repoResponse) toModel() model.Repository {
	return model.Repository{
		ID:              r.ID,
		Name:            r.Name,
		FullName:        r.FullName,
		Description:     r.Description,
		Language:        r.Language,
		StargazersCount: r.StargazersCount,
		ForksCount:      r.ForksCount,
		UpdatedAt:       r.UpdatedAt,
		HTMLURL:         r.HTMLURL,
		Fork:            r.Fork,
		Private:         r.Private,
	}
}
