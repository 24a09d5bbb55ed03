package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamzaabialal/github-clone/internal/apperror"
	"github.com/hamzaabialal/github-clone/internal/model"
	"github.com/hamzaabialal/github-clone/internal/supersede"
)

func newTestProfileService(t *testing.T) (*ProfileService, *fakeAPI) {
	t.Helper()
	api := newFakeAPI()
	api.profiles["octocat"] = &model.UserProfile{
		ID:          583231,
		Login:       "octocat",
		Name:        "The Octocat",
		PublicRepos: 8,
		CreatedAt:   time.Date(2011, 1, 25, 18, 44, 36, 0, time.UTC),
	}
	api.repos["octocat"] = []model.Repository{
		{ID: 1, Name: "hello-world", Language: "Go"},
		{ID: 2, Name: "linguist", Language: "Ruby"},
		{ID: 3, Name: "Spoon-Knife", Language: ""},
		{ID: 4, Name: "octo-cli", Language: "Go"},
	}
	return NewProfileService(api, supersede.New(), discardLogger()), api
}

func TestLoad_Success(t *testing.T) {
	svc, api := newTestProfileService(t)

	view, err := svc.Load(context.Background(), "v1", "octocat", "")
	require.NoError(t, err)

	assert.Equal(t, []string{"octocat"}, api.userCalls)
	assert.Equal(t, []string{"octocat"}, api.repoCalls)

	assert.Equal(t, "octocat", view.Profile.Login)
	assert.Len(t, view.Repositories, 4)
	assert.Equal(t, []string{"All", "Go", "Ruby"}, view.Languages)
	assert.Equal(t, model.AllLanguages, view.SelectedLanguage)
	assert.Len(t, view.Visible, 4)
}

func TestLoad_LanguageFilter(t *testing.T) {
	svc, _ := newTestProfileService(t)

	view, err := svc.Load(context.Background(), "v1", "octocat", "Go")
	require.NoError(t, err)

	require.Len(t, view.Visible, 2)
	assert.Equal(t, "hello-world", view.Visible[0].Name)
	assert.Equal(t, "octo-cli", view.Visible[1].Name)
	assert.Len(t, view.Repositories, 4, "the full list is kept alongside the filtered one")
}

func TestLoad_NotFoundSkipsRepos(t *testing.T) {
	svc, api := newTestProfileService(t)

	view, err := svc.Load(context.Background(), "v1", "ghost-user-404", "")
	require.Error(t, err)
	assert.Nil(t, view)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
	assert.Empty(t, api.repoCalls, "repositories must not be requested when the profile fails")
}

func TestLoad_UpstreamFailureSkipsRepos(t *testing.T) {
	svc, api := newTestProfileService(t)
	api.userErr = errors.New("github: get_user returned status 500")

	_, err := svc.Load(context.Background(), "v1", "octocat", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrUpstream))
	assert.Empty(t, api.repoCalls)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "Failed to fetch user data", appErr.Message)
}

func TestLoad_RepoFailureShowsNone(t *testing.T) {
	svc, api := newTestProfileService(t)
	api.reposErr = errors.New("github: list_repos returned status 502")

	view, err := svc.Load(context.Background(), "v1", "octocat", "Go")
	require.NoError(t, err)

	assert.Equal(t, "octocat", view.Profile.Login)
	assert.Empty(t, view.Repositories)
	assert.Empty(t, view.Visible)
	assert.Equal(t, []string{"All"}, view.Languages)
}

func TestLoad_BlankLogin(t *testing.T) {
	svc, api := newTestProfileService(t)

	_, err := svc.Load(context.Background(), "v1", "  ", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrValidation))
	assert.Empty(t, api.userCalls)
}

func TestBuildProfileView(t *testing.T) {
	profile := &model.UserProfile{Login: "x"}

	t.Run("nil repos become empty", func(t *testing.T) {
		view := BuildProfileView(profile, nil, "")
		assert.NotNil(t, view.Repositories)
		assert.NotNil(t, view.Visible)
		assert.Equal(t, []string{"All"}, view.Languages)
		assert.Equal(t, model.AllLanguages, view.SelectedLanguage)
	})

	t.Run("unknown language shows nothing", func(t *testing.T) {
		repos := []model.Repository{{Name: "a", Language: "Go"}}
		view := BuildProfileView(profile, repos, "COBOL")
		assert.Empty(t, view.Visible)
		assert.Equal(t, "COBOL", view.SelectedLanguage)
	})
}
