package github

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamzaabialal/github-clone/internal/apperror"
	"github.com/hamzaabialal/github-clone/internal/model"
)

func TestBuildSearchQuery(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		filters model.SearchFilters
		want    string
	}{
		{
			name:  "plain query",
			query: "torvalds",
			want:  "torvalds",
		},
		{
			name:  "surrounding whitespace is trimmed",
			query: "  torvalds \t",
			want:  "torvalds",
		},
		{
			name:  "inner spaces are percent-encoded",
			query: "linus torvalds",
			want:  "linus%20torvalds",
		},
		{
			name:  "all filters",
			query: "acme",
			filters: model.SearchFilters{
				Type:         model.AccountTypeOrganizations,
				Location:     "Berlin",
				MinFollowers: "50",
			},
			want: "acme+type%3Aorg+location%3ABerlin+followers%3A%3E%3D50",
		},
		{
			name:    "users type",
			query:   "acme",
			filters: model.SearchFilters{Type: model.AccountTypeUsers},
			want:    "acme+type%3Auser",
		},
		{
			name:    "All type adds no qualifier",
			query:   "acme",
			filters: model.SearchFilters{Type: model.AccountTypeAny},
			want:    "acme",
		},
		{
			name:    "blank location is ignored",
			query:   "acme",
			filters: model.SearchFilters{Location: "   "},
			want:    "acme",
		},
		{
			name:    "location with a space",
			query:   "acme",
			filters: model.SearchFilters{Location: "New York"},
			want:    "acme+location%3ANew%20York",
		},
		{
			name:    "zero followers is allowed",
			query:   "acme",
			filters: model.SearchFilters{MinFollowers: "0"},
			want:    "acme+followers%3A%3E%3D0",
		},
		{
			name:  "reserved characters in the query are escaped",
			query: "a+b&c",
			want:  "a%2Bb%26c",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildSearchQuery(tt.query, tt.filters)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildSearchQuery_EmptyQuery(t *testing.T) {
	for _, q := range []string{"", "   ", "\t\n"} {
		got, err := BuildSearchQuery(q, model.SearchFilters{Location: "Berlin"})
		require.NoError(t, err)
		assert.Empty(t, got, "query %q", q)
	}
}

func TestBuildSearchQuery_InvalidFollowers(t *testing.T) {
	for _, v := range []string{"lots", "-5", "1.5"} {
		_, err := BuildSearchQuery("acme", model.SearchFilters{MinFollowers: v})
		require.Error(t, err, "followers %q", v)
		assert.True(t, errors.Is(err, apperror.ErrValidation))
	}
}
