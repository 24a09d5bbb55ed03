package model

// Account type choices offered by the search form.
const (
	AccountTypeAny           = "All"
	AccountTypeUsers         = "Users"
	AccountTypeOrganizations = "Organizations"
)

// SearchFilters are the optional structured filters of the search form.
//
// They only shape the outgoing query string and are never stored.
// MinFollowers is kept as text because it comes straight from a form field;
// the search service validates it.
type SearchFilters struct {
	Type         string `json:"type"`
	Location     string `json:"location"`
	MinFollowers string `json:"minFollowers"`
}

// ViewState is the lifecycle of a fetch-driven view.
//
//	idle ──submit──▶ loading ──resolve──▶ success
//	                         └──reject───▶ error (profile only)
//
// The server renders a page only after the fetch resolved, so "loading" is
// what the browser shows while waiting; it exists here so the JSON API and
// the templates can speak the same vocabulary.
type ViewState string

const (
	StateIdle    ViewState = "idle"
	StateLoading ViewState = "loading"
	StateSuccess ViewState = "success"
	StateError   ViewState = "error"
)

// Settled reports whether the view is neither idle nor loading.
func (s ViewState) Settled() bool {
	return s == StateSuccess || s == StateError
}

// SearchResult is the settled outcome of one search.
type SearchResult struct {
	Query   string        `json:"query"`
	Filters SearchFilters `json:"filters"`
	State   ViewState     `json:"state"`
	Items   []UserSummary `json:"items"`
}

// Count is the number of users found.
func (r *SearchResult) Count() int {
	return len(r.Items)
}

// ProfileView is everything the profile page renders: the profile record,
// the full repository list, and the language-filtered view of it.
type ProfileView struct {
	Profile          *UserProfile `json:"profile"`
	Repositories     []Repository `json:"repositories"`
	Languages        []string     `json:"languages"`
	SelectedLanguage string       `json:"selectedLanguage"`
	Visible          []Repository `json:"visible"`
}
