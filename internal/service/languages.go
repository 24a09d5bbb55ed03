package service

import (
	"sort"

	"github.com/hamzaabialal/github-clone/internal/model"
)

// LanguageOptions derives the language selector's options from repos:
// "All" followed by the sorted distinct non-empty languages.
//
// It is a pure function of its input. Callers recompute it whenever the
// repository list changes instead of caching it next to the list.
func LanguageOptions(repos []model.Repository) []string {
	seen := make(map[string]struct{})
	langs := make([]string, 0)
	for _, r := range repos {
		if r.Language == "" {
			continue
		}
		if _, ok := seen[r.Language]; ok {
			continue
		}
		seen[r.Language] = struct{}{}
		langs = append(langs, r.Language)
	}
	sort.Strings(langs)
	return append([]string{model.AllLanguages}, langs...)
}

// FilterByLanguage returns the repositories whose language is exactly lang,
// in their original order. "All" or "" selects everything.
//
// The result is always a new slice; repos is never modified.
func FilterByLanguage(repos []model.Repository, lang string) []model.Repository {
	out := make([]model.Repository, 0, len(repos))
	if lang == "" || lang == model.AllLanguages {
		return append(out, repos...)
	}
	for _, r := range repos {
		if r.Language == lang {
			out = append(out, r)
		}
	}
	return out
}
