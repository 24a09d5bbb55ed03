package model

import "fmt"

// Theme is the two-valued colour scheme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// DefaultTheme is used when a visitor has no stored preference, or when the
// stored value is not a valid theme.
const DefaultTheme = ThemeDark

// ParseTheme converts a stored string into a Theme.
// Anything other than "light" or "dark" is rejected.
func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case ThemeLight, ThemeDark:
		return Theme(s), nil
	}
	return "", fmt.Errorf("model: invalid theme %q", s)
}

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

func (t Theme) String() string {
	return string(t)
}
