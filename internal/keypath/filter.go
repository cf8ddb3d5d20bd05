package keypath

import (
	"slices"

	"github.com/meza/js-translations/internal/transignore"
)

// Reasons reported by Filter.Skip.
const (
	ExcludedLocale  = "excluded locale"
	ExcludedFile    = "excluded file"
	ExcludedPattern = "ignore pattern"
)

// Filter drops source files by locale, exact path or glob pattern.
// Extension exclusion happens earlier, during discovery.
type Filter struct {
	Locales  []string
	Files    []string
	Patterns []string
}

// Skip reports whether key must not contribute to the dictionary, and why.
// Files are matched both with and without the locale directory.
func (f Filter) Skip(key Key) (bool, string) {
	if slices.Contains(f.Locales, key.Locale) {
		return true, ExcludedLocale
	}
	if slices.Contains(f.Files, key.Relative) {
		return true, ExcludedFile
	}
	if key.Pathname != "" && slices.Contains(f.Files, key.Pathname) {
		return true, ExcludedFile
	}
	if transignore.Matches(key.Relative, f.Patterns) {
		return true, ExcludedPattern
	}
	return false, ""
}
