// Package transignore matches translation files against glob exclusion
// patterns taken from the bundle config and the source directory's
// .jstransignore file.
package transignore

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/meza/js-translations/internal/constants"
)

// ListPatterns returns the configured patterns followed by the ones found in
// <sourceDir>/.jstransignore. Blank lines and lines starting with # are skipped.
func ListPatterns(fs afero.Fs, sourceDir string, configured []string) ([]string, error) {
	patterns := make([]string, 0, len(configured))
	for _, pattern := range configured {
		if pattern = normalize(pattern); pattern != "" {
			patterns = append(patterns, pattern)
		}
	}

	ignoreFile := filepath.Join(sourceDir, constants.IgnoreFileName)
	exists, err := afero.Exists(fs, ignoreFile)
	if err != nil {
		return nil, err
	}
	if !exists {
		return patterns, nil
	}

	data, err := afero.ReadFile(fs, ignoreFile)
	if err != nil {
		return nil, err
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, normalize(line))
	}

	return patterns, nil
}

// Matches reports whether the slash separated path relative to the source
// directory matches any pattern. "**" spans any number of directories.
func Matches(relative string, patterns []string) bool {
	relative = strings.TrimPrefix(filepath.ToSlash(relative), "./")
	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}
		if globMatch(pattern, relative) {
			return true
		}
	}
	return false
}

func normalize(pattern string) string {
	pattern = filepath.ToSlash(strings.TrimSpace(pattern))
	return strings.TrimPrefix(pattern, "./")
}

func globMatch(pattern string, target string) bool {
	patternParts := strings.Split(pattern, "/")
	targetParts := strings.Split(target, "/")

	var match func(pi, ti int) bool
	match = func(pi, ti int) bool {
		if pi == len(patternParts) {
			return ti == len(targetParts)
		}

		part := patternParts[pi]
		if part == "**" {
			for skip := ti; skip <= len(targetParts); skip++ {
				if match(pi+1, skip) {
					return true
				}
			}
			return false
		}

		if ti >= len(targetParts) {
			return false
		}

		ok, err := path.Match(part, targetParts[ti])
		if err != nil || !ok {
			return false
		}
		return match(pi+1, ti+1)
	}

	return match(0, 0)
}
