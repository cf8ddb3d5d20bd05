// Package keypath turns a translation file's location into the dotted key
// its content is merged under.
package keypath

import (
	"strings"
)

// Key locates one source file in the merged dictionary.
type Key struct {
	// Locale is the first path segment.
	Locale string
	// Relative is the slash separated path below the source root.
	Relative string
	// Pathname is Relative without the locale directory, extension included.
	// Empty for a file that sits directly in the source root.
	Pathname string
	// Path is locale[.namespace][.segment...].
	Path string
}

// Derive builds the key for the slash separated relative path of a file with
// the given extension. Dots inside file names are not escaped, so
// en/auth.login.php and en/auth/login.php share a key.
//
// A file directly in the source root (en.json) keys the whole locale: its
// entries are merged into "en" rather than nested under a "json" segment with
// an empty leaf.
func Derive(relative string, extension string, namespace string) Key {
	relative = strings.TrimPrefix(relative, "/")
	suffix := "." + extension

	locale, pathname, nested := strings.Cut(relative, "/")
	if !nested {
		// en.json: the file itself is the locale
		locale = strings.TrimSuffix(locale, suffix)
		pathname = ""
	}

	segments := []string{locale}
	if namespace != "" {
		segments = append(segments, namespace)
	}
	if stem := strings.TrimSuffix(pathname, suffix); stem != "" {
		segments = append(segments, strings.ReplaceAll(stem, "/", "."))
	}

	return Key{
		Locale:   locale,
		Relative: relative,
		Pathname: pathname,
		Path:     strings.Join(segments, "."),
	}
}
