package config

import (
	"path/filepath"
	"strings"
)

// Metadata locates the config file a store was read from. Relative paths in
// that file are anchored at its directory.
type Metadata struct {
	ConfigPath string
}

func NewMetadata(configPath string) Metadata {
	return Metadata{ConfigPath: configPath}
}

func (m Metadata) Dir() string {
	if m.ConfigPath == "" {
		return ""
	}
	return filepath.Dir(filepath.FromSlash(m.ConfigPath))
}

// ResolvePath anchors a relative path at the config file's directory. Empty
// and absolute paths, and every path when no config file was read, are
// returned unchanged.
func (m Metadata) ResolvePath(path string) string {
	if path == "" || m.ConfigPath == "" || isAbsoluteOrRootedPath(path) {
		return path
	}
	return filepath.Join(m.Dir(), filepath.FromSlash(path))
}

func isAbsoluteOrRootedPath(path string) bool {
	if filepath.IsAbs(path) {
		return true
	}
	return strings.HasPrefix(path, "/") || strings.HasPrefix(path, "\\")
}
