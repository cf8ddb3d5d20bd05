package fileutils

import (
	"github.com/spf13/afero"
)

// FileExists reports whether path exists. Errors while checking count as absent.
func FileExists(path string, filesystem ...afero.Fs) bool {
	fs := InitFilesystem(filesystem...)

	exists, _ := afero.Exists(fs, path)
	return exists
}

// InitFilesystem returns the first non-nil filesystem given, or the OS filesystem.
func InitFilesystem(filesystem ...afero.Fs) afero.Fs {
	if len(filesystem) > 0 && filesystem[0] != nil {
		return filesystem[0]
	}

	return afero.NewOsFs()
}
