// Package discovery finds translation source files below a root directory.
package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/meza/js-translations/internal/perf"
)

// SourceFile is one translation file. Relative uses forward slashes
// regardless of platform and includes the locale directory.
type SourceFile struct {
	Path      string
	Relative  string
	Extension string
}

// PathError means the source directory cannot be used.
type PathError struct {
	Path   string
	Reason string
}

func (e *PathError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("Invalid source path: %s", e.Reason)
	}
	return fmt.Sprintf("Invalid source path %s: %s", e.Path, e.Reason)
}

// List walks root and returns every file whose extension is in extensions,
// sorted by relative path. Names starting with a dot are skipped, and hidden
// directories are not descended into.
func List(fs afero.Fs, root string, extensions []string) ([]SourceFile, error) {
	region := perf.StartRegion("io.source.discover")
	region.SetDetail("root", root)
	defer region.End()

	if err := checkRoot(fs, root); err != nil {
		return nil, err
	}

	allowed := make(map[string]struct{}, len(extensions))
	for _, extension := range extensions {
		allowed[extension] = struct{}{}
	}

	var files []SourceFile
	err := afero.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		if strings.HasPrefix(info.Name(), ".") {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() {
			return nil
		}
		if !isFile(fs, path, info) {
			return nil
		}

		extension := strings.TrimPrefix(filepath.Ext(info.Name()), ".")
		if _, ok := allowed[extension]; !ok || extension == "" {
			return nil
		}

		relative, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, SourceFile{
			Path:      path,
			Relative:  filepath.ToSlash(relative),
			Extension: extension,
		})
		return nil
	})
	if err != nil {
		return nil, &PathError{Path: root, Reason: err.Error()}
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Relative < files[j].Relative
	})
	region.SetDetail("files", len(files))
	return files, nil
}

// AllowedExtensions removes excluded from enabled, keeping the declared order.
func AllowedExtensions(enabled []string, excluded []string) []string {
	skip := make(map[string]struct{}, len(excluded))
	for _, extension := range excluded {
		skip[extension] = struct{}{}
	}

	allowed := make([]string, 0, len(enabled))
	for _, extension := range enabled {
		if _, ok := skip[extension]; ok {
			continue
		}
		allowed = append(allowed, extension)
	}
	return allowed
}

func checkRoot(fs afero.Fs, root string) error {
	if root == "" {
		return &PathError{Reason: "no source path configured"}
	}

	info, err := fs.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return &PathError{Path: root, Reason: "directory does not exist"}
		}
		return &PathError{Path: root, Reason: err.Error()}
	}
	if !info.IsDir() {
		return &PathError{Path: root, Reason: "not a directory"}
	}
	return nil
}

// isFile accepts regular files and symlinks that resolve to one. Walk uses
// Lstat where the filesystem supports it.
func isFile(fs afero.Fs, path string, info os.FileInfo) bool {
	mode := info.Mode()
	if mode.IsRegular() {
		return true
	}
	if mode&os.ModeSymlink == 0 {
		return false
	}
	target, err := fs.Stat(path)
	return err == nil && target.Mode().IsRegular()
}
