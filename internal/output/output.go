// Package output writes the rendered dictionary to its destination.
package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/meza/js-translations/internal/perf"
)

// WriteError means the destination could not be replaced. The previous
// content, if any, is left in place.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("Unable to write %s: %s", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Write replaces destination with data in a single rename. The parent
// directory must already exist and a directory is never replaced.
func Write(fs afero.Fs, destination string, data []byte) error {
	region := perf.StartRegion("io.output.write")
	region.SetDetail("destination", destination)
	region.SetDetail("bytes", len(data))
	defer region.End()

	parent := filepath.Dir(destination)
	isDir, err := afero.IsDir(fs, parent)
	if err != nil {
		if os.IsNotExist(err) {
			return &WriteError{Path: destination, Err: errors.Errorf("directory %s does not exist", parent)}
		}
		return &WriteError{Path: destination, Err: errors.Wrapf(err, "checking directory %s", parent)}
	}
	if !isDir {
		return &WriteError{Path: destination, Err: errors.Errorf("%s is not a directory", parent)}
	}

	info, err := fs.Stat(destination)
	switch {
	case err == nil && info.IsDir():
		return &WriteError{Path: destination, Err: errors.Errorf("%s is a directory", destination)}
	case err != nil && !os.IsNotExist(err):
		return &WriteError{Path: destination, Err: errors.Wrapf(err, "checking %s", destination)}
	}

	if err := writeFileAtomic(fs, destination, data); err != nil {
		return &WriteError{Path: destination, Err: err}
	}
	return nil
}
