package output

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/afero"

	"github.com/meza/js-translations/internal/lifecycle"
)

const defaultFileMode os.FileMode = 0o644

const siblingMarker = ".jstrans"

// writeFileAtomic stages data in a sibling temp file and renames it over
// targetPath. When the filesystem refuses to rename over an existing file the
// old file is moved aside first and restored if the swap fails. An existing
// target keeps its permissions.
func writeFileAtomic(fs afero.Fs, targetPath string, data []byte) error {
	mode, err := targetMode(fs, targetPath)
	if err != nil {
		return err
	}

	tempPath, err := freeSibling(fs, targetPath, ".tmp")
	if err != nil {
		return err
	}

	release := lifecycle.OnInterrupt(func(os.Signal) {
		_ = fs.Remove(tempPath)
	})
	defer release()

	if err := afero.WriteFile(fs, tempPath, data, mode); err != nil {
		return withCleanup(fs, tempPath, err)
	}
	// WriteFile is subject to the umask.
	if err := fs.Chmod(tempPath, mode); err != nil {
		return withCleanup(fs, tempPath, err)
	}

	renameErr := fs.Rename(tempPath, targetPath)
	if renameErr == nil {
		return nil
	}

	info, err := fs.Stat(targetPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return withCleanup(fs, tempPath, renameErr)
		}
		return withCleanup(fs, tempPath, err)
	}
	// Only a regular file may be moved aside.
	if !info.Mode().IsRegular() {
		return withCleanup(fs, tempPath, renameErr)
	}

	return swapThroughBackup(fs, tempPath, targetPath)
}

// targetMode returns the permissions of the regular file at targetPath, or
// the default mode when nothing exists there yet.
func targetMode(fs afero.Fs, targetPath string) (os.FileMode, error) {
	info, err := fs.Stat(targetPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultFileMode, nil
		}
		return 0, err
	}
	if !info.Mode().IsRegular() {
		return 0, fmt.Errorf("%s is not a regular file", targetPath)
	}
	return info.Mode().Perm(), nil
}

func swapThroughBackup(fs afero.Fs, tempPath string, targetPath string) error {
	backupPath, err := freeSibling(fs, targetPath, ".bak")
	if err != nil {
		return withCleanup(fs, tempPath, err)
	}

	if err := fs.Rename(targetPath, backupPath); err != nil {
		return withCleanup(fs, tempPath, err)
	}

	if err := fs.Rename(tempPath, targetPath); err != nil {
		err = withCleanup(fs, tempPath, err)
		if restoreErr := fs.Rename(backupPath, targetPath); restoreErr != nil {
			err = errors.Join(err, fmt.Errorf("failed to restore %s from %s: %w", targetPath, backupPath, restoreErr))
		}
		return err
	}

	if err := removeIfExists(fs, backupPath); err != nil {
		return fmt.Errorf("failed to remove backup file %s: %w", backupPath, err)
	}
	return nil
}

// freeSibling returns the first unused "<target>.jstrans<suffix>[.N]" path.
func freeSibling(fs afero.Fs, targetPath string, suffix string) (string, error) {
	base := targetPath + siblingMarker + suffix

	candidate := base
	for i := 1; i <= 100; i++ {
		exists, err := afero.Exists(fs, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s.%d", base, i)
	}

	return "", fmt.Errorf("no free %s path next to %s", suffix, targetPath)
}

func removeIfExists(fs afero.Fs, path string) error {
	if err := fs.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func withCleanup(fs afero.Fs, tempPath string, cause error) error {
	if err := removeIfExists(fs, tempPath); err != nil {
		return errors.Join(cause, fmt.Errorf("failed to remove temp file %s: %w", tempPath, err))
	}
	return cause
}
