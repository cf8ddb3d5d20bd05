package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type renameFailFs struct {
	afero.Fs
	failures []renameFailure
}

type renameFailure struct {
	old                string
	new                string
	onlyWhenDestExists bool
}

func (r renameFailFs) Rename(oldname, newname string) error {
	for _, failure := range r.failures {
		if failure.old != "" && oldname != failure.old {
			continue
		}
		if failure.new != "" && newname != failure.new {
			continue
		}
		if failure.onlyWhenDestExists {
			exists, err := afero.Exists(r.Fs, newname)
			if err != nil || !exists {
				continue
			}
		}
		return errors.New("rename failed")
	}
	return r.Fs.Rename(oldname, newname)
}

type removeErrorFs struct {
	afero.Fs
	failPath string
}

func (r removeErrorFs) Remove(name string) error {
	if filepath.Clean(name) == filepath.Clean(r.failPath) {
		return errors.New("remove failed")
	}
	return r.Fs.Remove(name)
}

type statErrorFs struct {
	afero.Fs
	failPath string
}

func (s statErrorFs) Stat(name string) (os.FileInfo, error) {
	if filepath.Clean(name) == filepath.Clean(s.failPath) {
		return nil, errors.New("stat failed")
	}
	return s.Fs.Stat(name)
}

func seed(t *testing.T, fs afero.Fs, path string, content string) {
	t.Helper()
	require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0o755))
	if content != "" {
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
	}
}

func assertMissing(t *testing.T, fs afero.Fs, path string) {
	t.Helper()
	exists, err := afero.Exists(fs, path)
	require.NoError(t, err)
	assert.False(t, exists, "%s should not exist", path)
}

func TestWriteFileAtomicCreatesMissingTarget(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := filepath.FromSlash("/public/js/translations.js")
	seed(t, fs, path, "")

	require.NoError(t, writeFileAtomic(fs, path, []byte("export default {};")))

	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.Equal(t, "export default {};", string(data))
	assertMissing(t, fs, path+".jstrans.tmp")
}

func TestWriteFileAtomicReplacesExistingTarget(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := filepath.FromSlash("/public/translations.json")
	seed(t, fs, path, `{"en":{}}`)

	require.NoError(t, writeFileAtomic(fs, path, []byte(`{"de":{}}`)))

	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.Equal(t, `{"de":{}}`, string(data))
}

func TestWriteFileAtomicSkipsOccupiedTempPath(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := filepath.FromSlash("/public/translations.json")
	seed(t, fs, path, "old")
	require.NoError(t, afero.WriteFile(fs, path+".jstrans.tmp", []byte("someone else"), 0o644))

	require.NoError(t, writeFileAtomic(fs, path, []byte("new")))

	data, err := afero.ReadFile(fs, path+".jstrans.tmp")
	require.NoError(t, err)
	assert.Equal(t, "someone else", string(data))
	assertMissing(t, fs, path+".jstrans.tmp.1")
}

func TestWriteFileAtomicCleansUpWhenRenameToMissingTargetFails(t *testing.T) {
	base := afero.NewMemMapFs()
	path := filepath.FromSlash("/public/translations.json")
	seed(t, base, path, "")

	fs := renameFailFs{Fs: base, failures: []renameFailure{{old: path + ".jstrans.tmp", new: path}}}

	assert.Error(t, writeFileAtomic(fs, path, []byte("new")))
	assertMissing(t, base, path)
	assertMissing(t, base, path+".jstrans.tmp")
}

func TestWriteFileAtomicReportsTempCleanupFailure(t *testing.T) {
	base := afero.NewMemMapFs()
	path := filepath.FromSlash("/public/translations.json")
	seed(t, base, path, "")

	fs := removeErrorFs{
		Fs:       renameFailFs{Fs: base, failures: []renameFailure{{old: path + ".jstrans.tmp", new: path}}},
		failPath: path + ".jstrans.tmp",
	}

	err := writeFileAtomic(fs, path, []byte("new"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to remove temp file")
}

func TestWriteFileAtomicSwapsThroughBackupWhenOverwriteIsRefused(t *testing.T) {
	base := afero.NewMemMapFs()
	path := filepath.FromSlash("/public/translations.json")
	seed(t, base, path, "old")

	fs := renameFailFs{Fs: base, failures: []renameFailure{{
		old:                path + ".jstrans.tmp",
		new:                path,
		onlyWhenDestExists: true,
	}}}

	require.NoError(t, writeFileAtomic(fs, path, []byte("new")))

	data, err := afero.ReadFile(base, path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
	assertMissing(t, base, path+".jstrans.bak")
	assertMissing(t, base, path+".jstrans.tmp")
}

func TestWriteFileAtomicKeepsOldContentWhenBackupRenameFails(t *testing.T) {
	base := afero.NewMemMapFs()
	path := filepath.FromSlash("/public/translations.json")
	seed(t, base, path, "old")

	fs := renameFailFs{Fs: base, failures: []renameFailure{
		{old: path + ".jstrans.tmp", new: path},
		{old: path, new: path + ".jstrans.bak"},
	}}

	assert.Error(t, writeFileAtomic(fs, path, []byte("new")))

	data, err := afero.ReadFile(base, path)
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))
	assertMissing(t, base, path+".jstrans.tmp")
}

func TestWriteFileAtomicRestoresBackupWhenSwapFails(t *testing.T) {
	base := afero.NewMemMapFs()
	path := filepath.FromSlash("/public/translations.json")
	seed(t, base, path, "old")

	fs := renameFailFs{Fs: base, failures: []renameFailure{{old: path + ".jstrans.tmp", new: path}}}

	assert.Error(t, writeFileAtomic(fs, path, []byte("new")))

	data, err := afero.ReadFile(base, path)
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))
	assertMissing(t, base, path+".jstrans.bak")
}

func TestWriteFileAtomicReportsFailedRestore(t *testing.T) {
	base := afero.NewMemMapFs()
	path := filepath.FromSlash("/public/translations.json")
	seed(t, base, path, "old")

	fs := renameFailFs{Fs: base, failures: []renameFailure{
		{old: path + ".jstrans.tmp", new: path},
		{old: path + ".jstrans.bak", new: path},
	}}

	err := writeFileAtomic(fs, path, []byte("new"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to restore")
}

func TestWriteFileAtomicReportsBackupCleanupFailure(t *testing.T) {
	base := afero.NewMemMapFs()
	path := filepath.FromSlash("/public/translations.json")
	seed(t, base, path, "old")

	fs := removeErrorFs{
		Fs: renameFailFs{Fs: base, failures: []renameFailure{{
			old:                path + ".jstrans.tmp",
			new:                path,
			onlyWhenDestExists: true,
		}}},
		failPath: path + ".jstrans.bak",
	}

	err := writeFileAtomic(fs, path, []byte("new"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to remove backup file")
}

func TestFreeSiblingGivesUpAfterHundredCandidates(t *testing.T) {
	fs := afero.NewMemMapFs()
	target := filepath.FromSlash("/public/translations.json")
	seed(t, fs, target, "")

	base := target + ".jstrans.tmp"
	require.NoError(t, afero.WriteFile(fs, base, []byte("x"), 0o644))
	for i := 1; i < 100; i++ {
		require.NoError(t, afero.WriteFile(fs, fmt.Sprintf("%s.%d", base, i), []byte("x"), 0o644))
	}

	_, err := freeSibling(fs, target, ".tmp")
	assert.Error(t, err)
}

func TestFreeSiblingReturnsStatError(t *testing.T) {
	target := filepath.FromSlash("/public/translations.json")
	fs := statErrorFs{Fs: afero.NewMemMapFs(), failPath: target + ".jstrans.tmp"}

	_, err := freeSibling(fs, target, ".tmp")
	assert.Error(t, err)
}

func TestWriteFileAtomicKeepsExistingPermissions(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := filepath.FromSlash("/public/translations.json")
	seed(t, fs, path, "")
	require.NoError(t, afero.WriteFile(fs, path, []byte("old"), 0o600))

	require.NoError(t, writeFileAtomic(fs, path, []byte("new")))

	info, err := fs.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestWriteFileAtomicUsesDefaultModeForNewTarget(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := filepath.FromSlash("/public/translations.json")
	seed(t, fs, path, "")

	require.NoError(t, writeFileAtomic(fs, path, []byte("new")))

	info, err := fs.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, defaultFileMode, info.Mode().Perm())
}

func TestWriteFileAtomicRefusesDirectoryTarget(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := filepath.FromSlash("/public/assets")
	require.NoError(t, fs.MkdirAll(filepath.Join(path, "js"), 0o755))

	err := writeFileAtomic(fs, path, []byte("new"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a regular file")

	isDir, dirErr := afero.DirExists(fs, filepath.Join(path, "js"))
	require.NoError(t, dirErr)
	assert.True(t, isDir)
	assertMissing(t, fs, path+".jstrans.tmp")
	assertMissing(t, fs, path+".jstrans.bak")
}

func TestWriteFileAtomicDoesNotSwapNonRegularTarget(t *testing.T) {
	base := afero.NewMemMapFs()
	path := filepath.FromSlash("/public/assets")
	seed(t, base, path, "")

	// The target turns into a directory between the mode check and the rename.
	fs := renameFailFs{Fs: base, failures: []renameFailure{{old: path + ".jstrans.tmp", new: path}}}
	mkdirOnRename := mkdirBeforeRenameFs{renameFailFs: fs, dir: path}

	err := writeFileAtomic(mkdirOnRename, path, []byte("new"))
	require.Error(t, err)

	isDir, dirErr := afero.IsDir(base, path)
	require.NoError(t, dirErr)
	assert.True(t, isDir)
	assertMissing(t, base, path+".jstrans.bak")
	assertMissing(t, base, path+".jstrans.tmp")
}

type mkdirBeforeRenameFs struct {
	renameFailFs
	dir string
}

func (m mkdirBeforeRenameFs) Rename(oldname, newname string) error {
	if filepath.Clean(newname) == filepath.Clean(m.dir) {
		if err := m.renameFailFs.Fs.MkdirAll(m.dir, 0o755); err != nil {
			return err
		}
	}
	return m.renameFailFs.Rename(oldname, newname)
}
