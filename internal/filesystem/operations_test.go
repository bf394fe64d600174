package filesystem

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCopyFile tests copying into a new path inside an existing directory
func TestCopyFile(t *testing.T) {
	m := NewManager(nil)
	ctx := context.Background()
	dir := tempDir(t)

	src := filepath.Join(dir, "a.txt")
	writeFile(t, src, "payload")
	dst := filepath.Join(dir, "b.txt")

	copied, err := m.Copy(ctx, src, dst, false)
	require.NoError(t, err)
	assert.Equal(t, dst, copied)

	data, err := os.ReadFile(copied)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
	assert.FileExists(t, src)

	snap := m.Stats()
	assert.Equal(t, int64(1), snap.FilesProcessed)
	assert.Equal(t, int64(1), snap.Succeeded)
}

// TestCopyIntoDirectory tests that a directory destination receives the
// source's base name
func TestCopyIntoDirectory(t *testing.T) {
	m := NewManager(nil)
	dir := tempDir(t)

	src := filepath.Join(dir, "a.txt")
	writeFile(t, src, "x")
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))

	copied, err := m.Copy(context.Background(), src, sub, false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(sub, "a.txt"), copied)
}

// TestCopyDestAnchorsAtExistingFile tests that a destination naming an
// existing file anchors at that file's parent, so the copy lands next to it
// under the source's own name
func TestCopyDestAnchorsAtExistingFile(t *testing.T) {
	m := NewManager(nil)
	dir := tempDir(t)

	src := filepath.Join(dir, "src", "a.txt")
	writeFile(t, src, "x")
	other := filepath.Join(dir, "dst", "b.txt")
	writeFile(t, other, "y")

	copied, err := m.Copy(context.Background(), src, other, false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "dst", "a.txt"), copied)

	// The named file is untouched
	data, err := os.ReadFile(other)
	require.NoError(t, err)
	assert.Equal(t, "y", string(data))
}

// TestCopyOverwrite tests the overwrite flag against an existing destination
func TestCopyOverwrite(t *testing.T) {
	m := NewManager(nil)
	ctx := context.Background()
	dir := tempDir(t)

	src := filepath.Join(dir, "src", "same.txt")
	writeFile(t, src, "new")
	dst := filepath.Join(dir, "dst", "same.txt")
	writeFile(t, dst, "old")

	_, err := m.Copy(ctx, src, filepath.Join(dir, "dst"), false)
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrExist)

	copied, err := m.Copy(ctx, src, filepath.Join(dir, "dst"), true)
	require.NoError(t, err)

	data, err := os.ReadFile(copied)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

// TestCopyPreservesMode tests that permissions survive the copy
func TestCopyPreservesMode(t *testing.T) {
	m := NewManager(nil)
	dir := tempDir(t)

	src := filepath.Join(dir, "run.sh")
	writeFile(t, src, "#!/bin/sh\n")
	require.NoError(t, os.Chmod(src, 0o755))

	copied, err := m.Copy(context.Background(), src, filepath.Join(dir, "copy.sh"), false)
	require.NoError(t, err)

	info, err := os.Stat(copied)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
}

// TestCopyRejectsDirectory tests that directory sources are unsupported
func TestCopyRejectsDirectory(t *testing.T) {
	m := NewManager(nil)
	dir := tempDir(t)

	_, err := m.Copy(context.Background(), dir, filepath.Join(dir, "out"), false)
	require.Error(t, err)
	assert.True(t, IsUnsupported(err))
}

// TestCopyMissingSource tests copying a path that does not exist
func TestCopyMissingSource(t *testing.T) {
	m := NewManager(nil)
	dir := tempDir(t)

	_, err := m.Copy(context.Background(), filepath.Join(dir, "nope.txt"), dir, false)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Equal(t, int64(1), m.Stats().Failed)
}

// TestMoveFile tests that a move removes the source
func TestMoveFile(t *testing.T) {
	m := NewManager(nil)
	dir := tempDir(t)

	src := filepath.Join(dir, "a.txt")
	writeFile(t, src, "payload")
	dst := filepath.Join(dir, "moved.txt")

	moved, err := m.Move(context.Background(), src, dst, false)
	require.NoError(t, err)
	assert.Equal(t, dst, moved)
	assert.NoFileExists(t, src)

	data, err := os.ReadFile(moved)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

// TestMoveOverwrite tests moving onto an existing destination
func TestMoveOverwrite(t *testing.T) {
	m := NewManager(nil)
	ctx := context.Background()
	dir := tempDir(t)

	src := filepath.Join(dir, "src", "same.txt")
	writeFile(t, src, "new")
	dst := filepath.Join(dir, "dst", "same.txt")
	writeFile(t, dst, "old")

	_, err := m.Move(ctx, src, filepath.Join(dir, "dst"), false)
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrExist)
	assert.FileExists(t, src)

	moved, err := m.Move(ctx, src, filepath.Join(dir, "dst"), true)
	require.NoError(t, err)
	assert.NoFileExists(t, src)

	data, err := os.ReadFile(moved)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

// TestRename tests renaming files and directories in place
func TestRename(t *testing.T) {
	m := NewManager(nil)
	ctx := context.Background()
	dir := tempDir(t)

	src := filepath.Join(dir, "old.txt")
	writeFile(t, src, "x")

	renamed, err := m.Rename(ctx, src, "new.txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "new.txt"), renamed)
	assert.NoFileExists(t, src)
	assert.FileExists(t, renamed)

	// Directories rename the same way
	sub := filepath.Join(dir, "olddir")
	require.NoError(t, os.Mkdir(sub, 0o755))
	renamed, err = m.Rename(ctx, sub, "newdir")
	require.NoError(t, err)
	assert.DirExists(t, renamed)
}

// TestRenameInvalidName tests the rejected name shapes
func TestRenameInvalidName(t *testing.T) {
	tests := []struct {
		name    string
		newName string
	}{
		{"empty", ""},
		{"slash", "a/b.txt"},
		{"backslash", `a\b.txt`},
	}

	m := NewManager(nil)
	ctx := context.Background()
	dir := tempDir(t)
	src := filepath.Join(dir, "file.txt")
	writeFile(t, src, "x")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Rename(ctx, src, tt.newName)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidName)
		})
	}
}

// TestRenameExistingTarget tests that a rename never clobbers
func TestRenameExistingTarget(t *testing.T) {
	m := NewManager(nil)
	dir := tempDir(t)

	src := filepath.Join(dir, "a.txt")
	writeFile(t, src, "a")
	writeFile(t, filepath.Join(dir, "b.txt"), "b")

	_, err := m.Rename(context.Background(), src, "b.txt")
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrExist)
	assert.FileExists(t, src)
}

// TestChangeExtension tests swapping a file's extension
func TestChangeExtension(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		newExt string
		want   string
	}{
		{"with dot", "a.txt", ".md", "a.md"},
		{"without dot", "b.txt", "md", "b.md"},
		{"multi dot keeps prefix", "archive.tar.gz", ".zip", "archive.tar.zip"},
		{"no extension gains one", "README", ".txt", "README.txt"},
		{"dotfile gains one", ".profile", ".bak", ".profile.bak"},
	}

	m := NewManager(nil)
	ctx := context.Background()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := tempDir(t)
			src := filepath.Join(dir, tt.file)
			writeFile(t, src, "content")

			changed, err := m.ChangeExtension(ctx, src, tt.newExt)
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(dir, tt.want), changed)
			assert.NoFileExists(t, src)
			assert.FileExists(t, changed)
		})
	}
}

// TestChangeExtensionInvalid tests the rejected inputs
func TestChangeExtensionInvalid(t *testing.T) {
	m := NewManager(nil)
	ctx := context.Background()
	dir := tempDir(t)

	src := filepath.Join(dir, "a.txt")
	writeFile(t, src, "x")

	for _, ext := range []string{"", "."} {
		_, err := m.ChangeExtension(ctx, src, ext)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidName)
	}

	// Directories are refused
	_, err := m.ChangeExtension(ctx, dir, ".txt")
	require.Error(t, err)
	assert.True(t, IsUnsupported(err))

	// Swapping onto the current extension collides with the source itself
	_, err = m.ChangeExtension(ctx, src, ".txt")
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrExist)
}

// TestBulkChangeExtensions tests the bulk rename with case-insensitive
// extension matching
func TestBulkChangeExtensions(t *testing.T) {
	m := NewManager(nil)
	dir := tempDir(t)

	writeFile(t, filepath.Join(dir, "a.txt"), "a")
	writeFile(t, filepath.Join(dir, "b.TXT"), "b")
	writeFile(t, filepath.Join(dir, "c.doc"), "c")

	snap, err := m.BulkChangeExtensions(context.Background(), dir, []string{".txt"}, ".md", false)
	require.NoError(t, err)

	assert.Equal(t, int64(2), snap.FilesProcessed)
	assert.Equal(t, int64(2), snap.Succeeded)
	assert.Equal(t, int64(0), snap.Failed)

	assert.FileExists(t, filepath.Join(dir, "a.md"))
	assert.FileExists(t, filepath.Join(dir, "b.md"))
	assert.FileExists(t, filepath.Join(dir, "c.doc"))
	assert.NoFileExists(t, filepath.Join(dir, "a.txt"))
}

// TestBulkChangeExtensionsConflict tests that an existing target is skipped
// and counted as a failure
func TestBulkChangeExtensionsConflict(t *testing.T) {
	m := NewManager(nil)
	dir := tempDir(t)

	writeFile(t, filepath.Join(dir, "x.txt"), "txt")
	writeFile(t, filepath.Join(dir, "x.md"), "md")

	snap, err := m.BulkChangeExtensions(context.Background(), dir, []string{".txt"}, ".md", false)
	require.NoError(t, err)

	assert.Equal(t, int64(1), snap.FilesProcessed)
	assert.Equal(t, int64(0), snap.Succeeded)
	assert.Equal(t, int64(1), snap.Failed)

	// Both originals survive
	data, err := os.ReadFile(filepath.Join(dir, "x.md"))
	require.NoError(t, err)
	assert.Equal(t, "md", string(data))
	assert.FileExists(t, filepath.Join(dir, "x.txt"))
}

// TestBulkChangeExtensionsRecursive tests that nested files are only touched
// when recursive is set
func TestBulkChangeExtensionsRecursive(t *testing.T) {
	m := NewManager(nil)
	ctx := context.Background()
	dir := tempDir(t)

	writeFile(t, filepath.Join(dir, "top.txt"), "t")
	writeFile(t, filepath.Join(dir, "sub", "nested.txt"), "n")

	snap, err := m.BulkChangeExtensions(ctx, dir, []string{".txt"}, ".md", false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), snap.FilesProcessed)
	assert.FileExists(t, filepath.Join(dir, "sub", "nested.txt"))

	snap, err = m.BulkChangeExtensions(ctx, dir, []string{".txt"}, ".md", true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), snap.FilesProcessed)
	assert.FileExists(t, filepath.Join(dir, "sub", "nested.md"))
}

// TestBulkChangeExtensionsInvalid tests rejected arguments
func TestBulkChangeExtensionsInvalid(t *testing.T) {
	m := NewManager(nil)
	ctx := context.Background()
	dir := tempDir(t)

	_, err := m.BulkChangeExtensions(ctx, dir, []string{".txt"}, "", false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidName)

	file := filepath.Join(dir, "f.txt")
	writeFile(t, file, "x")
	_, err = m.BulkChangeExtensions(ctx, file, []string{".txt"}, ".md", false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotDirectory)

	_, err = m.BulkChangeExtensions(ctx, filepath.Join(dir, "missing"), []string{".txt"}, ".md", false)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

// TestBulkChangeExtensionsResetsStats tests that each run reports only its
// own work
func TestBulkChangeExtensionsResetsStats(t *testing.T) {
	m := NewManager(nil)
	ctx := context.Background()
	dir := tempDir(t)

	writeFile(t, filepath.Join(dir, "a.txt"), "a")
	_, err := m.BulkChangeExtensions(ctx, dir, []string{".txt"}, ".md", false)
	require.NoError(t, err)

	writeFile(t, filepath.Join(dir, "b.txt"), "b")
	snap, err := m.BulkChangeExtensions(ctx, dir, []string{".txt"}, ".md", false)
	require.NoError(t, err)

	assert.Equal(t, int64(1), snap.FilesProcessed)
	assert.Equal(t, int64(1), snap.Succeeded)
}

// TestNormalizeExt tests the extension normalization helper
func TestNormalizeExt(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{".txt", ".txt"},
		{"txt", ".txt"},
		{".", "."},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeExt(tt.in))
	}
}

// TestExtOf tests extension extraction, dotfiles included
func TestExtOf(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"a.txt", ".txt"},
		{"/tmp/a.tar.gz", ".gz"},
		{"README", ""},
		{".profile", ""},
		{".profile.bak", ".bak"},
		{"dir.d/file", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, extOf(tt.path))
		})
	}
}
