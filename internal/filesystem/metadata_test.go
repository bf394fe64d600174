package filesystem

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestStat tests the metadata snapshot for a regular file
func TestStat(t *testing.T) {
	m := NewManager(nil)
	dir := tempDir(t)
	path := filepath.Join(dir, "doc.txt")
	writeFile(t, path, "hello")

	info, err := m.Stat(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "doc.txt", info.Name)
	assert.Equal(t, path, info.Path)
	assert.Equal(t, int64(5), info.Size)
	assert.False(t, info.IsDir)
	assert.Equal(t, ".txt", info.Extension)
	assert.WithinDuration(t, time.Now(), info.Modified, time.Minute)
	assert.False(t, info.Created.IsZero())
	assert.False(t, info.Accessed.IsZero())
}

// TestStatDirectory tests the snapshot for a directory
func TestStatDirectory(t *testing.T) {
	m := NewManager(nil)
	dir := tempDir(t)

	info, err := m.Stat(context.Background(), dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir)
	assert.Empty(t, info.Extension)
}

// TestStatMissing tests stat on a missing path
func TestStatMissing(t *testing.T) {
	m := NewManager(nil)

	_, err := m.Stat(context.Background(), filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

// TestMIMEType tests content-based type detection
func TestMIMEType(t *testing.T) {
	m := NewManager(nil)
	dir := tempDir(t)
	path := filepath.Join(dir, "note")
	writeFile(t, path, "plain text content\n")

	mt, err := m.MIMEType(context.Background(), path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(mt, "text/plain"), "got %q", mt)

	_, err = m.MIMEType(context.Background(), dir)
	require.Error(t, err)
	assert.True(t, IsUnsupported(err))
}

// TestChecksum tests digests against known vectors
func TestChecksum(t *testing.T) {
	tests := []struct {
		name string
		algo Algorithm
		want string
	}{
		{"md5", MD5, "5eb63bbbe01eeed093cb22bb8f5acdc3"},
		{"sha256", SHA256, "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"},
	}

	m := NewManager(nil)
	ctx := context.Background()
	path := filepath.Join(tempDir(t), "vector.txt")
	writeFile(t, path, "hello world")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sum, err := m.Checksum(ctx, path, tt.algo)
			require.NoError(t, err)
			assert.Equal(t, tt.want, sum)
		})
	}
}

// TestChecksumUnsupported tests the rejected inputs
func TestChecksumUnsupported(t *testing.T) {
	m := NewManager(nil)
	ctx := context.Background()
	dir := tempDir(t)
	path := filepath.Join(dir, "f.txt")
	writeFile(t, path, "x")

	_, err := m.Checksum(ctx, path, Algorithm("crc32"))
	require.Error(t, err)

	_, err = m.Checksum(ctx, dir, SHA256)
	require.Error(t, err)
	assert.True(t, IsUnsupported(err))

	_, err = m.Checksum(ctx, filepath.Join(dir, "missing"), SHA256)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

// TestFormatBytes tests human-readable size formatting
func TestFormatBytes(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1023, "1023 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{1048576, "1.00 MB"},
		{5 * 1048576, "5.00 MB"},
		{1073741824, "1.00 GB"},
		{1099511627776, "1.00 TB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatBytes(tt.bytes))
		})
	}
}
