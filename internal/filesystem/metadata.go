package filesystem

import (
	"context"
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/fsman/internal/shared/paths"
)

// Algorithm selects the checksum algorithm.
type Algorithm string

const (
	// MD5 is faster but collision-prone; fine for content comparison.
	MD5 Algorithm = "md5"
	// SHA256 is the recommended default.
	SHA256 Algorithm = "sha256"
)

// Stat returns a metadata snapshot for path.
func (m *Manager) Stat(ctx context.Context, path string) (FileInfo, error) {
	p, err := paths.Validate(path, true)
	if err != nil {
		return FileInfo{}, m.fail(opError("stat", path, err))
	}

	info, err := m.fileInfo(p)
	if err != nil {
		return FileInfo{}, m.fail(opError("stat", p, err))
	}

	m.stats.addFile()
	m.stats.addSuccess()
	m.log.Debug("stat", zap.String("path", p), zap.Int64("size", info.Size))
	return info, nil
}

// MIMEType detects the MIME type of a file by content.
func (m *Manager) MIMEType(ctx context.Context, path string) (string, error) {
	p, err := paths.Validate(path, true)
	if err != nil {
		return "", m.fail(opError("stat", path, err))
	}
	if paths.IsDir(p) {
		return "", m.fail(kindError(KindUnsupported, "stat", p, ErrIsDirectory))
	}

	mtype, err := mimetype.DetectFile(p)
	if err != nil {
		return "", m.fail(opError("stat", p, err))
	}
	return mtype.String(), nil
}

// Checksum computes the hex digest of a regular file, streaming in 32 KB
// chunks so large files never load fully into memory.
func (m *Manager) Checksum(ctx context.Context, path string, algo Algorithm) (string, error) {
	p, err := paths.Validate(path, true)
	if err != nil {
		return "", m.fail(opError("hash", path, err))
	}
	if paths.IsDir(p) {
		return "", m.fail(kindError(KindUnsupported, "hash", p, ErrIsDirectory))
	}

	var h hash.Hash
	switch algo {
	case MD5:
		h = md5.New()
	case SHA256:
		h = sha256.New()
	default:
		return "", m.fail(kindError(KindGeneric, "hash", p, fmt.Errorf("unsupported algorithm: %s", algo)))
	}

	f, err := os.Open(p)
	if err != nil {
		return "", m.fail(opError("hash", p, err))
	}
	defer f.Close()

	buf := make([]byte, 32*1024)
	for {
		select {
		case <-ctx.Done():
			return "", m.fail(opError("hash", p, ctx.Err()))
		default:
		}

		n, err := f.Read(buf)
		if n > 0 {
			h.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", m.fail(opError("hash", p, err))
		}
	}

	sum := hex.EncodeToString(h.Sum(nil))
	m.stats.addFile()
	m.stats.addSuccess()
	m.log.Info("computed checksum", zap.String("path", p), zap.String("algorithm", string(algo)))
	return sum, nil
}

// FormatBytes formats bytes to human-readable size
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	units := []string{"KB", "MB", "GB", "TB", "PB"}
	return fmt.Sprintf("%.2f %s", float64(bytes)/float64(div), units[exp])
}
