package filesystem

import (
	"context"
	"io/fs"
	"os"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/fsman/internal/shared/paths"
)

// CreateFile creates a new file and returns its resolved path. An existing
// file is never touched. Structured extensions receive a seed payload (see
// initialContent); otherwise content is written verbatim, with nil producing
// an empty file.
func (m *Manager) CreateFile(ctx context.Context, path string, content []byte) (string, error) {
	p, err := paths.Validate(path, false)
	if err != nil {
		return "", m.fail(opError("create", path, err))
	}
	if paths.Exists(p) {
		return "", m.fail(kindError(KindGeneric, "create", p, fs.ErrExist))
	}

	data := content
	if seed, ok := initialContent(extOf(p)); ok {
		data = seed
	}

	if err := os.WriteFile(p, data, 0o644); err != nil {
		return "", m.fail(opError("create", p, err))
	}

	m.stats.addFile()
	m.stats.addSuccess()
	m.log.Info("created file", zap.String("path", p), zap.Int("bytes", len(data)))
	return p, nil
}

// DeleteFile deletes a regular file. Directories are refused; rmdir handles
// those.
func (m *Manager) DeleteFile(ctx context.Context, path string) (string, error) {
	p, err := paths.Validate(path, true)
	if err != nil {
		return "", m.fail(opError("delete", path, err))
	}
	if paths.IsDir(p) {
		return "", m.fail(kindError(KindGeneric, "delete", p, ErrIsDirectory))
	}

	if err := os.Remove(p); err != nil {
		return "", m.fail(opError("delete", p, err))
	}

	m.stats.addFile()
	m.stats.addSuccess()
	m.log.Info("deleted file", zap.String("path", p))
	return p, nil
}
