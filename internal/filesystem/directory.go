package filesystem

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/charlievieth/fastwalk"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/fsman/internal/shared/paths"
)

// List returns one FileInfo per directory entry, children sorted by name.
// With recursive set, a subdirectory's contents appear before the
// subdirectory's own record. Entries that cannot be read are logged,
// counted as failures, and skipped together with their subtree.
func (m *Manager) List(ctx context.Context, directory string, recursive bool) ([]FileInfo, error) {
	dir, err := paths.Validate(directory, true)
	if err != nil {
		return nil, m.fail(opError("list", directory, err))
	}
	if !paths.IsDir(dir) {
		return nil, m.fail(kindError(KindGeneric, "list", dir, ErrNotDirectory))
	}

	out := make([]FileInfo, 0, 16)
	if err := m.listInto(ctx, dir, recursive, &out); err != nil {
		return nil, m.fail(opError("list", dir, err))
	}

	m.log.Info("listed directory",
		zap.String("path", dir),
		zap.Int("entries", len(out)),
		zap.Bool("recursive", recursive))
	return out, nil
}

// listInto appends dir's entries to out. os.ReadDir returns children sorted
// by name, which keeps the listing deterministic.
func (m *Manager) listInto(ctx context.Context, dir string, recursive bool, out *[]FileInfo) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		child := filepath.Join(dir, entry.Name())
		if recursive && entry.IsDir() {
			if err := m.listInto(ctx, child, recursive, out); err != nil {
				if ctx.Err() != nil {
					return err
				}
				m.log.Warn("skipping unreadable directory", zap.String("path", child), zap.Error(err))
				m.stats.addFailure()
				continue
			}
		}

		info, err := m.fileInfo(child)
		if err != nil {
			m.log.Warn("skipping entry", zap.String("path", child), zap.Error(err))
			m.stats.addFailure()
			continue
		}
		*out = append(*out, info)
		m.stats.addFile()
	}

	m.stats.addDir()
	m.stats.addSuccess()
	return nil
}

// fileInfo builds a FileInfo snapshot for path, following symlinks.
func (m *Manager) fileInfo(path string) (FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileInfo{}, err
	}
	created, accessed := fileTimes(info)
	return FileInfo{
		Name:      info.Name(),
		Path:      path,
		Size:      info.Size(),
		IsDir:     info.IsDir(),
		Mode:      info.Mode().String(),
		Created:   created,
		Modified:  info.ModTime(),
		Accessed:  accessed,
		Extension: extOf(path),
	}, nil
}

// CreateDirectory creates a directory and returns its resolved path. With
// parents set, missing ancestors are created as well. With existOK set, an
// already existing directory is a success, making the call idempotent; an
// existing non-directory is always an error.
func (m *Manager) CreateDirectory(ctx context.Context, path string, parents, existOK bool) (string, error) {
	p, err := paths.Validate(path, false)
	if err != nil {
		return "", m.fail(opError("mkdir", path, err))
	}

	if paths.Exists(p) {
		if existOK && paths.IsDir(p) {
			m.stats.addDir()
			m.stats.addSuccess()
			m.log.Info("directory already exists", zap.String("path", p))
			return p, nil
		}
		return "", m.fail(kindError(KindGeneric, "mkdir", p, fs.ErrExist))
	}

	if parents {
		err = os.MkdirAll(p, 0o755)
	} else {
		err = os.Mkdir(p, 0o755)
	}
	if err != nil {
		return "", m.fail(opError("mkdir", p, err))
	}

	m.stats.addDir()
	m.stats.addSuccess()
	m.log.Info("created directory", zap.String("path", p), zap.Bool("parents", parents))
	return p, nil
}

// DeleteDirectory deletes a directory and returns its resolved path.
// Without recursive, a non-empty directory is refused with a not-empty
// error and its contents stay untouched.
func (m *Manager) DeleteDirectory(ctx context.Context, path string, recursive bool) (string, error) {
	p, err := paths.Validate(path, true)
	if err != nil {
		return "", m.fail(opError("rmdir", path, err))
	}
	if !paths.IsDir(p) {
		return "", m.fail(kindError(KindGeneric, "rmdir", p, ErrNotDirectory))
	}

	if recursive {
		if err := os.RemoveAll(p); err != nil {
			return "", m.fail(opError("rmdir", p, err))
		}
	} else {
		entries, err := os.ReadDir(p)
		if err != nil {
			return "", m.fail(opError("rmdir", p, err))
		}
		if len(entries) > 0 {
			return "", m.fail(kindError(KindNotEmpty, "rmdir", p, ErrNotEmpty))
		}
		if err := os.Remove(p); err != nil {
			return "", m.fail(opError("rmdir", p, err))
		}
	}

	m.stats.addDir()
	m.stats.addSuccess()
	m.log.Info("deleted directory", zap.String("path", p), zap.Bool("recursive", recursive))
	return p, nil
}

// Clean removes every direct child of directory, recursing into
// subdirectories. The counters are reset first and the final snapshot is
// returned; per-child failures are logged and counted without aborting the
// sweep.
func (m *Manager) Clean(ctx context.Context, directory string) (Stats, error) {
	dir, err := paths.Validate(directory, true)
	if err != nil {
		return Stats{}, m.logError(opError("clean", directory, err))
	}
	if !paths.IsDir(dir) {
		return Stats{}, m.logError(kindError(KindGeneric, "clean", dir, ErrNotDirectory))
	}

	m.stats.reset()

	entries, err := os.ReadDir(dir)
	if err != nil {
		return m.stats.snapshot(), m.logError(opError("clean", dir, err))
	}

	for _, entry := range entries {
		if ctx.Err() != nil {
			return m.stats.snapshot(), m.logError(opError("clean", dir, ctx.Err()))
		}

		child := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			if err := os.RemoveAll(child); err != nil {
				m.log.Error("could not remove", zap.String("path", child), zap.Error(err))
				m.stats.addFailure()
				continue
			}
			m.stats.addDir()
		} else {
			if err := os.Remove(child); err != nil {
				m.log.Error("could not remove", zap.String("path", child), zap.Error(err))
				m.stats.addFailure()
				continue
			}
			m.stats.addFile()
		}
		m.stats.addSuccess()
		m.log.Info("removed entry", zap.String("path", child))
	}

	m.log.Info("cleaned directory", zap.String("path", dir))
	return m.stats.snapshot(), nil
}

// Size returns the total size in bytes of the regular files under
// directory. Recursive sizing descends the whole subtree with parallel
// walkers; otherwise only direct children are summed. Files that cannot be
// inspected are logged, counted as failures, and excluded from the sum.
func (m *Manager) Size(ctx context.Context, directory string, recursive bool) (int64, error) {
	dir, err := paths.Validate(directory, true)
	if err != nil {
		return 0, m.fail(opError("size", directory, err))
	}
	if !paths.IsDir(dir) {
		return 0, m.fail(kindError(KindGeneric, "size", dir, ErrNotDirectory))
	}

	var total atomic.Int64

	addFile := func(p string) {
		info, err := os.Stat(p)
		if err != nil {
			m.log.Warn("could not process", zap.String("path", p), zap.Error(err))
			m.stats.addFailure()
			return
		}
		if info.IsDir() {
			return
		}
		total.Add(info.Size())
		m.stats.addFile()
	}

	if recursive {
		conf := fastwalk.Config{Follow: false}
		err = fastwalk.Walk(&conf, dir, func(p string, d os.DirEntry, err error) error {
			// Check for context cancellation
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			if err != nil || d.IsDir() {
				return nil
			}
			addFile(p)
			return nil
		})
		if err != nil {
			return 0, m.fail(opError("size", dir, err))
		}
	} else {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return 0, m.fail(opError("size", dir, err))
		}
		for _, entry := range entries {
			if ctx.Err() != nil {
				return 0, m.fail(opError("size", dir, ctx.Err()))
			}
			if entry.IsDir() {
				continue
			}
			addFile(filepath.Join(dir, entry.Name()))
		}
	}

	m.stats.addDir()
	m.stats.addSuccess()
	m.log.Info("calculated directory size",
		zap.String("path", dir),
		zap.Int64("bytes", total.Load()),
		zap.Bool("recursive", recursive))
	return total.Load(), nil
}

// Tree renders an indented tree of directory, children sorted by name.
// maxDepth limits descent; zero means unlimited.
func (m *Manager) Tree(ctx context.Context, directory string, maxDepth int) (string, error) {
	dir, err := paths.Validate(directory, true)
	if err != nil {
		return "", m.fail(opError("tree", directory, err))
	}
	if !paths.IsDir(dir) {
		return "", m.fail(kindError(KindGeneric, "tree", dir, ErrNotDirectory))
	}

	var tree strings.Builder
	tree.WriteString(filepath.Base(dir) + "/\n")
	if err := m.treeInto(ctx, dir, 1, maxDepth, &tree); err != nil {
		return "", m.fail(opError("tree", dir, err))
	}

	m.stats.addDir()
	m.stats.addSuccess()
	return tree.String(), nil
}

func (m *Manager) treeInto(ctx context.Context, dir string, depth, maxDepth int, tree *strings.Builder) error {
	if maxDepth > 0 && depth > maxDepth {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	indent := strings.Repeat("  ", depth)
	for _, entry := range entries {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if entry.IsDir() {
			tree.WriteString(indent + entry.Name() + "/\n")
			child := filepath.Join(dir, entry.Name())
			if err := m.treeInto(ctx, child, depth+1, maxDepth, tree); err != nil {
				if ctx.Err() != nil {
					return err
				}
				m.log.Warn("skipping unreadable directory", zap.String("path", child), zap.Error(err))
				m.stats.addFailure()
			}
		} else {
			tree.WriteString(indent + entry.Name() + "\n")
		}
	}
	return nil
}
