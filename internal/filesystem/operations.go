package filesystem

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/fsman/internal/shared/paths"
)

// Copy copies a regular file and returns the final destination path. A
// destination naming an existing directory receives the source's base name;
// one naming an existing file anchors at that file's parent directory.
// Without overwrite, an existing final destination is an error.
func (m *Manager) Copy(ctx context.Context, source, destination string, overwrite bool) (string, error) {
	src, srcInfo, err := m.validateSourceFile("copy", source)
	if err != nil {
		return "", err
	}

	dst, err := resolveDest(src, destination)
	if err != nil {
		return "", m.fail(opError("copy", destination, err))
	}

	if paths.Exists(dst) && !overwrite {
		return "", m.fail(&Error{Kind: KindGeneric, Op: "copy", Path: src, Dest: dst, Err: fs.ErrExist})
	}

	if err := copyFile(src, dst, srcInfo); err != nil {
		return "", m.fail(&Error{Kind: classify(err), Op: "copy", Path: src, Dest: dst, Err: err})
	}

	m.stats.addFile()
	m.stats.addSuccess()
	m.log.Info("copied file", zap.String("source", src), zap.String("destination", dst))
	return dst, nil
}

// Move moves a regular file and returns the final destination path. The
// destination anchor rule matches Copy. With overwrite, an existing final
// destination is removed first; without it, that is an error. Cross-device
// moves fall back to copy-and-delete.
func (m *Manager) Move(ctx context.Context, source, destination string, overwrite bool) (string, error) {
	src, srcInfo, err := m.validateSourceFile("move", source)
	if err != nil {
		return "", err
	}

	dst, err := resolveDest(src, destination)
	if err != nil {
		return "", m.fail(opError("move", destination, err))
	}

	if paths.Exists(dst) {
		if !overwrite {
			return "", m.fail(&Error{Kind: KindGeneric, Op: "move", Path: src, Dest: dst, Err: fs.ErrExist})
		}
		if err := os.Remove(dst); err != nil {
			return "", m.fail(&Error{Kind: classify(err), Op: "move", Path: src, Dest: dst, Err: err})
		}
	}

	if err := os.Rename(src, dst); err != nil {
		// Rename cannot cross filesystem boundaries; copy then delete.
		if err := copyFile(src, dst, srcInfo); err != nil {
			return "", m.fail(&Error{Kind: classify(err), Op: "move", Path: src, Dest: dst, Err: err})
		}
		if err := os.Remove(src); err != nil {
			return "", m.fail(&Error{Kind: classify(err), Op: "move", Path: src, Dest: dst, Err: err})
		}
	}

	m.stats.addFile()
	m.stats.addSuccess()
	m.log.Info("moved file", zap.String("source", src), zap.String("destination", dst))
	return dst, nil
}

// Rename gives a file or directory a new name inside its parent directory.
// The name must not contain path separators, and an existing target is an
// error.
func (m *Manager) Rename(ctx context.Context, source, newName string) (string, error) {
	src, err := paths.Validate(source, true)
	if err != nil {
		return "", m.fail(opError("rename", source, err))
	}
	if newName == "" || strings.ContainsAny(newName, `/\`) {
		return "", m.fail(kindError(KindGeneric, "rename", src, ErrInvalidName))
	}

	dst := filepath.Join(filepath.Dir(src), newName)
	if paths.Exists(dst) {
		return "", m.fail(&Error{Kind: KindGeneric, Op: "rename", Path: src, Dest: dst, Err: fs.ErrExist})
	}

	if err := os.Rename(src, dst); err != nil {
		return "", m.fail(&Error{Kind: classify(err), Op: "rename", Path: src, Dest: dst, Err: err})
	}

	m.stats.addFile()
	m.stats.addSuccess()
	m.log.Info("renamed", zap.String("source", src), zap.String("destination", dst))
	return dst, nil
}

// ChangeExtension swaps a file's extension and returns the new path. The
// extension is normalized to a leading dot, and an existing target is an
// error, which also covers a no-op swap onto the current extension.
func (m *Manager) ChangeExtension(ctx context.Context, path, newExt string) (string, error) {
	src, err := paths.Validate(path, true)
	if err != nil {
		return "", m.fail(opError("ext", path, err))
	}
	if paths.IsDir(src) {
		return "", m.fail(kindError(KindUnsupported, "ext", src, ErrIsDirectory))
	}
	ext := normalizeExt(newExt)
	if ext == "" || ext == "." {
		return "", m.fail(kindError(KindGeneric, "ext", src, ErrInvalidName))
	}

	dst := strings.TrimSuffix(src, extOf(src)) + ext
	if paths.Exists(dst) {
		return "", m.fail(&Error{Kind: KindGeneric, Op: "ext", Path: src, Dest: dst, Err: fs.ErrExist})
	}

	if err := os.Rename(src, dst); err != nil {
		return "", m.fail(&Error{Kind: classify(err), Op: "ext", Path: src, Dest: dst, Err: err})
	}

	m.stats.addFile()
	m.stats.addSuccess()
	m.log.Info("changed extension", zap.String("source", src), zap.String("destination", dst))
	return dst, nil
}

// BulkChangeExtensions renames every file under directory whose extension
// matches one of currentExts (case-insensitive) to carry newExt instead.
// The counters are reset first and the final snapshot is returned: every
// matched file counts as processed, renames count as successes, and matches
// skipped because the target already exists count as failures.
func (m *Manager) BulkChangeExtensions(ctx context.Context, directory string, currentExts []string, newExt string, recursive bool) (Stats, error) {
	dir, err := paths.Validate(directory, true)
	if err != nil {
		return Stats{}, m.logError(opError("bulk_ext", directory, err))
	}
	if !paths.IsDir(dir) {
		return Stats{}, m.logError(kindError(KindGeneric, "bulk_ext", dir, ErrNotDirectory))
	}
	ext := normalizeExt(newExt)
	if ext == "" || ext == "." {
		return Stats{}, m.logError(kindError(KindGeneric, "bulk_ext", dir, ErrInvalidName))
	}

	match := make(map[string]struct{}, len(currentExts))
	for _, cur := range currentExts {
		cur = normalizeExt(strings.TrimSpace(cur))
		if cur == "" || cur == "." {
			continue
		}
		match[strings.ToLower(cur)] = struct{}{}
	}

	m.stats.reset()

	candidates, err := m.collectByExtension(ctx, dir, match, recursive)
	if err != nil {
		return m.stats.snapshot(), m.logError(opError("bulk_ext", dir, err))
	}

	// Candidates were gathered by parallel walkers; process in sorted order
	// so repeated runs behave identically.
	sort.Strings(candidates)

	for _, p := range candidates {
		if ctx.Err() != nil {
			return m.stats.snapshot(), m.logError(opError("bulk_ext", dir, ctx.Err()))
		}

		target := strings.TrimSuffix(p, extOf(p)) + ext
		if paths.Exists(target) {
			m.log.Warn("skipped, target exists", zap.String("source", p), zap.String("target", target))
			m.stats.addFailure()
			m.stats.addFile()
			continue
		}
		if err := os.Rename(p, target); err != nil {
			m.log.Error("rename failed", zap.String("source", p), zap.String("target", target), zap.Error(err))
			m.stats.addFailure()
			continue
		}
		m.stats.addSuccess()
		m.stats.addFile()
		m.log.Info("changed extension", zap.String("source", p), zap.String("target", target))
	}

	snap := m.stats.snapshot()
	m.log.Info("bulk extension change complete",
		zap.String("path", dir),
		zap.Int64("files", snap.FilesProcessed),
		zap.Int64("succeeded", snap.Succeeded),
		zap.Int64("failed", snap.Failed))
	return snap, nil
}

// collectByExtension gathers the files under dir whose extension appears in
// match. Recursive collection uses parallel walkers.
func (m *Manager) collectByExtension(ctx context.Context, dir string, match map[string]struct{}, recursive bool) ([]string, error) {
	matched := func(p string) bool {
		_, ok := match[strings.ToLower(extOf(p))]
		return ok
	}

	if !recursive {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, err
		}
		var out []string
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if p := filepath.Join(dir, entry.Name()); matched(p) {
				out = append(out, p)
			}
		}
		return out, nil
	}

	var mu sync.Mutex
	var out []string
	conf := fastwalk.Config{Follow: false}

	err := fastwalk.Walk(&conf, dir, func(p string, d os.DirEntry, err error) error {
		// Check for context cancellation
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil || d.IsDir() {
			return nil
		}
		if matched(p) {
			mu.Lock()
			out = append(out, p)
			mu.Unlock()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// validateSourceFile resolves source for a file-only operation, rejecting
// directories.
func (m *Manager) validateSourceFile(op, source string) (string, os.FileInfo, error) {
	src, err := paths.Validate(source, true)
	if err != nil {
		return "", nil, m.fail(opError(op, source, err))
	}
	info, err := os.Stat(src)
	if err != nil {
		return "", nil, m.fail(opError(op, src, err))
	}
	if info.IsDir() {
		return "", nil, m.fail(kindError(KindUnsupported, op, src, ErrIsDirectory))
	}
	return src, info, nil
}

// resolveDest applies the destination anchor rule: a destination naming an
// existing file anchors at its parent directory, and a directory anchor
// receives the source's base name.
func resolveDest(src, destination string) (string, error) {
	anchor := destination
	if info, err := os.Stat(destination); err == nil && !info.IsDir() {
		anchor = filepath.Dir(destination)
	}
	dst, err := paths.Validate(anchor, false)
	if err != nil {
		return "", err
	}
	if paths.IsDir(dst) {
		dst = filepath.Join(dst, filepath.Base(src))
	}
	return dst, nil
}

// copyFile copies contents and preserves permissions plus access and
// modification times.
func copyFile(src, dst string, srcInfo os.FileInfo) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, srcInfo.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	if err := os.Chmod(dst, srcInfo.Mode().Perm()); err != nil {
		return err
	}
	_, accessed := fileTimes(srcInfo)
	return os.Chtimes(dst, accessed, srcInfo.ModTime())
}

// normalizeExt guarantees a leading dot. Empty input stays empty so callers
// can reject it.
func normalizeExt(ext string) string {
	if ext == "" || strings.HasPrefix(ext, ".") {
		return ext
	}
	return "." + ext
}
