package filesystem

import (
	"archive/tar"
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/fsman/internal/shared/paths"
)

// ZipCreate archives a directory into a ZIP file. The counters are reset
// first and the final snapshot is returned; entries that cannot be read are
// counted as failures without aborting the archive.
func (m *Manager) ZipCreate(ctx context.Context, source, output string) (Stats, error) {
	src, out, err := m.prepareArchive("zip", source, output)
	if err != nil {
		return Stats{}, err
	}

	m.stats.reset()

	entries, err := m.collectEntries(ctx, src)
	if err != nil {
		return m.stats.snapshot(), m.logError(opError("zip", src, err))
	}

	zipFile, err := os.Create(out)
	if err != nil {
		return m.stats.snapshot(), m.logError(opError("zip", out, err))
	}
	defer zipFile.Close()

	zw := zip.NewWriter(zipFile)

	for _, e := range entries {
		if ctx.Err() != nil {
			zw.Close()
			return m.stats.snapshot(), m.logError(opError("zip", src, ctx.Err()))
		}

		name := filepath.ToSlash(e.rel)
		if e.isDir {
			if _, err := zw.Create(name + "/"); err != nil {
				m.stats.addFailure()
				continue
			}
			m.stats.addDir()
			m.stats.addSuccess()
			continue
		}

		w, err := zw.Create(name)
		if err != nil {
			m.stats.addFailure()
			continue
		}
		if err := writeFileInto(w, e.path); err != nil {
			m.log.Warn("could not archive", zap.String("path", e.path), zap.Error(err))
			m.stats.addFailure()
			continue
		}
		m.stats.addFile()
		m.stats.addSuccess()
	}

	if err := zw.Close(); err != nil {
		return m.stats.snapshot(), m.logError(opError("zip", out, err))
	}

	snap := m.stats.snapshot()
	m.log.Info("created zip archive",
		zap.String("source", src),
		zap.String("output", out),
		zap.Int64("files", snap.FilesProcessed))
	return snap, nil
}

// TarCreate archives a directory into a TAR file with the given compression
// (none, gzip, or zstd). Accounting matches ZipCreate.
func (m *Manager) TarCreate(ctx context.Context, source, output, compression string) (Stats, error) {
	src, out, err := m.prepareArchive("tar", source, output)
	if err != nil {
		return Stats{}, err
	}

	m.stats.reset()

	entries, err := m.collectEntries(ctx, src)
	if err != nil {
		return m.stats.snapshot(), m.logError(opError("tar", src, err))
	}

	outFile, err := os.Create(out)
	if err != nil {
		return m.stats.snapshot(), m.logError(opError("tar", out, err))
	}

	var compressor io.WriteCloser
	switch compression {
	case "gzip":
		compressor = gzip.NewWriter(outFile)
	case "zstd":
		enc, err := zstd.NewWriter(outFile)
		if err != nil {
			outFile.Close()
			return m.stats.snapshot(), m.logError(opError("tar", out, err))
		}
		compressor = enc
	case "", "none":
	default:
		outFile.Close()
		return m.stats.snapshot(), m.logError(kindError(KindGeneric, "tar", out,
			fmt.Errorf("unsupported compression: %s", compression)))
	}

	var tw *tar.Writer
	if compressor != nil {
		tw = tar.NewWriter(compressor)
	} else {
		tw = tar.NewWriter(outFile)
	}

	finish := func() error {
		if err := tw.Close(); err != nil {
			return err
		}
		if compressor != nil {
			if err := compressor.Close(); err != nil {
				return err
			}
		}
		return outFile.Close()
	}

	for _, e := range entries {
		if ctx.Err() != nil {
			finish()
			return m.stats.snapshot(), m.logError(opError("tar", src, ctx.Err()))
		}

		header, err := tar.FileInfoHeader(e.info, "")
		if err != nil {
			m.stats.addFailure()
			continue
		}
		header.Name = filepath.ToSlash(e.rel)
		if e.isDir {
			header.Name += "/"
		}

		if err := tw.WriteHeader(header); err != nil {
			m.stats.addFailure()
			continue
		}
		if e.isDir {
			m.stats.addDir()
			m.stats.addSuccess()
			continue
		}
		if err := writeFileInto(tw, e.path); err != nil {
			m.log.Warn("could not archive", zap.String("path", e.path), zap.Error(err))
			m.stats.addFailure()
			continue
		}
		m.stats.addFile()
		m.stats.addSuccess()
	}

	if err := finish(); err != nil {
		return m.stats.snapshot(), m.logError(opError("tar", out, err))
	}

	snap := m.stats.snapshot()
	m.log.Info("created tar archive",
		zap.String("source", src),
		zap.String("output", out),
		zap.String("compression", compression),
		zap.Int64("files", snap.FilesProcessed))
	return snap, nil
}

// Extract unpacks an archive into destination, detecting the format from
// the file name (.zip, .tar, .tgz, .gz, .zst). Entries escaping the
// destination are skipped and counted as failures.
func (m *Manager) Extract(ctx context.Context, archive, destination string) (Stats, error) {
	arc, err := paths.Validate(archive, true)
	if err != nil {
		return Stats{}, m.logError(opError("unzip", archive, err))
	}
	dest, err := paths.Validate(destination, false)
	if err != nil {
		return Stats{}, m.logError(opError("unzip", destination, err))
	}

	m.stats.reset()

	if err := os.MkdirAll(dest, 0o755); err != nil {
		return m.stats.snapshot(), m.logError(opError("unzip", dest, err))
	}

	name := strings.ToLower(arc)
	switch {
	case strings.HasSuffix(name, ".zip"):
		return m.extractZip(ctx, arc, dest)
	case strings.HasSuffix(name, ".tar"),
		strings.HasSuffix(name, ".tgz"),
		strings.HasSuffix(name, ".gz"),
		strings.HasSuffix(name, ".zst"):
		return m.extractTar(ctx, arc, dest)
	default:
		return m.stats.snapshot(), m.logError(kindError(KindUnsupported, "unzip", arc,
			fmt.Errorf("unsupported archive format: %s", extOf(arc))))
	}
}

func (m *Manager) extractZip(ctx context.Context, arc, dest string) (Stats, error) {
	reader, err := zip.OpenReader(arc)
	if err != nil {
		return m.stats.snapshot(), m.logError(opError("unzip", arc, err))
	}
	defer reader.Close()

	for _, file := range reader.File {
		if ctx.Err() != nil {
			return m.stats.snapshot(), m.logError(opError("unzip", arc, ctx.Err()))
		}

		destPath := filepath.Join(dest, file.Name)
		if !paths.Within(dest, destPath) {
			m.log.Warn("skipping entry outside destination", zap.String("name", file.Name))
			m.stats.addFailure()
			continue
		}

		if file.FileInfo().IsDir() {
			if err := os.MkdirAll(destPath, 0o755); err != nil {
				m.stats.addFailure()
				continue
			}
			m.stats.addDir()
			m.stats.addSuccess()
			continue
		}

		if err := extractFileInto(destPath, file); err != nil {
			m.log.Warn("could not extract", zap.String("name", file.Name), zap.Error(err))
			m.stats.addFailure()
			continue
		}
		m.stats.addFile()
		m.stats.addSuccess()
	}

	snap := m.stats.snapshot()
	m.log.Info("extracted zip archive",
		zap.String("archive", arc),
		zap.String("destination", dest),
		zap.Int64("files", snap.FilesProcessed))
	return snap, nil
}

func (m *Manager) extractTar(ctx context.Context, arc, dest string) (Stats, error) {
	file, err := os.Open(arc)
	if err != nil {
		return m.stats.snapshot(), m.logError(opError("unzip", arc, err))
	}
	defer file.Close()

	var tr *tar.Reader
	name := strings.ToLower(arc)

	// Auto-detect compression
	switch {
	case strings.HasSuffix(name, ".gz"), strings.HasSuffix(name, ".tgz"):
		gzReader, err := gzip.NewReader(file)
		if err != nil {
			return m.stats.snapshot(), m.logError(opError("unzip", arc, err))
		}
		defer gzReader.Close()
		tr = tar.NewReader(gzReader)
	case strings.HasSuffix(name, ".zst"):
		zstdReader, err := zstd.NewReader(file)
		if err != nil {
			return m.stats.snapshot(), m.logError(opError("unzip", arc, err))
		}
		defer zstdReader.Close()
		tr = tar.NewReader(zstdReader)
	default:
		tr = tar.NewReader(file)
	}

	for {
		if ctx.Err() != nil {
			return m.stats.snapshot(), m.logError(opError("unzip", arc, ctx.Err()))
		}

		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return m.stats.snapshot(), m.logError(opError("unzip", arc, err))
		}

		destPath := filepath.Join(dest, header.Name)
		if !paths.Within(dest, destPath) {
			m.log.Warn("skipping entry outside destination", zap.String("name", header.Name))
			m.stats.addFailure()
			continue
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(destPath, 0o755); err != nil {
				m.stats.addFailure()
				continue
			}
			m.stats.addDir()
			m.stats.addSuccess()
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
				m.stats.addFailure()
				continue
			}
			out, err := os.Create(destPath)
			if err != nil {
				m.stats.addFailure()
				continue
			}
			_, copyErr := io.Copy(out, tr)
			closeErr := out.Close()
			if copyErr != nil || closeErr != nil {
				m.stats.addFailure()
				continue
			}
			m.stats.addFile()
			m.stats.addSuccess()
		}
	}

	snap := m.stats.snapshot()
	m.log.Info("extracted tar archive",
		zap.String("archive", arc),
		zap.String("destination", dest),
		zap.Int64("files", snap.FilesProcessed))
	return snap, nil
}

// walkEntry is one filesystem entry gathered for archiving.
type walkEntry struct {
	rel   string
	path  string
	isDir bool
	info  os.FileInfo
}

// collectEntries gathers everything under root, excluding root itself,
// sorted so parents precede their children. Gathering uses parallel
// walkers; the sort restores a stable archive order.
func (m *Manager) collectEntries(ctx context.Context, root string) ([]walkEntry, error) {
	var mu sync.Mutex
	var out []walkEntry
	conf := fastwalk.Config{Follow: false}

	err := fastwalk.Walk(&conf, root, func(p string, d os.DirEntry, err error) error {
		// Check for context cancellation
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil || p == root {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return nil
		}

		mu.Lock()
		out = append(out, walkEntry{rel: rel, path: p, isDir: d.IsDir(), info: info})
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(out, func(i, j int) bool { return out[i].rel < out[j].rel })
	return out, nil
}

// prepareArchive validates the source directory and output path for an
// archive creation operation.
func (m *Manager) prepareArchive(op, source, output string) (src, out string, err error) {
	src, err = paths.Validate(source, true)
	if err != nil {
		return "", "", m.logError(opError(op, source, err))
	}
	if !paths.IsDir(src) {
		return "", "", m.logError(kindError(KindGeneric, op, src, ErrNotDirectory))
	}
	out, err = paths.Validate(output, false)
	if err != nil {
		return "", "", m.logError(opError(op, output, err))
	}
	return src, out, nil
}

// writeFileInto streams the file at path into w.
func writeFileInto(w io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(w, f)
	return err
}

// extractFileInto writes one zip entry to destPath, creating parents.
func extractFileInto(destPath string, file *zip.File) error {
	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return err
	}
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(destPath)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
