package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/fsman/internal/shared/paths"
)

// Find returns the files under directory matching pattern, as sorted paths
// relative to directory. Plain patterns like "*.txt" match base names;
// patterns containing a slash or ** match the whole relative path,
// gitignore style.
func (m *Manager) Find(ctx context.Context, directory, pattern string) ([]string, error) {
	dir, err := paths.Validate(directory, true)
	if err != nil {
		return nil, m.fail(opError("find", directory, err))
	}
	if !paths.IsDir(dir) {
		return nil, m.fail(kindError(KindGeneric, "find", dir, ErrNotDirectory))
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, m.fail(kindError(KindGeneric, "find", dir, doublestar.ErrBadPattern))
	}

	pathwise := strings.Contains(pattern, "/") || strings.Contains(pattern, "**")

	var mu sync.Mutex
	matches := []string{}
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

		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return nil
		}

		subject := filepath.Base(rel)
		if pathwise {
			subject = filepath.ToSlash(rel)
		}
		if ok, _ := doublestar.Match(pattern, subject); ok {
			mu.Lock()
			matches = append(matches, rel)
			mu.Unlock()
		}
		return nil
	})
	if err != nil {
		return nil, m.fail(opError("find", dir, err))
	}

	sort.Strings(matches)
	m.stats.addDir()
	m.stats.addSuccess()
	m.log.Info("find complete",
		zap.String("path", dir),
		zap.String("pattern", pattern),
		zap.Int("matches", len(matches)))
	return matches, nil
}
