//go:build !linux && !darwin

package filesystem

import (
	"os"
	"time"
)

// fileTimes falls back to the modification time on platforms without
// accessible creation or access time stamps.
func fileTimes(info os.FileInfo) (created, accessed time.Time) {
	return info.ModTime(), info.ModTime()
}
