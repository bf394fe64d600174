//go:build darwin

package filesystem

import (
	"os"
	"syscall"
	"time"
)

// fileTimes extracts creation and access times from platform stat data.
func fileTimes(info os.FileInfo) (created, accessed time.Time) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return info.ModTime(), info.ModTime()
	}
	if stat.Birthtimespec.Sec != 0 {
		created = time.Unix(int64(stat.Birthtimespec.Sec), int64(stat.Birthtimespec.Nsec))
	} else {
		// Birth time unavailable on some filesystems
		created = info.ModTime()
	}
	accessed = time.Unix(int64(stat.Atimespec.Sec), int64(stat.Atimespec.Nsec))
	return created, accessed
}
