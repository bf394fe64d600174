//go:build linux

package filesystem

import (
	"os"
	"syscall"
	"time"
)

// fileTimes extracts creation and access times from platform stat data.
// Linux exposes no birth time through syscall.Stat_t, so the inode change
// time stands in for creation.
func fileTimes(info os.FileInfo) (created, accessed time.Time) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return info.ModTime(), info.ModTime()
	}
	created = time.Unix(int64(stat.Ctim.Sec), int64(stat.Ctim.Nsec))
	accessed = time.Unix(int64(stat.Atim.Sec), int64(stat.Atim.Nsec))
	return created, accessed
}
