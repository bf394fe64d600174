package filesystem

import (
	"path/filepath"
	"time"
)

// FileInfo represents file metadata
type FileInfo struct {
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	Size      int64     `json:"size"`
	IsDir     bool      `json:"is_dir"`
	Mode      string    `json:"mode"`
	Created   time.Time `json:"created"`
	Modified  time.Time `json:"modified"`
	Accessed  time.Time `json:"accessed"`
	Extension string    `json:"extension,omitempty"`
}

// Stats is a snapshot of the operation counters.
type Stats struct {
	FilesProcessed int64 `json:"files_processed"`
	DirsProcessed  int64 `json:"directories_processed"`
	Succeeded      int64 `json:"successful_operations"`
	Failed         int64 `json:"failed_operations"`
}

// extOf returns the extension of path's base name. A leading dot alone
// (dotfiles like .profile) does not count as an extension.
func extOf(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if ext == base {
		return ""
	}
	return ext
}
