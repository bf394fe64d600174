// Package filesystem provides the file and directory maintenance operations
// behind the fsman command set.
//
// This package is organized into specialized modules:
//   - basic: file creation and deletion
//   - directory: directory operations (list, create, delete, clean, size, tree)
//   - operations: file manipulation (copy, move, rename, extension remaps)
//   - metadata: file metadata, checksums, and human-readable sizes
//   - search: pattern-based file search
//   - formats: seed content for structured formats (JSON, CSV, YAML, TOML)
//   - archives: ZIP and TAR archives with compression
//
// All operations:
//   - Canonicalize paths before touching the disk
//   - Return *Error values carrying the operation, path, and failure kind
//   - Account their outcome in the manager's operation counters
//
// Counters:
//
// The Manager owns a mutex-guarded set of counters (files and directories
// processed, successes, failures). Bulk operations reset the counters and
// return a snapshot; everything else accumulates into the running session.
//
// Example Usage:
//
//	mgr := filesystem.NewManager(logger)
//	entries, err := mgr.List(ctx, "/srv/data", true)
//	if filesystem.IsNotFound(err) {
//	    // missing directory
//	}
package filesystem
