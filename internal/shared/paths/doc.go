// Package paths provides path resolution and validation helpers.
//
// Every filesystem operation canonicalizes user-supplied paths through this
// package before touching the disk, so the rest of the codebase only ever
// sees absolute, symlink-resolved paths.
//
// # Resolution
//
// Resolve follows symbolic links through the deepest existing ancestor and
// keeps any missing tail verbatim. This lets destination paths that do not
// exist yet resolve the same way as existing sources:
//
//	p, err := paths.Resolve("../reports/2026/summary.txt")
//
// # Validation
//
// Validate adds an existence check on top of Resolve. Sources are validated
// with shouldExist=true, freshly created destinations with shouldExist=false:
//
//	src, err := paths.Validate(input, true)
//	if errors.Is(err, fs.ErrNotExist) {
//	    // missing source
//	}
package paths
