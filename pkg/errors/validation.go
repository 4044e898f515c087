package errors

import (
	"strings"
	"unicode"
)

// maxPathLength matches PATH_MAX on Linux.
const maxPathLength = 4096

// ValidatePath checks a file path given on the command line or to the batch
// runner before it is opened. Absolute and relative paths are both accepted.
//
// Rejected:
//   - empty paths
//   - paths longer than 4096 bytes
//   - null bytes and other control characters
//   - paths ending in a separator (a directory, not a document)
func ValidatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d bytes)", maxPathLength)
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	if strings.HasSuffix(path, "/") {
		return New(ErrCodeInvalidPath, "path %q names a directory", path)
	}
	return nil
}
