package errors

import (
	"strings"
	"unicode"
)

// ValidateIdentifier validates a category or template identifier from
// configuration. Identifiers end up in log lines, cache keys, and SVG
// element IDs, so the rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters or whitespace
//   - Maximum length of 128 characters
func ValidateIdentifier(id string) error {
	if id == "" {
		return New(ErrCodeInvalidConfig, "identifier cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidConfig, "identifier %q too long (max 128 characters)", id[:16]+"...")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidConfig, "identifier %q contains control characters", id)
		}
		if unicode.IsSpace(r) {
			return New(ErrCodeInvalidConfig, "identifier %q contains whitespace", id)
		}
	}

	return nil
}

// ValidateOutputPath validates a user-supplied artifact output path.
// It prevents path traversal out of the working tree and rejects
// obviously malformed paths.
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	return nil
}
