package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// DocumentExtensions lists the file extensions accepted for diagram documents.
var DocumentExtensions = []string{".json", ".jet"}

// ValidatePath validates a file path given on the command line.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateDocumentPath validates a diagram document path.
// In addition to the [ValidatePath] rules, the extension must be one of
// [DocumentExtensions] (case-insensitive).
func ValidateDocumentPath(path string) error {
	if err := ValidatePath(path); err != nil {
		return err
	}

	ext := strings.ToLower(filepath.Ext(path))
	for _, allowed := range DocumentExtensions {
		if ext == allowed {
			return nil
		}
	}
	return New(ErrCodeInvalidPath, "unsupported document extension %q (want one of %s)",
		ext, strings.Join(DocumentExtensions, ", "))
}
