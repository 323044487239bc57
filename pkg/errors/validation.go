package errors

import (
	"strings"
	"unicode"
)

// ValidateServiceName validates a service name for safety and correctness.
// It rejects names that could be used for path traversal or injection attacks.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path traversal sequences (.., //, etc.)
//   - No null bytes
//   - Maximum length of 256 characters
func ValidateServiceName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "service name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidInput, "service name too long (max 256 characters)")
	}

	// Check for control characters and null bytes
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "service name contains invalid control characters")
		}
	}

	// Check for path traversal patterns
	dangerousPatterns := []string{
		"..",   // Parent directory
		"//",   // Double slash
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidInput, "service name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateDiagramKey validates a diagram output key for safety.
// It ensures the key is a simple basename without path components.
func ValidateDiagramKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidDiagram, "diagram key cannot be empty")
	}

	// Must be a simple filename, not a path
	if strings.ContainsAny(key, "/\\") {
		return New(ErrCodeInvalidDiagram, "diagram key cannot contain path separators")
	}

	// No hidden files (starting with .)
	if strings.HasPrefix(key, ".") {
		return New(ErrCodeInvalidDiagram, "diagram key cannot be a hidden file")
	}

	for _, r := range key {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidDiagram, "diagram key contains invalid control characters")
		}
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
