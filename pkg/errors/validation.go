package errors

import (
	"strings"
	"unicode"
)

// ValidateNodeID validates a node identifier from an input document.
// It rejects ids that would break downstream map keys or file names.
//
// The validation rules are intentionally conservative:
//   - No empty ids
//   - No control characters or null bytes
//   - No whitespace
//   - Maximum length of 256 characters
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidNode, "node id cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidNode, "node id too long (max 256 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidNode, "node id contains control characters")
		}
		if unicode.IsSpace(r) {
			return New(ErrCodeInvalidNode, "node id cannot contain whitespace")
		}
	}

	if strings.Contains(id, "\x00") {
		return New(ErrCodeInvalidNode, "node id contains null byte")
	}

	return nil
}

// ValidateLabel validates a node label. Labels are free text but must
// be non-blank and fit in a single document field.
func ValidateLabel(label string) error {
	if strings.TrimSpace(label) == "" {
		return New(ErrCodeInvalidNode, "node label cannot be empty")
	}

	const maxLabelLength = 10000
	if len(label) > maxLabelLength {
		return New(ErrCodeInvalidNode, "node label too long (max %d characters)", maxLabelLength)
	}

	return nil
}

// ValidateConfidence checks that a confidence value is a usable number.
// Out-of-range values are clamped by the decoder, not rejected here;
// only NaN-like garbage fails validation.
func ValidateConfidence(c float64) error {
	if c != c { // NaN
		return New(ErrCodeInvalidEdge, "confidence is not a number")
	}
	return nil
}

// ValidateOutputPath validates a user-supplied output file path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "path contains invalid characters")
		}
	}

	return nil
}
