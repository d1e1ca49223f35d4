package errors

import (
	"strings"
	"unicode"
)

// ValidateVariantName validates a variant discriminator before it is used
// to key graph buckets and build node ids.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No '|' (the id separator is not escaped by the id formatter)
//   - Maximum length of 128 characters
func ValidateVariantName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidVariant, "variant name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidVariant, "variant name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidVariant, "variant name contains control characters")
		}
	}

	if strings.Contains(name, "|") {
		return New(ErrCodeInvalidVariant, "variant name cannot contain %q (id separator)", "|")
	}

	return nil
}

// ValidateDisplayName validates a node display label.
// Labels are rendered verbatim in the browser overlay, so control
// characters are rejected; everything else is allowed.
func ValidateDisplayName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "display name cannot be empty")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "display name contains control characters")
		}
	}

	return nil
}
