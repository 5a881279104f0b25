package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// maxPackageNameLength is npm's limit on package name length.
const maxPackageNameLength = 214

// ValidatePackageName validates a package name read from a manifest or tree.
// It rejects names that could be used for path traversal or injection attacks.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path traversal sequences (.., //, etc.)
//   - Maximum length of 214 characters
func ValidatePackageName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPackage, "package name cannot be empty")
	}

	if len(name) > maxPackageNameLength {
		return New(ErrCodeInvalidPackage, "package name too long (max %d characters)", maxPackageNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPackage, "package name contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"//",   // Double slash
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidPackage, "package name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// categoryNameRegex matches catalog category names: lowercase words joined by
// dashes or underscores.
var categoryNameRegex = regexp.MustCompile(`^[a-z0-9]+([-_][a-z0-9]+)*$`)

// ValidateCategory validates a category filter supplied by a user.
// An empty category means "no filter" and is accepted.
func ValidateCategory(category string) error {
	if category == "" {
		return nil
	}
	if !categoryNameRegex.MatchString(category) {
		return New(ErrCodeInvalidCategory, "invalid category name: %q", category)
	}
	return nil
}
