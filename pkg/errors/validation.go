package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateBranchName validates a branch name used in scripts and API requests.
//
// The rules are conservative:
//   - No empty names
//   - No control characters
//   - Maximum length of 128 characters
//   - No leading dash (would be read as a CLI flag)
func ValidateBranchName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "branch name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidInput, "branch name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "branch name contains invalid control characters")
		}
	}

	if strings.HasPrefix(name, "-") {
		return New(ErrCodeInvalidInput, "branch name cannot start with a dash: %q", name)
	}

	return nil
}

// hexColorRegex matches #rgb, #rrggbb and #rrggbbaa colors.
var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// namedColorRegex matches CSS color keywords ("black", "steelblue").
var namedColorRegex = regexp.MustCompile(`^[a-zA-Z]+$`)

// ValidateColor checks that s looks like a CSS color gitgraph can draw with.
// An empty string is valid and means "inherit".
func ValidateColor(s string) error {
	if s == "" {
		return nil
	}
	if hexColorRegex.MatchString(s) || namedColorRegex.MatchString(s) {
		return nil
	}
	return New(ErrCodeInvalidColor, "invalid color: %q", s)
}

// ValidateDiagramID validates a diagram identifier taken from a URL path.
func ValidateDiagramID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "diagram id cannot be empty")
	}
	if len(id) > 64 {
		return New(ErrCodeInvalidInput, "diagram id too long (max 64 characters)")
	}
	for _, r := range id {
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_') {
			return New(ErrCodeInvalidInput, "diagram id contains invalid characters")
		}
	}
	return nil
}
