package errors

import (
	"strings"
	"unicode"
)

// netspecSeparators are the characters the network spec format reserves
// as structure. A node name containing any of them cannot round-trip
// through encode/decode.
const netspecSeparators = "()+~:*"

// ValidateNodeName validates a gene/node name for use in a network spec.
// Names must be non-empty, free of whitespace and control characters, and
// must not contain format separators.
func ValidateNodeName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "node name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidInput, "node name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "node name %q contains whitespace or control characters", name)
		}
	}

	if strings.ContainsAny(name, netspecSeparators) {
		return New(ErrCodeInvalidInput, "node name %q contains reserved separator characters", name)
	}

	return nil
}

// ValidateFormat validates an artifact output format.
func ValidateFormat(format string) error {
	switch format {
	case "json", "dot", "svg", "png":
		return nil
	}
	return New(ErrCodeInvalidFormat, "invalid format: %q (must be one of: json, dot, svg, png)", format)
}

// ValidateFormats validates a list of artifact output formats.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}
