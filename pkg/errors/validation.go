package errors

import (
	"strings"
	"unicode"
)

// MaxPayloadLength bounds the identifier length accepted as a code payload.
// A 144x144 Data Matrix holds at most 2335 ASCII characters. The raster
// side limits the symbol size further, so most of this range is rejected
// when the code is rasterized.
const MaxPayloadLength = 2335

// ValidatePayload validates an identifier for use as a code payload.
//
// The rules follow the ASCII encodation of the supported symbologies:
//   - No empty payloads
//   - Only printable ASCII (0x20-0x7E)
//   - Maximum length of MaxPayloadLength characters
//
// Violations are reported as ENCODING_ERROR.
func ValidatePayload(payload string) error {
	if payload == "" {
		return New(ErrCodeEncoding, "payload cannot be empty")
	}
	if len(payload) > MaxPayloadLength {
		return New(ErrCodeEncoding, "payload too long (max %d characters)", MaxPayloadLength)
	}
	for i, r := range payload {
		if r < 0x20 || r > 0x7e {
			return New(ErrCodeEncoding, "payload %q has non-ASCII character %q at byte %d", payload, r, i)
		}
	}
	return nil
}

// ValidatePath validates an output or input file path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if strings.TrimSpace(path) == "" {
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
	return nil
}
