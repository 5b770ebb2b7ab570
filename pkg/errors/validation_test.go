package errors

import (
	"strings"
	"testing"
)

func TestValidatePayload(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"six digits", "798670", false},
		{"mixed ascii", "AB-12/x", false},
		{"space inside", "SB 1", false},
		{"tilde", "~", false},

		{"empty", "", true},
		{"too long", strings.Repeat("1", MaxPayloadLength+1), true},
		{"umlaut", "Grün", true},
		{"cyrillic", "ф123", true},
		{"tab", "12\t3", true},
		{"null byte", "12\x003", true},
		{"del", "12\x7f", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePayload(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePayload(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeEncoding) {
				t.Errorf("ValidatePayload(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeEncoding)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "labels.pdf", false},
		{"absolute", "/tmp/labels.pdf", false},
		{"nested", "out/2024/labels.pdf", false},

		{"empty", "", true},
		{"blank", "   ", true},
		{"too long", strings.Repeat("a", 501), true},
		{"null byte", "labels\x00.pdf", true},
		{"newline", "labels\n.pdf", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
