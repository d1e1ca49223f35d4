package errors

import (
	"strings"
	"testing"
)

func TestValidateVariantName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "simple", input: "person", wantErr: false},
		{name: "with dash", input: "cited-by", wantErr: false},
		{name: "empty", input: "", wantErr: true},
		{name: "pipe separator", input: "per|son", wantErr: true},
		{name: "control character", input: "per\x00son", wantErr: true},
		{name: "newline", input: "person\n", wantErr: true},
		{name: "too long", input: strings.Repeat("a", 129), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateVariantName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateVariantName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidVariant) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidVariant)
			}
		})
	}
}

func TestValidateDisplayName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "simple", input: "Alice", wantErr: false},
		{name: "unicode", input: "Ada Lovelace ✓", wantErr: false},
		{name: "empty", input: "", wantErr: true},
		{name: "control character", input: "Ali\x07ce", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDisplayName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDisplayName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
