package errors

import (
	"strings"
	"testing"
)

func TestValidateBranchName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "master", false},
		{"with slash", "feature/login", false},
		{"with dash", "hot-fix", false},
		{"unicode", "développement", false},

		{"empty", "", true},
		{"too long", strings.Repeat("b", 129), true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
		{"leading dash", "-rf", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBranchName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateBranchName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateColor(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"", false},
		{"#fff", false},
		{"#6963FF", false},
		{"#6963FF80", false},
		{"black", false},
		{"steelblue", false},

		{"#12", true},
		{"rgb(1,2,3)", true},
		{"#zzzzzz", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateColor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidColor) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidColor)
			}
		})
	}
}

func TestValidateDiagramID(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"0b6a4e1c-3f0e-4d52-9bd8-5d6b33a1c7e2", false},
		{"demo_1", false},
		{"", true},
		{"../etc", true},
		{strings.Repeat("a", 65), true},
	}

	for _, tt := range tests {
		err := ValidateDiagramID(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateDiagramID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}
