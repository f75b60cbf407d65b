package recipients

import (
	"errors"
	"testing"
)

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"lowercases", "Jordan@Example.COM", "jordan@example.com", false},
		{"trims whitespace", "  jordan@example.com ", "jordan@example.com", false},
		{"rejects missing domain", "jordan@", "", true},
		{"rejects plain text", "not an email", "", true},
		{"rejects empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeEmail(tt.input)

			if tt.wantErr {
				if !errors.Is(err, ErrInvalidEmail) {
					t.Errorf("normalizeEmail(%q) error = %v, want ErrInvalidEmail", tt.input, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("normalizeEmail(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("normalizeEmail(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
