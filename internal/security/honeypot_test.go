package security

import "testing"

func TestValidateHoneypot(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{name: "empty value passes", value: "", want: true},
		{name: "whitespace only passes", value: "   \t\n", want: true},
		{name: "plain text fails", value: "http://spam.example", want: false},
		{name: "padded text fails", value: "  bot was here  ", want: false},
		{name: "single character fails", value: "x", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateHoneypot(tt.value); got != tt.want {
				t.Errorf("ValidateHoneypot(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}
