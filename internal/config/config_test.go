package config

import (
	"reflect"
	"testing"
)

func TestParseOwnerList(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "single entry", raw: "owner@example.com", want: []string{"owner@example.com"}},
		{name: "mixed case and spacing", raw: " Owner@Example.com , cousin@example.com ", want: []string{"owner@example.com", "cousin@example.com"}},
		{name: "empty entries dropped", raw: ",,owner@example.com,", want: []string{"owner@example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseOwnerList(tt.raw); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseOwnerList(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestIsOwner(t *testing.T) {
	cfg := Config{OwnerEmails: parseOwnerList("owner@example.com,cousin@example.com")}

	tests := []struct {
		email string
		want  bool
	}{
		{email: "owner@example.com", want: true},
		{email: "OWNER@example.com", want: true},
		{email: "  Cousin@Example.COM ", want: true},
		{email: "guest@example.com", want: false},
		{email: "", want: false},
	}

	for _, tt := range tests {
		if got := cfg.IsOwner(tt.email); got != tt.want {
			t.Errorf("IsOwner(%q) = %v, want %v", tt.email, got, tt.want)
		}
	}
}
