package sanitizer

import (
	"reflect"
	"testing"
)

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain string untouched", "Sea View", "Sea View"},
		{"leading and trailing whitespace", "  Sea View  ", "Sea View"},
		{"internal runs collapse", "Sea \t  View", "Sea View"},
		{"newlines collapse to space", "Sea\nView", "Sea View"},
		{"only whitespace", "   \t\n", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrimAndNormalize(tt.input); got != tt.want {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Guest@Example.COM "); got != "guest@example.com" {
		t.Errorf("NormalizeEmail() = %q", got)
	}
}

func TestNormalizeAmenities(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name:  "lowercases and dedupes",
			input: []string{"WiFi", "wifi", " Minibar "},
			want:  []string{"wifi", "minibar"},
		},
		{
			name:  "drops empties",
			input: []string{"", "  ", "tv"},
			want:  []string{"tv"},
		},
		{
			name:  "nil input yields empty slice",
			input: nil,
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeAmenities(tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeAmenities(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
