package sanitizer

import (
	"reflect"
	"testing"
)

func TestSanitizeSlice(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name:  "slugify and dedupe",
			input: []string{"La Piazza", "la piazza", "LA-PIAZZA"},
			want:  []string{"la-piazza"},
		},
		{
			name:  "filter empty strings",
			input: []string{"Pier 27", "", "  ", "Basilico"},
			want:  []string{"pier-27", "basilico"},
		},
		{
			name:  "keep first-seen order",
			input: []string{"Urban Grill", "Sea Breeze", "Urban Grill"},
			want:  []string{"urban-grill", "sea-breeze"},
		},
		{
			name:  "nil input",
			input: nil,
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeSlice(tt.input, Slugify)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SanitizeSlice() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalizeOrigins(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name:  "lowercase and trim",
			input: []string{" HTTP://Localhost:5173 ", "https://book.example.com"},
			want:  []string{"http://localhost:5173", "https://book.example.com"},
		},
		{
			name:  "remove duplicates",
			input: []string{"http://a.test", "HTTP://A.TEST"},
			want:  []string{"http://a.test"},
		},
		{
			name:  "empty input",
			input: []string{},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeOrigins(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeOrigins() = %v, want %v", got, tt.want)
			}
		})
	}
}
