package sanitizer

import "testing"

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "trim spaces",
			input: "  Jo Bloggs  ",
			want:  "Jo Bloggs",
		},
		{
			name:  "multiple spaces between words",
			input: "Jo    Bloggs",
			want:  "Jo Bloggs",
		},
		{
			name:  "tabs and newlines",
			input: "Jo\t\nBloggs",
			want:  "Jo Bloggs",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "only whitespace",
			input: "   \t\n  ",
			want:  "",
		},
		{
			name:  "preserve special characters",
			input: " Zoë O'Brien-Núñez ",
			want:  "Zoë O'Brien-Núñez",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeName(tt.input)
			if got != tt.want {
				t.Errorf("NormalizeName(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if again := NormalizeName(got); again != got {
				t.Errorf("NormalizeName not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestNormalizeNote(t *testing.T) {
	got := NormalizeNote("  window seat\nplease  ")
	if got != "window seat\nplease" {
		t.Errorf("NormalizeNote() = %q", got)
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"La Piazza", "la-piazza"},
		{"Cedar & Sage", "cedar-and-sage"},
		{"Maple & Co.", "maple-and-co"},
		{"Pier 27", "pier-27"},
		{"  Cocoa Bean Cafe ", "cocoa-bean-cafe"},
		{"Crème Brûlée", "creme-brulee"},
		{"Any", "any"},
		{"---", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Slugify(tt.input)
			if got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if again := Slugify(got); again != got {
				t.Errorf("Slugify not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestFoldForSearch(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Café", "cafe"},
		{"CEDAR", "cedar"},
		{"  Ramen   Republic ", "ramen republic"},
		{"Pho Station", "pho station"},
		{"Phở", "pho"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := FoldForSearch(tt.input); got != tt.want {
				t.Errorf("FoldForSearch(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Jo@X.com \n"); got != "Jo@X.com" {
		t.Errorf("NormalizeEmail() = %q, want %q", got, "Jo@X.com")
	}
}
