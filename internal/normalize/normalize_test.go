package normalize

import "testing"

func TestStreet(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "Long Form Sharp S",
			input: "Hauptstraße",
			want:  "hauptstr.",
		},
		{
			name:  "Long Form Double S",
			input: "Hauptstrasse",
			want:  "hauptstr.",
		},
		{
			name:  "Already Abbreviated",
			input: "Hauptstr.",
			want:  "hauptstr.",
		},
		{
			name:  "Platz",
			input: "Marktplatz",
			want:  "marktpl.",
		},
		{
			name:  "Whitespace Collapse",
			input: "  Alte   Dorfstraße ",
			want:  "alte dorfstr.",
		},
		{
			name:  "Hyphen Preserved",
			input: "Max-Planck-Straße",
			want:  "max-planck-str.",
		},
		{
			name:  "Punctuation Stripped",
			input: "Nebenweg, (alt)",
			want:  "nebenweg alt",
		},
		{
			name:  "Empty",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Street(tt.input); got != tt.want {
				t.Errorf("Street(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestStreetSpellingVariantsConverge(t *testing.T) {
	variants := []string{"Hauptstraße", "Hauptstrasse", "HAUPTSTR.", "hauptstr."}
	want := Street(variants[0])
	for _, v := range variants {
		if got := Street(v); got != want {
			t.Errorf("Street(%q) = %q, want %q", v, got, want)
		}
	}
}

func TestHouseNumber(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "Plain", input: "12", want: "12"},
		{name: "Letter Suffix Case", input: "12A", want: "12a"},
		{name: "Internal Space", input: "12 a", want: "12a"},
		{name: "Surrounding Space", input: " 5 ", want: "5"},
		{name: "Empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HouseNumber(tt.input); got != tt.want {
				t.Errorf("HouseNumber(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestKeyDeterministic(t *testing.T) {
	a := Key("Hauptstraße", "12 a")
	b := Key("hauptstrasse", "12A")
	if a != b {
		t.Errorf("keys differ: %q vs %q", a, b)
	}
}
