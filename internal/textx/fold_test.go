package textx

import "testing"

func TestFold(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Funcionários", "FUNCIONARIOS"},
		{"  São José  ", "SAO JOSE"},
		{"ESCALA", "ESCALA"},
		{"", ""},
		{"coordenação", "COORDENACAO"},
	}
	for _, tt := range tests {
		if got := Fold(tt.in); got != tt.want {
			t.Errorf("Fold(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStripDiacriticsKeepsBaseRunes(t *testing.T) {
	if got := StripDiacritics("àéîõü"); got != "aeiou" {
		t.Errorf("StripDiacritics = %q, want aeiou", got)
	}
}
