package legend_test

import (
	"strings"
	"testing"

	"github.com/VictorOli23/Consultas-SPI/internal/legend"
)

func TestResolveKnownCodes(t *testing.T) {
	lg := legend.Default()

	tests := []struct {
		code string
		want string
	}{
		{"8", "08:00 às 17:00"},
		{"A", "07:00 às 19:00"},
		{"B", "19:00 às 07:00"}, // overnight span, display only
		{"Y", "22:00 às 06:00"},
	}
	for _, tt := range tests {
		if got := lg.Resolve(tt.code); got != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestResolveUnknownCodeFallsBack(t *testing.T) {
	lg := legend.Default()

	got := lg.Resolve("ZZ9")
	if !strings.Contains(got, "ZZ9") {
		t.Errorf("fallback %q does not embed the raw code", got)
	}
}

func TestNewCopiesTable(t *testing.T) {
	table := map[string]string{"Q": "01:00 às 02:00"}
	lg := legend.New(table)
	table["Q"] = "mutated"

	if got := lg.Resolve("Q"); got != "01:00 às 02:00" {
		t.Errorf("Resolve(Q) = %q, legend leaked caller mutation", got)
	}
}

func TestDefaultHasTensOfEntries(t *testing.T) {
	if n := legend.Default().Len(); n < 20 {
		t.Errorf("default legend has %d entries, want at least 20", n)
	}
}
