package roster

import "testing"

func TestExtractDay(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
		okay bool
	}{
		{"bare digits", "23", 23, true},
		{"bare digits padded", " 7 ", 7, true},
		{"slash compound", "22/2", 22, true},
		{"dot compound float artifact", "23.0", 23, true},
		{"datetime render iso", "2026-02-23 00:00:00", 23, true},
		{"datetime render short", "02-23-26 00:00", 23, true},
		{"empty", "", 0, false},
		{"zero", "0", 0, false},
		{"out of range", "32", 0, false},
		{"out of range compound", "40/2", 0, false},
		{"text label", "Funcionários", 0, false},
		{"role label", "Supervisor", 0, false},
		{"non-midnight time", "2026-02-23 08:30:00", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractDay(tt.raw)
			if ok != tt.okay {
				t.Fatalf("ExtractDay(%q) ok = %v, want %v", tt.raw, ok, tt.okay)
			}
			if got != tt.want {
				t.Errorf("ExtractDay(%q) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}

func TestExtractDaySameDayAcrossForms(t *testing.T) {
	// One day column labeled "23/2", one as the integer 23, one as a
	// date-typed render: all normalize to the same day.
	for _, raw := range []string{"23/2", "23", "2026-02-23 00:00:00"} {
		day, ok := ExtractDay(raw)
		if !ok || day != 23 {
			t.Errorf("ExtractDay(%q) = (%d, %v), want (23, true)", raw, day, ok)
		}
	}
}
