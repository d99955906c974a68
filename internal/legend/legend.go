// Package legend maps shift-code tokens to human-readable time ranges.
package legend

import "fmt"

// Legend is an immutable mapping from shift-code token to display string.
// Construct it once at startup and share it; it is never mutated.
type Legend struct {
	entries map[string]string
}

// New creates a Legend from the given table. The map is copied so later
// mutation of the argument cannot leak into the Legend.
func New(entries map[string]string) *Legend {
	cp := make(map[string]string, len(entries))
	for code, label := range entries {
		cp[code] = label
	}
	return &Legend{entries: cp}
}

// Default returns the standard shift-code table: numeric codes are plain
// work shifts, letter codes are rotating or extended shifts. Overnight spans
// are display strings only; no time arithmetic is done on them.
func Default() *Legend {
	return New(map[string]string{
		// Plain shifts, keyed by starting hour.
		"6":  "06:00 às 15:00",
		"7":  "07:00 às 16:00",
		"8":  "08:00 às 17:00",
		"9":  "09:00 às 18:00",
		"10": "10:00 às 19:00",
		"11": "11:00 às 20:00",
		"12": "12:00 às 21:00",
		"13": "13:00 às 22:00",
		"14": "14:00 às 23:00",
		"15": "15:00 às 00:00",
		"22": "22:00 às 07:00",

		// Rotating / extended shifts.
		"A": "07:00 às 19:00",
		"B": "19:00 às 07:00",
		"D": "07:00 às 17:00",
		"E": "08:00 às 18:00",
		"G": "09:00 às 19:00",
		"H": "10:00 às 20:00",
		"I": "12:00 às 22:00",
		"J": "13:00 às 23:00",
		"M": "06:00 às 14:20",
		"N": "22:00 às 06:00",
		"P": "14:00 às 22:20",
		"R": "16:00 às 00:00",
		"S": "18:00 às 02:00",
		"T": "20:00 às 04:00",
		"X": "08:00 às 20:00",
		"Y": "22:00 às 06:00",
	})
}

// Resolve returns the time range for a known code. Unknown codes never fail:
// the raw token is embedded in a fallback string so the answer still shows
// what the sheet said.
func (l *Legend) Resolve(code string) string {
	if label, ok := l.entries[code]; ok {
		return label
	}
	return fmt.Sprintf("Horário conforme escala (código %s)", code)
}

// Len returns the number of known codes.
func (l *Legend) Len() int {
	return len(l.entries)
}
