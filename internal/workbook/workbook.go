// Package workbook is the single boundary to the spreadsheet reader. It wraps
// excelize so the rest of the pipeline only ever sees sheet names and
// row-major string grids.
package workbook

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Workbook is an open multi-sheet tabular file.
type Workbook struct {
	f *excelize.File
}

// Open reads a workbook from r. The caller must Close it.
func Open(r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	return &Workbook{f: f}, nil
}

// Close releases the underlying file resources.
func (w *Workbook) Close() error {
	return w.f.Close()
}

// Sheets returns the sheet names in workbook order.
func (w *Workbook) Sheets() []string {
	return w.f.GetSheetList()
}

// Rows returns the sheet's cells as a row-major grid of rendered strings.
// Date-typed cells come back formatted, which is exactly what the day-column
// parser expects.
func (w *Workbook) Rows(sheet string) ([][]string, error) {
	rows, err := w.f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return rows, nil
}
