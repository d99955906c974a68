// Package roster turns irregular duty-workbook sheets into canonical duty
// records: it finds the header row, decodes day-of-month columns, and
// deduplicates technician/day assignments.
package roster

import (
	"sort"
	"strings"

	"github.com/VictorOli23/Consultas-SPI/internal/models"
	"github.com/VictorOli23/Consultas-SPI/internal/textx"
)

// Sentinels are cell values meaning "not working": off (F), compensatory off
// (C), leave (L), holidays (FE/FF), plus the empty and NaN artifacts spread
// by spreadsheet tooling. Cells carrying one of these never become records.
var Sentinels = map[string]struct{}{
	"":    {},
	"F":   {},
	"C":   {},
	"L":   {},
	"FE":  {},
	"FF":  {},
	"NAN": {},
}

// IsSentinel reports whether the trimmed, upper-cased cell value is a
// non-duty marker.
func IsSentinel(value string) bool {
	_, ok := Sentinels[strings.ToUpper(strings.TrimSpace(value))]
	return ok
}

// Normalize converts one sheet's data rows into deduplicated duty records.
// sheetTag is the origin sheet's label and period the "MM-YYYY" tag of the
// ingestion run.
//
// Rows with an empty technician cell, or one that merely echoes the header
// marker, are skipped. Day cells classified as sentinels produce no record;
// any other non-empty value is accepted as a shift code.
//
// Records accumulate in a map keyed by (sheet, technician, day, period) so a
// later row for the same key overwrites an earlier one. The returned slice is
// sorted by technician then day for deterministic output.
func Normalize(sheetTag string, hm HeaderMap, rows [][]string, period string) []models.DutyRecord {
	techCol, ok := hm.Col(RoleTechnician)
	if !ok {
		return nil
	}

	dedup := make(map[models.DutyKey]models.DutyRecord)
	for _, row := range rows {
		tech := strings.TrimSpace(cellAt(row, techCol))
		if tech == "" || isHeaderEcho(tech) {
			continue
		}

		contact := strings.TrimSpace(cellAt(row, colOrMissing(hm, RoleContact)))
		supervisor := strings.TrimSpace(cellAt(row, colOrMissing(hm, RoleSupervisor)))
		coordinator := strings.TrimSpace(cellAt(row, colOrMissing(hm, RoleCoordinator)))
		segment := strings.TrimSpace(cellAt(row, colOrMissing(hm, RoleSegment)))

		for day, col := range hm.Days {
			code := strings.TrimSpace(cellAt(row, col))
			if IsSentinel(code) {
				continue
			}
			rec := models.DutyRecord{
				RegionSheetTag: sheetTag,
				Technician:     tech,
				Contact:        contact,
				Supervisor:     supervisor,
				Coordinator:    coordinator,
				Segment:        segment,
				DayOfMonth:     day,
				MonthYear:      period,
				ShiftCode:      strings.ToUpper(code),
			}
			dedup[rec.Key()] = rec
		}
	}

	recs := make([]models.DutyRecord, 0, len(dedup))
	for _, rec := range dedup {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].Technician != recs[j].Technician {
			return recs[i].Technician < recs[j].Technician
		}
		return recs[i].DayOfMonth < recs[j].DayOfMonth
	})
	return recs
}

// isHeaderEcho reports whether a technician cell repeats the header marker,
// which happens when a sheet glues a second header band mid-table.
func isHeaderEcho(tech string) bool {
	folded := textx.Fold(tech)
	for _, m := range roleMarkers[0].markers {
		if strings.Contains(folded, m) {
			return true
		}
	}
	return false
}

// cellAt returns the cell at col, or "" when the row is ragged or the column
// was not located.
func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

func colOrMissing(hm HeaderMap, r Role) int {
	if col, ok := hm.Col(r); ok {
		return col
	}
	return -1
}
