package roster

import (
	"strings"

	"github.com/VictorOli23/Consultas-SPI/internal/textx"
)

// Role identifies the semantic meaning of a located header column.
type Role string

// Roles a header cell can be classified as.
const (
	RoleTechnician  Role = "technician"
	RoleContact     Role = "contact"
	RoleSupervisor  Role = "supervisor"
	RoleCoordinator Role = "coordinator"
	RoleSegment     Role = "segment"
)

// roleMarkers maps a role to the folded substrings that identify it.
// Order matters: the technician marker is checked first, and within a cell
// the first matching marker wins.
var roleMarkers = []struct {
	role    Role
	markers []string
}{
	{RoleTechnician, []string{"FUNCIONARIO", "EMPLOYEE", "TECNICO"}},
	{RoleContact, []string{"CONTATO", "CONTACT"}},
	{RoleSupervisor, []string{"SUPERVISOR"}},
	{RoleCoordinator, []string{"CM", "COORDENA", "COORDINATOR"}},
	{RoleSegment, []string{"SEGMENTO", "SEGMENT", "INFRA", "TX"}},
}

// HeaderMap is the result of locating a sheet's header row: which row it is,
// where each semantic role lives, and which columns carry day numbers.
type HeaderMap struct {
	Row   int
	Roles map[Role]int
	Days  map[int]int // day of month -> column index
}

// Col returns the column index of a role and whether it was located.
func (h HeaderMap) Col(r Role) (int, bool) {
	c, ok := h.Roles[r]
	return c, ok
}

// LocateHeader scans the grid top to bottom for the header row: the first row
// containing a technician-column marker (case and accent insensitive
// substring match). Every cell of that row is then classified by role marker;
// unclassified cells go through ExtractDay and, when they yield a day, are
// recorded as day columns.
//
// The boolean is false when no header row exists; callers treat that as a
// soft failure and skip the sheet.
func LocateHeader(grid [][]string) (HeaderMap, bool) {
	for rowIdx, row := range grid {
		if !rowHasTechnicianMarker(row) {
			continue
		}

		hm := HeaderMap{
			Row:   rowIdx,
			Roles: make(map[Role]int),
			Days:  make(map[int]int),
		}
		for colIdx, cell := range row {
			if role, ok := classifyCell(cell); ok {
				if _, taken := hm.Roles[role]; !taken {
					hm.Roles[role] = colIdx
				}
				continue
			}
			if day, ok := ExtractDay(cell); ok {
				hm.Days[day] = colIdx
			}
		}
		return hm, true
	}
	return HeaderMap{}, false
}

func rowHasTechnicianMarker(row []string) bool {
	for _, cell := range row {
		folded := textx.Fold(cell)
		for _, m := range roleMarkers[0].markers {
			if strings.Contains(folded, m) {
				return true
			}
		}
	}
	return false
}

func classifyCell(cell string) (Role, bool) {
	folded := textx.Fold(cell)
	if folded == "" {
		return "", false
	}
	for _, rm := range roleMarkers {
		for _, m := range rm.markers {
			if strings.Contains(folded, m) {
				return rm.role, true
			}
		}
	}
	return "", false
}
