// Package sites normalizes the location workbook into the site directory and
// persists it with overwrite-by-key semantics.
package sites

import (
	"sort"
	"strings"

	"github.com/VictorOli23/Consultas-SPI/internal/models"
	"github.com/VictorOli23/Consultas-SPI/internal/textx"
)

// field markers for the directory sheet's header row, folded. More specific
// markers come before generic ones so "NomeDaLocalidade" is not swallowed by
// "localidade".
var siteColumns = []struct {
	field   string
	markers []string
}{
	{"code", []string{"SIGLA"}},
	{"displayName", []string{"NOMEDALOCALIDADE", "NOME DA LOCALIDADE", "NOME"}},
	{"locality", []string{"LOCALIDADE"}},
	{"regionArea", []string{"AREA"}},
	{"areaCode", []string{"DDD"}},
	{"phone", []string{"TELEFONE", "FONE"}},
	{"cx", []string{"CX"}},
	{"tx", []string{"TX"}},
	{"ie", []string{"IE"}},
}

// BuildDirectory normalizes the raw grid of the location sheet into site
// records. The first non-empty row is the header; columns are matched by
// folded substring. Rows with an empty code are skipped. Later rows for the
// same code overwrite earlier ones, so one ingestion never yields duplicate
// codes. Output is sorted by code.
func BuildDirectory(grid [][]string) []models.SiteRecord {
	headerRow, cols := locateColumns(grid)
	if headerRow < 0 {
		return nil
	}

	dedup := make(map[string]models.SiteRecord)
	for _, row := range grid[headerRow+1:] {
		code := strings.ToUpper(strings.TrimSpace(cellAt(row, cols["code"])))
		if code == "" {
			continue
		}
		dedup[code] = models.SiteRecord{
			Code:        code,
			DisplayName: strings.TrimSpace(cellAt(row, cols["displayName"])),
			Locality:    strings.TrimSpace(cellAt(row, cols["locality"])),
			RegionArea:  strings.TrimSpace(cellAt(row, cols["regionArea"])),
			AreaCode:    strings.TrimSpace(cellAt(row, cols["areaCode"])),
			Phone:       strings.TrimSpace(cellAt(row, cols["phone"])),
			CX:          strings.TrimSpace(cellAt(row, cols["cx"])),
			TX:          strings.TrimSpace(cellAt(row, cols["tx"])),
			IE:          strings.TrimSpace(cellAt(row, cols["ie"])),
		}
	}

	recs := make([]models.SiteRecord, 0, len(dedup))
	for _, rec := range dedup {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].Code < recs[j].Code })
	return recs
}

// locateColumns finds the header row (the first row containing a code/"Sigla"
// marker) and maps each site field to its column. Fields absent from the
// header map to -1 and read as empty strings.
func locateColumns(grid [][]string) (int, map[string]int) {
	for rowIdx, row := range grid {
		if !rowHasCodeMarker(row) {
			continue
		}
		cols := make(map[string]int, len(siteColumns))
		for _, sc := range siteColumns {
			cols[sc.field] = -1
		}
		for colIdx, cell := range row {
			folded := textx.Fold(cell)
			if folded == "" {
				continue
			}
			for _, sc := range siteColumns {
				if cols[sc.field] >= 0 {
					continue
				}
				if matchesAny(folded, sc.markers) {
					cols[sc.field] = colIdx
					break
				}
			}
		}
		return rowIdx, cols
	}
	return -1, nil
}

func rowHasCodeMarker(row []string) bool {
	for _, cell := range row {
		if matchesAny(textx.Fold(cell), siteColumns[0].markers) {
			return true
		}
	}
	return false
}

func matchesAny(folded string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(folded, m) {
			return true
		}
	}
	return false
}

func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}
