// Package models contains shared domain structs used across the service.
package models

// PeriodLayout renders the calendar period tag records are stamped with,
// e.g. "02-2026".
const PeriodLayout = "01-2006"

// HealthResponse is returned by /healthz and /readyz endpoints.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// SiteRecord is one entry of the site/location directory, keyed by its
// upper-cased code (the "sigla"). Records are created or overwritten only by
// site-directory ingestion; re-ingesting a code replaces the previous record.
type SiteRecord struct {
	Code        string `json:"code"`
	DisplayName string `json:"display_name"`
	Locality    string `json:"locality"`
	RegionArea  string `json:"region_area"`
	AreaCode    string `json:"area_code"`
	Phone       string `json:"phone"`
	CX          string `json:"cx"`
	TX          string `json:"tx"`
	IE          string `json:"ie"`
}

// DutyRecord is one technician's assigned shift on one calendar day in one
// region. The tuple (RegionSheetTag, Technician, DayOfMonth, MonthYear) is
// unique; duplicate source rows collapse to the last one observed.
//
// The whole duty collection is truncated and repopulated on every roster
// ingestion; prior months are not retained.
type DutyRecord struct {
	RegionSheetTag string `json:"region_sheet_tag"`
	Technician     string `json:"technician"`
	Contact        string `json:"contact"`
	Supervisor     string `json:"supervisor"`
	Coordinator    string `json:"coordinator"`
	Segment        string `json:"segment"`
	DayOfMonth     int    `json:"day_of_month"`
	MonthYear      string `json:"month_year"`
	ShiftCode      string `json:"shift_code"`
}

// DutyKey identifies the unique duty tuple. Used as a map key for
// last-write-wins deduplication during normalization.
type DutyKey struct {
	RegionSheetTag string
	Technician     string
	DayOfMonth     int
	MonthYear      string
}

// Key returns the dedup key of the record.
func (d DutyRecord) Key() DutyKey {
	return DutyKey{
		RegionSheetTag: d.RegionSheetTag,
		Technician:     d.Technician,
		DayOfMonth:     d.DayOfMonth,
		MonthYear:      d.MonthYear,
	}
}
