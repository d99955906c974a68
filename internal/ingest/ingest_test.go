package ingest_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/xuri/excelize/v2"

	"github.com/VictorOli23/Consultas-SPI/internal/ingest"
	"github.com/VictorOli23/Consultas-SPI/internal/models"
)

// ---------------------------------------------------------------------------
// Mock stores
// ---------------------------------------------------------------------------

type mockSiteStore struct {
	upserted []models.SiteRecord
	err      error
	calls    int
}

func (m *mockSiteStore) UpsertAll(_ context.Context, recs []models.SiteRecord) error {
	m.calls++
	m.upserted = recs
	return m.err
}

type mockDutyStore struct {
	replaced []models.DutyRecord
	err      error
	calls    int
}

func (m *mockDutyStore) Replace(_ context.Context, recs []models.DutyRecord) error {
	m.calls++
	m.replaced = recs
	return m.err
}

// ---------------------------------------------------------------------------
// Workbook fixtures
// ---------------------------------------------------------------------------

var ingestNow = time.Date(2026, 2, 14, 9, 0, 0, 0, time.UTC)

func writeRow(t *testing.T, f *excelize.File, sheet string, row int, cells []any) {
	t.Helper()
	for col, v := range cells {
		name, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetCellValue(sheet, name, v); err != nil {
			t.Fatalf("set cell %s: %v", name, err)
		}
	}
}

func buildWorkbook(t *testing.T, sheets map[string][][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	first := true
	for name, rows := range sheets {
		if first {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				t.Fatalf("rename sheet: %v", err)
			}
			first = false
		} else if _, err := f.NewSheet(name); err != nil {
			t.Fatalf("new sheet: %v", err)
		}
		for i, cells := range rows {
			writeRow(t, f, name, i+1, cells)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf
}

func rosterSheet() [][]any {
	return [][]any{
		{"ESCALA DE PLANTÃO"},
		{"Funcionários", "ContatoCorp.", "Supervisor", "CM", 1, 2, "22/2"},
		{"Carlos Silva", "(12) 99999-0001", "Ana", "ARC", 8, "F", "Y"},
		{"Bruna Costa", "(12) 99999-0002", "Ana", "ARC", "F", "Y", "C"},
	}
}

func sitesSheet() [][]any {
	return [][]any{
		{"Sigla", "NomeDaLocalidade", "localidade", "Area", "DDD", "Telefone", "CX", "TX", "IE"},
		{"SJC", "São José dos Campos", "Centro", "ARC", 12, "(12) 3900-0000", "", "", ""},
		{"CAS", "Campinas", "Norte", "CAS", 19, "", "", "", ""},
	}
}

// ---------------------------------------------------------------------------
// Sites ingestion
// ---------------------------------------------------------------------------

func TestSitesIngestion(t *testing.T) {
	buf := buildWorkbook(t, map[string][][]any{"padrao": sitesSheet()})
	store := &mockSiteStore{}
	svc := ingest.NewService(store, &mockDutyStore{}, clockwork.NewFakeClockAt(ingestNow))

	sum, err := svc.Sites(context.Background(), buf)
	if err != nil {
		t.Fatalf("Sites: %v", err)
	}
	if sum.Records != 2 || store.calls != 1 {
		t.Fatalf("records = %d calls = %d, want 2/1", sum.Records, store.calls)
	}
	if store.upserted[1].Code != "SJC" || store.upserted[1].AreaCode != "12" {
		t.Errorf("unexpected record: %+v", store.upserted[1])
	}
}

func TestSitesIngestionFallsBackToFirstSheet(t *testing.T) {
	buf := buildWorkbook(t, map[string][][]any{"localidades 2026": sitesSheet()})
	store := &mockSiteStore{}
	svc := ingest.NewService(store, &mockDutyStore{}, clockwork.NewFakeClockAt(ingestNow))

	sum, err := svc.Sites(context.Background(), buf)
	if err != nil {
		t.Fatalf("Sites: %v", err)
	}
	if sum.Records != 2 {
		t.Errorf("records = %d, want 2", sum.Records)
	}
}

func TestSitesIngestionEmptyWorkbookSoftError(t *testing.T) {
	buf := buildWorkbook(t, map[string][][]any{"padrao": {{"nothing", "useful"}}})
	svc := ingest.NewService(&mockSiteStore{}, &mockDutyStore{}, clockwork.NewFakeClockAt(ingestNow))

	_, err := svc.Sites(context.Background(), buf)
	var soft *ingest.Error
	if !errors.As(err, &soft) {
		t.Fatalf("err = %v, want *ingest.Error", err)
	}
}

func TestSitesIngestionGarbageInput(t *testing.T) {
	svc := ingest.NewService(&mockSiteStore{}, &mockDutyStore{}, clockwork.NewFakeClockAt(ingestNow))

	if _, err := svc.Sites(context.Background(), bytes.NewReader([]byte("not a workbook"))); err == nil {
		t.Fatal("expected error for non-workbook input")
	}
}

// ---------------------------------------------------------------------------
// Roster ingestion
// ---------------------------------------------------------------------------

func TestRosterIngestion(t *testing.T) {
	buf := buildWorkbook(t, map[string][][]any{
		"12ARC":        rosterSheet(),
		"Funcionários": {{"Nome", "Telefone"}}, // not a region sheet, ignored
	})
	duty := &mockDutyStore{}
	svc := ingest.NewService(&mockSiteStore{}, duty, clockwork.NewFakeClockAt(ingestNow))

	sum, err := svc.Roster(context.Background(), buf)
	if err != nil {
		t.Fatalf("Roster: %v", err)
	}
	if sum.Sheets != 1 {
		t.Errorf("sheets = %d, want 1", sum.Sheets)
	}
	if sum.Period != "02-2026" {
		t.Errorf("period = %q, want 02-2026", sum.Period)
	}
	// Carlos: days 1 (code 8) and 22 (Y); Bruna: day 2 (Y). Sentinels drop.
	if sum.Records != 3 || duty.calls != 1 {
		t.Fatalf("records = %d calls = %d, want 3/1", sum.Records, duty.calls)
	}

	byKey := make(map[models.DutyKey]models.DutyRecord)
	for _, rec := range duty.replaced {
		byKey[rec.Key()] = rec
	}
	carlos := byKey[models.DutyKey{
		RegionSheetTag: "12ARC", Technician: "Carlos Silva", DayOfMonth: 22, MonthYear: "02-2026",
	}]
	if carlos.ShiftCode != "Y" || carlos.Coordinator != "ARC" {
		t.Errorf("unexpected record: %+v", carlos)
	}
}

func TestRosterIngestionSkipsHeaderlessSheets(t *testing.T) {
	buf := buildWorkbook(t, map[string][][]any{
		"12ARC": rosterSheet(),
		"15":    {{"no header", "here"}, {"at", "all"}},
	})
	duty := &mockDutyStore{}
	svc := ingest.NewService(&mockSiteStore{}, duty, clockwork.NewFakeClockAt(ingestNow))

	sum, err := svc.Roster(context.Background(), buf)
	if err != nil {
		t.Fatalf("Roster: %v", err)
	}
	if sum.Sheets != 1 {
		t.Errorf("parsed sheets = %d, want 1 (headerless sheet skipped)", sum.Sheets)
	}
}

func TestRosterIngestionNoUsableSheetsSoftError(t *testing.T) {
	buf := buildWorkbook(t, map[string][][]any{
		"resumo": {{"totais"}},
	})
	duty := &mockDutyStore{}
	svc := ingest.NewService(&mockSiteStore{}, duty, clockwork.NewFakeClockAt(ingestNow))

	_, err := svc.Roster(context.Background(), buf)
	var soft *ingest.Error
	if !errors.As(err, &soft) {
		t.Fatalf("err = %v, want *ingest.Error", err)
	}
	if duty.calls != 0 {
		t.Error("duty store touched although nothing was parsed")
	}
}

func TestRosterIngestionStoreFailureIsFatal(t *testing.T) {
	buf := buildWorkbook(t, map[string][][]any{"12ARC": rosterSheet()})
	duty := &mockDutyStore{err: fmt.Errorf("connection refused")}
	svc := ingest.NewService(&mockSiteStore{}, duty, clockwork.NewFakeClockAt(ingestNow))

	_, err := svc.Roster(context.Background(), buf)
	if err == nil {
		t.Fatal("expected error when the store is unreachable")
	}
	var soft *ingest.Error
	if errors.As(err, &soft) {
		t.Error("store failure misreported as a soft ingestion error")
	}
}
