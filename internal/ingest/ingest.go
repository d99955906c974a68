// Package ingest implements the two ingestion entry points: the site
// directory and the monthly duty roster. Both read a workbook stream,
// normalize it, and persist through the record stores.
package ingest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/VictorOli23/Consultas-SPI/internal/models"
	"github.com/VictorOli23/Consultas-SPI/internal/roster"
	"github.com/VictorOli23/Consultas-SPI/internal/sites"
	"github.com/VictorOli23/Consultas-SPI/internal/workbook"
)

// regionTokens mark the roster sheets worth parsing: a sheet belongs to the
// run when its name contains one of the known telephone area codes.
var regionTokens = []string{"12", "14", "15", "16", "17", "18", "19"}

// directorySheet is the preferred sheet name of the location workbook.
const directorySheet = "padrao"

// Error is a soft ingestion failure: the workbook was readable but contained
// nothing usable. Records committed before the failure stay committed.
type Error struct {
	Reason string
}

func (e *Error) Error() string {
	return e.Reason
}

// SiteStore is the slice of the site store ingestion needs.
type SiteStore interface {
	UpsertAll(ctx context.Context, recs []models.SiteRecord) error
}

// DutyStore is the slice of the duty store ingestion needs.
type DutyStore interface {
	Replace(ctx context.Context, recs []models.DutyRecord) error
}

// Summary reports what one ingestion run did.
type Summary struct {
	RunID   uuid.UUID `json:"run_id"`
	Sheets  int       `json:"sheets"`
	Records int       `json:"records"`
	Period  string    `json:"period,omitempty"`
}

// Service runs ingestions against the two record stores.
type Service struct {
	sites SiteStore
	duty  DutyStore
	clock clockwork.Clock
}

// NewService creates a Service. clock supplies the period tag stamped on
// roster records.
func NewService(siteStore SiteStore, dutyStore DutyStore, clock clockwork.Clock) *Service {
	return &Service{sites: siteStore, duty: dutyStore, clock: clock}
}

// Sites ingests the location workbook: the "padrao" sheet when present,
// otherwise the first sheet, is normalized into the directory and upserted
// by code. A workbook yielding zero usable rows is a soft *Error.
func (s *Service) Sites(ctx context.Context, r io.Reader) (Summary, error) {
	start := time.Now()

	wb, err := workbook.Open(r)
	if err != nil {
		return Summary{}, err
	}
	defer wb.Close()

	sheet, ok := pickDirectorySheet(wb.Sheets())
	if !ok {
		return Summary{}, &Error{Reason: "workbook has no sheets"}
	}

	grid, err := wb.Rows(sheet)
	if err != nil {
		return Summary{}, err
	}

	recs := sites.BuildDirectory(grid)
	if len(recs) == 0 {
		return Summary{}, &Error{Reason: fmt.Sprintf("sheet %q yielded no site records", sheet)}
	}

	if err := s.sites.UpsertAll(ctx, recs); err != nil {
		return Summary{}, fmt.Errorf("persist sites: %w", err)
	}

	sum := Summary{RunID: uuid.New(), Sheets: 1, Records: len(recs)}
	slog.Info("site directory ingested",
		"run_id", sum.RunID,
		"sheet", sheet,
		"records", sum.Records,
		"latency_ms", time.Since(start).Milliseconds(),
	)
	return sum, nil
}

// Roster ingests the monthly duty workbook. Every sheet whose name carries a
// region token is parsed; sheets without a recognizable header row are
// skipped as soft failures. The merged, deduplicated batch replaces the duty
// collection in a single truncate-and-insert transaction.
func (s *Service) Roster(ctx context.Context, r io.Reader) (Summary, error) {
	start := time.Now()
	period := s.clock.Now().Format(models.PeriodLayout)

	wb, err := workbook.Open(r)
	if err != nil {
		return Summary{}, err
	}
	defer wb.Close()

	regionSheets := pickRegionSheets(wb.Sheets())
	if len(regionSheets) == 0 {
		return Summary{}, &Error{Reason: "no region sheets found in workbook"}
	}

	dedup := make(map[models.DutyKey]models.DutyRecord)
	parsed := 0
	for _, sheet := range regionSheets {
		grid, err := wb.Rows(sheet)
		if err != nil {
			slog.Warn("sheet unreadable, skipping", "sheet", sheet, "error", err)
			continue
		}

		hm, ok := roster.LocateHeader(grid)
		if !ok {
			slog.Warn("no header row located, skipping sheet", "sheet", sheet)
			continue
		}

		recs := roster.Normalize(sheet, hm, grid[hm.Row+1:], period)
		for _, rec := range recs {
			dedup[rec.Key()] = rec
		}
		parsed++
		slog.Info("sheet normalized", "sheet", sheet, "records", len(recs), "day_columns", len(hm.Days))
	}

	if parsed == 0 {
		return Summary{}, &Error{Reason: "no parsable roster sheets in workbook"}
	}

	batch := make([]models.DutyRecord, 0, len(dedup))
	for _, rec := range dedup {
		batch = append(batch, rec)
	}

	if err := s.duty.Replace(ctx, batch); err != nil {
		return Summary{}, fmt.Errorf("persist roster: %w", err)
	}

	sum := Summary{RunID: uuid.New(), Sheets: parsed, Records: len(batch), Period: period}
	slog.Info("duty roster ingested",
		"run_id", sum.RunID,
		"sheets", sum.Sheets,
		"records", sum.Records,
		"period", period,
		"latency_ms", time.Since(start).Milliseconds(),
	)
	return sum, nil
}

func pickDirectorySheet(names []string) (string, bool) {
	for _, name := range names {
		if strings.EqualFold(strings.TrimSpace(name), directorySheet) {
			return name, true
		}
	}
	if len(names) == 0 {
		return "", false
	}
	return names[0], true
}

func pickRegionSheets(names []string) []string {
	var picked []string
	for _, name := range names {
		for _, tok := range regionTokens {
			if strings.Contains(name, tok) {
				picked = append(picked, name)
				break
			}
		}
	}
	return picked
}
