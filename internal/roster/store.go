package roster

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/VictorOli23/Consultas-SPI/internal/models"
)

// Store persists duty records to PostgreSQL.
type Store struct {
	db *sql.DB
}

// NewStore creates a Store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Replace destructively swaps the duty collection for the given records:
// truncate followed by bulk insert inside one transaction, so readers never
// observe stale rows intermingled with the new month.
func (s *Store) Replace(ctx context.Context, recs []models.DutyRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, queryTruncate); err != nil {
		return fmt.Errorf("truncate escala: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, queryInsertDuty)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, rec := range recs {
		if _, err := stmt.ExecContext(ctx,
			rec.RegionSheetTag,
			rec.Technician,
			rec.Contact,
			rec.Supervisor,
			rec.Coordinator,
			rec.Segment,
			rec.DayOfMonth,
			rec.MonthYear,
			rec.ShiftCode,
		); err != nil {
			return fmt.Errorf("insert duty %s/%s day %d: %w",
				rec.RegionSheetTag, rec.Technician, rec.DayOfMonth, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// FindOnDuty returns the technicians on duty for the narrow correlation:
// sheet tag containing areaCode, coordinator tag containing key, on the given
// day of the given period.
func (s *Store) FindOnDuty(ctx context.Context, areaCode, key string, day int, period string) ([]models.DutyRecord, error) {
	return s.query(ctx, queryOnDuty, areaCode, key, day, period)
}

// FindOnDutyByArea is the broadened fallback lookup without the coordinator
// correlation.
func (s *Store) FindOnDutyByArea(ctx context.Context, areaCode string, day int, period string) ([]models.DutyRecord, error) {
	return s.query(ctx, queryOnDutyByArea, areaCode, day, period)
}

func (s *Store) query(ctx context.Context, q string, args ...any) ([]models.DutyRecord, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query duty: %w", err)
	}
	defer rows.Close()

	var recs []models.DutyRecord
	for rows.Next() {
		var rec models.DutyRecord
		if err := rows.Scan(
			&rec.RegionSheetTag,
			&rec.Technician,
			&rec.Contact,
			&rec.Supervisor,
			&rec.Coordinator,
			&rec.Segment,
			&rec.DayOfMonth,
			&rec.MonthYear,
			&rec.ShiftCode,
		); err != nil {
			return nil, fmt.Errorf("scan duty: %w", err)
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}
