package sites

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/VictorOli23/Consultas-SPI/internal/models"
)

// Store persists the site directory to PostgreSQL.
type Store struct {
	db *sql.DB
}

// NewStore creates a Store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// UpsertAll writes the directory in one transaction with overwrite-by-key
// semantics. Running the same file twice leaves the directory unchanged.
func (s *Store) UpsertAll(ctx context.Context, recs []models.SiteRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, queryUpsertSite)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, rec := range recs {
		if _, err := stmt.ExecContext(ctx,
			rec.Code,
			rec.DisplayName,
			rec.Locality,
			rec.RegionArea,
			rec.AreaCode,
			rec.Phone,
			rec.CX,
			rec.TX,
			rec.IE,
		); err != nil {
			return fmt.Errorf("upsert site %s: %w", rec.Code, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// List returns every directory entry ordered by code.
func (s *Store) List(ctx context.Context) ([]models.SiteRecord, error) {
	rows, err := s.db.QueryContext(ctx, queryListSites)
	if err != nil {
		return nil, fmt.Errorf("list sites: %w", err)
	}
	defer rows.Close()

	var recs []models.SiteRecord
	for rows.Next() {
		var rec models.SiteRecord
		if err := rows.Scan(
			&rec.Code,
			&rec.DisplayName,
			&rec.Locality,
			&rec.RegionArea,
			&rec.AreaCode,
			&rec.Phone,
			&rec.CX,
			&rec.TX,
			&rec.IE,
		); err != nil {
			return nil, fmt.Errorf("scan site: %w", err)
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}
