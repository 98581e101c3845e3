package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"kitty-lineage/internal/domain/births"
)

type BirthsRepo struct {
	db *sql.DB
}

func NewBirthsRepo(db *sql.DB) *BirthsRepo {
	return &BirthsRepo{db: db}
}

func (r *BirthsRepo) Upsert(ctx context.Context, rec births.BirthRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO births (
			record_id, owner_address,
			kitty_id, matron_id, sire_id,
			genes, block_time, fetched_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (record_id) DO UPDATE SET
			owner_address = EXCLUDED.owner_address,
			genes = EXCLUDED.genes,
			block_time = EXCLUDED.block_time,
			fetched_at = EXCLUDED.fetched_at
	`,
		rec.RecordID,
		rec.OwnerAddress,
		rec.KittyID,
		rec.MatronID,
		rec.SireID,
		rec.Genes,
		toNullTime(rec.BlockTime),
		rec.FetchedAt,
	)
	return err
}

func (r *BirthsRepo) GetByID(ctx context.Context, recordID string) (births.BirthRecord, error) {
	recordID = strings.TrimSpace(recordID)
	if recordID == "" {
		return births.BirthRecord{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			record_id, owner_address,
			kitty_id, matron_id, sire_id,
			genes, block_time, fetched_at
		FROM births
		WHERE record_id = $1
	`, recordID)

	rec, err := scanBirth(row)
	if err == sql.ErrNoRows {
		return births.BirthRecord{}, ErrNotFound
	}
	return rec, err
}

func (r *BirthsRepo) ListRecent(ctx context.Context, limit int) ([]births.BirthRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			record_id, owner_address,
			kitty_id, matron_id, sire_id,
			genes, block_time, fetched_at
		FROM births
		ORDER BY block_time DESC NULLS LAST
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectBirths(rows)
}

func (r *BirthsRepo) ListByOwner(ctx context.Context, ownerAddress string, limit int) ([]births.BirthRecord, error) {
	ownerAddress = strings.ToLower(strings.TrimSpace(ownerAddress))
	if ownerAddress == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			record_id, owner_address,
			kitty_id, matron_id, sire_id,
			genes, block_time, fetched_at
		FROM births
		WHERE owner_address = $1
		ORDER BY block_time DESC NULLS LAST
		LIMIT $2
	`, ownerAddress, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectBirths(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBirth(row rowScanner) (births.BirthRecord, error) {
	var rec births.BirthRecord
	var bt sql.NullTime

	if err := row.Scan(
		&rec.RecordID,
		&rec.OwnerAddress,
		&rec.KittyID,
		&rec.MatronID,
		&rec.SireID,
		&rec.Genes,
		&bt,
		&rec.FetchedAt,
	); err != nil {
		return births.BirthRecord{}, err
	}

	if bt.Valid {
		rec.BlockTime = bt.Time
	}
	return rec, nil
}

func collectBirths(rows *sql.Rows) ([]births.BirthRecord, error) {
	out := make([]births.BirthRecord, 0)
	for rows.Next() {
		rec, err := scanBirth(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// block_time puede venir en cero cuando el subgraph no trajo timestamp.
func toNullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: t, Valid: true}
}
