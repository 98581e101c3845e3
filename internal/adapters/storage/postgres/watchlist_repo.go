package postgres

import (
	"context"
	"database/sql"
	"strings"

	"kitty-lineage/internal/domain/watchlist"
)

type WatchlistRepo struct {
	db *sql.DB
}

func NewWatchlistRepo(db *sql.DB) *WatchlistRepo {
	return &WatchlistRepo{db: db}
}

func (r *WatchlistRepo) Create(ctx context.Context, e watchlist.Entry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO watchlist_entries (
			id, viewer_id, owner_address, label, created_at
		) VALUES ($1,$2,$3,$4,$5)
	`,
		e.ID,
		e.ViewerID,
		e.OwnerAddress,
		e.Label,
		e.CreatedAt,
	)
	return err
}

func (r *WatchlistRepo) GetByID(ctx context.Context, id string) (watchlist.Entry, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return watchlist.Entry{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, viewer_id, owner_address, label, created_at
		FROM watchlist_entries
		WHERE id = $1
	`, id)

	var e watchlist.Entry
	if err := row.Scan(&e.ID, &e.ViewerID, &e.OwnerAddress, &e.Label, &e.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return watchlist.Entry{}, ErrNotFound
		}
		return watchlist.Entry{}, err
	}
	return e, nil
}

func (r *WatchlistRepo) GetByViewerAndOwner(ctx context.Context, viewerID, ownerAddress string) (watchlist.Entry, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, viewer_id, owner_address, label, created_at
		FROM watchlist_entries
		WHERE viewer_id = $1 AND owner_address = $2
	`, viewerID, ownerAddress)

	var e watchlist.Entry
	if err := row.Scan(&e.ID, &e.ViewerID, &e.OwnerAddress, &e.Label, &e.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return watchlist.Entry{}, ErrNotFound
		}
		return watchlist.Entry{}, err
	}
	return e, nil
}

func (r *WatchlistRepo) ListByViewer(ctx context.Context, viewerID string) ([]watchlist.Entry, error) {
	viewerID = strings.TrimSpace(viewerID)
	if viewerID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, viewer_id, owner_address, label, created_at
		FROM watchlist_entries
		WHERE viewer_id = $1
		ORDER BY created_at ASC
	`, viewerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]watchlist.Entry, 0)
	for rows.Next() {
		var e watchlist.Entry
		if err := rows.Scan(&e.ID, &e.ViewerID, &e.OwnerAddress, &e.Label, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *WatchlistRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM watchlist_entries WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
