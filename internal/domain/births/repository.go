package births

import "context"

// Repository es el cache local de nacimientos.
type Repository interface {
	Upsert(ctx context.Context, rec BirthRecord) error
	GetByID(ctx context.Context, recordID string) (BirthRecord, error)
	ListRecent(ctx context.Context, limit int) ([]BirthRecord, error)
	ListByOwner(ctx context.Context, ownerAddress string, limit int) ([]BirthRecord, error)
}
