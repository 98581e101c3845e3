package watchlist

import "context"

type Repository interface {
	Create(ctx context.Context, e Entry) error
	GetByID(ctx context.Context, id string) (Entry, error)
	GetByViewerAndOwner(ctx context.Context, viewerID, ownerAddress string) (Entry, error)
	ListByViewer(ctx context.Context, viewerID string) ([]Entry, error)
	Delete(ctx context.Context, id string) error
}
