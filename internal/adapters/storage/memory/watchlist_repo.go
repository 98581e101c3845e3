package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"kitty-lineage/internal/domain/watchlist"
)

type watchlistRepo struct {
	mu   sync.RWMutex
	byID map[string]watchlist.Entry
}

func NewWatchlistRepo() watchlist.Repository {
	return &watchlistRepo{
		byID: make(map[string]watchlist.Entry),
	}
}

func (r *watchlistRepo) Create(ctx context.Context, e watchlist.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(e.ID) == "" {
		return errors.New("entry id required")
	}
	if _, exists := r.byID[e.ID]; exists {
		return errors.New("entry already exists")
	}
	r.byID[e.ID] = e
	return nil
}

func (r *watchlistRepo) GetByID(ctx context.Context, id string) (watchlist.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.byID[id]
	if !ok {
		return watchlist.Entry{}, ErrNotFound
	}
	return e, nil
}

func (r *watchlistRepo) GetByViewerAndOwner(ctx context.Context, viewerID, ownerAddress string) (watchlist.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.byID {
		if e.ViewerID == viewerID && e.OwnerAddress == ownerAddress {
			return e, nil
		}
	}
	return watchlist.Entry{}, ErrNotFound
}

func (r *watchlistRepo) ListByViewer(ctx context.Context, viewerID string) ([]watchlist.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]watchlist.Entry, 0)
	for _, e := range r.byID {
		if e.ViewerID == viewerID {
			out = append(out, e)
		}
	}

	// Orden estable por created_at asc (consistencia en dev)
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}

func (r *watchlistRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}
