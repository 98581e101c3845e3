package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"kitty-lineage/internal/domain/births"
)

var (
	ErrNotFound = errors.New("not found")
)

type birthsRepo struct {
	mu   sync.RWMutex
	byID map[string]births.BirthRecord
}

func NewBirthsRepo() births.Repository {
	return &birthsRepo{
		byID: make(map[string]births.BirthRecord),
	}
}

func (r *birthsRepo) Upsert(ctx context.Context, rec births.BirthRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(rec.RecordID) == "" {
		return errors.New("record id required")
	}
	r.byID[rec.RecordID] = rec
	return nil
}

func (r *birthsRepo) GetByID(ctx context.Context, recordID string) (births.BirthRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byID[recordID]
	if !ok {
		return births.BirthRecord{}, ErrNotFound
	}
	return rec, nil
}

func (r *birthsRepo) ListRecent(ctx context.Context, limit int) ([]births.BirthRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(births.BirthRecord) bool { return true }, limit), nil
}

func (r *birthsRepo) ListByOwner(ctx context.Context, ownerAddress string, limit int) ([]births.BirthRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ownerAddress = strings.ToLower(strings.TrimSpace(ownerAddress))
	if ownerAddress == "" {
		return nil, nil
	}

	return r.collect(func(rec births.BirthRecord) bool {
		return rec.OwnerAddress == ownerAddress
	}, limit), nil
}

// collect asume el lock tomado. Ordena por block_time desc (más nuevo primero).
func (r *birthsRepo) collect(match func(births.BirthRecord) bool, limit int) []births.BirthRecord {
	out := make([]births.BirthRecord, 0)
	for _, rec := range r.byID {
		if match(rec) {
			out = append(out, rec)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].BlockTime.After(out[j].BlockTime)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
