package thegraph

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"kitty-lineage/internal/ports/birthsource"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Source implementa birthsource.Source contra un subgraph estilo The Graph.
type Source struct {
	client *Client
}

func NewSource(client *Client) *Source {
	return &Source{client: client}
}

// birthRow es la fila cruda del subgraph; timestamp viene como string unix (segundos).
type birthRow struct {
	ID        string `json:"id"`
	Owner     string `json:"owner"`
	KittyID   string `json:"kittyId"`
	MatronID  string `json:"matronId"`
	SireID    string `json:"sireId"`
	Genes     string `json:"genes"`
	Timestamp string `json:"timestamp"`
}

const listBirthsQuery = `query($limit: Int!) {
  birthEvents(first: $limit, orderBy: timestamp, orderDirection: desc) {
    id owner kittyId matronId sireId genes timestamp
  }
}`

const listBirthsByOwnerQuery = `query($owner: String!, $limit: Int!) {
  birthEvents(first: $limit, orderBy: timestamp, orderDirection: desc, where: { owner: $owner }) {
    id owner kittyId matronId sireId genes timestamp
  }
}`

const getBirthQuery = `query($id: ID!) {
  birthEvent(id: $id) {
    id owner kittyId matronId sireId genes timestamp
  }
}`

const getKittyQuery = `query($id: ID!) {
  kitty(id: $id) {
    id genes
  }
}`

func (s *Source) ListBirths(ctx context.Context, owner string, limit int) ([]birthsource.BirthRecord, error) {
	if s == nil || s.client == nil {
		return nil, ErrNotConfigured
	}

	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	owner = strings.ToLower(strings.TrimSpace(owner))

	query := listBirthsQuery
	vars := map[string]any{"limit": limit}
	if owner != "" {
		query = listBirthsByOwnerQuery
		vars["owner"] = owner
	}

	var out struct {
		BirthEvents []birthRow `json:"birthEvents"`
	}
	if err := s.client.Query(ctx, query, vars, &out); err != nil {
		return nil, err
	}

	records := make([]birthsource.BirthRecord, 0, len(out.BirthEvents))
	for _, row := range out.BirthEvents {
		records = append(records, toRecord(row))
	}
	return records, nil
}

func (s *Source) GetBirth(ctx context.Context, recordID string) (birthsource.BirthRecord, error) {
	if s == nil || s.client == nil {
		return birthsource.BirthRecord{}, ErrNotConfigured
	}
	recordID = strings.TrimSpace(recordID)
	if recordID == "" {
		return birthsource.BirthRecord{}, birthsource.ErrNotFound
	}

	var out struct {
		BirthEvent *birthRow `json:"birthEvent"`
	}
	if err := s.client.Query(ctx, getBirthQuery, map[string]any{"id": recordID}, &out); err != nil {
		return birthsource.BirthRecord{}, err
	}
	if out.BirthEvent == nil {
		return birthsource.BirthRecord{}, fmt.Errorf("%w: birth %s", birthsource.ErrNotFound, recordID)
	}
	return toRecord(*out.BirthEvent), nil
}

func (s *Source) GetGenome(ctx context.Context, kittyID string) (string, error) {
	if s == nil || s.client == nil {
		return "", ErrNotConfigured
	}
	kittyID = strings.TrimSpace(kittyID)
	if kittyID == "" {
		return "", birthsource.ErrNotFound
	}

	var out struct {
		Kitty *struct {
			ID    string `json:"id"`
			Genes string `json:"genes"`
		} `json:"kitty"`
	}
	if err := s.client.Query(ctx, getKittyQuery, map[string]any{"id": kittyID}, &out); err != nil {
		return "", err
	}
	if out.Kitty == nil {
		return "", fmt.Errorf("%w: kitty %s", birthsource.ErrNotFound, kittyID)
	}
	return out.Kitty.Genes, nil
}

func toRecord(row birthRow) birthsource.BirthRecord {
	rec := birthsource.BirthRecord{
		RecordID:     row.ID,
		OwnerAddress: strings.ToLower(row.Owner),
		KittyID:      row.KittyID,
		MatronID:     row.MatronID,
		SireID:       row.SireID,
		Genes:        row.Genes,
	}
	if ts, err := strconv.ParseInt(strings.TrimSpace(row.Timestamp), 10, 64); err == nil && ts > 0 {
		rec.BlockTime = time.Unix(ts, 0).UTC()
	}
	return rec
}
