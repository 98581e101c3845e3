package watchlist

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrDuplicate    = errors.New("address already watched")
	ErrNotFound     = errors.New("entry not found")
	ErrForbidden    = errors.New("forbidden")
)

// addressRe: dirección estilo Ethereum, 0x + 40 hex.
var addressRe = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type AddInput struct {
	OwnerAddress string
	Label        string
}

func (s *Service) Add(ctx context.Context, viewerID string, in AddInput) (Entry, error) {
	viewerID = strings.TrimSpace(viewerID)
	if viewerID == "" {
		return Entry{}, ErrInvalidInput
	}

	addr := strings.TrimSpace(in.OwnerAddress)
	if !addressRe.MatchString(addr) {
		return Entry{}, ErrInvalidInput
	}
	addr = strings.ToLower(addr)

	// Un viewer no sigue la misma dirección dos veces.
	if _, err := s.repo.GetByViewerAndOwner(ctx, viewerID, addr); err == nil {
		return Entry{}, ErrDuplicate
	}

	e := Entry{
		ID:           uuid.NewString(),
		ViewerID:     viewerID,
		OwnerAddress: addr,
		Label:        strings.TrimSpace(in.Label),
		CreatedAt:    s.now(),
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return Entry{}, err
	}
	return e, nil
}

func (s *Service) ListByViewer(ctx context.Context, viewerID string) ([]Entry, error) {
	viewerID = strings.TrimSpace(viewerID)
	if viewerID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByViewer(ctx, viewerID)
}

// Remove borra una entrada; solo el viewer dueño puede hacerlo.
func (s *Service) Remove(ctx context.Context, viewerID, entryID string) error {
	viewerID = strings.TrimSpace(viewerID)
	entryID = strings.TrimSpace(entryID)
	if viewerID == "" || entryID == "" {
		return ErrInvalidInput
	}

	e, err := s.repo.GetByID(ctx, entryID)
	if err != nil {
		return ErrNotFound
	}
	if e.ViewerID != viewerID {
		return ErrForbidden
	}

	return s.repo.Delete(ctx, entryID)
}
