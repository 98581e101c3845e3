package births

import (
	"context"
	"errors"
	"strings"
	"time"

	"kitty-lineage/internal/domain/genome"
	"kitty-lineage/internal/platform/logger"
	"kitty-lineage/internal/ports/birthsource"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("birth not found")
)

const (
	DefaultLimit = 20
	MaxLimit     = 100

	// DefaultImageBaseURL: host fijo de retratos (contrato del juego).
	// Solo construimos URLs; nunca bajamos los bytes.
	DefaultImageBaseURL = "https://img.cryptokitties.co/0x06012c8cf97bead5deae237070f9587f8e7a266d"
)

type Service struct {
	repo    Repository
	source  birthsource.Source
	imgBase string
	log     logger.Logger
	now     func() time.Time
}

type Options struct {
	// ImageBaseURL opcional; si viene vacío se usa DefaultImageBaseURL.
	ImageBaseURL string
	Log          logger.Logger
}

func NewService(repo Repository, source birthsource.Source, opts Options) *Service {
	imgBase := strings.TrimRight(strings.TrimSpace(opts.ImageBaseURL), "/")
	if imgBase == "" {
		imgBase = DefaultImageBaseURL
	}

	log := opts.Log
	if log == nil {
		log = logger.New(logger.Options{})
	}

	return &Service{
		repo:    repo,
		source:  source,
		imgBase: imgBase,
		log:     log,
		now:     time.Now,
	}
}

// Latest trae los nacimientos más recientes desde el dataset externo y los cachea.
// Si el upstream falla, degrada al cache local; el error solo se propaga
// cuando tampoco hay nada cacheado.
func (s *Service) Latest(ctx context.Context, owner string, limit int) ([]BirthRecord, error) {
	limit = clampLimit(limit)
	owner = strings.ToLower(strings.TrimSpace(owner))

	fetched, err := s.source.ListBirths(ctx, owner, limit)
	if err != nil {
		s.log.Warn("birth fetch failed, serving cache", logger.Err(err))

		cached, cacheErr := s.listCached(ctx, owner, limit)
		if cacheErr == nil && len(cached) > 0 {
			return cached, nil
		}
		return nil, err
	}

	now := s.now()
	out := make([]BirthRecord, 0, len(fetched))
	for _, r := range fetched {
		rec := fromSource(r, now)
		if err := s.repo.Upsert(ctx, rec); err != nil {
			s.log.Warn("birth cache upsert failed", map[string]any{
				"record_id": rec.RecordID,
				"error":     err.Error(),
			})
		}
		out = append(out, rec)
	}
	return out, nil
}

// GetByID busca primero en cache y recién después en el upstream.
func (s *Service) GetByID(ctx context.Context, recordID string) (BirthRecord, error) {
	recordID = strings.TrimSpace(recordID)
	if recordID == "" {
		return BirthRecord{}, ErrInvalidInput
	}

	if rec, err := s.repo.GetByID(ctx, recordID); err == nil {
		return rec, nil
	}

	fetched, err := s.source.GetBirth(ctx, recordID)
	if err != nil {
		if errors.Is(err, birthsource.ErrNotFound) {
			return BirthRecord{}, ErrNotFound
		}
		return BirthRecord{}, err
	}

	rec := fromSource(fetched, s.now())
	if err := s.repo.Upsert(ctx, rec); err != nil {
		s.log.Warn("birth cache upsert failed", logger.Err(err))
	}
	return rec, nil
}

// Lineage arma la comparación matron/sire/cría para un nacimiento.
// Los genomas de los padres salen del upstream (dos queries extra); si alguno
// no está disponible, sus slots quedan vacíos y el clasificador los manda a mutation.
func (s *Service) Lineage(ctx context.Context, recordID string) (Lineage, error) {
	rec, err := s.GetByID(ctx, recordID)
	if err != nil {
		return Lineage{}, err
	}

	matronGenes := s.fetchGenome(ctx, rec.MatronID)
	sireGenes := s.fetchGenome(ctx, rec.SireID)

	matronGroups := genome.Decode(matronGenes)
	sireGroups := genome.Decode(sireGenes)
	kittenGroups := genome.Decode(rec.Genes)

	comparisons := make([]Comparison, 0, genome.TraitCount)
	for i, tt := range TraitTypes {
		m := groupAt(matronGroups, i)
		sg := groupAt(sireGroups, i)
		k := groupAt(kittenGroups, i)

		comparisons = append(comparisons, Comparison{
			Type:     tt,
			Matron:   m,
			Sire:     sg,
			Kitten:   k,
			Relation: genome.Classify(m, sg, k),
		})
	}

	return Lineage{
		Record:      rec,
		Matron:      s.participant(rec.MatronID, matronGenes),
		Sire:        s.participant(rec.SireID, sireGenes),
		Kitten:      s.participant(rec.KittyID, rec.Genes),
		Comparisons: comparisons,
	}, nil
}

// KittyTraits decodifica el genoma de un kitty puntual.
func (s *Service) KittyTraits(ctx context.Context, kittyID string) (KittyTraits, error) {
	kittyID = strings.TrimSpace(kittyID)
	if kittyID == "" {
		return KittyTraits{}, ErrInvalidInput
	}

	genes, err := s.source.GetGenome(ctx, kittyID)
	if err != nil {
		if errors.Is(err, birthsource.ErrNotFound) {
			return KittyTraits{}, ErrNotFound
		}
		return KittyTraits{}, err
	}

	return KittyTraits{
		KittyID:     kittyID,
		Genes:       genes,
		PortraitURL: s.portraitURL(kittyID),
		Traits:      decodeTraits(genes),
	}, nil
}

// Refresh precarga el cache con los últimos nacimientos. Devuelve cuántos guardó.
func (s *Service) Refresh(ctx context.Context, limit int) (int, error) {
	limit = clampLimit(limit)
	syncID := uuid.NewString()

	fetched, err := s.source.ListBirths(ctx, "", limit)
	if err != nil {
		s.log.Error("birth refresh failed", map[string]any{
			"sync_id": syncID,
			"error":   err.Error(),
		})
		return 0, err
	}

	now := s.now()
	stored := 0
	for _, r := range fetched {
		if err := s.repo.Upsert(ctx, fromSource(r, now)); err != nil {
			s.log.Warn("birth refresh upsert failed", map[string]any{
				"sync_id":   syncID,
				"record_id": r.RecordID,
				"error":     err.Error(),
			})
			continue
		}
		stored++
	}

	s.log.Info("birth refresh done", map[string]any{
		"sync_id": syncID,
		"fetched": len(fetched),
		"stored":  stored,
	})
	return stored, nil
}

// Traits expone la decodificación de un record ya cargado (para listados).
func (s *Service) Traits(rec BirthRecord) []Trait {
	return decodeTraits(rec.Genes)
}

// PortraitURL arma la URL de retrato de un kitty contra el host de imágenes.
func (s *Service) PortraitURL(kittyID string) string {
	return s.portraitURL(kittyID)
}

func (s *Service) listCached(ctx context.Context, owner string, limit int) ([]BirthRecord, error) {
	if owner != "" {
		return s.repo.ListByOwner(ctx, owner, limit)
	}
	return s.repo.ListRecent(ctx, limit)
}

func (s *Service) fetchGenome(ctx context.Context, kittyID string) string {
	kittyID = strings.TrimSpace(kittyID)
	if kittyID == "" {
		return ""
	}
	genes, err := s.source.GetGenome(ctx, kittyID)
	if err != nil {
		s.log.Warn("parent genome unavailable", map[string]any{
			"kitty_id": kittyID,
			"error":    err.Error(),
		})
		return ""
	}
	return genes
}

func (s *Service) participant(kittyID, genes string) Participant {
	return Participant{
		KittyID:     kittyID,
		Genes:       genes,
		PortraitURL: s.portraitURL(kittyID),
		Traits:      decodeTraits(genes),
	}
}

func (s *Service) portraitURL(kittyID string) string {
	kittyID = strings.TrimSpace(kittyID)
	if kittyID == "" {
		return ""
	}
	return s.imgBase + "/" + kittyID + ".svg"
}

func decodeTraits(genes string) []Trait {
	groups := genome.Decode(genes)
	if groups == nil {
		return nil
	}

	out := make([]Trait, 0, len(groups))
	for i, g := range groups {
		out = append(out, Trait{
			Type:      TraitTypes[i],
			Group:     g,
			Dominant:  g.Dominant(),
			Recessive: g.Recessive(),
		})
	}
	return out
}

func groupAt(groups []genome.TraitGroup, i int) genome.TraitGroup {
	if i < 0 || i >= len(groups) {
		return ""
	}
	return groups[i]
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}
