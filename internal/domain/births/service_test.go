package births

import (
	"context"
	"errors"
	"testing"
	"time"

	"kitty-lineage/internal/domain/genome"
	"kitty-lineage/internal/ports/birthsource"
)

// -------------------------
// Fakes (in-memory)
// -------------------------

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	byID map[string]BirthRecord
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]BirthRecord{}}
}

func (r *testRepo) Upsert(ctx context.Context, rec BirthRecord) error {
	if rec.RecordID == "" {
		return errors.New("repo: record id required")
	}
	r.byID[rec.RecordID] = rec
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, recordID string) (BirthRecord, error) {
	rec, ok := r.byID[recordID]
	if !ok {
		return BirthRecord{}, errRepoNotFound
	}
	return rec, nil
}

func (r *testRepo) ListRecent(ctx context.Context, limit int) ([]BirthRecord, error) {
	out := make([]BirthRecord, 0)
	for _, rec := range r.byID {
		out = append(out, rec)
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *testRepo) ListByOwner(ctx context.Context, owner string, limit int) ([]BirthRecord, error) {
	out := make([]BirthRecord, 0)
	for _, rec := range r.byID {
		if rec.OwnerAddress == owner {
			out = append(out, rec)
		}
	}
	return out, nil
}

type testSource struct {
	births  []birthsource.BirthRecord
	genomes map[string]string

	listErr error

	getBirthCalls int
}

func (s *testSource) ListBirths(ctx context.Context, owner string, limit int) ([]birthsource.BirthRecord, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}

	out := make([]birthsource.BirthRecord, 0)
	for _, r := range s.births {
		if owner != "" && r.OwnerAddress != owner {
			continue
		}
		out = append(out, r)
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *testSource) GetBirth(ctx context.Context, recordID string) (birthsource.BirthRecord, error) {
	s.getBirthCalls++
	for _, r := range s.births {
		if r.RecordID == recordID {
			return r, nil
		}
	}
	return birthsource.BirthRecord{}, birthsource.ErrNotFound
}

func (s *testSource) GetGenome(ctx context.Context, kittyID string) (string, error) {
	g, ok := s.genomes[kittyID]
	if !ok {
		return "", birthsource.ErrNotFound
	}
	return g, nil
}

// Genomas construidos a mano: 12 grupos "000" + nibble dominante, del más
// significativo al menos significativo.
//   matron: 1 1 3 5 7 a a a a a a a
//   sire:   1 1 4 6 8 a a a a a a a
//   kitten: 1 2 3 6 9 a a a a a a a
// Slots esperados: allShare, parentsOnlyShare, matronOffspringShare,
// sireOffspringShare, mutation, y allShare en los 7 restantes.
const (
	matronGenes = "95782432872659321594088237302109890659664325732073482"
	sireGenes   = "95782432894960407080178078240643899935450615335485450"
	kittenGenes = "95783894374296992789757955642475725574352406091268106"
)

func testBirth() birthsource.BirthRecord {
	return birthsource.BirthRecord{
		RecordID:     "b-1",
		OwnerAddress: "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		KittyID:      "300",
		MatronID:     "100",
		SireID:       "200",
		Genes:        kittenGenes,
		BlockTime:    time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func newTestService(repo Repository, source birthsource.Source) *Service {
	return NewService(repo, source, Options{})
}

// -------------------------
// Tests
// -------------------------

func TestLatest_FetchesAndCaches(t *testing.T) {
	repo := newTestRepo()
	src := &testSource{births: []birthsource.BirthRecord{testBirth()}}
	svc := newTestService(repo, src)

	got, err := svc.Latest(context.Background(), "", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}
	if _, err := repo.GetByID(context.Background(), "b-1"); err != nil {
		t.Fatalf("expected record cached after Latest: %v", err)
	}
}

func TestLatest_FallsBackToCache(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo, &testSource{listErr: errors.New("boom")})

	// Pre-cacheado: el fallo del upstream no debe verse.
	_ = repo.Upsert(context.Background(), BirthRecord{RecordID: "b-9", Genes: "0"})

	got, err := svc.Latest(context.Background(), "", 10)
	if err != nil {
		t.Fatalf("expected cache fallback, got error: %v", err)
	}
	if len(got) != 1 || got[0].RecordID != "b-9" {
		t.Fatalf("expected cached record b-9, got %v", got)
	}
}

func TestLatest_ErrorWhenCacheEmpty(t *testing.T) {
	svc := newTestService(newTestRepo(), &testSource{listErr: errors.New("boom")})

	if _, err := svc.Latest(context.Background(), "", 10); err == nil {
		t.Fatal("expected error when upstream fails and cache is empty")
	}
}

func TestGetByID_CachesAfterFirstFetch(t *testing.T) {
	repo := newTestRepo()
	src := &testSource{births: []birthsource.BirthRecord{testBirth()}}
	svc := newTestService(repo, src)

	if _, err := svc.GetByID(context.Background(), "b-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.GetByID(context.Background(), "b-1"); err != nil {
		t.Fatalf("unexpected error on second get: %v", err)
	}
	if src.getBirthCalls != 1 {
		t.Fatalf("expected 1 upstream call, got %d", src.getBirthCalls)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newTestService(newTestRepo(), &testSource{})

	_, err := svc.GetByID(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLineage_Classification(t *testing.T) {
	repo := newTestRepo()
	src := &testSource{
		births: []birthsource.BirthRecord{testBirth()},
		genomes: map[string]string{
			"100": matronGenes,
			"200": sireGenes,
		},
	}
	svc := newTestService(repo, src)

	lin, err := svc.Lineage(context.Background(), "b-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lin.Comparisons) != genome.TraitCount {
		t.Fatalf("expected %d comparisons, got %d", genome.TraitCount, len(lin.Comparisons))
	}

	want := []genome.Relation{
		genome.RelationAllShare,
		genome.RelationParentsOnlyShare,
		genome.RelationMatronOffspringShare,
		genome.RelationSireOffspringShare,
		genome.RelationMutation,
	}
	for i, rel := range want {
		if lin.Comparisons[i].Relation != rel {
			t.Fatalf("slot %d: expected %q, got %q", i, rel, lin.Comparisons[i].Relation)
		}
	}
	for i := len(want); i < genome.TraitCount; i++ {
		if lin.Comparisons[i].Relation != genome.RelationAllShare {
			t.Fatalf("slot %d: expected allShare, got %q", i, lin.Comparisons[i].Relation)
		}
	}

	if lin.Comparisons[0].Matron != "0001" || lin.Comparisons[0].Kitten != "0001" {
		t.Fatalf("slot 0: unexpected groups %q / %q", lin.Comparisons[0].Matron, lin.Comparisons[0].Kitten)
	}
	if lin.Matron.PortraitURL == "" || lin.Kitten.PortraitURL == "" {
		t.Fatal("expected portrait URLs for participants")
	}
}

func TestLineage_MissingParentGenome(t *testing.T) {
	repo := newTestRepo()
	src := &testSource{
		births: []birthsource.BirthRecord{testBirth()},
		// matron (100) no disponible; sire sí.
		genomes: map[string]string{"200": sireGenes},
	}
	svc := newTestService(repo, src)

	lin, err := svc.Lineage(context.Background(), "b-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Sin genoma de matron, todos los slots caen en el bucket mutation.
	for i, c := range lin.Comparisons {
		if c.Relation != genome.RelationMutation {
			t.Fatalf("slot %d: expected mutation with missing matron, got %q", i, c.Relation)
		}
		if c.Matron != "" {
			t.Fatalf("slot %d: expected empty matron group, got %q", i, c.Matron)
		}
	}
	if lin.Matron.Traits != nil {
		t.Fatalf("expected nil matron traits, got %v", lin.Matron.Traits)
	}
}

func TestKittyTraits(t *testing.T) {
	src := &testSource{genomes: map[string]string{"300": kittenGenes}}
	svc := newTestService(newTestRepo(), src)

	kt, err := svc.KittyTraits(context.Background(), "300")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(kt.Traits) != genome.TraitCount {
		t.Fatalf("expected %d traits, got %d", genome.TraitCount, len(kt.Traits))
	}
	if kt.Traits[0].Type != TraitPrestige || kt.Traits[11].Type != TraitBody {
		t.Fatalf("unexpected trait type order: %q ... %q", kt.Traits[0].Type, kt.Traits[11].Type)
	}

	_, err = svc.KittyTraits(context.Background(), "999")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown kitty, got %v", err)
	}
}

func TestRefresh(t *testing.T) {
	repo := newTestRepo()
	second := testBirth()
	second.RecordID = "b-2"
	second.KittyID = "301"

	src := &testSource{births: []birthsource.BirthRecord{testBirth(), second}}
	svc := newTestService(repo, src)

	stored, err := svc.Refresh(context.Background(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored != 2 {
		t.Fatalf("expected 2 stored, got %d", stored)
	}
	if len(repo.byID) != 2 {
		t.Fatalf("expected 2 cached records, got %d", len(repo.byID))
	}
}
