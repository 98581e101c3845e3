package births

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"kitty-lineage/internal/domain/genome"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/births", func(br chi.Router) {
		br.Get("/", listBirthsHandler(svc))
		br.Post("/refresh", refreshHandler(svc))
		br.Get("/{birthID}", getBirthHandler(svc))
		br.Get("/{birthID}/lineage", lineageHandler(svc))
	})

	r.Get("/kitties/{kittyID}/traits", kittyTraitsHandler(svc))
}

type traitResponse struct {
	Type      TraitType         `json:"type"`
	Group     genome.TraitGroup `json:"group"`
	Dominant  string            `json:"dominant"`
	Recessive string            `json:"recessive"`
}

type birthResponse struct {
	RecordID     string     `json:"record_id"`
	OwnerAddress string     `json:"owner_address"`
	KittyID      string     `json:"kitty_id"`
	MatronID     string     `json:"matron_id"`
	SireID       string     `json:"sire_id"`
	Genes        string     `json:"genes"`
	BlockTime    *time.Time `json:"block_time,omitempty"`
	PortraitURL  string     `json:"portrait_url"`
	// Traits es null cuando el genoma vino malformado (distinto de genoma cero).
	Traits []traitResponse `json:"traits"`
}

type participantResponse struct {
	KittyID     string          `json:"kitty_id"`
	Genes       string          `json:"genes"`
	PortraitURL string          `json:"portrait_url"`
	Traits      []traitResponse `json:"traits"`
}

type comparisonResponse struct {
	Type     TraitType         `json:"type"`
	Matron   genome.TraitGroup `json:"matron"`
	Sire     genome.TraitGroup `json:"sire"`
	Kitten   genome.TraitGroup `json:"kitten"`
	Relation genome.Relation   `json:"relation"`
}

type lineageResponse struct {
	Record      birthResponse        `json:"record"`
	Matron      participantResponse  `json:"matron"`
	Sire        participantResponse  `json:"sire"`
	Kitten      participantResponse  `json:"kitten"`
	Comparisons []comparisonResponse `json:"comparisons"`
}

type kittyTraitsResponse struct {
	KittyID     string          `json:"kitty_id"`
	Genes       string          `json:"genes"`
	PortraitURL string          `json:"portrait_url"`
	Traits      []traitResponse `json:"traits"`
}

type refreshResponse struct {
	Stored int `json:"stored"`
}

// listBirthsHandler godoc
// @Summary Listar nacimientos recientes
// @Description Trae los últimos nacimientos del dataset externo (con fallback al cache local si el upstream falla). Filtro opcional por dueño.
// @Tags births
// @Produce json
// @Param owner query string false "Dirección del dueño (0x...)"
// @Param limit query int false "Máximo de registros (default 20, tope 100)"
// @Success 200 {array} birthResponse
// @Failure 502 {string} string "upstream error"
// @Router /births [get]
func listBirthsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner := r.URL.Query().Get("owner")
		limit := queryInt(r, "limit")

		items, err := svc.Latest(r.Context(), owner, limit)
		if err != nil {
			http.Error(w, "upstream error: "+err.Error(), http.StatusBadGateway)
			return
		}

		out := make([]birthResponse, 0, len(items))
		for _, rec := range items {
			out = append(out, toBirthResponse(svc, rec))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getBirthHandler godoc
// @Summary Traer un nacimiento
// @Tags births
// @Produce json
// @Param birthID path string true "ID del record de nacimiento"
// @Success 200 {object} birthResponse
// @Failure 404 {string} string "birth not found"
// @Failure 502 {string} string "upstream error"
// @Router /births/{birthID} [get]
func getBirthHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := svc.GetByID(r.Context(), chi.URLParam(r, "birthID"))
		if err != nil {
			writeDomainError(w, err, "birth not found")
			return
		}
		writeJSON(w, http.StatusOK, toBirthResponse(svc, rec))
	}
}

// lineageHandler godoc
// @Summary Comparar herencia de rasgos
// @Description Decodifica los genomas de matron, sire y cría, y clasifica cada uno de los 12 slots de rasgos (allShare, parentsOnlyShare, matronOffspringShare, sireOffspringShare, mutation). Un genoma de padre no disponible deja sus grupos vacíos y esos slots clasifican como mutation.
// @Tags births
// @Produce json
// @Param birthID path string true "ID del record de nacimiento"
// @Success 200 {object} lineageResponse
// @Failure 404 {string} string "birth not found"
// @Failure 502 {string} string "upstream error"
// @Router /births/{birthID}/lineage [get]
func lineageHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lin, err := svc.Lineage(r.Context(), chi.URLParam(r, "birthID"))
		if err != nil {
			writeDomainError(w, err, "birth not found")
			return
		}

		comparisons := make([]comparisonResponse, 0, len(lin.Comparisons))
		for _, c := range lin.Comparisons {
			comparisons = append(comparisons, comparisonResponse{
				Type:     c.Type,
				Matron:   c.Matron,
				Sire:     c.Sire,
				Kitten:   c.Kitten,
				Relation: c.Relation,
			})
		}

		writeJSON(w, http.StatusOK, lineageResponse{
			Record:      toBirthResponse(svc, lin.Record),
			Matron:      toParticipantResponse(lin.Matron),
			Sire:        toParticipantResponse(lin.Sire),
			Kitten:      toParticipantResponse(lin.Kitten),
			Comparisons: comparisons,
		})
	}
}

// kittyTraitsHandler godoc
// @Summary Decodificar genoma de un kitty
// @Tags kitties
// @Produce json
// @Param kittyID path string true "ID del kitty"
// @Success 200 {object} kittyTraitsResponse
// @Failure 404 {string} string "kitty not found"
// @Failure 502 {string} string "upstream error"
// @Router /kitties/{kittyID}/traits [get]
func kittyTraitsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kt, err := svc.KittyTraits(r.Context(), chi.URLParam(r, "kittyID"))
		if err != nil {
			writeDomainError(w, err, "kitty not found")
			return
		}

		writeJSON(w, http.StatusOK, kittyTraitsResponse{
			KittyID:     kt.KittyID,
			Genes:       kt.Genes,
			PortraitURL: kt.PortraitURL,
			Traits:      toTraitResponses(kt.Traits),
		})
	}
}

// refreshHandler godoc
// @Summary Precargar el cache de nacimientos
// @Tags births
// @Produce json
// @Param limit query int false "Máximo de registros (default 20, tope 100)"
// @Success 200 {object} refreshResponse
// @Failure 502 {string} string "upstream error"
// @Router /births/refresh [post]
func refreshHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stored, err := svc.Refresh(r.Context(), queryInt(r, "limit"))
		if err != nil {
			http.Error(w, "upstream error: "+err.Error(), http.StatusBadGateway)
			return
		}
		writeJSON(w, http.StatusOK, refreshResponse{Stored: stored})
	}
}

func toBirthResponse(svc *Service, rec BirthRecord) birthResponse {
	resp := birthResponse{
		RecordID:     rec.RecordID,
		OwnerAddress: rec.OwnerAddress,
		KittyID:      rec.KittyID,
		MatronID:     rec.MatronID,
		SireID:       rec.SireID,
		Genes:        rec.Genes,
		PortraitURL:  svc.PortraitURL(rec.KittyID),
		Traits:       toTraitResponses(svc.Traits(rec)),
	}
	if !rec.BlockTime.IsZero() {
		t := rec.BlockTime
		resp.BlockTime = &t
	}
	return resp
}

func toParticipantResponse(p Participant) participantResponse {
	return participantResponse{
		KittyID:     p.KittyID,
		Genes:       p.Genes,
		PortraitURL: p.PortraitURL,
		Traits:      toTraitResponses(p.Traits),
	}
}

func toTraitResponses(traits []Trait) []traitResponse {
	if traits == nil {
		return nil
	}
	out := make([]traitResponse, 0, len(traits))
	for _, t := range traits {
		out = append(out, traitResponse{
			Type:      t.Type,
			Group:     t.Group,
			Dominant:  t.Dominant,
			Recessive: t.Recessive,
		})
	}
	return out
}

func writeDomainError(w http.ResponseWriter, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, notFoundMsg, http.StatusNotFound)
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "upstream error: "+err.Error(), http.StatusBadGateway)
	}
}

func queryInt(r *http.Request, key string) int {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

// writeJSON está duplicado a propósito en handlers de distintos módulos
// (births/watchlist) para no crear helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
