package watchlist

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"kitty-lineage/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/watchlist", func(wr chi.Router) {
		wr.Get("/", listHandler(svc))
		wr.Post("/", addHandler(svc))
		wr.Delete("/{entryID}", removeHandler(svc))
	})
}

type addRequest struct {
	OwnerAddress string `json:"owner_address"`
	Label        string `json:"label"`
}

type entryResponse struct {
	ID           string    `json:"id"`
	OwnerAddress string    `json:"owner_address"`
	Label        string    `json:"label,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// addHandler godoc
// @Summary Seguir una dirección de dueño
// @Tags watchlist
// @Accept json
// @Produce json
// @Param X-Viewer-ID header string true "Identidad del viewer (modo dev)"
// @Param payload body addRequest true "Dirección a seguir (0x + 40 hex) y label opcional"
// @Success 201 {object} entryResponse
// @Failure 400 {string} string "invalid json / dirección inválida"
// @Failure 401 {string} string "unauthorized"
// @Failure 409 {string} string "address already watched"
// @Router /watchlist [post]
func addHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewerID, ok := middleware.GetViewer(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req addRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		e, err := svc.Add(r.Context(), viewerID, AddInput{
			OwnerAddress: req.OwnerAddress,
			Label:        req.Label,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrDuplicate):
				http.Error(w, err.Error(), http.StatusConflict)
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusCreated, toEntryResponse(e))
	}
}

// listHandler godoc
// @Summary Listar direcciones seguidas
// @Tags watchlist
// @Produce json
// @Param X-Viewer-ID header string true "Identidad del viewer (modo dev)"
// @Success 200 {array} entryResponse
// @Failure 401 {string} string "unauthorized"
// @Router /watchlist [get]
func listHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewerID, ok := middleware.GetViewer(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByViewer(r.Context(), viewerID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]entryResponse, 0, len(items))
		for _, e := range items {
			out = append(out, toEntryResponse(e))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// removeHandler godoc
// @Summary Dejar de seguir una dirección
// @Tags watchlist
// @Param X-Viewer-ID header string true "Identidad del viewer (modo dev)"
// @Param entryID path string true "ID de la entrada"
// @Success 204 {string} string ""
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "entry not found"
// @Router /watchlist/{entryID} [delete]
func removeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewerID, ok := middleware.GetViewer(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		err := svc.Remove(r.Context(), viewerID, chi.URLParam(r, "entryID"))
		if err != nil {
			switch {
			case errors.Is(err, ErrForbidden):
				http.Error(w, "forbidden", http.StatusForbidden)
			case errors.Is(err, ErrNotFound), errors.Is(err, ErrInvalidInput):
				http.Error(w, "entry not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func toEntryResponse(e Entry) entryResponse {
	return entryResponse{
		ID:           e.ID,
		OwnerAddress: e.OwnerAddress,
		Label:        e.Label,
		CreatedAt:    e.CreatedAt,
	}
}

// writeJSON duplicado a propósito (ver nota en births/handler.go).
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
