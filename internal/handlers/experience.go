package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/webfolio/apiserver/internal/services"
	"github.com/webfolio/apiserver/internal/store"
	"github.com/webfolio/apiserver/types"
)

// ExperienceHandler provides HTTP handlers for work history entries.
type ExperienceHandler struct {
	experienceService *services.ExperienceService
}

func NewExperienceHandler(experienceService *services.ExperienceService) *ExperienceHandler {
	return &ExperienceHandler{experienceService: experienceService}
}

// ExperienceRouter registers experience routes on the given router.
func ExperienceRouter(
	r chi.Router,
	experienceService *services.ExperienceService,
	authMiddleware func(http.Handler) http.Handler,
) {
	handler := NewExperienceHandler(experienceService)

	r.Get("/", handler.ListExperience)
	r.With(authMiddleware).Post("/", handler.CreateExperience)
	r.With(authMiddleware).Put("/{experienceID}", handler.UpdateExperience)
	r.With(authMiddleware).Delete("/{experienceID}", handler.DeleteExperience)
}

func (h *ExperienceHandler) ListExperience(w http.ResponseWriter, r *http.Request) {
	entries, err := h.experienceService.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch experience data")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *ExperienceHandler) CreateExperience(w http.ResponseWriter, r *http.Request) {
	entry, err := decodeExperience(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.experienceService.Create(r.Context(), entry)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create experience entry")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *ExperienceHandler) UpdateExperience(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "experienceID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := decodeExperience(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	entry.ID = id

	updated, err := h.experienceService.Update(r.Context(), entry)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Experience entry not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to update experience entry")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *ExperienceHandler) DeleteExperience(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "experienceID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.experienceService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Experience entry not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete experience entry")
		return
	}
	writeJSON(w, http.StatusOK, DeleteResponse{Msg: "Experience entry deleted", ID: id})
}

func decodeExperience(r *http.Request) (types.Experience, error) {
	var entry types.Experience
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		return types.Experience{}, errors.New("invalid request body")
	}
	entry.Title = strings.TrimSpace(entry.Title)
	entry.Company = strings.TrimSpace(entry.Company)
	entry.Duration = strings.TrimSpace(entry.Duration)
	entry.Description = strings.TrimSpace(entry.Description)
	if entry.Title == "" || entry.Company == "" || entry.Duration == "" || entry.Description == "" {
		return types.Experience{}, errors.New("All fields are required for Experience.")
	}
	return entry, nil
}
