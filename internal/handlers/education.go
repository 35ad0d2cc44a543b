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

// EducationHandler provides HTTP handlers for education entries.
type EducationHandler struct {
	educationService *services.EducationService
}

func NewEducationHandler(educationService *services.EducationService) *EducationHandler {
	return &EducationHandler{educationService: educationService}
}

// EducationRouter registers education routes on the given router.
func EducationRouter(
	r chi.Router,
	educationService *services.EducationService,
	authMiddleware func(http.Handler) http.Handler,
) {
	handler := NewEducationHandler(educationService)

	r.Get("/", handler.ListEducation)
	r.With(authMiddleware).Post("/", handler.CreateEducation)
	r.With(authMiddleware).Put("/{educationID}", handler.UpdateEducation)
	r.With(authMiddleware).Delete("/{educationID}", handler.DeleteEducation)
}

func (h *EducationHandler) ListEducation(w http.ResponseWriter, r *http.Request) {
	entries, err := h.educationService.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch education data")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *EducationHandler) CreateEducation(w http.ResponseWriter, r *http.Request) {
	entry, err := decodeEducation(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.educationService.Create(r.Context(), entry)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create education entry")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *EducationHandler) UpdateEducation(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "educationID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := decodeEducation(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	entry.ID = id

	updated, err := h.educationService.Update(r.Context(), entry)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Education entry not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to update education entry")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *EducationHandler) DeleteEducation(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "educationID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.educationService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Education entry not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete education entry")
		return
	}
	writeJSON(w, http.StatusOK, DeleteResponse{Msg: "Education entry deleted", ID: id})
}

func decodeEducation(r *http.Request) (types.Education, error) {
	var entry types.Education
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		return types.Education{}, errors.New("invalid request body")
	}
	entry.Institution = strings.TrimSpace(entry.Institution)
	entry.Degree = strings.TrimSpace(entry.Degree)
	entry.Years = strings.TrimSpace(entry.Years)
	if entry.Institution == "" || entry.Degree == "" || entry.Years == "" {
		return types.Education{}, errors.New("All fields are required for Education.")
	}
	return entry, nil
}
