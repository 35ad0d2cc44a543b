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

// SkillHandler provides HTTP handlers for skills and their categories.
type SkillHandler struct {
	skillService *services.SkillService
}

func NewSkillHandler(skillService *services.SkillService) *SkillHandler {
	return &SkillHandler{skillService: skillService}
}

// SkillsRouter registers the public grouped skills read.
func SkillsRouter(r chi.Router, skillService *services.SkillService) {
	handler := NewSkillHandler(skillService)
	r.Get("/", handler.ListGroupedSkills)
}

// SkillCategoriesRouter registers the category management routes.
// The whole resource, reads included, sits behind the auth gate.
func SkillCategoriesRouter(
	r chi.Router,
	skillService *services.SkillService,
	authMiddleware func(http.Handler) http.Handler,
) {
	handler := NewSkillHandler(skillService)

	r.Use(authMiddleware)
	r.Get("/", handler.ListCategories)
	r.Post("/", handler.CreateCategory)
	r.Put("/{categoryID}", handler.UpdateCategory)
	r.Delete("/{categoryID}", handler.DeleteCategory)
}

// IndividualSkillsRouter registers the per-skill management routes.
// The whole resource, reads included, sits behind the auth gate.
func IndividualSkillsRouter(
	r chi.Router,
	skillService *services.SkillService,
	authMiddleware func(http.Handler) http.Handler,
) {
	handler := NewSkillHandler(skillService)

	r.Use(authMiddleware)
	r.Get("/", handler.ListSkills)
	r.Post("/", handler.CreateSkill)
	r.Put("/{skillID}", handler.UpdateSkill)
	r.Delete("/{skillID}", handler.DeleteSkill)
}

func (h *SkillHandler) ListGroupedSkills(w http.ResponseWriter, r *http.Request) {
	grouped, err := h.skillService.GroupedByCategory(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch skills data")
		return
	}
	writeJSON(w, http.StatusOK, grouped)
}

func (h *SkillHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.skillService.ListCategories(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch skill categories")
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *SkillHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	category, err := decodeCategory(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.skillService.CreateCategory(r.Context(), category)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create skill category")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *SkillHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "categoryID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	category, err := decodeCategory(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	category.ID = id

	updated, err := h.skillService.UpdateCategory(r.Context(), category)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Category not found.")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to update skill category")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *SkillHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "categoryID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.skillService.DeleteCategory(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Category not found.")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete skill category")
		return
	}
	writeJSON(w, http.StatusOK, DeleteResponse{Msg: "Category deleted", ID: id})
}

func (h *SkillHandler) ListSkills(w http.ResponseWriter, r *http.Request) {
	skills, err := h.skillService.ListSkills(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch individual skills")
		return
	}
	writeJSON(w, http.StatusOK, skills)
}

func (h *SkillHandler) CreateSkill(w http.ResponseWriter, r *http.Request) {
	skill, err := decodeSkill(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.skillService.CreateSkill(r.Context(), skill)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create individual skill")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *SkillHandler) UpdateSkill(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "skillID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	skill, err := decodeSkill(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	skill.ID = id

	updated, err := h.skillService.UpdateSkill(r.Context(), skill)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Skill not found.")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to update individual skill")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *SkillHandler) DeleteSkill(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "skillID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.skillService.DeleteSkill(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Skill not found.")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete individual skill")
		return
	}
	writeJSON(w, http.StatusOK, DeleteResponse{Msg: "Skill deleted", ID: id})
}

func decodeCategory(r *http.Request) (types.SkillCategory, error) {
	var category types.SkillCategory
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		return types.SkillCategory{}, errors.New("invalid request body")
	}
	category.Name = strings.TrimSpace(category.Name)
	if category.Name == "" {
		return types.SkillCategory{}, errors.New("Category name is required.")
	}
	return category, nil
}

func decodeSkill(r *http.Request) (types.Skill, error) {
	var skill types.Skill
	if err := json.NewDecoder(r.Body).Decode(&skill); err != nil {
		return types.Skill{}, errors.New("invalid request body")
	}
	skill.Name = strings.TrimSpace(skill.Name)
	if skill.Name == "" || skill.CategoryID < 1 {
		return types.Skill{}, errors.New("Skill name and category ID are required.")
	}
	return skill, nil
}
