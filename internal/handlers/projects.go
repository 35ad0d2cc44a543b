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

// ProjectHandler provides HTTP handlers for portfolio projects.
type ProjectHandler struct {
	projectService *services.ProjectService
}

func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// ProjectsRouter registers project routes on the given router.
func ProjectsRouter(
	r chi.Router,
	projectService *services.ProjectService,
	authMiddleware func(http.Handler) http.Handler,
) {
	handler := NewProjectHandler(projectService)

	r.Get("/", handler.ListProjects)
	r.With(authMiddleware).Post("/", handler.CreateProject)
	r.With(authMiddleware).Put("/{projectID}", handler.UpdateProject)
	r.With(authMiddleware).Delete("/{projectID}", handler.DeleteProject)
}

func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projectService.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch projects data")
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	project, err := decodeProject(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.projectService.Create(r.Context(), project)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create project")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "projectID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	project, err := decodeProject(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	project.ID = id

	updated, err := h.projectService.Update(r.Context(), project)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Project entry not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to update project")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "projectID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.projectService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Project not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete project")
		return
	}
	writeJSON(w, http.StatusOK, DeleteResponse{Msg: "Project deleted", ID: id})
}

func decodeProject(r *http.Request) (types.Project, error) {
	var project types.Project
	if err := json.NewDecoder(r.Body).Decode(&project); err != nil {
		return types.Project{}, errors.New("invalid request body")
	}
	project.Title = strings.TrimSpace(project.Title)
	project.Description = strings.TrimSpace(project.Description)
	project.Technologies = strings.TrimSpace(project.Technologies)
	if project.Title == "" || project.Description == "" || project.Technologies == "" {
		return types.Project{}, errors.New("All fields are required for Project.")
	}
	return project, nil
}
