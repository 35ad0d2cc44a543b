package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/webfolio/apiserver/internal/services"
	"github.com/webfolio/apiserver/internal/store"
	"github.com/webfolio/apiserver/types"
)

type fakeProjectRepo struct {
	projects []types.Project
}

func (r *fakeProjectRepo) List(ctx context.Context) ([]types.Project, error) {
	return r.projects, nil
}

func (r *fakeProjectRepo) Create(ctx context.Context, project types.Project) (types.Project, error) {
	project.ID = len(r.projects) + 1
	r.projects = append(r.projects, project)
	return project, nil
}

func (r *fakeProjectRepo) Update(ctx context.Context, project types.Project) (types.Project, error) {
	for i, existing := range r.projects {
		if existing.ID == project.ID {
			r.projects[i] = project
			return project, nil
		}
	}
	return types.Project{}, store.ErrNotFound
}

func (r *fakeProjectRepo) Delete(ctx context.Context, id int) error {
	for i, existing := range r.projects {
		if existing.ID == id {
			r.projects = append(r.projects[:i], r.projects[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func newProjectsRouter(repo *fakeProjectRepo) *chi.Mux {
	router := chi.NewRouter()
	router.Route("/api/projects", func(r chi.Router) {
		ProjectsRouter(r, services.NewProjectService(repo), RequireAuth(testSecret))
	})
	return router
}

func TestProjects_DeleteMissing(t *testing.T) {
	t.Parallel()

	router := newProjectsRouter(&fakeProjectRepo{})

	req := httptest.NewRequest(http.MethodDelete, "/api/projects/999", nil)
	req.Header.Set(TokenHeader, mintToken(t, testSecret, time.Hour))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	var resp MsgResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Msg != "Project not found" {
		t.Fatalf("unexpected msg: %q", resp.Msg)
	}
}

func TestProjects_WritesGatedReadsPublic(t *testing.T) {
	t.Parallel()

	repo := &fakeProjectRepo{projects: []types.Project{
		{ID: 1, Title: "T", Description: "D", Technologies: "Go"},
	}}
	router := newProjectsRouter(repo)

	read := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	readRec := httptest.NewRecorder()
	router.ServeHTTP(readRec, read)
	if readRec.Code != http.StatusOK {
		t.Fatalf("public read: expected 200, got %d", readRec.Code)
	}

	del := httptest.NewRequest(http.MethodDelete, "/api/projects/1", nil)
	delRec := httptest.NewRecorder()
	router.ServeHTTP(delRec, del)
	if delRec.Code != http.StatusUnauthorized {
		t.Fatalf("ungated delete: expected 401, got %d", delRec.Code)
	}
}
