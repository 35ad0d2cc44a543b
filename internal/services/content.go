package services

import (
	"context"

	"github.com/webfolio/apiserver/types"
)

// AboutRepository defines persistence operations for the about-me record.
type AboutRepository interface {
	Get(ctx context.Context) (types.About, error)
	Create(ctx context.Context, about types.About) (types.About, error)
	Update(ctx context.Context, about types.About) (types.About, error)
	SetProfilePicURL(ctx context.Context, id int, url string) error
}

// AboutService encapsulates about-me use-cases.
type AboutService struct {
	repo AboutRepository
}

func NewAboutService(repo AboutRepository) *AboutService {
	return &AboutService{repo: repo}
}

func (s *AboutService) Get(ctx context.Context) (types.About, error) {
	return s.repo.Get(ctx)
}

func (s *AboutService) Create(ctx context.Context, about types.About) (types.About, error) {
	return s.repo.Create(ctx, about)
}

func (s *AboutService) Update(ctx context.Context, about types.About) (types.About, error) {
	return s.repo.Update(ctx, about)
}

// EducationRepository defines persistence operations for education entries.
type EducationRepository interface {
	List(ctx context.Context) ([]types.Education, error)
	Create(ctx context.Context, entry types.Education) (types.Education, error)
	Update(ctx context.Context, entry types.Education) (types.Education, error)
	Delete(ctx context.Context, id int) error
}

// EducationService encapsulates education use-cases.
type EducationService struct {
	repo EducationRepository
}

func NewEducationService(repo EducationRepository) *EducationService {
	return &EducationService{repo: repo}
}

func (s *EducationService) List(ctx context.Context) ([]types.Education, error) {
	return s.repo.List(ctx)
}

func (s *EducationService) Create(ctx context.Context, entry types.Education) (types.Education, error) {
	return s.repo.Create(ctx, entry)
}

func (s *EducationService) Update(ctx context.Context, entry types.Education) (types.Education, error) {
	return s.repo.Update(ctx, entry)
}

func (s *EducationService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

// ExperienceRepository defines persistence operations for work history.
type ExperienceRepository interface {
	List(ctx context.Context) ([]types.Experience, error)
	Create(ctx context.Context, entry types.Experience) (types.Experience, error)
	Update(ctx context.Context, entry types.Experience) (types.Experience, error)
	Delete(ctx context.Context, id int) error
}

// ExperienceService encapsulates work history use-cases.
type ExperienceService struct {
	repo ExperienceRepository
}

func NewExperienceService(repo ExperienceRepository) *ExperienceService {
	return &ExperienceService{repo: repo}
}

func (s *ExperienceService) List(ctx context.Context) ([]types.Experience, error) {
	return s.repo.List(ctx)
}

func (s *ExperienceService) Create(ctx context.Context, entry types.Experience) (types.Experience, error) {
	return s.repo.Create(ctx, entry)
}

func (s *ExperienceService) Update(ctx context.Context, entry types.Experience) (types.Experience, error) {
	return s.repo.Update(ctx, entry)
}

func (s *ExperienceService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

// ProjectRepository defines persistence operations for projects.
type ProjectRepository interface {
	List(ctx context.Context) ([]types.Project, error)
	Create(ctx context.Context, project types.Project) (types.Project, error)
	Update(ctx context.Context, project types.Project) (types.Project, error)
	Delete(ctx context.Context, id int) error
}

// ProjectService encapsulates project use-cases.
type ProjectService struct {
	repo ProjectRepository
}

func NewProjectService(repo ProjectRepository) *ProjectService {
	return &ProjectService{repo: repo}
}

func (s *ProjectService) List(ctx context.Context) ([]types.Project, error) {
	return s.repo.List(ctx)
}

func (s *ProjectService) Create(ctx context.Context, project types.Project) (types.Project, error) {
	return s.repo.Create(ctx, project)
}

func (s *ProjectService) Update(ctx context.Context, project types.Project) (types.Project, error) {
	return s.repo.Update(ctx, project)
}

func (s *ProjectService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

// DashboardRepository defines read access to the aggregated dashboard rows.
type DashboardRepository interface {
	List(ctx context.Context) ([]types.DashboardEntry, error)
}

// DashboardService serves the gated aggregate dashboard read.
type DashboardService struct {
	repo DashboardRepository
}

func NewDashboardService(repo DashboardRepository) *DashboardService {
	return &DashboardService{repo: repo}
}

func (s *DashboardService) List(ctx context.Context) ([]types.DashboardEntry, error) {
	return s.repo.List(ctx)
}
