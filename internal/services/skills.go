package services

import (
	"context"

	"github.com/webfolio/apiserver/types"
)

// SkillRepository defines persistence operations for skills and categories.
type SkillRepository interface {
	ListGrouped(ctx context.Context) ([]types.Skill, error)
	ListSkills(ctx context.Context) ([]types.Skill, error)
	CreateSkill(ctx context.Context, skill types.Skill) (types.Skill, error)
	UpdateSkill(ctx context.Context, skill types.Skill) (types.Skill, error)
	DeleteSkill(ctx context.Context, id int) error
	ListCategories(ctx context.Context) ([]types.SkillCategory, error)
	CreateCategory(ctx context.Context, category types.SkillCategory) (types.SkillCategory, error)
	UpdateCategory(ctx context.Context, category types.SkillCategory) (types.SkillCategory, error)
	DeleteCategory(ctx context.Context, id int) error
}

// GroupedSkill is a skill as presented inside a category group.
type GroupedSkill struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// SkillService encapsulates skill and category use-cases.
type SkillService struct {
	repo SkillRepository
}

func NewSkillService(repo SkillRepository) *SkillService {
	return &SkillService{repo: repo}
}

// GroupedByCategory returns all skills keyed by their category name,
// the shape the public skills read exposes.
func (s *SkillService) GroupedByCategory(ctx context.Context) (map[string][]GroupedSkill, error) {
	skills, err := s.repo.ListGrouped(ctx)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]GroupedSkill)
	for _, skill := range skills {
		grouped[skill.CategoryName] = append(grouped[skill.CategoryName], GroupedSkill{
			ID:   skill.ID,
			Name: skill.Name,
		})
	}
	return grouped, nil
}

func (s *SkillService) ListSkills(ctx context.Context) ([]types.Skill, error) {
	return s.repo.ListSkills(ctx)
}

func (s *SkillService) CreateSkill(ctx context.Context, skill types.Skill) (types.Skill, error) {
	return s.repo.CreateSkill(ctx, skill)
}

func (s *SkillService) UpdateSkill(ctx context.Context, skill types.Skill) (types.Skill, error) {
	return s.repo.UpdateSkill(ctx, skill)
}

func (s *SkillService) DeleteSkill(ctx context.Context, id int) error {
	return s.repo.DeleteSkill(ctx, id)
}

func (s *SkillService) ListCategories(ctx context.Context) ([]types.SkillCategory, error) {
	return s.repo.ListCategories(ctx)
}

func (s *SkillService) CreateCategory(ctx context.Context, category types.SkillCategory) (types.SkillCategory, error) {
	return s.repo.CreateCategory(ctx, category)
}

func (s *SkillService) UpdateCategory(ctx context.Context, category types.SkillCategory) (types.SkillCategory, error) {
	return s.repo.UpdateCategory(ctx, category)
}

func (s *SkillService) DeleteCategory(ctx context.Context, id int) error {
	return s.repo.DeleteCategory(ctx, id)
}
