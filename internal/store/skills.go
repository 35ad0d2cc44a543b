package store

import (
	"context"
	"database/sql"

	"github.com/webfolio/apiserver/types"
)

// SkillRepository handles persistence for skills and their categories.
type SkillRepository struct {
	db *sql.DB
}

func NewSkillRepository(db *sql.DB) *SkillRepository {
	return &SkillRepository{db: db}
}

// ListGrouped returns all skills joined to their categories, ordered so
// that callers can group rows by category name.
func (r *SkillRepository) ListGrouped(ctx context.Context) ([]types.Skill, error) {
	const query = `
		SELECT s.id, s.name, s.category_id, sc.name AS category_name
		FROM skills s
		JOIN skill_categories sc ON s.category_id = sc.id
		ORDER BY sc.id, s.id`
	return r.scanSkills(ctx, query)
}

// ListSkills returns all skills with their category name, ordered by id.
func (r *SkillRepository) ListSkills(ctx context.Context) ([]types.Skill, error) {
	const query = `
		SELECT s.id, s.name, s.category_id, sc.name AS category_name
		FROM skills s
		JOIN skill_categories sc ON s.category_id = sc.id
		ORDER BY s.id`
	return r.scanSkills(ctx, query)
}

func (r *SkillRepository) scanSkills(ctx context.Context, query string) ([]types.Skill, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	skills := make([]types.Skill, 0)
	for rows.Next() {
		var skill types.Skill
		if err := rows.Scan(&skill.ID, &skill.Name, &skill.CategoryID, &skill.CategoryName); err != nil {
			return nil, err
		}
		skills = append(skills, skill)
	}
	return skills, rows.Err()
}

func (r *SkillRepository) CreateSkill(ctx context.Context, skill types.Skill) (types.Skill, error) {
	const query = `
		INSERT INTO skills (name, category_id)
		VALUES ($1, $2)
		RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, skill.Name, skill.CategoryID).Scan(&skill.ID); err != nil {
		return types.Skill{}, err
	}
	return skill, nil
}

func (r *SkillRepository) UpdateSkill(ctx context.Context, skill types.Skill) (types.Skill, error) {
	const query = `
		UPDATE skills
		SET name = $1,
			category_id = $2
		WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, skill.Name, skill.CategoryID, skill.ID)
	if err != nil {
		return types.Skill{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.Skill{}, err
	}
	if affected == 0 {
		return types.Skill{}, ErrNotFound
	}
	return skill, nil
}

func (r *SkillRepository) DeleteSkill(ctx context.Context, id int) error {
	const query = `DELETE FROM skills WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SkillRepository) ListCategories(ctx context.Context) ([]types.SkillCategory, error) {
	const query = `
		SELECT id, name
		FROM skill_categories
		ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]types.SkillCategory, 0)
	for rows.Next() {
		var category types.SkillCategory
		if err := rows.Scan(&category.ID, &category.Name); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func (r *SkillRepository) CreateCategory(ctx context.Context, category types.SkillCategory) (types.SkillCategory, error) {
	const query = `
		INSERT INTO skill_categories (name)
		VALUES ($1)
		RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, category.Name).Scan(&category.ID); err != nil {
		return types.SkillCategory{}, err
	}
	return category, nil
}

func (r *SkillRepository) UpdateCategory(ctx context.Context, category types.SkillCategory) (types.SkillCategory, error) {
	const query = `
		UPDATE skill_categories
		SET name = $1
		WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, category.Name, category.ID)
	if err != nil {
		return types.SkillCategory{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.SkillCategory{}, err
	}
	if affected == 0 {
		return types.SkillCategory{}, ErrNotFound
	}
	return category, nil
}

func (r *SkillRepository) DeleteCategory(ctx context.Context, id int) error {
	const query = `DELETE FROM skill_categories WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
