package store

import (
	"context"
	"database/sql"

	"github.com/webfolio/apiserver/types"
)

// ProjectRepository handles persistence for portfolio projects.
type ProjectRepository struct {
	db *sql.DB
}

func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) List(ctx context.Context) ([]types.Project, error) {
	const query = `
		SELECT id, title, description, technologies
		FROM projects
		ORDER BY id DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := make([]types.Project, 0)
	for rows.Next() {
		var project types.Project
		if err := rows.Scan(&project.ID, &project.Title, &project.Description, &project.Technologies); err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}
	return projects, rows.Err()
}

func (r *ProjectRepository) Create(ctx context.Context, project types.Project) (types.Project, error) {
	const query = `
		INSERT INTO projects (title, description, technologies)
		VALUES ($1, $2, $3)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		project.Title,
		project.Description,
		project.Technologies,
	).Scan(&project.ID); err != nil {
		return types.Project{}, err
	}
	return project, nil
}

func (r *ProjectRepository) Update(ctx context.Context, project types.Project) (types.Project, error) {
	const query = `
		UPDATE projects
		SET title = $1,
			description = $2,
			technologies = $3
		WHERE id = $4`
	result, err := r.db.ExecContext(
		ctx,
		query,
		project.Title,
		project.Description,
		project.Technologies,
		project.ID,
	)
	if err != nil {
		return types.Project{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.Project{}, err
	}
	if affected == 0 {
		return types.Project{}, ErrNotFound
	}
	return project, nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM projects WHERE id = $1`
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
