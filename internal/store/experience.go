package store

import (
	"context"
	"database/sql"

	"github.com/webfolio/apiserver/types"
)

// ExperienceRepository handles persistence for work history entries.
type ExperienceRepository struct {
	db *sql.DB
}

func NewExperienceRepository(db *sql.DB) *ExperienceRepository {
	return &ExperienceRepository{db: db}
}

func (r *ExperienceRepository) List(ctx context.Context) ([]types.Experience, error) {
	const query = `
		SELECT id, title, company, duration, description
		FROM experiences
		ORDER BY id DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]types.Experience, 0)
	for rows.Next() {
		var entry types.Experience
		if err := rows.Scan(&entry.ID, &entry.Title, &entry.Company, &entry.Duration, &entry.Description); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *ExperienceRepository) Create(ctx context.Context, entry types.Experience) (types.Experience, error) {
	const query = `
		INSERT INTO experiences (title, company, duration, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		entry.Title,
		entry.Company,
		entry.Duration,
		entry.Description,
	).Scan(&entry.ID); err != nil {
		return types.Experience{}, err
	}
	return entry, nil
}

func (r *ExperienceRepository) Update(ctx context.Context, entry types.Experience) (types.Experience, error) {
	const query = `
		UPDATE experiences
		SET title = $1,
			company = $2,
			duration = $3,
			description = $4
		WHERE id = $5`
	result, err := r.db.ExecContext(
		ctx,
		query,
		entry.Title,
		entry.Company,
		entry.Duration,
		entry.Description,
		entry.ID,
	)
	if err != nil {
		return types.Experience{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.Experience{}, err
	}
	if affected == 0 {
		return types.Experience{}, ErrNotFound
	}
	return entry, nil
}

func (r *ExperienceRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM experiences WHERE id = $1`
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
