package store

import (
	"context"
	"database/sql"

	"github.com/webfolio/apiserver/types"
)

// EducationRepository handles persistence for education entries.
type EducationRepository struct {
	db *sql.DB
}

func NewEducationRepository(db *sql.DB) *EducationRepository {
	return &EducationRepository{db: db}
}

func (r *EducationRepository) List(ctx context.Context) ([]types.Education, error) {
	const query = `
		SELECT id, institution, degree, years
		FROM education
		ORDER BY years DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]types.Education, 0)
	for rows.Next() {
		var entry types.Education
		if err := rows.Scan(&entry.ID, &entry.Institution, &entry.Degree, &entry.Years); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *EducationRepository) Create(ctx context.Context, entry types.Education) (types.Education, error) {
	const query = `
		INSERT INTO education (institution, degree, years)
		VALUES ($1, $2, $3)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		entry.Institution,
		entry.Degree,
		entry.Years,
	).Scan(&entry.ID); err != nil {
		return types.Education{}, err
	}
	return entry, nil
}

func (r *EducationRepository) Update(ctx context.Context, entry types.Education) (types.Education, error) {
	const query = `
		UPDATE education
		SET institution = $1,
			degree = $2,
			years = $3
		WHERE id = $4`
	result, err := r.db.ExecContext(ctx, query, entry.Institution, entry.Degree, entry.Years, entry.ID)
	if err != nil {
		return types.Education{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.Education{}, err
	}
	if affected == 0 {
		return types.Education{}, ErrNotFound
	}
	return entry, nil
}

func (r *EducationRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM education WHERE id = $1`
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
