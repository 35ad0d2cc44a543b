package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/webfolio/apiserver/types"
)

// AboutRepository handles persistence for the about-me record.
type AboutRepository struct {
	db *sql.DB
}

func NewAboutRepository(db *sql.DB) *AboutRepository {
	return &AboutRepository{db: db}
}

// Get returns the first about-me row; the table is expected to hold one.
func (r *AboutRepository) Get(ctx context.Context) (types.About, error) {
	const query = `
		SELECT id, name, title, description, profile_pic_url
		FROM about_me
		ORDER BY id
		LIMIT 1`
	var about types.About
	err := r.db.QueryRowContext(ctx, query).Scan(
		&about.ID,
		&about.Name,
		&about.Title,
		&about.Description,
		&about.ProfilePicURL,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.About{}, ErrNotFound
		}
		return types.About{}, err
	}
	return about, nil
}

func (r *AboutRepository) Create(ctx context.Context, about types.About) (types.About, error) {
	const query = `
		INSERT INTO about_me (name, title, description, profile_pic_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		about.Name,
		about.Title,
		about.Description,
		about.ProfilePicURL,
	).Scan(&about.ID); err != nil {
		return types.About{}, err
	}
	return about, nil
}

func (r *AboutRepository) Update(ctx context.Context, about types.About) (types.About, error) {
	const query = `
		UPDATE about_me
		SET name = $1,
			title = $2,
			description = $3,
			profile_pic_url = $4
		WHERE id = $5`
	result, err := r.db.ExecContext(
		ctx,
		query,
		about.Name,
		about.Title,
		about.Description,
		about.ProfilePicURL,
		about.ID,
	)
	if err != nil {
		return types.About{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.About{}, err
	}
	if affected == 0 {
		return types.About{}, ErrNotFound
	}
	return about, nil
}

// SetProfilePicURL updates only the avatar URL after an upload.
func (r *AboutRepository) SetProfilePicURL(ctx context.Context, id int, url string) error {
	const query = `UPDATE about_me SET profile_pic_url = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, url, id)
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
