package store

import (
	"context"
	"database/sql"

	"github.com/webfolio/apiserver/types"
)

// ContactRepository handles persistence for contact channels and
// visitor-submitted messages.
type ContactRepository struct {
	db *sql.DB
}

func NewContactRepository(db *sql.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) List(ctx context.Context) ([]types.ContactInfo, error) {
	const query = `
		SELECT id, type, value, url
		FROM contact_info
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]types.ContactInfo, 0)
	for rows.Next() {
		var entry types.ContactInfo
		if err := rows.Scan(&entry.ID, &entry.Type, &entry.Value, &entry.URL); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *ContactRepository) Create(ctx context.Context, entry types.ContactInfo) (types.ContactInfo, error) {
	const query = `
		INSERT INTO contact_info (type, value, url)
		VALUES ($1, $2, $3)
		RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, entry.Type, entry.Value, entry.URL).Scan(&entry.ID); err != nil {
		return types.ContactInfo{}, err
	}
	return entry, nil
}

func (r *ContactRepository) Update(ctx context.Context, entry types.ContactInfo) (types.ContactInfo, error) {
	const query = `
		UPDATE contact_info
		SET type = $1,
			value = $2,
			url = $3
		WHERE id = $4`
	result, err := r.db.ExecContext(ctx, query, entry.Type, entry.Value, entry.URL, entry.ID)
	if err != nil {
		return types.ContactInfo{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.ContactInfo{}, err
	}
	if affected == 0 {
		return types.ContactInfo{}, ErrNotFound
	}
	return entry, nil
}

func (r *ContactRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM contact_info WHERE id = $1`
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

// CreateMessage stores a visitor message before it is published for
// notification.
func (r *ContactRepository) CreateMessage(ctx context.Context, msg types.ContactMessage) (types.ContactMessage, error) {
	const query = `
		INSERT INTO contact_messages (name, email, message)
		VALUES ($1, $2, $3)
		RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, msg.Name, msg.Email, msg.Message).Scan(&msg.ID); err != nil {
		return types.ContactMessage{}, err
	}
	return msg, nil
}
