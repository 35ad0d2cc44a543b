package store

import (
	"context"
	"database/sql"

	"github.com/webfolio/apiserver/types"
)

// DashboardRepository reads the aggregated dashboard rows.
type DashboardRepository struct {
	db *sql.DB
}

func NewDashboardRepository(db *sql.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

func (r *DashboardRepository) List(ctx context.Context) ([]types.DashboardEntry, error) {
	const query = `
		SELECT id, section, label, value
		FROM dashboard_info
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]types.DashboardEntry, 0)
	for rows.Next() {
		var entry types.DashboardEntry
		if err := rows.Scan(&entry.ID, &entry.Section, &entry.Label, &entry.Value); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
