package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/davmoros/cronograma-backend/internal/model"
)

// AuditRepository handles schedule audit-trail data access.
type AuditRepository struct {
	pool *pgxpool.Pool
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

// Insert writes a single audit entry.
func (r *AuditRepository) Insert(ctx context.Context, e *model.AuditEntry) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO schedule_audit (id, action, group_key, class_name, session_count)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at`,
		e.ID, e.Action, e.GroupKey, e.ClassName, e.SessionCount,
	).Scan(&e.CreatedAt)
}

// ListRecent retrieves the most recent audit entries, newest first.
func (r *AuditRepository) ListRecent(ctx context.Context, limit int) ([]model.AuditEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, action, group_key, class_name, session_count, created_at
		 FROM schedule_audit
		 ORDER BY created_at DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.AuditEntry
	for rows.Next() {
		var e model.AuditEntry
		if err := rows.Scan(&e.ID, &e.Action, &e.GroupKey, &e.ClassName, &e.SessionCount, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
