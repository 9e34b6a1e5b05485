package postgres

import (
	"context"
	"talentbridge-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type activityRepo struct {
	db *pgxpool.Pool
}

func NewActivityRepository(db *pgxpool.Pool) domain.ActivityRepository {
	return &activityRepo{db: db}
}

func (r *activityRepo) Record(ctx context.Context, entry *domain.ActivityLog) error {
	query := `INSERT INTO activity_logs (user_id, action, entity_type, entity_id, details, ip_address, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, NOW()) RETURNING id, created_at`
	return r.db.QueryRow(ctx, query,
		entry.UserID, entry.Action, entry.EntityType, entry.EntityID, entry.Details, entry.IPAddress,
	).Scan(&entry.ID, &entry.CreatedAt)
}

func (r *activityRepo) Recent(ctx context.Context, limit int) ([]domain.ActivityLog, error) {
	query := `SELECT id, user_id, action, entity_type, entity_id, details, ip_address, created_at
              FROM activity_logs ORDER BY created_at DESC LIMIT $1`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []domain.ActivityLog{}
	for rows.Next() {
		var e domain.ActivityLog
		if err := rows.Scan(&e.ID, &e.UserID, &e.Action, &e.EntityType, &e.EntityID, &e.Details, &e.IPAddress, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
