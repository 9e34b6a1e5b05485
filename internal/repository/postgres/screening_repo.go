package postgres

import (
	"context"
	"errors"
	"fmt"
	"talentbridge-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type screeningRepo struct {
	db *pgxpool.Pool
}

func NewScreeningRepository(db *pgxpool.Pool) domain.ScreeningRepository {
	return &screeningRepo{db: db}
}

const screeningColumns = `id, application_id, status, source, scheduled_at, started_at, completed_at, duration_minutes,
	technical_score, communication_score, cultural_fit_score, overall_score, recommendation,
	ai_evaluation, transcript, notes, created_at, updated_at`

func scanScreening(row pgx.Row) (*domain.Screening, error) {
	var s domain.Screening
	err := row.Scan(
		&s.ID, &s.ApplicationID, &s.Status, &s.Source, &s.ScheduledAt, &s.StartedAt, &s.CompletedAt,
		&s.DurationMinutes, &s.TechnicalScore, &s.CommunicationScore, &s.CulturalFitScore,
		&s.OverallScore, &s.Recommendation, &s.AIEvaluation, &s.Transcript, &s.Notes,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *screeningRepo) Create(ctx context.Context, screening *domain.Screening) error {
	query := `INSERT INTO screenings (application_id, status, source, scheduled_at, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	return r.db.QueryRow(ctx, query,
		screening.ApplicationID, screening.Status, screening.Source, screening.ScheduledAt,
		screening.CreatedAt, screening.UpdatedAt,
	).Scan(&screening.ID)
}

func (r *screeningRepo) GetByID(ctx context.Context, id int64) (*domain.Screening, error) {
	query := `SELECT ` + screeningColumns + ` FROM screenings WHERE id = $1`
	return scanScreening(r.db.QueryRow(ctx, query, id))
}

func (r *screeningRepo) Fetch(ctx context.Context, filter domain.ScreeningFilter) ([]domain.Screening, error) {
	query := `SELECT ` + screeningColumns + ` FROM screenings WHERE 1=1`
	args := []interface{}{}
	argIndex := 1

	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIndex)
		args = append(args, filter.Status)
		argIndex++
	}
	if filter.ApplicationID != 0 {
		query += fmt.Sprintf(" AND application_id = $%d", argIndex)
		args = append(args, filter.ApplicationID)
		argIndex++
	}

	query += fmt.Sprintf(" ORDER BY scheduled_at DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, filter.Limit, filter.Skip)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	screenings := []domain.Screening{}
	for rows.Next() {
		s, err := scanScreening(rows)
		if err != nil {
			return nil, err
		}
		screenings = append(screenings, *s)
	}
	return screenings, rows.Err()
}

func (r *screeningRepo) FetchByApplication(ctx context.Context, applicationID int64) ([]domain.Screening, error) {
	return r.Fetch(ctx, domain.ScreeningFilter{ApplicationID: applicationID, Limit: 100})
}

// HasActive reports whether the application already has a screening that is
// scheduled or running. At most one such screening may exist at a time.
func (r *screeningRepo) HasActive(ctx context.Context, applicationID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM screenings WHERE application_id = $1 AND status IN ('scheduled', 'in_progress'))`,
		applicationID,
	).Scan(&exists)
	return exists, err
}

func (r *screeningRepo) Update(ctx context.Context, screening *domain.Screening) error {
	query := `UPDATE screenings SET status = $1, scheduled_at = $2, started_at = $3, completed_at = $4,
              duration_minutes = $5, technical_score = $6, communication_score = $7, cultural_fit_score = $8,
              overall_score = $9, recommendation = $10, ai_evaluation = $11, transcript = $12, notes = $13,
              updated_at = NOW()
              WHERE id = $14 RETURNING updated_at`
	err := r.db.QueryRow(ctx, query,
		screening.Status, screening.ScheduledAt, screening.StartedAt, screening.CompletedAt,
		screening.DurationMinutes, screening.TechnicalScore, screening.CommunicationScore,
		screening.CulturalFitScore, screening.OverallScore, screening.Recommendation,
		screening.AIEvaluation, screening.Transcript, screening.Notes, screening.ID,
	).Scan(&screening.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}

func (r *screeningRepo) Stats(ctx context.Context) (*domain.ScreeningStats, error) {
	query := `SELECT COUNT(*),
              COUNT(*) FILTER (WHERE status = 'scheduled'),
              COUNT(*) FILTER (WHERE status = 'in_progress'),
              COUNT(*) FILTER (WHERE status = 'completed'),
              COUNT(*) FILTER (WHERE status = 'cancelled'),
              COALESCE(AVG(technical_score) FILTER (WHERE status = 'completed'), 0),
              COALESCE(AVG(communication_score) FILTER (WHERE status = 'completed'), 0),
              COALESCE(AVG(overall_score) FILTER (WHERE status = 'completed'), 0)
              FROM screenings`
	var stats domain.ScreeningStats
	err := r.db.QueryRow(ctx, query).Scan(
		&stats.Total, &stats.Scheduled, &stats.InProgress, &stats.Completed, &stats.Cancelled,
		&stats.AverageTechnicalScore, &stats.AverageCommunicationScore, &stats.AverageOverallScore,
	)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
